package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/powerprof/internal/adapter/output"
	"github.com/jmylchreest/powerprof/internal/model"
)

var setOpts struct {
	stdin     bool
	separator string
	notify    bool
}

var setCmd = &cobra.Command{
	Use:   "set <profile>",
	Short: "Change the active power profile",
	Long: `Ask power-profiles-daemon to switch to another profile.

Profiles: power-saver, balanced, performance (case-insensitive).

With --stdin, the profile is read from the first line of standard input,
which may be a line produced by "powerprof list --format dmenu".

Examples:
  # Switch to performance
  powerprof set performance

  # Pick with a launcher
  powerprof list -f dmenu | fuzzel -d | powerprof set --stdin`,
	Args: func(cmd *cobra.Command, args []string) error {
		if setOpts.stdin {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	ValidArgs: validProfileNames(),
	RunE:      runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().BoolVar(&setOpts.stdin, "stdin", false,
		"Read the profile from standard input")
	setCmd.Flags().StringVar(&setOpts.separator, "separator", " | ",
		"Field separator of dmenu lines read with --stdin")
	setCmd.Flags().BoolVar(&setOpts.notify, "notify", false,
		"Show the result as a desktop notification")
}

func runSet(cmd *cobra.Command, args []string) error {
	name, err := profileArg(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	profile := model.ParseProfile(name)
	if !profile.Valid() {
		return fmt.Errorf("unknown profile %q (valid: %s)", name, strings.Join(validProfileNames(), ", "))
	}

	withDesktop := notifyRequested(cmd.Flags().Changed("notify"), setOpts.notify)
	s, err := openSession(withDesktop, consoleReporter(cmd.OutOrStdout(), cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), callTimeout)
	defer cancel()

	if ok, _ := s.client.SetProfile(ctx, profile); !ok {
		// The console reporter has already printed the reason.
		return exitCode(1)
	}
	return nil
}

// profileArg returns the requested profile name from args or stdin.
func profileArg(stdin io.Reader, args []string) (string, error) {
	if !setOpts.stdin {
		return args[0], nil
	}

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "", fmt.Errorf("no profile on stdin")
	}
	return output.ParseDmenuLine(scanner.Text(), setOpts.separator), nil
}

func validProfileNames() []string {
	profiles := model.Profiles()
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.String()
	}
	return names
}
