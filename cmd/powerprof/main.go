// Package main provides the CLI entrypoint for powerprof.
package main

func main() {
	Execute()
}
