package model

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
)

// NoticeKind tells success notices from error notices.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// String returns the string representation of the kind.
func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k NoticeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Notice is one human-readable outcome of a bus operation.
type Notice struct {
	ID        string     `json:"id" yaml:"id"`
	Kind      NoticeKind `json:"kind" yaml:"kind"`
	Message   string     `json:"message" yaml:"message"`
	Timestamp int64      `json:"timestamp" yaml:"timestamp"`
}

// NewNotice creates a notice stamped with the current time and a fresh ULID.
func NewNotice(kind NoticeKind, message string) Notice {
	now := time.Now()
	n := Notice{
		Kind:      kind,
		Message:   message,
		Timestamp: now.Unix(),
	}
	// A ULID only fails to generate if the entropy source fails; the notice
	// is still usable without an ID.
	if id, err := ulid.New(ulid.Timestamp(now), rand.Reader); err == nil {
		n.ID = id.String()
	}
	return n
}

// IsError reports whether this is an error notice.
func (n Notice) IsError() bool {
	return n.Kind == NoticeError
}

// Time returns the timestamp as a time.Time.
func (n Notice) Time() time.Time {
	return time.Unix(n.Timestamp, 0)
}

// RelativeTime returns a human-readable relative time like "3 minutes ago".
func (n Notice) RelativeTime() string {
	return humanize.Time(n.Time())
}

// NoticeLog records notices in the order they were reported.
// It satisfies the dbus.Reporter interface.
type NoticeLog struct {
	mu      sync.Mutex
	notices []Notice
}

// NewNoticeLog creates an empty log.
func NewNoticeLog() *NoticeLog {
	return &NoticeLog{}
}

// OnSuccess records a success notice.
func (l *NoticeLog) OnSuccess(message string) {
	l.add(NewNotice(NoticeSuccess, message))
}

// OnError records an error notice.
func (l *NoticeLog) OnError(message string) {
	l.add(NewNotice(NoticeError, message))
}

func (l *NoticeLog) add(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notices = append(l.notices, n)
}

// All returns a copy of every recorded notice.
func (l *NoticeLog) All() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Notice, len(l.notices))
	copy(out, l.notices)
	return out
}

// Errors returns the recorded error notices.
func (l *NoticeLog) Errors() []Notice {
	return l.filter(NoticeError)
}

// Successes returns the recorded success notices.
func (l *NoticeLog) Successes() []Notice {
	return l.filter(NoticeSuccess)
}

func (l *NoticeLog) filter(kind NoticeKind) []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Notice
	for _, n := range l.notices {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// Last returns the most recent notice, if any.
func (l *NoticeLog) Last() (Notice, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.notices) == 0 {
		return Notice{}, false
	}
	return l.notices[len(l.notices)-1], true
}

// Len returns the number of recorded notices.
func (l *NoticeLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.notices)
}

// Reset discards all recorded notices.
func (l *NoticeLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notices = nil
}
