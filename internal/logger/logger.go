// Package logger keeps a single, bounded, in-memory log for the whole
// application. Entries are a tag naming the subsystem and a free-form detail
// string. Consecutive identical entries are folded into one with a repeat
// count, which keeps tight loops (a program spinning on FX0A, for example)
// from flooding the log.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// maximum number of entries in the central logger
const maxEntries = 256

// Entry is a single line in the log
type Entry struct {
	Tag      string
	Detail   string
	Repeated int
}

func (e Entry) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "%s: %s", e.Tag, e.Detail)
	if e.Repeated > 0 {
		fmt.Fprintf(&s, " (repeat x%d)", e.Repeated+1)
	}
	s.WriteString("\n")
	return s.String()
}

type logger struct {
	mu      sync.Mutex
	max     int
	entries []Entry
	echo    io.Writer
}

// only one central log for the entire application
var central = newLogger(maxEntries)

func newLogger(max int) *logger {
	return &logger{max: max}
}

func (l *logger) log(tag, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	if n := len(l.entries); n > 0 && l.entries[n-1].Tag == tag && l.entries[n-1].Detail == detail {
		l.entries[n-1].Repeated++
		return
	}

	e := Entry{Tag: tag, Detail: detail}
	l.entries = append(l.entries, e)
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}

	if l.echo != nil {
		_, _ = io.WriteString(l.echo, e.String())
	}
}

func (l *logger) tail(w io.Writer, number int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if number > len(l.entries) {
		number = len(l.entries)
	}
	if number < 0 {
		number = 0
	}
	for _, e := range l.entries[len(l.entries)-number:] {
		_, _ = io.WriteString(w, e.String())
	}
}

// Log adds an entry to the central logger
func Log(tag, detail string) {
	central.log(tag, detail)
}

// Logf adds a formatted entry to the central logger
func Logf(tag, detail string, args ...interface{}) {
	central.log(tag, fmt.Sprintf(detail, args...))
}

// Write writes every entry to w
func Write(w io.Writer) {
	central.tail(w, maxEntries)
}

// Tail writes the last number entries to w
func Tail(w io.Writer, number int) {
	central.tail(w, number)
}

// SetEcho prints new entries to w as they are logged. A nil writer stops
// echoing. Repeats of the previous entry are not echoed.
func SetEcho(w io.Writer) {
	central.mu.Lock()
	central.echo = w
	central.mu.Unlock()
}

// Clear removes all entries
func Clear() {
	central.mu.Lock()
	central.entries = central.entries[:0]
	central.mu.Unlock()
}

// Entries returns a copy of the log
func Entries() []Entry {
	central.mu.Lock()
	defer central.mu.Unlock()
	c := make([]Entry, len(central.entries))
	copy(c, central.entries)
	return c
}
