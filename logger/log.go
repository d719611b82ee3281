// This file is part of Flightstick.
//
// Flightstick is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Flightstick is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Flightstick.  If not, see <https://www.gnu.org/licenses/>.

package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry represents a single line/entry in the log
type Entry struct {
	Timestamp time.Time
	tag       string
	detail    string
	repeated  int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.tag, e.detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

// Logger is the destination for log entries. Use NewLogger() to create a
// usable instance
type Logger struct {
	maxEntries int

	crit struct {
		section sync.Mutex
		entries []Entry

		// the index of the first entry that has not yet been written with
		// WriteRecent()
		recent int

		// log entries are echoed to this writer as they arrive. no echoing if
		// the writer is nil
		echo io.Writer
	}
}

// NewLogger is the preferred method of initialisation for the Logger type
func NewLogger(maxEntries int) *Logger {
	l := &Logger{
		maxEntries: maxEntries,
	}
	l.crit.entries = make([]Entry, 0, maxEntries)
	return l
}

// Log adds an entry to the logger. The detail argument can be of any type:
// error and fmt.Stringer types are handled explicitly, all other types are
// converted with the %v verb
func (l *Logger) Log(perm Permission, tag string, detail any) {
	if !perm.AllowLogging() {
		return
	}

	var s string
	switch detail := detail.(type) {
	case error:
		s = detail.Error()
	case fmt.Stringer:
		s = detail.String()
	default:
		s = fmt.Sprintf("%v", detail)
	}

	// newline characters spoil the one-entry-per-line rule
	tag = strings.ReplaceAll(tag, "\n", "")
	s = strings.ReplaceAll(s, "\n", " ")

	l.crit.section.Lock()
	defer l.crit.section.Unlock()

	// if the new entry repeats the most recent entry then bump the repeat
	// count rather than adding a new entry
	var e *Entry
	if len(l.crit.entries) > 0 {
		last := &l.crit.entries[len(l.crit.entries)-1]
		if last.tag == tag && last.detail == s {
			last.repeated++
			last.Timestamp = time.Now()
			e = last
		}
	}

	if e == nil {
		l.crit.entries = append(l.crit.entries, Entry{
			Timestamp: time.Now(),
			tag:       tag,
			detail:    s,
		})

		// maintain maximum number of entries
		if len(l.crit.entries) > l.maxEntries {
			d := len(l.crit.entries) - l.maxEntries
			l.crit.entries = l.crit.entries[d:]
			l.crit.recent = max(l.crit.recent-d, 0)
		}

		e = &l.crit.entries[len(l.crit.entries)-1]
	}

	if l.crit.echo != nil {
		_, _ = io.WriteString(l.crit.echo, e.String())
	}
}

// Logf adds a formatted entry to the logger
func (l *Logger) Logf(perm Permission, tag string, detail string, args ...any) {
	l.Log(perm, tag, fmt.Sprintf(detail, args...))
}

// Clear all entries from the logger
func (l *Logger) Clear() {
	l.crit.section.Lock()
	defer l.crit.section.Unlock()

	l.crit.entries = l.crit.entries[:0]
	l.crit.recent = 0
}

// Write contents of the logger to io.Writer
func (l *Logger) Write(output io.Writer) {
	l.crit.section.Lock()
	defer l.crit.section.Unlock()

	for _, e := range l.crit.entries {
		_, _ = io.WriteString(output, e.String())
	}
}

// WriteRecent writes the entries added since the previous call to WriteRecent
func (l *Logger) WriteRecent(output io.Writer) {
	l.crit.section.Lock()
	defer l.crit.section.Unlock()

	for _, e := range l.crit.entries[l.crit.recent:] {
		_, _ = io.WriteString(output, e.String())
	}
	l.crit.recent = len(l.crit.entries)
}

// Tail writes the last number of entries to io.Writer
func (l *Logger) Tail(output io.Writer, number int) {
	l.crit.section.Lock()
	defer l.crit.section.Unlock()

	// cap number to the number of entries
	if number > len(l.crit.entries) {
		number = len(l.crit.entries)
	}

	for _, e := range l.crit.entries[len(l.crit.entries)-number:] {
		_, _ = io.WriteString(output, e.String())
	}
}

// SetEcho instructs the logger to echo entries to the io.Writer as they are
// added. A nil writer stops any echoing. If writeRecent is true then entries
// not yet written with WriteRecent() are written to the new echo immediately
func (l *Logger) SetEcho(output io.Writer, writeRecent bool) {
	l.crit.section.Lock()
	l.crit.echo = output
	l.crit.section.Unlock()

	if output != nil && writeRecent {
		l.WriteRecent(output)
	}
}

// BorrowLog gives the provided function the critical section and access to
// the list of log entries
func (l *Logger) BorrowLog(f func([]Entry)) {
	l.crit.section.Lock()
	defer l.crit.section.Unlock()

	f(l.crit.entries)
}
