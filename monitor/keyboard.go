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

//go:build !windows

package monitor

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// keyboard puts stdin into cbreak mode, making single keypresses available
// on the Keys channel without waiting for a newline.
type keyboard struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	// Keys receives one rune per keypress while the terminal is in cbreak
	// mode
	Keys chan rune
}

// newKeyboard fails if stdin is not a terminal.
func newKeyboard() (*keyboard, error) {
	kb := &keyboard{
		input: os.Stdin,
		Keys:  make(chan rune),
	}

	if err := termios.Tcgetattr(kb.input.Fd(), &kb.canAttr); err != nil {
		return nil, fmt.Errorf("monitor: %w", err)
	}

	kb.cbreakAttr = kb.canAttr
	termios.Cfmakecbreak(&kb.cbreakAttr)

	if err := termios.Tcsetattr(kb.input.Fd(), termios.TCSANOW, &kb.cbreakAttr); err != nil {
		return nil, fmt.Errorf("monitor: %w", err)
	}

	// the reading goroutine is never explicitly stopped. it parks on stdin
	// and dies with the process
	go func() {
		r := bufio.NewReader(kb.input)
		for {
			rn, _, err := r.ReadRune()
			if err != nil {
				return
			}
			kb.Keys <- rn
		}
	}()

	return kb, nil
}

// restore the terminal to canonical mode.
func (kb *keyboard) restore() {
	_ = termios.Tcsetattr(kb.input.Fd(), termios.TCSANOW, &kb.canAttr)
}
