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

//go:build windows

package monitor

import (
	"fmt"
)

// the termios keyboard is not available under windows. the monitor still
// runs but only the interrupt signal ends it.
type keyboard struct {
	Keys chan rune
}

func newKeyboard() (*keyboard, error) {
	return nil, fmt.Errorf("monitor: keyboard not supported on windows")
}

func (kb *keyboard) restore() {
}
