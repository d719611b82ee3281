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

//go:build !linux

package linuxjs

import (
	"fmt"
	"runtime"

	"github.com/mikezter/flightstick/input"
)

// Joysticks is unavailable on hosts without the kernel joystick interface.
// It implements the input.Reader interface so that callers can be compiled
// for any platform.
type Joysticks struct{}

// NewJoysticks always fails on this platform.
func NewJoysticks(prf *input.Preferences) (*Joysticks, error) {
	return nil, fmt.Errorf("linuxjs: no kernel joystick interface on %s hosts", runtime.GOOS)
}

// Name implements the input.Reader interface.
func (j *Joysticks) Name() string {
	return readerName
}

// Devices implements the input.Reader interface.
func (j *Joysticks) Devices() ([]input.Device, error) {
	return nil, fmt.Errorf("linuxjs: unsupported on %s hosts", runtime.GOOS)
}

// Open implements the input.Reader interface.
func (j *Joysticks) Open(id int) error {
	return fmt.Errorf("linuxjs: unsupported on %s hosts", runtime.GOOS)
}

// Close implements the input.Reader interface.
func (j *Joysticks) Close(id int) error {
	return fmt.Errorf("linuxjs: unsupported on %s hosts", runtime.GOOS)
}

// Read implements the input.Reader interface.
func (j *Joysticks) Read(id int) (input.State, error) {
	return input.State{}, fmt.Errorf("linuxjs: unsupported on %s hosts", runtime.GOOS)
}

// End implements the input.Reader interface.
func (j *Joysticks) End() error {
	return fmt.Errorf("linuxjs: unsupported on %s hosts", runtime.GOOS)
}
