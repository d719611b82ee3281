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

package linuxjs

import (
	"encoding/binary"
	"sync"

	"github.com/mikezter/flightstick/input"
)

// the reader name reported in the device list.
const readerName = "linuxjs"

// kernel joystick event types. the init flag marks the synthetic events that
// describe the device state at open time; masking it off leaves the base
// type.
const (
	eventButton = 0x01
	eventAxis   = 0x02
	eventInit   = 0x80
)

// the byte length of one kernel joystick event record.
const eventSize = 8

// event is one kernel joystick event record: {time, value, type, number}.
type event struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

// decode an event record from its kernel byte layout. the kernel presents
// the record in native order, which is little endian on every host this
// reader runs on.
func decode(b []byte) event {
	return event{
		Time:   binary.LittleEndian.Uint32(b),
		Value:  int16(binary.LittleEndian.Uint16(b[4:])),
		Type:   b[6],
		Number: b[7],
	}
}

// stick is one kernel joystick device.
type stick struct {
	id   int
	name string
	path string

	// open file descriptor. -1 while the stick is closed
	fd int

	crit struct {
		section sync.Mutex

		// device state as of the last read(). sized from the axis and
		// button counts reported by the kernel on open
		axes    []float32
		buttons []bool
	}
}

// apply one event to the device state. the init flag is masked off and the
// event applied as its base type. events for an axis or button the device
// does not have are ignored.
//
// callers must hold the critical section.
func (s *stick) apply(ev event, deadzone int16) {
	switch ev.Type &^ eventInit {
	case eventAxis:
		if int(ev.Number) < len(s.crit.axes) {
			s.crit.axes[ev.Number] = input.Normalize(ev.Value, deadzone)
		}
	case eventButton:
		if int(ev.Number) < len(s.crit.buttons) {
			s.crit.buttons[ev.Number] = ev.Value != 0
		}
	}
}
