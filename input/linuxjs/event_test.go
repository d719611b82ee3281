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
	"testing"

	"github.com/mikezter/flightstick/input"
	"github.com/mikezter/flightstick/test"
)

func TestImplementsReader(t *testing.T) {
	test.ExpectImplements[input.Reader](t, &Joysticks{}, nil)
}

func TestDecode(t *testing.T) {
	// {time 0x01020304, value -1000, axis type, number 3} in the kernel's
	// little endian record layout
	b := []byte{0x04, 0x03, 0x02, 0x01, 0x18, 0xfc, 0x02, 0x03}

	ev := decode(b)
	test.ExpectEquality(t, ev.Time, 0x01020304)
	test.ExpectEquality(t, ev.Value, -1000)
	test.ExpectEquality(t, ev.Type, eventAxis)
	test.ExpectEquality(t, ev.Number, 3)
}

func newTestStick(numAxes int, numButtons int) *stick {
	s := &stick{name: "test", fd: -1}
	s.crit.axes = make([]float32, numAxes)
	s.crit.buttons = make([]bool, numButtons)
	return s
}

func TestApplyAxis(t *testing.T) {
	s := newTestStick(4, 8)

	s.apply(event{Type: eventAxis, Number: 1, Value: 16000}, 2000)
	test.ExpectApproximate(t, s.crit.axes[1], 0.488, 0.001)

	// a value inside the deadzone folds to zero
	s.apply(event{Type: eventAxis, Number: 1, Value: 1999}, 2000)
	test.ExpectEquality(t, s.crit.axes[1], 0.0)

	// full deflection in both directions
	s.apply(event{Type: eventAxis, Number: 0, Value: 32767}, 2000)
	test.ExpectEquality(t, s.crit.axes[0], 1.0)
	s.apply(event{Type: eventAxis, Number: 0, Value: -32768}, 2000)
	test.ExpectEquality(t, s.crit.axes[0], -1.0)
}

func TestApplyButton(t *testing.T) {
	s := newTestStick(4, 8)

	s.apply(event{Type: eventButton, Number: 5, Value: 1}, 2000)
	test.ExpectEquality(t, s.crit.buttons[5], true)

	s.apply(event{Type: eventButton, Number: 5, Value: 0}, 2000)
	test.ExpectEquality(t, s.crit.buttons[5], false)
}

func TestApplyInitFlag(t *testing.T) {
	s := newTestStick(4, 8)

	// init flagged events are applied as their base type. the kernel sends
	// these on open to describe the resting state of the device
	s.apply(event{Type: eventAxis | eventInit, Number: 2, Value: 32767}, 2000)
	test.ExpectEquality(t, s.crit.axes[2], 1.0)

	s.apply(event{Type: eventButton | eventInit, Number: 0, Value: 1}, 2000)
	test.ExpectEquality(t, s.crit.buttons[0], true)
}

func TestApplyMalformed(t *testing.T) {
	s := newTestStick(4, 8)

	// unknown event type
	s.apply(event{Type: 0x04, Number: 1, Value: 32767}, 2000)

	// axis and button numbers the device does not have
	s.apply(event{Type: eventAxis, Number: 4, Value: 32767}, 2000)
	s.apply(event{Type: eventButton, Number: 8, Value: 1}, 2000)

	for _, v := range s.crit.axes {
		test.ExpectEquality(t, v, 0.0)
	}
	for _, v := range s.crit.buttons {
		test.ExpectEquality(t, v, false)
	}
}
