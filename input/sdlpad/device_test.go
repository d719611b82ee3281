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

package sdlpad

import (
	"testing"

	"github.com/mikezter/flightstick/input"
	"github.com/mikezter/flightstick/test"
	"github.com/veandco/go-sdl2/sdl"
)

func TestImplementsReader(t *testing.T) {
	test.ExpectImplements[input.Reader](t, &Controllers{}, nil)
}

func TestAxisFolding(t *testing.T) {
	p := newPad(0, "test pad")
	p.open()

	// a value inside the deadzone reads as zero
	p.push(&sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: 0, Value: 1500})
	s, err := p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Axes[0], 0)

	// a value outside the deadzone normalizes
	p.push(&sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: 1, Value: 32767})
	s, err = p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Axes[1], 1.0)

	// events fold in arrival order. the later event wins
	p.push(&sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: 1, Value: -32768})
	p.push(&sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: 1, Value: 16000})
	s, err = p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectApproximate(t, s.Axes[1], 0.488, 0.01)

	// state persists between reads when no events arrive
	s, err = p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectApproximate(t, s.Axes[1], 0.488, 0.01)
}

func TestTriggerButtons(t *testing.T) {
	p := newPad(0, "test pad")
	p.open()

	// the left trigger takes the last button slot and the right trigger the
	// slot before it
	p.push(&sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: sdl.CONTROLLER_AXIS_TRIGGERLEFT, Value: 30000})
	s, err := p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Buttons[len(s.Buttons)-1], true)
	test.ExpectEquality(t, s.Buttons[len(s.Buttons)-2], false)

	p.push(&sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: sdl.CONTROLLER_AXIS_TRIGGERRIGHT, Value: 30000})
	s, err = p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Buttons[len(s.Buttons)-1], true)
	test.ExpectEquality(t, s.Buttons[len(s.Buttons)-2], true)

	// a trigger value inside the deadzone releases the button
	p.push(&sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: sdl.CONTROLLER_AXIS_TRIGGERLEFT, Value: 1000})
	s, err = p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Buttons[len(s.Buttons)-1], false)

	// the trigger value lands in the axis slot as well
	test.ExpectApproximate(t, s.Axes[sdl.CONTROLLER_AXIS_TRIGGERRIGHT], 0.91, 0.01)
}

func TestButtonFolding(t *testing.T) {
	p := newPad(0, "test pad")
	p.open()

	p.push(&sdl.ControllerButtonEvent{Type: sdl.CONTROLLERBUTTONDOWN, Button: 3, State: sdl.PRESSED})
	s, err := p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Buttons[3], true)

	p.push(&sdl.ControllerButtonEvent{Type: sdl.CONTROLLERBUTTONUP, Button: 3, State: sdl.RELEASED})
	s, err = p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Buttons[3], false)

	// a press and release in the same poll period folds to released
	p.push(&sdl.ControllerButtonEvent{Type: sdl.CONTROLLERBUTTONDOWN, Button: 7, State: sdl.PRESSED})
	p.push(&sdl.ControllerButtonEvent{Type: sdl.CONTROLLERBUTTONUP, Button: 7, State: sdl.RELEASED})
	s, err = p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Buttons[7], false)
}

func TestMalformedEvents(t *testing.T) {
	p := newPad(0, "test pad")
	p.open()

	// out of range indices are ignored without error
	p.push(&sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: 200, Value: 32767})
	p.push(&sdl.ControllerButtonEvent{Type: sdl.CONTROLLERBUTTONDOWN, Button: 200, State: sdl.PRESSED})

	// a physical button event can never reach the synthetic trigger slots
	p.push(&sdl.ControllerButtonEvent{Type: sdl.CONTROLLERBUTTONDOWN, Button: rightTriggerButton, State: sdl.PRESSED})

	s, err := p.read(2000)
	test.ExpectSuccess(t, err)
	for i := range s.Axes {
		test.ExpectEquality(t, s.Axes[i], 0)
	}
	for i := range s.Buttons {
		test.ExpectEquality(t, s.Buttons[i], false)
	}
}

func TestReadClosedPad(t *testing.T) {
	p := newPad(0, "test pad")

	_, err := p.read(2000)
	test.ExpectFailure(t, err)

	p.open()
	_, err = p.read(2000)
	test.ExpectSuccess(t, err)

	p.close()
	_, err = p.read(2000)
	test.ExpectFailure(t, err)

	// events arriving at a closed pad are dropped quietly
	p.push(&sdl.ControllerButtonEvent{Type: sdl.CONTROLLERBUTTONDOWN, Button: 0, State: sdl.PRESSED})

	p.open()
	s, err := p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Buttons[0], false)
}

func TestBufferCap(t *testing.T) {
	p := newPad(0, "test pad")
	p.open()

	for range maxQueuedEvents + 100 {
		p.push(&sdl.ControllerButtonEvent{Type: sdl.CONTROLLERBUTTONDOWN, Button: 0, State: sdl.PRESSED})
	}

	p.crit.section.Lock()
	test.ExpectEquality(t, p.crit.events.Length(), maxQueuedEvents)
	p.crit.section.Unlock()

	// the buffered events still fold
	s, err := p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Buttons[0], true)
}

func TestPadsIndependent(t *testing.T) {
	p1 := newPad(0, "first pad")
	p1.open()
	p2 := newPad(1, "second pad")
	p2.open()

	p1.push(&sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: 0, Value: 32767})
	p2.push(&sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: 0, Value: -32768})

	// draining one pad leaves the other pad's buffer alone
	s, err := p1.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Axes[0], 1.0)

	p2.crit.section.Lock()
	test.ExpectEquality(t, p2.crit.events.Length(), 1)
	p2.crit.section.Unlock()

	s, err = p2.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Axes[0], -1.0)
}

func TestStateIsACopy(t *testing.T) {
	p := newPad(0, "test pad")
	p.open()

	p.push(&sdl.ControllerAxisEvent{Type: sdl.CONTROLLERAXISMOTION, Axis: 0, Value: 32767})
	s, err := p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Axes[0], 1.0)

	// scribbling on the returned state must not affect the pad
	s.Axes[0] = -99
	s.Buttons[0] = true

	s, err = p.read(2000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Axes[0], 1.0)
	test.ExpectEquality(t, s.Buttons[0], false)
}
