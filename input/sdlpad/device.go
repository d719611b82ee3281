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
	"fmt"
	"sync"

	"github.com/eapache/queue"
	"github.com/mikezter/flightstick/input"
	"github.com/mikezter/flightstick/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// the axis and button counts of a game controller. every controller surfaced
// by the game-controller API has this shape regardless of the physical
// device.
const (
	numAxes    = sdl.CONTROLLER_AXIS_MAX
	numButtons = sdl.CONTROLLER_BUTTON_MAX + 2
)

// the button list is two entries longer than the physical button count. the
// extra slots mirror the trigger axes as digital buttons: a trigger button
// is pressed while the deadzone filtered trigger value is greater than zero.
const (
	rightTriggerButton = numButtons - 2
	leftTriggerButton  = numButtons - 1
)

// maximum number of buffered events per device. a consumer that has stopped
// polling must not grow memory without bound.
const maxQueuedEvents = 1024

// pad is one game controller.
type pad struct {
	// position of the device in the game-controller API. doubles as the
	// public device id
	index int

	name string

	// the open controller. nil while the pad is closed. only the event pump
	// goroutine touches this field
	ctrl *sdl.GameController

	crit struct {
		section sync.Mutex

		// events buffered since the last read(). nil while the pad is closed
		events *queue.Queue

		// device state as of the last read()
		axes    []float32
		buttons []bool
	}
}

func newPad(index int, name string) *pad {
	return &pad{
		index: index,
		name:  name,
	}
}

// open allocates fresh device state. events buffer from this point on.
func (p *pad) open() {
	p.crit.section.Lock()
	defer p.crit.section.Unlock()

	p.crit.events = queue.New()
	p.crit.axes = make([]float32, numAxes)
	p.crit.buttons = make([]bool, numButtons)
}

// close drops the event buffer and the device state.
func (p *pad) close() {
	p.crit.section.Lock()
	defer p.crit.section.Unlock()

	p.crit.events = nil
	p.crit.axes = nil
	p.crit.buttons = nil
}

// push an event onto the buffer. events arriving at a closed pad or at a
// full buffer are dropped.
func (p *pad) push(ev sdl.Event) {
	p.crit.section.Lock()
	defer p.crit.section.Unlock()

	if p.crit.events == nil {
		return
	}

	if p.crit.events.Length() >= maxQueuedEvents {
		logger.Logf(logger.Allow, "sdl", "%s: event buffer full. dropping event", p.name)
		return
	}

	p.crit.events.Add(ev)
}

// read folds every buffered event into the device state, in arrival order,
// and returns a copy of that state. the deadzone argument applies to axis
// events. events that refer to an axis or button the state does not have are
// ignored.
func (p *pad) read(deadzone int16) (input.State, error) {
	p.crit.section.Lock()
	defer p.crit.section.Unlock()

	if p.crit.events == nil {
		return input.State{}, fmt.Errorf("sdl: %s is not open", p.name)
	}

	for p.crit.events.Length() > 0 {
		switch ev := p.crit.events.Remove().(type) {
		case *sdl.ControllerAxisEvent:
			if int(ev.Axis) >= numAxes {
				continue
			}

			v := input.Normalize(ev.Value, deadzone)
			p.crit.axes[ev.Axis] = v

			// the trigger axes double as digital buttons
			switch int(ev.Axis) {
			case sdl.CONTROLLER_AXIS_TRIGGERLEFT:
				p.crit.buttons[leftTriggerButton] = v > 0
			case sdl.CONTROLLER_AXIS_TRIGGERRIGHT:
				p.crit.buttons[rightTriggerButton] = v > 0
			}

		case *sdl.ControllerButtonEvent:
			if int(ev.Button) >= sdl.CONTROLLER_BUTTON_MAX {
				continue
			}
			p.crit.buttons[ev.Button] = ev.State == sdl.PRESSED
		}
	}

	state := input.State{
		Axes:    make([]float32, numAxes),
		Buttons: make([]bool, numButtons),
	}
	copy(state.Axes, p.crit.axes)
	copy(state.Buttons, p.crit.buttons)

	return state, nil
}
