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
	"runtime"
	"sync"
	"time"

	"github.com/mikezter/flightstick/input"
	"github.com/mikezter/flightstick/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// the reader name reported in the device list.
const readerName = "sdl"

// Controllers reads game controllers through the SDL game-controller API. It
// implements the input.Reader interface.
type Controllers struct {
	prf *input.Preferences

	// functions that must run on the event pump goroutine are queued on the
	// service channel. the reply arrives on serviceErr
	service    chan func()
	serviceErr chan error

	crit struct {
		// the critical section also serialises service requests. a request
		// is only ever sent with the section locked, so replies on
		// serviceErr cannot cross between callers
		section sync.Mutex

		// pads indexed by device id. populated during enumeration and never
		// changed afterwards
		pads map[int]*pad

		// the cached result of enumeration
		devices    []input.Device
		enumerated bool

		// End() has been called
		ended bool
	}

	// the remaining fields are owned by the event pump goroutine.

	// event routing by joystick instance id. pads are added on Open() and
	// removed on Close()
	routing map[sdl.JoystickID]*pad

	// events are only drained while a device is open. reading the event
	// queue after a device has closed can crash the library, even when
	// another device is still open
	draining bool
}

// NewControllers is the preferred method of initialisation for the
// Controllers type. It starts the event pump and brings up the underlying
// library, failing immediately if the library cannot start.
//
// Linux hosts are refused. The combination of SDL and this process is known
// to crash on Linux; the linuxjs reader covers those hosts.
func NewControllers(prf *input.Preferences) (*Controllers, error) {
	if runtime.GOOS == "linux" {
		return nil, fmt.Errorf("sdl: no SDL support on linux hosts")
	}

	con := &Controllers{
		prf:        prf,
		service:    make(chan func(), 1),
		serviceErr: make(chan error, 1),
		routing:    make(map[sdl.JoystickID]*pad),
	}
	con.crit.pads = make(map[int]*pad)

	go con.run()

	// wait for the event pump to bring the library up
	if err := <-con.serviceErr; err != nil {
		return nil, err
	}

	return con, nil
}

// Name implements the input.Reader interface.
func (con *Controllers) Name() string {
	return readerName
}

// run is the event pump. every call into SDL happens on this goroutine,
// which stays on one OS thread for the lifetime of the reader.
func (con *Controllers) run() {
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER)
	if err != nil {
		con.serviceErr <- fmt.Errorf("sdl: %w", err)
		return
	}

	// a ground-control application is rarely the focused window while a
	// craft is flying. take joystick events regardless of focus
	sdl.SetHint(sdl.HINT_JOYSTICK_ALLOW_BACKGROUND_EVENTS, "1")

	con.serviceErr <- nil

	tick := time.NewTicker(time.Duration(con.prf.PumpInterval.Get().(int)) * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case f, ok := <-con.service:
			if !ok {
				return
			}
			f()
		case <-tick.C:
			con.pump()
		}
	}
}

// serviceReq marshals f onto the event pump goroutine and waits for the
// reply. callers must hold the critical section.
func (con *Controllers) serviceReq(f func() error) error {
	con.service <- func() {
		con.serviceErr <- f()
	}
	return <-con.serviceErr
}

// pump moves every pending controller event to the pad it belongs to.
// events that cannot be routed are discarded.
func (con *Controllers) pump() {
	if !con.draining {
		return
	}

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.ControllerAxisEvent:
			if p, ok := con.routing[ev.Which]; ok {
				p.push(ev)
			}
		case *sdl.ControllerButtonEvent:
			if p, ok := con.routing[ev.Which]; ok {
				p.push(ev)
			}
		}
	}
}

// enumerate attached game controllers. runs on the event pump goroutine.
func (con *Controllers) enumerate() {
	num := sdl.NumJoysticks()
	logger.Logf(logger.Allow, "sdl", "%d attached joysticks", num)

	var names []string

	for i := 0; i < num; i++ {
		if !sdl.IsGameController(i) {
			logger.Logf(logger.Allow, "sdl", "joystick %d is not a game controller", i)
			continue
		}

		name := input.UniqueName(sdl.GameControllerNameForIndex(i), names)
		names = append(names, name)

		con.crit.pads[i] = newPad(i, name)
		con.crit.devices = append(con.crit.devices, input.Device{
			Reader: readerName,
			ID:     i,
			Name:   name,
		})

		logger.Logf(logger.Allow, "sdl", "game controller %d: %s", i, name)
	}
}

// Devices implements the input.Reader interface. Enumeration happens on the
// first call and the result is cached; later calls return the cache.
func (con *Controllers) Devices() ([]input.Device, error) {
	con.crit.section.Lock()
	defer con.crit.section.Unlock()

	if con.crit.ended {
		return nil, fmt.Errorf("sdl: reader has ended")
	}

	if !con.crit.enumerated {
		err := con.serviceReq(func() error {
			con.enumerate()
			return nil
		})
		if err != nil {
			return nil, err
		}
		con.crit.enumerated = true
	}

	return con.crit.devices, nil
}

// Open implements the input.Reader interface.
func (con *Controllers) Open(id int) error {
	con.crit.section.Lock()
	defer con.crit.section.Unlock()

	if con.crit.ended {
		return fmt.Errorf("sdl: reader has ended")
	}

	p, ok := con.crit.pads[id]
	if !ok {
		return fmt.Errorf("sdl: no game controller with id %d", id)
	}

	return con.serviceReq(func() error {
		if p.ctrl != nil {
			// already open
			return nil
		}

		ctrl := sdl.GameControllerOpen(p.index)
		if ctrl == nil || !ctrl.Attached() {
			return fmt.Errorf("sdl: cannot open game controller %d", id)
		}

		p.ctrl = ctrl
		p.open()
		con.routing[ctrl.Joystick().InstanceID()] = p
		con.draining = true

		logger.Logf(logger.Allow, "sdl", "reading from %s", p.name)

		return nil
	})
}

// Close implements the input.Reader interface. Draining of the event queue
// stops even if other devices remain open; see the commentary on the
// draining field.
func (con *Controllers) Close(id int) error {
	con.crit.section.Lock()
	defer con.crit.section.Unlock()

	if con.crit.ended {
		return fmt.Errorf("sdl: reader has ended")
	}

	p, ok := con.crit.pads[id]
	if !ok {
		return fmt.Errorf("sdl: no game controller with id %d", id)
	}

	return con.serviceReq(func() error {
		if p.ctrl == nil {
			return fmt.Errorf("sdl: game controller %d is not open", id)
		}

		// stop draining before the device goes away
		con.draining = false

		delete(con.routing, p.ctrl.Joystick().InstanceID())
		p.ctrl.Close()
		p.ctrl = nil
		p.close()

		logger.Logf(logger.Allow, "sdl", "closed %s", p.name)

		return nil
	})
}

// Read implements the input.Reader interface. Buffered events are folded on
// the caller's goroutine; the event pump is not involved and the call never
// waits on the hardware.
func (con *Controllers) Read(id int) (input.State, error) {
	con.crit.section.Lock()
	p, ok := con.crit.pads[id]
	ended := con.crit.ended
	con.crit.section.Unlock()

	if ended {
		return input.State{}, fmt.Errorf("sdl: reader has ended")
	}

	if !ok {
		return input.State{}, fmt.Errorf("sdl: no game controller with id %d", id)
	}

	return p.read(int16(con.prf.Deadzone.Get().(int)))
}

// End implements the input.Reader interface. The event pump is stopped and
// the library shut down.
func (con *Controllers) End() error {
	con.crit.section.Lock()
	defer con.crit.section.Unlock()

	if con.crit.ended {
		return fmt.Errorf("sdl: reader has ended")
	}
	con.crit.ended = true

	pads := con.crit.pads

	err := con.serviceReq(func() error {
		con.draining = false

		for _, p := range pads {
			if p.ctrl != nil {
				p.ctrl.Close()
				p.ctrl = nil
				p.close()
			}
		}
		con.routing = make(map[sdl.JoystickID]*pad)

		sdl.Quit()

		return nil
	})

	// the pump returns when the service channel closes
	close(con.service)

	return err
}
