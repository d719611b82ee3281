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

//go:build linux

package linuxjs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/mikezter/flightstick/input"
	"github.com/mikezter/flightstick/logger"
)

// where the kernel presents joystick device nodes.
const inputPath = "/dev/input"

// ioctl requests for the kernel joystick interface. the name request
// encodes the length of the reply buffer.
const (
	jsiocgAxes    = 0x80016a11
	jsiocgButtons = 0x80016a12
	jsiocgName    = 0x80006a13 + (128 << 16)
)

// Joysticks reads the kernel joystick devices under /dev/input. It
// implements the input.Reader interface.
//
// The kernel buffers events on each open descriptor, so there is no event
// pump; Read() drains the descriptor on the caller's goroutine.
type Joysticks struct {
	prf *input.Preferences

	crit struct {
		section sync.Mutex

		// sticks indexed by device id. populated during enumeration and
		// never changed afterwards
		sticks map[int]*stick

		// the cached result of enumeration
		devices    []input.Device
		enumerated bool

		// End() has been called
		ended bool
	}
}

// NewJoysticks is the preferred method of initialisation for the Joysticks
// type. It fails if the kernel interface is unavailable.
func NewJoysticks(prf *input.Preferences) (*Joysticks, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("linuxjs: %w", err)
	}

	j := &Joysticks{prf: prf}
	j.crit.sticks = make(map[int]*stick)

	return j, nil
}

// Name implements the input.Reader interface.
func (j *Joysticks) Name() string {
	return readerName
}

// enumerate joystick device nodes, in directory name order. nodes that
// cannot be opened are logged and skipped. caller holds the critical
// section.
func (j *Joysticks) enumerate() error {
	entries, err := os.ReadDir(inputPath)
	if err != nil {
		return fmt.Errorf("linuxjs: %w", err)
	}

	var names []string

	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "js") {
			continue
		}
		pth := filepath.Join(inputPath, e.Name())

		name, err := deviceName(pth)
		if err != nil {
			logger.Logf(logger.Allow, "linuxjs", "%s: %v", pth, err)
			continue
		}

		name = input.UniqueName(name, names)
		names = append(names, name)

		id := len(j.crit.devices)
		j.crit.sticks[id] = &stick{
			id:   id,
			name: name,
			path: pth,
			fd:   -1,
		}
		j.crit.devices = append(j.crit.devices, input.Device{
			Reader: readerName,
			ID:     id,
			Name:   name,
		})

		logger.Logf(logger.Allow, "linuxjs", "joystick %d: %s (%s)", id, name, pth)
	}

	return nil
}

// Devices implements the input.Reader interface. Enumeration happens on the
// first call and the result is cached; later calls return the cache.
func (j *Joysticks) Devices() ([]input.Device, error) {
	j.crit.section.Lock()
	defer j.crit.section.Unlock()

	if j.crit.ended {
		return nil, fmt.Errorf("linuxjs: reader has ended")
	}

	if !j.crit.enumerated {
		if err := j.enumerate(); err != nil {
			return nil, err
		}
		j.crit.enumerated = true
	}

	return j.crit.devices, nil
}

// Open implements the input.Reader interface.
func (j *Joysticks) Open(id int) error {
	s, err := j.stick(id)
	if err != nil {
		return err
	}
	return s.open()
}

// Close implements the input.Reader interface.
func (j *Joysticks) Close(id int) error {
	s, err := j.stick(id)
	if err != nil {
		return err
	}
	return s.close()
}

// Read implements the input.Reader interface. Buffered events are drained
// from the descriptor without waiting; if the kernel has nothing queued the
// previous state is returned.
func (j *Joysticks) Read(id int) (input.State, error) {
	s, err := j.stick(id)
	if err != nil {
		return input.State{}, err
	}
	return s.read(int16(j.prf.Deadzone.Get().(int)))
}

// End implements the input.Reader interface. Every open descriptor is
// closed.
func (j *Joysticks) End() error {
	j.crit.section.Lock()
	defer j.crit.section.Unlock()

	if j.crit.ended {
		return fmt.Errorf("linuxjs: reader has ended")
	}
	j.crit.ended = true

	for _, s := range j.crit.sticks {
		s.crit.section.Lock()
		if s.fd >= 0 {
			_ = unix.Close(s.fd)
			s.fd = -1
			s.crit.axes = nil
			s.crit.buttons = nil
		}
		s.crit.section.Unlock()
	}

	return nil
}

// stick looks up a device id.
func (j *Joysticks) stick(id int) (*stick, error) {
	j.crit.section.Lock()
	defer j.crit.section.Unlock()

	if j.crit.ended {
		return nil, fmt.Errorf("linuxjs: reader has ended")
	}

	s, ok := j.crit.sticks[id]
	if !ok {
		return nil, fmt.Errorf("linuxjs: no joystick with id %d", id)
	}

	return s, nil
}

// open the device node and size the state from the axis and button counts
// reported by the kernel. the kernel queues an initial burst of events on
// the new descriptor, one for every axis and button, so the first read()
// sees the resting state of the device.
func (s *stick) open() error {
	s.crit.section.Lock()
	defer s.crit.section.Unlock()

	if s.fd >= 0 {
		// already open
		return nil
	}

	fd, err := unix.Open(s.path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return fmt.Errorf("linuxjs: %w", err)
	}

	var numAxes uint8
	var numButtons uint8
	if err := ioctl(fd, jsiocgAxes, unsafe.Pointer(&numAxes)); err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("linuxjs: %s: %w", s.name, err)
	}
	if err := ioctl(fd, jsiocgButtons, unsafe.Pointer(&numButtons)); err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("linuxjs: %s: %w", s.name, err)
	}

	s.fd = fd
	s.crit.axes = make([]float32, numAxes)
	s.crit.buttons = make([]bool, numButtons)

	logger.Logf(logger.Allow, "linuxjs", "reading from %s. %d axes, %d buttons", s.name, numAxes, numButtons)

	return nil
}

// close the device node.
func (s *stick) close() error {
	s.crit.section.Lock()
	defer s.crit.section.Unlock()

	if s.fd < 0 {
		return fmt.Errorf("linuxjs: %s is not open", s.name)
	}

	err := unix.Close(s.fd)
	s.fd = -1
	s.crit.axes = nil
	s.crit.buttons = nil

	if err != nil {
		return fmt.Errorf("linuxjs: %w", err)
	}

	logger.Logf(logger.Allow, "linuxjs", "closed %s", s.name)

	return nil
}

// read drains the descriptor, folds the events into the device state in
// arrival order, and returns a copy of the state. the descriptor is
// non-blocking: the drain stops as soon as the kernel has nothing queued.
func (s *stick) read(deadzone int16) (input.State, error) {
	s.crit.section.Lock()
	defer s.crit.section.Unlock()

	if s.fd < 0 {
		return input.State{}, fmt.Errorf("linuxjs: %s is not open", s.name)
	}

	buf := make([]byte, eventSize)
	for {
		n, err := unix.Read(s.fd, buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) {
				break
			}
			return input.State{}, fmt.Errorf("linuxjs: %s: %w", s.name, err)
		}
		if n < eventSize {
			// a short record cannot be decoded
			break
		}

		s.apply(decode(buf), deadzone)
	}

	state := input.State{
		Axes:    make([]float32, len(s.crit.axes)),
		Buttons: make([]bool, len(s.crit.buttons)),
	}
	copy(state.Axes, s.crit.axes)
	copy(state.Buttons, s.crit.buttons)

	return state, nil
}

// deviceName opens the device node just long enough to ask for its name.
func deviceName(path string) (string, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return "", err
	}
	defer unix.Close(fd)

	buf := make([]byte, 128)
	if err := ioctl(fd, jsiocgName, unsafe.Pointer(&buf[0])); err != nil {
		return "", err
	}

	// the kernel NUL terminates the name
	name, _, _ := strings.Cut(string(buf), "\x00")

	return name, nil
}

// ioctl wraps the raw syscall. the dest pointer must reference memory sized
// for the request.
func ioctl(fd int, req uint, dest unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(dest))
	if errno != 0 {
		return fmt.Errorf("ioctl: %w", errno)
	}
	return nil
}
