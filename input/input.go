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

package input

import (
	"fmt"
	"strings"
)

// the maximum magnitude of a raw axis value as reported by the underlying
// event source.
const axisLimit = 32767.0

// Device is one attached input device, as reported by a Reader.
type Device struct {
	// the Name() of the Reader that owns the device
	Reader string

	// ID identifies the device to the owning reader. IDs are not unique
	// across readers
	ID int

	// Name as reported by the device. devices that share a name are made
	// unique with a " #N" suffix
	Name string
}

func (d Device) String() string {
	return fmt.Sprintf("%s [%s %d]", d.Name, d.Reader, d.ID)
}

// State is the result of one Read() call. The slices are owned by the caller
// and are not touched by the Reader after Read() returns.
type State struct {
	// Axes are in the range [-1.0, 1.0]. zero means the axis is centered or
	// inside the deadzone
	Axes []float32

	// Buttons are true while pressed. a reader may append synthetic buttons
	// after the physical ones
	Buttons []bool
}

// Reader buffers events from a family of input devices and surrenders them
// on demand.
type Reader interface {
	// Name identifies the reader implementation.
	Name() string

	// Devices returns the list of attached devices. Enumeration happens on
	// the first call and the result is cached; later calls return the same
	// list.
	Devices() ([]Device, error)

	// Open a device for reading. Events are buffered from this point on.
	Open(id int) error

	// Close the device and stop buffering events for it.
	Close(id int) error

	// Read folds every buffered event into the device state, in arrival
	// order, and returns a copy of that state. Read never waits on the
	// hardware.
	Read(id int) (State, error)

	// End releases whatever the reader holds open. The reader cannot be
	// used again afterwards.
	End() error
}

// Normalize converts a raw axis value into the [-1.0, 1.0] range. A raw
// value with a magnitude below the deadzone gives exactly zero.
func Normalize(raw int16, deadzone int16) float32 {
	d := int32(deadzone)
	if d < 0 {
		d = -d
	}

	v := int32(raw)
	if v > -d && v < d {
		return 0
	}

	// the most negative raw value exceeds the limit by one
	n := float32(v) / axisLimit
	if n < -1.0 {
		return -1.0
	}
	if n > 1.0 {
		return 1.0
	}

	return n
}

// UniqueName disambiguates a device name against the names already allocated
// by a reader. The second and subsequent devices with the same name receive
// a " #N" suffix.
func UniqueName(name string, allocated []string) string {
	n := 0
	for _, a := range allocated {
		if a == name || strings.HasPrefix(a, name+" #") {
			n++
		}
	}

	if n == 0 {
		return name
	}

	return fmt.Sprintf("%s #%d", name, n+1)
}
