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

// Package readers gathers every input.Reader implementation known to the
// application and flattens their device lists into a single numbering.
package readers

import (
	"fmt"

	"github.com/mikezter/flightstick/input"
	"github.com/mikezter/flightstick/input/linuxjs"
	"github.com/mikezter/flightstick/input/sdlpad"
	"github.com/mikezter/flightstick/logger"
)

// Collection aggregates every input.Reader that could be started on this
// host. The readers slice is fixed at Connect() time.
type Collection struct {
	readers []input.Reader
}

// Connect constructs each known reader. A reader that cannot start on this
// host is logged and skipped, it is not an error. The sdl reader refuses
// linux hosts and the linuxjs reader refuses everything else, so the
// collection normally holds one reader.
func Connect(prf *input.Preferences) *Collection {
	col := &Collection{}

	if r, err := linuxjs.NewJoysticks(prf); err != nil {
		logger.Logf(logger.Allow, "readers", "skipping: %v", err)
	} else {
		col.readers = append(col.readers, r)
	}

	if r, err := sdlpad.NewControllers(prf); err != nil {
		logger.Logf(logger.Allow, "readers", "skipping: %v", err)
	} else {
		col.readers = append(col.readers, r)
	}

	return col
}

// Readers returns the connected readers in connection order.
func (col *Collection) Readers() []input.Reader {
	return col.readers
}

// Devices flattens every reader's device list into one slice, in reader
// order. The index into the returned slice is the device number used by
// Find(). A reader whose enumeration fails is logged and skipped.
func (col *Collection) Devices() []input.Device {
	var devices []input.Device

	for _, r := range col.readers {
		devs, err := r.Devices()
		if err != nil {
			logger.Logf(logger.Allow, "readers", "%v", err)
			continue
		}
		devices = append(devices, devs...)
	}

	return devices
}

// Find maps a flat device number back to the reader and device it belongs
// to. Numbering follows Devices().
func (col *Collection) Find(n int) (input.Reader, input.Device, error) {
	if n >= 0 {
		rem := n
		for _, r := range col.readers {
			devs, err := r.Devices()
			if err != nil {
				logger.Logf(logger.Allow, "readers", "%v", err)
				continue
			}
			if rem < len(devs) {
				return r, devs[rem], nil
			}
			rem -= len(devs)
		}
	}

	return nil, input.Device{}, fmt.Errorf("readers: no device numbered %d", n)
}

// End every connected reader. All readers are ended even when one of them
// fails; the first failure is returned and the rest are logged.
func (col *Collection) End() error {
	var rerr error

	for _, r := range col.readers {
		if err := r.End(); err != nil {
			if rerr == nil {
				rerr = err
			} else {
				logger.Logf(logger.Allow, "readers", "%v", err)
			}
		}
	}

	return rerr
}
