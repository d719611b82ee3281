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

// Package sdlpad reads game controllers through the SDL game-controller
// API. Devices are mapped 360-style: six axes and fifteen buttons, plus two
// synthetic buttons mirroring the trigger axes, whatever the physical device
// looks like.
//
// A single goroutine, locked to its OS thread, owns every call into SDL. It
// polls the global event queue at a fixed interval and distributes
// controller events to per-device buffers, which Read() drains on the
// caller's goroutine. Open(), Close() and the other operations marshal their
// library calls onto that goroutine over a service channel.
//
// The reader refuses to construct on Linux hosts, where SDL is known to
// crash this process. The linuxjs package reads the kernel joystick devices
// directly on those hosts.
package sdlpad
