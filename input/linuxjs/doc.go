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

// Package linuxjs reads joystick devices through the Linux kernel joystick
// interface, the js* nodes under /dev/input. It is the input.Reader used on
// linux hosts, where the SDL game controller reader refuses to run.
//
// Unlike the SDL reader there is no event pump. The kernel queues events on
// each open descriptor and Read() drains the queue on the caller's
// goroutine. The descriptor is opened non-blocking so the drain ends as
// soon as the kernel has nothing more to give.
//
// Device nodes are enumerated once, on the first call to Devices(). Axis
// and button counts are not fixed by any mapping table, they are whatever
// the kernel reports for the device; in particular there are no synthetic
// trigger buttons.
//
// On non-linux hosts NewJoysticks() always returns an error.
package linuxjs
