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

// Package input defines the polling contract between a ground-control
// application and its joystick-like devices.
//
// A Reader buffers hardware events in the background while the application
// gets on with other work. The application calls Read() at its own cadence,
// typically from its control loop. Read() folds every event buffered since
// the previous call into the device state and returns a copy of that state.
// It never waits for the hardware.
//
// Axis values are normalized to the range [-1.0, 1.0]. A raw value with a
// magnitude below the configured deadzone reads as exactly zero, which keeps
// a resting stick from commanding the craft. Button states are booleans. A
// reader may expose synthetic buttons in addition to the physical ones; the
// sdlpad reader does this for the trigger axes.
//
// Two Reader implementations exist. Package sdlpad wraps the SDL game
// controller API and package linuxjs reads the Linux joystick device nodes
// directly. Package readers collects whichever of them can start on the host
// into a single flat device list.
//
// The Preferences type holds the settings shared by the readers (deadzone,
// pump interval), backed by the application preferences file.
package input
