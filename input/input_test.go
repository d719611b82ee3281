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

package input_test

import (
	"math"
	"testing"

	"github.com/mikezter/flightstick/input"
	"github.com/mikezter/flightstick/test"
)

func TestNormalize(t *testing.T) {
	// values inside the deadzone read as zero
	test.ExpectEquality(t, input.Normalize(0, 2000), 0)
	test.ExpectEquality(t, input.Normalize(1999, 2000), 0)
	test.ExpectEquality(t, input.Normalize(-1999, 2000), 0)

	// the deadzone value itself is outside the deadzone
	test.ExpectEquality(t, input.Normalize(2000, 2000), float32(2000)/32767)
	test.ExpectEquality(t, input.Normalize(-2000, 2000), float32(-2000)/32767)

	// full deflection
	test.ExpectEquality(t, input.Normalize(32767, 2000), 1.0)
	test.ExpectEquality(t, input.Normalize(-32767, 2000), -1.0)

	// the most negative raw value clamps rather than overshoot
	test.ExpectEquality(t, input.Normalize(-32768, 2000), -1.0)

	// half deflection is near enough a half
	test.ExpectApproximate(t, input.Normalize(16384, 2000), 0.5, 0.001)

	// a deadzone of zero passes everything through
	test.ExpectEquality(t, input.Normalize(5, 0), float32(5)/32767)

	// a negative deadzone works by magnitude
	test.ExpectEquality(t, input.Normalize(1000, -2000), 0)
}

func TestNormalizeRange(t *testing.T) {
	// every representable raw value lands inside [-1.0, 1.0] and the
	// deadzone is honored throughout
	for r := math.MinInt16; r <= math.MaxInt16; r++ {
		v := input.Normalize(int16(r), 2000)
		test.ExpectSuccess(t, v >= -1.0 && v <= 1.0)
		if r > -2000 && r < 2000 {
			test.ExpectEquality(t, v, 0)
		}
	}
}

func TestUniqueName(t *testing.T) {
	var allocated []string

	n := input.UniqueName("Gamepad", allocated)
	test.ExpectEquality(t, n, "Gamepad")
	allocated = append(allocated, n)

	// second device with the same name receives a suffix
	n = input.UniqueName("Gamepad", allocated)
	test.ExpectEquality(t, n, "Gamepad #2")
	allocated = append(allocated, n)

	// and so does the third
	n = input.UniqueName("Gamepad", allocated)
	test.ExpectEquality(t, n, "Gamepad #3")
	allocated = append(allocated, n)

	// a different name is unaffected
	n = input.UniqueName("Throttle", allocated)
	test.ExpectEquality(t, n, "Throttle")
}

func TestDeviceString(t *testing.T) {
	d := input.Device{Reader: "sdl", ID: 0, Name: "Gamepad #2"}
	test.ExpectEquality(t, d.String(), "Gamepad #2 [sdl 0]")
}
