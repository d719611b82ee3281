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

package readers

import (
	"errors"
	"testing"

	"github.com/mikezter/flightstick/input"
	"github.com/mikezter/flightstick/test"
)

type stubReader struct {
	name    string
	devices []input.Device
	devErr  error
	endErr  error
	ended   bool
}

func (r *stubReader) Name() string {
	return r.name
}

func (r *stubReader) Devices() ([]input.Device, error) {
	if r.devErr != nil {
		return nil, r.devErr
	}
	return r.devices, nil
}

func (r *stubReader) Open(id int) error {
	return nil
}

func (r *stubReader) Close(id int) error {
	return nil
}

func (r *stubReader) Read(id int) (input.State, error) {
	return input.State{}, nil
}

func (r *stubReader) End() error {
	r.ended = true
	return r.endErr
}

func testCollection() *Collection {
	return &Collection{readers: []input.Reader{
		&stubReader{name: "a", devices: []input.Device{
			{Reader: "a", ID: 0, Name: "Alpha"},
			{Reader: "a", ID: 1, Name: "Beta"},
		}},
		&stubReader{name: "b", devices: []input.Device{
			{Reader: "b", ID: 0, Name: "Gamma"},
		}},
	}}
}

func TestDevicesFlatten(t *testing.T) {
	col := testCollection()

	devs := col.Devices()
	test.ExpectEquality(t, len(devs), 3)
	test.ExpectEquality(t, devs[0].Name, "Alpha")
	test.ExpectEquality(t, devs[1].Name, "Beta")
	test.ExpectEquality(t, devs[2].Name, "Gamma")
	test.ExpectEquality(t, devs[2].Reader, "b")
}

func TestFind(t *testing.T) {
	col := testCollection()

	// the flat number crosses reader boundaries but the device keeps its
	// reader local id
	r, dev, err := col.Find(2)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, r.Name(), "b")
	test.ExpectEquality(t, dev.Name, "Gamma")
	test.ExpectEquality(t, dev.ID, 0)

	r, dev, err = col.Find(1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, r.Name(), "a")
	test.ExpectEquality(t, dev.ID, 1)

	_, _, err = col.Find(3)
	test.ExpectFailure(t, err)
	_, _, err = col.Find(-1)
	test.ExpectFailure(t, err)
}

func TestFailingReaderSkipped(t *testing.T) {
	col := testCollection()
	col.readers = append([]input.Reader{
		&stubReader{name: "bad", devErr: errors.New("bad: no devices")},
	}, col.readers...)

	// the failing reader contributes nothing to the numbering
	devs := col.Devices()
	test.ExpectEquality(t, len(devs), 3)

	r, dev, err := col.Find(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, r.Name(), "a")
	test.ExpectEquality(t, dev.Name, "Alpha")
}

func TestEnd(t *testing.T) {
	col := testCollection()
	col.readers = append(col.readers, &stubReader{name: "c", endErr: errors.New("c: end failure")})

	err := col.End()
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, err.Error(), "c: end failure")

	// every reader is ended even when one fails
	for _, r := range col.readers {
		test.ExpectEquality(t, r.(*stubReader).ended, true)
	}
}
