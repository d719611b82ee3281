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

	"github.com/mikezter/flightstick/prefs"
	"github.com/mikezter/flightstick/resources"
)

// Preferences defines and collates the preference values shared by the input
// readers.
type Preferences struct {
	dsk *prefs.Disk

	// raw axis values with a magnitude below the deadzone read as zero
	Deadzone prefs.Int

	// how often the event pump empties the underlying event queue, in
	// milliseconds
	PumpInterval prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// default values. deadzone is in raw axis counts, pump interval in
// milliseconds.
const (
	deadzone     = 2000
	pumpInterval = 10
)

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}

	err = p.dsk.Add("input.deadzone", &p.Deadzone)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}

	err = p.dsk.Add("input.pump", &p.PumpInterval)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.Deadzone.Set(deadzone)
	p.PumpInterval.Set(pumpInterval)
}

// Load current input preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current input preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
