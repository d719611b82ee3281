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

// Package monitor renders the state of one input device as a single
// rewriting terminal line. It is the interactive exerciser for the input
// readers.
package monitor

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mikezter/flightstick/input"
	"github.com/mikezter/flightstick/logger"
	"github.com/mikezter/flightstick/monitor/ansi"
)

// Monitor polls one device at a fixed interval and renders what it reads.
type Monitor struct {
	reader   input.Reader
	device   input.Device
	interval time.Duration
}

// NewMonitor is the preferred method of initialisation for the Monitor
// type.
func NewMonitor(reader input.Reader, device input.Device, interval time.Duration) *Monitor {
	return &Monitor{
		reader:   reader,
		device:   device,
		interval: interval,
	}
}

// Run the monitor until the q key is pressed or something arrives on
// intChan. The device is opened on entry and closed again on the way out.
func (mon *Monitor) Run(output io.Writer, intChan chan os.Signal) error {
	if mon.interval <= 0 {
		return fmt.Errorf("monitor: polling interval must be positive")
	}

	if err := mon.reader.Open(mon.device.ID); err != nil {
		return err
	}
	defer func() {
		_ = mon.reader.Close(mon.device.ID)
	}()

	// the keyboard is a nicety. without it the interrupt signal still ends
	// the monitor
	var keys chan rune
	kb, err := newKeyboard()
	if err != nil {
		logger.Logf(logger.Allow, "monitor", "%v", err)
	} else {
		defer kb.restore()
		keys = kb.Keys
	}

	fmt.Fprintf(output, "monitoring %s (q to quit)\n", mon.device)

	return mon.run(output, intChan, keys)
}

// the monitor loop. receiving on a nil keys channel blocks forever, which
// is what we want when there is no keyboard.
func (mon *Monitor) run(output io.Writer, intChan chan os.Signal, keys chan rune) error {
	tck := time.NewTicker(mon.interval)
	defer tck.Stop()

	for {
		select {
		case <-intChan:
			fmt.Fprintf(output, "\r\n")
			return nil

		case r := <-keys:
			if r == 'q' || r == 'Q' {
				fmt.Fprintf(output, "\r\n")
				return nil
			}

		case <-tck.C:
			state, err := mon.reader.Read(mon.device.ID)
			if err != nil {
				fmt.Fprintf(output, "\r\n")
				return err
			}
			fmt.Fprintf(output, "\r%s%s", ansi.ClearLine, render(state, true))
		}
	}
}

// render the state as one line: axes to two decimal places followed by one
// digit per button. with pens, pressed buttons are brightened.
func render(state input.State, pens bool) string {
	s := strings.Builder{}

	for i, v := range state.Axes {
		if i > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("%+.2f", v))
	}

	s.WriteString("  ")

	for _, b := range state.Buttons {
		switch {
		case b && pens:
			s.WriteString(ansi.Pens["green"])
			s.WriteString("1")
			s.WriteString(ansi.NormalPen)
		case b:
			s.WriteString("1")
		case pens:
			s.WriteString(ansi.DimPens["white"])
			s.WriteString("0")
			s.WriteString(ansi.NormalPen)
		default:
			s.WriteString("0")
		}
	}

	return s.String()
}
