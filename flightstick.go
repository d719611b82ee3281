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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/mikezter/flightstick/input"
	"github.com/mikezter/flightstick/input/readers"
	"github.com/mikezter/flightstick/logger"
	"github.com/mikezter/flightstick/modalflag"
	"github.com/mikezter/flightstick/monitor"
	"github.com/mikezter/flightstick/performance"
	"github.com/mikezter/flightstick/prefs"
	"github.com/mikezter/flightstick/statsview"
	"github.com/mikezter/flightstick/version"
)

// the file written by the -memviz flag in MONITOR mode.
const memvizFile = "memviz.dot"

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("LIST", "MONITOR", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "LIST":
		err = list(md)

	case "MONITOR":
		err = monitorDevice(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

func list(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(logger.NewColorizer(os.Stdout), false)
	} else {
		logger.SetEcho(nil, false)
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("no additional arguments required for %s mode", md)
	}

	prf, err := input.NewPreferences()
	if err != nil {
		return err
	}

	col := readers.Connect(prf)
	defer func() {
		_ = col.End()
	}()

	devs := col.Devices()
	if len(devs) == 0 {
		fmt.Fprintln(md.Output, "no game controllers found")
		return nil
	}

	for i, dev := range devs {
		fmt.Fprintf(md.Output, "%3d: %s\n", i, dev)
	}

	return nil
}

func monitorDevice(md *modalflag.Modes) error {
	md.NewMode()

	interval := md.AddDuration("interval", 50*time.Millisecond, "time between reads of the device")
	stats := md.AddBool("stats", false, "launch statistics server")
	mem := md.AddBool("memviz", false, "write a memviz graph of the reader collection on exit")
	profile := md.AddBool("profile", false, "run the monitor through the cpu profiler")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	prefsFlag := md.AddString("prefs", "", "preference values for this session. eg. input.deadzone::3000")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(logger.NewColorizer(os.Stdout), false)
	} else {
		logger.SetEcho(nil, false)
	}

	if *prefsFlag != "" {
		prefs.PushCommandLineStack(*prefsFlag)
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	var num int

	args := md.RemainingArgs()
	switch len(args) {
	case 0:
		return fmt.Errorf("device number required for %s mode", md)
	case 1:
		num, err = strconv.Atoi(md.GetArg(0))
		if err != nil {
			return fmt.Errorf("device number must be numeric (%s)", md.GetArg(0))
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := input.NewPreferences()
	if err != nil {
		return err
	}

	col := readers.Connect(prf)
	defer func() {
		_ = col.End()
	}()

	rdr, dev, err := col.Find(num)
	if err != nil {
		return err
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	runner := func() error {
		return monitor.NewMonitor(rdr, dev, *interval).Run(md.Output, intChan)
	}

	if *profile {
		err = performance.ProfileCPU("monitor.cpu.profile", runner)
		if err == nil {
			err = performance.ProfileMem("monitor.mem.profile")
		}
	} else {
		err = runner()
	}
	if err != nil {
		return err
	}

	if *mem {
		f, err := os.Create(memvizFile)
		if err != nil {
			return fmt.Errorf("memviz: %w", err)
		}
		memviz.Map(f, col)
		if err := f.Close(); err != nil {
			return fmt.Errorf("memviz: %w", err)
		}
		fmt.Fprintf(md.Output, "memviz graph written to %s\n", memvizFile)
	}

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	v := md.AddBool("v", false, "display additional version information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s (%s)\n", version.ApplicationName, ver)

	if *v {
		fmt.Fprintf(md.Output, "  revision: %s\n", rev)
		if statsview.Available() {
			fmt.Fprintf(md.Output, "  statsview: available at %s\n", statsview.Address)
		} else {
			fmt.Fprintln(md.Output, "  statsview: not available")
		}
	}

	return nil
}
