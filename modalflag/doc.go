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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package, with
// some differences. Whereas, with flag.FlagSet you call Parse() with the array
// of strings as the only argument, with modalflag you first NewArgs() with the
// array of arguments and then Parse() with no arguments. For example (note
// that no error handling of the Parse() function is shown here):
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// Once the arguments have been parsed, non-flag arguments can be retrieved
// with the RemainingArgs() or GetArg() function.
//
// Adding flags is similar to the flag package. Adding a boolean flag:
//
//	verbose := md.AddBool("verbose", false, "print additional log messages")
//
// These flag functions return a pointer to a variable of the specified type.
// The initial value of that variable is the default value, the second argument
// in the function call above. The Parse() function will set the value
// appropriately according to what the user has requested.
//
// The most important difference between the standard flag package and the
// modalflag package is the ability of the latter to handle "modes". In this
// context, a mode is a special command line argument that when specified, puts
// the program into a different mode of operation, each mode with its own set
// of flags and expected arguments.
//
// The modalflag package handles sub-modes with the AddSubModes() function.
// This function takes any number of string arguments, each one the name of a
// mode. The first mode in the list is the default mode.
//
//	md.AddSubModes("monitor", "list", "version")
//
// For simplicity, all sub-mode comparisons are case insensitive.
//
// Subsequent calls to Parse() will then process flags in the normal way but
// unlike the regular flag.Parse() function will check to see if the first
// argument after the flags is one of these modes. Once a mode has been
// selected, NewMode() prepares the Modes struct for the mode's own flags:
//
//	_, _ = md.Parse()
//	switch md.Mode() {
//	case "LIST":
//		listDevices(md)
//	case "MONITOR":
//		md.NewMode()
//		interval := md.AddDuration("interval", 10*time.Millisecond, "polling interval")
//		p, err := md.Parse()
//		switch p {
//		case modalflag.ParseError:
//			fmt.Println(err)
//			return
//		case modalflag.ParseHelp:
//			return
//		}
//		monitorDevice(md, *interval)
//	}
//
// Modes can be chained together as deep as required, with each call to
// NewMode() and Parse() consuming another layer of the command line.
package modalflag
