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

// Package test contains helper functions that remove common test boilerplate.
//
// The Expect functions record a test error on failure and allow the test to
// continue. The Demand functions end the test immediately, which is useful
// when subsequent expectations would be meaningless after the failure.
//
// The ExpectFailure, ExpectSuccess, DemandFailure and DemandSuccess functions
// interpret their argument according to type: a bool succeeds when true and an
// error succeeds when nil. The handling of the nil type is not obvious: nil is
// treated as a success because of how Go errors work (nil indicating no
// error).
package test
