// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command ledmatrix predicts the LFSR state of the LED matrix design and runs
// its startup test bench.
//
package main

import "github.com/db47h/ledmatrix/cmd/ledmatrix/cmd"

func main() {
	cmd.Execute()
}
