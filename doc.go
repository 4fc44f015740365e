// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package ledmatrix models a button driven 3x3 LED matrix in the style of a Tiny
Tapeout design, and provides the test scenarios used to verify it.

The top level chip returned by Top has the usual Tiny Tapeout pinout: inputs
ena, rst_n, ui_in[8] and uio_in[8], outputs uo_out[8], uio_out[8] and
uio_oe[8]. Internally it is made of:

	- a 16 bits Fibonacci LFSR (taps 15, 13, 12, 10) running freely after reset,
	- a one-hot ring counter scanning the three columns,
	- nine button debouncers, button (r, c) being sensed on ui_in[r] while
	  column c is active,
	- the game logic: the first debounced press loads the LED register with the
	  low 9 bits of the LFSR, later presses toggle the pressed LED and its
	  orthogonal neighbours until all LEDs are off,
	- the display multiplexer: LED i is lit on uo_out[i] (i < 8) or uio_out[0]
	  (i == 8) while its column i%3 is active.

The active column is also visible on uio_out[1..3] and the game state (see
GameState) on uio_out[4..5]. uio_oe is hardwired to 0x3F.

Startup replays the tapeout test: after a reset, hold the first row of buttons
long enough for the debouncers to fire, then check the multiplexed display
against the pattern predicted by lfsr.Advance.
*/
package ledmatrix
