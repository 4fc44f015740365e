// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ledmatrix

// LED and button indices are r*Columns + c.

// ColumnMask returns the mask of the LEDs in column c, or 0 if c is out of
// range.
//
func ColumnMask(c int) uint16 {
	if c < 0 || c >= Columns {
		return 0
	}
	var m uint16
	for r := 0; r < Rows; r++ {
		m |= 1 << uint(r*Columns+c)
	}
	return m
}

// ToggleMask returns the mask of the LEDs toggled by a press on button b: the
// button's own LED and its orthogonal neighbours. It returns 0 if b is out of
// range.
//
func ToggleMask(b int) uint16 {
	if b < 0 || b >= Buttons {
		return 0
	}
	r, c := b/Columns, b%Columns
	m := uint16(1) << uint(b)
	if r > 0 {
		m |= 1 << uint(b-Columns)
	}
	if r < Rows-1 {
		m |= 1 << uint(b+Columns)
	}
	if c > 0 {
		m |= 1 << uint(b-1)
	}
	if c < Columns-1 {
		m |= 1 << uint(b+1)
	}
	return m
}

// PatternMask masks a value to the LED register width.
//
const PatternMask = 1<<Buttons - 1
