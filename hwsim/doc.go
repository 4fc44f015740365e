// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hwsim is a small cycle based logic simulator in which circuits are
described in Go.

Parts are declared by a PartSpec: a list of input and output pins and a Mount
function that returns the closures updating the part outputs. Chip composes
parts into new parts by wiring their pins with connection strings like
"a=x, in=bus[0..3], out=y". MakePart builds a part from a tagged struct.

A Circuit keeps two state frames: components read the current frame and write
the next one, and the frames are swapped after every step. A built-in gate
therefore takes one step to update its output. The clock signal Clk runs at a
fixed power of two number of steps per cycle, the rising edge being the step
for which AtTick returns true.

Externally driven pins (see hwlib.Port and Circuit.Drive) let test benches
inject input values without latency, which makes it possible to drive a
design the way a hardware test bench does: change inputs half a cycle before
the rising edge and sample outputs half a cycle after it.
*/
package hwsim
