// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ledmatrix/hwsim"
	"github.com/pkg/errors"
)

// Ring returns a one-hot ring counter with n outputs built from DFFs and
// multiplexers.
//
//	Inputs: reset
//	Outputs: out[n]
//	Function: if reset { out = 1 } else { out = out<<1 | out>>(n-1) }
//
func Ring(n int) (hwsim.NewPartFn, error) {
	if n < 2 {
		return nil, errors.Errorf("invalid ring counter size %d", n)
	}
	parts := make(hwsim.Parts, 0, 2*n)
	for i := 0; i < n; i++ {
		init := hwsim.False
		if i == 0 {
			init = hwsim.True
		}
		prev := hwsim.BusPinName(pOut, (i+n-1)%n)
		d := hwsim.BusPinName("d", i)
		parts = append(parts,
			Mux("a="+prev+", b="+init+", sel=reset, out="+d),
			DFF("in="+d+", out="+hwsim.BusPinName(pOut, i)),
		)
	}
	sz := strconv.Itoa(n)
	return hwsim.Chip("RING"+sz, pReset, "out["+sz+"]", parts...)
}
