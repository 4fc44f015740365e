package ledmatrix_test

import (
	"testing"

	"github.com/db47h/ledmatrix"
	"github.com/db47h/ledmatrix/hwsim"
	"github.com/db47h/ledmatrix/hwtest"
	"github.com/stretchr/testify/require"
)

// displayModel is the behavioural version of the display multiplexer.
//
type displayModel struct {
	LED [ledmatrix.Buttons]int `hw:"in,led"`
	Col [ledmatrix.Columns]int `hw:"in,col"`
	Out [ledmatrix.Buttons]int `hw:"out"`
}

func (d *displayModel) Update(c *hwsim.Circuit) {
	for i, l := range d.LED {
		c.Set(d.Out[i], c.Get(l) && c.Get(d.Col[i%ledmatrix.Columns]))
	}
}

func TestDisplay(t *testing.T) {
	display, err := ledmatrix.Display()
	require.NoError(t, err)
	hwtest.ComparePart(t, 4, display, hwsim.MakePart((*displayModel)(nil)).NewPart)
}
