package hwsim_test

import (
	"reflect"
	"testing"

	hw "github.com/db47h/ledmatrix/hwsim"
)

func TestParseIOSpec(t *testing.T) {
	data := []struct {
		in  string
		out []string
		err bool
	}{
		{"", nil, false},
		{"a", []string{"a"}, false},
		{"a, bus[2], sel", []string{"a", "bus[0]", "bus[1]", "sel"}, false},
		{"a[0]", nil, true},
		{"a[1..2]", nil, true},
		{"a b", nil, true},
	}
	for _, d := range data {
		got, err := hw.ParseIOSpec(d.in)
		if (err != nil) != d.err {
			t.Errorf("ParseIOSpec(%q): unexpected error state %v", d.in, err)
			continue
		}
		if !reflect.DeepEqual(got, d.out) {
			t.Errorf("ParseIOSpec(%q) = %v, expected %v", d.in, got, d.out)
		}
	}
}

func TestParseConnections(t *testing.T) {
	got, err := hw.ParseConnections("a=x, in=bus[1..2], out[3]=y[0], b=true")
	if err != nil {
		t.Fatal(err)
	}
	exp := []hw.Connection{
		{PP: []string{"a"}, CP: []string{"x"}},
		{PP: []string{"in"}, CP: []string{"bus[1]", "bus[2]"}},
		{PP: []string{"out[3]"}, CP: []string{"y[0]"}},
		{PP: []string{"b"}, CP: []string{"true"}},
	}
	if !reflect.DeepEqual(got, exp) {
		t.Fatalf("got %v, expected %v", got, exp)
	}

	for _, in := range []string{"a=", "a=b[2..1]", "=b", "a=b c=d"} {
		if _, err := hw.ParseConnections(in); err == nil {
			t.Errorf("ParseConnections(%q): expected an error", in)
		}
	}
}

func TestIO_panic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected IO to panic on a malformed spec")
		}
	}()
	hw.IO("a[")
}
