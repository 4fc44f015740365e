// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl implements the grammar of pin specifications and connection
// strings.
//
package hdl

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var hdlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Range", Pattern: `\.\.`},
	{Name: "Punct", Pattern: `[\[\],=]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// Pin is a pin name, optionally followed by an index, a range or a bus
// size, depending on context: p, p[index], p[start..end].
//
type Pin struct {
	Pos   lexer.Position
	Name  string `@Ident`
	Index *Index `( "[" @@ "]" )?`
}

// Index is the bracketed part of a pin. End is nil for single indices.
//
type Index struct {
	Start int  `@Int`
	End   *int `( ".." @Int )?`
}

// Assignment is a part pin to chip pin assignment: pp=cp.
//
type Assignment struct {
	Part *Pin `@@ "="`
	Chip *Pin `@@`
}

// Connections is a comma separated list of assignments.
//
type Connections struct {
	List []*Assignment `( @@ ( "," @@ )* )?`
}

// IOSpec is a comma separated list of pins.
//
type IOSpec struct {
	List []*Pin `( @@ ( "," @@ )* )?`
}

var (
	connParser = participle.MustBuild[Connections](
		participle.Lexer(hdlLexer),
		participle.Elide("Whitespace"),
	)
	ioParser = participle.MustBuild[IOSpec](
		participle.Lexer(hdlLexer),
		participle.Elide("Whitespace"),
	)
)

// ParseConnections parses a connection string like "a=x, in=bus[0..3]".
//
func ParseConnections(input string) (*Connections, error) {
	if strings.TrimSpace(input) == "" {
		return &Connections{}, nil
	}
	c, err := connParser.ParseString("", input)
	if err != nil {
		return nil, parseError(input, err)
	}
	return c, nil
}

// ParseIOSpec parses a pin specification string like "a, b, bus[8]".
//
func ParseIOSpec(input string) (*IOSpec, error) {
	if strings.TrimSpace(input) == "" {
		return &IOSpec{}, nil
	}
	s, err := ioParser.ParseString("", input)
	if err != nil {
		return nil, parseError(input, err)
	}
	return s, nil
}

func parseError(in string, err error) error {
	if perr, ok := err.(participle.Error); ok {
		return errors.Errorf("in %q at pos %d: %s", in, perr.Position().Offset+1, perr.Message())
	}
	return errors.Wrapf(err, "in %q", in)
}
