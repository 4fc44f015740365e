// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ledmatrix

import (
	"strconv"

	"github.com/db47h/ledmatrix/hwlib"
	"github.com/db47h/ledmatrix/hwsim"
)

// GameState is the state of the game logic.
//
type GameState int

// Game states.
//
const (
	// Idle waits for a press to load a new pattern.
	Idle GameState = iota
	// Hold waits for all buttons to be released.
	Hold
	// Play toggles LEDs on presses.
	Play
)

func (s GameState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hold:
		return "hold"
	case Play:
		return "play"
	}
	return "GameState(" + strconv.Itoa(int(s)) + ")"
}

// game implements the LED register and its state machine.
//
type game struct {
	Reset int          `hw:"in"`
	Fire  [Buttons]int `hw:"in"`
	Busy  int          `hw:"in"`
	Next  [Buttons]int `hw:"in"`
	LED   [Buttons]int `hw:"out,led"`
	State [2]int       `hw:"out"`

	led   uint16
	state GameState
}

func (g *game) Update(c *hwsim.Circuit) {
	if c.AtTick() {
		g.step(c)
	}
	hwlib.SetInt64(c, g.LED[:], int64(g.led))
	hwlib.SetInt64(c, g.State[:], int64(g.state))
}

func (g *game) step(c *hwsim.Circuit) {
	if c.Get(g.Reset) {
		g.led, g.state = 0, Idle
		return
	}
	switch g.state {
	case Idle:
		for _, f := range g.Fire {
			if c.Get(f) {
				g.led = uint16(hwlib.Int64(c, g.Next[:]))
				g.state = Hold
				return
			}
		}
	case Hold:
		if !c.Get(g.Busy) {
			g.state = Play
		}
	case Play:
		var m uint16
		for b, f := range g.Fire {
			if c.Get(f) {
				m ^= ToggleMask(b)
			}
		}
		if m == 0 {
			return
		}
		g.led ^= m
		if g.led == 0 {
			g.state = Idle
		} else {
			g.state = Hold
		}
	}
}

var gameSpec = hwsim.MakePart((*game)(nil))

// Game returns the game logic part.
//
//	Inputs: reset, fire[9], busy, next[9]
//	Outputs: led[9], state[2]
//	Function:
//		reset:          led = 0, state = Idle
//		Idle and fire:  led = next, state = Hold
//		Hold and !busy: state = Play
//		Play and fire:  led ^= toggle masks of fired buttons,
//		                state = Idle if led == 0 else Hold
//
func Game(c string) hwsim.Part { return gameSpec.NewPart(c) }
