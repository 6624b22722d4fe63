// Copyright 2024 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package player holds one peer's game state: their own ship layout, the
// shot mask they've built up against the opponent, and their readiness
// stage through the BEGIN/INITIALIZE handshake.
package player

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/tetroship/tetroship/board"
)

// ReadyStage tracks how far a player has progressed through the
// handshake. Stages only ever advance forward, mirroring the session
// phase they gate.
type ReadyStage int

const (
	Unready ReadyStage = iota
	Begun
	Initialized
)

// Player is a single peer's exclusively-owned game state.
type Player struct {
	width, height int

	board *board.Board
	ships []board.Ship

	shots          *bitset.BitSet
	shipsRemaining int

	stage ReadyStage
}

// New returns a fresh, unready player with no board dimensions yet. The
// session sets dimensions once both peers have left BEGIN, via
// SetDimensions, since P2's Begin carries no width/height of its own.
func New() *Player {
	return &Player{}
}

// SetDimensions sizes the player's shot mask for a W x H board. The
// session calls this once, right after phase advances out of BEGIN, for
// both players.
func (p *Player) SetDimensions(width, height int) {
	p.width = width
	p.height = height
	p.shots = bitset.New(uint(width * height))
}

// Stage returns the player's current readiness stage.
func (p *Player) Stage() ReadyStage {
	return p.stage
}

// MarkBegun transitions the player past BEGIN.
func (p *Player) MarkBegun() {
	p.stage = Begun
}

// CommitFleet installs a validated board and ship set, and transitions the
// player past INITIALIZE. ShipsRemaining starts at board.ShipCount: it is
// a count of ships still afloat, not of unstruck cells.
func (p *Player) CommitFleet(b *board.Board, ships []board.Ship) {
	p.board = b
	p.ships = ships
	p.shipsRemaining = board.ShipCount
	p.stage = Initialized
}

// ShipsRemaining is the number of this player's ships still afloat (0..5).
func (p *Player) ShipsRemaining() int {
	return p.shipsRemaining
}

// HasShotAt reports whether this player has already targeted (row, col) on
// the opponent's board.
func (p *Player) HasShotAt(row, col int) bool {
	return p.shots.Test(p.shotIndex(row, col))
}

func (p *Player) shotIndex(row, col int) uint {
	return uint(row*p.width + col)
}

// ShotOutcome is returned by ReceiveShot: whether the shot hit a ship, and
// whether that hit sank it. ReceiveShot itself keeps ShipsRemaining up to
// date.
type ShotOutcome struct {
	Hit  bool
	Sunk bool
}

// RecordShot marks (row, col) as targeted by this player against the
// opponent. It must only be called after HasShotAt has already been
// checked by the caller.
func (p *Player) RecordShot(row, col int) {
	p.shots.Set(p.shotIndex(row, col))
}

// ReceiveShot applies an incoming shot at (row, col) to this player's own
// board (this player is the one being fired upon). It increments the
// struck ship's hit count and, on the ship's fourth hit, decrements
// ShipsRemaining.
func (p *Player) ReceiveShot(row, col int) ShotOutcome {
	idx, ok := p.board.ShipIndexAt(row, col)
	if !ok {
		return ShotOutcome{}
	}
	ship := &p.ships[idx]
	ship.Hits++
	if !ship.Alive() {
		p.shipsRemaining--
		return ShotOutcome{Hit: true, Sunk: true}
	}
	return ShotOutcome{Hit: true}
}

// OutcomeAt reports whether a prior shot this player made at (row, col)
// was a hit or a miss, by consulting the opponent's board directly. It is
// meant to be called only for cells this player has in fact already shot
// at (see Shots).
func (p *Player) OutcomeAt(opponent *Player, row, col int) bool {
	_, ok := opponent.board.ShipIndexAt(row, col)
	return ok
}

// Shots returns every (row, col) this player has shot at, in row-major
// order (row 0..H-1, within each row col 0..W-1), per the query response
// ordering the protocol specifies. Because it derives purely from the
// shot bitset rather than an append-ordered log, two consecutive queries
// are trivially byte-identical.
func (p *Player) Shots() []struct{ Row, Col int } {
	out := make([]struct{ Row, Col int }, 0, p.shots.Count())
	for i, ok := p.shots.NextSet(0); ok; i, ok = p.shots.NextSet(i + 1) {
		row := int(i) / p.width
		col := int(i) % p.width
		out = append(out, struct{ Row, Col int }{Row: row, Col: col})
	}
	return out
}

// Dimensions returns the board width and height last set by
// SetDimensions.
func (p *Player) Dimensions() (width, height int) {
	return p.width, p.height
}

// BoardInBounds reports whether (row, col) lies within this player's
// board dimensions.
func (p *Player) BoardInBounds(row, col int) bool {
	return row >= 0 && row < p.height && col >= 0 && col < p.width
}
