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

package board

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/tetroship/tetroship/protocol"
)

// Ship is a placed tetromino: its shape, rotation, anchor, and the number
// of its four cells that have been struck so far.
type Ship struct {
	Type      PieceType
	Rotation  int
	AnchorRow int
	AnchorCol int
	Hits      int
}

// Alive reports whether the ship still has at least one unstruck cell.
func (s *Ship) Alive() bool {
	return s.Hits < 4
}

// ShipCount is the number of ships a player places at Initialize time.
const ShipCount = 5

// Validate checks a candidate set of ships against the fixed diagnostic
// order from the protocol: piece type, then rotation, then out-of-bounds,
// then overlap. It makes two passes over the ships, in the order they were
// given. The first checks each ship's type and then its rotation, so an
// earlier ship's bad rotation is reported before a later ship's bad type.
// The second inspects each ship's four cells one at a time (bounds before
// overlap, for that cell) before a later ship's cells are examined. Any
// type or rotation defect anywhere in the fleet is therefore reported
// before any bounds or overlap defect, whichever ship carries it.
//
// On success, Validate returns a Board with every ship's cells committed
// and tagged with that ship's index.
func Validate(w, h int, ships []Ship) (*Board, error) {
	for i := range ships {
		if !ships[i].Type.Valid() {
			return nil, protocol.NewError(protocol.CodeInvalidPieceType)
		}
		if ships[i].Rotation < 0 || ships[i].Rotation > 3 {
			return nil, protocol.NewError(protocol.CodeInvalidRotation)
		}
	}

	b := NewBoard(w, h)
	for shipIdx := range ships {
		ship := &ships[shipIdx]
		cells := Cells(ship.Type, ship.Rotation, ship.AnchorRow, ship.AnchorCol)
		for _, c := range cells {
			if !b.InBounds(c.Row, c.Col) {
				return nil, protocol.NewError(protocol.CodeShipOutOfBounds)
			}
			if b.occupied.Test(uint(b.index(c.Row, c.Col))) {
				return nil, protocol.NewError(protocol.CodeShipsOverlap)
			}
			b.occupy(c.Row, c.Col, shipIdx)
		}
	}
	return b, nil
}

// Board is a player's committed ship layout: which cells are occupied,
// stored as a packed bitset, and by which ship index, stored as one int32
// per cell (-1 for empty). Both are sized to W*H, with no fixed 20x20 cap.
type Board struct {
	W, H     int
	occupied *bitset.BitSet
	cellShip []int32
}

// NewBoard allocates an empty board of the given dimensions.
func NewBoard(w, h int) *Board {
	cellShip := make([]int32, w*h)
	for i := range cellShip {
		cellShip[i] = -1
	}
	return &Board{
		W:        w,
		H:        h,
		occupied: bitset.New(uint(w * h)),
		cellShip: cellShip,
	}
}

func (b *Board) index(row, col int) int {
	return row*b.W + col
}

// InBounds reports whether (row, col) lies within the board's dimensions.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.H && col >= 0 && col < b.W
}

func (b *Board) occupy(row, col, shipIdx int) {
	idx := b.index(row, col)
	b.occupied.Set(uint(idx))
	b.cellShip[idx] = int32(shipIdx)
}

// ShipIndexAt returns the index of the ship occupying (row, col), or
// (-1, false) if the cell is empty or out of bounds.
func (b *Board) ShipIndexAt(row, col int) (int, bool) {
	if !b.InBounds(row, col) {
		return -1, false
	}
	idx := b.cellShip[b.index(row, col)]
	if idx < 0 {
		return -1, false
	}
	return int(idx), true
}
