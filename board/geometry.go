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

// Package board implements the tetromino piece catalog, the rotation
// operator, and the placement validator used by a session's Initialize
// handler.
package board

// PieceType identifies one of the seven tetromino shapes.
type PieceType int

// Piece type constants, numbered as in the wire protocol.
const (
	PieceI PieceType = 1 + iota
	PieceO
	PieceT
	PieceJ
	PieceL
	PieceS
	PieceZ
)

// Valid reports whether t is one of the seven defined piece types.
func (t PieceType) Valid() bool {
	return t >= PieceI && t <= PieceZ
}

func (t PieceType) String() string {
	switch t {
	case PieceI:
		return "I"
	case PieceO:
		return "O"
	case PieceT:
		return "T"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	default:
		return "?"
	}
}

// Cell is a (row, col) offset or absolute board position.
type Cell struct {
	Row int
	Col int
}

// canonicalOffsets gives the base (rotation 0) cell offsets for each piece
// type, relative to an anchor at (0,0), in the order given by the spec.
var canonicalOffsets = map[PieceType][4]Cell{
	PieceI: {{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	PieceO: {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	PieceT: {{0, 1}, {1, 0}, {1, 1}, {1, 2}},
	PieceJ: {{0, 0}, {1, 0}, {2, 0}, {2, 1}},
	PieceL: {{0, 0}, {1, 0}, {2, 0}, {2, -1}},
	PieceS: {{0, 0}, {0, 1}, {1, -1}, {1, 0}},
	PieceZ: {{0, -1}, {0, 0}, {1, 0}, {1, 1}},
}

// rotateClockwise applies the 90-degree clockwise map (r,c) -> (-c,r) once.
func rotateClockwise(c Cell) Cell {
	return Cell{Row: -c.Col, Col: c.Row}
}

// Offsets returns the four cell offsets for a piece type after applying
// `rotation` clockwise quarter-turns about the anchor. rotation is taken
// modulo 4 so callers need not pre-validate it; validation of the raw wire
// value happens in the caller (see Validate), not here.
func Offsets(t PieceType, rotation int) [4]Cell {
	base := canonicalOffsets[t]
	r := ((rotation % 4) + 4) % 4
	for i := 0; i < r; i++ {
		for j := range base {
			base[j] = rotateClockwise(base[j])
		}
	}
	return base
}

// Cells returns the four absolute board cells occupied by a piece of type t,
// rotated by `rotation` quarter turns, anchored at (row, col).
func Cells(t PieceType, rotation, row, col int) [4]Cell {
	offsets := Offsets(t, rotation)
	var cells [4]Cell
	for i, o := range offsets {
		cells[i] = Cell{Row: row + o.Row, Col: col + o.Col}
	}
	return cells
}
