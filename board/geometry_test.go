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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPieceTypeValid(t *testing.T) {
	require.True(t, PieceI.Valid())
	require.True(t, PieceZ.Valid())
	require.False(t, PieceType(0).Valid())
	require.False(t, PieceType(8).Valid())
}

func TestOffsetsRotationZeroIsCanonical(t *testing.T) {
	require.Equal(t, canonicalOffsets[PieceT], Offsets(PieceT, 0))
}

func TestOffsetsFourRotationsReturnToStart(t *testing.T) {
	start := Offsets(PieceL, 0)
	require.Equal(t, start, Offsets(PieceL, 4))
}

func TestRotateClockwiseAppliesSpecMap(t *testing.T) {
	// (r,c) -> (-c,r), per spec section 3.
	got := rotateClockwise(Cell{Row: 0, Col: 1})
	require.Equal(t, Cell{Row: -1, Col: 0}, got)
}

func TestCellsTranslatesByAnchor(t *testing.T) {
	cells := Cells(PieceO, 0, 5, 5)
	require.Equal(t, [4]Cell{{5, 5}, {5, 6}, {6, 5}, {6, 6}}, cells)
}
