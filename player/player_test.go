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

package player

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetroship/tetroship/board"
)

func fleet() []board.Ship {
	return []board.Ship{
		{Type: board.PieceI, Rotation: 0, AnchorRow: 0, AnchorCol: 0},
		{Type: board.PieceO, Rotation: 0, AnchorRow: 0, AnchorCol: 4},
		{Type: board.PieceT, Rotation: 0, AnchorRow: 3, AnchorCol: 0},
		{Type: board.PieceJ, Rotation: 0, AnchorRow: 4, AnchorCol: 4},
		{Type: board.PieceL, Rotation: 0, AnchorRow: 6, AnchorCol: 8},
	}
}

func TestPlayerLifecycle(t *testing.T) {
	p := New()
	p.SetDimensions(10, 10)
	require.Equal(t, Unready, p.Stage())
	p.MarkBegun()
	require.Equal(t, Begun, p.Stage())

	ships := fleet()
	b, err := board.Validate(10, 10, ships)
	require.NoError(t, err)
	p.CommitFleet(b, ships)
	require.Equal(t, Initialized, p.Stage())
	require.Equal(t, board.ShipCount, p.ShipsRemaining())
}

func TestReceiveShotSinksOnFourthHit(t *testing.T) {
	p := New()
	p.SetDimensions(10, 10)
	ships := fleet()
	b, err := board.Validate(10, 10, ships)
	require.NoError(t, err)
	p.CommitFleet(b, ships)

	// Ship 0 is the I piece at (0,0)-(0,3).
	cells := [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}}
	for i, c := range cells {
		outcome := p.ReceiveShot(c[0], c[1])
		require.True(t, outcome.Hit)
		if i < 3 {
			require.False(t, outcome.Sunk)
			require.Equal(t, board.ShipCount, p.ShipsRemaining())
		} else {
			require.True(t, outcome.Sunk)
			require.Equal(t, board.ShipCount-1, p.ShipsRemaining())
		}
	}
}

func TestReceiveShotMiss(t *testing.T) {
	p := New()
	p.SetDimensions(10, 10)
	ships := fleet()
	b, err := board.Validate(10, 10, ships)
	require.NoError(t, err)
	p.CommitFleet(b, ships)

	outcome := p.ReceiveShot(9, 9)
	require.False(t, outcome.Hit)
	require.False(t, outcome.Sunk)
}

func TestShotMaskAndIdempotence(t *testing.T) {
	p := New()
	p.SetDimensions(10, 10)
	require.False(t, p.HasShotAt(3, 4))
	p.RecordShot(3, 4)
	require.True(t, p.HasShotAt(3, 4))

	p.RecordShot(1, 2)
	first := p.Shots()
	second := p.Shots()
	require.Equal(t, first, second)
	// Row-major: (1,2) before (3,4).
	require.Equal(t, 1, first[0].Row)
	require.Equal(t, 3, first[1].Row)
}
