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

package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	for _, tc := range []struct {
		tok  string
		kind Kind
	}{
		{"B", KindBegin},
		{"I", KindInitialize},
		{"S", KindShoot},
		{"Q", KindQuery},
		{"F", KindForfeit},
	} {
		kind, ok := KindOf(tc.tok)
		require.True(t, ok)
		require.Equal(t, tc.kind, kind)
	}
	_, ok := KindOf("X")
	require.False(t, ok)
}

func TestParseBeginP1(t *testing.T) {
	cmd, err := ParseBegin([]string{"10", "10"}, true)
	require.NoError(t, err)
	require.Equal(t, 10, cmd.Width)
	require.Equal(t, 10, cmd.Height)
}

func TestParseBeginP1RejectsUndersizedBoard(t *testing.T) {
	_, err := ParseBegin([]string{"9", "10"}, true)
	code, ok := CodeOf(err)
	require.True(t, ok)
	require.Equal(t, CodeMalformedBegin, code)
}

func TestParseBeginP2RejectsPayload(t *testing.T) {
	_, err := ParseBegin([]string{"1"}, false)
	code, ok := CodeOf(err)
	require.True(t, ok)
	require.Equal(t, CodeMalformedBegin, code)
}

func TestParseBeginP2Empty(t *testing.T) {
	cmd, err := ParseBegin(nil, false)
	require.NoError(t, err)
	require.Equal(t, KindBegin, cmd.Kind)
}

func TestParseInitializeRequiresTwentyFields(t *testing.T) {
	_, err := ParseInitialize([]string{"1", "0", "0", "0"})
	code, ok := CodeOf(err)
	require.True(t, ok)
	require.Equal(t, CodeMalformedInitialize, code)
}

func TestParseInitializeFullLine(t *testing.T) {
	args := []string{
		"1", "0", "0", "0",
		"2", "0", "0", "4",
		"3", "0", "5", "0",
		"4", "0", "8", "0",
		"5", "0", "0", "6",
	}
	cmd, err := ParseInitialize(args)
	require.NoError(t, err)
	require.Equal(t, PlacementParams{Type: 1, Rotation: 0, Row: 0, Col: 0}, cmd.Placements[0])
	require.Equal(t, PlacementParams{Type: 5, Rotation: 0, Row: 0, Col: 6}, cmd.Placements[4])
}

func TestParseShootMalformed(t *testing.T) {
	_, err := ParseShoot([]string{"0"})
	code, ok := CodeOf(err)
	require.True(t, ok)
	require.Equal(t, CodeMalformedShoot, code)
}

func TestParseShootOK(t *testing.T) {
	cmd, err := ParseShoot([]string{"3", "4"})
	require.NoError(t, err)
	require.Equal(t, 3, cmd.Row)
	require.Equal(t, 4, cmd.Col)
}

func TestPhaseErrorGating(t *testing.T) {
	code, disallowed := PhaseError(PhaseBegin, KindShoot)
	require.True(t, disallowed)
	require.Equal(t, CodeInvalidForBegin, code)

	_, disallowed = PhaseError(PhaseBegin, KindBegin)
	require.False(t, disallowed)

	code, disallowed = PhaseError(PhasePlay, KindInitialize)
	require.True(t, disallowed)
	require.Equal(t, CodeInvalidForPlay, code)

	for _, k := range []Kind{KindShoot, KindQuery, KindForfeit} {
		_, disallowed = PhaseError(PhasePlay, k)
		require.False(t, disallowed)
	}
}

func TestTokenizeStripsTrailingNewline(t *testing.T) {
	require.Equal(t, []string{"S", "0", "0"}, Tokenize("S 0 0\n"))
}
