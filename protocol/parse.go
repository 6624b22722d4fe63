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
	"strconv"
	"strings"
)

// Tokenize splits one packet line on whitespace. The caller is responsible
// for having already stripped the trailing newline; Tokenize additionally
// tolerates one, since the transport's framing contract only promises to
// strip it before handing the line to the core.
func Tokenize(line string) []string {
	return strings.Fields(strings.TrimRight(line, "\n"))
}

// KindOf maps a packet's leading token to a Kind. ok is false for any
// token that is not one of B, I, S, Q, F.
func KindOf(leading string) (Kind, bool) {
	switch leading {
	case "B":
		return KindBegin, true
	case "I":
		return KindInitialize, true
	case "S":
		return KindShoot, true
	case "Q":
		return KindQuery, true
	case "F":
		return KindForfeit, true
	default:
		return 0, false
	}
}

// ParseBegin parses the tokens following a "B" for the given player. P1's
// Begin carries a width and height; P2's carries nothing.
func ParseBegin(args []string, isP1 bool) (Command, error) {
	if !isP1 {
		if len(args) != 0 {
			return Command{}, NewError(CodeMalformedBegin)
		}
		return Command{Kind: KindBegin}, nil
	}
	if len(args) != 2 {
		return Command{}, NewError(CodeMalformedBegin)
	}
	w, errW := strconv.Atoi(args[0])
	h, errH := strconv.Atoi(args[1])
	if errW != nil || errH != nil || w < 10 || h < 10 {
		return Command{}, NewError(CodeMalformedBegin)
	}
	return Command{Kind: KindBegin, Width: w, Height: h}, nil
}

// ParseInitialize parses the 20 integers following an "I" into five
// placement groups of (type, rotation, row, col). Type and rotation range
// checks belong to board.Validate, not here; this function only enforces
// that exactly 20 well-formed integers were supplied.
func ParseInitialize(args []string) (Command, error) {
	const wantFields = 5 * 4
	if len(args) != wantFields {
		return Command{}, NewError(CodeMalformedInitialize)
	}
	var cmd Command
	cmd.Kind = KindInitialize
	vals := make([]int, wantFields)
	for i, tok := range args {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return Command{}, NewError(CodeMalformedInitialize)
		}
		vals[i] = n
	}
	for i := 0; i < 5; i++ {
		base := i * 4
		cmd.Placements[i] = PlacementParams{
			Type:     vals[base],
			Rotation: vals[base+1],
			Row:      vals[base+2],
			Col:      vals[base+3],
		}
	}
	return cmd, nil
}

// ParseShoot parses the two integers following an "S".
func ParseShoot(args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, NewError(CodeMalformedShoot)
	}
	row, errR := strconv.Atoi(args[0])
	col, errC := strconv.Atoi(args[1])
	if errR != nil || errC != nil {
		return Command{}, NewError(CodeMalformedShoot)
	}
	return Command{Kind: KindShoot, Row: row, Col: col}, nil
}

// PhaseError maps the current phase to the taxonomy code for "unexpected
// packet type in this phase", or disallowed=false if the given kind is in fact
// permitted in the phase (the caller should proceed to parse it).
func PhaseError(phase Phase, kind Kind) (code Code, disallowed bool) {
	switch phase {
	case PhaseBegin:
		if kind != KindBegin {
			return CodeInvalidForBegin, true
		}
	case PhaseInitialize:
		if kind != KindInitialize {
			return CodeInvalidForInitialize, true
		}
	case PhasePlay:
		if kind != KindShoot && kind != KindQuery && kind != KindForfeit {
			return CodeInvalidForPlay, true
		}
	}
	return 0, false
}
