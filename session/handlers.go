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

package session

import (
	"github.com/tetroship/tetroship/board"
	"github.com/tetroship/tetroship/player"
	"github.com/tetroship/tetroship/protocol"
)

// HandlePacket is the controller's single entry point: it runs the
// phase-appropriate handler to completion and returns the replies it
// produced. State mutation and reply emission happen atomically within
// this call, matching the cooperative, one-packet-at-a-time model in the
// design.
func (s *Session) HandlePacket(from PeerID, line string) []Outbound {
	if s.phase == protocol.PhaseTerminated {
		return nil
	}

	tokens := protocol.Tokenize(line)
	var leading string
	if len(tokens) > 0 {
		leading = tokens[0]
	}
	kind, recognized := protocol.KindOf(leading)
	if !recognized {
		kind = -1
	}

	if code, disallowed := protocol.PhaseError(s.phase, kind); disallowed {
		s.log.Debug("rejected packet", "from", from.String(), "phase", s.phase.String(), "code", code)
		s.metrics.errorEmitted(code)
		return []Outbound{{To: from, Line: protocol.FormatError(code)}}
	}

	args := tokens[1:]
	switch kind {
	case protocol.KindBegin:
		return s.handleBegin(from, args)
	case protocol.KindInitialize:
		return s.handleInitialize(from, args)
	case protocol.KindShoot:
		return s.handleShoot(from, args)
	case protocol.KindQuery:
		return s.handleQuery(from)
	case protocol.KindForfeit:
		return s.handleForfeit(from)
	default:
		// Unreachable: PhaseError already rejected every kind not valid
		// for the current phase, and -1 is never an allowed kind.
		return nil
	}
}

func (s *Session) handleBegin(from PeerID, args []string) []Outbound {
	isP1 := from == PeerOne
	cmd, err := protocol.ParseBegin(args, isP1)
	if err != nil {
		return s.reject(from, err)
	}

	if isP1 {
		s.width, s.height = cmd.Width, cmd.Height
	}
	s.playerFor(from).MarkBegun()
	s.log.Info("begin accepted", "from", from.String())

	out := []Outbound{{To: from, Line: protocol.FormatAck()}}
	if s.p1.Stage() >= player.Begun && s.p2.Stage() >= player.Begun {
		s.p1.SetDimensions(s.width, s.height)
		s.p2.SetDimensions(s.width, s.height)
		s.phase = protocol.PhaseInitialize
		s.log.Info("phase advanced", "phase", s.phase.String(), "width", s.width, "height", s.height)
	}
	return out
}

func (s *Session) handleInitialize(from PeerID, args []string) []Outbound {
	cmd, err := protocol.ParseInitialize(args)
	if err != nil {
		return s.reject(from, err)
	}

	ships := make([]board.Ship, len(cmd.Placements))
	for i, pl := range cmd.Placements {
		ships[i] = board.Ship{
			Type:      board.PieceType(pl.Type),
			Rotation:  pl.Rotation,
			AnchorRow: pl.Row,
			AnchorCol: pl.Col,
		}
	}

	b, err := board.Validate(s.width, s.height, ships)
	if err != nil {
		return s.reject(from, err)
	}

	s.playerFor(from).CommitFleet(b, ships)
	s.log.Info("fleet committed", "from", from.String())

	out := []Outbound{{To: from, Line: protocol.FormatAck()}}
	if s.p1.Stage() == player.Initialized && s.p2.Stage() == player.Initialized {
		s.phase = protocol.PhasePlay
		s.log.Info("phase advanced", "phase", s.phase.String())
	}
	return out
}

func (s *Session) handleShoot(from PeerID, args []string) []Outbound {
	if s.currentTurn != from {
		return nil
	}
	cmd, err := protocol.ParseShoot(args)
	if err != nil {
		return s.reject(from, err)
	}

	shooter := s.playerFor(from)
	target := s.playerFor(from.Other())

	if !target.BoardInBounds(cmd.Row, cmd.Col) {
		return s.reject(from, protocol.NewError(protocol.CodeShotOutOfBounds))
	}
	if shooter.HasShotAt(cmd.Row, cmd.Col) {
		return s.reject(from, protocol.NewError(protocol.CodeShotRepeated))
	}

	shooter.RecordShot(cmd.Row, cmd.Col)
	outcome := target.ReceiveShot(cmd.Row, cmd.Col)
	s.metrics.shotFired(outcome.Hit)

	result := protocol.Miss
	if outcome.Hit {
		result = protocol.Hit
	}
	out := []Outbound{{
		To:   from,
		Line: protocol.FormatShotResult(target.ShipsRemaining(), result),
	}}

	if target.ShipsRemaining() == 0 {
		s.phase = protocol.PhaseTerminated
		s.metrics.gameCompleted(outcomeWin)
		s.log.Info("game over", "winner", from.String())
		out = append(out,
			Outbound{To: from, Line: protocol.FormatHalt(true)},
			Outbound{To: from.Other(), Line: protocol.FormatHalt(false)},
		)
		return out
	}

	s.currentTurn = s.currentTurn.Other()
	return out
}

func (s *Session) handleQuery(from PeerID) []Outbound {
	if s.currentTurn != from {
		return nil
	}
	querier := s.playerFor(from)
	opponent := s.playerFor(from.Other())

	shots := querier.Shots()
	records := make([]protocol.ShotRecord, len(shots))
	for i, sh := range shots {
		outcome := protocol.Miss
		if querier.OutcomeAt(opponent, sh.Row, sh.Col) {
			outcome = protocol.Hit
		}
		records[i] = protocol.ShotRecord{Outcome: outcome, Row: sh.Row, Col: sh.Col}
	}

	return []Outbound{{
		To:   from,
		Line: protocol.FormatQueryResponse(opponent.ShipsRemaining(), records),
	}}
}

func (s *Session) handleForfeit(from PeerID) []Outbound {
	return s.terminateByForfeit(from, outcomeForfeit)
}

func (s *Session) terminateByForfeit(from PeerID, o outcome) []Outbound {
	s.phase = protocol.PhaseTerminated
	s.metrics.gameCompleted(o)
	s.log.Info("forfeit", "from", from.String(), "outcome", string(o))
	return []Outbound{
		{To: from, Line: protocol.FormatHalt(false)},
		{To: from.Other(), Line: protocol.FormatHalt(true)},
	}
}

// HandleDisconnect reports a peer's connection closing. In PLAY this is a
// forfeit by that peer; in BEGIN or INITIALIZE the session simply
// terminates with no Halt, since neither peer has fully entered the game.
func (s *Session) HandleDisconnect(from PeerID) []Outbound {
	if s.phase == protocol.PhaseTerminated {
		return nil
	}
	if s.phase != protocol.PhasePlay {
		s.phase = protocol.PhaseTerminated
		s.log.Info("disconnect before play", "from", from.String())
		return nil
	}
	return s.terminateByForfeit(from, outcomeDisconnect)
}

func (s *Session) reject(from PeerID, err error) []Outbound {
	code, ok := protocol.CodeOf(err)
	if !ok {
		code = protocol.CodeMalformedShoot
	}
	s.metrics.errorEmitted(code)
	return []Outbound{{To: from, Line: protocol.FormatError(code)}}
}
