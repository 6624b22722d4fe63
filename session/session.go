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

// Package session implements the phase state machine described in the
// protocol: it owns both players' state exclusively, routes each inbound
// packet to the phase-appropriate handler, and emits replies. It has no
// dependency on net.Conn; the transport package drives it over channels.
package session

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/tetroship/tetroship/board"
	"github.com/tetroship/tetroship/player"
	"github.com/tetroship/tetroship/protocol"
)

// PeerID identifies which of the two fixed-port peers sent or should
// receive a packet.
type PeerID int

const (
	PeerOne PeerID = 1
	PeerTwo PeerID = 2
)

// Other returns the opposing peer.
func (id PeerID) Other() PeerID {
	if id == PeerOne {
		return PeerTwo
	}
	return PeerOne
}

func (id PeerID) String() string {
	if id == PeerOne {
		return "p1"
	}
	return "p2"
}

// Outbound is one reply line addressed to one peer. A single inbound
// packet produces zero to three Outbound values: two for a forfeit or
// in-play disconnect (the Halt pair), three for a winning shot (the shot
// result followed by the Halt pair).
type Outbound struct {
	To   PeerID
	Line string
}

// Session is a single game's exclusively-owned state: both players, the
// shared board dimensions, the current phase, and whose turn it is.
type Session struct {
	id uuid.UUID

	width, height int

	p1, p2 *player.Player

	phase       protocol.Phase
	currentTurn PeerID

	log     *slog.Logger
	metrics *Metrics
}

// New creates a fresh session in PhaseBegin with current_turn = 1. logger
// and metrics may be nil; a nil logger discards every log line the way
// slog.New(slog.DiscardHandler) would, and a nil metrics disables
// recording without the caller needing a no-op implementation.
func New(logger *slog.Logger, metrics *Metrics) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(discardWriter{}, nil))
	}
	id := uuid.New()
	s := &Session{
		id:          id,
		p1:          player.New(),
		p2:          player.New(),
		phase:       protocol.PhaseBegin,
		currentTurn: PeerOne,
		log:         logger.With("session", id.String()),
		metrics:     metrics,
	}
	s.metrics.gameStarted()
	return s
}

// ID returns the session's correlation identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Phase returns the session's current phase.
func (s *Session) Phase() protocol.Phase {
	return s.phase
}

func (s *Session) playerFor(id PeerID) *player.Player {
	if id == PeerOne {
		return s.p1
	}
	return s.p2
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
