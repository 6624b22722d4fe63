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
	"github.com/jinzhu/copier"

	"github.com/tetroship/tetroship/player"
	"github.com/tetroship/tetroship/protocol"
)

// PlayerSnapshot is a read-only, decoupled copy of one player's scalar
// state: no bitset or board pointer is aliased, so a caller holding a
// PlayerSnapshot can never observe (or cause) a mutation to the live
// session.
type PlayerSnapshot struct {
	Stage          player.ReadyStage
	ShipsRemaining int
	ShotsTaken     int
}

// SessionSnapshot is a point-in-time, decoupled copy of the whole
// session, suitable for a status log line or a future introspection
// endpoint.
type SessionSnapshot struct {
	ID          string
	Phase       protocol.Phase
	CurrentTurn PeerID
	P1, P2      PlayerSnapshot
}

// playerFields mirrors PlayerSnapshot's shape with exported fields so
// copier can match them by name; Player's own fields are deliberately
// unexported (see player.Player), so this intermediate is how its scalar
// state crosses the package boundary as a value rather than a pointer.
type playerFields struct {
	Stage          player.ReadyStage
	ShipsRemaining int
	ShotsTaken     int
}

func snapshotPlayer(p *player.Player) PlayerSnapshot {
	src := playerFields{
		Stage:          p.Stage(),
		ShipsRemaining: p.ShipsRemaining(),
		ShotsTaken:     len(p.Shots()),
	}
	var dst PlayerSnapshot
	// copier.Copy rather than a field-by-field literal: this is the same
	// DTO-to-view copy shape used for every player-facing projection in
	// this package, kept consistent as more snapshot fields are added.
	_ = copier.Copy(&dst, &src)
	return dst
}

// Snapshot returns a decoupled copy of the session's current state.
func (s *Session) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		ID:          s.id.String(),
		Phase:       s.phase,
		CurrentTurn: s.currentTurn,
		P1:          snapshotPlayer(s.p1),
		P2:          snapshotPlayer(s.p2),
	}
}
