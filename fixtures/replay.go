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

package fixtures

import (
	"fmt"

	"github.com/tetroship/tetroship/session"
)

// Mismatch describes one step whose actual replies didn't match Expect.
type Mismatch struct {
	Step   int
	Got    []session.Outbound
	Wanted []Expect
}

func (m Mismatch) String() string {
	return fmt.Sprintf("step %d: got %v, wanted %v", m.Step, m.Got, m.Wanted)
}

func peerID(name string) (session.PeerID, error) {
	switch name {
	case "p1":
		return session.PeerOne, nil
	case "p2":
		return session.PeerTwo, nil
	default:
		return 0, fmt.Errorf("unknown peer %q", name)
	}
}

// Replay drives sess through every step of sc, comparing each
// step's actual replies against its Expect list. It returns every
// mismatch found; a nil slice means the scenario played back exactly as
// scripted.
func Replay(sc Scenario, sess *session.Session) ([]Mismatch, error) {
	var mismatches []Mismatch
	for i, step := range sc.Steps {
		from, err := peerID(step.From)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		got := sess.HandlePacket(from, step.Send)
		if !outboundsMatch(got, step.Expect) {
			mismatches = append(mismatches, Mismatch{Step: i, Got: got, Wanted: step.Expect})
		}
	}
	return mismatches, nil
}

func outboundsMatch(got []session.Outbound, want []Expect) bool {
	if len(got) != len(want) {
		return false
	}
	for i, g := range got {
		w, err := peerID(want[i].To)
		if err != nil || g.To != w || g.Line != want[i].Line {
			return false
		}
	}
	return true
}
