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

// Kind is the tag of a parsed Command. This is the generalization of the
// teacher's ConversationEntry tagged interface (one of four pre-scripted
// mock actions) to the five commands a real client can send.
type Kind int

const (
	KindBegin Kind = iota
	KindInitialize
	KindShoot
	KindQuery
	KindForfeit
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "B"
	case KindInitialize:
		return "I"
	case KindShoot:
		return "S"
	case KindQuery:
		return "Q"
	case KindForfeit:
		return "F"
	default:
		return "?"
	}
}

// PlacementParams is one (type, rotation, row, col) group from an
// Initialize packet, in wire order.
type PlacementParams struct {
	Type     int
	Rotation int
	Row      int
	Col      int
}

// Command is a parsed inbound packet. Only the fields grouped under its
// Kind below are meaningful (none for Query and Forfeit); dispatch on Kind
// is exhaustive in the session controller.
type Command struct {
	Kind Kind

	// KindBegin (P1 only)
	Width  int
	Height int

	// KindInitialize
	Placements [5]PlacementParams

	// KindShoot
	Row int
	Col int
}
