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

// Package fixtures loads named YAML scenarios: a scripted sequence of
// packets, each sent by one of the two peers, and the replies expected in
// response. They
// serve as example game transcripts and as a scripted opponent for tests,
// the same job the teacher's internal/conversation package does for a
// scripted Cardano mini-protocol peer, applied here to a single
// line-oriented text protocol instead of a muxed CBOR one.
package fixtures

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named sequence of steps exercising one full session.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one packet sent by a peer, plus the replies it's expected to
// produce. Expect may be empty for a wrong-turn Shoot or Query, which the
// protocol silently ignores.
type Step struct {
	// From is "p1" or "p2".
	From string `yaml:"from"`
	// Send is the raw packet line, without the trailing newline.
	Send string `yaml:"send"`
	// Expect lists the replies this step must produce, in order.
	Expect []Expect `yaml:"expect"`
}

// Expect is one reply line addressed to one peer.
type Expect struct {
	// To is "p1" or "p2".
	To   string `yaml:"to"`
	Line string `yaml:"line"`
}

// NewFromFile loads a Scenario from a YAML file at path.
func NewFromFile(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, err
	}
	defer f.Close()
	return NewFromReader(f)
}

// NewFromReader loads a Scenario from r. Unknown fields are rejected, the
// same strictness the teacher applies to its conversation files.
func NewFromReader(r io.Reader) (Scenario, error) {
	var ret Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ret); err != nil {
		return Scenario{}, err
	}
	return ret, nil
}
