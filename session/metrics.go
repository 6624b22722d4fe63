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
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tetroship/tetroship/protocol"
)

type outcome string

const (
	outcomeWin        outcome = "win"
	outcomeForfeit    outcome = "forfeit"
	outcomeDisconnect outcome = "disconnect"
)

// Metrics is an optional bundle of Prometheus collectors for the session
// controller. A nil *Metrics is valid everywhere it's used: every method
// on it is a nil receiver no-op, so callers never need to branch on
// whether metrics are enabled (the --metrics-address flag is off by
// default; see cmd/tetroship-server).
type Metrics struct {
	gamesStarted   prometheus.Counter
	gamesCompleted *prometheus.CounterVec
	shotsFired     prometheus.Counter
	shotsHit       prometheus.Counter
	errorsEmitted  *prometheus.CounterVec
}

// NewMetrics registers a fresh set of collectors on reg and returns a
// Metrics bundle. reg must not be nil; pass a nil *Metrics (not a
// Metrics backed by a throwaway registry) to disable metrics entirely.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		gamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tetroship_games_started_total",
			Help: "Number of sessions that reached PhaseBegin.",
		}),
		gamesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tetroship_games_completed_total",
			Help: "Number of sessions that reached PhaseTerminated, by outcome.",
		}, []string{"outcome"}),
		shotsFired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tetroship_shots_fired_total",
			Help: "Number of successfully resolved Shoot commands.",
		}),
		shotsHit: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tetroship_shots_hit_total",
			Help: "Number of resolved Shoot commands that hit a ship.",
		}),
		errorsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tetroship_errors_emitted_total",
			Help: "Number of E replies emitted, by code.",
		}, []string{"code"}),
	}
	reg.MustRegister(m.gamesStarted, m.gamesCompleted, m.shotsFired, m.shotsHit, m.errorsEmitted)
	return m
}

func (m *Metrics) gameStarted() {
	if m == nil {
		return
	}
	m.gamesStarted.Inc()
}

func (m *Metrics) gameCompleted(o outcome) {
	if m == nil {
		return
	}
	m.gamesCompleted.WithLabelValues(string(o)).Inc()
}

func (m *Metrics) shotFired(hit bool) {
	if m == nil {
		return
	}
	m.shotsFired.Inc()
	if hit {
		m.shotsHit.Inc()
	}
}

func (m *Metrics) errorEmitted(code protocol.Code) {
	if m == nil {
		return
	}
	m.errorsEmitted.WithLabelValues(strconv.Itoa(int(code))).Inc()
}
