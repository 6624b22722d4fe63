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

// Package transport wires the session controller to real TCP sockets. It
// opens the two fixed-port listeners, frames each connection into
// newline-delimited packets, and drives the controller from a single
// cooperative select loop, the same "expose a raw net.Conn as channels fed
// by an async loop" shape the retrieval pack's mock Connection uses for a
// muxed binary protocol, adapted here for one real line-oriented one.
package transport

import (
	"bufio"
	"fmt"
	"net"
	"sync"

	"github.com/tetroship/tetroship/session"
)

// peerConn pairs one net.Conn with the goroutines that turn it into a pair
// of channels: inbound lines read off the wire, and outbound lines queued
// to be written to it.
type peerConn struct {
	id   session.PeerID
	conn net.Conn

	inbound  chan string
	outbound chan string

	closed    chan struct{}
	closeOnce sync.Once
}

func newPeerConn(id session.PeerID, conn net.Conn) *peerConn {
	pc := &peerConn{
		id:       id,
		conn:     conn,
		inbound:  make(chan string),
		outbound: make(chan string, 8),
		closed:   make(chan struct{}),
	}
	go pc.readLoop()
	go pc.writeLoop()
	return pc
}

// readLoop scans newline-delimited packets off the wire and forwards them
// on inbound. It closes inbound on EOF or any read error, which the
// session runner treats as a disconnect.
func (pc *peerConn) readLoop() {
	defer close(pc.inbound)
	scanner := bufio.NewScanner(pc.conn)
	for scanner.Scan() {
		line := scanner.Text()
		select {
		case pc.inbound <- line:
		case <-pc.closed:
			return
		}
	}
}

// writeLoop drains outbound and writes each line newline-terminated to the
// wire. It closes the connection once outbound is closed and drained,
// which also unblocks readLoop's pending scan.
func (pc *peerConn) writeLoop() {
	defer pc.Close()
	for line := range pc.outbound {
		if _, err := fmt.Fprintf(pc.conn, "%s\n", line); err != nil {
			return
		}
	}
}

// send queues a line for delivery. It is a no-op once the connection has
// been closed, matching the "best effort after termination" behavior
// described for a peer that has already disconnected.
func (pc *peerConn) send(line string) {
	select {
	case pc.outbound <- line:
	case <-pc.closed:
	}
}

// Close closes the underlying connection exactly once.
func (pc *peerConn) Close() error {
	var err error
	pc.closeOnce.Do(func() {
		close(pc.closed)
		err = pc.conn.Close()
	})
	return err
}
