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

package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/tetroship/tetroship/protocol"
	"github.com/tetroship/tetroship/session"
)

// Server listens on the two fixed player ports and runs exactly one game
// to completion. A single game per process is a deliberate limit, not an
// oversight: neither reconnection nor concurrent games is part of this
// protocol.
type Server struct {
	P1Addr string
	P2Addr string

	Logger  *slog.Logger
	Metrics *session.Metrics

	p1ln net.Listener
	p2ln net.Listener
}

// New returns a Server that will listen on p1Addr/p2Addr (host:port
// strings, typically built from a listen address and the fixed ports
// 2201/2202) once Listen is called.
func New(p1Addr, p2Addr string, logger *slog.Logger, metrics *session.Metrics) *Server {
	return &Server{P1Addr: p1Addr, P2Addr: p2Addr, Logger: logger, Metrics: metrics}
}

// Listen opens both listeners without accepting any connections. Callers
// that need to know the actual bound address (e.g. tests using ":0") call
// this before Serve and read it back from Addrs.
func (s *Server) Listen() error {
	p1ln, err := net.Listen("tcp", s.P1Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.P1Addr, err)
	}
	p2ln, err := net.Listen("tcp", s.P2Addr)
	if err != nil {
		p1ln.Close()
		return fmt.Errorf("listen on %s: %w", s.P2Addr, err)
	}
	s.p1ln, s.p2ln = p1ln, p2ln
	return nil
}

// Addrs returns the bound addresses of the two listeners. Valid only after
// a successful Listen.
func (s *Server) Addrs() (p1, p2 string) {
	return s.p1ln.Addr().String(), s.p2ln.Addr().String()
}

// ListenAndServe is Listen followed by Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Serve accepts the first connection on each already-open listener (Player
// 1 on P1Addr, Player 2 on P2Addr, regardless of which arrives first), and
// runs the session to termination. Cancelling ctx while it is still waiting
// for the two peers makes it return ctx.Err(); once both have connected,
// ctx is no longer watched and Serve returns when the game ends.
func (s *Server) Serve(ctx context.Context) error {
	p1ln, p2ln := s.p1ln, s.p2ln
	defer p1ln.Close()
	defer p2ln.Close()

	stop := context.AfterFunc(ctx, func() {
		p1ln.Close()
		p2ln.Close()
	})
	defer stop()

	p1ch := make(chan net.Conn, 1)
	p2ch := make(chan net.Conn, 1)
	errCh := make(chan error, 2)

	go acceptOne(p1ln, p1ch, errCh)
	go acceptOne(p2ln, p2ch, errCh)

	var p1conn, p2conn net.Conn
	for p1conn == nil || p2conn == nil {
		select {
		case p1conn = <-p1ch:
		case p2conn = <-p2ch:
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	// Both peers have connected; no further connections are accepted for
	// the lifetime of this game.
	p1ln.Close()
	p2ln.Close()

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("both players connected", "p1", p1conn.RemoteAddr(), "p2", p2conn.RemoteAddr())

	p1 := newPeerConn(session.PeerOne, p1conn)
	p2 := newPeerConn(session.PeerTwo, p2conn)

	sess := session.New(logger, s.Metrics)
	runSession(sess, p1, p2)
	return nil
}

func acceptOne(ln net.Listener, out chan<- net.Conn, errCh chan<- error) {
	conn, err := ln.Accept()
	if err != nil {
		errCh <- err
		return
	}
	out <- conn
}

// runSession is the cooperative, single-threaded select loop: it reads one
// packet at a time from whichever peer produced one first, hands it to the
// session controller, and writes back whatever the controller decided to
// send before looking at the next packet.
func runSession(sess *session.Session, p1, p2 *peerConn) {
	peers := map[session.PeerID]*peerConn{session.PeerOne: p1, session.PeerTwo: p2}

	for {
		var outs []session.Outbound
		select {
		case line, ok := <-p1.inbound:
			if !ok {
				dispatch(peers, sess.HandleDisconnect(session.PeerOne))
				finish(peers)
				return
			}
			outs = sess.HandlePacket(session.PeerOne, line)
		case line, ok := <-p2.inbound:
			if !ok {
				dispatch(peers, sess.HandleDisconnect(session.PeerTwo))
				finish(peers)
				return
			}
			outs = sess.HandlePacket(session.PeerTwo, line)
		}

		dispatch(peers, outs)
		if sess.Phase() == protocol.PhaseTerminated {
			finish(peers)
			return
		}
	}
}

func dispatch(peers map[session.PeerID]*peerConn, outs []session.Outbound) {
	for _, out := range outs {
		peers[out.To].send(out.Line)
	}
}

// finish closes both peers' outbound queues so their write loops flush any
// queued replies (notably the dual Halt pair) and then close the
// underlying sockets.
func finish(peers map[session.PeerID]*peerConn) {
	for _, pc := range peers {
		close(pc.outbound)
	}
}
