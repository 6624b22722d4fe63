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
	"bufio"
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func dialLine(t *testing.T, addr string) (net.Conn, *bufio.Scanner) {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	return conn, bufio.NewScanner(conn)
}

func sendLine(t *testing.T, conn net.Conn, line string) {
	t.Helper()
	_, err := fmt.Fprintf(conn, "%s\n", line)
	require.NoError(t, err)
}

func readLine(t *testing.T, scanner *bufio.Scanner) string {
	t.Helper()
	require.True(t, scanner.Scan())
	return scanner.Text()
}

// TestServerForfeitEndToEnd drives a real TCP handshake through BEGIN and
// INITIALIZE, then has Player 2 forfeit, checking both Halt messages arrive
// over real sockets.
func TestServerForfeitEndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := New("127.0.0.1:0", "127.0.0.1:0", nil, nil)
	require.NoError(t, srv.Listen())
	p1Addr, p2Addr := srv.Addrs()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	p1conn, p1s := dialLine(t, p1Addr)
	defer p1conn.Close()
	p2conn, p2s := dialLine(t, p2Addr)
	defer p2conn.Close()

	sendLine(t, p1conn, "B 10 10")
	require.Equal(t, "A", readLine(t, p1s))
	sendLine(t, p2conn, "B")
	require.Equal(t, "A", readLine(t, p2s))

	fleet := " 1 0 0 0 2 0 0 4 3 0 3 0 4 0 4 4 5 0 6 8"
	sendLine(t, p1conn, "I"+fleet)
	require.Equal(t, "A", readLine(t, p1s))
	sendLine(t, p2conn, "I"+fleet)
	require.Equal(t, "A", readLine(t, p2s))

	sendLine(t, p2conn, "F")
	require.Equal(t, "H 1", readLine(t, p1s))
	require.Equal(t, "H 0", readLine(t, p2s))

	require.NoError(t, <-done)

	// Both sockets should now be closed from the server side.
	require.False(t, p1s.Scan())
	require.False(t, p2s.Scan())
}

// TestServerDisconnectBeforePlayIsSilent checks that a peer closing its
// connection during BEGIN produces no Halt and simply ends the session.
func TestServerDisconnectBeforePlayIsSilent(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := New("127.0.0.1:0", "127.0.0.1:0", nil, nil)
	require.NoError(t, srv.Listen())
	p1Addr, p2Addr := srv.Addrs()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	p1conn, _ := dialLine(t, p1Addr)
	p2conn, p2s := dialLine(t, p2Addr)
	defer p2conn.Close()

	require.NoError(t, p1conn.Close())

	require.False(t, p2s.Scan())
	require.NoError(t, <-done)
}
