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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/tetroship/tetroship/internal/version"
	"github.com/tetroship/tetroship/session"
	"github.com/tetroship/tetroship/transport"
)

const programName = "tetroship-server"

var cmdlineFlags = struct {
	debug          bool
	p1Port         int
	p2Port         int
	listenAddr     string
	metricsAddress string
}{}

func main() {
	cmd := &cobra.Command{
		Use:   programName,
		Short: "Runs one tetromino-Battleship session over two fixed TCP ports",
		Run:   cmdRun,
	}

	cmd.Flags().BoolVarP(&cmdlineFlags.debug, "debug", "D", false, "enable debug logging")
	cmd.Flags().IntVar(&cmdlineFlags.p1Port, "p1-port", 2201, "port Player 1 connects to")
	cmd.Flags().IntVar(&cmdlineFlags.p2Port, "p2-port", 2202, "port Player 2 connects to")
	cmd.Flags().StringVarP(&cmdlineFlags.listenAddr, "listen-address", "a", "", "address to listen on (defaults to all addresses)")
	cmd.Flags().StringVar(&cmdlineFlags.metricsAddress, "metrics-address", "", "address to serve Prometheus metrics on (disabled if empty)")

	if err := cmd.Execute(); err != nil {
		// NOTE: we purposely don't display the error, since cobra will have already displayed it
		os.Exit(1)
	}
}

func configureLogger() *slog.Logger {
	var logger *slog.Logger
	if cmdlineFlags.debug {
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	} else {
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
	slog.SetDefault(logger)
	return logger
}

func cmdRun(cmd *cobra.Command, args []string) {
	logger := configureLogger()
	logger.Info(fmt.Sprintf("starting %s %s", programName, version.GetVersionString()))

	var metrics *session.Metrics
	if cmdlineFlags.metricsAddress != "" {
		reg := prometheus.NewRegistry()
		metrics = session.NewMetrics(reg)
		go serveMetrics(logger, cmdlineFlags.metricsAddress, reg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p1Addr := net.JoinHostPort(cmdlineFlags.listenAddr, fmt.Sprintf("%d", cmdlineFlags.p1Port))
	p2Addr := net.JoinHostPort(cmdlineFlags.listenAddr, fmt.Sprintf("%d", cmdlineFlags.p2Port))

	srv := transport.New(p1Addr, p2Addr, logger, metrics)
	logger.Info("listening", "p1_addr", p1Addr, "p2_addr", p2Addr)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
	logger.Info("session complete")
}

// serveMetrics runs the Prometheus HTTP endpoint. A bind failure here is a
// startup warning, not fatal: metrics are pure observation and never
// affect protocol behavior.
func serveMetrics(logger *slog.Logger, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics server failed to bind", "address", addr, "error", err)
	}
}
