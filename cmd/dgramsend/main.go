// Package main is dgramsend, which sends each line of stdin as one
// UDP datagram. It is the companion test client for dgram.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/observiq/dgram/internal/config"
	"github.com/observiq/dgram/internal/logging"
	"github.com/observiq/dgram/sender"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("dgramsend", pflag.ExitOnError)
	host := flags.String("host", config.DefaultListenerHost, "host to send datagrams to")
	port := flags.Int("port", config.DefaultListenerPort, "port to send datagrams to")
	level := flags.String("logging-level", string(config.LogLevelWarn), "log level to use. One of: debug|info|warn|error")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Printf("Failed to parse flags: %s\n", err.Error())
		os.Exit(1)
	}

	if err := config.ValidateHost(*host); err != nil {
		fmt.Printf("Invalid host: %s\n", err.Error())
		os.Exit(1)
	}
	if err := config.ValidatePort(*port); err != nil {
		fmt.Printf("Invalid port: %s\n", err.Error())
		os.Exit(1)
	}

	logCfg := config.Logging{Type: config.LoggingTypeStdout, Level: config.LogLevel(*level)}
	if err := logCfg.Validate(); err != nil {
		fmt.Printf("Invalid logging level: %s\n", err.Error())
		os.Exit(1)
	}
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %s\n", err.Error())
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	udp, err := sender.NewUDP(logger, *host, strconv.Itoa(*port), sender.DefaultUDPWorkers)
	if err != nil {
		logger.Error("Failed to create UDP sender", zap.Error(err))
		os.Exit(1)
	}

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 4096), config.MaxListenerBufferSize)
	for scanner.Scan() {
		if err := udp.Write(ctx, scanner.Bytes()); err != nil {
			logger.Error("Failed to send datagram", zap.Error(err))
			break
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("Failed to read stdin", zap.Error(err))
	}

	if err := udp.Stop(ctx); err != nil {
		logger.Error("Failed to stop UDP sender", zap.Error(err))
		os.Exit(1)
	}
}
