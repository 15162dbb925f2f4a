// Package sender writes datagrams to a UDP listener.
package sender

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/observiq/dgram/internal/workermanager"
	"go.uber.org/zap"
)

const (
	// DefaultUDPChannelSize is the default size of the data channel
	DefaultUDPChannelSize = 100

	// DefaultUDPWorkers is the default number of worker goroutines.
	// A single worker keeps datagrams in Write order.
	DefaultUDPWorkers = 1

	// DefaultUDPWriteTimeout is the default timeout for writing a datagram
	DefaultUDPWriteTimeout = 5 * time.Second
)

// ErrStopped is returned by Write once Stop has been called.
var ErrStopped = errors.New("UDP sender is stopped")

var errWorkersExited = errors.New("UDP sender workers exited")

// UDP sends each written payload as one datagram to host:port.
type UDP struct {
	logger        *zap.Logger
	host          string
	port          string
	workers       int
	dataChan      chan []byte
	workerManager *workermanager.WorkerManager

	mu     sync.RWMutex
	closed bool
}

// NewUDP creates a new UDP sender and starts its workers
func NewUDP(logger *zap.Logger, host, port string, workers int, opts ...workermanager.Option) (*UDP, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if host == "" {
		return nil, fmt.Errorf("host cannot be empty")
	}
	if port == "" {
		return nil, fmt.Errorf("port cannot be empty")
	}
	if workers <= 0 {
		workers = DefaultUDPWorkers
	}

	udp := &UDP{
		logger:   logger.Named("sender-udp"),
		host:     host,
		port:     port,
		workers:  workers,
		dataChan: make(chan []byte, DefaultUDPChannelSize),
	}

	udp.logger.Info("Starting UDP sender",
		zap.String("host", udp.host),
		zap.String("port", udp.port),
		zap.Int("workers", udp.workers),
		zap.Int("channel_size", DefaultUDPChannelSize),
	)

	udp.workerManager = workermanager.NewWorkerManager(udp.logger, workers, udp.udpWorker, opts...)
	udp.workerManager.Start()

	return udp, nil
}

// Write queues data to be sent as a single datagram. The data is copied,
// so the caller may reuse it once Write returns.
// If the provided context is done, Write returns immediately
// even if the data was not queued.
func (u *UDP) Write(ctx context.Context, data []byte) error {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if u.closed {
		return ErrStopped
	}

	payload := append([]byte(nil), data...)
	select {
	case u.dataChan <- payload:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting to write data: %w", ctx.Err())
	case <-u.workerManager.Done():
		return errWorkersExited
	}
}

// Stop sends whatever is still queued and shuts the workers down.
// If the provided context is done first, queued data is dropped.
func (u *UDP) Stop(ctx context.Context) error {
	u.logger.Info("Stopping UDP sender")

	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return nil
	}
	u.closed = true
	// Workers drain the channel and exit once it is closed.
	close(u.dataChan)
	u.mu.Unlock()

	var err error
	select {
	case <-u.workerManager.Done():
	case <-ctx.Done():
		err = fmt.Errorf("stop cancelled due to context cancellation: %w", ctx.Err())
	}

	u.workerManager.Stop()

	if err == nil {
		u.logger.Info("UDP sender stopped successfully")
	}
	return err
}

// udpWorker sends queued data until the channel is closed. Send
// failures are returned so the worker manager reconnects with backoff.
func (u *UDP) udpWorker(ctx context.Context, id int) error {
	u.logger.Debug("Starting UDP worker", zap.Int("worker_id", id))

	conn, err := u.connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	for {
		select {
		case data, ok := <-u.dataChan:
			if !ok {
				u.logger.Debug("UDP worker exiting - channel closed", zap.Int("worker_id", id))
				return nil
			}

			if err := u.sendData(conn, data); err != nil {
				return err
			}

		case <-ctx.Done():
			u.logger.Debug("UDP worker exiting - context cancelled", zap.Int("worker_id", id))
			return nil
		}
	}
}

// connect opens a UDP socket connected to the configured host and port
func (u *UDP) connect() (net.Conn, error) {
	address := net.JoinHostPort(u.host, u.port)

	conn, err := net.Dial("udp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	return conn, nil
}

// sendData writes one datagram with a timeout
func (u *UDP) sendData(conn net.Conn, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(DefaultUDPWriteTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	return nil
}
