package listener

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"sync"

	"github.com/observiq/dgram/internal/workermanager"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const (
	// DefaultUDPBufferSize is large enough for any UDP payload
	DefaultUDPBufferSize = 65535

	// udpReaders is fixed at one so datagrams are handled in
	// the order the socket delivers them.
	udpReaders = 1
)

// UDP is a bound UDP socket that passes every received datagram to a Handler.
type UDP struct {
	logger        *zap.Logger
	conn          *net.UDPConn
	buffer        []byte
	handler       Handler
	workerManager *workermanager.WorkerManager
	stopOnce      sync.Once

	datagramsReceived metric.Int64Counter
	bytesReceived     metric.Int64Counter
	readErrors        metric.Int64Counter
	attrs             metric.MeasurementOption
}

// NewUDP binds a UDP socket to host:port. Port 0 picks an ephemeral port.
// A bind failure is returned as is, wrapped, so callers can match the
// underlying OS error (for example syscall.EADDRINUSE).
// The socket is bound when NewUDP returns; call Start to begin reading.
func NewUDP(ctx context.Context, logger *zap.Logger, host string, port, bufferSize int, handler Handler, opts ...workermanager.Option) (*UDP, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if host == "" {
		return nil, fmt.Errorf("host cannot be empty")
	}
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("port must be between 0 and 65535, got %d", port)
	}
	if handler == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}
	if bufferSize <= 0 {
		bufferSize = DefaultUDPBufferSize
	}

	u := &UDP{
		logger:  logger.Named("listener-udp"),
		buffer:  make([]byte, bufferSize),
		handler: handler,
		attrs: metric.WithAttributeSet(
			attribute.NewSet(
				attribute.String("component", "listener_udp"),
			),
		),
	}

	if err := u.initMetrics(); err != nil {
		return nil, err
	}

	conn, err := bind(ctx, host, port)
	if err != nil {
		return nil, err
	}
	u.conn = conn

	u.logger.Info("UDP listener bound",
		zap.String("address", conn.LocalAddr().String()),
		zap.Int("buffer_size", bufferSize),
	)

	u.workerManager = workermanager.NewWorkerManager(u.logger, udpReaders, u.reader, opts...)
	return u, nil
}

// bind opens the socket. IPv4 literals are bound with "udp4" so the
// socket never becomes dual-stack.
func bind(ctx context.Context, host string, port int) (*net.UDPConn, error) {
	network := "udp"
	if ip, err := netip.ParseAddr(host); err == nil && ip.Is4() {
		network = "udp4"
	}
	address := net.JoinHostPort(host, strconv.Itoa(port))

	var lc net.ListenConfig
	pc, err := lc.ListenPacket(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", address, err)
	}

	conn, ok := pc.(*net.UDPConn)
	if !ok {
		_ = pc.Close()
		return nil, fmt.Errorf("bind %s: unexpected packet conn %T", address, pc)
	}
	return conn, nil
}

func (u *UDP) initMetrics() error {
	meter := otel.Meter("dgram-listener")

	var err error
	u.datagramsReceived, err = meter.Int64Counter(
		"listener.datagrams.received",
		metric.WithDescription("Total number of datagrams received"),
	)
	if err != nil {
		return fmt.Errorf("create datagrams received counter: %w", err)
	}

	u.bytesReceived, err = meter.Int64Counter(
		"listener.bytes.received",
		metric.WithDescription("Total number of payload bytes received"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return fmt.Errorf("create bytes received counter: %w", err)
	}

	u.readErrors, err = meter.Int64Counter(
		"listener.read.errors",
		metric.WithDescription("Total number of socket read errors"),
	)
	if err != nil {
		return fmt.Errorf("create read errors counter: %w", err)
	}

	return nil
}

// Addr returns the local address the socket is bound to.
func (u *UDP) Addr() net.Addr {
	return u.conn.LocalAddr()
}

// Start starts reading datagrams.
func (u *UDP) Start() {
	u.logger.Info("Starting UDP listener")
	u.workerManager.Start()
}

// Done is closed once the reader has exited for good, either because
// Stop was called or because it kept failing and was given up on.
func (u *UDP) Done() <-chan struct{} {
	return u.workerManager.Done()
}

// Stop closes the socket and waits for the reader to exit.
// If the provided context is done, Stop returns immediately
// even if the reader is still shutting down.
func (u *UDP) Stop(ctx context.Context) error {
	u.logger.Info("Stopping UDP listener")

	var closeErr error
	u.stopOnce.Do(func() {
		// Closing the socket unblocks the pending read.
		closeErr = u.conn.Close()
	})

	done := make(chan struct{})
	go func() {
		u.workerManager.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("stop cancelled due to context cancellation: %w", ctx.Err())
	}

	if closeErr != nil {
		return fmt.Errorf("close socket: %w", closeErr)
	}

	u.logger.Info("UDP listener stopped successfully")
	return nil
}

// reader reads datagrams until the socket is closed. Any other read
// error is returned so the worker manager restarts it with backoff.
func (u *UDP) reader(ctx context.Context, id int) error {
	u.logger.Debug("Starting UDP reader", zap.Int("worker_id", id))

	for {
		n, from, err := u.conn.ReadFromUDPAddrPort(u.buffer)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				u.logger.Info("UDP reader exiting - socket closed", zap.Int("worker_id", id))
				return nil
			}
			u.readErrors.Add(ctx, 1, u.attrs)
			return fmt.Errorf("read datagram: %w", err)
		}

		u.datagramsReceived.Add(ctx, 1, u.attrs)
		u.bytesReceived.Add(ctx, int64(n), u.attrs)

		u.handler.Handle(ctx, Datagram{
			Payload: u.buffer[:n],
			Addr:    from.Addr().Unmap(),
			Port:    from.Port(),
		})
	}
}
