package listener

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// LogHandler logs every datagram it receives and does nothing else.
type LogHandler struct {
	logger *zap.Logger
}

// NewLogHandler creates a handler that logs datagrams at info level.
func NewLogHandler(logger *zap.Logger) (*LogHandler, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &LogHandler{logger: logger}, nil
}

// Handle emits one log entry with the payload and the sender.
func (h *LogHandler) Handle(_ context.Context, d Datagram) {
	h.logger.Info("Received datagram",
		zap.ByteString("payload", d.Payload),
		zap.String("address", d.Addr.String()),
		zap.Uint16("port", d.Port),
		zap.Int("bytes", len(d.Payload)),
	)
}
