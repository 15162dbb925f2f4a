// Package listener receives UDP datagrams and hands each one to a Handler.
package listener

import (
	"context"
	"net/netip"
)

// Datagram is a single received UDP datagram.
type Datagram struct {
	// Payload is the raw datagram content. It is only valid until
	// Handle returns; handlers that keep it must copy it.
	Payload []byte

	// Addr is the sender's IP address
	Addr netip.Addr

	// Port is the sender's UDP port
	Port uint16
}

// Handler consumes received datagrams.
type Handler interface {
	// Handle is called once per datagram, one datagram at a time,
	// in the order the socket delivers them.
	Handle(ctx context.Context, d Datagram)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, d Datagram)

// Handle calls f(ctx, d).
func (f HandlerFunc) Handle(ctx context.Context, d Datagram) {
	f(ctx, d)
}
