package models

import (
	"time"
)

// -----------------------------------------------------------------------------

// MChannelStatus is the connection state of a realtime channel.
type MChannelStatus string

const (
	ChannelConnected    MChannelStatus = "CONNECTED"
	ChannelDisconnected MChannelStatus = "DISCONNECTED"
	ChannelError        MChannelStatus = "ERROR"
)

// -----------------------------------------------------------------------------

// MEvent is one inbound frame from a realtime stream. Type is the dispatch
// key; Fields holds the full decoded payload, Raw the wire bytes.
type MEvent struct {
	Type       string         `json:"type"`
	Fields     map[string]any `json:"fields"`
	Raw        []byte         `json:"-"`
	ReceivedAt time.Time      `json:"received_at"`
}

// -----------------------------------------------------------------------------

// MEventEnvelope wraps an event for publication on the relay bus.
type MEventEnvelope struct {
	ID         string         `json:"id"`
	Stream     string         `json:"stream"`
	Type       string         `json:"type"`
	ReceivedAt time.Time      `json:"received_at"`
	Payload    map[string]any `json:"payload"`
}
