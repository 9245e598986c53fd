package interfaces

import (
	"context"

	"storefront-gateway/src/models"
)

// -----------------------------------------------------------------------------

// EventHandler receives one dispatched event.
type EventHandler func(event *models.MEvent)

// StatusHandler receives one channel status transition.
type StatusHandler func(status models.MChannelStatus)

// -----------------------------------------------------------------------------

// IChannel defines the contract for a single persistent-connection client with
// its own status and event-handler state.
type IChannel interface {
	// Connect dials the endpoint and starts dispatching inbound events.
	// A call while already connected or connecting is a no-op with a warning.
	// Token and userID are optional; when both are set the channel
	// auto-subscribes to the default topics after the socket opens.
	Connect(ctx context.Context, endpoint, token, userID string) error

	// Disconnect closes the socket, clears every registered event handler and
	// emits one final DISCONNECTED status. Safe to call when already closed.
	Disconnect() error

	// IsRunning reports whether a live socket is held.
	IsRunning() bool

	// GetName returns the channel name.
	GetName() string

	// Status returns the current channel status.
	Status() models.MChannelStatus

	// SendMessage sends a frame if the socket is open; otherwise the frame is
	// dropped with a logged warning.
	SendMessage(data []byte) error

	// On registers a handler for an event type and returns its idempotent
	// unsubscribe. The literal type "message" receives every event.
	On(eventType string, handler EventHandler) func()

	// OnStatusChange registers a status listener and returns its unsubscribe.
	OnStatusChange(handler StatusHandler) func()
}
