package interfaces

import (
	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"
)

// -----------------------------------------------------------------------------

// IStreamProfileConstructor defines the function signature for creating a new
// IStreamProfile instance from the stream configuration.
type IStreamProfileConstructor func(config *models.MStreamConfig, logger *logger.Logger, name string) (IStreamProfile, error)

// -----------------------------------------------------------------------------

// IStreamProfile captures the per-stream knowledge: endpoint and credentials,
// default topics, the control-frame wire format, and which inbound events the
// stream actually cares about.
type IStreamProfile interface {
	// GetName returns the stream name
	GetName() string

	// GetKind returns the profile kind ("orders", "inventory", "notifications")
	GetKind() string

	// GetEndpoint returns the websocket endpoint (for display/logging)
	GetEndpoint() string

	// Credentials returns the optional token and user ID used on connect
	Credentials() (token string, userID string)

	// DefaultTopics returns the topics every connection of this kind carries
	DefaultTopics() []string

	// AddSubscription creates the subscribe control frame for topics
	AddSubscription(topics []string) ([]byte, error)

	// RemoveSubscription creates the unsubscribe control frame for topics
	RemoveSubscription(topics []string) ([]byte, error)

	// Classify maps an inbound event to its relay subject suffix. ok is false
	// for events the stream does not relay (acks, pings, foreign types).
	Classify(event *models.MEvent) (subject string, ok bool)
}
