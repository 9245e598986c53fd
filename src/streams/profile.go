package streams

import (
	"fmt"

	"storefront-gateway/src/interfaces"
	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"
)

// -----------------------------------------------------------------------------

// baseProfile carries the configuration-derived behavior shared by every
// stream profile: endpoint and credential accessors plus the subscribe control
// frame wire format. Kind-specific profiles embed it and supply their default
// topics and event allowlist.
type baseProfile struct {
	Name       string
	Kind       string
	Logger     *logger.Logger
	Config     *models.MStreamConfig
	Serializer interfaces.ISerializer
}

// -----------------------------------------------------------------------------

// GetName returns the stream name
func (p *baseProfile) GetName() string {
	return p.Name
}

// -----------------------------------------------------------------------------

// GetKind returns the profile kind
func (p *baseProfile) GetKind() string {
	return p.Kind
}

// -----------------------------------------------------------------------------

// GetEndpoint returns the websocket endpoint URL
func (p *baseProfile) GetEndpoint() string {
	return p.Config.Endpoint
}

// -----------------------------------------------------------------------------

// Credentials returns the optional token and user ID used on connect
func (p *baseProfile) Credentials() (string, string) {
	return p.Config.Token, p.Config.UserID
}

// -----------------------------------------------------------------------------

// AddSubscription creates the subscribe control frame for the given topics.
func (p *baseProfile) AddSubscription(topics []string) ([]byte, error) {
	frame, err := p.Serializer.Marshal(map[string]any{
		"type":   "subscribe",
		"events": topics,
	})
	if err != nil {
		p.Logger.Error("%s : failed to serialize subscribe frame for topics %v: %v", p.Name, topics, err)
		return nil, fmt.Errorf("failed to serialize subscribe frame: %w", err)
	}
	return frame, nil
}

// -----------------------------------------------------------------------------

// RemoveSubscription creates the unsubscribe control frame for the given topics.
func (p *baseProfile) RemoveSubscription(topics []string) ([]byte, error) {
	frame, err := p.Serializer.Marshal(map[string]any{
		"type":   "unsubscribe",
		"events": topics,
	})
	if err != nil {
		p.Logger.Error("%s : failed to serialize unsubscribe frame for topics %v: %v", p.Name, topics, err)
		return nil, fmt.Errorf("failed to serialize unsubscribe frame: %w", err)
	}
	return frame, nil
}

// -----------------------------------------------------------------------------

// classifyAllowed is the shared Classify body: an event whose type is on the
// allowlist relays under its own type; control acks and foreign types do not
// relay at all.
func classifyAllowed(event *models.MEvent, allowed map[string]bool) (string, bool) {
	if event == nil {
		return "", false
	}
	if !allowed[event.Type] {
		return "", false
	}
	return event.Type, true
}
