package streams

import (
	"context"
	"fmt"

	"storefront-gateway/src/interfaces"
	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"
	"storefront-gateway/src/utils"
)

// -----------------------------------------------------------------------------

// Stream binds a profile and a channel into one managed realtime stream flow.
type Stream struct {
	Name    string
	Logger  *logger.Logger
	Profile interfaces.IStreamProfile
	Channel interfaces.IChannel

	// Topics subscribed on top of the profile defaults (from configuration).
	Topics []string

	// OnEvent receives every relayed event; nil disables relaying.
	OnEvent func(stream string, subject string, event *models.MEvent)

	// offRelay releases the current relay registration; nil when none is held.
	offRelay func()
}

// -----------------------------------------------------------------------------

// GetName returns the stream name.
func (s *Stream) GetName() string {
	return s.Name
}

// -----------------------------------------------------------------------------

// Start connects the channel and sends the initial subscriptions. The relay
// handler is registered before dialing so no early event is missed; any
// registration left over from a previous Start is released first, so a
// restart never stacks a second relay onto the channel.
func (s *Stream) Start() error {
	if s.offRelay != nil {
		s.offRelay()
		s.offRelay = nil
	}
	if s.OnEvent != nil {
		s.offRelay = s.Channel.On("message", s.forward)
	}

	token, userID := s.Profile.Credentials()
	if err := s.Channel.Connect(context.Background(), s.Profile.GetEndpoint(), token, userID); err != nil {
		return fmt.Errorf("failed to start stream %s: %w", s.Name, err)
	}

	topics := append(s.Profile.DefaultTopics(), s.Topics...)
	if err := s.Subscribe(topics); err != nil {
		return err
	}

	s.Logger.Info("%s : stream started", s.Name)
	return nil
}

// -----------------------------------------------------------------------------

// Stop closes the channel and releases the relay registration.
func (s *Stream) Stop() error {
	s.Logger.Info("%s : stopping stream", s.Name)
	if s.offRelay != nil {
		s.offRelay()
		s.offRelay = nil
	}
	return s.Channel.Disconnect()
}

// -----------------------------------------------------------------------------
// Subscription Methods
// -----------------------------------------------------------------------------

// Subscribe creates a subscription frame for the given topics and sends it.
func (s *Stream) Subscribe(topics []string) error {
	if len(topics) == 0 {
		return nil // Nothing to subscribe to
	}

	frame, err := s.Profile.AddSubscription(topics)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription frame for %s: %w", s.Name, err)
	}

	if err := s.Channel.SendMessage(frame); err != nil {
		return fmt.Errorf("failed to send subscription frame for %s: %w", s.Name, err)
	}

	s.Logger.Info("%s : subscription frame sent for %d topics", s.Name, len(topics))
	return nil
}

// -----------------------------------------------------------------------------

// UnSubscribe creates an unsubscription frame for the given topics and sends it.
func (s *Stream) UnSubscribe(topics []string) error {
	if len(topics) == 0 {
		return nil // Nothing to unsubscribe from
	}

	frame, err := s.Profile.RemoveSubscription(topics)
	if err != nil {
		return fmt.Errorf("failed to marshal unsubscription frame for %s: %w", s.Name, err)
	}

	if err := s.Channel.SendMessage(frame); err != nil {
		return fmt.Errorf("failed to send unsubscription frame for %s: %w", s.Name, err)
	}

	s.Logger.Info("%s : unsubscription frame sent for %d topics", s.Name, len(topics))
	return nil
}

// -----------------------------------------------------------------------------

// GetStatus aggregates profile and channel state into one status snapshot.
func (s *Stream) GetStatus() *models.MStreamStatus {
	return &models.MStreamStatus{
		StreamName: s.Name,
		Running:    s.Channel.IsRunning(),
		Kind:       s.Profile.GetKind(),
		Status:     s.Channel.Status(),
		Endpoint:   utils.MaskToken(s.Profile.GetEndpoint()),
		Topics:     s.Topics,
	}
}

// -----------------------------------------------------------------------------

// forward relays one classified event to the gateway callback.
func (s *Stream) forward(event *models.MEvent) {
	subject, ok := s.Profile.Classify(event)
	if !ok {
		return
	}
	s.OnEvent(s.Name, subject, event)
}
