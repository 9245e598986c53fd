package streams

import (
	"fmt"

	"storefront-gateway/src/interfaces"
	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"
	"storefront-gateway/src/serializers"
)

// -----------------------------------------------------------------------------

// Notifications implements interfaces.IStreamProfile for the user
// notification stream.
type Notifications struct {
	baseProfile
}

// notificationEvents are the inbound event types the notification stream
// relays.
var notificationEvents = map[string]bool{
	"new_notification":       true,
	"notification_update":    true,
	"notification_deleted":   true,
	"all_notifications_read": true,
}

// -----------------------------------------------------------------------------

func init() {
	if err := Register("notifications", NewNotifications); err != nil {
		fmt.Printf("Error registering notifications profile: %v\n", err)
	}
}

// -----------------------------------------------------------------------------

// NewNotifications creates a new notifications stream profile.
func NewNotifications(cfg *models.MStreamConfig, log *logger.Logger, name string) (interfaces.IStreamProfile, error) {
	if cfg == nil {
		return nil, fmt.Errorf("stream config '%s' not found", name)
	}

	return &Notifications{
		baseProfile: baseProfile{
			Name:       name,
			Kind:       "notifications",
			Logger:     log,
			Config:     cfg,
			Serializer: serializers.NewJSONSerializer(),
		},
	}, nil
}

// -----------------------------------------------------------------------------

// DefaultTopics returns the topics every notification connection carries.
func (n *Notifications) DefaultTopics() []string {
	return []string{"notifications", "user_status"}
}

// -----------------------------------------------------------------------------

// Classify relays notification lifecycle events under their own type.
func (n *Notifications) Classify(event *models.MEvent) (string, bool) {
	return classifyAllowed(event, notificationEvents)
}
