package streams

import (
	"fmt"

	"storefront-gateway/src/interfaces"
	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"
	"storefront-gateway/src/serializers"
)

// -----------------------------------------------------------------------------

// Orders implements interfaces.IStreamProfile for the order-tracking stream.
type Orders struct {
	baseProfile
}

// ordersEvents are the inbound event types the orders stream relays.
var ordersEvents = map[string]bool{
	"order_update": true,
}

// -----------------------------------------------------------------------------

func init() {
	// Register the profile with the kind "orders" for dynamic creation
	if err := Register("orders", NewOrders); err != nil {
		fmt.Printf("Error registering orders profile: %v\n", err)
	}
}

// -----------------------------------------------------------------------------

// NewOrders creates a new orders stream profile.
// Matches the interfaces.IStreamProfileConstructor signature.
func NewOrders(cfg *models.MStreamConfig, log *logger.Logger, name string) (interfaces.IStreamProfile, error) {
	if cfg == nil {
		return nil, fmt.Errorf("stream config '%s' not found", name)
	}

	return &Orders{
		baseProfile: baseProfile{
			Name:       name,
			Kind:       "orders",
			Logger:     log,
			Config:     cfg,
			Serializer: serializers.NewJSONSerializer(),
		},
	}, nil
}

// -----------------------------------------------------------------------------

// DefaultTopics returns the topics every orders connection carries.
func (o *Orders) DefaultTopics() []string {
	return []string{"order_updates"}
}

// -----------------------------------------------------------------------------

// Classify relays order_update events under their own type and drops
// everything else (subscription acks, pings, foreign types).
func (o *Orders) Classify(event *models.MEvent) (string, bool) {
	return classifyAllowed(event, ordersEvents)
}
