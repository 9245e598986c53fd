package streams

import (
	"fmt"

	"storefront-gateway/src/interfaces"
	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"
	"storefront-gateway/src/serializers"
)

// -----------------------------------------------------------------------------

// Inventory implements interfaces.IStreamProfile for the inventory stream.
type Inventory struct {
	baseProfile
}

// inventoryEvents are the inbound event types the inventory stream relays.
var inventoryEvents = map[string]bool{
	"product_inventory_update": true,
	"low_stock_alert":          true,
}

// -----------------------------------------------------------------------------

func init() {
	if err := Register("inventory", NewInventory); err != nil {
		fmt.Printf("Error registering inventory profile: %v\n", err)
	}
}

// -----------------------------------------------------------------------------

// NewInventory creates a new inventory stream profile.
func NewInventory(cfg *models.MStreamConfig, log *logger.Logger, name string) (interfaces.IStreamProfile, error) {
	if cfg == nil {
		return nil, fmt.Errorf("stream config '%s' not found", name)
	}

	return &Inventory{
		baseProfile: baseProfile{
			Name:       name,
			Kind:       "inventory",
			Logger:     log,
			Config:     cfg,
			Serializer: serializers.NewJSONSerializer(),
		},
	}, nil
}

// -----------------------------------------------------------------------------

// DefaultTopics returns the topics every inventory connection carries.
func (i *Inventory) DefaultTopics() []string {
	return []string{"product_inventory", "low_stock_alerts"}
}

// -----------------------------------------------------------------------------

// Classify relays inventory updates and low-stock alerts under their own type.
func (i *Inventory) Classify(event *models.MEvent) (string, bool) {
	return classifyAllowed(event, inventoryEvents)
}
