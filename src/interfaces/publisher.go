package interfaces

import "storefront-gateway/src/models"

// -----------------------------------------------------------------------------

// IPublisher defines the interface for relaying gateway traffic onto the bus
type IPublisher interface {
	// OnEvent publishes one classified stream event
	OnEvent(stream string, subject string, event *models.MEvent)

	// OnDiscrepancy publishes a failed price reconciliation for auditing
	OnDiscrepancy(breakdown *models.MPriceBreakdown, result *models.MValidationResult)

	// Connect establishes connection to the message broker
	Connect() error

	// Disconnect closes the connection to the message broker
	Disconnect() error

	// IsConnected returns the current connection status
	IsConnected() bool
}
