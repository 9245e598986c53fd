package interfaces

import "storefront-gateway/src/models"

// -----------------------------------------------------------------------------

// IStream defines the interface for managing a single realtime stream
type IStream interface {
	GetName() string
	Start() error
	Stop() error
	Subscribe(topics []string) error
	UnSubscribe(topics []string) error
	GetStatus() *models.MStreamStatus
}
