package publishers

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront-gateway/src/interfaces"
	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// -----------------------------------------------------------------------------
// NATSPublisher relays gateway traffic onto the internal NATS bus
// -----------------------------------------------------------------------------

// NATSPublisher implements the interfaces.IPublisher interface
type NATSPublisher struct {
	name   string
	config *models.MNATSConfig
	logger *logger.Logger

	useJetStream bool

	mu sync.RWMutex

	nc         *nats.Conn             // NATS core connection
	js         nats.JetStreamContext  // JetStream context (if enabled)
	serializer interfaces.ISerializer // serialize envelopes before sending

	connected bool
}

// -----------------------------------------------------------------------------

// NewNATSPublisher creates a new NATS publisher instance
func NewNATSPublisher(cfg *models.MNATSConfig, log *logger.Logger, serializer interfaces.ISerializer) interfaces.IPublisher {
	return &NATSPublisher{
		name:         cfg.ClientID,
		config:       cfg,
		logger:       log,
		useJetStream: cfg.UseJetStream,
		serializer:   serializer,
	}
}

// -----------------------------------------------------------------------------

// OnEvent is the central callback where every classified stream event lands.
// The event is wrapped in an envelope with a fresh ID and published on
// "events.<stream>.<subject>".
func (np *NATSPublisher) OnEvent(stream string, subject string, event *models.MEvent) {
	envelope := models.MEventEnvelope{
		ID:         uuid.NewString(),
		Stream:     stream,
		Type:       event.Type,
		ReceivedAt: event.ReceivedAt,
		Payload:    event.Fields,
	}

	fullSubject := fmt.Sprintf("events.%s.%s", stream, subject)

	data, err := np.serializer.Marshal(&envelope)
	if err != nil {
		np.logger.Error("%s : failed to serialize event for subject %s: %v", np.name, fullSubject, err)
		return
	}

	if err := np.publish(fullSubject, data); err != nil {
		np.logger.Error("%s : failed to publish %s event for stream %s to subject %s: %v",
			np.name, event.Type, stream, fullSubject, err)
	}
}

// -----------------------------------------------------------------------------

// OnDiscrepancy publishes a failed price reconciliation on the audit subject.
func (np *NATSPublisher) OnDiscrepancy(breakdown *models.MPriceBreakdown, result *models.MValidationResult) {
	if result == nil || result.IsValid {
		return
	}

	report := map[string]any{
		"id":          uuid.NewString(),
		"detected_at": time.Now().UTC(),
		"breakdown":   breakdown,
		"result":      result,
	}

	data, err := np.serializer.Marshal(report)
	if err != nil {
		np.logger.Error("%s : failed to serialize discrepancy report: %v", np.name, err)
		return
	}

	if err := np.publish("pricing.discrepancy", data); err != nil {
		np.logger.Error("%s : failed to publish discrepancy report: %v", np.name, err)
	}
}

// -----------------------------------------------------------------------------

// publish sends raw data to a subject, via JetStream when enabled.
func (np *NATSPublisher) publish(subject string, data []byte) error {
	if !np.IsConnected() {
		return fmt.Errorf("nats client not connected")
	}

	fullSubject := np.getSubject(subject)

	np.mu.RLock()
	nc, js := np.nc, np.js
	np.mu.RUnlock()

	if np.useJetStream {
		if js == nil {
			return fmt.Errorf("jetstream is not initialized or enabled")
		}
		_, err := js.Publish(fullSubject, data)
		return err
	}

	// Fire-and-forget delivery on NATS core.
	return nc.Publish(fullSubject, data)
}

// -----------------------------------------------------------------------------

// Connect establishes the connection to the NATS servers.
func (np *NATSPublisher) Connect() error {
	np.mu.Lock()
	defer np.mu.Unlock()

	if np.connected {
		return nil
	}

	opts := []nats.Option{
		nats.Name(np.config.ClientID),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
	}

	nc, err := nats.Connect(strings.Join(np.config.Servers, ","), opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	np.nc = nc

	if np.useJetStream {
		js, err := nc.JetStream()
		if err != nil {
			nc.Close()
			np.nc = nil
			return fmt.Errorf("failed to initialize JetStream: %w", err)
		}
		np.js = js
	}

	np.connected = true
	np.logger.Info("%s : connected to NATS servers %v", np.name, np.config.Servers)
	return nil
}

// -----------------------------------------------------------------------------

// Disconnect drains and closes the NATS connection.
func (np *NATSPublisher) Disconnect() error {
	np.mu.Lock()
	defer np.mu.Unlock()

	if !np.connected {
		return nil
	}

	if err := np.nc.Drain(); err != nil {
		np.logger.Error("%s : failed to drain NATS connection: %v", np.name, err)
		np.nc.Close()
	}

	np.nc = nil
	np.js = nil
	np.connected = false
	np.logger.Info("%s : disconnected from NATS", np.name)
	return nil
}

// -----------------------------------------------------------------------------

// IsConnected returns the current connection status.
func (np *NATSPublisher) IsConnected() bool {
	np.mu.RLock()
	defer np.mu.RUnlock()
	return np.connected
}

// -----------------------------------------------------------------------------

// getSubject prefixes the subject for consistency, if configured.
func (np *NATSPublisher) getSubject(subject string) string {
	if np.config.SubjectPrefix == "" {
		return subject
	}
	return np.config.SubjectPrefix + "." + subject
}
