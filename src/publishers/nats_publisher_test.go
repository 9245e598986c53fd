package publishers

import (
	"testing"
	"time"

	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"
	"storefront-gateway/src/serializers"

	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func testPublisher(prefix string) *NATSPublisher {
	cfg := &models.MNATSConfig{
		Servers:       []string{"nats://localhost:4222"},
		ClientID:      "test-publisher",
		SubjectPrefix: prefix,
	}
	return NewNATSPublisher(cfg, logger.NewNop(), serializers.NewJSONSerializer()).(*NATSPublisher)
}

// -----------------------------------------------------------------------------

func TestGetSubject(t *testing.T) {
	require.Equal(t, "storefront.events.orders.order_update",
		testPublisher("storefront").getSubject("events.orders.order_update"))
	require.Equal(t, "events.orders.order_update",
		testPublisher("").getSubject("events.orders.order_update"))
}

// -----------------------------------------------------------------------------

func TestPublishWhileDisconnected(t *testing.T) {
	np := testPublisher("")
	require.False(t, np.IsConnected())

	err := np.publish("events.orders.order_update", []byte("{}"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not connected")
}

func TestOnEventWhileDisconnectedDoesNotPanic(t *testing.T) {
	np := testPublisher("")
	// The relay drops the event with a logged error; callers never see it.
	np.OnEvent("orders", "order_update", &models.MEvent{
		Type:       "order_update",
		Fields:     map[string]any{"orderId": "o-1"},
		ReceivedAt: time.Now(),
	})
}

// -----------------------------------------------------------------------------

func TestOnDiscrepancySkipsValidResults(t *testing.T) {
	np := testPublisher("")

	// A valid result never touches the bus, connected or not.
	np.OnDiscrepancy(&models.MPriceBreakdown{}, &models.MValidationResult{IsValid: true})
	np.OnDiscrepancy(&models.MPriceBreakdown{}, nil)
}

// -----------------------------------------------------------------------------

func TestDisconnectWhenNeverConnected(t *testing.T) {
	np := testPublisher("")
	require.NoError(t, np.Disconnect())
}
