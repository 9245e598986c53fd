package streams

import (
	"encoding/json"
	"testing"
	"time"

	"storefront-gateway/src/interfaces"
	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"

	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func streamConfig() *models.MStreamConfig {
	return &models.MStreamConfig{
		Name:     "orders",
		Kind:     "orders",
		Endpoint: "ws://localhost:8080/ws/orders",
		Token:    "tok",
		UserID:   "u1",
	}
}

func event(eventType string) *models.MEvent {
	return &models.MEvent{Type: eventType, Fields: map[string]any{"type": eventType}, ReceivedAt: time.Now()}
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

func TestRegistryHasAllKinds(t *testing.T) {
	for _, kind := range []string{"orders", "inventory", "notifications"} {
		constructor, err := GetConstructor(kind)
		require.NoError(t, err, kind)
		require.NotNil(t, constructor, kind)
	}
}

func TestRegistryUnknownKind(t *testing.T) {
	_, err := GetConstructor("bogus")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown stream profile kind")
}

func TestRegisterDuplicateKind(t *testing.T) {
	err := Register("orders", NewOrders)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already registered")
}

// -----------------------------------------------------------------------------
// Profile basics
// -----------------------------------------------------------------------------

func TestProfileAccessors(t *testing.T) {
	profile, err := NewOrders(streamConfig(), logger.NewNop(), "orders")
	require.NoError(t, err)

	require.Equal(t, "orders", profile.GetName())
	require.Equal(t, "orders", profile.GetKind())
	require.Equal(t, "ws://localhost:8080/ws/orders", profile.GetEndpoint())

	token, userID := profile.Credentials()
	require.Equal(t, "tok", token)
	require.Equal(t, "u1", userID)
}

func TestProfileNilConfig(t *testing.T) {
	_, err := NewOrders(nil, logger.NewNop(), "orders")
	require.Error(t, err)
	_, err = NewInventory(nil, logger.NewNop(), "inventory")
	require.Error(t, err)
	_, err = NewNotifications(nil, logger.NewNop(), "notifications")
	require.Error(t, err)
}

// -----------------------------------------------------------------------------
// Subscription frames
// -----------------------------------------------------------------------------

func TestSubscriptionFrames(t *testing.T) {
	profile, err := NewOrders(streamConfig(), logger.NewNop(), "orders")
	require.NoError(t, err)

	frame, err := profile.AddSubscription([]string{"order_updates", "vip_orders"})
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"subscribe","events":["order_updates","vip_orders"]}`, string(frame))

	frame, err = profile.RemoveSubscription([]string{"vip_orders"})
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"unsubscribe","events":["vip_orders"]}`, string(frame))
}

// -----------------------------------------------------------------------------
// Default topics and classification
// -----------------------------------------------------------------------------

func TestDefaultTopics(t *testing.T) {
	cfg := streamConfig()
	log := logger.NewNop()

	orders, _ := NewOrders(cfg, log, "orders")
	require.Equal(t, []string{"order_updates"}, orders.DefaultTopics())

	inventory, _ := NewInventory(cfg, log, "inventory")
	require.Equal(t, []string{"product_inventory", "low_stock_alerts"}, inventory.DefaultTopics())

	notifications, _ := NewNotifications(cfg, log, "notifications")
	require.Equal(t, []string{"notifications", "user_status"}, notifications.DefaultTopics())
}

func TestClassify(t *testing.T) {
	cfg := streamConfig()
	log := logger.NewNop()

	tests := []struct {
		profile   string
		eventType string
		relayed   bool
	}{
		{"orders", "order_update", true},
		{"orders", "product_inventory_update", false},
		{"orders", "subscribed", false},
		{"inventory", "product_inventory_update", true},
		{"inventory", "low_stock_alert", true},
		{"inventory", "order_update", false},
		{"notifications", "new_notification", true},
		{"notifications", "notification_update", true},
		{"notifications", "notification_deleted", true},
		{"notifications", "all_notifications_read", true},
		{"notifications", "ping", false},
	}

	profiles := map[string]interfaces.IStreamProfile{}
	for _, kind := range []string{"orders", "inventory", "notifications"} {
		constructor, err := GetConstructor(kind)
		require.NoError(t, err)
		profile, err := constructor(cfg, log, kind)
		require.NoError(t, err)
		profiles[kind] = profile
	}

	for _, tt := range tests {
		t.Run(tt.profile+"/"+tt.eventType, func(t *testing.T) {
			subject, ok := profiles[tt.profile].Classify(event(tt.eventType))
			require.Equal(t, tt.relayed, ok)
			if ok {
				// Relayed events keep their own type as the subject.
				require.Equal(t, tt.eventType, subject)
			}
		})
	}
}

func TestClassifyNilEvent(t *testing.T) {
	profile, _ := NewOrders(streamConfig(), logger.NewNop(), "orders")
	_, ok := profile.Classify(nil)
	require.False(t, ok)
}

// -----------------------------------------------------------------------------

// Frames have to stay parseable as generic control messages for test servers
// and recorded fixtures.
func TestSubscriptionFrameShape(t *testing.T) {
	profile, _ := NewInventory(streamConfig(), logger.NewNop(), "inventory")
	frame, err := profile.AddSubscription(profile.DefaultTopics())
	require.NoError(t, err)

	var decoded struct {
		Type   string   `json:"type"`
		Events []string `json:"events"`
	}
	require.NoError(t, json.Unmarshal(frame, &decoded))
	require.Equal(t, "subscribe", decoded.Type)
	require.Equal(t, []string{"product_inventory", "low_stock_alerts"}, decoded.Events)
}
