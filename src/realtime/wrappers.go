package realtime

import (
	"encoding/json"
	"fmt"

	"storefront-gateway/src/interfaces"
	"storefront-gateway/src/models"
	"storefront-gateway/src/utils"
)

// -----------------------------------------------------------------------------
// Domain convenience wrappers: thin sugar over On + SendMessage. Each sends a
// subscribe control frame and layers a correlating-ID filter in front of the
// caller's handler. No new state is introduced.
// -----------------------------------------------------------------------------

// SubscribeToOrder subscribes to updates for a single order. The handler is
// invoked only for order_update events whose orderId matches.
func (c *Channel) SubscribeToOrder(orderID string, handler interfaces.EventHandler) (func(), error) {
	err := c.sendControlFrame(map[string]any{
		"action":  "subscribe",
		"topic":   "order_updates",
		"orderId": orderID,
	})
	unsubscribe := c.On("order_update", filterByField("orderId", orderID, handler))
	return unsubscribe, err
}

// -----------------------------------------------------------------------------

// SubscribeToUserOrders subscribes to updates for every order of one user.
func (c *Channel) SubscribeToUserOrders(userID string, handler interfaces.EventHandler) (func(), error) {
	err := c.sendControlFrame(map[string]any{
		"action": "subscribe",
		"topic":  "order_updates",
		"userId": userID,
	})
	unsubscribe := c.On("order_update", filterByField("userId", userID, handler))
	return unsubscribe, err
}

// -----------------------------------------------------------------------------

// SubscribeToProduct subscribes to inventory updates for a single product.
func (c *Channel) SubscribeToProduct(productID string, handler interfaces.EventHandler) (func(), error) {
	err := c.sendControlFrame(map[string]any{
		"action":    "subscribe",
		"topic":     "product_inventory",
		"productId": productID,
	})
	unsubscribe := c.On("product_inventory_update", filterByField("productId", productID, handler))
	return unsubscribe, err
}

// -----------------------------------------------------------------------------

// SubscribeToLowStockAlerts subscribes to every low-stock alert on the stream.
func (c *Channel) SubscribeToLowStockAlerts(handler interfaces.EventHandler) (func(), error) {
	err := c.sendControlFrame(map[string]any{
		"action": "subscribe",
		"topic":  "low_stock_alerts",
	})
	unsubscribe := c.On("low_stock_alert", handler)
	return unsubscribe, err
}

// -----------------------------------------------------------------------------

// UpdateOrderStatus sends an order status mutation control frame.
func (c *Channel) UpdateOrderStatus(orderID, status, notes string) error {
	return c.sendControlFrame(map[string]any{
		"action":  "update_order_status",
		"orderId": orderID,
		"status":  status,
		"notes":   notes,
	})
}

// -----------------------------------------------------------------------------

// sendControlFrame marshals and sends one outbound control frame.
func (c *Channel) sendControlFrame(frame map[string]any) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("failed to marshal control frame: %w", err)
	}
	return c.SendMessage(data)
}

// -----------------------------------------------------------------------------

// filterByField wraps a handler so it only fires when the event payload's
// correlating ID matches the requested one.
func filterByField(key, want string, handler interfaces.EventHandler) interfaces.EventHandler {
	return func(event *models.MEvent) {
		if utils.FieldAsString(event.Fields[key]) == want {
			handler(event)
		}
	}
}
