package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"storefront-gateway/src/models"

	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func decodeFrame(t *testing.T, raw string) map[string]any {
	t.Helper()
	var frame map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &frame))
	return frame
}

// -----------------------------------------------------------------------------

func TestSubscribeToOrderFrameAndFiltering(t *testing.T) {
	ws := newWSServer(t)
	c := testChannel()
	connect(t, c, ws.url(), "", "")
	ws.waitConnected()

	events := make(chan *models.MEvent, 10)
	off, err := c.SubscribeToOrder("o-1", func(e *models.MEvent) { events <- e })
	require.NoError(t, err)
	defer off()

	frames := ws.waitFrames(1)
	require.Equal(t, map[string]any{
		"action":  "subscribe",
		"topic":   "order_updates",
		"orderId": "o-1",
	}, decodeFrame(t, frames[0]))

	// Only the matching order reaches the handler.
	ws.push(`{"type":"order_update","orderId":"o-2","status":"pending"}`)
	ws.push(`{"type":"order_update","orderId":"o-1","status":"shipped"}`)

	select {
	case e := <-events:
		require.Equal(t, "shipped", e.Fields["status"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for matching event")
	}
	time.Sleep(50 * time.Millisecond)
	require.Empty(t, events)
}

func TestSubscribeToOrderNumericID(t *testing.T) {
	ws := newWSServer(t)
	c := testChannel()
	connect(t, c, ws.url(), "", "")
	ws.waitConnected()

	events := make(chan *models.MEvent, 10)
	_, err := c.SubscribeToOrder("1042", func(e *models.MEvent) { events <- e })
	require.NoError(t, err)

	// Backends that send the ID as a JSON number still correlate.
	ws.push(`{"type":"order_update","orderId":1042}`)

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for numeric-ID event")
	}
}

func TestSubscribeToUserOrders(t *testing.T) {
	ws := newWSServer(t)
	c := testChannel()
	connect(t, c, ws.url(), "", "")
	ws.waitConnected()

	events := make(chan *models.MEvent, 10)
	_, err := c.SubscribeToUserOrders("u-7", func(e *models.MEvent) { events <- e })
	require.NoError(t, err)

	frames := ws.waitFrames(1)
	require.Equal(t, map[string]any{
		"action": "subscribe",
		"topic":  "order_updates",
		"userId": "u-7",
	}, decodeFrame(t, frames[0]))

	ws.push(`{"type":"order_update","userId":"someone-else"}`)
	ws.push(`{"type":"order_update","userId":"u-7","orderId":"o-9"}`)

	select {
	case e := <-events:
		require.Equal(t, "o-9", e.Fields["orderId"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for matching event")
	}
}

func TestSubscribeToProduct(t *testing.T) {
	ws := newWSServer(t)
	c := testChannel()
	connect(t, c, ws.url(), "", "")
	ws.waitConnected()

	events := make(chan *models.MEvent, 10)
	_, err := c.SubscribeToProduct("p-3", func(e *models.MEvent) { events <- e })
	require.NoError(t, err)

	frames := ws.waitFrames(1)
	require.Equal(t, map[string]any{
		"action":    "subscribe",
		"topic":     "product_inventory",
		"productId": "p-3",
	}, decodeFrame(t, frames[0]))

	ws.push(`{"type":"product_inventory_update","productId":"p-3","stock":12}`)

	select {
	case e := <-events:
		require.Equal(t, float64(12), e.Fields["stock"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for inventory event")
	}
}

func TestSubscribeToLowStockAlertsUnfiltered(t *testing.T) {
	ws := newWSServer(t)
	c := testChannel()
	connect(t, c, ws.url(), "", "")
	ws.waitConnected()

	events := make(chan *models.MEvent, 10)
	_, err := c.SubscribeToLowStockAlerts(func(e *models.MEvent) { events <- e })
	require.NoError(t, err)

	frames := ws.waitFrames(1)
	require.Equal(t, map[string]any{
		"action": "subscribe",
		"topic":  "low_stock_alerts",
	}, decodeFrame(t, frames[0]))

	ws.push(`{"type":"low_stock_alert","productId":"p-1"}`)
	ws.push(`{"type":"low_stock_alert","productId":"p-2"}`)

	for i := 0; i < 2; i++ {
		select {
		case <-events:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for alerts")
		}
	}
}

func TestUpdateOrderStatusFrame(t *testing.T) {
	ws := newWSServer(t)
	c := testChannel()
	connect(t, c, ws.url(), "", "")
	ws.waitConnected()

	require.NoError(t, c.UpdateOrderStatus("o-1", "shipped", "left the warehouse"))

	frames := ws.waitFrames(1)
	require.Equal(t, map[string]any{
		"action":  "update_order_status",
		"orderId": "o-1",
		"status":  "shipped",
		"notes":   "left the warehouse",
	}, decodeFrame(t, frames[0]))
}

func TestSubscribeWhileDisconnectedStillRegisters(t *testing.T) {
	c := testChannel()

	// The control frame is dropped (channel down) without an error; the
	// handler registration itself goes through.
	events := make(chan *models.MEvent, 1)
	off, err := c.SubscribeToOrder("o-1", func(e *models.MEvent) { events <- e })
	require.NoError(t, err)
	require.NotNil(t, off)

	ws := newWSServer(t)
	connect(t, c, ws.url(), "", "")
	ws.waitConnected()
	ws.push(`{"type":"order_update","orderId":"o-1"}`)

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event after reconnect")
	}
}
