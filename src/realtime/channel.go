package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"storefront-gateway/src/interfaces"
	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"
	"storefront-gateway/src/utils"

	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------

// defaultSubscribeTopics are auto-subscribed right after an authenticated
// connect (token and user ID both supplied), regardless of which event types
// the caller later listens for.
var defaultSubscribeTopics = []string{"notifications", "user_status", "order_updates", "cart_updates"}

// -----------------------------------------------------------------------------

// Channel implements interfaces.IChannel over a single Gorilla WebSocket
// connection. It owns the connect/disconnect lifecycle and fans inbound typed
// events out to registered handlers. The handler map and status listeners are
// serialized behind the channel mutex; dispatch runs on a single read-loop
// goroutine, so delivery order follows transport order.
type Channel struct {
	name   string
	logger *logger.Logger
	dialer websocket.Dialer

	mu         sync.Mutex
	conn       *websocket.Conn
	connecting bool
	status     models.MChannelStatus
	done       chan struct{}

	// Registrations are keyed by an arena index rather than by the handler
	// value itself; the same function can be registered any number of times
	// and each registration gets its own unsubscribe.
	nextID          uint64
	handlers        map[string]map[uint64]interfaces.EventHandler
	statusListeners map[uint64]interfaces.StatusHandler
}

// -----------------------------------------------------------------------------

// NewChannel creates a disconnected channel. One channel is constructed per
// logical stream and lives for the application session.
func NewChannel(name string, log *logger.Logger) *Channel {
	return &Channel{
		name:   name,
		logger: log,
		dialer: websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		status:          models.ChannelDisconnected,
		handlers:        make(map[string]map[uint64]interfaces.EventHandler),
		statusListeners: make(map[uint64]interfaces.StatusHandler),
	}
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Connect dials the endpoint and starts the read loop. A call while already
// connected or connecting is a no-op with a logged warning. When both token
// and userID are supplied the endpoint becomes "<url>/<userID>?token=<token>"
// and the default topics are auto-subscribed after the socket opens.
func (c *Channel) Connect(ctx context.Context, endpoint, token, userID string) error {
	c.mu.Lock()
	if c.conn != nil || c.connecting {
		c.mu.Unlock()
		c.logger.Warning("%s : connect ignored, channel already connected or connecting", c.name)
		return nil
	}
	c.connecting = true
	c.mu.Unlock()

	target := buildEndpoint(endpoint, token, userID)

	conn, _, err := c.dialer.DialContext(ctx, target, nil)
	if err != nil {
		c.mu.Lock()
		c.connecting = false
		c.mu.Unlock()
		c.logger.Error("%s : failed to connect to %s: %v", c.name, utils.MaskToken(target), err)
		c.transition(models.ChannelError)
		return fmt.Errorf("failed to connect to %s: %w", utils.MaskToken(target), err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connecting = false
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	c.logger.Info("%s : websocket connected to %s", c.name, utils.MaskToken(target))
	c.transition(models.ChannelConnected)

	if token != "" && userID != "" {
		if err := c.sendAutoSubscribe(); err != nil {
			c.logger.Error("%s : failed to send auto-subscribe frame: %v", c.name, err)
		}
	}

	go c.readLoop(conn, done)
	return nil
}

// -----------------------------------------------------------------------------

// Disconnect closes the socket if present, clears every registered event
// handler, nils the socket reference and emits one final DISCONNECTED status.
// Safe to call when already disconnected.
func (c *Channel) Disconnect() error {
	c.mu.Lock()

	if c.conn == nil && c.done == nil {
		c.mu.Unlock()
		return nil
	}

	if c.done != nil {
		close(c.done)
		c.done = nil
	}

	var closeErr error
	if c.conn != nil {
		closeErr = c.conn.Close()
		c.conn = nil
	}

	// Handlers do not survive a disconnect; status listeners do, so the UI
	// layer can keep observing across reconnects.
	c.handlers = make(map[string]map[uint64]interfaces.EventHandler)
	c.connecting = false
	c.mu.Unlock()

	c.logger.Info("%s : websocket disconnected", c.name)
	c.transition(models.ChannelDisconnected)

	if closeErr != nil {
		return fmt.Errorf("failed to close connection: %w", closeErr)
	}
	return nil
}

// -----------------------------------------------------------------------------

// IsRunning reports whether a live socket is held.
func (c *Channel) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// -----------------------------------------------------------------------------

// GetName returns the channel name.
func (c *Channel) GetName() string {
	return c.name
}

// -----------------------------------------------------------------------------

// Status returns the current channel status.
func (c *Channel) Status() models.MChannelStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// -----------------------------------------------------------------------------
// Messaging
// -----------------------------------------------------------------------------

// SendMessage sends a frame if the socket is open; otherwise the frame is
// dropped with a logged warning. There is no queueing and no retry.
func (c *Channel) SendMessage(data []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		c.logger.Warning("%s : message dropped, channel not connected", c.name)
		return nil
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.logger.Error("%s : failed to send message: %v", c.name, err)
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Registration
// -----------------------------------------------------------------------------

// On registers a handler under an event type and returns the idempotent
// unsubscribe for exactly this registration. Handlers registered for the
// literal type "message" receive every inbound event, unfiltered. Once a
// type's last handler is removed its entry is garbage-collected.
func (c *Channel) On(eventType string, handler interfaces.EventHandler) func() {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	set, ok := c.handlers[eventType]
	if !ok {
		set = make(map[uint64]interfaces.EventHandler)
		c.handlers[eventType] = set
	}
	set[id] = handler
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if set, ok := c.handlers[eventType]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(c.handlers, eventType)
			}
		}
	}
}

// -----------------------------------------------------------------------------

// OnStatusChange registers a status listener and returns its unsubscribe.
// Every registered listener observes every transition; this intentionally
// fans out the same way On does.
func (c *Channel) OnStatusChange(handler interfaces.StatusHandler) func() {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.statusListeners[id] = handler
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.statusListeners, id)
	}
}

// -----------------------------------------------------------------------------
// Private methods
// -----------------------------------------------------------------------------

// buildEndpoint composes the final dial target from the base endpoint and the
// optional credentials.
func buildEndpoint(endpoint, token, userID string) string {
	switch {
	case token != "" && userID != "":
		return endpoint + "/" + userID + "?token=" + url.QueryEscape(token)
	case token != "":
		return endpoint + "?token=" + url.QueryEscape(token)
	default:
		return endpoint
	}
}

// -----------------------------------------------------------------------------

// sendAutoSubscribe emits the single subscribe control frame carrying the
// default topic set.
func (c *Channel) sendAutoSubscribe() error {
	frame, err := json.Marshal(map[string]any{
		"type":   "subscribe",
		"events": defaultSubscribeTopics,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal subscribe frame: %w", err)
	}
	return c.SendMessage(frame)
}

// -----------------------------------------------------------------------------

// readLoop receives frames until the connection drops or Disconnect fires.
// A transport error surfaces as ERROR followed by DISCONNECTED, in that
// order; a clean close transitions straight to DISCONNECTED.
func (c *Channel) readLoop(conn *websocket.Conn, done chan struct{}) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			// Local Disconnect already tore down and emitted the final status.
			select {
			case <-done:
				return
			default:
			}

			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Error("%s : websocket error: %v", c.name, err)
				c.transition(models.ChannelError)
			} else {
				c.logger.Info("%s : websocket closed by peer", c.name)
			}

			c.mu.Lock()
			if c.conn == conn {
				_ = c.conn.Close()
				c.conn = nil
				if c.done != nil {
					close(c.done)
					c.done = nil
				}
			}
			c.mu.Unlock()

			c.transition(models.ChannelDisconnected)
			return
		}

		c.dispatch(raw)
	}
}

// -----------------------------------------------------------------------------

// dispatch decodes one inbound frame and fans it out to the handlers for its
// type plus every catch-all "message" handler. Parse failures are logged and
// dropped; they never reach listeners.
func (c *Channel) dispatch(raw []byte) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Error("%s : dropping malformed frame: %v", c.name, err)
		return
	}

	eventType, _ := payload["type"].(string)
	if eventType == "" {
		c.logger.Debug("%s : dropping frame without type field", c.name)
		return
	}

	event := &models.MEvent{
		Type:       eventType,
		Fields:     payload,
		Raw:        raw,
		ReceivedAt: time.Now(),
	}

	// Snapshot under lock; the dispatch loop itself runs unlocked so handlers
	// may re-register or unsubscribe freely.
	c.mu.Lock()
	snapshot := make([]interfaces.EventHandler, 0, len(c.handlers[eventType])+len(c.handlers["message"]))
	for _, h := range c.handlers[eventType] {
		snapshot = append(snapshot, h)
	}
	if eventType != "message" {
		for _, h := range c.handlers["message"] {
			snapshot = append(snapshot, h)
		}
	}
	c.mu.Unlock()

	for _, h := range snapshot {
		h(event)
	}
}

// -----------------------------------------------------------------------------

// transition records the new status and notifies every status listener.
func (c *Channel) transition(status models.MChannelStatus) {
	c.mu.Lock()
	c.status = status
	listeners := make([]interfaces.StatusHandler, 0, len(c.statusListeners))
	for _, l := range c.statusListeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(status)
	}
}
