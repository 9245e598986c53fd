package gateway

import (
	"fmt"
	"sync"

	"storefront-gateway/src/config"
	"storefront-gateway/src/factories"
	"storefront-gateway/src/interfaces"
	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"
	"storefront-gateway/src/publishers"
	"storefront-gateway/src/serializers"
)

// -----------------------------------------------------------------------------
// Core Application Struct
// -----------------------------------------------------------------------------

// Gateway owns the realtime streams and the relay publisher. Streams are
// explicitly constructed, dependency-injected instances with lifecycle tied to
// the gateway; there are no package-level singletons.
type Gateway struct {
	Name   string
	Config *config.Config
	Logger *logger.Logger
	// Publisher relays classified events and discrepancy reports to the bus
	Publisher interfaces.IPublisher
	// Factory dependency to create profile and channel pairs
	Factory *factories.StreamFactory
	// Managed stream instances, keyed by stream name
	Streams map[string]interfaces.IStream
	mu      sync.RWMutex
}

// -----------------------------------------------------------------------------

// NewGateway creates a Gateway wired to a NATS relay publisher built from the
// configuration.
func NewGateway(cfg *config.Config, log *logger.Logger) *Gateway {
	serializer := serializers.NewSerializer(cfg.NATS.Format)
	publisher := publishers.NewNATSPublisher(&cfg.NATS, log, serializer)
	return NewGatewayWithPublisher(cfg, log, publisher)
}

// -----------------------------------------------------------------------------

// NewGatewayWithPublisher creates a Gateway around an injected publisher.
// Tests use this to observe relayed traffic without a live bus.
func NewGatewayWithPublisher(cfg *config.Config, log *logger.Logger, publisher interfaces.IPublisher) *Gateway {
	gw := &Gateway{
		Name:      "StorefrontGateway",
		Config:    cfg,
		Logger:    log,
		Publisher: publisher,
		Streams:   make(map[string]interfaces.IStream),
	}

	// Every classified event from any stream lands on the publisher.
	gw.Factory = factories.NewStreamFactory(cfg, log, publisher.OnEvent)

	return gw
}

// -----------------------------------------------------------------------------
// Public Lifecycle Methods (All Streams)
// -----------------------------------------------------------------------------

// Start connects the publisher, creates all configured streams and starts
// them concurrently.
func (gw *Gateway) Start() error {
	gw.Logger.Info("%s : starting gateway", gw.Name)

	// 1. Connect the publisher first - fail fast if the bus is unavailable
	if err := gw.Publisher.Connect(); err != nil {
		return fmt.Errorf("failed to connect to publisher: %w", err)
	}
	gw.Logger.Info("%s : publisher connected successfully", gw.Name)

	// 2. Create all streams using the factory
	if err := gw.createAllStreams(); err != nil {
		return fmt.Errorf("failed to create streams: %w", err)
	}

	// 3. Start all streams concurrently
	gw.startAllStreams()

	gw.Logger.Info("%s : gateway started, managing %d streams", gw.Name, len(gw.Streams))
	return nil
}

// -----------------------------------------------------------------------------

// Stop gracefully shuts down every stream and the publisher.
func (gw *Gateway) Stop() error {
	gw.Logger.Info("%s : stopping streams", gw.Name)

	gw.mu.RLock()
	for _, stream := range gw.Streams {
		if err := stream.Stop(); err != nil {
			gw.Logger.Error("%s : failed to stop stream %s: %v", gw.Name, stream.GetName(), err)
		}
	}
	gw.mu.RUnlock()

	gw.Logger.Info("%s : disconnecting publisher", gw.Name)
	if err := gw.Publisher.Disconnect(); err != nil {
		gw.Logger.Error("%s : failed to disconnect publisher: %v", gw.Name, err)
	}

	gw.Logger.Info("%s : gateway stopped", gw.Name)
	return nil
}

// -----------------------------------------------------------------------------
// Dynamic Stream Management Methods
// -----------------------------------------------------------------------------

// StartStream starts a single, named stream synchronously.
func (gw *Gateway) StartStream(streamName string) error {
	gw.mu.RLock()
	stream, ok := gw.Streams[streamName]
	gw.mu.RUnlock()

	if !ok {
		return fmt.Errorf("stream '%s' not found", streamName)
	}

	gw.Logger.Info("%s : starting stream %s", gw.Name, streamName)
	if err := stream.Start(); err != nil {
		gw.Logger.Error("%s : stream %s startup error: %v", gw.Name, streamName, err)
		return err
	}

	return nil
}

// -----------------------------------------------------------------------------

// StopStream stops a single, named stream.
func (gw *Gateway) StopStream(streamName string) error {
	gw.mu.RLock()
	stream, ok := gw.Streams[streamName]
	gw.mu.RUnlock()

	if !ok {
		return fmt.Errorf("stream '%s' not found", streamName)
	}

	gw.Logger.Info("%s : stopping stream %s", gw.Name, streamName)
	return stream.Stop()
}

// -----------------------------------------------------------------------------

// AddStream creates a new stream instance from its configuration entry and
// stores it, ready to be started.
func (gw *Gateway) AddStream(streamName string) error {
	gw.mu.RLock()
	_, exists := gw.Streams[streamName]
	gw.mu.RUnlock()

	if exists {
		return fmt.Errorf("stream '%s' is already registered", streamName)
	}

	stream, err := gw.Factory.CreateStream(streamName)
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", streamName, err)
	}

	gw.mu.Lock()
	gw.Streams[streamName] = stream
	gw.mu.Unlock()

	gw.Logger.Info("%s : stream '%s' added, ready to be started", gw.Name, streamName)
	return nil
}

// -----------------------------------------------------------------------------

// RemoveStream stops a stream if running and removes it from the map.
func (gw *Gateway) RemoveStream(streamName string) error {
	gw.mu.RLock()
	stream, exists := gw.Streams[streamName]
	gw.mu.RUnlock()

	if !exists {
		return fmt.Errorf("stream '%s' not found for removal", streamName)
	}

	if stream.GetStatus().Running {
		if err := stream.Stop(); err != nil {
			gw.Logger.Error("%s : failed to stop stream %s before removal: %v", gw.Name, streamName, err)
		}
	}

	gw.mu.Lock()
	delete(gw.Streams, streamName)
	gw.mu.Unlock()

	gw.Logger.Info("%s : stream '%s' removed", gw.Name, streamName)
	return nil
}

// -----------------------------------------------------------------------------

// ListStreams returns the names of all managed streams.
func (gw *Gateway) ListStreams() []string {
	gw.mu.RLock()
	defer gw.mu.RUnlock()

	names := make([]string, 0, len(gw.Streams))
	for name := range gw.Streams {
		names = append(names, name)
	}
	return names
}

// -----------------------------------------------------------------------------
// Subscription Management Methods
// -----------------------------------------------------------------------------

// SubscribeStream sends a subscription for the given topics on one stream.
func (gw *Gateway) SubscribeStream(streamName string, topics []string) error {
	gw.mu.RLock()
	stream, ok := gw.Streams[streamName]
	gw.mu.RUnlock()

	if !ok {
		return fmt.Errorf("stream '%s' not found", streamName)
	}

	gw.Logger.Info("%s : subscribing stream %s to topics %v", gw.Name, streamName, topics)
	return stream.Subscribe(topics)
}

// -----------------------------------------------------------------------------

// UnSubscribeStream sends an unsubscription for the given topics on one stream.
func (gw *Gateway) UnSubscribeStream(streamName string, topics []string) error {
	gw.mu.RLock()
	stream, ok := gw.Streams[streamName]
	gw.mu.RUnlock()

	if !ok {
		return fmt.Errorf("stream '%s' not found", streamName)
	}

	gw.Logger.Info("%s : unsubscribing stream %s from topics %v", gw.Name, streamName, topics)
	return stream.UnSubscribe(topics)
}

// -----------------------------------------------------------------------------
// Status Methods
// -----------------------------------------------------------------------------

// GetStreamStatus returns the current status of a single stream.
func (gw *Gateway) GetStreamStatus(streamName string) (*models.MStreamStatus, error) {
	gw.mu.RLock()
	stream, ok := gw.Streams[streamName]
	gw.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("stream '%s' not found", streamName)
	}

	return stream.GetStatus(), nil
}

// -----------------------------------------------------------------------------
// Private/Helper Methods
// -----------------------------------------------------------------------------

// createAllStreams initializes every stream named in the configuration.
// A stream that fails to build is skipped with a logged error.
func (gw *Gateway) createAllStreams() error {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	gw.Streams = make(map[string]interfaces.IStream)

	for _, streamConfig := range gw.Config.Streams {
		stream, err := gw.Factory.CreateStream(streamConfig.Name)
		if err != nil {
			gw.Logger.Error("%s : skipping stream %s: %v", gw.Name, streamConfig.Name, err)
			continue
		}
		gw.Streams[streamConfig.Name] = stream
	}

	if len(gw.Streams) == 0 {
		return fmt.Errorf("no valid streams were initialized from configuration")
	}

	return nil
}

// -----------------------------------------------------------------------------

// startAllStreams starts every registered stream concurrently.
func (gw *Gateway) startAllStreams() {
	gw.mu.RLock()
	defer gw.mu.RUnlock()

	var wg sync.WaitGroup
	for name, stream := range gw.Streams {
		wg.Add(1)
		go func(n string, s interfaces.IStream) {
			defer wg.Done()
			if err := s.Start(); err != nil {
				gw.Logger.Error("%s : stream %s startup error: %v", gw.Name, n, err)
			}
		}(name, stream)
	}
	wg.Wait()
}
