package factories

import (
	"fmt"

	"storefront-gateway/src/config"
	"storefront-gateway/src/interfaces"
	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"
	"storefront-gateway/src/realtime"
	"storefront-gateway/src/streams"
)

// -----------------------------------------------------------------------------

// StreamFactory creates stream instances based on configuration
type StreamFactory struct {
	Name   string
	Config *config.Config
	Logger *logger.Logger
	// The final callback function for distributing relayed events
	OnEventCallback func(stream string, subject string, event *models.MEvent)
}

// -----------------------------------------------------------------------------

// NewStreamFactory creates a new StreamFactory instance
func NewStreamFactory(cfg *config.Config, log *logger.Logger, onEvent func(string, string, *models.MEvent)) *StreamFactory {
	return &StreamFactory{
		Name:            "StreamFactory",
		Config:          cfg,
		Logger:          log,
		OnEventCallback: onEvent,
	}
}

// -----------------------------------------------------------------------------

// CreateProfile creates a stream profile by name using the dynamic registry.
func (sf *StreamFactory) CreateProfile(streamName string) (interfaces.IStreamProfile, error) {
	streamConfig := sf.Config.GetStreamByName(streamName)
	if streamConfig == nil {
		return nil, fmt.Errorf("stream %s not found in config", streamName)
	}

	// Dynamically fetch the constructor from the streams package registry
	constructor, err := streams.GetConstructor(streamConfig.Kind)
	if err != nil {
		return nil, err // Returns "unknown stream profile kind: ..." error
	}

	profile, err := constructor(streamConfig, sf.Logger, streamName)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile %s: %w", streamName, err)
	}

	sf.Logger.Info("%s : successfully created profile %s of kind %s",
		sf.Name,
		profile.GetName(),
		profile.GetKind(),
	)

	return profile, nil
}

// -----------------------------------------------------------------------------

// CreateStream creates a fully wired stream: profile, channel and relay
// callback. The channel starts disconnected; Stream.Start dials it.
func (sf *StreamFactory) CreateStream(streamName string) (interfaces.IStream, error) {
	streamConfig := sf.Config.GetStreamByName(streamName)
	if streamConfig == nil {
		return nil, fmt.Errorf("stream %s not found in config", streamName)
	}

	profile, err := sf.CreateProfile(streamName)
	if err != nil {
		return nil, err
	}

	channel := realtime.NewChannel(streamName, sf.Logger)

	return &streams.Stream{
		Name:    streamName,
		Logger:  sf.Logger,
		Profile: profile,
		Channel: channel,
		Topics:  streamConfig.Topics,
		OnEvent: sf.OnEventCallback,
	}, nil
}
