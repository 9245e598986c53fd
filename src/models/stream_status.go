package models

// -----------------------------------------------------------------------------

// MStreamStatus represents the runtime status and technical metadata of one
// realtime stream. It aggregates information from the stream profile and the
// underlying channel.

type MStreamStatus struct {
	StreamName string         // The name of the stream
	Running    bool           // From IChannel.IsRunning()
	Kind       string         // e.g., "orders", "inventory" (from IStreamProfile.GetKind())
	Status     MChannelStatus // Current channel status
	Endpoint   string         // Endpoint with the token query parameter masked
	Topics     []string       // Topics subscribed on top of the profile defaults
}
