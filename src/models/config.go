package models

// -----------------------------------------------------------------------------

// MConfig is the root application configuration loaded from YAML.
type MConfig struct {
	Name     string `yaml:"name"`
	LogLevel string `yaml:"log_level"`

	// REST API port
	Port int `yaml:"port"`

	// gRPC health/control endpoint
	GRPCHost string `yaml:"grpc_host"`
	GRPCPort int    `yaml:"grpc_port"`

	Streams []*MStreamConfig `yaml:"streams"`
	NATS    MNATSConfig      `yaml:"nats"`
	Pricing MPricingConfig   `yaml:"pricing"`
}

// -----------------------------------------------------------------------------

// MStreamConfig describes one realtime stream: which profile drives it, where
// its websocket endpoint lives, and the credentials and extra topics to use.
type MStreamConfig struct {
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind"` // profile kind: "orders", "inventory", "notifications"
	Endpoint string   `yaml:"endpoint"`
	Token    string   `yaml:"token"`
	UserID   string   `yaml:"user_id"`
	Topics   []string `yaml:"topics"` // subscribed after connect, on top of the profile defaults
}

// -----------------------------------------------------------------------------

// MNATSConfig holds the relay bus connection settings.
type MNATSConfig struct {
	Servers       []string `yaml:"servers"`
	ClientID      string   `yaml:"client_id"`
	SubjectPrefix string   `yaml:"subject_prefix"`
	Format        string   `yaml:"format"` // payload encoding: "json" (default) or "gob"
	UseJetStream  bool     `yaml:"use_jetstream"`
}

// -----------------------------------------------------------------------------

// MPricingConfig tunes the price reconciliation engine. Zero values fall back
// to the defaults (one cent tolerance, five minute staleness window).
type MPricingConfig struct {
	Tolerance  string `yaml:"tolerance"`   // decimal string, e.g. "0.01"
	StaleAfter string `yaml:"stale_after"` // duration string, e.g. "5m"
}
