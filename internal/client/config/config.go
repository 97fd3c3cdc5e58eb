package config

// Config holds runtime settings for the docstore CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the gateway (e.g., "http://127.0.0.1:8080").
//   - IdentityBaseURL: base URL of the identity provider's auth API.
//   - IdentityAnonKey: public API key the provider expects on token requests.
type Config struct {
	ServerEndpointAddr string
	IdentityBaseURL    string
	IdentityAnonKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.IdentityBaseURL = "http://127.0.0.1:9999"
	c.IdentityAnonKey = "anonKey"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
