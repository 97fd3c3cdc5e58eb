package config

import (
	"encoding/json"
	"os"

	"github.com/pouchain/docstore/internal/flagx"
)

// JsonConfig is the DTO for the optional JSON configuration file.
type JsonConfig struct {
	ServerEndpointAddr string `json:"server_endpoint_addr"`
	IdentityBaseURL    string `json:"identity_base_url"`
	IdentityAnonKey    string `json:"identity_anon_key"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flags, if any. Invalid files panic; a missing flag is not
// an error.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.ServerEndpointAddr = c.ServerEndpointAddr
	config.IdentityBaseURL = c.IdentityBaseURL
	config.IdentityAnonKey = c.IdentityAnonKey
}
