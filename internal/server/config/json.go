package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pouchain/docstore/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// The listing cache TTL is given in whole seconds.
//
// This struct is an intermediate DTO (Data Transfer Object) used only for
// reading JSON configuration files. After unmarshalling, its fields are
// copied into the runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr         string `json:"endpoint_addr"`
	DatabaseDSN          string `json:"database_dsn"`
	SecretKey            string `json:"secret_key"`
	ListingCacheTTLSec   int    `json:"listing_cache_ttl_sec"`
	S3RootUser           string `json:"s3_root_user"`
	S3RootPassword       string `json:"s3_root_password"`
	S3Bucket             string `json:"s3_bucket"`
	S3Region             string `json:"s3_region"`
	S3BaseEndpoint       string `json:"s3_base_endpoint"`
	IdentityBaseURL      string `json:"identity_base_url"`
	IdentityServiceKey   string `json:"identity_service_key"`
	IdentityRedirectURL  string `json:"identity_redirect_url"`
	VisibilityFailClosed bool   `json:"visibility_fail_closed"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is:
//
//	The -c or -config command-line flags.
//	If it is not set, no JSON file is loaded.
//
// If the file path is found, parseJson attempts to read and unmarshal it
// into a JsonConfig. The resulting values are copied into the target Config.
// If the file cannot be read or contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and command-line
// flags as part of the full configuration process.
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

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.ListingCacheTTL = time.Duration(c.ListingCacheTTLSec) * time.Second
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.IdentityBaseURL = c.IdentityBaseURL
	config.IdentityServiceKey = c.IdentityServiceKey
	config.IdentityRedirectURL = c.IdentityRedirectURL
	config.VisibilityFailClosed = c.VisibilityFailClosed
}
