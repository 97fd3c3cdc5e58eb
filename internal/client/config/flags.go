package config

import (
	"flag"
	"os"

	"github.com/pouchain/docstore/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the gateway (default from Config)
//	-i string   base URL of the identity provider
//	-k string   identity provider anon key
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the gateway")
	fs.StringVar(&cfg.IdentityBaseURL, "i", cfg.IdentityBaseURL, "base URL of the identity provider")
	fs.StringVar(&cfg.IdentityAnonKey, "k", cfg.IdentityAnonKey, "identity provider anon key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
