package config

import (
	"flag"
	"os"
	"time"

	"github.com/pouchain/docstore/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      listing cache TTL, seconds
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-i string   identity provider base URL
//	-k string   identity provider service key
//	-w string   redirect URL for invite and recovery mails
//	-f bool     fail closed when the visibility rule store is unavailable
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The TTL flag is accepted as an integer in seconds and then converted
//     to a time.Duration value.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-u", "-p", "-b", "-g", "-e", "-i", "-k", "-w", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	listingCacheTTL := fs.Int("t", int(config.ListingCacheTTL.Seconds()), "listing_cache_ttl (in seconds)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.IdentityBaseURL, "i", config.IdentityBaseURL, "identity provider base URL")
	fs.StringVar(&config.IdentityServiceKey, "k", config.IdentityServiceKey, "identity provider service key")
	fs.StringVar(&config.IdentityRedirectURL, "w", config.IdentityRedirectURL, "redirect URL for invite and recovery mails")
	fs.BoolVar(&config.VisibilityFailClosed, "f", config.VisibilityFailClosed, "fail closed when rule store is unavailable")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ListingCacheTTL = time.Duration(*listingCacheTTL) * time.Second
}
