package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/onepass/internal/flagx"
)

// serverFlags lists the short flags parseFlags understands.
var serverFlags = []string{"-a", "-l", "-d", "-t", "-i", "-r", "-w", "-v", "-u", "-p", "-b", "-g", "-e"}

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-l string   HTTP bind address, empty to disable
//	-d string   database DSN
//	-t int      session lifetime, minutes
//	-i int      PBKDF2 iterations
//	-r int      login attempts per minute per client
//	-w string   common passwords list file
//	-v string   log level (debug, info, warn, error)
//	-u string   S3 access key id
//	-p string   S3 secret access key
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// args are first filtered to the flags above with flagx.FilterArgs, so
// flags of other components pass through untouched.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("onepass-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.GRPCAddress, "a", config.GRPCAddress, "address and port to run gRPC server")
	fs.StringVar(&config.HTTPAddress, "l", config.HTTPAddress, "address and port to run HTTP API")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session_ttl (in minutes)")

	fs.IntVar(&config.KDFIterations, "i", config.KDFIterations, "PBKDF2 iterations")
	fs.IntVar(&config.LoginRatePerMinute, "r", config.LoginRatePerMinute, "login attempts per minute per client")
	fs.StringVar(&config.CommonPasswordsFile, "w", config.CommonPasswordsFile, "common passwords list")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	fs.StringVar(&config.S3AccessKeyID, "u", config.S3AccessKeyID, "S3 access key id")
	fs.StringVar(&config.S3SecretAccessKey, "p", config.S3SecretAccessKey, "S3 secret access key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		}
	})
	return nil
}
