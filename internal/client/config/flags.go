package config

import (
	"flag"
	"os"
	"time"

	"github.com/nkorotkov/privateme/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend server
//	-d string   path to the local note store
//	-k string   path to the device key file
//	-i int      online check interval in seconds
//
// Args are filtered through flagx.FilterArgs so flags owned by other
// components are left alone.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend server")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local note store")
	fs.StringVar(&cfg.KeyPath, "k", cfg.KeyPath, "path to the device key file")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
