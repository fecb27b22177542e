package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Fetch holds fetch command configuration
type Fetch struct {
	DestDir string
	Retry   int64
	Timeout time.Duration
}

// Flags returns CLI flags for fetch configuration
func (c *Fetch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dest",
			Usage:       "Destination directory (must already exist)",
			Value:       "data",
			Destination: &c.DestDir,
			Sources:     cli.EnvVars("HOARD_DEST"),
		},
		&cli.Int64Flag{
			Name:        "retry",
			Usage:       "Additional download attempts after a failure",
			Value:       3,
			Destination: &c.Retry,
			Sources:     cli.EnvVars("HOARD_RETRY"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Overall timeout per download request",
			Value:       10 * time.Minute,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("HOARD_TIMEOUT"),
		},
	}
}
