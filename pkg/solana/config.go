package solana

import (
	"errors"
	"fmt"
	"time"

	"github.com/blocto/solana-go-sdk/rpc"
)

const (
	defaultPollInterval   = 2 * time.Second
	defaultConfirmTimeout = 90 * time.Second
	defaultExplorerURL    = "https://explorer.solana.com"
)

// Config contains the settings the gateway needs besides its RPC client and payer.
type Config struct {
	// Commitment is the level a transaction must reach before it is
	// considered confirmed: processed, confirmed or finalized.
	Commitment     string
	PollInterval   time.Duration
	ConfirmTimeout time.Duration

	// ExplorerURL and Cluster are used to build human-facing transaction links.
	ExplorerURL string
	Cluster     string
}

func (c *Config) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if _, ok := commitmentRank[rpc.Commitment(c.Commitment)]; !ok {
		return fmt.Errorf("unsupported commitment %q", c.Commitment)
	}
	if c.PollInterval < 0 || c.ConfirmTimeout < 0 {
		return errors.New("poll_interval and confirm_timeout must not be negative")
	}
	return nil
}

func (c *Config) pollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return defaultPollInterval
	}
	return c.PollInterval
}

func (c *Config) confirmTimeout() time.Duration {
	if c.ConfirmTimeout <= 0 {
		return defaultConfirmTimeout
	}
	return c.ConfirmTimeout
}

var commitmentRank = map[rpc.Commitment]int{
	rpc.CommitmentProcessed: 1,
	rpc.CommitmentConfirmed: 2,
	rpc.CommitmentFinalized: 3,
}
