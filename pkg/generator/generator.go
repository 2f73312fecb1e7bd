// Package generator defines the vanity address search contract: its
// configuration, result and the interface search backends implement.
package generator

import (
	"context"
	"math"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"

	"github.com/Amr-9/hexkey/pkg/address"
	"github.com/Amr-9/hexkey/pkg/cryptoerr"
	"github.com/Amr-9/hexkey/pkg/keys"
)

const (
	// MaxWorkers bounds Config.Workers.
	MaxWorkers = 256
	// MaxPatternLength is the longest pattern a P2PKH address can carry after
	// its leading version character.
	MaxPatternLength = 33
)

// Config holds the configuration for a vanity search.
type Config struct {
	Pattern string           // Required leading characters after the version character
	Nth     int              // Which qualifying match to return, 1-based
	Workers int              // Number of concurrent workers
	Params  *chaincfg.Params // Address network, nil for mainnet
}

// Validate checks the configuration before any work is started.
func (c *Config) Validate() error {
	if c.Nth < 1 {
		return errors.Wrapf(cryptoerr.ErrInvalidParameter, "nth must be at least 1, got %d", c.Nth)
	}
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return errors.Wrapf(cryptoerr.ErrInvalidParameter, "workers must be between 1 and %d, got %d", MaxWorkers, c.Workers)
	}
	if len(c.Pattern) > MaxPatternLength {
		return errors.Wrapf(cryptoerr.ErrInvalidParameter, "pattern longer than %d characters", MaxPatternLength)
	}
	if invalid := address.InvalidBase58Chars(c.Pattern); len(invalid) > 0 {
		return errors.Wrapf(cryptoerr.ErrInvalidParameter, "pattern contains non-Base58 characters %q", string(invalid))
	}
	return nil
}

// Candidate is a match produced by a worker. Ordinal is its position in the
// global claim order; only the candidate with ordinal Nth is kept.
type Candidate struct {
	PrivateKey *keys.PrivateKey
	Address    string
	Ordinal    uint64
}

// Result is the key whose match claimed ordinal Nth.
type Result struct {
	PrivateKey *keys.PrivateKey
	Address    string // P2PKH of the compressed public key
	WIF        string
	Stats      Stats
}

// Stats holds performance statistics of a search.
type Stats struct {
	Attempts uint64        // Total number of keys generated
	HashRate float64       // Keys per second
	Elapsed  time.Duration // Time since the search started
}

// NewStats derives the hash rate from attempts and elapsed time.
func NewStats(attempts uint64, elapsed time.Duration) Stats {
	var rate float64
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(attempts) / secs
	}
	return Stats{Attempts: attempts, HashRate: rate, Elapsed: elapsed}
}

// Generator defines the contract for search backends.
type Generator interface {
	// Search blocks until the Nth match is found, a worker fails or ctx is
	// cancelled. It returns only after every worker has exited.
	Search(ctx context.Context, cfg *Config) (*Result, error)

	// Stats returns the statistics of the running or last search.
	// This method is safe to call concurrently from any goroutine.
	Stats() Stats

	// Name returns the implementation name.
	Name() string
}

// EstimateDifficulty returns the expected number of attempts to find nth
// matches of pattern, saturating at math.MaxUint64.
func EstimateDifficulty(pattern string, nth int) uint64 {
	difficulty := uint64(1)
	for range pattern {
		if difficulty > math.MaxUint64/58 {
			return math.MaxUint64
		}
		difficulty *= 58
	}
	if nth > 1 {
		if difficulty > math.MaxUint64/uint64(nth) {
			return math.MaxUint64
		}
		difficulty *= uint64(nth)
	}
	return difficulty
}
