// Package cpu implements the vanity search with a pool of goroutines.
package cpu

import (
	"context"
	"crypto/rand"
	"io"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Amr-9/hexkey/pkg/address"
	"github.com/Amr-9/hexkey/pkg/cryptoerr"
	"github.com/Amr-9/hexkey/pkg/generator"
	"github.com/Amr-9/hexkey/pkg/keys"
)

// CPUGenerator implements the Generator interface using CPU-based goroutines.
// It runs one search at a time.
type CPUGenerator struct {
	attempts uint64       // Atomic counter for total attempts
	start    atomic.Int64 // Unix nanos when the current search started
	elapsed  atomic.Int64 // Duration of the last finished search
	running  atomic.Bool

	entropy io.Reader
}

var _ generator.Generator = (*CPUGenerator)(nil)

// NewCPUGenerator creates a generator drawing keys from crypto/rand.
func NewCPUGenerator() *CPUGenerator {
	return &CPUGenerator{entropy: rand.Reader}
}

// Search runs a search with a fresh CPUGenerator.
func Search(ctx context.Context, cfg *generator.Config) (*generator.Result, error) {
	return NewCPUGenerator().Search(ctx, cfg)
}

// Name returns the implementation name.
func (g *CPUGenerator) Name() string {
	return "CPU"
}

// Stats returns the current performance statistics.
func (g *CPUGenerator) Stats() generator.Stats {
	start := g.start.Load()
	if start == 0 {
		return generator.Stats{}
	}

	elapsed := time.Duration(g.elapsed.Load())
	if g.running.Load() {
		elapsed = time.Since(time.Unix(0, start))
	}
	return generator.NewStats(atomic.LoadUint64(&g.attempts), elapsed)
}

// Search spawns cfg.Workers goroutines that generate keys until the match
// with ordinal cfg.Nth has been claimed. Without a deadline or cancellation
// on ctx an unsatisfiable pattern runs forever.
func (g *CPUGenerator) Search(ctx context.Context, cfg *generator.Config) (*generator.Result, error) {
	if cfg == nil {
		return nil, errors.Wrap(cryptoerr.ErrInvalidParameter, "nil search config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !g.running.CompareAndSwap(false, true) {
		return nil, errors.Wrap(cryptoerr.ErrInvalidParameter, "search already running")
	}

	atomic.StoreUint64(&g.attempts, 0)
	started := time.Now()
	g.start.Store(started.UnixNano())

	s := &search{
		gen:     g,
		matcher: generator.NewMatcher(cfg.Pattern),
		params:  cfg.Params,
		nth:     uint64(cfg.Nth),
	}

	group, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Workers; i++ {
		group.Go(func() error {
			return s.work(gctx)
		})
	}
	err := group.Wait()

	elapsed := time.Since(started)
	g.elapsed.Store(int64(elapsed))
	g.running.Store(false)

	if err != nil {
		if s.found != nil {
			s.found.PrivateKey.Zero()
		}
		return nil, err
	}
	if s.found == nil {
		cause := ctx.Err()
		if cause == nil {
			cause = context.Canceled
		}
		return nil, errors.Wrap(cryptoerr.ErrSearchCancelled, cause.Error())
	}

	scalar := s.found.PrivateKey.Serialize()
	defer clear(scalar)

	return &generator.Result{
		PrivateKey: s.found.PrivateKey,
		Address:    s.found.Address,
		WIF:        address.WIF(scalar, cfg.Params),
		Stats:      generator.NewStats(atomic.LoadUint64(&g.attempts), elapsed),
	}, nil
}

// search is the state shared by the workers of one Search call.
type search struct {
	gen     *CPUGenerator
	matcher *generator.Matcher
	params  *chaincfg.Params
	nth     uint64

	matches atomic.Uint64 // Count of claimed ordinals
	stop    atomic.Bool

	// Written only by the worker that claims ordinal nth, read after Wait.
	found *generator.Candidate
}

// work generates at least one key before it looks at the stop conditions.
func (s *search) work(ctx context.Context) error {
	for {
		if err := s.attempt(); err != nil {
			s.stop.Store(true)
			return err
		}
		if s.stop.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (s *search) attempt() error {
	priv, err := keys.Generate(s.gen.entropy)
	if err != nil {
		return errors.Wrapf(cryptoerr.ErrSearch, "generate key: %v", err)
	}
	atomic.AddUint64(&s.gen.attempts, 1)

	addr := address.P2PKH(priv.PubKey().SerializeCompressed(), s.params)
	if !s.matcher.MatchesAfterPrefix(addr) || s.stop.Load() {
		priv.Zero()
		return nil
	}

	ordinal := s.matches.Add(1)
	if ordinal != s.nth {
		priv.Zero()
		return nil
	}

	s.found = &generator.Candidate{PrivateKey: priv, Address: addr, Ordinal: ordinal}
	s.stop.Store(true)
	return nil
}
