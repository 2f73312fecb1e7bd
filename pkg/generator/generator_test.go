package generator

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/hexkey/pkg/cryptoerr"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty pattern", Config{Pattern: "", Nth: 1, Workers: 1}, false},
		{"short pattern", Config{Pattern: "AB", Nth: 4, Workers: 8}, false},
		{"max workers", Config{Pattern: "A", Nth: 1, Workers: MaxWorkers}, false},
		{"max pattern length", Config{Pattern: strings.Repeat("z", MaxPatternLength), Nth: 1, Workers: 1}, false},
		{"nth zero", Config{Pattern: "A", Nth: 0, Workers: 1}, true},
		{"nth negative", Config{Pattern: "A", Nth: -3, Workers: 1}, true},
		{"workers zero", Config{Pattern: "A", Nth: 1, Workers: 0}, true},
		{"too many workers", Config{Pattern: "A", Nth: 1, Workers: MaxWorkers + 1}, true},
		{"workers 1000", Config{Pattern: "A", Nth: 1, Workers: 1000}, true},
		{"invalid characters", Config{Pattern: "Invalid.", Nth: 1, Workers: 1}, true},
		{"zero is not base58", Config{Pattern: "0", Nth: 1, Workers: 1}, true},
		{"pattern too long", Config{Pattern: strings.Repeat("z", MaxPatternLength+1), Nth: 1, Workers: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, cryptoerr.ErrInvalidParameter))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMatcher(t *testing.T) {
	m := NewMatcher("AB")
	assert.True(t, m.MatchesAfterPrefix("1ABcdef"))
	assert.False(t, m.MatchesAfterPrefix("ABcdef"))
	assert.False(t, m.MatchesAfterPrefix("1abcdef"), "base58 matching is case-sensitive")
	assert.False(t, m.MatchesAfterPrefix(""))
	assert.False(t, m.MatchesAfterPrefix("1A"))

	empty := NewMatcher("")
	assert.True(t, empty.MatchesAfterPrefix("1anything"))
	assert.True(t, empty.MatchesAfterPrefix("1"))
}

func TestNewStats(t *testing.T) {
	s := NewStats(500, 2*time.Second)
	assert.Equal(t, uint64(500), s.Attempts)
	assert.InDelta(t, 250.0, s.HashRate, 1e-9)

	assert.Zero(t, NewStats(10, 0).HashRate)
}

func TestEstimateDifficulty(t *testing.T) {
	assert.Equal(t, uint64(1), EstimateDifficulty("", 1))
	assert.Equal(t, uint64(58), EstimateDifficulty("A", 1))
	assert.Equal(t, uint64(58*58*4), EstimateDifficulty("AB", 4))
	assert.Equal(t, uint64(math.MaxUint64), EstimateDifficulty(strings.Repeat("z", 33), 1))
}
