package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Amr-9/hexkey/pkg/generator"
	"github.com/Amr-9/hexkey/pkg/toolkit"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{195112, "195,112"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "2m 5s", FormatDuration(2*time.Minute+5*time.Second))
	assert.Equal(t, "3h 20m", FormatDuration(3*time.Hour+20*time.Minute))
}

func TestFormatHashRate(t *testing.T) {
	assert.Equal(t, "512/s", FormatHashRate(512))
	assert.Equal(t, "1.5K/s", FormatHashRate(1500))
	assert.Equal(t, "2.3M/s", FormatHashRate(2_300_000))
}

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	c.PrintRecord("prvkey", map[string]string{
		"hex":     "94199c35",
		"BTC wif": "L2Bbdwmc",
	})

	out := buf.String()
	assert.NotContains(t, out, "\033[")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "prvkey", strings.TrimSpace(lines[0]))
	assert.Equal(t, "BTC wif  L2Bbdwmc", strings.TrimSpace(lines[1]))
	assert.Equal(t, "hex      94199c35", strings.TrimSpace(lines[2]))
}

func TestColorToggle(t *testing.T) {
	var plain, colored bytes.Buffer
	NewConsole(&plain, false).PrintVerify(true)
	NewConsole(&colored, true).PrintVerify(false)

	assert.Contains(t, plain.String(), "signature valid")
	assert.NotContains(t, plain.String(), ColorGreen)
	assert.Contains(t, colored.String(), ColorRed)
	assert.Contains(t, colored.String(), "signature invalid")
}

func TestSearchOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	cfg := &generator.Config{Pattern: "AB", Nth: 4, Workers: 8}
	c.PrintSearchInfo(cfg, "1", generator.EstimateDifficulty(cfg.Pattern, cfg.Nth))
	assert.Contains(t, buf.String(), "1AB...")
	assert.Contains(t, buf.String(), "#4")
	assert.Contains(t, buf.String(), "1/13,456")

	buf.Reset()
	c.PrintProgress(generator.NewStats(2000, time.Second), 13456, 1)
	assert.Contains(t, buf.String(), "2.0K/s")
	assert.Contains(t, buf.String(), "2,000")

	buf.Reset()
	c.PrintSuccess(&toolkit.VanityRecord{Hex: "ab", P2PKH: "1ABxyz", WIF: "Kxyz", Tries: 1234, Elapsed: 2 * time.Second}, "wallet.txt")
	assert.Contains(t, buf.String(), "1ABxyz")
	assert.Contains(t, buf.String(), "1,234")
	assert.Contains(t, buf.String(), "wallet.txt")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", 10), progressBar(0, 100, 10))
	assert.Equal(t, strings.Repeat("▓", 10), progressBar(1<<20, 1, 10))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, false).PrintBanner("1.2.3")
	assert.Contains(t, buf.String(), "hexkey")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.NotContains(t, buf.String(), "\033[")
}
