// Package ui renders hexkey records and vanity search progress on a terminal.
package ui

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Amr-9/hexkey/pkg/generator"
	"github.com/Amr-9/hexkey/pkg/toolkit"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

// Console writes colored output to w. With color disabled every escape
// code is dropped.
type Console struct {
	w     io.Writer
	color bool
}

// NewConsole creates a console writing to w.
func NewConsole(w io.Writer, color bool) *Console {
	return &Console{w: w, color: color}
}

// c returns code, or nothing when colors are off.
func (c *Console) c(code string) string {
	if !c.color {
		return ""
	}
	return code
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.w, format, args...)
}

// PrintBanner shows the program name and version.
func (c *Console) PrintBanner(version string) {
	c.printf("\n  %s%shexkey%s %s• secp256k1 key toolkit v%s%s\n\n",
		c.c(ColorCyan), c.c(ColorBold), c.c(ColorReset), c.c(ColorDim), version, c.c(ColorReset))
}

// PrintRecord prints a flattened record as aligned key/value lines, sorted
// by key.
func (c *Console) PrintRecord(title string, record map[string]string) {
	keys := make([]string, 0, len(record))
	width := 0
	for k := range record {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	sort.Strings(keys)

	if title != "" {
		c.printf("\n    %s%s%s\n", c.c(ColorCyan+ColorBold), title, c.c(ColorReset))
	}
	for _, k := range keys {
		c.printf("    %s%-*s%s  %s\n", c.c(ColorDim), width, k, c.c(ColorReset), record[k])
	}
}

// PrintVerify prints the outcome of a signature check.
func (c *Console) PrintVerify(ok bool) {
	if ok {
		c.printf("    %s✓ signature valid%s\n", c.c(ColorGreen+ColorBold), c.c(ColorReset))
		return
	}
	c.printf("    %s✗ signature invalid%s\n", c.c(ColorRed+ColorBold), c.c(ColorReset))
}

// PrintSearchInfo displays search configuration
func (c *Console) PrintSearchInfo(cfg *generator.Config, prefix string, difficulty uint64) {
	c.printf("\n    %s🚀 SEARCHING%s", c.c(ColorGreen+ColorBold), c.c(ColorReset))
	c.printf(" %s%s%s%s%s...%s", c.c(ColorBold), c.c(ColorCyan), prefix, cfg.Pattern, c.c(ColorDim), c.c(ColorReset))
	if cfg.Nth > 1 {
		c.printf(" %s#%d%s", c.c(ColorYellow), cfg.Nth, c.c(ColorReset))
	}
	c.printf(" %s(1/%s, %d workers)%s\n\n", c.c(ColorDim), FormatNumber(difficulty), cfg.Workers, c.c(ColorReset))
}

// PrintProgress shows animated progress bar
func (c *Console) PrintProgress(stats generator.Stats, difficulty uint64, frame int) {
	spinners := []string{"◐", "◓", "◑", "◒"}
	spinner := spinners[frame%len(spinners)]

	bar := progressBar(stats.Attempts, difficulty, 40)

	c.printf("\r    %s%s%s %s%s%s %s%s%s │ %s%s%s │ %s",
		c.c(ColorCyan), spinner, c.c(ColorReset),
		c.c(ColorDim), bar, c.c(ColorReset),
		c.c(ColorGreen+ColorBold), FormatHashRate(stats.HashRate), c.c(ColorReset),
		c.c(ColorYellow), FormatNumber(stats.Attempts), c.c(ColorReset),
		FormatDuration(stats.Elapsed))
}

// progressBar fills with the probability of having found a match after
// attempts tries at the given expected difficulty.
func progressBar(attempts, difficulty uint64, width int) string {
	diff := float64(difficulty)
	if diff == 0 {
		diff = 1
	}
	progress := 1.0 - math.Pow(0.5, 2.0*float64(attempts)/diff)

	filled := min(int(progress*float64(width)), width)
	return strings.Repeat("▓", filled) + strings.Repeat("░", width-filled)
}

// PrintSuccess shows the found address
func (c *Console) PrintSuccess(rec *toolkit.VanityRecord, outputFile string) {
	c.printf("\n    %s%s╔══════════════════════════════════════════════════════════╗%s\n", c.c(ColorGreen), c.c(ColorBold), c.c(ColorReset))
	c.printf("    %s%s║               ✨ ADDRESS FOUND! ✨                       ║%s\n", c.c(ColorGreen), c.c(ColorBold), c.c(ColorReset))
	c.printf("    %s%s╚══════════════════════════════════════════════════════════╝%s\n\n", c.c(ColorGreen), c.c(ColorBold), c.c(ColorReset))

	c.printf("    %s₿ BITCOIN ADDRESS%s\n\n", c.c(ColorCyan+ColorBold), c.c(ColorReset))
	c.printf("       %s%s%s%s\n\n", c.c(ColorGreen), c.c(ColorBold), rec.P2PKH, c.c(ColorReset))

	c.printf("    %s🔑 PRIVATE KEY%s\n", c.c(ColorPurple+ColorBold), c.c(ColorReset))
	c.printf("       %s%s%s\n", c.c(ColorYellow), rec.Hex, c.c(ColorReset))
	c.printf("       %s%s%s\n\n", c.c(ColorYellow), rec.WIF, c.c(ColorReset))

	c.printf("    %s⏱   %s%s   %s│   %s📊  %s%s",
		c.c(ColorCyan), c.c(ColorReset+ColorBold), FormatDuration(rec.Elapsed),
		c.c(ColorDim),
		c.c(ColorPurple), c.c(ColorReset+ColorBold), FormatNumber(rec.Tries))
	if outputFile != "" {
		c.printf("   %s│   %s💾  %s%s", c.c(ColorDim), c.c(ColorYellow), c.c(ColorReset+ColorBold), outputFile)
	}
	c.printf("%s\n\n", c.c(ColorReset))
	c.printf("    %s%s⚠  KEEP YOUR PRIVATE KEY SECRET!%s\n", c.c(ColorRed), c.c(ColorBold), c.c(ColorReset))
}

// ClearLine clears the current line
func (c *Console) ClearLine() {
	c.printf("\r%s\r", strings.Repeat(" ", 94))
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	s := fmt.Sprintf("%d", n)
	if n < 1000 {
		return s
	}
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
