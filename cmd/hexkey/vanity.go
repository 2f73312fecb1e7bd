package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Amr-9/hexkey/internal/config"
	"github.com/Amr-9/hexkey/internal/ui"
	"github.com/Amr-9/hexkey/pkg/generator"
	"github.com/Amr-9/hexkey/pkg/generator/cpu"
	"github.com/Amr-9/hexkey/pkg/toolkit"
)

const (
	updateRate = 100 * time.Millisecond

	flagOutput   = "output"
	flagProgress = "progress"
)

func (a *app) vanityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vanity <pattern>",
		Short: "Search for a key whose P2PKH address starts with the pattern after its version character",
		Long: `Search for a key whose compressed P2PKH address continues with <pattern>
after its leading version character, e.g. "AB" finds 1AB... on mainnet.
With --nth N the Nth match across all workers is returned. Interrupt with
Ctrl+C to stop the search.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runVanity,
	}

	def := config.DefaultConfig()
	cmd.Flags().Int(config.KeyWorkers, def.Workers, fmt.Sprintf("number of search goroutines (1-%d)", generator.MaxWorkers))
	cmd.Flags().Int(config.KeyNth, def.Nth, "return the Nth matching key")
	cmd.Flags().String(flagOutput, "", "also save the result to this file (mode 0600)")
	cmd.Flags().Bool(flagProgress, true, "show a progress line on stderr")
	return cmd
}

func (a *app) runVanity(cmd *cobra.Command, args []string) error {
	if err := a.conf.ValidateSearch(); err != nil {
		return err
	}
	cfg := &generator.Config{
		Pattern: args[0],
		Nth:     a.conf.Nth,
		Workers: a.conf.Workers,
		Params:  a.params,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString(flagOutput)
	showProgress, _ := cmd.Flags().GetBool(flagProgress)

	if err := raisePriority(); err != nil {
		a.logger.Debug("could not raise process priority", "err", err)
	}

	// Handle interrupt signals
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	difficulty := generator.EstimateDifficulty(cfg.Pattern, cfg.Nth)
	progress := ui.NewConsole(cmd.ErrOrStderr(), !a.conf.NoColor)
	if showProgress && !a.conf.JSON {
		progress.PrintBanner(version)
		progress.PrintSearchInfo(cfg, versionPrefix(cfg), difficulty)
	}
	a.logger.Info("vanity search started", "pattern", cfg.Pattern, "nth", cfg.Nth, "workers", cfg.Workers, "network", a.params.Name)

	gen := cpu.NewCPUGenerator()
	tk := toolkit.New(a.params, toolkit.WithGenerator(gen))

	type outcome struct {
		rec *toolkit.VanityRecord
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		rec, err := tk.Vanity(ctx, cfg.Pattern, cfg.Nth, cfg.Workers)
		done <- outcome{rec, err}
	}()

	ticker := time.NewTicker(updateRate)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case res := <-done:
			if showProgress && !a.conf.JSON {
				progress.ClearLine()
			}
			if res.err != nil {
				stats := gen.Stats()
				a.logger.Info("vanity search stopped", "tries", stats.Attempts, "elapsed", stats.Elapsed)
				return res.err
			}
			return a.finishVanity(cmd, res.rec, output)

		case <-ticker.C:
			if showProgress && !a.conf.JSON {
				progress.PrintProgress(gen.Stats(), difficulty, frame)
			}
		}
	}
}

func (a *app) finishVanity(cmd *cobra.Command, rec *toolkit.VanityRecord, output string) error {
	a.logger.Info("vanity search finished", "address", rec.P2PKH, "tries", rec.Tries, "elapsed", rec.Elapsed)

	if output != "" {
		if err := saveResult(output, rec); err != nil {
			a.logger.Warn("save failed", "file", output, "err", err)
		}
	}

	if a.conf.JSON {
		return a.printRecord(cmd, "vanity", rec.Map())
	}
	a.console.PrintSuccess(rec, output)
	a.console.PrintRecord("", rec.Map())
	return nil
}

// versionPrefix is the leading character every address of the network has
// in common, shown in front of the pattern.
func versionPrefix(cfg *generator.Config) string {
	if cfg.Params != nil && cfg.Params.PubKeyHashAddrID != 0x00 {
		return ""
	}
	return "1"
}

// saveResult writes the result to a file
func saveResult(path string, rec *toolkit.VanityRecord) error {
	content := fmt.Sprintf(`Bitcoin Vanity Address
=======================

Address:     %s
Private Key: %s
WIF:         %s

Statistics:
  Time:     %s
  Attempts: %s

Generated: %s

WARNING: Keep this private key secret and secure!
`, rec.P2PKH, rec.Hex, rec.WIF, ui.FormatDuration(rec.Elapsed), ui.FormatNumber(rec.Tries), time.Now().Format(time.DateTime))

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return errors.Wrap(err, "write result")
	}
	return nil
}
