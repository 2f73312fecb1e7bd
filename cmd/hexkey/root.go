package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Amr-9/hexkey/internal/config"
	"github.com/Amr-9/hexkey/internal/logging"
	"github.com/Amr-9/hexkey/internal/ui"
	"github.com/Amr-9/hexkey/pkg/cryptoerr"
)

// app is the state shared by all commands of one invocation.
type app struct {
	v       *viper.Viper
	conf    *config.Config
	params  *chaincfg.Params
	logger  *slog.Logger
	console *ui.Console
}

func newApp() *app {
	return &app{
		v:      config.NewViper(),
		logger: logging.Discard(),
	}
}

// rootCmd builds the command tree bound to a.
func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hexkey",
		Short:         "secp256k1 key toolkit and Bitcoin vanity address search",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	def := config.DefaultConfig()
	pf := root.PersistentFlags()
	pf.String(config.KeyConfigFile, "", "config file (TOML, YAML or JSON)")
	pf.String(config.KeyNetwork, def.Network, "network for address rendering (mainnet, testnet3, regtest, signet, simnet)")
	pf.String(config.KeyLogLevel, def.LogLevel, "log level (debug, info, warn, error)")
	pf.String(config.KeyLogFormat, def.LogFormat, "log format (text, json)")
	pf.Bool(config.KeyNoColor, def.NoColor, "disable colored output")
	pf.Bool(config.KeyJSON, def.JSON, "print records as JSON")

	root.AddCommand(
		a.hashCmd("hash160", "Print the HASH160 of a file"),
		a.hashCmd("hash256", "Print the HASH256 of a file"),
		a.pubKeyCmd(),
		a.prvKeyCmd(),
		a.signCmd(),
		a.verifyCmd(),
		a.vanityCmd(),
	)
	return root
}

// setup resolves flags, environment and config file, then builds the
// logger and console.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	conf, err := config.Load(a.v)
	if err != nil {
		return err
	}
	params, err := conf.Params()
	if err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), conf.LoggingOptions())
	if err != nil {
		return err
	}

	a.conf = conf
	a.params = params
	a.logger = logger.With("cmd", cmd.Name())
	a.console = ui.NewConsole(cmd.OutOrStdout(), !conf.NoColor)
	a.logger.Debug("config loaded", "network", params.Name, "workers", conf.Workers, "nth", conf.Nth)
	return nil
}

// report logs a failed invocation once with its kind. Failures before setup
// completed (config, flags, unknown commands) go to a plain stderr logger.
func (a *app) report(stderr io.Writer, err error) {
	logger := a.logger
	if a.conf == nil {
		opts := config.DefaultConfig().LoggingOptions()
		opts.NoColor = true
		fallback, lerr := logging.New(stderr, opts)
		if lerr != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return
		}
		logger = fallback
	}
	logger.Error("command failed", "kind", cryptoerr.Kind(err), "err", err)
}

// printRecord writes a flattened record as JSON or through the console.
func (a *app) printRecord(cmd *cobra.Command, title string, record map[string]string) error {
	if a.conf.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}
	a.console.PrintRecord(title, record)
	return nil
}
