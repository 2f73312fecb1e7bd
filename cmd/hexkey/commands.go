package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Amr-9/hexkey/pkg/toolkit"
)

// errInvalidSignature makes verify exit non-zero for a well-formed signature
// that does not match.
var errInvalidSignature = errors.New("signature does not verify")

func (a *app) newToolkit() *toolkit.Toolkit {
	return toolkit.New(a.params)
}

func (a *app) hashCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tk := a.newToolkit()
			hashFile := tk.Hash256File
			if name == "hash160" {
				hashFile = tk.Hash160File
			}

			digest, err := hashFile(args[0])
			if err != nil {
				return err
			}
			if a.conf.JSON {
				return a.printRecord(cmd, name, map[string]string{name: digest})
			}
			fmt.Fprintln(cmd.OutOrStdout(), digest)
			return nil
		},
	}
}

func (a *app) pubKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey <pem-file>",
		Short: "Show the public key and addresses of a private or public key PEM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.newToolkit().PubKey(args[0])
			if err != nil {
				return err
			}
			return a.printRecord(cmd, "public key", rec.Map())
		},
	}
}

func (a *app) prvKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prvkey <pem-file>",
		Short: "Show the private scalar and WIF of a private key PEM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.newToolkit().PrvKey(args[0])
			if err != nil {
				return err
			}
			return a.printRecord(cmd, "private key", rec.Map())
		},
	}
}

func (a *app) signCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <pem-file> <message-file>",
		Short: "Sign HASH256 of a file with a private key (DER signature)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.newToolkit().Sign(args[0], args[1])
			if err != nil {
				return err
			}
			a.logger.Info("signed", "file", rec.File, "hash", rec.Hash.String())
			return a.printRecord(cmd, "signature", rec.Map())
		},
	}
}

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <message-file> <pubkey-hex> <signature-hex>",
		Short: "Verify a signature over HASH256 of a file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.newToolkit().Verify(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if a.conf.JSON {
				if err := json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]bool{"valid": ok}); err != nil {
					return err
				}
			} else {
				a.console.PrintVerify(ok)
			}
			if !ok {
				return errInvalidSignature
			}
			return nil
		},
	}
}
