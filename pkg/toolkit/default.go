package toolkit

import "context"

var std = New(nil)

// Hash160File runs Toolkit.Hash160File on mainnet.
func Hash160File(path string) (string, error) { return std.Hash160File(path) }

// Hash256File runs Toolkit.Hash256File on mainnet.
func Hash256File(path string) (string, error) { return std.Hash256File(path) }

// PubKey runs Toolkit.PubKey on mainnet.
func PubKey(path string) (*PubKeyRecord, error) { return std.PubKey(path) }

// PrvKey runs Toolkit.PrvKey on mainnet.
func PrvKey(path string) (*PrvKeyRecord, error) { return std.PrvKey(path) }

// Sign runs Toolkit.Sign.
func Sign(keyPath, msgPath string) (*SignRecord, error) { return std.Sign(keyPath, msgPath) }

// Verify runs Toolkit.Verify.
func Verify(msgPath, pubKeyHex, sigHex string) (bool, error) {
	return std.Verify(msgPath, pubKeyHex, sigHex)
}

// Vanity runs Toolkit.Vanity on mainnet with a fresh CPU generator.
func Vanity(ctx context.Context, pattern string, nth, workers int) (*VanityRecord, error) {
	return std.Vanity(ctx, pattern, nth, workers)
}
