// Package toolkit is the file-oriented boundary of hexkey. It reads keys and
// messages from disk, calls the engine packages and returns typed records
// that flatten to the string maps printed by the command line.
package toolkit

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"

	"github.com/Amr-9/hexkey/pkg/address"
	"github.com/Amr-9/hexkey/pkg/cryptoerr"
	"github.com/Amr-9/hexkey/pkg/generator"
	"github.com/Amr-9/hexkey/pkg/generator/cpu"
	"github.com/Amr-9/hexkey/pkg/hash"
	"github.com/Amr-9/hexkey/pkg/keys"
	"github.com/Amr-9/hexkey/pkg/signature"
)

// Toolkit carries the network used for address rendering and the search
// backend used by Vanity.
type Toolkit struct {
	params *chaincfg.Params
	gen    generator.Generator
}

// Option configures a Toolkit.
type Option func(*Toolkit)

// WithGenerator makes Vanity run on g, so the caller can poll g.Stats while
// a search is running.
func WithGenerator(g generator.Generator) Option {
	return func(t *Toolkit) {
		t.gen = g
	}
}

// New returns a Toolkit for params; nil selects mainnet.
func New(params *chaincfg.Params, opts ...Option) *Toolkit {
	if params == nil {
		params = address.DefaultParams
	}
	t := &Toolkit{params: params}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Params returns the network the toolkit renders addresses for.
func (t *Toolkit) Params() *chaincfg.Params {
	return t.params
}

// Hash160File returns the hex HASH160 of the file contents.
func (t *Toolkit) Hash160File(path string) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", err
	}
	return hash.Hash160(data).String(), nil
}

// Hash256File returns the hex HASH256 of the file contents.
func (t *Toolkit) Hash256File(path string) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", err
	}
	return hash.Hash256(data).String(), nil
}

// PubKey renders the public key of a private or public key PEM file.
func (t *Toolkit) PubKey(path string) (*PubKeyRecord, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	pub, err := keys.ParsePublicKeyPEM(data)
	if err != nil {
		return nil, err
	}

	rec := &PubKeyRecord{
		Uncompressed: encode(pub.SerializeUncompressed()),
		Compressed:   encode(pub.SerializeCompressed()),
		BTC:          make(map[address.Type]string, len(address.Types)),
		ETH:          address.Ethereum(pub),
	}
	for _, typ := range address.Types {
		addr, err := address.Derive(pub, typ, t.params)
		if err != nil {
			return nil, err
		}
		rec.BTC[typ] = addr
	}
	return rec, nil
}

// PrvKey renders the private scalar of a private key PEM file.
func (t *Toolkit) PrvKey(path string) (*PrvKeyRecord, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	priv, err := keys.ParsePrivateKeyPEM(data)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()

	scalar := priv.Serialize()
	defer clear(scalar)

	return &PrvKeyRecord{
		Key: encode(scalar),
		WIF: address.WIF(scalar, t.params),
	}, nil
}

// Sign signs HASH256 of the message file with the key in keyPath.
func (t *Toolkit) Sign(keyPath, msgPath string) (*SignRecord, error) {
	keyData, err := readFile(keyPath)
	if err != nil {
		return nil, err
	}
	msg, err := readFile(msgPath)
	if err != nil {
		return nil, err
	}

	priv, err := keys.ParsePrivateKeyPEM(keyData)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()

	digest := hash.Hash256(msg)
	sig, err := signature.Sign(priv, digest[:])
	if err != nil {
		return nil, err
	}

	return &SignRecord{
		File:      msgPath,
		Hash:      digest,
		Signature: sig.Serialize(),
	}, nil
}

// Verify checks a hex signature over HASH256 of the message file against a
// hex public key.
func (t *Toolkit) Verify(msgPath, pubKeyHex, sigHex string) (bool, error) {
	msg, err := readFile(msgPath)
	if err != nil {
		return false, err
	}

	pubKey, err := hex.DecodeString(strings.TrimSpace(pubKeyHex))
	if err != nil {
		return false, errors.Wrapf(cryptoerr.ErrSignatureFormat, "public key is not hex: %v", err)
	}
	sig, err := hex.DecodeString(strings.TrimSpace(sigHex))
	if err != nil {
		return false, errors.Wrapf(cryptoerr.ErrSignatureFormat, "signature is not hex: %v", err)
	}

	digest := hash.Hash256(msg)
	return signature.VerifyBytes(pubKey, digest[:], sig)
}

// Vanity searches for the nth key whose P2PKH address continues with
// pattern after its version character.
func (t *Toolkit) Vanity(ctx context.Context, pattern string, nth, workers int) (*VanityRecord, error) {
	gen := t.gen
	if gen == nil {
		gen = cpu.NewCPUGenerator()
	}

	res, err := gen.Search(ctx, &generator.Config{
		Pattern: pattern,
		Nth:     nth,
		Workers: workers,
		Params:  t.params,
	})
	if err != nil {
		return nil, err
	}
	defer res.PrivateKey.Zero()

	return &VanityRecord{
		Hex:     hex.EncodeToString(res.PrivateKey.Serialize()),
		P2PKH:   res.Address,
		WIF:     res.WIF,
		Tries:   res.Stats.Attempts,
		Elapsed: res.Stats.Elapsed,
	}, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(cryptoerr.ErrIO, err.Error())
	}
	return data, nil
}

// Encoded holds the three renderings of a byte string.
type Encoded struct {
	Hex    string
	Base64 string
	Raw    string
}

func encode(b []byte) Encoded {
	return Encoded{
		Hex:    hex.EncodeToString(b),
		Base64: base64.StdEncoding.EncodeToString(b),
		Raw:    formatRaw(b),
	}
}

// formatRaw renders bytes as a decimal list, e.g. [4, 246, 117].
func formatRaw(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b)*5 + 2)
	sb.WriteByte('[')
	for i, v := range b {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(int(v)))
	}
	sb.WriteByte(']')
	return sb.String()
}

// formatSeconds renders whole milliseconds as seconds in the shortest form.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Milliseconds())/1000, 'f', -1, 64)
}
