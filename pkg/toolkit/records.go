package toolkit

import (
	"encoding/hex"
	"strconv"
	"time"

	"github.com/Amr-9/hexkey/pkg/address"
	"github.com/Amr-9/hexkey/pkg/hash"
)

// PubKeyRecord is the result of PubKey.
type PubKeyRecord struct {
	Uncompressed Encoded
	Compressed   Encoded
	BTC          map[address.Type]string
	ETH          string
}

// Map flattens the record. Address keys are "BTC <type>" and "ETH address".
func (r *PubKeyRecord) Map() map[string]string {
	m := map[string]string{
		"uncompressed hex":    r.Uncompressed.Hex,
		"uncompressed base64": r.Uncompressed.Base64,
		"uncompressed raw":    r.Uncompressed.Raw,
		"compressed hex":      r.Compressed.Hex,
		"compressed base64":   r.Compressed.Base64,
		"compressed raw":      r.Compressed.Raw,
		"ETH address":         r.ETH,
	}
	for typ, addr := range r.BTC {
		m["BTC "+typ.String()] = addr
	}
	return m
}

// PrvKeyRecord is the result of PrvKey. It holds secret material.
type PrvKeyRecord struct {
	Key Encoded
	WIF string
}

func (r *PrvKeyRecord) Map() map[string]string {
	return map[string]string{
		"hex":     r.Key.Hex,
		"base64":  r.Key.Base64,
		"raw":     r.Key.Raw,
		"BTC wif": r.WIF,
	}
}

// SignRecord is the result of Sign. Signature is DER.
type SignRecord struct {
	File      string
	Hash      hash.Digest256
	Signature []byte
}

func (r *SignRecord) Map() map[string]string {
	return map[string]string{
		"file":      r.File,
		"hash":      r.Hash.String(),
		"signature": hex.EncodeToString(r.Signature),
	}
}

// VanityRecord is the result of Vanity. It holds secret material.
type VanityRecord struct {
	Hex     string
	P2PKH   string
	WIF     string
	Tries   uint64
	Elapsed time.Duration
}

func (r *VanityRecord) Map() map[string]string {
	return map[string]string{
		"hex":     r.Hex,
		"p2pkh":   r.P2PKH,
		"wif":     r.WIF,
		"tries":   strconv.FormatUint(r.Tries, 10),
		"time(s)": formatSeconds(r.Elapsed),
	}
}
