// Package address encodes secp256k1 keys as Bitcoin and Ethereum addresses
// and Wallet Import Format strings.
package address

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/Amr-9/hexkey/pkg/cryptoerr"
	"github.com/Amr-9/hexkey/pkg/hash"
	"github.com/Amr-9/hexkey/pkg/keys"
)

// Type selects a Bitcoin output script for Derive.
type Type int

const (
	TypeP2PKH Type = iota
	TypeP2WPKH
	TypeP2SHP2WPKH
	TypeP2TR
)

// Types lists every address type in display order.
var Types = []Type{TypeP2PKH, TypeP2WPKH, TypeP2SHP2WPKH, TypeP2TR}

func (t Type) String() string {
	switch t {
	case TypeP2PKH:
		return "p2pkh"
	case TypeP2WPKH:
		return "p2wpkh"
	case TypeP2SHP2WPKH:
		return "p2sh-p2wpkh"
	case TypeP2TR:
		return "p2tr"
	default:
		return "unknown"
	}
}

const (
	wifCompressedFlag = 0x01

	witnessV0 = 0x00
	witnessV1 = 0x01

	// OP_0 followed by a 20-byte push.
	opPushBytes20 = 0x14
)

// Derive encodes pub as an address of the given type.
func Derive(pub *keys.PublicKey, t Type, params *chaincfg.Params) (string, error) {
	switch t {
	case TypeP2PKH:
		return P2PKH(pub.SerializeCompressed(), params), nil
	case TypeP2WPKH:
		return P2WPKH(pub.SerializeCompressed(), params)
	case TypeP2SHP2WPKH:
		return P2SHP2WPKH(pub.SerializeCompressed(), params), nil
	case TypeP2TR:
		return P2TR(pub, params)
	default:
		return "", errors.Wrapf(cryptoerr.ErrInvalidParameter, "unknown address type %d", int(t))
	}
}

// P2PKH returns Base58Check(version || HASH160(pubKey)). Callers pass the
// compressed encoding; the result differs for the uncompressed one.
func P2PKH(pubKey []byte, params *chaincfg.Params) string {
	h := hash.Hash160(pubKey)
	return CheckEncode(resolve(params).PubKeyHashAddrID, h[:])
}

// WIF encodes a private scalar in Wallet Import Format, flagged for use with
// a compressed public key.
func WIF(privateKey []byte, params *chaincfg.Params) string {
	payload := make([]byte, 0, len(privateKey)+1)
	payload = append(payload, privateKey...)
	payload = append(payload, wifCompressedFlag)
	defer clear(payload)

	return CheckEncode(resolve(params).PrivateKeyID, payload)
}

// P2WPKH returns the bech32 native SegWit v0 address for a compressed key.
func P2WPKH(pubKey []byte, params *chaincfg.Params) (string, error) {
	h := hash.Hash160(pubKey)
	return segwitEncode(resolve(params).Bech32HRPSegwit, witnessV0, h[:])
}

// P2SHP2WPKH wraps the P2WPKH witness program in a P2SH script hash.
func P2SHP2WPKH(pubKey []byte, params *chaincfg.Params) string {
	h := hash.Hash160(pubKey)

	program := make([]byte, 0, 2+hash.Size160)
	program = append(program, witnessV0, opPushBytes20)
	program = append(program, h[:]...)

	scriptHash := hash.Hash160(program)
	return CheckEncode(resolve(params).ScriptHashAddrID, scriptHash[:])
}

// P2TR returns the BIP-86 key-path-only Taproot address for pub.
// The output key is Q = P + int(hashTapTweak(x(P)))G, where P is pub lifted
// to even Y.
func P2TR(pub *keys.PublicKey, params *chaincfg.Params) (string, error) {
	xOnly := schnorr.SerializePubKey(pub.BTCEC())
	internal, err := schnorr.ParsePubKey(xOnly)
	if err != nil {
		return "", errors.Wrap(cryptoerr.ErrKeyFormat, err.Error())
	}

	tweak := hash.TaggedHash("TapTweak", xOnly)
	var t btcec.ModNScalar
	if overflow := t.SetBytes((*[32]byte)(&tweak)); overflow != 0 {
		return "", errors.Wrap(cryptoerr.ErrAddressFormat, "taproot tweak exceeds curve order")
	}

	var p, tG, q btcec.JacobianPoint
	internal.AsJacobian(&p)
	btcec.ScalarBaseMultNonConst(&t, &tG)
	btcec.AddNonConst(&p, &tG, &q)
	q.ToAffine()

	output := btcec.NewPublicKey(&q.X, &q.Y)
	return segwitEncode(resolve(params).Bech32HRPSegwit, witnessV1, schnorr.SerializePubKey(output))
}

// Ethereum returns the EIP-55 checksummed address: the last 20 bytes of
// Keccak-256 over the uncompressed key without its 0x04 marker.
func Ethereum(pub *keys.PublicKey) string {
	u := pub.SerializeUncompressed()
	return common.BytesToAddress(ethcrypto.Keccak256(u[1:])[12:]).Hex()
}

// segwitEncode uses bech32 for witness v0 and bech32m for later versions.
func segwitEncode(hrp string, version byte, program []byte) (string, error) {
	data, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(cryptoerr.ErrAddressFormat, err.Error())
	}
	data = append([]byte{version}, data...)

	var addr string
	if version == witnessV0 {
		addr, err = bech32.Encode(hrp, data)
	} else {
		addr, err = bech32.EncodeM(hrp, data)
	}
	if err != nil {
		return "", errors.Wrap(cryptoerr.ErrAddressFormat, err.Error())
	}
	return addr, nil
}
