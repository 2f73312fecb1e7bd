package keys

import (
	"bytes"
	"encoding/asn1"
	"encoding/pem"

	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/Amr-9/hexkey/pkg/cryptoerr"
)

// PEM block types understood by the parser.
const (
	blockECParameters = "EC PARAMETERS"
	blockECPrivateKey = "EC PRIVATE KEY"
	blockPKCS8        = "PRIVATE KEY"
	blockPublicKey    = "PUBLIC KEY"
)

var (
	oidSecp256k1   = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
	oidECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
)

const ecPrivKeyVersion = 1

// ParsePrivateKeyPEM parses a PEM container holding a secp256k1 private key,
// either as SEC 1 "EC PRIVATE KEY" or PKCS #8 "PRIVATE KEY". A leading
// "EC PARAMETERS" block, as written by openssl ecparam, is skipped.
func ParsePrivateKeyPEM(data []byte) (*PrivateKey, error) {
	block, err := nextKeyBlock(data)
	if err != nil {
		return nil, err
	}

	switch block.Type {
	case blockECPrivateKey:
		return parseECPrivateKey(block.Bytes, nil)
	case blockPKCS8:
		return parsePKCS8PrivateKey(block.Bytes)
	default:
		return nil, errors.Wrapf(cryptoerr.ErrKeyFormat, "PEM block %q is not a private key", block.Type)
	}
}

// ParsePublicKeyPEM returns the public key held in a PEM container. A
// "PUBLIC KEY" block is parsed directly; a private key block yields its
// derived public key.
func ParsePublicKeyPEM(data []byte) (*PublicKey, error) {
	block, err := nextKeyBlock(data)
	if err != nil {
		return nil, err
	}

	if block.Type == blockPublicKey {
		return parseSubjectPublicKeyInfo(block.Bytes)
	}

	priv, err := ParsePrivateKeyPEM(data)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()
	return priv.PubKey(), nil
}

// nextKeyBlock returns the first PEM block that is not EC PARAMETERS.
func nextKeyBlock(data []byte) (*pem.Block, error) {
	rest := data
	for {
		block, r := pem.Decode(rest)
		if block == nil {
			return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "no PEM key block found")
		}
		rest = r

		if block.Type == blockECParameters {
			continue
		}
		if _, ok := block.Headers["Proc-Type"]; ok {
			return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "encrypted PEM blocks are not supported")
		}
		switch block.Type {
		case blockECPrivateKey, blockPKCS8, blockPublicKey:
			return block, nil
		default:
			return nil, errors.Wrapf(cryptoerr.ErrKeyFormat, "unsupported PEM block %q", block.Type)
		}
	}
}

// parseECPrivateKey parses the SEC 1 structure
//
//	ECPrivateKey ::= SEQUENCE {
//	  version        INTEGER { ecPrivkeyVer1(1) },
//	  privateKey     OCTET STRING,
//	  parameters [0] ECParameters {{ NamedCurve }} OPTIONAL,
//	  publicKey  [1] BIT STRING OPTIONAL
//	}
//
// curve is the named curve from an enclosing PKCS #8 structure, if any.
func parseECPrivateKey(der []byte, curve asn1.ObjectIdentifier) (*PrivateKey, error) {
	input := cryptobyte.String(der)

	var (
		seq     cryptobyte.String
		version int
		scalar  cryptobyte.String
	)
	if !input.ReadASN1(&seq, cryptobyte_asn1.SEQUENCE) || !input.Empty() {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "malformed EC private key")
	}
	if !seq.ReadASN1Integer(&version) {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "malformed EC private key version")
	}
	if version != ecPrivKeyVersion {
		return nil, errors.Wrapf(cryptoerr.ErrKeyFormat, "unknown EC private key version %d", version)
	}
	if !seq.ReadASN1(&scalar, cryptobyte_asn1.OCTET_STRING) {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "malformed EC private key scalar")
	}

	var (
		params    cryptobyte.String
		hasParams bool
	)
	if !seq.ReadOptionalASN1(&params, &hasParams, cryptobyte_asn1.Tag(0).Constructed().ContextSpecific()) {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "malformed EC parameters")
	}
	if hasParams {
		var oid asn1.ObjectIdentifier
		if !params.ReadASN1ObjectIdentifier(&oid) {
			return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "EC parameters are not a named curve")
		}
		if curve != nil && !curve.Equal(oid) {
			return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "conflicting curve parameters")
		}
		curve = oid
	}
	if err := checkCurve(curve); err != nil {
		return nil, err
	}

	var (
		pubField cryptobyte.String
		hasPub   bool
	)
	if !seq.ReadOptionalASN1(&pubField, &hasPub, cryptobyte_asn1.Tag(1).Constructed().ContextSpecific()) {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "malformed EC public key field")
	}

	priv, err := privateKeyFromScalar(scalar)
	if err != nil {
		return nil, err
	}

	if hasPub {
		var bits asn1.BitString
		if !pubField.ReadASN1BitString(&bits) {
			priv.Zero()
			return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "malformed embedded public key")
		}
		embedded := bits.RightAlign()
		derived := priv.PubKey()
		if !bytes.Equal(embedded, derived.SerializeUncompressed()) &&
			!bytes.Equal(embedded, derived.SerializeCompressed()) {
			priv.Zero()
			return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "embedded public key does not match private key")
		}
	}

	return priv, nil
}

// parsePKCS8PrivateKey parses
//
//	PrivateKeyInfo ::= SEQUENCE {
//	  version             INTEGER,
//	  privateKeyAlgorithm AlgorithmIdentifier,
//	  privateKey          OCTET STRING,
//	  attributes      [0] Attributes OPTIONAL
//	}
func parsePKCS8PrivateKey(der []byte) (*PrivateKey, error) {
	input := cryptobyte.String(der)

	var (
		seq     cryptobyte.String
		version int
		inner   cryptobyte.String
	)
	if !input.ReadASN1(&seq, cryptobyte_asn1.SEQUENCE) || !input.Empty() {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "malformed PKCS #8 private key")
	}
	if !seq.ReadASN1Integer(&version) || version != 0 {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "unsupported PKCS #8 version")
	}
	curve, err := readECAlgorithm(&seq)
	if err != nil {
		return nil, err
	}
	if !seq.ReadASN1(&inner, cryptobyte_asn1.OCTET_STRING) {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "malformed PKCS #8 private key payload")
	}
	return parseECPrivateKey(inner, curve)
}

// parseSubjectPublicKeyInfo parses
//
//	SubjectPublicKeyInfo ::= SEQUENCE {
//	  algorithm        AlgorithmIdentifier,
//	  subjectPublicKey BIT STRING
//	}
func parseSubjectPublicKeyInfo(der []byte) (*PublicKey, error) {
	input := cryptobyte.String(der)

	var (
		seq  cryptobyte.String
		bits asn1.BitString
	)
	if !input.ReadASN1(&seq, cryptobyte_asn1.SEQUENCE) || !input.Empty() {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "malformed public key info")
	}
	curve, err := readECAlgorithm(&seq)
	if err != nil {
		return nil, err
	}
	if err := checkCurve(curve); err != nil {
		return nil, err
	}
	if !seq.ReadASN1BitString(&bits) {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "malformed subject public key")
	}
	return ParsePublicKey(bits.RightAlign())
}

// readECAlgorithm reads an AlgorithmIdentifier that must be id-ecPublicKey
// and returns its named curve parameter.
func readECAlgorithm(seq *cryptobyte.String) (asn1.ObjectIdentifier, error) {
	var (
		algo     cryptobyte.String
		algoOID  asn1.ObjectIdentifier
		curveOID asn1.ObjectIdentifier
	)
	if !seq.ReadASN1(&algo, cryptobyte_asn1.SEQUENCE) || !algo.ReadASN1ObjectIdentifier(&algoOID) {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "malformed algorithm identifier")
	}
	if !algoOID.Equal(oidECPublicKey) {
		return nil, errors.Wrapf(cryptoerr.ErrKeyFormat, "unsupported key algorithm %s", algoOID)
	}
	if !algo.ReadASN1ObjectIdentifier(&curveOID) {
		return nil, errors.Wrap(cryptoerr.ErrKeyFormat, "EC algorithm parameters are not a named curve")
	}
	return curveOID, nil
}

func checkCurve(curve asn1.ObjectIdentifier) error {
	if curve == nil {
		return errors.Wrap(cryptoerr.ErrKeyFormat, "EC private key does not name its curve")
	}
	if !curve.Equal(oidSecp256k1) {
		return errors.Wrapf(cryptoerr.ErrKeyFormat, "unsupported curve %s", curve)
	}
	return nil
}
