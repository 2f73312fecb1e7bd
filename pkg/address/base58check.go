package address

import (
	"bytes"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/Amr-9/hexkey/pkg/cryptoerr"
	"github.com/Amr-9/hexkey/pkg/hash"
)

var (
	// ErrChecksum is returned when a Base58Check checksum does not match.
	ErrChecksum = errors.Wrap(cryptoerr.ErrAddressFormat, "checksum mismatch")
	// ErrInvalidFormat is returned for strings that are not Base58Check.
	ErrInvalidFormat = errors.Wrap(cryptoerr.ErrAddressFormat, "invalid base58check string")
)

// CheckEncode encodes version || payload || checksum in Base58, where the
// checksum is the first four bytes of HASH256(version || payload).
func CheckEncode(version byte, payload []byte) string {
	data := make([]byte, 0, 1+len(payload)+hash.ChecksumSize)
	data = append(data, version)
	data = append(data, payload...)

	sum := hash.Checksum(data)
	data = append(data, sum[:]...)

	return base58.Encode(data)
}

// CheckDecode reverses CheckEncode and verifies the checksum.
func CheckDecode(s string) (byte, []byte, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return 0, nil, errors.Wrap(ErrInvalidFormat, err.Error())
	}
	if len(data) < 1+hash.ChecksumSize {
		return 0, nil, errors.Wrapf(ErrInvalidFormat, "decoded length %d too short", len(data))
	}

	body := data[:len(data)-hash.ChecksumSize]
	sum := hash.Checksum(body)
	if !bytes.Equal(sum[:], data[len(body):]) {
		return 0, nil, ErrChecksum
	}

	return body[0], body[1:], nil
}
