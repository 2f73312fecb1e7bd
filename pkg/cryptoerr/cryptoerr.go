// Package cryptoerr defines the error kinds returned by the hexkey engine.
//
// Every engine error wraps exactly one of the sentinels below, so callers
// classify failures with errors.Is and the boundary layer can map a kind to
// its own error type with Kind.
package cryptoerr

import (
	"github.com/pkg/errors"
)

var (
	// ErrKeyFormat is returned for a malformed or unsupported key encoding,
	// a key on the wrong curve, or a scalar outside [1, n).
	ErrKeyFormat = errors.New("key format error")

	// ErrSignatureFormat is returned when signature bytes cannot be parsed
	// as an (r, s) pair or the verifying public key is invalid.
	ErrSignatureFormat = errors.New("signature format error")

	// ErrSigning is returned when a signature cannot be computed.
	ErrSigning = errors.New("signing error")

	// ErrInvalidParameter is returned for out-of-range search parameters.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrSearch is returned on an internal failure during vanity search.
	ErrSearch = errors.New("search error")

	// ErrSearchCancelled is returned when the caller cancels a vanity search.
	ErrSearchCancelled = errors.New("search cancelled")

	// ErrAddressFormat is returned when an encoded address or WIF string
	// fails to decode or its checksum does not match.
	ErrAddressFormat = errors.New("address format error")

	// ErrIO is returned by the file-reading helpers of the toolkit.
	ErrIO = errors.New("io error")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrKeyFormat, "KeyFormatError"},
	{ErrSignatureFormat, "SignatureFormatError"},
	{ErrSigning, "SigningError"},
	{ErrInvalidParameter, "InvalidParameterError"},
	{ErrSearchCancelled, "SearchCancelledError"},
	{ErrSearch, "SearchError"},
	{ErrAddressFormat, "AddressFormatError"},
	{ErrIO, "IOError"},
}

// Kind returns the stable name of the error kind wrapped by err, or "Error"
// if err does not wrap any known kind. Kind(nil) is "".
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Error"
}
