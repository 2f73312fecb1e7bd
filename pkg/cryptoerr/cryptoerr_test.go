package cryptoerr

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"key format", errors.Wrap(ErrKeyFormat, "bad pem"), "KeyFormatError"},
		{"signature format", errors.Wrapf(ErrSignatureFormat, "len %d", 3), "SignatureFormatError"},
		{"signing", ErrSigning, "SigningError"},
		{"invalid parameter", errors.Wrap(ErrInvalidParameter, "nth"), "InvalidParameterError"},
		{"search", errors.Wrap(ErrSearch, "entropy"), "SearchError"},
		{"cancelled", errors.Wrap(ErrSearchCancelled, "context canceled"), "SearchCancelledError"},
		{"address", ErrAddressFormat, "AddressFormatError"},
		{"io", fmt.Errorf("open: %w", ErrIO), "IOError"},
		{"unknown", errors.New("boom"), "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestWrappedErrorsKeepSentinel(t *testing.T) {
	err := errors.Wrap(errors.Wrap(ErrKeyFormat, "inner"), "outer")
	assert.True(t, errors.Is(err, ErrKeyFormat))
	assert.False(t, errors.Is(err, ErrSigning))
	assert.Equal(t, ErrKeyFormat, errors.Cause(err))
}
