package signature

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/hexkey/pkg/cryptoerr"
	"github.com/Amr-9/hexkey/pkg/hash"
	"github.com/Amr-9/hexkey/pkg/keys"
)

const (
	testPrivHex       = "94199c35c8848e03e9cb4380ef712bc077a5991fa0bbf2c4a40b0353e3ad6c27"
	testPubCompressed = "02f6755afd57b6da43e8eec8144b5efe63f902ccc1980461fc66435671f54bea02"

	// HASH256 of testdata/message.txt.
	messageDigest = "74743aec8fc3daf7bffe600cdf6848cdd1105671c273733f544caba63dfcba92"

	wantDER     = "304402207414755f1329e66a9f8e4a048472677bccb09d44b282f0e70d20ba73024ccf4202202a7a38e347abf75472667b23175460c0f6ef8ca65305bb12d12e55c0e0985928"
	wantCompact = "7414755f1329e66a9f8e4a048472677bccb09d44b282f0e70d20ba73024ccf422a7a38e347abf75472667b23175460c0f6ef8ca65305bb12d12e55c0e0985928"

	curveOrder = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	halfOrder  = "7fffffffffffffffffffffffffffffff5d576e7357a4501ddfe92f46681b20a0"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func testKey(t *testing.T) *keys.PrivateKey {
	t.Helper()
	priv, err := keys.ParsePrivateKey(mustHex(t, testPrivHex))
	require.NoError(t, err)
	return priv
}

func TestSignDeterministic(t *testing.T) {
	priv := testKey(t)
	digest := mustHex(t, messageDigest)

	sig, err := Sign(priv, digest)
	require.NoError(t, err)
	assert.Equal(t, wantDER, hex.EncodeToString(sig.Serialize()))
	assert.Equal(t, wantCompact, hex.EncodeToString(sig.SerializeCompact()))

	again, err := Sign(priv, digest)
	require.NoError(t, err)
	assert.Equal(t, sig.Serialize(), again.Serialize())
}

func TestSignIsLowS(t *testing.T) {
	priv := testKey(t)
	for i := 0; i < 16; i++ {
		digest := hash.Hash256([]byte{byte(i)})
		sig, err := Sign(priv, digest[:])
		require.NoError(t, err)

		s := sig.SerializeCompact()[32:]
		assert.LessOrEqual(t, hex.EncodeToString(s), halfOrder)
	}
}

func TestSignErrors(t *testing.T) {
	priv := testKey(t)

	_, err := Sign(priv, make([]byte, 31))
	assert.True(t, errors.Is(err, cryptoerr.ErrSigning))

	_, err = Sign(priv, make([]byte, 33))
	assert.True(t, errors.Is(err, cryptoerr.ErrSigning))

	_, err = Sign(nil, make([]byte, DigestSize))
	assert.True(t, errors.Is(err, cryptoerr.ErrSigning))

	zeroed := testKey(t)
	zeroed.Zero()
	_, err = Sign(zeroed, make([]byte, DigestSize))
	assert.True(t, errors.Is(err, cryptoerr.ErrSigning))
}

func TestVerify(t *testing.T) {
	priv := testKey(t)
	pub := priv.PubKey()
	digest := mustHex(t, messageDigest)

	t.Run("fixture signature", func(t *testing.T) {
		ok, err := VerifyBytes(mustHex(t, testPubCompressed), digest, mustHex(t, wantDER))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = VerifyBytes(pub.SerializeUncompressed(), digest, mustHex(t, wantCompact))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong digest", func(t *testing.T) {
		other := hash.Hash256([]byte("hello, world!\n"))
		ok, err := Verify(pub, other[:], mustHex(t, wantDER))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong key", func(t *testing.T) {
		one := make([]byte, keys.PrivateKeySize)
		one[keys.PrivateKeySize-1] = 1
		otherPriv, err := keys.ParsePrivateKey(one)
		require.NoError(t, err)

		ok, err := Verify(otherPriv.PubKey(), digest, mustHex(t, wantDER))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("round trip over generated keys", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			k, err := keys.Generate(rand.Reader)
			require.NoError(t, err)
			d := hash.Hash256([]byte{byte(i), 0xaa})
			sig, err := Sign(k, d[:])
			require.NoError(t, err)

			parsed, err := Parse(sig.Serialize())
			require.NoError(t, err)
			assert.Equal(t, sig.SerializeCompact(), parsed.SerializeCompact())
			assert.True(t, parsed.Verify(k.PubKey(), d[:]))
		}
	})

	t.Run("malformed signature", func(t *testing.T) {
		_, err := Verify(pub, digest, []byte{0x30, 0x01, 0x00})
		assert.True(t, errors.Is(err, cryptoerr.ErrSignatureFormat))
	})

	t.Run("invalid public key", func(t *testing.T) {
		_, err := VerifyBytes([]byte{0x02, 0x01}, digest, mustHex(t, wantDER))
		assert.True(t, errors.Is(err, cryptoerr.ErrSignatureFormat))
	})

	t.Run("nil public key", func(t *testing.T) {
		_, err := Verify(nil, digest, mustHex(t, wantDER))
		assert.True(t, errors.Is(err, cryptoerr.ErrSignatureFormat))
	})
}

func TestParse(t *testing.T) {
	t.Run("der and compact agree", func(t *testing.T) {
		fromDER, err := Parse(mustHex(t, wantDER))
		require.NoError(t, err)
		fromCompact, err := Parse(mustHex(t, wantCompact))
		require.NoError(t, err)
		assert.Equal(t, fromDER.Serialize(), fromCompact.Serialize())
	})

	t.Run("64-byte der", func(t *testing.T) {
		r := append([]byte{0x01}, bytes.Repeat([]byte{0x11}, 28)...)
		sv := append([]byte{0x02}, bytes.Repeat([]byte{0x22}, 28)...)
		der := []byte{0x30, 0x3e, 0x02, 0x1d}
		der = append(der, r...)
		der = append(der, 0x02, 0x1d)
		der = append(der, sv...)
		require.Len(t, der, CompactSize)

		sig, err := Parse(der)
		require.NoError(t, err)
		assert.Equal(t, der, sig.Serialize())

		want := append(make([]byte, 3), r...)
		want = append(want, make([]byte, 3)...)
		want = append(want, sv...)
		assert.Equal(t, want, sig.SerializeCompact())
	})

	t.Run("compact starting with sequence tag", func(t *testing.T) {
		in := append([]byte{0x30}, bytes.Repeat([]byte{0x11}, 31)...)
		in = append(in, mustHex(t, wantCompact)[32:]...)

		sig, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, in, sig.SerializeCompact())
	})

	zero := make([]byte, 32)
	order := mustHex(t, curveOrder)
	s := mustHex(t, wantCompact)[32:]

	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not a signature")},
		{"trailing bytes", append(mustHex(t, wantDER), 0x00)},
		{"trailing garbage", append(mustHex(t, wantDER), 0xde, 0xad)},
		{"compact zero r", append(append([]byte{}, zero...), s...)},
		{"compact r equal to order", append(append([]byte{}, order...), s...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, cryptoerr.ErrSignatureFormat))
		})
	}
}
