package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAddress_Deterministic(t *testing.T) {
	owner := WalletAddress("alice")

	a := DeriveAddress("shop.v1", owner[:])
	b := DeriveAddress("shop.v1", owner[:])
	assert.Equal(t, a, b)
}

func TestDeriveAddress_DistinctByTemplate(t *testing.T) {
	owner := WalletAddress("alice")

	a := DeriveAddress("shop.v1", owner[:])
	b := DeriveAddress("user.v1", owner[:])
	assert.NotEqual(t, a, b)
}

func TestDeriveAddress_DistinctByArgs(t *testing.T) {
	shop := WalletAddress("shop")

	a := DeriveAddress("item.v1", shop[:], Uint64Bytes(0))
	b := DeriveAddress("item.v1", shop[:], Uint64Bytes(1))
	assert.NotEqual(t, a, b)
}

func TestDeriveAddress_LengthPrefixed(t *testing.T) {
	// Splitting the same bytes differently must not collide.
	a := DeriveAddress("t", []byte("ab"), []byte("c"))
	b := DeriveAddress("t", []byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b)
}

func TestParseAddress_Roundtrip(t *testing.T) {
	addr := WalletAddress("bob")

	parsed, err := ParseAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)
}

func TestParseAddress_Invalid(t *testing.T) {
	_, err := ParseAddress("not-an-address")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = ParseAddress("abcd")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
