package ledger

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
)

// Address identifies an actor or an external wallet on the ledger. Actor
// addresses are derived deterministically from the behavior template and its
// init payload, so they can be computed before anything is deployed.
type Address [32]byte

var ZeroAddress Address

var ErrInvalidAddress = errors.New("invalid address")

// DeriveAddress computes the address for a behavior template and its
// canonical init payload. The same inputs always yield the same address.
func DeriveAddress(template string, init ...[]byte) Address {
	h := sha256.New()
	h.Write([]byte(template))
	h.Write([]byte{0})
	for _, part := range init {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(part)))
		h.Write(n[:])
		h.Write(part)
	}
	var addr Address
	h.Sum(addr[:0])
	return addr
}

// WalletAddress builds an external wallet address from an arbitrary key,
// typically an account name or public key. Wallets have balances but no
// behavior.
func WalletAddress(key string) Address {
	return DeriveAddress("wallet.v1", []byte(key))
}

func (a Address) IsZero() bool { return a == ZeroAddress }

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Short returns a truncated form for log fields.
func (a Address) Short() string {
	return hex.EncodeToString(a[:4])
}

func ParseAddress(s string) (Address, error) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return ZeroAddress, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	var addr Address
	copy(addr[:], raw)
	return addr, nil
}

// Uint64Bytes is a helper for canonical init payload encoding of counters.
func Uint64Bytes(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}
