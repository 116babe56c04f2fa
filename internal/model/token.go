package model

import (
	"errors"
	"fmt"
)

// ErrInvalidTokenAddress marks a syntactically invalid mint address. It is
// fatal: no analyzer is invoked for an address that fails validation.
var ErrInvalidTokenAddress = errors.New("invalid token address")

const (
	minAddressLen = 32
	maxAddressLen = 44
)

// base58 alphabet used by Solana addresses. Excludes 0, O, I and l.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var base58Set = func() [256]bool {
	var set [256]bool
	for i := 0; i < len(base58Alphabet); i++ {
		set[base58Alphabet[i]] = true
	}
	return set
}()

// ValidateTokenAddress checks that addr looks like a base58-encoded Solana
// address. It validates shape only; whether the account exists on chain is
// the analyzers' concern.
func ValidateTokenAddress(addr string) error {
	if len(addr) < minAddressLen || len(addr) > maxAddressLen {
		return fmt.Errorf("%w: length %d of %q", ErrInvalidTokenAddress, len(addr), addr)
	}
	for i := 0; i < len(addr); i++ {
		if !base58Set[addr[i]] {
			return fmt.Errorf("%w: character %q in %q", ErrInvalidTokenAddress, addr[i], addr)
		}
	}
	return nil
}
