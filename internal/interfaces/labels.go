package interfaces

// The label lookups are backed by static configuration, not on-chain
// inspection. Both are answered by the same registry in production.

// LockVerifier answers whether an address is a known liquidity-lock custodian.
type LockVerifier interface {
	// IsVerifiedLockProgram reports whether programAddress is on the lock allowlist.
	IsVerifiedLockProgram(programAddress string) bool

	// IsBurnAddress reports whether address is a recognized burn sink.
	IsBurnAddress(address string) bool
}

// AddressLabeler resolves informational labels for well-known addresses.
type AddressLabeler interface {
	// LabelFor returns the label for address and whether one is known.
	LabelFor(address string) (string, bool)
}
