package validation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// Common validation errors
var (
	ErrInvalidUUID    = fmt.Errorf("invalid UUID format")
	ErrInvalidAddress = fmt.Errorf("invalid address format")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateAddress checks if a string is a base58-encoded 32-byte Solana
// public key. Both token mints and wallet addresses use this format.
func ValidateAddress(address string) error {
	raw, err := base58.Decode(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	if len(raw) != 32 {
		return fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	return nil
}
