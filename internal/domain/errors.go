package domain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for ledger operations
var (
	// ErrUnauthorized is returned when the caller lacks the role an operation requires
	// (contract owner, client owner, track delegate or track confirmer)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidOwner is returned when the null address is given where an owner is required
	ErrInvalidOwner = errors.New("invalid owner")

	// ErrOwnerConflict is returned when an address already owns a different client
	ErrOwnerConflict = errors.New("owner conflict")

	// ErrAlreadyExists is returned on strict-create paths for a duplicate client or release
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnknownRelease is returned when a checksum is added for a release that is not recorded
	ErrUnknownRelease = errors.New("unknown release")

	// ErrUnknownRequest is returned when confirming or rejecting a request that is not waiting
	ErrUnknownRequest = errors.New("unknown request")

	// ErrRelayFailure is returned when a call forwarded to the registry aborted
	ErrRelayFailure = errors.New("relay failure")

	// ErrInvalidTrack is returned for track zero or an unparseable track
	ErrInvalidTrack = errors.New("invalid track")

	// ErrInvalidClientName is returned when a client name is empty or longer than 32 bytes
	ErrInvalidClientName = errors.New("invalid client name")

	// ErrMalformedCall is returned when a payload cannot be decoded against a known method
	ErrMalformedCall = errors.New("malformed call")

	// ErrNotPayable is returned when value is attached to a call that cannot receive it
	ErrNotPayable = errors.New("not payable")

	// ErrWriteProtection is returned when a read-only call tries to change state
	ErrWriteProtection = errors.New("write protection")

	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")
)

// RevertError reports a call that aborted inside a contract. It unwraps to the cause so
// callers can match the sentinel with errors.Is.
type RevertError struct {
	Contract common.Address
	Method   string
	Err      error
}

func (e *RevertError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("execution reverted in %s: %v", e.Contract.Hex(), e.Err)
	}
	return fmt.Sprintf("execution reverted in %s.%s: %v", e.Contract.Hex(), e.Method, e.Err)
}

func (e *RevertError) Unwrap() error {
	return e.Err
}

// Revert wraps err as a RevertError raised by contract while executing method.
// A nil err yields nil.
func Revert(contract common.Address, method string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*RevertError); ok {
		return err
	}
	return &RevertError{Contract: contract, Method: method, Err: err}
}
