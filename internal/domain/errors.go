package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNetworkMismatch is returned when the connected chain is not the configured one
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrUnknownTag is returned when a deploy tag selects no driver
	ErrUnknownTag = errors.New("unknown deploy tag")

	// ErrImplementationChanged is returned when the proxy implementation moved
	// between the read and the upgrade request
	ErrImplementationChanged = errors.New("implementation changed")

	// ErrInvalidUpgradeTarget is returned when an upgrade names a record that
	// is not an implementation
	ErrInvalidUpgradeTarget = errors.New("invalid upgrade target")

	// ErrAuthorization is matched by reverts raised by access control
	ErrAuthorization = errors.New("authorization error")

	// ErrInsufficientBalance is matched by reverts raised by an overdrawn transfer
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAlreadyInitialized is matched by reverts raised by a replayed initializer
	ErrAlreadyInitialized = errors.New("already initialized")
)

// Revert reasons raised by the token suite contracts.
const (
	ReasonNotOwner           = "Ownable: caller is not the owner"
	ReasonExceedsBalance     = "BEP20: transfer amount exceeds balance"
	ReasonExceedsAllowance   = "BEP20: transfer amount exceeds allowance"
	ReasonAllowanceBelowZero = "BEP20: decreased allowance below zero"
	ReasonBurnExceedsBalance = "BEP20: burn amount exceeds balance"
	ReasonTransferFromZero   = "BEP20: transfer from the zero address"
	ReasonTransferToZero     = "BEP20: transfer to the zero address"
	ReasonMintToZero         = "BEP20: mint to the zero address"
	ReasonApproveFromZero    = "BEP20: approve from the zero address"
	ReasonApproveToZero      = "BEP20: approve to the zero address"
	ReasonNotMintable        = "this token is not mintable"
	ReasonAlreadyInitialized = "Initializable: contract is already initialized"
	ReasonBlacklisted        = "Sender is backlisted"
	ReasonAdminFallback      = "TransparentUpgradeableProxy: admin cannot fallback to proxy target"
	ReasonNotContract        = "ERC1967: new implementation is not a contract"
	ReasonNewOwnerZero       = "Ownable: new owner is the zero address"
	ReasonNewAdminZero       = "ERC1967: new admin is the zero address"
)

// RevertError is a rejected contract call. Reason is the verbatim revert
// string reported by the contract, empty when the revert carried no reason.
type RevertError struct {
	Reason string
}

func (e *RevertError) Error() string {
	if e.Reason == "" {
		return "execution reverted"
	}
	return fmt.Sprintf("execution reverted: %s", e.Reason)
}

// Is lets callers match a revert against the error kind sentinels.
func (e *RevertError) Is(target error) bool {
	switch target {
	case ErrAuthorization:
		return e.Reason == ReasonNotOwner ||
			e.Reason == ReasonBlacklisted ||
			e.Reason == ReasonAdminFallback
	case ErrInsufficientBalance:
		return e.Reason == ReasonExceedsBalance || e.Reason == ReasonBurnExceedsBalance
	case ErrAlreadyInitialized:
		return e.Reason == ReasonAlreadyInitialized
	}
	return false
}

// Revert builds a RevertError with the given reason.
func Revert(reason string) error {
	return &RevertError{Reason: reason}
}

// RevertReason extracts the revert reason from err, if it is a revert.
func RevertReason(err error) (string, bool) {
	var revert *RevertError
	if errors.As(err, &revert) {
		return revert.Reason, true
	}
	return "", false
}

// DeploymentNotFoundError is returned when a deployment record is missing
type DeploymentNotFoundError struct {
	Network string
	Name    string
}

func (e DeploymentNotFoundError) Error() string {
	return fmt.Sprintf("no deployment found for %s on network %s", e.Name, e.Network)
}

func (e DeploymentNotFoundError) Unwrap() error {
	return ErrNotFound
}

// UnknownTagsErr lists tags that matched no deploy driver
type UnknownTagsErr struct {
	Tags      []string
	Available []string
}

func (e UnknownTagsErr) Error() string {
	return fmt.Sprintf("unknown deploy tag(s) %s (available: %s)",
		strings.Join(e.Tags, ", "), strings.Join(e.Available, ", "))
}

func (e UnknownTagsErr) Unwrap() error {
	return ErrUnknownTag
}
