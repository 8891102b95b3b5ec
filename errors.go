package assets

import "errors"

// Errors reported by ledger operations. A failed operation returns exactly
// one of them (possibly wrapped) and leaves the ledger unchanged.
var (
	// ErrBalanceLow means the balance is lower than the requested amount.
	ErrBalanceLow = errors.New("account balance too low")
	// ErrBalanceZero means the account holds nothing of the asset.
	ErrBalanceZero = errors.New("account balance is zero")
	// ErrNoPermission means the caller lacks the role the operation needs.
	ErrNoPermission = errors.New("no permission")
	// ErrUnknown means the asset, metadata or approval does not exist.
	ErrUnknown = errors.New("unknown asset")
	// ErrFrozen means the asset or the account is frozen.
	ErrFrozen = errors.New("frozen")
	// ErrInUse means the asset id is taken.
	ErrInUse = errors.New("asset id in use")
	// ErrBadWitness means the destroy witness understates the live counters.
	ErrBadWitness = errors.New("bad witness")
	// ErrMinBalanceZero means a zero minimum balance was requested.
	ErrMinBalanceZero = errors.New("minimum balance must be non-zero")
	// ErrNoProvider means a non-sufficient asset cannot be held by an
	// account without a provider reference.
	ErrNoProvider = errors.New("no provider reference")
	// ErrBadMetadata means name or symbol exceed the string limit.
	ErrBadMetadata = errors.New("bad metadata")
	// ErrUnapproved means the allowance is missing or too small.
	ErrUnapproved = errors.New("unapproved")
	// ErrWouldDie means the debit would remove an account that must be kept
	// alive.
	ErrWouldDie = errors.New("account would die")

	// ErrOverflow and ErrUnderflow report arithmetic failures.
	ErrOverflow  = errors.New("arithmetic overflow")
	ErrUnderflow = errors.New("arithmetic underflow")

	// ErrBelowMinimum means a new account would be created below the
	// minimum balance.
	ErrBelowMinimum = errors.New("below minimum balance")
	// ErrCannotCreate means the account cannot be created.
	ErrCannotCreate = errors.New("cannot create account")
	// ErrNoFunds means the account does not hold the amount.
	ErrNoFunds = errors.New("no funds")

	// ErrBadOrigin means the origin kind does not match the operation.
	ErrBadOrigin = errors.New("bad origin")
	// ErrConsumerRemaining means the extra data of a live account cannot be
	// deleted.
	ErrConsumerRemaining = errors.New("consumer remaining")
	// ErrAccountGone means a pending extra edit targets an account that no
	// longer exists.
	ErrAccountGone = errors.New("account no longer exists")
)
