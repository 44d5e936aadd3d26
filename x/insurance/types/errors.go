package types

import errorsmod "cosmossdk.io/errors"

var (
	// ErrPoolNotFound signals a reference to a pool that does not exist.
	ErrPoolNotFound = errorsmod.Register(ModuleName, 2, "pool not found")

	// ErrPolicyNotFound signals a missing or lapsed policy for a (holder, pool) pair.
	ErrPolicyNotFound = errorsmod.Register(ModuleName, 3, "policy not found")

	// ErrClaimNotFound signals a reference to a claim that does not exist.
	ErrClaimNotFound = errorsmod.Register(ModuleName, 4, "claim not found")

	// ErrVoteNotFound signals a lookup for a ballot that was never cast.
	ErrVoteNotFound = errorsmod.Register(ModuleName, 5, "vote not found")

	// ErrPoolInactive signals an operation against a deactivated pool.
	ErrPoolInactive = errorsmod.Register(ModuleName, 6, "pool is not active")

	// ErrInvalidAmount signals a non-positive or over-coverage amount.
	ErrInvalidAmount = errorsmod.Register(ModuleName, 7, "invalid amount")

	// ErrAlreadyVoted signals a second ballot from the same voter on a claim.
	ErrAlreadyVoted = errorsmod.Register(ModuleName, 8, "voter already voted on claim")

	// ErrClaimExpired signals a vote cast after the claim's expiry height.
	ErrClaimExpired = errorsmod.Register(ModuleName, 9, "claim voting window has expired")

	// ErrClaimNotPending signals resolution attempted on a claim that already
	// left the pending state.
	ErrClaimNotPending = errorsmod.Register(ModuleName, 10, "claim is not pending")

	// ErrClaimNotReady signals risk-weighted resolution on a claim that is
	// neither expired nor at the vote threshold.
	ErrClaimNotReady = errorsmod.Register(ModuleName, 11, "claim is not ready for resolution")

	// ErrTransferFailed signals that the escrow payout could not be completed.
	ErrTransferFailed = errorsmod.Register(ModuleName, 12, "fund transfer failed")

	// ErrUnauthorized signals an admin-gated operation from the wrong account.
	ErrUnauthorized = errorsmod.Register(ModuleName, 13, "unauthorized")
)
