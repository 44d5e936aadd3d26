package types

import (
	"strings"

	sdkmath "cosmossdk.io/math"
)

// ClaimStatus tracks a claim through the resolution state machine.
type ClaimStatus string

const (
	ClaimStatusPending      ClaimStatus = "pending"
	ClaimStatusApproved     ClaimStatus = "approved"
	ClaimStatusRejected     ClaimStatus = "rejected"
	ClaimStatusManualReview ClaimStatus = "manual-review"
)

// Terminal reports whether the status permits no further transitions.
// Manual review is a holding state, not a terminal one.
func (s ClaimStatus) Terminal() bool {
	return s == ClaimStatusApproved || s == ClaimStatusRejected
}

// Valid reports whether the status is one of the recognized states.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected, ClaimStatusManualReview:
		return true
	}
	return false
}

// ResolutionStrategy identifies which entry point finalized a claim.
type ResolutionStrategy string

const (
	ResolutionMajority     ResolutionStrategy = "majority"
	ResolutionRiskWeighted ResolutionStrategy = "risk-weighted"
)

// NoEvidenceHash is the all-zero sha256 fingerprint meaning no evidence was
// supplied with a claim.
const NoEvidenceHash = "0000000000000000000000000000000000000000000000000000000000000000"

// Pool is a shared escrow of staked funds for one coverage type.
type Pool struct {
	ID              uint64      `json:"id"`
	Name            string      `json:"name"`
	CoverageType    string      `json:"coverage_type"`
	TotalStaked     sdkmath.Int `json:"total_staked"`
	PremiumRateBps  uint64      `json:"premium_rate_bps"`
	MinStake        sdkmath.Int `json:"min_stake"`
	Active          bool        `json:"active"`
	CreatedAtHeight int64       `json:"created_at_height"`
	Admin           string      `json:"admin"`
}

// Policy is a holder's coverage contract against one pool.
type Policy struct {
	Holder         string      `json:"holder"`
	PoolID         uint64      `json:"pool_id"`
	PremiumPaid    sdkmath.Int `json:"premium_paid"`
	CoverageAmount sdkmath.Int `json:"coverage_amount"`
	StartHeight    int64       `json:"start_height"`
	EndHeight      int64       `json:"end_height"`
	Active         bool        `json:"active"`
}

// InForce reports whether the policy authorizes claims at the given height.
func (p Policy) InForce(height int64) bool {
	return p.Active && height < p.EndHeight
}

// Claim is a payout request against a policy, pending resolution.
type Claim struct {
	ID               uint64             `json:"id"`
	Claimer          string             `json:"claimer"`
	PoolID           uint64             `json:"pool_id"`
	Amount           sdkmath.Int        `json:"amount"`
	Description      string             `json:"description"`
	EvidenceHash     string             `json:"evidence_hash"`
	CreatedAtHeight  int64              `json:"created_at_height"`
	ExpiresAtHeight  int64              `json:"expires_at_height"`
	Status           ClaimStatus        `json:"status"`
	YesVotes         uint64             `json:"yes_votes"`
	NoVotes          uint64             `json:"no_votes"`
	ResolvedAtHeight int64              `json:"resolved_at_height,omitempty"`
	Resolution       ResolutionStrategy `json:"resolution,omitempty"`
}

// Expired reports whether the voting window has closed at the given height.
func (c Claim) Expired(height int64) bool {
	return height >= c.ExpiresAtHeight
}

// HasEvidence reports whether an evidence fingerprint was supplied.
func (c Claim) HasEvidence() bool {
	h := strings.TrimSpace(c.EvidenceHash)
	return h != "" && h != NoEvidenceHash
}

// TotalVotes returns the number of ballots cast so far.
func (c Claim) TotalVotes() uint64 {
	return c.YesVotes + c.NoVotes
}

// Vote is a single voter's ballot on a claim.
type Vote struct {
	ClaimID       uint64 `json:"claim_id"`
	Voter         string `json:"voter"`
	Approve       bool   `json:"approve"`
	VotedAtHeight int64  `json:"voted_at_height"`
}
