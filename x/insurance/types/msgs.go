package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgCreatePool opens a new coverage pool administered by the creator.
type MsgCreatePool struct {
	Creator        string      `json:"creator"`
	Name           string      `json:"name"`
	CoverageType   string      `json:"coverage_type"`
	PremiumRateBps uint64      `json:"premium_rate_bps"`
	MinStake       sdkmath.Int `json:"min_stake"`
}

func (m MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(strings.TrimSpace(m.Creator)); err != nil {
		return fmt.Errorf("invalid creator address: %w", err)
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("pool name cannot be empty")
	}
	if strings.TrimSpace(m.CoverageType) == "" {
		return fmt.Errorf("coverage type cannot be empty")
	}
	if m.PremiumRateBps == 0 || m.PremiumRateBps > 10_000 {
		return fmt.Errorf("premium rate must be between 1 and 10000 basis points")
	}
	if m.MinStake.IsNil() || !m.MinStake.IsPositive() {
		return ErrInvalidAmount.Wrap("minimum stake must be positive")
	}
	return nil
}

// MsgStakeToPool adds funds to a pool's escrow.
type MsgStakeToPool struct {
	Staker string      `json:"staker"`
	PoolID uint64      `json:"pool_id"`
	Amount sdkmath.Int `json:"amount"`
}

func (m MsgStakeToPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(strings.TrimSpace(m.Staker)); err != nil {
		return fmt.Errorf("invalid staker address: %w", err)
	}
	if m.Amount.IsNil() || !m.Amount.IsPositive() {
		return ErrInvalidAmount.Wrap("stake amount must be positive")
	}
	return nil
}

// MsgPurchasePolicy buys coverage against a pool for a fixed block window.
type MsgPurchasePolicy struct {
	Holder         string      `json:"holder"`
	PoolID         uint64      `json:"pool_id"`
	CoverageAmount sdkmath.Int `json:"coverage_amount"`
	DurationBlocks int64       `json:"duration_blocks"`
}

func (m MsgPurchasePolicy) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(strings.TrimSpace(m.Holder)); err != nil {
		return fmt.Errorf("invalid holder address: %w", err)
	}
	if m.CoverageAmount.IsNil() || !m.CoverageAmount.IsPositive() {
		return ErrInvalidAmount.Wrap("coverage amount must be positive")
	}
	if m.DurationBlocks <= 0 {
		return fmt.Errorf("policy duration must be positive")
	}
	return nil
}

// MsgFileClaim opens a claim against the caller's policy on a pool.
type MsgFileClaim struct {
	Claimer      string      `json:"claimer"`
	PoolID       uint64      `json:"pool_id"`
	Amount       sdkmath.Int `json:"amount"`
	Description  string      `json:"description"`
	EvidenceHash string      `json:"evidence_hash"`
}

func (m MsgFileClaim) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(strings.TrimSpace(m.Claimer)); err != nil {
		return fmt.Errorf("invalid claimer address: %w", err)
	}
	if m.Amount.IsNil() || !m.Amount.IsPositive() {
		return ErrInvalidAmount.Wrap("claim amount must be positive")
	}
	if strings.TrimSpace(m.Description) == "" {
		return fmt.Errorf("claim description cannot be empty")
	}
	if hash := strings.TrimSpace(m.EvidenceHash); hash != "" {
		raw, err := hex.DecodeString(hash)
		if err != nil {
			return fmt.Errorf("evidence hash must be hex encoded: %w", err)
		}
		if len(raw) != 32 {
			return fmt.Errorf("evidence hash must be 32 bytes (sha256)")
		}
	}
	return nil
}

// MsgVoteOnClaim casts a stakeholder ballot on a pending claim.
type MsgVoteOnClaim struct {
	Voter   string `json:"voter"`
	ClaimID uint64 `json:"claim_id"`
	Approve bool   `json:"approve"`
}

func (m MsgVoteOnClaim) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(strings.TrimSpace(m.Voter)); err != nil {
		return fmt.Errorf("invalid voter address: %w", err)
	}
	return nil
}
