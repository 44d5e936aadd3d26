package types

import "fmt"

const (
	// DefaultMinVotesRequired is the vote threshold for majority resolution.
	DefaultMinVotesRequired uint64 = 3

	// DefaultFraudScoreThreshold is the risk score at or above which a claim
	// is escalated to manual review instead of being auto-resolved.
	DefaultFraudScoreThreshold uint32 = 65

	// DefaultClaimDurationBlocks is the voting window granted to a new claim.
	DefaultClaimDurationBlocks int64 = 144

	// DefaultPolicyMaturityBlocks is the age below which a policy is treated
	// as young (riskier) by the fraud scoring engine.
	DefaultPolicyMaturityBlocks int64 = 1000
)

// Params are the module's resolution tuning knobs.
type Params struct {
	MinVotesRequired     uint64 `json:"min_votes_required"`
	FraudScoreThreshold  uint32 `json:"fraud_score_threshold"`
	ClaimDurationBlocks  int64  `json:"claim_duration_blocks"`
	PolicyMaturityBlocks int64  `json:"policy_maturity_blocks"`
}

// DefaultParams returns the default module parameters.
func DefaultParams() Params {
	return Params{
		MinVotesRequired:     DefaultMinVotesRequired,
		FraudScoreThreshold:  DefaultFraudScoreThreshold,
		ClaimDurationBlocks:  DefaultClaimDurationBlocks,
		PolicyMaturityBlocks: DefaultPolicyMaturityBlocks,
	}
}

// Validate validates the parameters.
func (p Params) Validate() error {
	if p.MinVotesRequired == 0 {
		return fmt.Errorf("min votes required must be positive")
	}
	if p.FraudScoreThreshold == 0 {
		return fmt.Errorf("fraud score threshold must be positive")
	}
	if p.ClaimDurationBlocks <= 0 {
		return fmt.Errorf("claim duration must be positive")
	}
	if p.PolicyMaturityBlocks <= 0 {
		return fmt.Errorf("policy maturity must be positive")
	}
	return nil
}
