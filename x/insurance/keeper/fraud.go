package keeper

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/Ezejesse/InsureNet/x/insurance/types"
)

const (
	// fraudBaseScore is the floor every claim starts from.
	fraudBaseScore uint32 = 50

	// youngPolicyPenalty applies when the policy is younger than the maturity
	// window; fresh coverage followed by a quick claim is a fraud signal.
	youngPolicyPenalty uint32 = 15

	// nearFullCoveragePenalty applies when the claim takes more than 80% of
	// the policy's coverage.
	nearFullCoveragePenalty uint32 = 25

	// missingEvidencePenalty applies when no evidence fingerprint was supplied.
	missingEvidencePenalty uint32 = 25
)

// Voting confidence contributions, keyed off the current tally shape.
const (
	voteSignalThin          uint32 = 10
	voteSignalSupermajority uint32 = 0
	voteSignalRejection     uint32 = 25
	voteSignalMixed         uint32 = 15
)

// minVoteSignal is the tally size below which voting carries no real signal.
const minVoteSignal uint64 = 3

// CalculateFraudScore computes the risk heuristic for a claim against the
// claimer's current policy record. Higher is riskier.
func (k Keeper) CalculateFraudScore(ctx context.Context, claimID uint64) (uint32, error) {
	claim, err := k.GetClaim(ctx, claimID)
	if err != nil {
		return 0, err
	}
	policy, err := k.GetPolicy(ctx, claim.Claimer, claim.PoolID)
	if err != nil {
		return 0, err
	}
	return fraudScore(*claim, *policy, blockHeight(ctx), k.GetParams(ctx)), nil
}

// fraudScore is the pure scoring function: base plus policy-age, claim-ratio,
// evidence, and vote-signal components.
func fraudScore(claim types.Claim, policy types.Policy, height int64, params types.Params) uint32 {
	score := fraudBaseScore

	if height-policy.StartHeight < params.PolicyMaturityBlocks {
		score += youngPolicyPenalty
	}

	// Integer ratio, claims above 80% of coverage are riskier.
	ratio := claim.Amount.MulRaw(100).Quo(policy.CoverageAmount)
	if ratio.GT(sdkmath.NewInt(80)) {
		score += nearFullCoveragePenalty
	}

	if !claim.HasEvidence() {
		score += missingEvidencePenalty
	}

	return score + votingConfidence(claim.YesVotes, claim.NoVotes)
}

// votingConfidence reads the current tally as a risk signal: too few votes is
// mild risk, a yes supermajority lowers risk, a no supermajority raises it,
// and a split tally sits in between.
func votingConfidence(yes, no uint64) uint32 {
	total := yes + no
	switch {
	case total < minVoteSignal:
		return voteSignalThin
	case yes*2 > total:
		return voteSignalSupermajority
	case no*2 > total:
		return voteSignalRejection
	default:
		return voteSignalMixed
	}
}
