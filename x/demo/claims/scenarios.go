package claims

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/Ezejesse/InsureNet/x/insurance/types"
)

// Scenario is one end-to-end walkthrough over a fresh environment.
type Scenario struct {
	Name        string
	Description string
	Run         func(env *Environment) (*types.Claim, error)
}

// DemoScenarios returns the available walkthroughs.
func DemoScenarios() []Scenario {
	return []Scenario{
		{
			Name: "majority-payout",
			Description: "pool is staked, coverage bought, a documented claim " +
				"gathers a 2-1 majority and pays out",
			Run: runMajorityPayout,
		},
		{
			Name: "fraud-escalation",
			Description: "an undocumented near-full claim on a young policy " +
				"scores high risk and parks in manual review",
			Run: runFraudEscalation,
		},
	}
}

func runMajorityPayout(env *Environment) (*types.Claim, error) {
	k, ctx := env.Keeper, env.Ctx

	pool, err := k.CreatePool(ctx, types.MsgCreatePool{
		Creator:        Addr("pool-admin"),
		Name:           "validator downtime",
		CoverageType:   "downtime",
		PremiumRateBps: 200,
		MinStake:       sdkmath.NewInt(1_000),
	})
	if err != nil {
		return nil, err
	}

	if err := k.StakeToPool(ctx, types.MsgStakeToPool{
		Staker: Addr("staker-1"),
		PoolID: pool.ID,
		Amount: sdkmath.NewInt(200_000),
	}); err != nil {
		return nil, err
	}

	claimer := Addr("operator-7")
	if _, err := k.PurchasePolicy(ctx, types.MsgPurchasePolicy{
		Holder:         claimer,
		PoolID:         pool.ID,
		CoverageAmount: sdkmath.NewInt(100_000),
		DurationBlocks: 14_400,
	}); err != nil {
		return nil, err
	}

	claim, err := k.FileClaim(ctx, types.MsgFileClaim{
		Claimer:      claimer,
		PoolID:       pool.ID,
		Amount:       sdkmath.NewInt(50_000),
		Description:  "node offline for six hours during upgrade window",
		EvidenceHash: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
	})
	if err != nil {
		return nil, err
	}

	for _, ballot := range []struct {
		voter   string
		approve bool
	}{
		{"voter-1", true},
		{"voter-2", true},
		{"voter-3", false},
	} {
		if _, err := k.VoteOnClaim(ctx, types.MsgVoteOnClaim{
			Voter:   Addr(ballot.voter),
			ClaimID: claim.ID,
			Approve: ballot.approve,
		}); err != nil {
			return nil, err
		}
	}

	return k.GetClaim(ctx, claim.ID)
}

func runFraudEscalation(env *Environment) (*types.Claim, error) {
	k, ctx := env.Keeper, env.Ctx

	pool, err := k.CreatePool(ctx, types.MsgCreatePool{
		Creator:        Addr("pool-admin"),
		Name:           "bridge exploits",
		CoverageType:   "exploit",
		PremiumRateBps: 500,
		MinStake:       sdkmath.NewInt(1_000),
	})
	if err != nil {
		return nil, err
	}

	if err := k.StakeToPool(ctx, types.MsgStakeToPool{
		Staker: Addr("staker-1"),
		PoolID: pool.ID,
		Amount: sdkmath.NewInt(500_000),
	}); err != nil {
		return nil, err
	}

	claimer := Addr("fresh-account")
	if _, err := k.PurchasePolicy(ctx, types.MsgPurchasePolicy{
		Holder:         claimer,
		PoolID:         pool.ID,
		CoverageAmount: sdkmath.NewInt(100_000),
		DurationBlocks: 14_400,
	}); err != nil {
		return nil, err
	}

	// No evidence, 85% of coverage, policy minted this block.
	claim, err := k.FileClaim(ctx, types.MsgFileClaim{
		Claimer:     claimer,
		PoolID:      pool.ID,
		Amount:      sdkmath.NewInt(85_000),
		Description: "funds drained",
	})
	if err != nil {
		return nil, err
	}

	score, err := k.CalculateFraudScore(ctx, claim.ID)
	if err != nil {
		return nil, err
	}
	k.Logger(ctx).Info("risk score computed", "claim_id", claim.ID, "score", score)

	// Let the voting window lapse unvoted, then run the automated path.
	expired := env.AtHeight(claim.ExpiresAtHeight)
	if _, err := k.ProcessClaimWithRiskAssessment(expired, claim.ID); err != nil {
		return nil, err
	}

	updated, err := k.GetClaim(ctx, claim.ID)
	if err != nil {
		return nil, err
	}
	if updated.Status != types.ClaimStatusManualReview {
		return nil, fmt.Errorf("expected manual review, got %s", updated.Status)
	}
	return updated, nil
}
