package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/Ezejesse/InsureNet/x/insurance/types"
)

const evidenceHash = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

func TestFraudScoreComponents(t *testing.T) {
	k, ctx, _ := setupKeeper(t)

	// Raise the vote threshold so ballots never trigger resolution while the
	// scoring engine reads different tally shapes.
	require.NoError(t, k.SetParams(ctx, testAuthority, types.Params{
		MinVotesRequired:     100,
		FraudScoreThreshold:  types.DefaultFraudScoreThreshold,
		ClaimDurationBlocks:  types.DefaultClaimDurationBlocks,
		PolicyMaturityBlocks: types.DefaultPolicyMaturityBlocks,
	}))

	pool := createFundedPool(t, k, ctx, 1_000_000)
	claimer := testAddr("claimer-1")
	_, err := k.PurchasePolicy(ctx, types.MsgPurchasePolicy{
		Holder:         claimer,
		PoolID:         pool.ID,
		CoverageAmount: sdkmath.NewInt(100_000),
		DurationBlocks: 100_000,
	})
	require.NoError(t, err)

	cases := []struct {
		name     string
		amount   int64
		evidence string
		yes      []string
		no       []string
		ageDelta int64
		want     uint32
	}{
		{
			// 50 base + 15 young + 10 thin votes.
			name:     "documented modest claim on young policy",
			amount:   20_000,
			evidence: evidenceHash,
			want:     75,
		},
		{
			// 50 base + 15 young + 25 ratio + 25 evidence + 10 thin votes.
			name:   "everything risky at once",
			amount: 85_000,
			want:   125,
		},
		{
			// 50 base + 10 thin votes: the policy has matured.
			name:     "mature documented claim",
			amount:   20_000,
			evidence: evidenceHash,
			ageDelta: types.DefaultPolicyMaturityBlocks,
			want:     60,
		},
		{
			// Supermajority approval zeroes the vote component.
			name:     "yes supermajority",
			amount:   20_000,
			evidence: evidenceHash,
			yes:      []string{"v1", "v2"},
			no:       []string{"v3"},
			ageDelta: types.DefaultPolicyMaturityBlocks,
			want:     50,
		},
		{
			// Supermajority rejection adds 25.
			name:     "no supermajority",
			amount:   20_000,
			evidence: evidenceHash,
			yes:      []string{"v1"},
			no:       []string{"v2", "v3"},
			ageDelta: types.DefaultPolicyMaturityBlocks,
			want:     75,
		},
		{
			// An even split adds 15.
			name:     "mixed signal",
			amount:   20_000,
			evidence: evidenceHash,
			yes:      []string{"v1", "v2"},
			no:       []string{"v3", "v4"},
			ageDelta: types.DefaultPolicyMaturityBlocks,
			want:     65,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scoreCtx := ctx.WithBlockHeight(ctx.BlockHeight() + tc.ageDelta)

			claim, err := k.FileClaim(scoreCtx, types.MsgFileClaim{
				Claimer:      claimer,
				PoolID:       pool.ID,
				Amount:       sdkmath.NewInt(tc.amount),
				Description:  "incident",
				EvidenceHash: tc.evidence,
			})
			require.NoError(t, err)

			for _, voter := range tc.yes {
				_, err := k.VoteOnClaim(scoreCtx, types.MsgVoteOnClaim{
					Voter: testAddr(voter), ClaimID: claim.ID, Approve: true,
				})
				require.NoError(t, err)
			}
			for _, voter := range tc.no {
				_, err := k.VoteOnClaim(scoreCtx, types.MsgVoteOnClaim{
					Voter: testAddr(voter), ClaimID: claim.ID, Approve: false,
				})
				require.NoError(t, err)
			}

			score, err := k.CalculateFraudScore(scoreCtx, claim.ID)
			require.NoError(t, err)
			require.Equal(t, tc.want, score)
		})
	}
}

func TestFraudScoreAllZeroEvidenceCountsAsMissing(t *testing.T) {
	k, ctx, _ := setupKeeper(t)

	pool := createFundedPool(t, k, ctx, 1_000_000)
	claimer := testAddr("claimer-1")
	_, err := k.PurchasePolicy(ctx, types.MsgPurchasePolicy{
		Holder:         claimer,
		PoolID:         pool.ID,
		CoverageAmount: sdkmath.NewInt(100_000),
		DurationBlocks: 100_000,
	})
	require.NoError(t, err)

	claim, err := k.FileClaim(ctx, types.MsgFileClaim{
		Claimer:      claimer,
		PoolID:       pool.ID,
		Amount:       sdkmath.NewInt(20_000),
		Description:  "incident",
		EvidenceHash: types.NoEvidenceHash,
	})
	require.NoError(t, err)

	// 50 base + 15 young + 25 missing evidence + 10 thin votes.
	score, err := k.CalculateFraudScore(ctx, claim.ID)
	require.NoError(t, err)
	require.Equal(t, uint32(100), score)
}

func TestFraudScoreRequiresClaimAndPolicy(t *testing.T) {
	k, ctx, _ := setupKeeper(t)

	_, err := k.CalculateFraudScore(ctx, 42)
	require.ErrorIs(t, err, types.ErrClaimNotFound)
}
