package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/Ezejesse/InsureNet/x/insurance/types"
)

func TestGenesisRoundTrip(t *testing.T) {
	k, ctx, _ := setupKeeper(t)

	claim := fileTestClaim(t, k, ctx, 100_000, 100_000, 50_000)
	castVote(t, k, ctx, claim.ID, "voter-1", true)
	castVote(t, k, ctx, claim.ID, "voter-2", false)

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Len(t, exported.Pools, 1)
	require.Len(t, exported.Policies, 1)
	require.Len(t, exported.Claims, 1)
	require.Len(t, exported.Votes, 2)
	require.Equal(t, uint64(1), exported.PoolCount)
	require.Equal(t, uint64(1), exported.ClaimCount)

	// Restore into a fresh keeper and compare the round trip.
	k2, ctx2, _ := setupKeeper(t)
	require.NoError(t, k2.InitGenesis(ctx2, exported))

	restored, err := k2.ExportGenesis(ctx2)
	require.NoError(t, err)
	require.Equal(t, exported, restored)

	// The restored state machine picks up where the first left off.
	loaded, err := k2.GetClaim(ctx2, claim.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), loaded.YesVotes)
	require.Equal(t, uint64(1), loaded.NoVotes)
}

func TestInitGenesisRejectsInvalidState(t *testing.T) {
	k, ctx, _ := setupKeeper(t)

	gs := types.DefaultGenesis()
	gs.PoolCount = 1
	gs.Pools = []types.Pool{{
		ID:          1,
		Name:        "downtime",
		TotalStaked: sdkmath.NewInt(-5),
		MinStake:    sdkmath.NewInt(1),
	}}

	require.Error(t, k.InitGenesis(ctx, gs))
}
