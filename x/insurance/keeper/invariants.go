package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Ezejesse/InsureNet/x/insurance/types"
)

// RegisterInvariants registers all module invariants with the invariant registry.
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "vote-tally-consistency", VoteTallyConsistencyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "claim-status-valid", ClaimStatusInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-stake-non-negative", PoolStakeNonNegativeInvariant(k))
	ir.RegisterRoute(types.ModuleName, "id-sequence-consistency", IDSequenceInvariant(k))
}

// AllInvariants runs all invariants of the insurance module.
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		invariants := []sdk.Invariant{
			VoteTallyConsistencyInvariant(k),
			ClaimStatusInvariant(k),
			PoolStakeNonNegativeInvariant(k),
			IDSequenceInvariant(k),
		}

		for _, inv := range invariants {
			if msg, broken := inv(ctx); broken {
				return msg, broken
			}
		}
		return "", false
	}
}

// VoteTallyConsistencyInvariant checks that every claim's yes/no tallies match
// the stored per-voter ballots exactly.
func VoteTallyConsistencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		type tally struct {
			yes uint64
			no  uint64
		}
		tallies := make(map[uint64]tally)

		err := k.Votes.Walk(ctx, nil, func(_ string, raw string) (bool, error) {
			vote, err := decodeVote(raw)
			if err != nil {
				return true, err
			}
			t := tallies[vote.ClaimID]
			if vote.Approve {
				t.yes++
			} else {
				t.no++
			}
			tallies[vote.ClaimID] = t
			return false, nil
		})
		if err != nil {
			return fmt.Sprintf("failed to walk votes: %v", err), true
		}

		var msg string
		broken := false
		err = k.Claims.Walk(ctx, nil, func(id uint64, raw string) (bool, error) {
			claim, err := decodeClaim(raw)
			if err != nil {
				return true, err
			}
			t := tallies[id]
			if claim.YesVotes != t.yes || claim.NoVotes != t.no {
				broken = true
				msg += fmt.Sprintf(
					"claim %d tallies (%d yes, %d no) do not match ballots (%d yes, %d no)\n",
					id, claim.YesVotes, claim.NoVotes, t.yes, t.no,
				)
			}
			delete(tallies, id)
			return false, nil
		})
		if err != nil {
			return fmt.Sprintf("failed to walk claims: %v", err), true
		}

		for id := range tallies {
			broken = true
			msg += fmt.Sprintf("ballots exist for unknown claim %d\n", id)
		}

		return msg, broken
	}
}

// ClaimStatusInvariant checks that every claim carries a recognized status and
// that terminal claims record how they were resolved.
func ClaimStatusInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		broken := false

		_ = k.Claims.Walk(ctx, nil, func(id uint64, raw string) (bool, error) {
			claim, err := decodeClaim(raw)
			if err != nil {
				broken = true
				msg += fmt.Sprintf("claim %d is undecodable: %v\n", id, err)
				return false, nil
			}
			if !claim.Status.Valid() {
				broken = true
				msg += fmt.Sprintf("claim %d has unknown status %q\n", id, claim.Status)
			}
			if claim.Status.Terminal() {
				if claim.ResolvedAtHeight == 0 || claim.Resolution == "" {
					broken = true
					msg += fmt.Sprintf("terminal claim %d is missing resolution metadata\n", id)
				}
			} else if claim.ResolvedAtHeight != 0 || claim.Resolution != "" {
				broken = true
				msg += fmt.Sprintf("non-terminal claim %d carries resolution metadata\n", id)
			}
			return false, nil
		})

		return msg, broken
	}
}

// PoolStakeNonNegativeInvariant checks that no pool escrow went negative.
func PoolStakeNonNegativeInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		broken := false

		_ = k.Pools.Walk(ctx, nil, func(id uint64, raw string) (bool, error) {
			pool, err := decodePool(raw)
			if err != nil {
				broken = true
				msg += fmt.Sprintf("pool %d is undecodable: %v\n", id, err)
				return false, nil
			}
			if pool.TotalStaked.IsNil() || pool.TotalStaked.IsNegative() {
				broken = true
				msg += fmt.Sprintf("pool %d has negative total staked %s\n", id, pool.TotalStaked)
			}
			return false, nil
		})

		return msg, broken
	}
}

// IDSequenceInvariant checks that no stored pool or claim id exceeds its
// allocator sequence.
func IDSequenceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		broken := false

		poolCount, err := k.PoolCount.Get(ctx)
		if err != nil {
			poolCount = 0
		}
		_ = k.Pools.Walk(ctx, nil, func(id uint64, _ string) (bool, error) {
			if id > poolCount {
				broken = true
				msg += fmt.Sprintf("pool %d exceeds pool count %d\n", id, poolCount)
			}
			return false, nil
		})

		claimCount, err := k.ClaimCount.Get(ctx)
		if err != nil {
			claimCount = 0
		}
		_ = k.Claims.Walk(ctx, nil, func(id uint64, _ string) (bool, error) {
			if id > claimCount {
				broken = true
				msg += fmt.Sprintf("claim %d exceeds claim count %d\n", id, claimCount)
			}
			return false, nil
		})

		return msg, broken
	}
}
