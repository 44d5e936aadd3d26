package keeper

import (
	"context"
	"sort"

	"github.com/Ezejesse/InsureNet/x/insurance/types"
)

// InitGenesis restores module state from a genesis snapshot.
func (k Keeper) InitGenesis(ctx context.Context, gs *types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}

	if err := k.setParams(ctx, gs.Params); err != nil {
		return err
	}
	if err := k.PoolCount.Set(ctx, gs.PoolCount); err != nil {
		return err
	}
	if err := k.ClaimCount.Set(ctx, gs.ClaimCount); err != nil {
		return err
	}

	for _, pool := range gs.Pools {
		if err := k.setPool(ctx, pool); err != nil {
			return err
		}
	}
	for _, policy := range gs.Policies {
		if err := k.setPolicy(ctx, policy); err != nil {
			return err
		}
	}
	for _, claim := range gs.Claims {
		if err := k.setClaim(ctx, claim); err != nil {
			return err
		}
	}
	for _, vote := range gs.Votes {
		if err := k.setVote(ctx, vote); err != nil {
			return err
		}
	}

	return nil
}

// ExportGenesis exports the full module state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesis()
	gs.Params = k.GetParams(ctx)

	if count, err := k.PoolCount.Get(ctx); err == nil {
		gs.PoolCount = count
	}
	if count, err := k.ClaimCount.Get(ctx); err == nil {
		gs.ClaimCount = count
	}

	err := k.Pools.Walk(ctx, nil, func(_ uint64, raw string) (bool, error) {
		pool, err := decodePool(raw)
		if err != nil {
			return true, err
		}
		gs.Pools = append(gs.Pools, pool)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.Policies.Walk(ctx, nil, func(_ string, raw string) (bool, error) {
		policy, err := decodePolicy(raw)
		if err != nil {
			return true, err
		}
		gs.Policies = append(gs.Policies, policy)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.Claims.Walk(ctx, nil, func(_ uint64, raw string) (bool, error) {
		claim, err := decodeClaim(raw)
		if err != nil {
			return true, err
		}
		gs.Claims = append(gs.Claims, claim)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	err = k.Votes.Walk(ctx, nil, func(_ string, raw string) (bool, error) {
		vote, err := decodeVote(raw)
		if err != nil {
			return true, err
		}
		gs.Votes = append(gs.Votes, vote)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(gs.Pools, func(i, j int) bool { return gs.Pools[i].ID < gs.Pools[j].ID })
	sort.Slice(gs.Claims, func(i, j int) bool { return gs.Claims[i].ID < gs.Claims[j].ID })
	sort.Slice(gs.Votes, func(i, j int) bool {
		if gs.Votes[i].ClaimID != gs.Votes[j].ClaimID {
			return gs.Votes[i].ClaimID < gs.Votes[j].ClaimID
		}
		return gs.Votes[i].Voter < gs.Votes[j].Voter
	})
	sort.Slice(gs.Policies, func(i, j int) bool {
		if gs.Policies[i].PoolID != gs.Policies[j].PoolID {
			return gs.Policies[i].PoolID < gs.Policies[j].PoolID
		}
		return gs.Policies[i].Holder < gs.Policies[j].Holder
	})

	return gs, nil
}
