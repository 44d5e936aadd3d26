package keeper

import (
	"context"
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Ezejesse/InsureNet/x/insurance/types"
)

// PurchasePolicy buys coverage against an active pool. The premium is charged
// up front into the pool escrow. A repeat purchase on the same pool replaces
// the holder's prior policy outright.
func (k Keeper) PurchasePolicy(ctx context.Context, msg types.MsgPurchasePolicy) (*types.Policy, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	pool, err := k.GetPool(ctx, msg.PoolID)
	if err != nil {
		return nil, err
	}
	if !pool.Active {
		return nil, types.ErrPoolInactive.Wrapf("pool %d", pool.ID)
	}

	premium := msg.CoverageAmount.
		MulRaw(int64(pool.PremiumRateBps)).
		QuoRaw(10_000)
	if !premium.IsPositive() {
		premium = sdkmath.OneInt()
	}

	holder, err := sdk.AccAddressFromBech32(strings.TrimSpace(msg.Holder))
	if err != nil {
		return nil, fmt.Errorf("invalid holder address: %w", err)
	}
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, holder, types.ModuleName, k.coins(premium)); err != nil {
		return nil, types.ErrTransferFailed.Wrap(err.Error())
	}

	height := blockHeight(ctx)
	policy := types.Policy{
		Holder:         strings.TrimSpace(msg.Holder),
		PoolID:         msg.PoolID,
		PremiumPaid:    premium,
		CoverageAmount: msg.CoverageAmount,
		StartHeight:    height,
		EndHeight:      height + msg.DurationBlocks,
		Active:         true,
	}
	if err := k.setPolicy(ctx, policy); err != nil {
		return nil, err
	}

	emitEventIfPossible(ctx, sdk.NewEvent(
		"insurance_policy_purchased",
		sdk.NewAttribute("pool_id", fmt.Sprintf("%d", policy.PoolID)),
		sdk.NewAttribute("holder", policy.Holder),
		sdk.NewAttribute("coverage_amount", policy.CoverageAmount.String()),
		sdk.NewAttribute("premium", premium.String()),
		sdk.NewAttribute("end_height", fmt.Sprintf("%d", policy.EndHeight)),
	))

	return &policy, nil
}

// GetPolicy loads the holder's policy on a pool.
func (k Keeper) GetPolicy(ctx context.Context, holder string, poolID uint64) (*types.Policy, error) {
	raw, err := k.Policies.Get(ctx, types.PolicyKey(strings.TrimSpace(holder), poolID))
	if err != nil {
		return nil, types.ErrPolicyNotFound.Wrapf("holder %s, pool %d", holder, poolID)
	}
	policy, err := decodePolicy(raw)
	if err != nil {
		return nil, err
	}
	return &policy, nil
}
