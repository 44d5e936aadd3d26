package keeper

import (
	"context"
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Ezejesse/InsureNet/x/insurance/types"
)

// CreatePool opens a new coverage pool administered by the message creator.
func (k Keeper) CreatePool(ctx context.Context, msg types.MsgCreatePool) (*types.Pool, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	id, err := k.nextPoolID(ctx)
	if err != nil {
		return nil, err
	}

	pool := types.Pool{
		ID:              id,
		Name:            strings.TrimSpace(msg.Name),
		CoverageType:    strings.TrimSpace(msg.CoverageType),
		TotalStaked:     sdkmath.ZeroInt(),
		PremiumRateBps:  msg.PremiumRateBps,
		MinStake:        msg.MinStake,
		Active:          true,
		CreatedAtHeight: blockHeight(ctx),
		Admin:           strings.TrimSpace(msg.Creator),
	}
	if err := k.setPool(ctx, pool); err != nil {
		return nil, err
	}

	emitEventIfPossible(ctx, sdk.NewEvent(
		"insurance_pool_created",
		sdk.NewAttribute("pool_id", fmt.Sprintf("%d", pool.ID)),
		sdk.NewAttribute("name", pool.Name),
		sdk.NewAttribute("coverage_type", pool.CoverageType),
		sdk.NewAttribute("admin", pool.Admin),
	))

	return &pool, nil
}

// StakeToPool moves the staker's funds into the pool escrow and credits the
// pool's total stake.
func (k Keeper) StakeToPool(ctx context.Context, msg types.MsgStakeToPool) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}

	pool, err := k.GetPool(ctx, msg.PoolID)
	if err != nil {
		return err
	}
	if !pool.Active {
		return types.ErrPoolInactive.Wrapf("pool %d", pool.ID)
	}
	if msg.Amount.LT(pool.MinStake) {
		return types.ErrInvalidAmount.Wrapf(
			"stake %s is below pool minimum %s", msg.Amount, pool.MinStake,
		)
	}

	staker, err := sdk.AccAddressFromBech32(strings.TrimSpace(msg.Staker))
	if err != nil {
		return fmt.Errorf("invalid staker address: %w", err)
	}
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, staker, types.ModuleName, k.coins(msg.Amount)); err != nil {
		return types.ErrTransferFailed.Wrap(err.Error())
	}

	pool.TotalStaked = pool.TotalStaked.Add(msg.Amount)
	if err := k.setPool(ctx, *pool); err != nil {
		return err
	}

	emitEventIfPossible(ctx, sdk.NewEvent(
		"insurance_pool_staked",
		sdk.NewAttribute("pool_id", fmt.Sprintf("%d", pool.ID)),
		sdk.NewAttribute("staker", msg.Staker),
		sdk.NewAttribute("amount", msg.Amount.String()),
		sdk.NewAttribute("total_staked", pool.TotalStaked.String()),
	))

	return nil
}

// SetPoolActive flips a pool's active flag. Only the pool admin may do so; an
// inactive pool accepts no stakes or purchases but existing claims still
// resolve against its escrow.
func (k Keeper) SetPoolActive(ctx context.Context, requester string, poolID uint64, active bool) error {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(requester) != pool.Admin {
		return types.ErrUnauthorized.Wrapf("pool %d is administered by %s", pool.ID, pool.Admin)
	}

	pool.Active = active
	return k.setPool(ctx, *pool)
}

// GetPool loads a single pool.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (*types.Pool, error) {
	raw, err := k.Pools.Get(ctx, poolID)
	if err != nil {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	pool, err := decodePool(raw)
	if err != nil {
		return nil, err
	}
	return &pool, nil
}
