package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Ezejesse/InsureNet/x/insurance/types"
)

// BankKeeper is the ledger adapter used to move escrowed funds. Transfers are
// all-or-nothing; a returned error means no value moved.
type BankKeeper interface {
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
}

// Keeper owns the pooled-risk insurance state: pools, policies, claims, and
// votes, plus the claim resolution state machine over them.
type Keeper struct {
	cdc          codec.Codec
	storeService store.KVStoreService
	authority    string
	denom        string

	bankKeeper BankKeeper

	Pools      collections.Map[uint64, string]
	Policies   collections.Map[string, string]
	Claims     collections.Map[uint64, string]
	Votes      collections.Map[string, string]
	PoolCount  collections.Item[uint64]
	ClaimCount collections.Item[uint64]
	Params     collections.Item[string]
}

// NewKeeper creates a new insurance keeper. All escrowed value is held in the
// module account and denominated in denom.
func NewKeeper(
	cdc codec.Codec,
	storeService store.KVStoreService,
	bankKeeper BankKeeper,
	authority string,
	denom string,
) Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	return Keeper{
		cdc:          cdc,
		storeService: storeService,
		authority:    authority,
		denom:        denom,
		bankKeeper:   bankKeeper,
		Pools: collections.NewMap(
			sb,
			collections.NewPrefix(types.PoolKeyPrefix),
			"pools",
			collections.Uint64Key,
			collections.StringValue,
		),
		Policies: collections.NewMap(
			sb,
			collections.NewPrefix(types.PolicyKeyPrefix),
			"policies",
			collections.StringKey,
			collections.StringValue,
		),
		Claims: collections.NewMap(
			sb,
			collections.NewPrefix(types.ClaimKeyPrefix),
			"claims",
			collections.Uint64Key,
			collections.StringValue,
		),
		Votes: collections.NewMap(
			sb,
			collections.NewPrefix(types.VoteKeyPrefix),
			"votes",
			collections.StringKey,
			collections.StringValue,
		),
		PoolCount: collections.NewItem(
			sb,
			collections.NewPrefix(types.PoolCountKey),
			"pool_count",
			collections.Uint64Value,
		),
		ClaimCount: collections.NewItem(
			sb,
			collections.NewPrefix(types.ClaimCountKey),
			"claim_count",
			collections.Uint64Value,
		),
		Params: collections.NewItem(
			sb,
			collections.NewPrefix(types.ParamsKey),
			"params",
			collections.StringValue,
		),
	}
}

// GetAuthority returns the keeper authority address.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Denom returns the escrow denomination.
func (k Keeper) Denom() string {
	return k.denom
}

// Logger returns a module-tagged logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	if sdkCtx, ok := unwrapSDKContext(ctx); ok {
		return sdkCtx.Logger().With("module", "x/"+types.ModuleName)
	}
	return log.NewNopLogger()
}

// GetParams returns the module parameters, falling back to defaults when none
// were stored.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	raw, err := k.Params.Get(ctx)
	if err != nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

// SetParams replaces the module parameters. Only the authority may do so.
func (k Keeper) SetParams(ctx context.Context, requester string, params types.Params) error {
	if requester != k.authority {
		return types.ErrUnauthorized.Wrap("only the authority may set params")
	}
	return k.setParams(ctx, params)
}

func (k Keeper) setParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return k.Params.Set(ctx, string(raw))
}

func (k Keeper) nextPoolID(ctx context.Context) (uint64, error) {
	count, err := k.PoolCount.Get(ctx)
	if err != nil {
		count = 0
	}
	count++
	if err := k.PoolCount.Set(ctx, count); err != nil {
		return 0, err
	}
	return count, nil
}

func (k Keeper) nextClaimID(ctx context.Context) (uint64, error) {
	count, err := k.ClaimCount.Get(ctx)
	if err != nil {
		count = 0
	}
	count++
	if err := k.ClaimCount.Set(ctx, count); err != nil {
		return 0, err
	}
	return count, nil
}

func (k Keeper) coins(amount sdkmath.Int) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(k.denom, amount))
}

func (k Keeper) setPool(ctx context.Context, pool types.Pool) error {
	raw, err := json.Marshal(pool)
	if err != nil {
		return err
	}
	return k.Pools.Set(ctx, pool.ID, string(raw))
}

func decodePool(raw string) (types.Pool, error) {
	var pool types.Pool
	if err := json.Unmarshal([]byte(raw), &pool); err != nil {
		return types.Pool{}, fmt.Errorf("decode pool: %w", err)
	}
	return pool, nil
}

func (k Keeper) setPolicy(ctx context.Context, policy types.Policy) error {
	raw, err := json.Marshal(policy)
	if err != nil {
		return err
	}
	return k.Policies.Set(ctx, types.PolicyKey(policy.Holder, policy.PoolID), string(raw))
}

func decodePolicy(raw string) (types.Policy, error) {
	var policy types.Policy
	if err := json.Unmarshal([]byte(raw), &policy); err != nil {
		return types.Policy{}, fmt.Errorf("decode policy: %w", err)
	}
	return policy, nil
}

func (k Keeper) setClaim(ctx context.Context, claim types.Claim) error {
	raw, err := json.Marshal(claim)
	if err != nil {
		return err
	}
	return k.Claims.Set(ctx, claim.ID, string(raw))
}

func decodeClaim(raw string) (types.Claim, error) {
	var claim types.Claim
	if err := json.Unmarshal([]byte(raw), &claim); err != nil {
		return types.Claim{}, fmt.Errorf("decode claim: %w", err)
	}
	return claim, nil
}

func (k Keeper) setVote(ctx context.Context, vote types.Vote) error {
	raw, err := json.Marshal(vote)
	if err != nil {
		return err
	}
	return k.Votes.Set(ctx, types.VoteKey(vote.ClaimID, vote.Voter), string(raw))
}

func decodeVote(raw string) (types.Vote, error) {
	var vote types.Vote
	if err := json.Unmarshal([]byte(raw), &vote); err != nil {
		return types.Vote{}, fmt.Errorf("decode vote: %w", err)
	}
	return vote, nil
}

func unwrapSDKContext(ctx context.Context) (sdk.Context, bool) {
	if ctx == nil {
		return sdk.Context{}, false
	}
	if sdkCtx, ok := ctx.(sdk.Context); ok {
		return sdkCtx, true
	}
	if val := ctx.Value(sdk.SdkContextKey); val != nil {
		if sdkCtx, ok := val.(sdk.Context); ok {
			return sdkCtx, true
		}
	}
	return sdk.Context{}, false
}

// blockHeight returns the current height, the module's only clock.
func blockHeight(ctx context.Context) int64 {
	if sdkCtx, ok := unwrapSDKContext(ctx); ok {
		return sdkCtx.BlockHeight()
	}
	return 0
}

func emitEventIfPossible(ctx context.Context, event sdk.Event) {
	if sdkCtx, ok := unwrapSDKContext(ctx); ok {
		if em := sdkCtx.EventManager(); em != nil {
			em.EmitEvent(event)
		}
	}
}
