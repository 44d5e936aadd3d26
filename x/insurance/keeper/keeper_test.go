package keeper_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	storemetrics "cosmossdk.io/store/metrics"
	"cosmossdk.io/store/rootmulti"
	storetypes "cosmossdk.io/store/types"
	tmproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/Ezejesse/InsureNet/x/insurance/keeper"
	"github.com/Ezejesse/InsureNet/x/insurance/types"
)

const (
	testDenom     = "uinsure"
	testAuthority = "authority"
)

type bankTransfer struct {
	module  string
	account string
	amount  sdk.Coins
}

// mockBankKeeper records escrow movements and can be told to fail payouts.
type mockBankKeeper struct {
	payouts      []bankTransfer
	deposits     []bankTransfer
	failPayouts  bool
	failDeposits bool
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(
	_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins,
) error {
	if m.failPayouts {
		return fmt.Errorf("module escrow has insufficient funds")
	}
	m.payouts = append(m.payouts, bankTransfer{
		module:  senderModule,
		account: recipientAddr.String(),
		amount:  amt,
	})
	return nil
}

func (m *mockBankKeeper) SendCoinsFromAccountToModule(
	_ context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins,
) error {
	if m.failDeposits {
		return fmt.Errorf("account has insufficient funds")
	}
	m.deposits = append(m.deposits, bankTransfer{
		module:  recipientModule,
		account: senderAddr.String(),
		amount:  amt,
	})
	return nil
}

func testAddr(name string) string {
	return sdk.AccAddress([]byte(name)).String()
}

func setupKeeper(t *testing.T) (keeper.Keeper, sdk.Context, *mockBankKeeper) {
	t.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	cms := rootmulti.NewStore(db, log.NewNopLogger(), storemetrics.NoOpMetrics{})
	cms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, nil)
	require.NoError(t, cms.LoadLatestVersion())

	header := tmproto.Header{
		ChainID: "insurenet-test-1",
		Height:  1,
		Time:    time.Unix(1_770_000_000, 0).UTC(),
	}
	ctx := sdk.NewContext(cms, header, false, log.NewNopLogger())

	reg := codectypes.NewInterfaceRegistry()
	std.RegisterInterfaces(reg)
	cdc := codec.NewProtoCodec(reg)

	bank := &mockBankKeeper{}
	k := keeper.NewKeeper(
		cdc,
		runtime.NewKVStoreService(storeKey),
		bank,
		testAuthority,
		testDenom,
	)

	return k, ctx, bank
}

// createFundedPool creates an active pool and stakes the given amount into it.
func createFundedPool(t *testing.T, k keeper.Keeper, ctx sdk.Context, stake int64) *types.Pool {
	t.Helper()

	pool, err := k.CreatePool(ctx, types.MsgCreatePool{
		Creator:        testAddr("pool-admin"),
		Name:           "validator downtime",
		CoverageType:   "downtime",
		PremiumRateBps: 200,
		MinStake:       sdkmath.NewInt(100),
	})
	require.NoError(t, err)

	require.NoError(t, k.StakeToPool(ctx, types.MsgStakeToPool{
		Staker: testAddr("staker-1"),
		PoolID: pool.ID,
		Amount: sdkmath.NewInt(stake),
	}))

	updated, err := k.GetPool(ctx, pool.ID)
	require.NoError(t, err)
	return updated
}

func TestCreatePoolAllocatesSequentialIDs(t *testing.T) {
	k, ctx, _ := setupKeeper(t)

	first, err := k.CreatePool(ctx, types.MsgCreatePool{
		Creator:        testAddr("pool-admin"),
		Name:           "downtime",
		CoverageType:   "downtime",
		PremiumRateBps: 100,
		MinStake:       sdkmath.NewInt(50),
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), first.ID)
	require.True(t, first.Active)
	require.True(t, first.TotalStaked.IsZero())

	second, err := k.CreatePool(ctx, types.MsgCreatePool{
		Creator:        testAddr("pool-admin"),
		Name:           "slashing",
		CoverageType:   "slashing",
		PremiumRateBps: 100,
		MinStake:       sdkmath.NewInt(50),
	})
	require.NoError(t, err)
	require.Equal(t, uint64(2), second.ID)
}

func TestStakeToPoolMovesFundsIntoEscrow(t *testing.T) {
	k, ctx, bank := setupKeeper(t)

	pool := createFundedPool(t, k, ctx, 10_000)
	require.Equal(t, sdkmath.NewInt(10_000), pool.TotalStaked)

	require.Len(t, bank.deposits, 1)
	require.Equal(t, types.ModuleName, bank.deposits[0].module)
	require.Equal(
		t,
		sdk.NewCoins(sdk.NewCoin(testDenom, sdkmath.NewInt(10_000))),
		bank.deposits[0].amount,
	)
}

func TestStakeToPoolRejectsBelowMinimum(t *testing.T) {
	k, ctx, _ := setupKeeper(t)
	pool := createFundedPool(t, k, ctx, 10_000)

	err := k.StakeToPool(ctx, types.MsgStakeToPool{
		Staker: testAddr("staker-2"),
		PoolID: pool.ID,
		Amount: sdkmath.NewInt(10),
	})
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestStakeToPoolRejectsUnknownAndInactivePools(t *testing.T) {
	k, ctx, _ := setupKeeper(t)

	err := k.StakeToPool(ctx, types.MsgStakeToPool{
		Staker: testAddr("staker-1"),
		PoolID: 42,
		Amount: sdkmath.NewInt(500),
	})
	require.ErrorIs(t, err, types.ErrPoolNotFound)

	pool := createFundedPool(t, k, ctx, 10_000)
	require.NoError(t, k.SetPoolActive(ctx, testAddr("pool-admin"), pool.ID, false))

	err = k.StakeToPool(ctx, types.MsgStakeToPool{
		Staker: testAddr("staker-1"),
		PoolID: pool.ID,
		Amount: sdkmath.NewInt(500),
	})
	require.ErrorIs(t, err, types.ErrPoolInactive)
}

func TestSetPoolActiveRequiresAdmin(t *testing.T) {
	k, ctx, _ := setupKeeper(t)
	pool := createFundedPool(t, k, ctx, 10_000)

	err := k.SetPoolActive(ctx, testAddr("not-the-admin"), pool.ID, false)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	loaded, err := k.GetPool(ctx, pool.ID)
	require.NoError(t, err)
	require.True(t, loaded.Active)
}

func TestPurchasePolicyChargesPremiumAndOverwrites(t *testing.T) {
	k, ctx, bank := setupKeeper(t)
	pool := createFundedPool(t, k, ctx, 10_000)

	holder := testAddr("holder-1")
	policy, err := k.PurchasePolicy(ctx, types.MsgPurchasePolicy{
		Holder:         holder,
		PoolID:         pool.ID,
		CoverageAmount: sdkmath.NewInt(100_000),
		DurationBlocks: 14_400,
	})
	require.NoError(t, err)

	// 200 bps of 100,000.
	require.Equal(t, sdkmath.NewInt(2_000), policy.PremiumPaid)
	require.Equal(t, int64(1), policy.StartHeight)
	require.Equal(t, int64(14_401), policy.EndHeight)
	require.True(t, policy.Active)
	require.Len(t, bank.deposits, 2)

	// Second purchase replaces the first record entirely.
	replacement, err := k.PurchasePolicy(ctx, types.MsgPurchasePolicy{
		Holder:         holder,
		PoolID:         pool.ID,
		CoverageAmount: sdkmath.NewInt(5_000),
		DurationBlocks: 100,
	})
	require.NoError(t, err)

	loaded, err := k.GetPolicy(ctx, holder, pool.ID)
	require.NoError(t, err)
	require.Equal(t, replacement.CoverageAmount, loaded.CoverageAmount)
	require.Equal(t, int64(101), loaded.EndHeight)
}

func TestPurchasePolicyRejectsInactivePool(t *testing.T) {
	k, ctx, _ := setupKeeper(t)
	pool := createFundedPool(t, k, ctx, 10_000)
	require.NoError(t, k.SetPoolActive(ctx, testAddr("pool-admin"), pool.ID, false))

	_, err := k.PurchasePolicy(ctx, types.MsgPurchasePolicy{
		Holder:         testAddr("holder-1"),
		PoolID:         pool.ID,
		CoverageAmount: sdkmath.NewInt(1_000),
		DurationBlocks: 100,
	})
	require.ErrorIs(t, err, types.ErrPoolInactive)
}

func TestSetParamsIsAuthorityGated(t *testing.T) {
	k, ctx, _ := setupKeeper(t)

	params := types.DefaultParams()
	params.MinVotesRequired = 5

	err := k.SetParams(ctx, "someone-else", params)
	require.ErrorIs(t, err, types.ErrUnauthorized)
	require.Equal(t, types.DefaultParams(), k.GetParams(ctx))

	require.NoError(t, k.SetParams(ctx, testAuthority, params))
	require.Equal(t, uint64(5), k.GetParams(ctx).MinVotesRequired)
}
