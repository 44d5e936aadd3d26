package claims

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/log"
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

	"github.com/Ezejesse/InsureNet/x/insurance/keeper"
	"github.com/Ezejesse/InsureNet/x/insurance/types"
)

// DemoDenom is the escrow denomination used by the walkthroughs.
const DemoDenom = "uinsure"

// recordingBank is an in-memory ledger adapter that records every escrow
// movement so the walkthrough can print them.
type recordingBank struct {
	Movements []string
}

func (b *recordingBank) SendCoinsFromModuleToAccount(
	_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins,
) error {
	b.Movements = append(b.Movements,
		fmt.Sprintf("%s -> %s: %s", senderModule, recipientAddr, amt))
	return nil
}

func (b *recordingBank) SendCoinsFromAccountToModule(
	_ context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins,
) error {
	b.Movements = append(b.Movements,
		fmt.Sprintf("%s -> %s: %s", senderAddr, recipientModule, amt))
	return nil
}

// Environment is a self-contained keeper over an in-memory store, used by the
// demo scenarios exactly the way the keeper tests build theirs.
type Environment struct {
	Keeper keeper.Keeper
	Ctx    sdk.Context
	Bank   *recordingBank
}

// NewEnvironment builds a fresh in-memory environment.
func NewEnvironment(logger log.Logger) (*Environment, error) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	cms := rootmulti.NewStore(db, log.NewNopLogger(), storemetrics.NoOpMetrics{})
	cms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, nil)
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}

	header := tmproto.Header{
		ChainID: "insurenet-demo-1",
		Height:  1,
		Time:    time.Unix(1_770_000_000, 0).UTC(),
	}
	ctx := sdk.NewContext(cms, header, false, logger)

	reg := codectypes.NewInterfaceRegistry()
	std.RegisterInterfaces(reg)
	cdc := codec.NewProtoCodec(reg)

	bank := &recordingBank{}
	k := keeper.NewKeeper(
		cdc,
		runtime.NewKVStoreService(storeKey),
		bank,
		"demo-authority",
		DemoDenom,
	)

	return &Environment{Keeper: k, Ctx: ctx, Bank: bank}, nil
}

// AtHeight returns a context positioned at the given block height.
func (e *Environment) AtHeight(height int64) sdk.Context {
	return e.Ctx.WithBlockHeight(height)
}

// Addr derives a stable demo address from a label.
func Addr(label string) string {
	return sdk.AccAddress([]byte(label)).String()
}
