package types

import "fmt"

const (
	// ModuleName is the insurance module namespace. The module account under
	// this name holds every pool's escrowed stakes and premiums.
	ModuleName = "insurance"

	// StoreKey is the module KV store key.
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key.
	RouterKey = ModuleName
)

var (
	// PoolKeyPrefix stores coverage pools by id.
	PoolKeyPrefix = []byte{0x01}

	// PolicyKeyPrefix stores policies by (holder, pool id).
	PolicyKeyPrefix = []byte{0x02}

	// ClaimKeyPrefix stores claims by id.
	ClaimKeyPrefix = []byte{0x03}

	// VoteKeyPrefix stores claim votes by (claim id, voter).
	VoteKeyPrefix = []byte{0x04}

	// PoolCountKey stores the pool id sequence.
	PoolCountKey = []byte{0x05}

	// ClaimCountKey stores the claim id sequence.
	ClaimCountKey = []byte{0x06}

	// ParamsKey stores the module parameters.
	ParamsKey = []byte{0x07}
)

// PolicyKey builds the composite key for a holder's policy on a pool. A holder
// carries at most one policy per pool, so a repeat purchase lands on the same
// key and overwrites the prior record.
func PolicyKey(holder string, poolID uint64) string {
	return fmt.Sprintf("%s|%d", holder, poolID)
}

// VoteKey builds the composite key for a voter's ballot on a claim.
func VoteKey(claimID uint64, voter string) string {
	return fmt.Sprintf("%d|%s", claimID, voter)
}
