package types

import "fmt"

// GenesisState is the full exported state of the insurance module.
type GenesisState struct {
	Params     Params   `json:"params"`
	PoolCount  uint64   `json:"pool_count"`
	ClaimCount uint64   `json:"claim_count"`
	Pools      []Pool   `json:"pools"`
	Policies   []Policy `json:"policies"`
	Claims     []Claim  `json:"claims"`
	Votes      []Vote   `json:"votes"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:   DefaultParams(),
		Pools:    []Pool{},
		Policies: []Policy{},
		Claims:   []Claim{},
		Votes:    []Vote{},
	}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	poolIDs := make(map[uint64]struct{}, len(gs.Pools))
	for i, pool := range gs.Pools {
		if pool.ID == 0 {
			return fmt.Errorf("pool at index %d has zero id", i)
		}
		if pool.ID > gs.PoolCount {
			return fmt.Errorf("pool %d exceeds pool count %d", pool.ID, gs.PoolCount)
		}
		if _, seen := poolIDs[pool.ID]; seen {
			return fmt.Errorf("duplicate pool id %d", pool.ID)
		}
		if pool.TotalStaked.IsNil() || pool.TotalStaked.IsNegative() {
			return fmt.Errorf("pool %d has negative total staked", pool.ID)
		}
		poolIDs[pool.ID] = struct{}{}
	}

	for i, policy := range gs.Policies {
		if policy.Holder == "" {
			return fmt.Errorf("policy at index %d missing holder", i)
		}
		if policy.CoverageAmount.IsNil() || !policy.CoverageAmount.IsPositive() {
			return fmt.Errorf("policy at index %d has non-positive coverage", i)
		}
		if _, ok := poolIDs[policy.PoolID]; !ok {
			return fmt.Errorf("policy at index %d references unknown pool %d", i, policy.PoolID)
		}
	}

	claimIDs := make(map[uint64]struct{}, len(gs.Claims))
	for i, claim := range gs.Claims {
		if claim.ID == 0 {
			return fmt.Errorf("claim at index %d has zero id", i)
		}
		if claim.ID > gs.ClaimCount {
			return fmt.Errorf("claim %d exceeds claim count %d", claim.ID, gs.ClaimCount)
		}
		if _, seen := claimIDs[claim.ID]; seen {
			return fmt.Errorf("duplicate claim id %d", claim.ID)
		}
		if !claim.Status.Valid() {
			return fmt.Errorf("claim %d has unknown status %q", claim.ID, claim.Status)
		}
		if claim.Amount.IsNil() || !claim.Amount.IsPositive() {
			return fmt.Errorf("claim %d has non-positive amount", claim.ID)
		}
		claimIDs[claim.ID] = struct{}{}
	}

	voteKeys := make(map[string]struct{}, len(gs.Votes))
	tallies := make(map[uint64][2]uint64, len(gs.Claims))
	for i, vote := range gs.Votes {
		if vote.Voter == "" {
			return fmt.Errorf("vote at index %d missing voter", i)
		}
		if _, ok := claimIDs[vote.ClaimID]; !ok {
			return fmt.Errorf("vote at index %d references unknown claim %d", i, vote.ClaimID)
		}
		key := VoteKey(vote.ClaimID, vote.Voter)
		if _, seen := voteKeys[key]; seen {
			return fmt.Errorf("duplicate vote by %s on claim %d", vote.Voter, vote.ClaimID)
		}
		voteKeys[key] = struct{}{}

		tally := tallies[vote.ClaimID]
		if vote.Approve {
			tally[0]++
		} else {
			tally[1]++
		}
		tallies[vote.ClaimID] = tally
	}

	for _, claim := range gs.Claims {
		tally := tallies[claim.ID]
		if claim.YesVotes != tally[0] || claim.NoVotes != tally[1] {
			return fmt.Errorf(
				"claim %d tallies (%d yes, %d no) do not match vote records (%d yes, %d no)",
				claim.ID, claim.YesVotes, claim.NoVotes, tally[0], tally[1],
			)
		}
	}

	return nil
}
