package keeper

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Ezejesse/InsureNet/x/insurance/types"
)

// FileClaim opens a claim against the claimer's in-force policy. This is the
// sole admission point into the resolution state machine: the policy snapshot
// is checked here and later policy changes do not retroactively invalidate
// the claim.
func (k Keeper) FileClaim(ctx context.Context, msg types.MsgFileClaim) (*types.Claim, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	if _, err := k.GetPool(ctx, msg.PoolID); err != nil {
		return nil, err
	}
	policy, err := k.GetPolicy(ctx, msg.Claimer, msg.PoolID)
	if err != nil {
		return nil, err
	}

	height := blockHeight(ctx)
	if !policy.InForce(height) {
		return nil, types.ErrPolicyNotFound.Wrapf(
			"policy for holder %s on pool %d is not in force", msg.Claimer, msg.PoolID,
		)
	}
	if msg.Amount.GT(policy.CoverageAmount) {
		return nil, types.ErrInvalidAmount.Wrapf(
			"claim %s exceeds coverage %s", msg.Amount, policy.CoverageAmount,
		)
	}

	id, err := k.nextClaimID(ctx)
	if err != nil {
		return nil, err
	}

	params := k.GetParams(ctx)
	claim := types.Claim{
		ID:              id,
		Claimer:         strings.TrimSpace(msg.Claimer),
		PoolID:          msg.PoolID,
		Amount:          msg.Amount,
		Description:     strings.TrimSpace(msg.Description),
		EvidenceHash:    strings.TrimSpace(msg.EvidenceHash),
		CreatedAtHeight: height,
		ExpiresAtHeight: height + params.ClaimDurationBlocks,
		Status:          types.ClaimStatusPending,
	}
	if err := k.setClaim(ctx, claim); err != nil {
		return nil, err
	}

	emitEventIfPossible(ctx, sdk.NewEvent(
		"insurance_claim_filed",
		sdk.NewAttribute("claim_id", fmt.Sprintf("%d", claim.ID)),
		sdk.NewAttribute("pool_id", fmt.Sprintf("%d", claim.PoolID)),
		sdk.NewAttribute("claimer", claim.Claimer),
		sdk.NewAttribute("amount", claim.Amount.String()),
		sdk.NewAttribute("expires_at_height", fmt.Sprintf("%d", claim.ExpiresAtHeight)),
	))

	return &claim, nil
}

// VoteOnClaim records a stakeholder ballot and bumps the claim tally. Voting
// immediately triggers the majority resolution check, so the returned status
// reflects any finalization the ballot caused.
func (k Keeper) VoteOnClaim(ctx context.Context, msg types.MsgVoteOnClaim) (types.ClaimStatus, error) {
	if err := msg.ValidateBasic(); err != nil {
		return "", err
	}

	claim, err := k.GetClaim(ctx, msg.ClaimID)
	if err != nil {
		return "", err
	}
	if claim.Status.Terminal() {
		return "", types.ErrClaimNotPending.Wrapf("claim %d is %s", claim.ID, claim.Status)
	}

	height := blockHeight(ctx)
	if claim.Expired(height) {
		return "", types.ErrClaimExpired.Wrapf(
			"claim %d expired at height %d", claim.ID, claim.ExpiresAtHeight,
		)
	}

	voter := strings.TrimSpace(msg.Voter)
	voted, err := k.HasVoted(ctx, msg.ClaimID, voter)
	if err != nil {
		return "", err
	}
	if voted {
		return "", types.ErrAlreadyVoted.Wrapf("voter %s, claim %d", voter, claim.ID)
	}

	vote := types.Vote{
		ClaimID:       claim.ID,
		Voter:         voter,
		Approve:       msg.Approve,
		VotedAtHeight: height,
	}
	if err := k.setVote(ctx, vote); err != nil {
		return "", err
	}

	if msg.Approve {
		claim.YesVotes++
	} else {
		claim.NoVotes++
	}
	if err := k.setClaim(ctx, *claim); err != nil {
		return "", err
	}

	emitEventIfPossible(ctx, sdk.NewEvent(
		"insurance_claim_voted",
		sdk.NewAttribute("claim_id", fmt.Sprintf("%d", claim.ID)),
		sdk.NewAttribute("voter", voter),
		sdk.NewAttribute("approve", fmt.Sprintf("%t", msg.Approve)),
		sdk.NewAttribute("yes_votes", fmt.Sprintf("%d", claim.YesVotes)),
		sdk.NewAttribute("no_votes", fmt.Sprintf("%d", claim.NoVotes)),
	))

	return k.ProcessClaimIfReady(ctx, claim.ID)
}

// ProcessClaimIfReady runs the simple majority resolution path. Below the
// vote threshold it is a successful no-op; on a claim that already left the
// pending state it is also a no-op and reports the current status, so repeat
// calls can never re-transfer funds or flip a terminal status.
func (k Keeper) ProcessClaimIfReady(ctx context.Context, claimID uint64) (types.ClaimStatus, error) {
	claim, err := k.GetClaim(ctx, claimID)
	if err != nil {
		return "", err
	}
	if claim.Status != types.ClaimStatusPending {
		return claim.Status, nil
	}

	params := k.GetParams(ctx)
	if claim.TotalVotes() < params.MinVotesRequired {
		return types.ClaimStatusPending, nil
	}

	return k.finalizeClaim(ctx, claim, types.ResolutionMajority)
}

// ProcessClaimWithRiskAssessment runs the risk-weighted resolution path. It
// only acts on a pending claim that has either expired or reached the vote
// threshold: high fraud scores park the claim in manual review, low scores
// fall back to the majority decision. An approval on this path also consumes
// the authorizing policy.
func (k Keeper) ProcessClaimWithRiskAssessment(ctx context.Context, claimID uint64) (types.ClaimStatus, error) {
	claim, err := k.GetClaim(ctx, claimID)
	if err != nil {
		return "", err
	}
	if _, err := k.GetPool(ctx, claim.PoolID); err != nil {
		return "", err
	}
	policy, err := k.GetPolicy(ctx, claim.Claimer, claim.PoolID)
	if err != nil {
		return "", err
	}
	if claim.Status != types.ClaimStatusPending {
		return "", types.ErrClaimNotPending.Wrapf("claim %d is %s", claim.ID, claim.Status)
	}

	height := blockHeight(ctx)
	params := k.GetParams(ctx)
	if !claim.Expired(height) && claim.TotalVotes() < params.MinVotesRequired {
		return "", types.ErrClaimNotReady.Wrapf(
			"claim %d has %d of %d votes and does not expire until height %d",
			claim.ID, claim.TotalVotes(), params.MinVotesRequired, claim.ExpiresAtHeight,
		)
	}

	score := fraudScore(*claim, *policy, height, params)
	if score >= params.FraudScoreThreshold {
		claim.Status = types.ClaimStatusManualReview
		if err := k.setClaim(ctx, *claim); err != nil {
			return "", err
		}

		emitEventIfPossible(ctx, sdk.NewEvent(
			"insurance_claim_escalated",
			sdk.NewAttribute("claim_id", fmt.Sprintf("%d", claim.ID)),
			sdk.NewAttribute("fraud_score", fmt.Sprintf("%d", score)),
			sdk.NewAttribute("threshold", fmt.Sprintf("%d", params.FraudScoreThreshold)),
		))
		k.Logger(ctx).Info(
			"claim escalated to manual review",
			"claim_id", claim.ID, "fraud_score", score,
		)

		return types.ClaimStatusManualReview, nil
	}

	return k.finalizeClaim(ctx, claim, types.ResolutionRiskWeighted)
}

// finalizeClaim is the single commit path shared by both resolution
// strategies. An approval pays the claimed amount out of the pool escrow
// before any status write, so a failed transfer aborts the whole operation
// with the claim still pending. Only the risk-weighted strategy consumes the
// policy on approval; the majority path deliberately leaves it active.
func (k Keeper) finalizeClaim(
	ctx context.Context,
	claim *types.Claim,
	strategy types.ResolutionStrategy,
) (types.ClaimStatus, error) {
	height := blockHeight(ctx)
	approved := claim.YesVotes > claim.NoVotes

	if !approved {
		claim.Status = types.ClaimStatusRejected
		claim.ResolvedAtHeight = height
		claim.Resolution = strategy
		if err := k.setClaim(ctx, *claim); err != nil {
			return "", err
		}

		emitEventIfPossible(ctx, sdk.NewEvent(
			"insurance_claim_rejected",
			sdk.NewAttribute("claim_id", fmt.Sprintf("%d", claim.ID)),
			sdk.NewAttribute("strategy", string(strategy)),
			sdk.NewAttribute("yes_votes", fmt.Sprintf("%d", claim.YesVotes)),
			sdk.NewAttribute("no_votes", fmt.Sprintf("%d", claim.NoVotes)),
		))
		k.Logger(ctx).Info("claim rejected", "claim_id", claim.ID, "strategy", strategy)

		return types.ClaimStatusRejected, nil
	}

	pool, err := k.GetPool(ctx, claim.PoolID)
	if err != nil {
		return "", err
	}
	if pool.TotalStaked.LT(claim.Amount) {
		return "", types.ErrTransferFailed.Wrapf(
			"pool %d escrow %s cannot cover claim %s", pool.ID, pool.TotalStaked, claim.Amount,
		)
	}

	claimer, err := sdk.AccAddressFromBech32(claim.Claimer)
	if err != nil {
		return "", fmt.Errorf("invalid claimer address: %w", err)
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, claimer, k.coins(claim.Amount)); err != nil {
		return "", types.ErrTransferFailed.Wrap(err.Error())
	}

	pool.TotalStaked = pool.TotalStaked.Sub(claim.Amount)
	if err := k.setPool(ctx, *pool); err != nil {
		return "", err
	}

	if strategy == types.ResolutionRiskWeighted {
		policy, err := k.GetPolicy(ctx, claim.Claimer, claim.PoolID)
		if err != nil {
			return "", err
		}
		policy.Active = false
		if err := k.setPolicy(ctx, *policy); err != nil {
			return "", err
		}
	}

	claim.Status = types.ClaimStatusApproved
	claim.ResolvedAtHeight = height
	claim.Resolution = strategy
	if err := k.setClaim(ctx, *claim); err != nil {
		return "", err
	}

	emitEventIfPossible(ctx, sdk.NewEvent(
		"insurance_claim_approved",
		sdk.NewAttribute("claim_id", fmt.Sprintf("%d", claim.ID)),
		sdk.NewAttribute("strategy", string(strategy)),
		sdk.NewAttribute("claimer", claim.Claimer),
		sdk.NewAttribute("amount", claim.Amount.String()),
	))
	k.Logger(ctx).Info(
		"claim approved and paid",
		"claim_id", claim.ID, "strategy", strategy, "amount", claim.Amount.String(),
	)

	return types.ClaimStatusApproved, nil
}

// GetClaim loads a single claim.
func (k Keeper) GetClaim(ctx context.Context, claimID uint64) (*types.Claim, error) {
	raw, err := k.Claims.Get(ctx, claimID)
	if err != nil {
		return nil, types.ErrClaimNotFound.Wrapf("claim %d", claimID)
	}
	claim, err := decodeClaim(raw)
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// HasVoted reports whether the voter already cast a ballot on the claim.
func (k Keeper) HasVoted(ctx context.Context, claimID uint64, voter string) (bool, error) {
	return k.Votes.Has(ctx, types.VoteKey(claimID, strings.TrimSpace(voter)))
}

// GetVote loads a single ballot.
func (k Keeper) GetVote(ctx context.Context, claimID uint64, voter string) (*types.Vote, error) {
	raw, err := k.Votes.Get(ctx, types.VoteKey(claimID, strings.TrimSpace(voter)))
	if err != nil {
		return nil, types.ErrVoteNotFound.Wrapf("voter %s, claim %d", voter, claimID)
	}
	vote, err := decodeVote(raw)
	if err != nil {
		return nil, err
	}
	return &vote, nil
}
