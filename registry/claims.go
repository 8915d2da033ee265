// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"

	"github.com/curatelabs/tcr/events"
	"github.com/curatelabs/tcr/registry/bank"
	"github.com/curatelabs/tcr/registry/challenge"
	"github.com/curatelabs/tcr/reverts"
	"github.com/curatelabs/tcr/tcr"
)

// ClaimReward pays the voter their proportional share of the challenge's
// reward pool and tallies their weight into the challenge's epoch. Each voter
// may claim a given challenge at most once.
func (r *Registry) ClaimReward(voter tcr.Address, challengeID uint64, proof []byte) error {
	logger.Debug("claim reward", "challenge", challengeID, "voter", voter)
	return r.exec("claim_reward", func(ev *events.Journal) error {
		weight, err := r.voting.PassingTokens(voter, challengeID, proof)
		if err != nil {
			return err
		}
		c, err := r.challenges.Get(challengeID)
		if err != nil {
			return err
		}
		reward, err := r.challenges.ApplyClaim(challengeID, voter, weight)
		if err != nil {
			return err
		}
		if err := r.bank.AddVoterTokens(c.Epoch, voter, weight); err != nil {
			return err
		}
		if err := r.payout(voter, reward); err != nil {
			return err
		}
		ev.Append(events.RewardClaimed{
			ChallengeID: challengeID,
			Reward:      reward,
			Voter:       voter,
		})
		logger.Info("reward claimed", "challenge", challengeID, "voter", voter, "reward", reward)
		return nil
	})
}

// ClaimRewards processes each claim independently. Element i of the result
// is the outcome for claims[i]; one failure does not affect the others.
func (r *Registry) ClaimRewards(voter tcr.Address, claims []RewardClaim) []error {
	errs := make([]error, len(claims))
	for i, claim := range claims {
		errs[i] = r.ClaimReward(voter, claim.ChallengeID, claim.Proof)
	}
	return errs
}

// VoterReward previews what the voter's claim against the challenge would
// pay right now, without mutating anything.
func (r *Registry) VoterReward(voter tcr.Address, challengeID uint64, proof []byte) (*big.Int, error) {
	weight, err := r.voting.PassingTokens(voter, challengeID, proof)
	if err != nil {
		return nil, err
	}
	return r.challenges.Preview(challengeID, weight)
}

// ChallengeRecord returns the challenge bookkeeping record.
func (r *Registry) ChallengeRecord(challengeID uint64) (*challenge.Challenge, error) {
	return r.challenges.Get(challengeID)
}

// CurrentEpochNumber derives the epoch number for the given time.
func (r *Registry) CurrentEpochNumber(now uint64) (uint64, error) {
	return r.bank.CurrentEpoch(now)
}

// Epoch returns the epoch record.
func (r *Registry) Epoch(epoch uint64) (*bank.Epoch, error) {
	return r.bank.GetEpoch(epoch)
}

// ResolveEpochInflation locks the inflation subsidy for a strictly past
// epoch and moves it from the reserve into the registry's custody. Calling
// it again for an already-resolved epoch is a no-op.
func (r *Registry) ResolveEpochInflation(caller tcr.Address, epoch uint64, now uint64) error {
	logger.Debug("resolve epoch", "epoch", epoch, "resolver", caller)
	return r.exec("resolve_epoch", func(ev *events.Journal) error {
		return r.resolveEpoch(caller, epoch, now, ev)
	})
}

// ClaimInflationReward pays the voter their proportional share of the
// epoch's inflation subsidy, resolving the epoch first if nobody has yet.
func (r *Registry) ClaimInflationReward(voter tcr.Address, epoch uint64, now uint64) error {
	logger.Debug("claim inflation", "epoch", epoch, "voter", voter)
	return r.exec("claim_inflation", func(ev *events.Journal) error {
		if err := r.resolveEpoch(voter, epoch, now, ev); err != nil {
			return err
		}
		claimed, err := r.bank.HasClaimed(epoch, voter)
		if err != nil {
			return err
		}
		if claimed {
			return reverts.AlreadyFinalized("voter %v already claimed inflation for epoch %d", voter, epoch)
		}
		share, err := r.bank.VoterShare(epoch, voter)
		if err != nil {
			return err
		}
		if share.Sign() == 0 {
			return reverts.Precondition("voter %v has no inflation share in epoch %d", voter, epoch)
		}
		if err := r.bank.MarkClaimed(epoch, voter); err != nil {
			return err
		}
		if err := r.payout(voter, share); err != nil {
			return err
		}
		e, err := r.bank.GetEpoch(epoch)
		if err != nil {
			return err
		}
		ev.Append(events.InflationRewardsClaimed{
			Epoch:      epoch,
			Tokens:     e.Tokens,
			Inflation:  e.Inflation,
			VoterShare: share,
			Voter:      voter,
		})
		logger.Info("inflation claimed", "epoch", epoch, "voter", voter, "share", share)
		return nil
	})
}

// EpochInflationVoterReward previews the voter's share of the epoch's locked
// inflation. Only meaningful once the epoch is resolved.
func (r *Registry) EpochInflationVoterReward(voter tcr.Address, epoch uint64) (*big.Int, error) {
	return r.bank.VoterShare(epoch, voter)
}

// resolveEpoch computes and locks the inflation subsidy for a strictly past
// epoch. An already-resolved epoch is left untouched; the subsidy moves out
// of the reserve exactly once.
func (r *Registry) resolveEpoch(caller tcr.Address, epoch uint64, now uint64, ev *events.Journal) error {
	current, err := r.bank.CurrentEpoch(now)
	if err != nil {
		return err
	}
	if epoch >= current {
		return reverts.NotEligible("epoch %d not yet past", epoch)
	}
	e, err := r.bank.GetEpoch(epoch)
	if err != nil {
		return err
	}
	if e.Resolved {
		return nil
	}

	reserve, err := r.bank.Reserve()
	if err != nil {
		return err
	}
	denominator, err := r.bank.InflationDenominator()
	if err != nil {
		return err
	}
	balance, err := r.token.BalanceOf(reserve)
	if err != nil {
		return err
	}
	inflation := new(big.Int).Quo(balance, denominator)

	if err := r.bank.MarkResolved(epoch, inflation); err != nil {
		return err
	}
	ok, err := r.token.Transfer(reserve, r.addr, inflation)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.TransferRejected("ledger declined subsidy transfer of %v from reserve", inflation)
	}
	ev.Append(events.EpochResolved{
		Epoch:     epoch,
		Tokens:    e.Tokens,
		Inflation: inflation,
		Resolver:  caller,
	})
	logger.Info("epoch resolved", "epoch", epoch, "inflation", inflation)
	return nil
}
