// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"

	"github.com/curatelabs/tcr/events"
	"github.com/curatelabs/tcr/reverts"
	"github.com/curatelabs/tcr/tcr"
)

var oneHundred = big.NewInt(100)

// Apply escrows amount from the caller and opens an application for the
// listing. The listing must not be whitelisted and must not already have an
// application; amount must cover the configured minimum deposit.
func (r *Registry) Apply(caller tcr.Address, id tcr.Bytes32, amount *big.Int, data string, now uint64) error {
	logger.Debug("apply", "listing", id, "applicant", caller, "amount", amount)
	return r.exec("apply", func(ev *events.Journal) error {
		listing, err := r.getListing(id)
		if err != nil {
			return err
		}
		if listing.Whitelisted {
			return reverts.Precondition("listing %v already whitelisted", id)
		}
		if listing.AppWasMade() {
			return reverts.Precondition("listing %v already has an application", id)
		}
		minDeposit, err := r.params.Get(tcr.KeyMinDeposit)
		if err != nil {
			return err
		}
		if amount.Cmp(minDeposit) < 0 {
			return reverts.Precondition("deposit %v below minimum %v", amount, minDeposit)
		}
		applyStageLen, err := r.params.Get(tcr.KeyApplyStageLen)
		if err != nil {
			return err
		}

		expiry := now + applyStageLen.Uint64()
		if err := r.setListing(id, &Listing{
			Owner:             caller,
			ApplicationExpiry: expiry,
			UnstakedDeposit:   new(big.Int).Set(amount),
		}); err != nil {
			return err
		}
		if err := r.escrow(caller, amount); err != nil {
			return err
		}
		ev.Append(events.Application{
			ListingID:  id,
			Deposit:    new(big.Int).Set(amount),
			AppEndDate: expiry,
			Data:       data,
			Applicant:  caller,
		})
		return nil
	})
}

// Deposit increases the unstaked deposit of the caller's listing.
func (r *Registry) Deposit(caller tcr.Address, id tcr.Bytes32, amount *big.Int) error {
	logger.Debug("deposit", "listing", id, "owner", caller, "amount", amount)
	return r.exec("deposit", func(ev *events.Journal) error {
		listing, err := r.getListing(id)
		if err != nil {
			return err
		}
		if listing.IsEmpty() || listing.Owner != caller {
			return reverts.Precondition("caller %v does not own listing %v", caller, id)
		}
		if amount.Sign() < 0 {
			return reverts.Precondition("negative deposit amount")
		}
		listing.UnstakedDeposit = new(big.Int).Add(listing.UnstakedDeposit, amount)
		if err := r.setListing(id, listing); err != nil {
			return err
		}
		if err := r.escrow(caller, amount); err != nil {
			return err
		}
		ev.Append(events.Deposit{
			ListingID: id,
			Added:     new(big.Int).Set(amount),
			NewTotal:  new(big.Int).Set(listing.UnstakedDeposit),
			Owner:     caller,
		})
		return nil
	})
}

// Withdraw returns part of the unstaked deposit to the owner. It fails if it
// would bring the deposit below the configured minimum.
func (r *Registry) Withdraw(caller tcr.Address, id tcr.Bytes32, amount *big.Int) error {
	logger.Debug("withdraw", "listing", id, "owner", caller, "amount", amount)
	return r.exec("withdraw", func(ev *events.Journal) error {
		listing, err := r.getListing(id)
		if err != nil {
			return err
		}
		if listing.IsEmpty() || listing.Owner != caller {
			return reverts.Precondition("caller %v does not own listing %v", caller, id)
		}
		if amount.Sign() < 0 {
			return reverts.Precondition("negative withdrawal amount")
		}
		if amount.Cmp(listing.UnstakedDeposit) > 0 {
			return reverts.Precondition("withdrawal %v exceeds unstaked deposit %v", amount, listing.UnstakedDeposit)
		}
		minDeposit, err := r.params.Get(tcr.KeyMinDeposit)
		if err != nil {
			return err
		}
		remaining := new(big.Int).Sub(listing.UnstakedDeposit, amount)
		if remaining.Cmp(minDeposit) < 0 {
			return reverts.Precondition("withdrawal would leave deposit %v below minimum %v", remaining, minDeposit)
		}
		listing.UnstakedDeposit = remaining
		if err := r.setListing(id, listing); err != nil {
			return err
		}
		if err := r.payout(caller, amount); err != nil {
			return err
		}
		ev.Append(events.Withdrawal{
			ListingID: id,
			Withdrew:  new(big.Int).Set(amount),
			NewTotal:  new(big.Int).Set(remaining),
			Owner:     caller,
		})
		return nil
	})
}

// Exit removes the caller's whitelisted listing and returns its full
// unstaked deposit. Not allowed while a challenge is open.
func (r *Registry) Exit(caller tcr.Address, id tcr.Bytes32) error {
	logger.Debug("exit", "listing", id, "owner", caller)
	return r.exec("exit", func(ev *events.Journal) error {
		listing, err := r.getListing(id)
		if err != nil {
			return err
		}
		if listing.IsEmpty() || listing.Owner != caller {
			return reverts.Precondition("caller %v does not own listing %v", caller, id)
		}
		if !listing.Whitelisted {
			return reverts.Precondition("listing %v not whitelisted", id)
		}
		open, err := r.hasOpenChallenge(listing)
		if err != nil {
			return err
		}
		if open {
			return reverts.Precondition("listing %v has an open challenge", id)
		}
		if err := r.resetListing(id, listing); err != nil {
			return err
		}
		ev.Append(events.ListingWithdrawn{ListingID: id})
		return nil
	})
}

// Challenge opens a challenge against the listing, locking the minimum
// deposit out of both sides. Returns the new challenge id.
//
// If the listing's unstaked deposit has fallen below the minimum deposit the
// listing is removed instead and zero is returned with no error; this is a
// punitive auto-delist, not a failure.
func (r *Registry) Challenge(caller tcr.Address, id tcr.Bytes32, data string, now uint64) (challengeID uint64, err error) {
	logger.Debug("challenge", "listing", id, "challenger", caller)
	err = r.exec("challenge", func(ev *events.Journal) error {
		listing, err := r.getListing(id)
		if err != nil {
			return err
		}
		if !listing.AppWasMade() && !listing.Whitelisted {
			return reverts.Precondition("listing %v has neither application nor whitelist status", id)
		}
		open, err := r.hasOpenChallenge(listing)
		if err != nil {
			return err
		}
		if open {
			return reverts.Precondition("listing %v already has an open challenge", id)
		}
		minDeposit, err := r.params.Get(tcr.KeyMinDeposit)
		if err != nil {
			return err
		}

		if listing.UnstakedDeposit.Cmp(minDeposit) < 0 {
			// touch-and-remove
			if err := r.resetListing(id, listing); err != nil {
				return err
			}
			ev.Append(events.TouchAndRemoved{ListingID: id})
			return nil
		}

		quorum, err := r.params.Get(tcr.KeyVoteQuorum)
		if err != nil {
			return err
		}
		commitLen, err := r.params.Get(tcr.KeyCommitStageLen)
		if err != nil {
			return err
		}
		revealLen, err := r.params.Get(tcr.KeyRevealStageLen)
		if err != nil {
			return err
		}
		dispensationPct, err := r.params.Get(tcr.KeyDispensationPct)
		if err != nil {
			return err
		}

		pollID, err := r.voting.StartPoll(quorum, commitLen, revealLen)
		if err != nil {
			return err
		}

		// loser's stake minus the dispensation share kept by the winner
		rewardPool := new(big.Int).Sub(oneHundred, dispensationPct)
		rewardPool.Mul(rewardPool, minDeposit)
		rewardPool.Quo(rewardPool, oneHundred)

		if err := r.challenges.Create(pollID, caller, minDeposit, rewardPool); err != nil {
			return err
		}
		listing.ChallengeID = pollID
		listing.UnstakedDeposit = new(big.Int).Sub(listing.UnstakedDeposit, minDeposit)
		if err := r.setListing(id, listing); err != nil {
			return err
		}
		if err := r.escrow(caller, minDeposit); err != nil {
			return err
		}

		commitEnd, revealEnd, err := r.voting.PollSchedule(pollID)
		if err != nil {
			return err
		}
		ev.Append(events.Challenge{
			ListingID:     id,
			ChallengeID:   pollID,
			Data:          data,
			CommitEndDate: commitEnd,
			RevealEndDate: revealEnd,
			Challenger:    caller,
		})
		challengeID = pollID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return challengeID, nil
}

// UpdateStatus advances the listing's lifecycle: promotes it if eligible,
// else resolves its ended challenge, else fails.
func (r *Registry) UpdateStatus(id tcr.Bytes32, now uint64) error {
	logger.Debug("update status", "listing", id)
	return r.exec("update_status", func(ev *events.Journal) error {
		whitelistable, err := r.canBeWhitelisted(id, now)
		if err != nil {
			return err
		}
		if whitelistable {
			return r.whitelistApplication(id, ev)
		}
		listing, err := r.getListing(id)
		if err != nil {
			return err
		}
		open, err := r.hasOpenChallenge(listing)
		if err != nil {
			return err
		}
		if open {
			ended, err := r.voting.PollEnded(listing.ChallengeID)
			if err != nil {
				return err
			}
			if ended {
				return r.resolveChallenge(id, listing, now, ev)
			}
			return reverts.NotEligible("poll %d for listing %v has not ended", listing.ChallengeID, id)
		}
		return reverts.Precondition("nothing to update for listing %v", id)
	})
}

// UpdateStatuses applies UpdateStatus to each listing independently. Element
// i of the result is the outcome for ids[i]; one failure does not affect the
// others.
func (r *Registry) UpdateStatuses(ids []tcr.Bytes32, now uint64) []error {
	errs := make([]error, len(ids))
	for i, id := range ids {
		errs[i] = r.UpdateStatus(id, now)
	}
	return errs
}

// CanBeWhitelisted returns whether the listing is eligible for promotion.
func (r *Registry) CanBeWhitelisted(id tcr.Bytes32, now uint64) (bool, error) {
	return r.canBeWhitelisted(id, now)
}

// IsWhitelisted returns whether the listing has been promoted.
func (r *Registry) IsWhitelisted(id tcr.Bytes32) (bool, error) {
	listing, err := r.getListing(id)
	if err != nil {
		return false, err
	}
	return listing.Whitelisted, nil
}

// AppWasMade returns whether an application exists for the listing.
func (r *Registry) AppWasMade(id tcr.Bytes32) (bool, error) {
	listing, err := r.getListing(id)
	if err != nil {
		return false, err
	}
	return listing.AppWasMade(), nil
}

// ChallengeExists returns whether the listing has an open challenge.
func (r *Registry) ChallengeExists(id tcr.Bytes32) (bool, error) {
	listing, err := r.getListing(id)
	if err != nil {
		return false, err
	}
	return r.hasOpenChallenge(listing)
}

// ChallengeCanBeResolved returns whether the listing's open challenge has an
// ended poll. Fails if there is no open challenge at all.
func (r *Registry) ChallengeCanBeResolved(id tcr.Bytes32) (bool, error) {
	listing, err := r.getListing(id)
	if err != nil {
		return false, err
	}
	open, err := r.hasOpenChallenge(listing)
	if err != nil {
		return false, err
	}
	if !open {
		return false, reverts.Precondition("listing %v has no open challenge", id)
	}
	return r.voting.PollEnded(listing.ChallengeID)
}

// Listing returns the listing record, an empty record if it does not exist.
func (r *Registry) Listing(id tcr.Bytes32) (*Listing, error) {
	return r.getListing(id)
}

func (r *Registry) hasOpenChallenge(listing *Listing) (bool, error) {
	if listing.ChallengeID == 0 {
		return false, nil
	}
	c, err := r.challenges.Get(listing.ChallengeID)
	if err != nil {
		return false, err
	}
	return !c.Resolved, nil
}

func (r *Registry) canBeWhitelisted(id tcr.Bytes32, now uint64) (bool, error) {
	listing, err := r.getListing(id)
	if err != nil {
		return false, err
	}
	if !listing.AppWasMade() || listing.Whitelisted || now <= listing.ApplicationExpiry {
		return false, nil
	}
	open, err := r.hasOpenChallenge(listing)
	if err != nil {
		return false, err
	}
	return !open, nil
}

func (r *Registry) whitelistApplication(id tcr.Bytes32, ev *events.Journal) error {
	listing, err := r.getListing(id)
	if err != nil {
		return err
	}
	if !listing.Whitelisted {
		listing.Whitelisted = true
		if err := r.setListing(id, listing); err != nil {
			return err
		}
		ev.Append(events.ApplicationWhitelisted{ListingID: id})
	}
	return nil
}

// resetListing deletes the listing and returns any remaining unstaked
// deposit to its owner. The record is cleared before the refund transfer.
func (r *Registry) resetListing(id tcr.Bytes32, listing *Listing) error {
	owner := listing.Owner
	refund := new(big.Int).Set(listing.UnstakedDeposit)
	if err := r.listings.Delete(id); err != nil {
		return err
	}
	return r.payout(owner, refund)
}

// resolveChallenge finalizes the listing's ended challenge: it locks the
// outcome into the challenge ledger, tallies the winning weight into the
// current epoch and settles the listing either way.
func (r *Registry) resolveChallenge(id tcr.Bytes32, listing *Listing, now uint64, ev *events.Journal) error {
	challengeID := listing.ChallengeID

	winningTokens, err := r.voting.WinningTokens(challengeID)
	if err != nil {
		return err
	}
	epoch, err := r.bank.CurrentEpoch(now)
	if err != nil {
		return err
	}
	c, err := r.challenges.Resolve(challengeID, winningTokens, epoch)
	if err != nil {
		return err
	}
	if err := r.bank.AddChallengeTokens(epoch, winningTokens); err != nil {
		return err
	}
	reward := c.Reward()

	passed, err := r.voting.IsPassed(challengeID)
	if err != nil {
		return err
	}
	if passed {
		// listing's side won, the challenge failed
		if err := r.whitelistApplication(id, ev); err != nil {
			return err
		}
		listing, err := r.getListing(id)
		if err != nil {
			return err
		}
		listing.UnstakedDeposit = new(big.Int).Add(listing.UnstakedDeposit, reward)
		if err := r.setListing(id, listing); err != nil {
			return err
		}
		ev.Append(events.ChallengeFailed{
			ListingID:   id,
			ChallengeID: challengeID,
			RewardPool:  new(big.Int).Set(c.RewardPool),
			TotalTokens: new(big.Int).Set(c.TotalTokens),
		})
		logger.Info("challenge failed", "listing", id, "challenge", challengeID, "reward", reward)
		return nil
	}

	// challenge succeeded or nobody voted
	if listing.Whitelisted {
		ev.Append(events.ListingRemoved{ListingID: id})
	} else {
		ev.Append(events.ApplicationRemoved{ListingID: id})
	}
	if err := r.resetListing(id, listing); err != nil {
		return err
	}
	if err := r.payout(c.Challenger, reward); err != nil {
		return err
	}
	ev.Append(events.ChallengeSucceeded{
		ListingID:   id,
		ChallengeID: challengeID,
		RewardPool:  new(big.Int).Set(c.RewardPool),
		TotalTokens: new(big.Int).Set(c.TotalTokens),
	})
	logger.Info("challenge succeeded", "listing", id, "challenge", challengeID, "reward", reward)
	return nil
}
