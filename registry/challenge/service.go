// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package challenge implements the challenge ledger: stake and reward-pool
// bookkeeping per challenge, resolution, and per-voter claims with
// at-most-once enforcement.
package challenge

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/curatelabs/tcr/reverts"
	"github.com/curatelabs/tcr/slot"
	"github.com/curatelabs/tcr/tcr"
)

var (
	slotChallenges = tcr.BytesToBytes32([]byte("challenges"))
	slotClaims     = tcr.BytesToBytes32([]byte("challenge-claims"))
)

// Service owns challenge records.
type Service struct {
	challenges *slot.Mapping[key, *Challenge]
	claims     *slot.Mapping[tcr.Bytes32, bool]
}

func New(sctx *slot.Context) *Service {
	return &Service{
		challenges: slot.NewMapping[key, *Challenge](sctx, slotChallenges),
		claims:     slot.NewMapping[tcr.Bytes32, bool](sctx, slotClaims),
	}
}

func claimKey(id uint64, voter tcr.Address) tcr.Bytes32 {
	return tcr.Blake2b(key(id).Bytes(), voter.Bytes())
}

// Get returns the challenge record, an empty record if it does not exist.
func (s *Service) Get(id uint64) (*Challenge, error) {
	c, err := s.challenges.Get(key(id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get challenge")
	}
	return c.normalize(), nil
}

// Create records a new open challenge.
func (s *Service) Create(id uint64, challenger tcr.Address, stake, rewardPool *big.Int) error {
	if id == 0 {
		return reverts.Precondition("challenge id must be nonzero")
	}
	if stake.Sign() <= 0 {
		return reverts.Precondition("challenge stake must be positive")
	}
	existing, err := s.Get(id)
	if err != nil {
		return err
	}
	if !existing.IsEmpty() {
		return reverts.Precondition("challenge %d already exists", id)
	}
	return s.challenges.Set(key(id), &Challenge{
		Challenger:    challenger,
		Stake:         new(big.Int).Set(stake),
		RewardPool:    new(big.Int).Set(rewardPool),
		TotalTokens:   new(big.Int),
		WinningTokens: new(big.Int),
	})
}

// Resolve finalizes the challenge outcome bookkeeping: fixes the winning
// weight, seeds the live claim denominator and pins the resolution epoch.
// A challenge resolves exactly once.
func (s *Service) Resolve(id uint64, winningTokens *big.Int, epoch uint64) (*Challenge, error) {
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, reverts.Precondition("challenge %d does not exist", id)
	}
	if c.Resolved {
		return nil, reverts.AlreadyFinalized("challenge %d already resolved", id)
	}
	c.Resolved = true
	c.WinningTokens = new(big.Int).Set(winningTokens)
	c.TotalTokens = new(big.Int).Set(winningTokens)
	c.Epoch = epoch
	if err := s.challenges.Set(key(id), c); err != nil {
		return nil, err
	}
	return c, nil
}

// HasClaimed returns whether the voter already claimed their reward.
func (s *Service) HasClaimed(id uint64, voter tcr.Address) (bool, error) {
	return s.claims.Get(claimKey(id, voter))
}

// ApplyClaim takes the voter's proportional cut of the remaining reward pool
// and marks the voter claimed. The voter's weight is subtracted from the live
// denominator and the paid reward from the pool, so later claimants keep
// shares proportional to their weight among those remaining.
func (s *Service) ApplyClaim(id uint64, voter tcr.Address, weight *big.Int) (*big.Int, error) {
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, reverts.Precondition("challenge %d does not exist", id)
	}
	if !c.Resolved {
		return nil, reverts.NotEligible("challenge %d not resolved", id)
	}
	claimed, err := s.HasClaimed(id, voter)
	if err != nil {
		return nil, err
	}
	if claimed {
		return nil, reverts.AlreadyFinalized("voter %v already claimed challenge %d", voter, id)
	}
	if c.TotalTokens.Sign() == 0 {
		return nil, reverts.Degenerate("challenge %d has zero claimable tokens", id)
	}
	if weight.Sign() <= 0 || weight.Cmp(c.TotalTokens) > 0 {
		return nil, reverts.Precondition("claim weight out of range for challenge %d", id)
	}

	reward := new(big.Int).Mul(weight, c.RewardPool)
	reward.Quo(reward, c.TotalTokens)

	c.TotalTokens = new(big.Int).Sub(c.TotalTokens, weight)
	c.RewardPool = new(big.Int).Sub(c.RewardPool, reward)
	if err := s.challenges.Set(key(id), c); err != nil {
		return nil, err
	}
	if err := s.claims.Set(claimKey(id, voter), true); err != nil {
		return nil, err
	}
	return reward, nil
}

// Preview computes what a claim of the given weight would pay right now,
// without mutating anything.
func (s *Service) Preview(id uint64, weight *big.Int) (*big.Int, error) {
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !c.Resolved {
		return nil, reverts.NotEligible("challenge %d not resolved", id)
	}
	if c.TotalTokens.Sign() == 0 {
		return nil, reverts.Degenerate("challenge %d has zero claimable tokens", id)
	}
	reward := new(big.Int).Mul(weight, c.RewardPool)
	return reward.Quo(reward, c.TotalTokens), nil
}
