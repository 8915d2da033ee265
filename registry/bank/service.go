// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bank implements the epoch bank: time-bucketed aggregation of
// winning voting weight and the once-per-epoch inflation subsidy.
package bank

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/curatelabs/tcr/reverts"
	"github.com/curatelabs/tcr/slot"
	"github.com/curatelabs/tcr/tcr"
)

var (
	slotEpochs          = tcr.BytesToBytes32([]byte("epochs"))
	slotVoterTokens     = tcr.BytesToBytes32([]byte("epoch-voter-tokens"))
	slotInflationClaims = tcr.BytesToBytes32([]byte("epoch-inflation-claims"))
	// epoch configuration, bound once at registry initialization
	slotBirthDate            = tcr.BytesToBytes32([]byte("epoch-birth-date"))
	slotEpochDuration        = tcr.BytesToBytes32([]byte("epoch-duration"))
	slotInflationDenominator = tcr.BytesToBytes32([]byte("inflation-denominator"))
	slotReserve              = tcr.BytesToBytes32([]byte("inflation-reserve"))
)

// Service owns epoch records. Tallies may only be mutated while an epoch is
// unresolved; resolution locks the subsidy.
type Service struct {
	epochs      *slot.Mapping[epochKey, *Epoch]
	voterTokens *slot.Mapping[tcr.Bytes32, *big.Int]
	claims      *slot.Mapping[tcr.Bytes32, bool]

	birthDate   *slot.Uint256
	duration    *slot.Uint256
	denominator *slot.Uint256
	reserve     *slot.Address
}

func New(sctx *slot.Context) *Service {
	return &Service{
		epochs:      slot.NewMapping[epochKey, *Epoch](sctx, slotEpochs),
		voterTokens: slot.NewMapping[tcr.Bytes32, *big.Int](sctx, slotVoterTokens),
		claims:      slot.NewMapping[tcr.Bytes32, bool](sctx, slotInflationClaims),
		birthDate:   slot.NewUint256(sctx, slotBirthDate),
		duration:    slot.NewUint256(sctx, slotEpochDuration),
		denominator: slot.NewUint256(sctx, slotInflationDenominator),
		reserve:     slot.NewAddress(sctx, slotReserve),
	}
}

func voterKey(epoch uint64, voter tcr.Address) tcr.Bytes32 {
	return tcr.Blake2b(epochKey(epoch).Bytes(), voter.Bytes())
}

// SetConfig binds the epoch configuration.
func (s *Service) SetConfig(birthDate, duration uint64, denominator *big.Int, reserve tcr.Address) error {
	if duration == 0 {
		return reverts.Precondition("epoch duration must be positive")
	}
	if denominator == nil || denominator.Sign() <= 0 {
		return reverts.Precondition("inflation denominator must be positive")
	}
	if err := s.birthDate.Set(new(big.Int).SetUint64(birthDate)); err != nil {
		return err
	}
	if err := s.duration.Set(new(big.Int).SetUint64(duration)); err != nil {
		return err
	}
	if err := s.denominator.Set(denominator); err != nil {
		return err
	}
	s.reserve.Set(reserve)
	return nil
}

// Reserve returns the subsidy custodian account.
func (s *Service) Reserve() (tcr.Address, error) {
	return s.reserve.Get()
}

// InflationDenominator returns the configured inflation divisor.
func (s *Service) InflationDenominator() (*big.Int, error) {
	return s.denominator.Get()
}

// CurrentEpoch derives the epoch number for the given time. It is a pure
// function of elapsed time since the birth date, never stored.
func (s *Service) CurrentEpoch(now uint64) (uint64, error) {
	duration, err := s.duration.Get()
	if err != nil {
		return 0, err
	}
	if duration.Sign() == 0 {
		return 0, reverts.Precondition("epoch bank not configured")
	}
	birth, err := s.birthDate.Get()
	if err != nil {
		return 0, err
	}
	if birth.Uint64() > now {
		return 0, nil
	}
	return (now - birth.Uint64()) / duration.Uint64(), nil
}

// GetEpoch returns the epoch record, a zero record if untouched.
func (s *Service) GetEpoch(epoch uint64) (*Epoch, error) {
	e, err := s.epochs.Get(epochKey(epoch))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get epoch")
	}
	return e.normalize(), nil
}

// AddChallengeTokens adds the winning-side weight of a resolved challenge to
// the epoch's aggregate tally.
func (s *Service) AddChallengeTokens(epoch uint64, weight *big.Int) error {
	e, err := s.GetEpoch(epoch)
	if err != nil {
		return err
	}
	if e.Resolved {
		return reverts.AlreadyFinalized("epoch %d already resolved", epoch)
	}
	e.Tokens = new(big.Int).Add(e.Tokens, weight)
	return s.epochs.Set(epochKey(epoch), e)
}

// AddVoterTokens adds weight to the voter's cumulative tally for the epoch.
func (s *Service) AddVoterTokens(epoch uint64, voter tcr.Address, weight *big.Int) error {
	e, err := s.GetEpoch(epoch)
	if err != nil {
		return err
	}
	if e.Resolved {
		return reverts.AlreadyFinalized("epoch %d already resolved", epoch)
	}
	key := voterKey(epoch, voter)
	current, err := s.voterTokens.Get(key)
	if err != nil {
		return errors.Wrap(err, "failed to get voter tokens")
	}
	return s.voterTokens.Set(key, new(big.Int).Add(current, weight))
}

// VoterTokens returns the voter's cumulative winning weight for the epoch.
func (s *Service) VoterTokens(epoch uint64, voter tcr.Address) (*big.Int, error) {
	return s.voterTokens.Get(voterKey(epoch, voter))
}

// MarkResolved locks the inflation subsidy for the epoch.
func (s *Service) MarkResolved(epoch uint64, inflation *big.Int) error {
	e, err := s.GetEpoch(epoch)
	if err != nil {
		return err
	}
	if e.Resolved {
		return reverts.AlreadyFinalized("epoch %d already resolved", epoch)
	}
	e.Inflation = new(big.Int).Set(inflation)
	e.Resolved = true
	return s.epochs.Set(epochKey(epoch), e)
}

// VoterShare computes the voter's proportional share of the epoch's locked
// inflation. Only meaningful once the epoch is resolved.
func (s *Service) VoterShare(epoch uint64, voter tcr.Address) (*big.Int, error) {
	e, err := s.GetEpoch(epoch)
	if err != nil {
		return nil, err
	}
	if !e.Resolved {
		return nil, reverts.NotEligible("epoch %d not resolved", epoch)
	}
	if e.Tokens.Sign() == 0 {
		return nil, reverts.Degenerate("epoch %d has zero winning tokens", epoch)
	}
	vt, err := s.VoterTokens(epoch, voter)
	if err != nil {
		return nil, err
	}
	share := new(big.Int).Mul(vt, e.Inflation)
	return share.Quo(share, e.Tokens), nil
}

// HasClaimed returns whether the voter already took their inflation share.
func (s *Service) HasClaimed(epoch uint64, voter tcr.Address) (bool, error) {
	return s.claims.Get(voterKey(epoch, voter))
}

// MarkClaimed records that the voter took their inflation share.
func (s *Service) MarkClaimed(epoch uint64, voter tcr.Address) error {
	return s.claims.Set(voterKey(epoch, voter), true)
}
