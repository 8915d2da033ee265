// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package events defines the notifications the registry core emits at each
// observable state transition. Committed operations append events to a
// journal; a failed operation contributes nothing.
package events

import (
	"math/big"

	"github.com/curatelabs/tcr/tcr"
)

// Event is a notification of a committed state transition.
type Event interface {
	Name() string
}

type Application struct {
	ListingID  tcr.Bytes32
	Deposit    *big.Int
	AppEndDate uint64
	Data       string
	Applicant  tcr.Address
}

type Challenge struct {
	ListingID     tcr.Bytes32
	ChallengeID   uint64
	Data          string
	CommitEndDate uint64
	RevealEndDate uint64
	Challenger    tcr.Address
}

type Deposit struct {
	ListingID tcr.Bytes32
	Added     *big.Int
	NewTotal  *big.Int
	Owner     tcr.Address
}

type Withdrawal struct {
	ListingID tcr.Bytes32
	Withdrew  *big.Int
	NewTotal  *big.Int
	Owner     tcr.Address
}

type ApplicationWhitelisted struct {
	ListingID tcr.Bytes32
}

type ApplicationRemoved struct {
	ListingID tcr.Bytes32
}

type ListingRemoved struct {
	ListingID tcr.Bytes32
}

type ListingWithdrawn struct {
	ListingID tcr.Bytes32
}

type TouchAndRemoved struct {
	ListingID tcr.Bytes32
}

type ChallengeFailed struct {
	ListingID   tcr.Bytes32
	ChallengeID uint64
	RewardPool  *big.Int
	TotalTokens *big.Int
}

type ChallengeSucceeded struct {
	ListingID   tcr.Bytes32
	ChallengeID uint64
	RewardPool  *big.Int
	TotalTokens *big.Int
}

type RewardClaimed struct {
	ChallengeID uint64
	Reward      *big.Int
	Voter       tcr.Address
}

type EpochResolved struct {
	Epoch     uint64
	Tokens    *big.Int
	Inflation *big.Int
	Resolver  tcr.Address
}

type InflationRewardsClaimed struct {
	Epoch      uint64
	Tokens     *big.Int
	Inflation  *big.Int
	VoterShare *big.Int
	Voter      tcr.Address
}

func (Application) Name() string             { return "Application" }
func (Challenge) Name() string               { return "Challenge" }
func (Deposit) Name() string                 { return "Deposit" }
func (Withdrawal) Name() string              { return "Withdrawal" }
func (ApplicationWhitelisted) Name() string  { return "ApplicationWhitelisted" }
func (ApplicationRemoved) Name() string      { return "ApplicationRemoved" }
func (ListingRemoved) Name() string          { return "ListingRemoved" }
func (ListingWithdrawn) Name() string        { return "ListingWithdrawn" }
func (TouchAndRemoved) Name() string         { return "TouchAndRemoved" }
func (ChallengeFailed) Name() string         { return "ChallengeFailed" }
func (ChallengeSucceeded) Name() string      { return "ChallengeSucceeded" }
func (RewardClaimed) Name() string           { return "RewardClaimed" }
func (EpochResolved) Name() string           { return "EpochResolved" }
func (InflationRewardsClaimed) Name() string { return "InflationRewardsClaimed" }

// Journal accumulates events of committed operations until drained.
type Journal struct {
	events []Event
}

func NewJournal() *Journal {
	return &Journal{}
}

func (j *Journal) Append(evs ...Event) {
	j.events = append(j.events, evs...)
}

// Drain returns all accumulated events and empties the journal.
func (j *Journal) Drain() []Event {
	evs := j.events
	j.events = nil
	return evs
}

// Len returns the number of pending events.
func (j *Journal) Len() int {
	return len(j.events)
}
