// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"

	"github.com/curatelabs/tcr/tcr"
)

// Listing is a registry entry, keyed by a caller-supplied hash.
type Listing struct {
	Owner             tcr.Address
	ApplicationExpiry uint64 // zero means no application exists
	Whitelisted       bool
	UnstakedDeposit   *big.Int // escrowed value not locked in an active challenge
	ChallengeID       uint64   // most recent challenge, zero means none
}

// IsEmpty returns whether the entry can be treated as empty.
func (l *Listing) IsEmpty() bool {
	return l.ApplicationExpiry == 0 && !l.Whitelisted
}

// AppWasMade returns whether an application exists for the listing.
func (l *Listing) AppWasMade() bool {
	return l.ApplicationExpiry != 0
}

func (l *Listing) normalize() *Listing {
	if l.UnstakedDeposit == nil {
		l.UnstakedDeposit = new(big.Int)
	}
	return l
}

// RewardClaim is one element of a batch reward claim.
type RewardClaim struct {
	ChallengeID uint64
	Proof       []byte
}
