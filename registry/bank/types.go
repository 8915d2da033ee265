// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"encoding/binary"
	"math/big"
)

// Epoch aggregates winning-side voting weight of all challenges resolved
// within one time bucket. Once resolved, the inflation subsidy is locked
// forever and the record becomes read-only.
type Epoch struct {
	Tokens    *big.Int // winning-side weight of all challenges resolved in this epoch
	Inflation *big.Int // subsidy locked at resolution; zero until then
	Resolved  bool
}

// IsEmpty returns whether the epoch has no recorded activity.
func (e *Epoch) IsEmpty() bool {
	return !e.Resolved && (e.Tokens == nil || e.Tokens.Sign() == 0)
}

func (e *Epoch) normalize() *Epoch {
	if e.Tokens == nil {
		e.Tokens = new(big.Int)
	}
	if e.Inflation == nil {
		e.Inflation = new(big.Int)
	}
	return e
}

// epochKey adapts an epoch number to a mapping key.
type epochKey uint64

func (k epochKey) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(k))
	return b[:]
}
