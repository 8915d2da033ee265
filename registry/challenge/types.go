// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package challenge

import (
	"encoding/binary"
	"math/big"

	"github.com/curatelabs/tcr/tcr"
)

// Challenge is the per-challenge stake and reward-pool bookkeeping record,
// keyed by the poll id of the vote deciding it.
type Challenge struct {
	Challenger tcr.Address
	Stake      *big.Int // amount each side has at risk, fixed at creation
	RewardPool *big.Int // remaining value for winning voters; shrinks with each claim
	// TotalTokens starts equal to WinningTokens at resolution and shrinks as
	// each claimant's weight is subtracted. It is the live denominator of the
	// proportional division, which keeps every remaining claimant's share
	// proportional regardless of claim order.
	TotalTokens   *big.Int
	WinningTokens *big.Int // winning-side weight, fixed at resolution
	Resolved      bool
	Epoch         uint64 // epoch the challenge was resolved in
}

// IsEmpty returns whether the entry can be treated as empty.
func (c *Challenge) IsEmpty() bool {
	return c.Stake == nil || c.Stake.Sign() == 0
}

func (c *Challenge) normalize() *Challenge {
	if c.Stake == nil {
		c.Stake = new(big.Int)
	}
	if c.RewardPool == nil {
		c.RewardPool = new(big.Int)
	}
	if c.TotalTokens == nil {
		c.TotalTokens = new(big.Int)
	}
	if c.WinningTokens == nil {
		c.WinningTokens = new(big.Int)
	}
	return c
}

// Reward is the amount owed to the winning party at resolution.
// When nobody backed the winning side the full bilateral stake goes to the
// challenger; otherwise the loser's dispensation share stays in the pool.
func (c *Challenge) Reward() *big.Int {
	both := new(big.Int).Lsh(c.Stake, 1) // 2 * stake
	if c.WinningTokens.Sign() == 0 {
		return both
	}
	return both.Sub(both, c.RewardPool)
}

// key adapts a challenge id to a mapping key.
type key uint64

func (k key) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(k))
	return b[:]
}
