// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params implements the parameter store: named numeric configuration
// values governing the registry (minimum deposit, stage lengths, quorum,
// dispensation percentage).
package params

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/curatelabs/tcr/state"
	"github.com/curatelabs/tcr/tcr"
)

// Params provides native access to the parameter store.
type Params struct {
	addr  tcr.Address
	state *state.State
}

// New creates a new instance.
func New(addr tcr.Address, state *state.State) *Params {
	return &Params{addr, state}
}

// Get native way to get a param. Unset params read as zero.
func (p *Params) Get(key tcr.Bytes32) (*big.Int, error) {
	var v big.Int
	if err := p.state.DecodeStorage(p.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &v)
	}); err != nil {
		return nil, err
	}
	return &v, nil
}

// Set native way to set a param.
func (p *Params) Set(key tcr.Bytes32, value *big.Int) error {
	return p.state.EncodeStorage(p.addr, key, func() ([]byte, error) {
		if value.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(value)
	})
}
