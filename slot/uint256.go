// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/curatelabs/tcr/tcr"
)

// Uint256 is a wrapper for storage and retrieval of an unsigned 256-bit number,
// similar to storing an uint256 in a smart contract.
// If the provided value exceeds 256 bits, it will be truncated to fit into tcr.Bytes32.
type Uint256 struct {
	context *Context
	pos     tcr.Bytes32
}

func NewUint256(context *Context, pos tcr.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) error {
	if value.Sign() < 0 {
		return errors.New("negative value for uint256 slot")
	}
	u.context.state.SetStorage(u.context.address, u.pos, tcr.BytesToBytes32(value.Bytes()))
	return nil
}

func (u *Uint256) Add(value *big.Int) error {
	stored, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(stored.Add(stored, value))
}

// Sub subtracts value from the stored number.
// It fails if the result would go negative.
func (u *Uint256) Sub(value *big.Int) error {
	stored, err := u.Get()
	if err != nil {
		return err
	}
	if stored.Cmp(value) < 0 {
		return errors.New("uint256 slot underflow")
	}
	return u.Set(stored.Sub(stored, value))
}
