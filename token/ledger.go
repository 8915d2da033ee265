// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the fungible value ledger the registry escrows
// deposits and stakes in.
package token

import (
	"math/big"

	"github.com/curatelabs/tcr/state"
	"github.com/curatelabs/tcr/tcr"
)

var totalSupplyKey = tcr.Keccak256([]byte("total-supply"))

func accountKey(addr tcr.Address) tcr.Bytes32 {
	return tcr.BytesToBytes32(append([]byte("a"), addr.Bytes()...))
}

func allowanceKey(owner tcr.Address, spender tcr.Address) tcr.Bytes32 {
	return tcr.Keccak256(owner.Bytes(), spender.Bytes())
}

// Ledger implements balance and transfer bookkeeping over the state.
type Ledger struct {
	addr  tcr.Address
	state *state.State
}

// New creates a new instance.
func New(addr tcr.Address, state *state.State) *Ledger {
	return &Ledger{addr, state}
}

func (l *Ledger) getAccount(addr tcr.Address) (*account, error) {
	var acc account
	if err := l.state.DecodeStorage(l.addr, accountKey(addr), acc.Decode); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (l *Ledger) getAndSetAccount(addr tcr.Address, cb func(*account) bool) (bool, error) {
	key := accountKey(addr)
	var acc account
	if err := l.state.DecodeStorage(l.addr, key, acc.Decode); err != nil {
		return false, err
	}
	if !cb(&acc) {
		return false, nil
	}
	return true, l.state.EncodeStorage(l.addr, key, acc.Encode)
}

// BalanceOf returns the balance of an account.
func (l *Ledger) BalanceOf(addr tcr.Address) (*big.Int, error) {
	acc, err := l.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Balance, nil
}

// TotalSupply returns the total amount of value ever minted.
func (l *Ledger) TotalSupply() (*big.Int, error) {
	var supply big.Int
	if err := l.state.DecodeStorage(l.addr, totalSupplyKey, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		supply.SetBytes(raw)
		return nil
	}); err != nil {
		return nil, err
	}
	return &supply, nil
}

// Mint adds amount to the balance of addr and to the total supply.
func (l *Ledger) Mint(addr tcr.Address, amount *big.Int) error {
	if amount.Sign() <= 0 {
		return nil
	}
	if _, err := l.getAndSetAccount(addr, func(acc *account) bool {
		acc.Balance = new(big.Int).Add(acc.Balance, amount)
		return true
	}); err != nil {
		return err
	}
	supply, err := l.TotalSupply()
	if err != nil {
		return err
	}
	supply.Add(supply, amount)
	return l.state.EncodeStorage(l.addr, totalSupplyKey, func() ([]byte, error) {
		return supply.Bytes(), nil
	})
}

// Transfer moves amount from one account to another.
// Returns false without mutation when the sender balance is insufficient
// or amount is negative.
func (l *Ledger) Transfer(from, to tcr.Address, amount *big.Int) (bool, error) {
	if amount.Sign() < 0 {
		return false, nil
	}
	if amount.Sign() == 0 || from == to {
		return true, nil
	}
	ok, err := l.getAndSetAccount(from, func(acc *account) bool {
		if acc.Balance.Cmp(amount) < 0 {
			return false
		}
		acc.Balance = new(big.Int).Sub(acc.Balance, amount)
		return true
	})
	if err != nil || !ok {
		return false, err
	}
	return l.getAndSetAccount(to, func(acc *account) bool {
		acc.Balance = new(big.Int).Add(acc.Balance, amount)
		return true
	})
}

// Approve lets spender move up to amount out of the owner's account
// via TransferFrom. A new approval replaces the previous one.
func (l *Ledger) Approve(owner, spender tcr.Address, amount *big.Int) error {
	a := allowance{Remaining: amount}
	return l.state.EncodeStorage(l.addr, allowanceKey(owner, spender), a.Encode)
}

// Allowance returns the remaining approval from owner to spender.
func (l *Ledger) Allowance(owner, spender tcr.Address) (*big.Int, error) {
	var a allowance
	if err := l.state.DecodeStorage(l.addr, allowanceKey(owner, spender), a.Decode); err != nil {
		return nil, err
	}
	return a.Remaining, nil
}

// TransferFrom moves amount from one account to another on behalf of spender,
// consuming the owner's approval. Returns false without mutation when the
// approval or the balance is insufficient.
func (l *Ledger) TransferFrom(spender, from, to tcr.Address, amount *big.Int) (bool, error) {
	if amount.Sign() < 0 {
		return false, nil
	}
	key := allowanceKey(from, spender)
	var a allowance
	if err := l.state.DecodeStorage(l.addr, key, a.Decode); err != nil {
		return false, err
	}
	if a.Remaining.Cmp(amount) < 0 {
		return false, nil
	}
	ok, err := l.Transfer(from, to, amount)
	if err != nil || !ok {
		return false, err
	}
	a.Remaining = new(big.Int).Sub(a.Remaining, amount)
	return true, l.state.EncodeStorage(l.addr, key, a.Encode)
}
