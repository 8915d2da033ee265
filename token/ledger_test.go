// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curatelabs/tcr/state"
	"github.com/curatelabs/tcr/tcr"
)

var (
	alice = tcr.BytesToAddress([]byte("alice"))
	bob   = tcr.BytesToAddress([]byte("bob"))
	carol = tcr.BytesToAddress([]byte("carol"))
)

func newLedger() *Ledger {
	return New(tcr.BytesToAddress([]byte("token")), state.New())
}

func TestMintAndBalance(t *testing.T) {
	l := newLedger()

	bal, err := l.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, 0, bal.Sign())

	require.NoError(t, l.Mint(alice, big.NewInt(1000)))
	require.NoError(t, l.Mint(bob, big.NewInt(500)))

	bal, _ = l.BalanceOf(alice)
	assert.Equal(t, big.NewInt(1000), bal)

	supply, err := l.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1500), supply)
}

func TestTransfer(t *testing.T) {
	l := newLedger()
	require.NoError(t, l.Mint(alice, big.NewInt(100)))

	ok, err := l.Transfer(alice, bob, big.NewInt(60))
	require.NoError(t, err)
	assert.True(t, ok)

	balA, _ := l.BalanceOf(alice)
	balB, _ := l.BalanceOf(bob)
	assert.Equal(t, big.NewInt(40), balA)
	assert.Equal(t, big.NewInt(60), balB)
}

func TestTransferInsufficient(t *testing.T) {
	l := newLedger()
	require.NoError(t, l.Mint(alice, big.NewInt(10)))

	ok, err := l.Transfer(alice, bob, big.NewInt(11))
	require.NoError(t, err)
	assert.False(t, ok)

	// no partial effect
	balA, _ := l.BalanceOf(alice)
	balB, _ := l.BalanceOf(bob)
	assert.Equal(t, big.NewInt(10), balA)
	assert.Equal(t, 0, balB.Sign())
}

func TestTransferRejectsNegative(t *testing.T) {
	l := newLedger()
	require.NoError(t, l.Mint(alice, big.NewInt(10)))

	ok, err := l.Transfer(alice, bob, big.NewInt(-1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransferFrom(t *testing.T) {
	l := newLedger()
	require.NoError(t, l.Mint(alice, big.NewInt(100)))
	require.NoError(t, l.Approve(alice, carol, big.NewInt(70)))

	ok, err := l.TransferFrom(carol, alice, bob, big.NewInt(50))
	require.NoError(t, err)
	assert.True(t, ok)

	remaining, err := l.Allowance(alice, carol)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(20), remaining)

	// exceeding the remaining approval fails
	ok, err = l.TransferFrom(carol, alice, bob, big.NewInt(30))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransferFromWithoutApproval(t *testing.T) {
	l := newLedger()
	require.NoError(t, l.Mint(alice, big.NewInt(100)))

	ok, err := l.TransferFrom(carol, alice, bob, big.NewInt(1))
	require.NoError(t, err)
	assert.False(t, ok)
}
