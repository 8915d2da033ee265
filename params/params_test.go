// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/curatelabs/tcr/state"
	"github.com/curatelabs/tcr/tcr"
)

func TestParamsGetSet(t *testing.T) {
	st := state.New()
	p := New(tcr.BytesToAddress([]byte("par")), st)

	setv := big.NewInt(10)
	assert.Nil(t, p.Set(tcr.KeyMinDeposit, setv))

	getv, err := p.Get(tcr.KeyMinDeposit)
	assert.Nil(t, err)
	assert.Equal(t, setv, getv)
}

func TestParamsUnsetReadsZero(t *testing.T) {
	st := state.New()
	p := New(tcr.BytesToAddress([]byte("par")), st)

	getv, err := p.Get(tcr.KeyVoteQuorum)
	assert.Nil(t, err)
	assert.Equal(t, 0, getv.Sign())
}
