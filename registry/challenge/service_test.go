// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package challenge

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curatelabs/tcr/reverts"
	"github.com/curatelabs/tcr/slot"
	"github.com/curatelabs/tcr/state"
	"github.com/curatelabs/tcr/tcr"
)

var (
	challenger = tcr.BytesToAddress([]byte("challenger"))
	voter1     = tcr.BytesToAddress([]byte("voter1"))
	voter2     = tcr.BytesToAddress([]byte("voter2"))
)

func newService() *Service {
	return New(slot.NewContext(tcr.BytesToAddress([]byte("registry")), state.New()))
}

func TestCreateAndGet(t *testing.T) {
	s := newService()

	require.NoError(t, s.Create(1, challenger, big.NewInt(100), big.NewInt(50)))

	c, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, challenger, c.Challenger)
	assert.Equal(t, big.NewInt(100), c.Stake)
	assert.Equal(t, big.NewInt(50), c.RewardPool)
	assert.False(t, c.Resolved)

	// missing entries read as empty
	c, err = s.Get(42)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCreateValidation(t *testing.T) {
	s := newService()

	err := s.Create(0, challenger, big.NewInt(100), big.NewInt(50))
	assert.True(t, reverts.IsPrecondition(err))

	err = s.Create(1, challenger, big.NewInt(0), big.NewInt(50))
	assert.True(t, reverts.IsPrecondition(err))

	require.NoError(t, s.Create(1, challenger, big.NewInt(100), big.NewInt(50)))
	err = s.Create(1, challenger, big.NewInt(100), big.NewInt(50))
	assert.True(t, reverts.IsPrecondition(err))
}

func TestResolveOnce(t *testing.T) {
	s := newService()
	require.NoError(t, s.Create(1, challenger, big.NewInt(100), big.NewInt(50)))

	c, err := s.Resolve(1, big.NewInt(40), 3)
	require.NoError(t, err)
	assert.True(t, c.Resolved)
	assert.Equal(t, big.NewInt(40), c.WinningTokens)
	assert.Equal(t, big.NewInt(40), c.TotalTokens)
	assert.Equal(t, uint64(3), c.Epoch)

	_, err = s.Resolve(1, big.NewInt(40), 3)
	assert.True(t, reverts.IsAlreadyFinalized(err))

	_, err = s.Resolve(9, big.NewInt(40), 3)
	assert.True(t, reverts.IsPrecondition(err))
}

func TestReward(t *testing.T) {
	s := newService()
	require.NoError(t, s.Create(1, challenger, big.NewInt(100), big.NewInt(50)))

	c, err := s.Resolve(1, big.NewInt(40), 0)
	require.NoError(t, err)
	// stake returned plus the loser's forfeited dispensation share
	assert.Equal(t, big.NewInt(150), c.Reward())
}

func TestRewardZeroVoters(t *testing.T) {
	s := newService()
	require.NoError(t, s.Create(1, challenger, big.NewInt(100), big.NewInt(50)))

	c, err := s.Resolve(1, big.NewInt(0), 0)
	require.NoError(t, err)
	// nobody backed the winning side, the full bilateral stake is owed
	assert.Equal(t, big.NewInt(200), c.Reward())
}

func TestClaims(t *testing.T) {
	s := newService()
	require.NoError(t, s.Create(1, challenger, big.NewInt(100), big.NewInt(50)))
	_, err := s.Resolve(1, big.NewInt(100), 0)
	require.NoError(t, err)

	// 40 of 100 winning weight takes 40% of the pool
	reward, err := s.ApplyClaim(1, voter1, big.NewInt(40))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(20), reward)

	c, _ := s.Get(1)
	assert.Equal(t, big.NewInt(60), c.TotalTokens)
	assert.Equal(t, big.NewInt(30), c.RewardPool)
	assert.Equal(t, big.NewInt(100), c.WinningTokens) // fixed at resolution

	// remaining claimant takes everything left
	reward, err = s.ApplyClaim(1, voter2, big.NewInt(60))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30), reward)

	c, _ = s.Get(1)
	assert.Equal(t, 0, c.TotalTokens.Sign())
	assert.Equal(t, 0, c.RewardPool.Sign())
}

func TestClaimOrderIndependence(t *testing.T) {
	mk := func() *Service {
		s := newService()
		require.NoError(t, s.Create(1, challenger, big.NewInt(100), big.NewInt(60)))
		_, err := s.Resolve(1, big.NewInt(90), 0)
		require.NoError(t, err)
		return s
	}

	a := mk()
	r1, err := a.ApplyClaim(1, voter1, big.NewInt(30))
	require.NoError(t, err)
	r2, err := a.ApplyClaim(1, voter2, big.NewInt(60))
	require.NoError(t, err)

	b := mk()
	r2b, err := b.ApplyClaim(1, voter2, big.NewInt(60))
	require.NoError(t, err)
	r1b, err := b.ApplyClaim(1, voter1, big.NewInt(30))
	require.NoError(t, err)

	assert.Equal(t, r1, r1b)
	assert.Equal(t, r2, r2b)
	assert.Equal(t, big.NewInt(60), new(big.Int).Add(r1, r2))
}

func TestClaimGuards(t *testing.T) {
	s := newService()
	require.NoError(t, s.Create(1, challenger, big.NewInt(100), big.NewInt(50)))

	_, err := s.ApplyClaim(1, voter1, big.NewInt(10))
	assert.True(t, reverts.IsNotEligible(err))

	_, err = s.ApplyClaim(2, voter1, big.NewInt(10))
	assert.True(t, reverts.IsPrecondition(err))

	_, err = s.Resolve(1, big.NewInt(40), 0)
	require.NoError(t, err)

	// weight above the live denominator is rejected
	_, err = s.ApplyClaim(1, voter1, big.NewInt(41))
	assert.True(t, reverts.IsPrecondition(err))

	_, err = s.ApplyClaim(1, voter1, big.NewInt(40))
	require.NoError(t, err)

	_, err = s.ApplyClaim(1, voter1, big.NewInt(40))
	assert.True(t, reverts.IsAlreadyFinalized(err))
}

func TestClaimZeroDenominator(t *testing.T) {
	s := newService()
	require.NoError(t, s.Create(1, challenger, big.NewInt(100), big.NewInt(50)))
	_, err := s.Resolve(1, big.NewInt(0), 0)
	require.NoError(t, err)

	_, err = s.ApplyClaim(1, voter1, big.NewInt(10))
	assert.True(t, reverts.IsDegenerate(err))
}

func TestPreview(t *testing.T) {
	s := newService()
	require.NoError(t, s.Create(1, challenger, big.NewInt(100), big.NewInt(50)))

	_, err := s.Preview(1, big.NewInt(10))
	assert.True(t, reverts.IsNotEligible(err))

	_, err = s.Resolve(1, big.NewInt(100), 0)
	require.NoError(t, err)

	reward, err := s.Preview(1, big.NewInt(40))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(20), reward)

	// preview does not mutate
	c, _ := s.Get(1)
	assert.Equal(t, big.NewInt(100), c.TotalTokens)
	assert.Equal(t, big.NewInt(50), c.RewardPool)
}
