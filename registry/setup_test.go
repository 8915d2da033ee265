// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/curatelabs/tcr/params"
	"github.com/curatelabs/tcr/reverts"
	"github.com/curatelabs/tcr/state"
	"github.com/curatelabs/tcr/tcr"
	"github.com/curatelabs/tcr/token"
)

var (
	regAddr     = tcr.BytesToAddress([]byte("registry"))
	tokenAddr   = tcr.BytesToAddress([]byte("token"))
	paramsAddr  = tcr.BytesToAddress([]byte("params"))
	reserveAddr = tcr.BytesToAddress([]byte("reserve"))

	owner      = tcr.BytesToAddress([]byte("owner"))
	challenger = tcr.BytesToAddress([]byte("challenger"))
	voter1     = tcr.BytesToAddress([]byte("voter1"))
	voter2     = tcr.BytesToAddress([]byte("voter2"))

	listingA = tcr.BytesToBytes32([]byte("listing-a"))
	listingB = tcr.BytesToBytes32([]byte("listing-b"))
)

// mockVoting is a hand-rolled voting double. Tests script poll outcomes via
// endPoll and setVote.
type mockVoting struct {
	nextID uint64
	polls  map[uint64]*mockPoll
}

type mockPoll struct {
	ended         bool
	passed        bool
	winningTokens *big.Int
	votes         map[tcr.Address]*big.Int
	commitEnd     uint64
	revealEnd     uint64
}

func newMockVoting() *mockVoting {
	return &mockVoting{polls: make(map[uint64]*mockPoll)}
}

func (v *mockVoting) StartPoll(quorum, commitDuration, revealDuration *big.Int) (uint64, error) {
	v.nextID++
	v.polls[v.nextID] = &mockPoll{
		winningTokens: new(big.Int),
		votes:         make(map[tcr.Address]*big.Int),
		commitEnd:     commitDuration.Uint64(),
		revealEnd:     commitDuration.Uint64() + revealDuration.Uint64(),
	}
	return v.nextID, nil
}

func (v *mockVoting) PollEnded(id uint64) (bool, error) {
	p, ok := v.polls[id]
	return ok && p.ended, nil
}

func (v *mockVoting) IsPassed(id uint64) (bool, error) {
	p, ok := v.polls[id]
	return ok && p.passed, nil
}

func (v *mockVoting) WinningTokens(id uint64) (*big.Int, error) {
	if p, ok := v.polls[id]; ok {
		return new(big.Int).Set(p.winningTokens), nil
	}
	return new(big.Int), nil
}

func (v *mockVoting) PassingTokens(voter tcr.Address, id uint64, _ []byte) (*big.Int, error) {
	if p, ok := v.polls[id]; ok {
		if w, voted := p.votes[voter]; voted {
			return new(big.Int).Set(w), nil
		}
	}
	return new(big.Int), nil
}

func (v *mockVoting) PollSchedule(id uint64) (uint64, uint64, error) {
	if p, ok := v.polls[id]; ok {
		return p.commitEnd, p.revealEnd, nil
	}
	return 0, 0, nil
}

// endPoll scripts the poll outcome: passed means the listing's side won.
func (v *mockVoting) endPoll(id uint64, passed bool, winningTokens int64) {
	p := v.polls[id]
	p.ended = true
	p.passed = passed
	p.winningTokens = big.NewInt(winningTokens)
}

func (v *mockVoting) setVote(id uint64, voter tcr.Address, weight int64) {
	v.polls[id].votes[voter] = big.NewInt(weight)
}

type env struct {
	t      *testing.T
	state  *state.State
	ledger *token.Ledger
	params *params.Params
	voting *mockVoting
	reg    *Registry
}

// newEnv builds a registry over a fresh state with the standard scenario
// parameters: minDeposit 100, applyStageLen 10, dispensationPct 50, epochs
// of 100 seconds starting at time zero, inflation denominator 10.
func newEnv(t *testing.T) *env {
	st := state.New()
	ledger := token.New(tokenAddr, st)
	ps := params.New(paramsAddr, st)
	voting := newMockVoting()

	require.NoError(t, ps.Set(tcr.KeyMinDeposit, big.NewInt(100)))
	require.NoError(t, ps.Set(tcr.KeyApplyStageLen, big.NewInt(10)))
	require.NoError(t, ps.Set(tcr.KeyVoteQuorum, big.NewInt(50)))
	require.NoError(t, ps.Set(tcr.KeyCommitStageLen, big.NewInt(10)))
	require.NoError(t, ps.Set(tcr.KeyRevealStageLen, big.NewInt(10)))
	require.NoError(t, ps.Set(tcr.KeyDispensationPct, big.NewInt(50)))

	for _, acc := range []tcr.Address{owner, challenger, voter1, voter2} {
		require.NoError(t, ledger.Mint(acc, big.NewInt(10_000)))
	}
	require.NoError(t, ledger.Mint(reserveAddr, big.NewInt(1000)))

	reg := New(regAddr, st, ledger, voting, ps)
	require.NoError(t, reg.Initialize(Config{
		Reserve:              reserveAddr,
		EpochBirthDate:       0,
		EpochDuration:        100,
		InflationDenominator: big.NewInt(10),
	}))

	return &env{t: t, state: st, ledger: ledger, params: ps, voting: voting, reg: reg}
}

func (e *env) balance(addr tcr.Address) *big.Int {
	bal, err := e.ledger.BalanceOf(addr)
	require.NoError(e.t, err)
	return bal
}

func (e *env) listing(id tcr.Bytes32) *Listing {
	l, err := e.reg.Listing(id)
	require.NoError(e.t, err)
	return l
}

// whitelisted drives a listing from nothing to whitelisted: apply at t=0
// with the given deposit and promote once the apply stage passed.
func (e *env) whitelisted(id tcr.Bytes32, deposit int64) {
	require.NoError(e.t, e.reg.Apply(owner, id, big.NewInt(deposit), "", 0))
	require.NoError(e.t, e.reg.UpdateStatus(id, 11))
	e.reg.Events()
}

func (e *env) requireKind(err error, kind reverts.Kind) {
	require.Error(e.t, err)
	require.True(e.t, reverts.Is(err, kind), "expected %v, got: %v", kind, err)
}
