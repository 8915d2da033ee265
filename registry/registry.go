// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry implements the listing/challenge lifecycle engine of a
// token-curated registry and its reward and inflation accounting. It owns
// listing records and drives the challenge ledger and the epoch bank at
// well-defined transition points.
//
// Every public mutating operation executes all-or-nothing: it runs against a
// state checkpoint and reverts every mutation on failure, so callers never
// observe partial effects. Accounting state is always committed before any
// outbound value transfer is attempted.
package registry

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/curatelabs/tcr/events"
	"github.com/curatelabs/tcr/log"
	"github.com/curatelabs/tcr/metrics"
	"github.com/curatelabs/tcr/registry/bank"
	"github.com/curatelabs/tcr/registry/challenge"
	"github.com/curatelabs/tcr/reverts"
	"github.com/curatelabs/tcr/slot"
	"github.com/curatelabs/tcr/state"
	"github.com/curatelabs/tcr/tcr"
)

var (
	logger = log.WithContext("pkg", "registry")

	metricOpCount = metrics.LazyLoadCounterVec("registry_op_count", []string{"op", "status"})

	slotListings    = tcr.BytesToBytes32([]byte("listings"))
	slotInitialized = tcr.BytesToBytes32([]byte("initialized"))
)

// Token is the fungible-value ledger the registry escrows deposits and
// stakes in. A false result or an error from Transfer rejects the enclosing
// operation with no partial effect retained.
type Token interface {
	Transfer(from, to tcr.Address, amount *big.Int) (bool, error)
	BalanceOf(addr tcr.Address) (*big.Int, error)
}

// Voting is the commit-reveal poll system deciding challenge outcomes.
type Voting interface {
	StartPoll(quorum, commitDuration, revealDuration *big.Int) (uint64, error)
	PollEnded(id uint64) (bool, error)
	IsPassed(id uint64) (bool, error)
	WinningTokens(id uint64) (*big.Int, error)
	PassingTokens(voter tcr.Address, id uint64, proof []byte) (*big.Int, error)
	PollSchedule(id uint64) (commitEnd, revealEnd uint64, err error)
}

// Params supplies the governed configuration values.
type Params interface {
	Get(key tcr.Bytes32) (*big.Int, error)
}

// Config is the one-time registry configuration bound by Initialize.
type Config struct {
	Reserve              tcr.Address // custodian of the inflation subsidy
	EpochBirthDate       uint64
	EpochDuration        uint64
	InflationDenominator *big.Int
}

// Registry is the top-level entry point for all listing, challenge and
// reward operations.
type Registry struct {
	addr   tcr.Address
	state  *state.State
	token  Token
	voting Voting
	params Params

	listings    *slot.Mapping[tcr.Bytes32, *Listing]
	initialized *slot.Bool
	challenges  *challenge.Service
	bank        *bank.Service
	journal     *events.Journal
}

// New creates a registry instance bound to the given component address.
func New(addr tcr.Address, st *state.State, token Token, voting Voting, params Params) *Registry {
	sctx := slot.NewContext(addr, st)
	return &Registry{
		addr:        addr,
		state:       st,
		token:       token,
		voting:      voting,
		params:      params,
		listings:    slot.NewMapping[tcr.Bytes32, *Listing](sctx, slotListings),
		initialized: slot.NewBool(sctx, slotInitialized),
		challenges:  challenge.New(sctx),
		bank:        bank.New(sctx),
		journal:     events.NewJournal(),
	}
}

// Initialize binds the epoch configuration and the subsidy custodian.
// It may be called exactly once.
func (r *Registry) Initialize(cfg Config) error {
	return r.exec("initialize", func(ev *events.Journal) error {
		done, err := r.initialized.Get()
		if err != nil {
			return err
		}
		if done {
			return reverts.AlreadyFinalized("registry already initialized")
		}
		if err := r.bank.SetConfig(cfg.EpochBirthDate, cfg.EpochDuration, cfg.InflationDenominator, cfg.Reserve); err != nil {
			return err
		}
		r.initialized.Set(true)
		return nil
	})
}

// Events drains the journal of notifications accumulated by committed
// operations since the previous drain.
func (r *Registry) Events() []events.Event {
	return r.journal.Drain()
}

// exec runs a mutating operation against a state checkpoint. On failure all
// state mutations are reverted and staged events are discarded.
func (r *Registry) exec(op string, fn func(ev *events.Journal) error) error {
	checkpoint := r.state.NewCheckpoint()
	staged := events.NewJournal()

	err := fn(staged)

	status := "succeeded"
	if err != nil {
		r.state.RevertTo(checkpoint)
		status = "failed"
	} else {
		r.journal.Append(staged.Drain()...)
	}
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "status": status})
	return err
}

func (r *Registry) getListing(id tcr.Bytes32) (*Listing, error) {
	l, err := r.listings.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get listing")
	}
	return l.normalize(), nil
}

func (r *Registry) setListing(id tcr.Bytes32, l *Listing) error {
	return r.listings.Set(id, l)
}

// escrow moves value from an external account into the registry's custody.
func (r *Registry) escrow(from tcr.Address, amount *big.Int) error {
	ok, err := r.token.Transfer(from, r.addr, amount)
	if err != nil {
		return errors.Wrap(err, "token transfer")
	}
	if !ok {
		return reverts.TransferRejected("ledger declined escrow of %v from %v", amount, from)
	}
	return nil
}

// payout moves value out of the registry's custody.
func (r *Registry) payout(to tcr.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	ok, err := r.token.Transfer(r.addr, to, amount)
	if err != nil {
		return errors.Wrap(err, "token transfer")
	}
	if !ok {
		return reverts.TransferRejected("ledger declined payout of %v to %v", amount, to)
	}
	return nil
}
