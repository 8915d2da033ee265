// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/curatelabs/tcr/state"
	"github.com/curatelabs/tcr/tcr"
)

// Context binds a component address to the state, scoping all slot access
// to that component's storage.
type Context struct {
	address tcr.Address
	state   *state.State
}

func NewContext(address tcr.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() tcr.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
