// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/curatelabs/tcr/tcr"
)

// Bool is a wrapper for storage and retrieval of a boolean flag.
type Bool struct {
	context *Context
	pos     tcr.Bytes32
}

func NewBool(context *Context, pos tcr.Bytes32) *Bool {
	return &Bool{context: context, pos: pos}
}

func (b *Bool) Get() (bool, error) {
	storage, err := b.context.state.GetStorage(b.context.address, b.pos)
	if err != nil {
		return false, err
	}
	return !storage.IsZero(), nil
}

func (b *Bool) Set(value bool) {
	var storage tcr.Bytes32
	if value {
		storage = tcr.BytesToBytes32([]byte{1})
	}
	b.context.state.SetStorage(b.context.address, b.pos, storage)
}
