// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/curatelabs/tcr/tcr"
)

// StorageEncoder implemented by types that can encode themselves into raw storage.
type StorageEncoder interface {
	Encode() ([]byte, error)
}

// StorageDecoder implemented by types that can decode themselves from raw storage.
type StorageDecoder interface {
	Decode([]byte) error
}

type storageKey struct {
	addr tcr.Address
	key  tcr.Bytes32
}

type journalEntry struct {
	key     storageKey
	prev    rlp.RawValue
	existed bool
}

// State is the facade for component storage. Each component owns a keyed
// slice of storage under its own address.
//
// Mutations are journaled, so an operation can take a checkpoint up front and
// roll every write back if any of its steps fail. This is what makes every
// public operation of the registry all-or-nothing.
type State struct {
	storage map[storageKey]rlp.RawValue
	journal []journalEntry
}

// New creates an empty state.
func New() *State {
	return &State{
		storage: make(map[storageKey]rlp.RawValue),
	}
}

// GetRawStorage returns the raw rlp value stored under (addr, key).
func (s *State) GetRawStorage(addr tcr.Address, key tcr.Bytes32) (rlp.RawValue, error) {
	return s.storage[storageKey{addr, key}], nil
}

// SetRawStorage sets the raw rlp value stored under (addr, key).
// An empty raw deletes the entry.
func (s *State) SetRawStorage(addr tcr.Address, key tcr.Bytes32, raw rlp.RawValue) {
	sk := storageKey{addr, key}
	prev, existed := s.storage[sk]
	s.journal = append(s.journal, journalEntry{sk, prev, existed})
	if len(raw) == 0 {
		delete(s.storage, sk)
		return
	}
	s.storage[sk] = raw
}

// GetStorage returns storage value for the given key presented as Bytes32.
func (s *State) GetStorage(addr tcr.Address, key tcr.Bytes32) (tcr.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return tcr.Bytes32{}, err
	}
	if len(raw) == 0 {
		return tcr.Bytes32{}, nil
	}
	_, content, _, err := rlp.Split(raw)
	if err != nil {
		return tcr.Bytes32{}, errors.Wrap(err, "decode storage value")
	}
	return tcr.BytesToBytes32(content), nil
}

// SetStorage sets the Bytes32 presented storage value for the given key.
// Zero value deletes the entry.
func (s *State) SetStorage(addr tcr.Address, key, value tcr.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	trimmed, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, trimmed)
}

// EncodeStorage sets storage value encoded by given enc method.
// An empty encoded value deletes the entry.
func (s *State) EncodeStorage(addr tcr.Address, key tcr.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return errors.Wrap(err, "encode storage value")
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage decodes the storage value under (addr, key) with the given
// dec method. dec is invoked with nil raw when the entry does not exist.
func (s *State) DecodeStorage(addr tcr.Address, key tcr.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return errors.Wrap(err, "decode storage value")
	}
	return nil
}

// Exists returns whether an entry exists under (addr, key).
func (s *State) Exists(addr tcr.Address, key tcr.Bytes32) bool {
	_, ok := s.storage[storageKey{addr, key}]
	return ok
}

// NewCheckpoint makes a checkpoint of the current state.
// It returns a checkpoint to be passed to RevertTo.
func (s *State) NewCheckpoint() int {
	return len(s.journal)
}

// RevertTo reverts the state to the given checkpoint.
// Writes made after the checkpoint are undone in reverse order.
func (s *State) RevertTo(checkpoint int) {
	for i := len(s.journal) - 1; i >= checkpoint; i-- {
		e := s.journal[i]
		if e.existed {
			s.storage[e.key] = e.prev
		} else {
			delete(s.storage, e.key)
		}
	}
	s.journal = s.journal[:checkpoint]
}
