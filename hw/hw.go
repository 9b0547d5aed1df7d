// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package hw provides windows of 64-bit memory mapped registers.
package hw

import "fmt"

// A Window is a device register window addressed by byte offset from the
// device base. Loads are never cached; each one reflects the device.
type Window interface {
	LoadUint64(offset uintptr) uint64
	StoreUint64(offset uintptr, data uint64)
	// Size in bytes of the window.
	Size() uintptr
}

// CheckRegAddr reports a register whose computed offset doesn't match the
// device manual.
func CheckRegAddr(name string, got, want uintptr) error {
	if got != want {
		return fmt.Errorf("%s got 0x%x != want 0x%x", name, got, want)
	}
	return nil
}

// Mem is a Window backed by ordinary memory. Offsets are truncated to a
// 64-bit boundary; loads beyond the end read zero and stores are ignored.
type Mem struct {
	words []uint64
}

func NewMem(size uintptr) *Mem {
	return &Mem{words: make([]uint64, (size+7)/8)}
}

func (m *Mem) Size() uintptr { return uintptr(len(m.words)) * 8 }

func (m *Mem) LoadUint64(offset uintptr) uint64 {
	if i := offset >> 3; i < uintptr(len(m.words)) {
		return m.words[i]
	}
	return 0
}

func (m *Mem) StoreUint64(offset uintptr, data uint64) {
	if i := offset >> 3; i < uintptr(len(m.words)) {
		m.words[i] = data
	}
}
