// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// +build linux

package hw

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"go.uber.org/multierr"
	"golang.org/x/sys/unix"
)

const DevMem = "/dev/mem"

// Mapped is a Window of physical memory mapped through a file such as
// /dev/mem or a uio resource.
type Mapped struct {
	f   *os.File
	mem []byte
}

// Map the size bytes of physical address base from the named file.
// The base must be page aligned.
func Map(name string, base, size uintptr) (*Mapped, error) {
	if pg := uintptr(os.Getpagesize()); base%pg != 0 {
		return nil, fmt.Errorf("%s: base %#x isn't page aligned", name, base)
	}
	f, err := os.OpenFile(name, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	mem, err := unix.Mmap(int(f.Fd()), int64(base), int(size),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s@%#x: %w", name, base, err)
	}
	return &Mapped{f: f, mem: mem}, nil
}

func (m *Mapped) Size() uintptr { return uintptr(len(m.mem)) }

func (m *Mapped) addr(offset uintptr) *uint64 {
	offset &^= 7
	if offset+8 > uintptr(len(m.mem)) {
		return nil
	}
	return (*uint64)(unsafe.Pointer(&m.mem[offset]))
}

func (m *Mapped) LoadUint64(offset uintptr) uint64 {
	if p := m.addr(offset); p != nil {
		return atomic.LoadUint64(p)
	}
	return 0
}

func (m *Mapped) StoreUint64(offset uintptr, data uint64) {
	if p := m.addr(offset); p != nil {
		atomic.StoreUint64(p, data)
	}
}

// Close unmaps the window then closes its file.
func (m *Mapped) Close() error {
	var err error
	if m.mem != nil {
		err = multierr.Append(err, unix.Munmap(m.mem))
		m.mem = nil
	}
	if m.f != nil {
		err = multierr.Append(err, m.f.Close())
		m.f = nil
	}
	return err
}
