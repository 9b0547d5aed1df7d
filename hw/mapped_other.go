// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// +build !linux

package hw

import "errors"

const DevMem = "/dev/mem"

var ErrNotSupported = errors.New("hw: physical mapping not supported")

type Mapped struct{}

func Map(name string, base, size uintptr) (*Mapped, error) {
	return nil, ErrNotSupported
}

func (*Mapped) Size() uintptr                           { return 0 }
func (*Mapped) LoadUint64(offset uintptr) uint64        { return 0 }
func (*Mapped) StoreUint64(offset uintptr, data uint64) {}
func (*Mapped) Close() error                            { return nil }
