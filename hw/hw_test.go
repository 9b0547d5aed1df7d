// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package hw

import "testing"

func TestMem(t *testing.T) {
	m := NewMem(0x40)
	if got, want := m.Size(), uintptr(0x40); got != want {
		t.Fatalf("size %#x != %#x", got, want)
	}
	m.StoreUint64(0x10, 0x1122334455667788)
	if got := m.LoadUint64(0x10); got != 0x1122334455667788 {
		t.Errorf("load %#x", got)
	}
	// unaligned offsets address the containing word
	if got := m.LoadUint64(0x13); got != 0x1122334455667788 {
		t.Errorf("unaligned load %#x", got)
	}
	m.StoreUint64(0x40, 1)
	if got := m.LoadUint64(0x40); got != 0 {
		t.Errorf("load beyond end %#x", got)
	}
}

func TestCheckRegAddr(t *testing.T) {
	if err := CheckRegAddr("rsr", 0x830, 0x830); err != nil {
		t.Error(err)
	}
	if err := CheckRegAddr("rsr", 0x838, 0x830); err == nil {
		t.Error("mismatch not reported")
	}
}
