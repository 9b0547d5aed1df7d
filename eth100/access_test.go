// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eth100

import (
	"testing"

	"github.com/platinasystems/eth100/eth100/eth100sim"
	"github.com/platinasystems/eth100/eth100/reg"
)

func TestDiagnosticAccess(t *testing.T) {
	sim := eth100sim.New()
	cfg := DefaultConfig()
	cfg.Diagnostic = true
	d := New(sim, cfg)

	for _, o := range []uintptr{reg.Size, reg.Size + 8, reg.RSR + 1, reg.MACLO + 4} {
		if got := d.Peek(o); got != Sentinel {
			t.Errorf("read(%#x) %#x", o, got)
		}
		d.Poke(o, 1)
	}
	if got := sim.Stores(); len(got) != 0 {
		t.Errorf("rejected writes reached the window: %v", got)
	}
	if got := d.Count(ErrRegisterOutOfRange); got != 8 {
		t.Errorf("out of range count %d", got)
	}

	d.Poke(reg.RXBUFF+reg.RXBUFFStride*7, 0x55)
	if got := d.Peek(reg.RXBUFF + reg.RXBUFFStride*7); got != 0x55 {
		t.Errorf("in range read %#x", got)
	}
}

func TestAccessAlignsOffsets(t *testing.T) {
	d, sim := newTestDevice(t)
	d.Poke(reg.MACLO+5, 0x12345678)
	if got := sim.Peek(reg.MACLO); got != 0x12345678 {
		t.Errorf("MACLO %#x", got)
	}
	if got := d.Peek(reg.MACLO + 3); got != 0x12345678 {
		t.Errorf("read %#x", got)
	}
	if got := d.Count(ErrRegisterOutOfRange); got != 0 {
		t.Errorf("out of range count %d", got)
	}
}
