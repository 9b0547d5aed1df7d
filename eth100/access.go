// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eth100

import (
	"github.com/platinasystems/eth100/eth100/reg"
	"github.com/platinasystems/log"
)

// Sentinel is read from rejected registers in diagnostic mode.
const Sentinel = 0xDEADBEEF

func inRange(offset uintptr) bool {
	return offset < reg.Size && offset&7 == 0
}

// Registers are indexed by 64-bit word so the low offset bits are ignored.
func (d *Device) read(offset uintptr) uint64 {
	if d.cfg.Diagnostic && !inRange(offset) {
		d.count(reg_out_of_range)
		log.Printf("daemon", "err", "eth100: read(%#x) out of range",
			offset)
		return Sentinel
	}
	return d.w.LoadUint64(offset &^ 7)
}

func (d *Device) write(offset uintptr, data uint64) {
	if d.cfg.Diagnostic && !inRange(offset) {
		d.count(reg_out_of_range)
		log.Printf("daemon", "err", "eth100: write(%#x, %#x) out of range",
			offset, data)
		return
	}
	d.w.StoreUint64(offset&^7, data)
}

// Peek and Poke give raw register access, subject to the same diagnostic
// checks as the driver's own access.
func (d *Device) Peek(offset uintptr) uint64       { return d.read(offset) }
func (d *Device) Poke(offset uintptr, data uint64) { d.write(offset, data) }
