// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eth100

import (
	"net"

	"github.com/platinasystems/eth100/eth100/reg"
	"github.com/platinasystems/log"
)

type HwAddr [6]byte

func (a HwAddr) String() string { return net.HardwareAddr(a[:]).String() }

// ReadHardwareAddr returns the MAC address programmed into the core.
//
// Reading the address also rewrites MACHI with only its 16 address bits,
// which clears the receive interrupt enable along with the other control
// fields. The driver depends on the interrupt staying off; whether the
// hardware intends this coupling is unconfirmed, so keep it.
func (d *Device) ReadHardwareAddr() HwAddr {
	lo := d.read(reg.MACLO)
	hi := reg.MacCtrl(d.read(reg.MACHI)) & reg.MACHIAddr
	d.write(reg.MACHI, uint64(hi&^reg.MACHIIRQEn))
	a := HwAddr{
		byte(hi >> 8),
		byte(hi),
		byte(lo >> 24),
		byte(lo >> 16),
		byte(lo >> 8),
		byte(lo),
	}
	log.Printf("daemon", "info", "eth100: MAC = %x:%x", uint64(hi), lo)
	d.hwaddr = a
	return a
}

// HwAddr is the address last read by ReadHardwareAddr or Start.
func (d *Device) HwAddr() HwAddr { return d.hwaddr }
