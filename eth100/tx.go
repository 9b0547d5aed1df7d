// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eth100

import (
	"encoding/binary"

	"github.com/platinasystems/eth100/eth100/reg"
)

// Round up to the 8 octet register width.
func roundUp8(n int) int { return (n + 7) &^ 7 }

// WaitTxIdle polls the TPLR busy bit at most Config.TxIdleWait times.
func (d *Device) WaitTxIdle() error {
	if d.cfg.TxIdleWait <= 0 {
		return nil
	}
	for i := 0; i < d.cfg.TxIdleWait; i++ {
		if !reg.TxStatus(d.read(reg.TPLR)).Busy() {
			return nil
		}
	}
	d.count(tx_busy_timeouts)
	return ErrTxBusy
}

// Send copies length octets of frame to the transmit buffer and starts
// transmission. Lengths beyond MaxPacket are truncated and octets beyond
// the end of frame are sent as zero.
//
// With Config.TxIdleWait zero, Send doesn't check that the previous frame
// has left; a second Send issued before then overwrites it in flight.
func (d *Device) Send(frame []byte, length int) error {
	if length > MaxPacket {
		d.count(tx_truncated)
		length = MaxPacket
	}
	if length < 0 {
		length = 0
	}
	if err := d.WaitTxIdle(); err != nil {
		return err
	}
	d.write(reg.TFCS, 0)
	for i := 0; i < roundUp8(length); i += 8 {
		var w [8]byte
		if i < len(frame) {
			copy(w[:], frame[i:])
		}
		d.write(reg.TXBUFF+uintptr(i), binary.LittleEndian.Uint64(w[:]))
	}
	d.write(reg.TPLR, uint64(length))
	d.count(tx_packets)
	d.add(tx_bytes, uint64(length))
	return nil
}
