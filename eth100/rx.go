// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eth100

import (
	"encoding/binary"

	"github.com/google/gopacket/layers"
	"github.com/platinasystems/eth100/eth100/reg"
)

// Octet offset of the Ethertype in a received frame, and where that lands
// in the slot's 64-bit words.
const (
	etherTypeOffset = 12
	etherTypeWord   = etherTypeOffset &^ 7
	etherTypeShift  = etherTypeOffset % 8 * 8
)

// TryReceive polls the receive ring once. It returns a newly allocated
// frame when the current slot holds a valid IPv4 or ARP frame.
//
// Whenever the ring reports a frame, the slot is acknowledged exactly once,
// whether or not the frame is returned; otherwise no register is written.
func (d *Device) TryReceive() ([]byte, bool) {
	var frame []byte
	n, ok := d.receive(func(n int) []byte {
		frame = make([]byte, roundUp8(n))
		return frame
	})
	if !ok {
		return nil, false
	}
	return frame[:n], true
}

// Receive is TryReceive into buf. A frame longer than buf is dropped.
func (d *Device) Receive(buf []byte) (int, bool) {
	return d.receive(func(n int) []byte {
		if n > len(buf) {
			return nil
		}
		return buf
	})
}

func (d *Device) receive(get func(n int) []byte) (n int, ok bool) {
	status := reg.RxStatus(d.read(reg.RSR))
	if !status.Done() {
		return
	}
	slot := status.First()
	defer d.write(reg.RSR, uint64(slot+1))

	errs := reg.RxErrors(d.read(reg.RBAD))
	n = int(int64(d.read(reg.RPLRSlot(slot))) - FCSLen)
	switch {
	case n < MinPacket:
		d.drop(ErrUndersizeFrame, slot, n)
		return 0, false
	case n > MaxPacket:
		d.drop(ErrOversizeFrame, slot, n)
		return 0, false
	case !errs.Usable(slot):
		d.drop(ErrRingSlot, slot, n)
		return 0, false
	}

	base := reg.RXBUFFSlot(slot)
	if Classify(d.etherType(base)).Verdict() != Accept {
		d.drop(ErrUnsupportedProtocol, slot, n)
		return 0, false
	}
	buf := get(n)
	if buf == nil {
		d.drop(ErrBufferTooSmall, slot, n)
		return 0, false
	}
	d.copyFrom(buf, base, n)
	d.count(rx_packets)
	d.add(rx_bytes, uint64(n))
	return n, true
}

// Frames sit in the slot buffer in memory order, so the big endian
// Ethertype is octets 12 and 13 of the little endian word at offset 8.
func (d *Device) etherType(base uintptr) layers.EthernetType {
	w := d.read(base + etherTypeWord)
	return layers.EthernetType(uint16(byte(w>>etherTypeShift))<<8 |
		uint16(byte(w>>(etherTypeShift+8))))
}

// copyFrom reads the words holding n octets at base into buf.
func (d *Device) copyFrom(buf []byte, base uintptr, n int) {
	var w [8]byte
	for i := 0; i < n; i += 8 {
		binary.LittleEndian.PutUint64(w[:], d.read(base+uintptr(i)))
		copy(buf[i:], w[:])
	}
}
