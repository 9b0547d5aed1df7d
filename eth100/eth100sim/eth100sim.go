// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package eth100sim models the LowRISC 100BaseT core behind a hw.Window.
//
// The model captures transmitted frames when TPLR is written, places
// delivered frames in receive ring slots, and retires slots when RSR is
// acknowledged. Every store made through the Window is recorded so tests
// may check exactly which registers the driver touched.
package eth100sim

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/platinasystems/eth100/eth100/reg"
	"github.com/platinasystems/eth100/hw"
)

var ErrRingFull = errors.New("eth100sim: receive ring full")

const fcsLen = 4

// Store is one register write made through the Window.
type Store struct {
	Offset uintptr
	Data   uint64
}

type Device struct {
	mu  sync.Mutex
	mem *hw.Mem

	// receive ring
	depth   uint
	first   uint
	next    uint
	pending uint

	busyReads int

	stores []Store
	sent   [][]byte
}

func New() *Device {
	return &Device{
		mem:   hw.NewMem(reg.Size),
		depth: reg.RingDepth,
	}
}

func (d *Device) Size() uintptr { return reg.Size }

func (d *Device) LoadUint64(offset uintptr) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch offset &^ 7 {
	case reg.RSR:
		return uint64(d.rsr())
	case reg.TPLR:
		v := d.mem.LoadUint64(reg.TPLR)
		if d.busyReads > 0 {
			d.busyReads--
			v |= uint64(reg.TPLRBusy)
		}
		return v
	}
	return d.mem.LoadUint64(offset)
}

func (d *Device) StoreUint64(offset uintptr, data uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stores = append(d.stores, Store{offset, data})
	switch offset &^ 7 {
	case reg.RSR:
		d.ack(uint(data))
		return
	case reg.RFCS:
		if data > 0 && data <= reg.RingDepth {
			d.depth = uint(data)
		}
	case reg.TPLR:
		d.transmit(reg.TxStatus(data).Len())
	}
	d.mem.StoreUint64(offset, data)
}

func (d *Device) rsr() reg.RxStatus {
	return reg.MakeRxStatus(d.first, d.next, d.depth-1, d.pending > 0, false)
}

// ack retires the slots before the written slot number.
func (d *Device) ack(slot uint) {
	slot %= d.depth
	n := (slot + d.depth - d.first) % d.depth
	if n > d.pending {
		n = d.pending
	}
	for i := uint(0); i < n; i++ {
		s := (d.first + i) % d.depth
		bad := reg.RxErrors(d.mem.LoadUint64(reg.RBAD)) &^ reg.RBADSlot(s)
		d.mem.StoreUint64(reg.RBAD, uint64(bad))
	}
	d.pending -= n
	d.first = slot
}

func (d *Device) transmit(n int) {
	b := make([]byte, (n+7)&^7)
	for i := 0; i < len(b); i += 8 {
		binary.LittleEndian.PutUint64(b[i:], d.mem.LoadUint64(reg.TXBUFF+uintptr(i)))
	}
	d.sent = append(d.sent, b[:n])
}

// Frame describes one delivery to the receive ring.
type Frame struct {
	Data []byte
	// Length overrides the RPLR value, which is otherwise len(Data) plus
	// the 4 octet FCS.
	Length uint64
	// BadFrame and BadFCS set the slot's RBAD bits.
	BadFrame bool
	BadFCS   bool
}

// Deliver places the frame in the next free ring slot and returns that slot.
func (d *Device) Deliver(f Frame) (uint, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == d.depth {
		return 0, ErrRingFull
	}
	slot := d.next
	n := f.Length
	if n == 0 {
		n = uint64(len(f.Data) + fcsLen)
	}
	d.mem.StoreUint64(reg.RPLRSlot(slot), n)
	base := reg.RXBUFFSlot(slot)
	for i := 0; i < len(f.Data) && i < reg.RXBUFFStride; i += 8 {
		var w [8]byte
		copy(w[:], f.Data[i:])
		d.mem.StoreUint64(base+uintptr(i), binary.LittleEndian.Uint64(w[:]))
	}
	bad := reg.RxErrors(d.mem.LoadUint64(reg.RBAD)) &^ reg.RBADSlot(slot)
	if f.BadFrame {
		bad |= 1 << slot
	}
	if f.BadFCS {
		bad |= 1 << (slot + 8)
	}
	d.mem.StoreUint64(reg.RBAD, uint64(bad))
	d.next = (d.next + 1) % d.depth
	d.pending++
	return slot, nil
}

// Position empties the ring and makes slot the next one filled and
// consumed.
func (d *Device) Position(slot uint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot %= d.depth
	d.first, d.next, d.pending = slot, slot, 0
	d.mem.StoreUint64(reg.RBAD, 0)
}

// SetHwAddr loads the MAC address registers as the core does at reset;
// control holds the MACHI bits above the address.
func (d *Device) SetHwAddr(a [6]byte, control reg.MacCtrl) {
	d.mu.Lock()
	defer d.mu.Unlock()
	lo := uint64(a[2])<<24 | uint64(a[3])<<16 | uint64(a[4])<<8 | uint64(a[5])
	hi := uint64(a[0])<<8 | uint64(a[1])
	d.mem.StoreUint64(reg.MACLO, lo)
	d.mem.StoreUint64(reg.MACHI, hi|uint64(control&^reg.MACHIAddr))
}

// Busy makes the next n reads of TPLR report a transmission in progress.
func (d *Device) Busy(n int) {
	d.mu.Lock()
	d.busyReads = n
	d.mu.Unlock()
}

// Pending is the number of delivered frames not yet acknowledged.
func (d *Device) Pending() uint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Depth is the ring depth last configured through RFCS.
func (d *Device) Depth() uint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.depth
}

// Sent returns and forgets the frames transmitted so far.
func (d *Device) Sent() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	sent := d.sent
	d.sent = nil
	return sent
}

// Stores returns and forgets the register writes recorded so far.
func (d *Device) Stores() []Store {
	d.mu.Lock()
	defer d.mu.Unlock()
	stores := d.stores
	d.stores = nil
	return stores
}

// StoresTo filters the recorded writes to one register without forgetting
// them.
func (d *Device) StoresTo(offset uintptr) (data []uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.stores {
		if s.Offset == offset {
			data = append(data, s.Data)
		}
	}
	return
}

// Peek reads the backing memory, bypassing the register model.
func (d *Device) Peek(offset uintptr) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mem.LoadUint64(offset)
}
