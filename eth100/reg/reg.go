// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package reg describes the register window of the LowRISC 100BaseT
// Ethernet core.
//
// Every register is a 64-bit slot at a byte offset from the device base.
// The bit fields packed into those slots are decoded here, once, by the
// named types below so the driver and device model share one layout.
package reg

// Byte offsets from the device base.
const (
	MACLO    = 0x0800 // MAC address low 32 bits
	MACHI    = 0x0808 // MAC address high 16 bits and MAC control
	TPLR     = 0x0810 // Tx packet length; writing starts transmission
	TFCS     = 0x0818 // Tx frame check sequence
	MDIOCTRL = 0x0820 // MDIO control
	RFCS     = 0x0828 // Rx frame check sequence (read), ring depth (write)
	RSR      = 0x0830 // Rx status and acknowledge
	RBAD     = 0x0838 // Rx bad frame and bad FCS arrays
	RPLR     = 0x0840 // Rx packet length array, one per slot

	TXBUFF = 0x1000 // Tx buffer
	RXBUFF = 0x4000 // Rx buffers, one per slot

	// End of the register window.
	Size = 0x8000
)

const (
	RingDepth    = 8
	RXBUFFStride = 0x800
	TXBUFFSize   = 0x800
)

// Slot masks a ring slot number to the ring depth.
func Slot(slot uint) uint { return slot & (RingDepth - 1) }

// RPLRSlot is the offset of the given slot's received length.
func RPLRSlot(slot uint) uintptr { return RPLR + uintptr(Slot(slot))<<3 }

// RXBUFFSlot is the offset of the given slot's receive buffer.
func RXBUFFSlot(slot uint) uintptr {
	return RXBUFF + uintptr(Slot(slot))*RXBUFFStride
}

// MACHI bits.
type MacCtrl uint64

const (
	MACHIAddr    MacCtrl = 0x0000ffff // MAC high 16 bits
	MACHIFIAD    MacCtrl = 0x001f0000 // PHY address
	MACHINoPre   MacCtrl = 0x00200000 // no preamble
	MACHIAllPkts MacCtrl = 0x00400000 // promiscuous
	MACHIIRQEn   MacCtrl = 0x00800000 // Rx packet interrupt enable
	MACHIDivider MacCtrl = 0xff000000 // MDIO clock divider

	machiFIADShift    = 16
	machiDividerShift = 24
)

func (r MacCtrl) Addr() uint16      { return uint16(r & MACHIAddr) }
func (r MacCtrl) PhyAddr() uint8    { return uint8((r & MACHIFIAD) >> machiFIADShift) }
func (r MacCtrl) Divider() uint8    { return uint8((r & MACHIDivider) >> machiDividerShift) }
func (r MacCtrl) IRQEnabled() bool  { return r&MACHIIRQEn != 0 }
func (r MacCtrl) Promiscuous() bool { return r&MACHIAllPkts != 0 }
func (r MacCtrl) NoPreamble() bool  { return r&MACHINoPre != 0 }

// TPLR bits.
type TxStatus uint64

const (
	TPLRLen       TxStatus = 0x00000fff
	TPLRFrameAddr TxStatus = 0x0fff0000
	TPLRBusy      TxStatus = 0x80000000
)

func (r TxStatus) Len() int   { return int(r & TPLRLen) }
func (r TxStatus) Busy() bool { return r&TPLRBusy != 0 }

// RSR bits.
//
//	[3:0]	first available buffer (static)
//	[7:4]	current rx buffer (volatile)
//	[11:8]	last available buffer (static)
//	[12]	rx complete
//	[13]	rx irq
//
// Writing a slot number acknowledges every slot before it.
type RxStatus uint64

const (
	RSRFirst RxStatus = 0x0000000f
	RSRNext  RxStatus = 0x000000f0
	RSRLast  RxStatus = 0x00000f00
	RSRDone  RxStatus = 0x00001000
	RSRIRQ   RxStatus = 0x00002000

	rsrNextShift = 4
	rsrLastShift = 8
)

func MakeRxStatus(first, next, last uint, done, irq bool) RxStatus {
	r := RxStatus(first)&RSRFirst |
		RxStatus(next<<rsrNextShift)&RSRNext |
		RxStatus(last<<rsrLastShift)&RSRLast
	if done {
		r |= RSRDone
	}
	if irq {
		r |= RSRIRQ
	}
	return r
}

func (r RxStatus) First() uint { return uint(r & RSRFirst) }
func (r RxStatus) Next() uint  { return uint((r & RSRNext) >> rsrNextShift) }
func (r RxStatus) Last() uint  { return uint((r & RSRLast) >> rsrLastShift) }
func (r RxStatus) Done() bool  { return r&RSRDone != 0 }
func (r RxStatus) IRQ() bool   { return r&RSRIRQ != 0 }

// RBAD bits, the receive error vector.
//
//	[7:0]	bad frame, one bit per slot
//	[15:8]	bad FCS, one bit per slot
type RxErrors uint64

const rbadFCSShift = 8

// RBADSlot is the pair of error bits of the given slot.
func RBADSlot(slot uint) RxErrors { return 0x101 << Slot(slot) }

// Usable reports whether the slot's error pair is not fully set.
func (r RxErrors) Usable(slot uint) bool { return RBADSlot(slot)&^r != 0 }

func (r RxErrors) BadFrame(slot uint) bool { return r&(1<<Slot(slot)) != 0 }
func (r RxErrors) BadFCS(slot uint) bool {
	return r&(1<<(Slot(slot)+rbadFCSShift)) != 0
}

// MDIOCTRL bits.
type MdioCtrl uint64

const (
	MDIOCTRLData     MdioCtrl = 0x0000ffff
	MDIOCTRLRegAddr  MdioCtrl = 0x001f0000
	MDIOCTRLWrite    MdioCtrl = 0x00200000
	MDIOCTRLReadStat MdioCtrl = 0x00400000
	MDIOCTRLScan     MdioCtrl = 0x00800000
	MDIOCTRLBusy     MdioCtrl = 0x01000000
	MDIOCTRLLinkFail MdioCtrl = 0x02000000
	MDIOCTRLNotValid MdioCtrl = 0x04000000

	mdioctrlRegAddrShift = 16
)

func MakeMdioCtrl(regAddr uint8, data uint16, write bool) MdioCtrl {
	r := MdioCtrl(data) | MdioCtrl(regAddr)<<mdioctrlRegAddrShift&MDIOCTRLRegAddr
	if write {
		r |= MDIOCTRLWrite
	}
	return r
}

func (r MdioCtrl) Data() uint16 { return uint16(r & MDIOCTRLData) }
func (r MdioCtrl) Busy() bool   { return r&MDIOCTRLBusy != 0 }
func (r MdioCtrl) LinkUp() bool { return r&MDIOCTRLLinkFail == 0 }
