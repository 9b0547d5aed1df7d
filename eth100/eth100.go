// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package eth100 is a polled driver for the LowRISC 100BaseT Ethernet core.
//
// The core has a single transmit buffer and an eight slot receive ring, both
// reached only through 64-bit register loads and stores; there are no DMA
// descriptors and this driver never enables the receive interrupt.
//
// A Device is owned by one caller. None of its methods block except Send,
// which polls the transmit busy bit a bounded number of times. Callers that
// share a Device among goroutines must serialize Send and Receive.
package eth100

import (
	"github.com/platinasystems/eth100/eth100/reg"
	"github.com/platinasystems/eth100/hw"
	"github.com/platinasystems/log"
)

const (
	// Frames outside [MinPacket, MaxPacket] are dropped on receive;
	// longer sends are truncated to MaxPacket.
	MinPacket = 14
	MaxPacket = 1536

	// Octets of hardware appended frame check sequence in RPLR.
	FCSLen = 4

	DefaultPhyAddr    = 1
	DefaultTxIdleWait = 1000
)

type Config struct {
	// Physical address of the register window.
	Base uintptr
	// PHY address from the device tree; the core is only known to work
	// with PHY 1.
	PhyAddr int
	// Diagnostic rejects and logs out of range or unaligned register
	// access instead of passing it to the window.
	Diagnostic bool
	// TxIdleWait bounds the TPLR busy polls made before each Send.
	// Zero sends without waiting.
	TxIdleWait int
}

func DefaultConfig() Config {
	return Config{
		PhyAddr:    DefaultPhyAddr,
		Diagnostic: diagnostic,
		TxIdleWait: DefaultTxIdleWait,
	}
}

type Device struct {
	// first for 64-bit alignment of atomic access
	counters [n_counters]uint64

	w      hw.Window
	cfg    Config
	hwaddr HwAddr
	mdio   MDIO
	drops  *log.Limited
}

// New returns a Device over the given register window. Nothing is read or
// written until Start.
func New(w hw.Window, cfg Config) *Device {
	d := &Device{
		w:     w,
		cfg:   cfg,
		drops: log.NewLimited(64),
	}
	d.mdio.d = d
	return d
}

func (d *Device) Config() Config { return d.cfg }

// MDIO is the stubbed management bus of the device's PHY.
func (d *Device) MDIO() *MDIO { return &d.mdio }

// Start resolves the hardware address, which also leaves the receive
// interrupt disabled, then configures the full receive ring.
func (d *Device) Start() {
	a := d.ReadHardwareAddr()
	d.write(reg.RFCS, reg.RingDepth)
	if d.cfg.PhyAddr != DefaultPhyAddr {
		log.Print("daemon", "warn", "eth100: unexpected phy address ",
			d.cfg.PhyAddr)
	}
	log.Printf("daemon", "info", "eth100: %#x started, %s, %d rx slots",
		d.cfg.Base, a, reg.RingDepth)
}

// Stop leaves the core as is.
func (d *Device) Stop() {
	log.Print("daemon", "debug", "eth100: stop")
}
