// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eth100

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// dtb assembles a flattened device tree blob.
type dtb struct {
	structs bytes.Buffer
	strings bytes.Buffer
	offsets map[string]int
}

func cells(v ...uint32) []byte {
	b := make([]byte, 4*len(v))
	for i, x := range v {
		binary.BigEndian.PutUint32(b[4*i:], x)
	}
	return b
}

func (b *dtb) cell(v uint32) { b.structs.Write(cells(v)) }

func (b *dtb) pad() {
	for b.structs.Len()%4 != 0 {
		b.structs.WriteByte(0)
	}
}

func (b *dtb) begin(name string) *dtb {
	b.cell(0x1)
	b.structs.WriteString(name)
	b.structs.WriteByte(0)
	b.pad()
	return b
}

func (b *dtb) end() *dtb {
	b.cell(0x2)
	return b
}

func (b *dtb) prop(name string, value []byte) *dtb {
	if b.offsets == nil {
		b.offsets = make(map[string]int)
	}
	off, found := b.offsets[name]
	if !found {
		off = b.strings.Len()
		b.offsets[name] = off
		b.strings.WriteString(name)
		b.strings.WriteByte(0)
	}
	b.cell(0x3)
	b.cell(uint32(len(value)))
	b.cell(uint32(off))
	b.structs.Write(value)
	b.pad()
	return b
}

func (b *dtb) blob() []byte {
	const (
		headerLen = 40
		rsvmapLen = 16
	)
	b.cell(0x9)
	offStruct := headerLen + rsvmapLen
	offStrings := offStruct + b.structs.Len()
	total := offStrings + b.strings.Len()
	out := new(bytes.Buffer)
	out.Write(cells(fdtMagic, uint32(total), uint32(offStruct),
		uint32(offStrings), headerLen, 17, 16, 0,
		uint32(b.strings.Len()), uint32(b.structs.Len())))
	out.Write(make([]byte, rsvmapLen))
	out.Write(b.structs.Bytes())
	out.Write(b.strings.Bytes())
	return out.Bytes()
}

func str(s string) []byte { return append([]byte(s), 0) }

func none(b *dtb) {}

func socCells(addr, size uint32) func(b *dtb) {
	return func(b *dtb) {
		b.prop("#address-cells", cells(addr)).
			prop("#size-cells", cells(size))
	}
}

func board(soc, eth, phy func(b *dtb)) []byte {
	b := new(dtb)
	b.begin("").
		prop("#address-cells", cells(2)).
		prop("#size-cells", cells(2)).
		prop("compatible", str("freechips,rocketchip-unknown-dev")).
		begin("soc")
	soc(b)
	b.begin("eth@30000000")
	eth(b)
	b.end().
		begin("mdio").
		begin("phy@1")
	phy(b)
	b.end().end().end().end()
	return b.blob()
}

func TestProbe(t *testing.T) {
	for _, tc := range []struct {
		name    string
		soc     func(b *dtb)
		eth     func(b *dtb)
		phy     func(b *dtb)
		base    uintptr
		phyaddr int
	}{
		{
			name: "two cell reg",
			soc:  socCells(2, 2),
			eth: func(b *dtb) {
				b.prop("compatible", str(Compatible)).
					prop("reg", cells(0, 0x30000000, 0, 0x8000)).
					prop("phy-handle", cells(7))
			},
			phy: func(b *dtb) {
				b.prop("phandle", cells(7)).prop("reg", cells(1))
			},
			base:    0x30000000,
			phyaddr: 1,
		},
		{
			name: "one cell reg",
			soc:  socCells(1, 1),
			eth: func(b *dtb) {
				b.prop("compatible", str(Compatible)).
					prop("reg", cells(0x41000000, 0x8000)).
					prop("phy-handle", cells(3))
			},
			phy: func(b *dtb) {
				b.prop("phandle", cells(3)).prop("reg", cells(3))
			},
			base:    0x41000000,
			phyaddr: 3,
		},
		{
			name: "one cell reg, two entries",
			soc:  socCells(1, 1),
			eth: func(b *dtb) {
				b.prop("compatible", str(Compatible)).
					prop("reg", cells(0x30000000, 0x8000,
						0x40000000, 0x1000))
			},
			phy:     none,
			base:    0x30000000,
			phyaddr: DefaultPhyAddr,
		},
		{
			name: "one address cell, two size cells",
			soc:  socCells(1, 2),
			eth: func(b *dtb) {
				b.prop("compatible", str(Compatible)).
					prop("reg", cells(0x30000000, 0, 0x8000))
			},
			phy:     none,
			base:    0x30000000,
			phyaddr: DefaultPhyAddr,
		},
		{
			name: "default cells",
			soc:  none,
			eth: func(b *dtb) {
				b.prop("compatible", str(Compatible)).
					prop("reg", cells(0x1, 0x30000000, 0x8000))
			},
			phy:     none,
			base:    0x130000000,
			phyaddr: DefaultPhyAddr,
		},
		{
			name: "no phy-handle",
			soc:  none,
			eth: func(b *dtb) {
				b.prop("compatible", str(Compatible)).
					prop("reg", cells(0, 0x30000000, 0, 0x8000))
			},
			phy: func(b *dtb) {
				b.prop("phandle", cells(7)).prop("reg", cells(5))
			},
			base:    0x30000000,
			phyaddr: DefaultPhyAddr,
		},
		{
			name: "phy without reg",
			soc:  none,
			eth: func(b *dtb) {
				b.prop("compatible", str(Compatible)).
					prop("reg", cells(0, 0x30000000, 0, 0x8000)).
					prop("phy-handle", cells(7))
			},
			phy: func(b *dtb) {
				b.prop("phandle", cells(7))
			},
			base:    0x30000000,
			phyaddr: -1,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Probe(board(tc.soc, tc.eth, tc.phy))
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Base != tc.base {
				t.Errorf("base %#x != %#x", cfg.Base, tc.base)
			}
			if cfg.PhyAddr != tc.phyaddr {
				t.Errorf("phyaddr %d != %d", cfg.PhyAddr, tc.phyaddr)
			}
			if cfg.TxIdleWait != DefaultTxIdleWait {
				t.Errorf("tx idle wait %d", cfg.TxIdleWait)
			}
		})
	}
}

func TestProbeNoDevice(t *testing.T) {
	noeth := board(none, func(b *dtb) {
		b.prop("compatible", str("sifive,uart0")).
			prop("reg", cells(0, 0x41000000, 0, 0x1000))
	}, none)
	badreg := board(none, func(b *dtb) {
		b.prop("compatible", str(Compatible)).
			prop("reg", cells(1))
	}, none)
	badcells := board(socCells(3, 1), func(b *dtb) {
		b.prop("compatible", str(Compatible)).
			prop("reg", cells(0, 0, 0x30000000, 0x8000))
	}, none)
	// a node left open
	unbalanced := new(dtb)
	unbalanced.begin("").begin("soc").end()
	for name, blob := range map[string][]byte{
		"empty":      nil,
		"magic":      []byte("not a device tree blob at all"),
		"truncated":  noeth[:len(noeth)/2],
		"no eth":     noeth,
		"bad reg":    badreg,
		"bad cells":  badcells,
		"unbalanced": unbalanced.blob(),
	} {
		if _, err := Probe(blob); !errors.Is(err, ErrNoDevice) {
			t.Errorf("%s: err %v", name, err)
		}
	}
}
