// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eth100

import (
	"encoding/binary"
	"fmt"

	"github.com/platinasystems/fdt"
	"github.com/platinasystems/log"
)

// Compatible is the device tree compatible string of the core.
const Compatible = "lowrisc-eth"

const fdtMagic = 0xd00dfeed

// Cell counts assumed when the parent node doesn't give them.
const (
	defaultAddrCells = 2
	defaultSizeCells = 1
)

// parentOf searches the tree below root for the node holding n.
func parentOf(root, n *fdt.Node) *fdt.Node {
	if root == nil {
		return nil
	}
	for _, c := range root.Children {
		if c == n {
			return root
		}
		if p := parentOf(c, n); p != nil {
			return p
		}
	}
	return nil
}

// Probe finds the core in a flattened device tree blob and returns its
// configuration: the base of the first "reg" entry and the "reg" of the
// node referenced by "phy-handle". Without a phy-handle the PHY address
// is DefaultPhyAddr; with a PHY node lacking "reg" it's -1.
func Probe(dtb []byte) (cfg Config, err error) {
	cfg = DefaultConfig()
	if len(dtb) < 8 || binary.BigEndian.Uint32(dtb) != fdtMagic ||
		int(binary.BigEndian.Uint32(dtb[4:])) > len(dtb) {
		err = fmt.Errorf("%w: invalid device tree", ErrNoDevice)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: malformed device tree: %v",
				ErrNoDevice, r)
		}
	}()
	t := &fdt.Tree{Debug: false, IsLittleEndian: false}
	if e := t.Parse(dtb); e != nil {
		err = fmt.Errorf("%w: %v", ErrNoDevice, e)
		return
	}
	if t.RootNode == nil {
		err = fmt.Errorf("%w: empty device tree", ErrNoDevice)
		return
	}

	var dev *fdt.Node
	t.EachProperty("compatible", Compatible,
		func(n *fdt.Node, name string, value string) {
			if dev == nil {
				dev = n
			}
		})
	if dev == nil {
		err = fmt.Errorf("%w: %s not compatible", ErrNoDevice, Compatible)
		return
	}

	addrCells, sizeCells := defaultAddrCells, defaultSizeCells
	if parent := parentOf(t.RootNode, dev); parent != nil {
		if v := parent.Properties["#address-cells"]; len(v) == 4 {
			addrCells = int(t.PropUint32(v))
		}
		if v := parent.Properties["#size-cells"]; len(v) == 4 {
			sizeCells = int(t.PropUint32(v))
		}
	}
	regs := dev.Properties["reg"]
	switch {
	case addrCells != 1 && addrCells != 2:
		err = fmt.Errorf("%w: %s: unsupported #address-cells %d",
			ErrNoDevice, dev.Name, addrCells)
		return
	case len(regs) < 4*addrCells:
		err = fmt.Errorf("%w: %s: reg: unexpected length %d",
			ErrNoDevice, dev.Name, len(regs))
		return
	}
	for i := 0; i < addrCells; i++ {
		cfg.Base = cfg.Base<<32 | uintptr(t.PropUint32(regs[4*i:]))
	}
	log.Printf("daemon", "debug", "eth100: %s: %d address cells, %d size cells",
		dev.Name, addrCells, sizeCells)

	if ph := dev.Properties["phy-handle"]; len(ph) == 4 {
		handle := t.PropUint32(ph)
		t.EachProperty("phandle", "",
			func(n *fdt.Node, name string, value string) {
				if len(value) != 4 ||
					t.PropUint32([]byte(value)) != handle {
					return
				}
				cfg.PhyAddr = -1
				if r := n.Properties["reg"]; len(r) >= 4 {
					cfg.PhyAddr = int(t.PropUint32(r))
				}
			})
	}

	log.Printf("daemon", "info", "eth100: %s: base %#x phyaddr %d",
		dev.Name, cfg.Base, cfg.PhyAddr)
	return
}
