// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/platinasystems/eth100/eth100/reg"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"
)

type regs struct{ *tool }

func (regs) String() string { return "reg" }

func (regs) Usage() string {
	return "reg [[-r] | -w] {OFFSET | NAME} [-D DATA]"
}

func (regs) Apropos() string { return "read/write a core register" }

var regByName = map[string]uintptr{
	"MACLO":    reg.MACLO,
	"MACHI":    reg.MACHI,
	"TPLR":     reg.TPLR,
	"TFCS":     reg.TFCS,
	"MDIOCTRL": reg.MDIOCTRL,
	"RFCS":     reg.RFCS,
	"RSR":      reg.RSR,
	"RBAD":     reg.RBAD,
	"RPLR":     reg.RPLR,
	"TXBUFF":   reg.TXBUFF,
	"RXBUFF":   reg.RXBUFF,
}

func (c regs) Main(args ...string) error {
	flag, args := flags.New(args, "-r", "-w")
	parm, args := parms.New(args, "-D")
	if len(args) == 0 {
		return fmt.Errorf("OFFSET: missing")
	}
	if len(args) > 1 {
		return fmt.Errorf("%v: unexpected", args[1:])
	}
	offset, found := regByName[strings.ToUpper(args[0])]
	if !found {
		o, err := strconv.ParseUint(args[0], 0, 32)
		if err != nil {
			return fmt.Errorf("%s: %v", args[0], err)
		}
		offset = uintptr(o)
	}
	if flag.ByName["-w"] {
		s := parm.ByName["-D"]
		if s == "" {
			return fmt.Errorf("-D DATA: missing")
		}
		data, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return fmt.Errorf("%s: %v", s, err)
		}
		c.dev.Poke(offset, data)
		return nil
	}
	v := c.dev.Peek(offset)
	fmt.Fprintf(c.stdout, "%#x: %#016x", offset, v)
	if s := decode(offset, v); s != "" {
		fmt.Fprint(c.stdout, " ", s)
	}
	fmt.Fprintln(c.stdout)
	return nil
}

// decode the fields of control registers.
func decode(offset uintptr, v uint64) string {
	switch offset &^ 7 {
	case reg.MACHI:
		r := reg.MacCtrl(v)
		return fmt.Sprintf("addr %#04x phy %d divider %d irq %t allpkts %t nopre %t",
			r.Addr(), r.PhyAddr(), r.Divider(), r.IRQEnabled(),
			r.Promiscuous(), r.NoPreamble())
	case reg.TPLR:
		r := reg.TxStatus(v)
		return fmt.Sprintf("len %d busy %t", r.Len(), r.Busy())
	case reg.MDIOCTRL:
		r := reg.MdioCtrl(v)
		return fmt.Sprintf("data %#04x busy %t link %t",
			r.Data(), r.Busy(), r.LinkUp())
	case reg.RSR:
		r := reg.RxStatus(v)
		return fmt.Sprintf("first %d next %d last %d done %t irq %t",
			r.First(), r.Next(), r.Last(), r.Done(), r.IRQ())
	case reg.RBAD:
		r := reg.RxErrors(v)
		var bad []string
		for slot := uint(0); slot < reg.RingDepth; slot++ {
			switch {
			case !r.Usable(slot):
				bad = append(bad, fmt.Sprint(slot, ":unusable"))
			case r.BadFrame(slot):
				bad = append(bad, fmt.Sprint(slot, ":frame"))
			case r.BadFCS(slot):
				bad = append(bad, fmt.Sprint(slot, ":fcs"))
			}
		}
		if len(bad) == 0 {
			return "ok"
		}
		return strings.Join(bad, " ")
	}
	return ""
}
