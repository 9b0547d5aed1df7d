// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// The eth100 command exercises a LowRISC 100BaseT Ethernet core through
// its register window.
//
//	eth100 [-dtb FILE | -base ADDRESS | -sim] [-diag] COMMAND [ARGS]...
//
// The core is found in the device tree, /sys/firmware/fdt by default, which
// -dtb may name by file or URL, unless -base gives the physical address of its registers. With -sim the
// commands run against a simulated core.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newTool().Main(os.Args[1:]...); err != nil {
		fmt.Fprintln(os.Stderr, "eth100:", err)
		os.Exit(1)
	}
}
