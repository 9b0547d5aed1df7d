// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import "fmt"

type hwaddr struct{ *tool }

func (hwaddr) String() string  { return "hwaddr" }
func (hwaddr) Usage() string   { return "hwaddr" }
func (hwaddr) Apropos() string { return "print the core's MAC address" }

// Main reads the address registers, which also disables the rx interrupt.
func (c hwaddr) Main(args ...string) error {
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	fmt.Fprintln(c.stdout, c.dev.ReadHardwareAddr())
	return nil
}
