// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/platinasystems/eth100/eth100/redisstat"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"
)

type counters struct{ *tool }

func (counters) coreless() {}

func (counters) String() string { return "counters" }

func (counters) Usage() string {
	return "counters [-a] [-redis ADDRESS]"
}

func (counters) Apropos() string {
	return "print the counters published by poll"
}

func (c counters) Main(args ...string) error {
	flag, args := flags.New(args, "-a")
	parm, args := parms.New(args, "-redis")
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	conn, err := c.dial(parm.ByName["-redis"])
	if err != nil {
		return err
	}
	defer conn.Close()
	cs, err := redisstat.New(conn).Read()
	if err != nil {
		return err
	}
	for _, x := range cs {
		if x.Value != 0 || flag.ByName["-a"] {
			fmt.Fprintf(c.stdout, "%-24s%16s\n", x.Name,
				humanize.Comma(int64(x.Value)))
		}
	}
	return nil
}
