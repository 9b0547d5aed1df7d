// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"
	"strconv"

	"github.com/platinasystems/eth100/eth100"
	"github.com/platinasystems/eth100/eth100/eth100sim"
	"github.com/platinasystems/eth100/eth100/redisstat"
	"github.com/platinasystems/eth100/eth100/reg"
	"github.com/platinasystems/eth100/hw"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"
	"github.com/platinasystems/url"
)

const DefaultDtb = "/sys/firmware/fdt"

// Locally administered address of the simulated core.
var simHwAddr = eth100.HwAddr{0x02, 0x00, 0x4c, 0x52, 0x00, 0x01}

var errUsage = errors.New("usage: eth100 [-dtb FILE | -base ADDRESS | -sim] [-diag] COMMAND [ARGS]...")

type command interface {
	String() string
	Usage() string
	Apropos() string
	Main(...string) error
}

// Commands that don't use the core skip opening it.
type coreless interface {
	coreless()
}

type redisConn interface {
	redisstat.Conn
	Close() error
}

type tool struct {
	stdout io.Writer
	stop   chan struct{}
	// dial a redis server for poll and counters
	dial func(addr string) (redisConn, error)

	sim     *eth100sim.Device
	dev     *eth100.Device
	started bool
	closer  io.Closer
}

func newTool() *tool {
	return &tool{
		stdout: os.Stdout,
		dial: func(addr string) (redisConn, error) {
			return redisstat.Dial(addr)
		},
	}
}

type byName map[string]command

func (t *tool) byName() byName {
	m := make(byName)
	for _, c := range []command{
		counters{t},
		hwaddr{t},
		poll{t},
		regs{t},
		send{t},
	} {
		m[c.String()] = c
	}
	return m
}

func (m byName) keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (t *tool) help(m byName) {
	fmt.Fprintln(t.stdout, errUsage)
	for _, k := range m.keys() {
		fmt.Fprintf(t.stdout, "\t%-40s %s\n", m[k].Usage(), m[k].Apropos())
	}
}

func (t *tool) Main(args ...string) (err error) {
	flag, args := flags.New(args, "-sim", "-diag", "-h", "-help")
	parm, args := parms.New(args, "-dtb", "-base")
	m := t.byName()
	help := flag.ByName["-h"] || flag.ByName["-help"]
	if len(args) == 0 {
		if help {
			t.help(m)
			return nil
		}
		return errUsage
	}
	if args[0] == "help" {
		t.help(m)
		return nil
	}
	c, found := m[args[0]]
	if !found {
		return fmt.Errorf("%s: command not found", args[0])
	}
	if help {
		fmt.Fprintln(t.stdout, "usage:", c.Usage())
		return nil
	}
	if _, ok := c.(coreless); ok {
		return c.Main(args[1:]...)
	}
	if err = t.open(flag, parm); err != nil {
		return err
	}
	defer func() {
		if e := t.close(); err == nil {
			err = e
		}
	}()
	return c.Main(args[1:]...)
}

// open the device chosen by the global options without touching its
// registers.
func (t *tool) open(flag *flags.Flags, parm *parms.Parms) error {
	cfg := eth100.DefaultConfig()
	var w hw.Window
	switch {
	case flag.ByName["-sim"] || t.sim != nil:
		if t.sim == nil {
			t.sim = eth100sim.New()
			t.sim.SetHwAddr(simHwAddr, 0)
		}
		w = t.sim
	case parm.ByName["-base"] != "":
		base, err := strconv.ParseUint(parm.ByName["-base"], 0, 64)
		if err != nil {
			return fmt.Errorf("-base: %v", err)
		}
		cfg.Base = uintptr(base)
	default:
		fn := parm.ByName["-dtb"]
		if fn == "" {
			fn = DefaultDtb
		}
		b, err := readURL(fn)
		if err != nil {
			return err
		}
		if cfg, err = eth100.Probe(b); err != nil {
			return fmt.Errorf("%s: %w", fn, err)
		}
	}
	if w == nil {
		m, err := hw.Map(hw.DevMem, cfg.Base, reg.Size)
		if err != nil {
			return err
		}
		w, t.closer = m, m
	}
	cfg.Diagnostic = cfg.Diagnostic || flag.ByName["-diag"]
	t.dev = eth100.New(w, cfg)
	return nil
}

// readURL reads a file or URL.
func readURL(name string) ([]byte, error) {
	r, err := url.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ioutil.ReadAll(r)
}

func (t *tool) close() (err error) {
	if t.started {
		t.dev.Stop()
		t.started = false
	}
	if t.closer != nil {
		err = t.closer.Close()
		t.closer = nil
	}
	t.dev = nil
	return
}

// start the device for commands that pass traffic.
func (t *tool) start() {
	t.dev.Start()
	t.started = true
}
