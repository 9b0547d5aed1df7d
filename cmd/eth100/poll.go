// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/jpillora/backoff"
	"github.com/mattn/go-isatty"
	"github.com/platinasystems/eth100/eth100"
	"github.com/platinasystems/eth100/eth100/redisstat"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"
)

const publishInterval = time.Second

type poll struct{ *tool }

func (poll) String() string { return "poll" }

func (poll) Usage() string {
	return "poll [-x] [-c COUNT] [-redis ADDRESS]"
}

func (poll) Apropos() string { return "print received frames" }

func (c poll) Main(args ...string) (err error) {
	flag, args := flags.New(args, "-x")
	parm, args := parms.New(args, "-c", "-redis")
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	count := 0
	if s := parm.ByName["-c"]; s != "" {
		if count, err = strconv.Atoi(s); err != nil {
			return fmt.Errorf("-c: %v", err)
		}
	}

	stop := c.stop
	if stop == nil {
		stop = make(chan struct{})
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		defer signal.Stop(sig)
		go func() {
			<-sig
			close(stop)
		}()
	}

	c.start()

	if addr := parm.ByName["-redis"]; addr != "" {
		conn, err := c.dial(addr)
		if err != nil {
			return err
		}
		defer conn.Close()
		done := make(chan struct{})
		published := make(chan error, 1)
		go func() {
			published <- redisstat.New(conn).Run(c.dev,
				publishInterval, done)
		}()
		defer func() {
			close(done)
			if e := <-published; e != nil {
				log.Print("daemon", "warn", "eth100: redis: ", e)
			}
		}()
	}

	dump := hexLine
	if f, ok := c.stdout.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		dump = hex.Dump
	}

	b := &backoff.Backoff{
		Min:    time.Millisecond,
		Max:    100 * time.Millisecond,
		Factor: 2,
		Jitter: false,
	}
	buf := make([]byte, eth100.MaxPacket)
	for i := 0; count == 0 || i < count; {
		select {
		case <-stop:
			return nil
		default:
		}
		n, ok := c.dev.Receive(buf)
		if !ok {
			time.Sleep(b.Duration())
			continue
		}
		b.Reset()
		i++
		fmt.Fprintln(c.stdout, summary(buf[:n]))
		if flag.ByName["-x"] {
			fmt.Fprint(c.stdout, dump(buf[:n]))
		}
	}
	return nil
}

func hexLine(b []byte) string { return hex.EncodeToString(b) + "\n" }

// summary is one line per frame: length, layers, addresses.
func summary(frame []byte) string {
	p := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.Default)
	names := make([]string, 0, 4)
	for _, l := range p.Layers() {
		names = append(names, l.LayerType().String())
	}
	s := fmt.Sprintf("%d %s", len(frame), strings.Join(names, "/"))
	if eth, ok := p.LinkLayer().(*layers.Ethernet); ok {
		s += fmt.Sprintf(" %s > %s", eth.SrcMAC, eth.DstMAC)
	}
	if arp, ok := p.Layer(layers.LayerTypeARP).(*layers.ARP); ok {
		switch arp.Operation {
		case layers.ARPRequest:
			s += fmt.Sprintf(" who-has %s tell %s",
				net.IP(arp.DstProtAddress),
				net.IP(arp.SourceProtAddress))
		case layers.ARPReply:
			s += fmt.Sprintf(" %s is-at %s",
				net.IP(arp.SourceProtAddress),
				net.HardwareAddr(arp.SourceHwAddress))
		}
	} else if nl := p.NetworkLayer(); nl != nil {
		s += " " + nl.NetworkFlow().String()
	}
	if e := p.ErrorLayer(); e != nil {
		s += fmt.Sprint(" (", e.Error(), ")")
	}
	return s
}
