// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/platinasystems/eth100/eth100"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"
)

// Shortest frame put on the wire, without FCS.
const minFrame = 60

type send struct{ *tool }

func (send) String() string { return "send" }

func (send) Usage() string {
	return "send [-n LENGTH] {-arp [-to IPV4] | HEXBYTES...}"
}

func (send) Apropos() string { return "transmit one frame" }

func (c send) Main(args ...string) error {
	flag, args := flags.New(args, "-arp")
	parm, args := parms.New(args, "-n", "-to")
	length := -1
	if s := parm.ByName["-n"]; s != "" {
		i, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("-n: %v", err)
		}
		if i < 0 {
			return fmt.Errorf("-n: %d: negative length", i)
		}
		length = i
	}
	var frame []byte
	if flag.ByName["-arp"] {
		if len(args) > 0 {
			return fmt.Errorf("%v: unexpected", args)
		}
		c.start()
		b, err := arpRequest(c.dev.HwAddr(), parm.ByName["-to"])
		if err != nil {
			return err
		}
		frame = b
	} else {
		if len(args) == 0 {
			return fmt.Errorf("HEXBYTES: missing")
		}
		s := strings.Replace(strings.Join(args, ""), ":", "", -1)
		b, err := hex.DecodeString(s)
		if err != nil {
			return fmt.Errorf("HEXBYTES: %v", err)
		}
		frame = b
		c.start()
	}
	n := len(frame)
	if n < minFrame {
		n = minFrame
	}
	if length >= 0 {
		n = length
	}
	if err := c.dev.Send(frame, n); err != nil {
		return err
	}
	if n > eth100.MaxPacket {
		n = eth100.MaxPacket
	}
	fmt.Fprintf(c.stdout, "sent %d bytes\n", n)
	return nil
}

// arpRequest asks who has the given address, the limited broadcast by
// default.
func arpRequest(src eth100.HwAddr, to string) ([]byte, error) {
	if to == "" {
		to = "255.255.255.255"
	}
	ip := net.ParseIP(to).To4()
	if ip == nil {
		return nil, fmt.Errorf("-to: %q isn't an IPv4 address", to)
	}
	buf := gopacket.NewSerializeBuffer()
	err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{},
		&layers.Ethernet{
			SrcMAC:       src[:],
			DstMAC:       layers.EthernetBroadcast,
			EthernetType: layers.EthernetTypeARP,
		},
		&layers.ARP{
			AddrType:          layers.LinkTypeEthernet,
			Protocol:          layers.EthernetTypeIPv4,
			HwAddressSize:     6,
			ProtAddressSize:   4,
			Operation:         layers.ARPRequest,
			SourceHwAddress:   src[:],
			SourceProtAddress: net.IPv4zero.To4(),
			DstHwAddress:      make([]byte, 6),
			DstProtAddress:    ip,
		})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
