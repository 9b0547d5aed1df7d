// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eth100

import "github.com/google/gopacket/layers"

// Proto is the closed set of Ethertypes the receive path knows about.
// Adding one means adding a constant, a Classify case and a Verdict case.
type Proto uint8

const (
	ProtoUnknown Proto = iota
	ProtoIPv4
	ProtoARP
	ProtoIPv6
	nProto
)

type Verdict uint8

const (
	Drop Verdict = iota
	Accept
)

func Classify(t layers.EthernetType) Proto {
	switch t {
	case layers.EthernetTypeIPv4:
		return ProtoIPv4
	case layers.EthernetTypeARP:
		return ProtoARP
	case layers.EthernetTypeIPv6:
		return ProtoIPv6
	}
	return ProtoUnknown
}

// Verdict of a received frame carrying this protocol; IPv6 is recognized
// but not handed up.
func (p Proto) Verdict() Verdict {
	switch p {
	case ProtoIPv4, ProtoARP:
		return Accept
	case ProtoIPv6, ProtoUnknown:
		return Drop
	}
	return Drop
}

func (p Proto) String() string {
	if p >= nProto {
		return "invalid"
	}
	return [nProto]string{
		ProtoUnknown: "unknown",
		ProtoIPv4:    "ip4",
		ProtoARP:     "arp",
		ProtoIPv6:    "ip6",
	}[p]
}

func (v Verdict) String() string {
	if v == Accept {
		return "accept"
	}
	return "drop"
}
