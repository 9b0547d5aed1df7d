// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eth100

import (
	"testing"

	"github.com/google/gopacket/layers"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		et      layers.EthernetType
		proto   Proto
		verdict Verdict
	}{
		{layers.EthernetTypeIPv4, ProtoIPv4, Accept},
		{layers.EthernetTypeARP, ProtoARP, Accept},
		{layers.EthernetTypeIPv6, ProtoIPv6, Drop},
		{layers.EthernetTypeLinkLayerDiscovery, ProtoUnknown, Drop},
		{layers.EthernetTypeDot1Q, ProtoUnknown, Drop},
		{0x0000, ProtoUnknown, Drop},
		{0xffff, ProtoUnknown, Drop},
	} {
		p := Classify(tc.et)
		if p != tc.proto {
			t.Errorf("%#04x: %s != %s", uint16(tc.et), p, tc.proto)
		}
		if v := p.Verdict(); v != tc.verdict {
			t.Errorf("%#04x: %s != %s", uint16(tc.et), v, tc.verdict)
		}
	}
}

func TestProtoString(t *testing.T) {
	for p, want := range map[Proto]string{
		ProtoUnknown: "unknown",
		ProtoIPv4:    "ip4",
		ProtoARP:     "arp",
		ProtoIPv6:    "ip6",
		nProto:       "invalid",
	} {
		if got := p.String(); got != want {
			t.Errorf("%d: %s != %s", p, got, want)
		}
	}
	if nProto.Verdict() != Drop {
		t.Error("invalid proto accepted")
	}
}
