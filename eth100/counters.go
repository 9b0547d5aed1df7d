// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eth100

import "sync/atomic"

const (
	rx_packets = iota
	rx_bytes
	rx_undersize_drops
	rx_oversize_drops
	rx_slot_error_drops
	rx_protocol_drops
	rx_short_buffer_drops
	tx_packets
	tx_bytes
	tx_truncated
	tx_busy_timeouts
	reg_out_of_range
	n_counters
)

var counterNames = [n_counters]string{
	rx_packets:            "rx packets",
	rx_bytes:              "rx bytes",
	rx_undersize_drops:    "rx undersize drops",
	rx_oversize_drops:     "rx oversize drops",
	rx_slot_error_drops:   "rx slot error drops",
	rx_protocol_drops:     "rx protocol drops",
	rx_short_buffer_drops: "rx short buffer drops",
	tx_packets:            "tx packets",
	tx_bytes:              "tx bytes",
	tx_truncated:          "tx truncated",
	tx_busy_timeouts:      "tx busy timeouts",
	reg_out_of_range:      "register out of range",
}

var counterByErr = map[error]int{
	ErrUndersizeFrame:      rx_undersize_drops,
	ErrOversizeFrame:       rx_oversize_drops,
	ErrRingSlot:            rx_slot_error_drops,
	ErrUnsupportedProtocol: rx_protocol_drops,
	ErrBufferTooSmall:      rx_short_buffer_drops,
	ErrTxBusy:              tx_busy_timeouts,
	ErrRegisterOutOfRange:  reg_out_of_range,
}

type Counter struct {
	Name  string
	Value uint64
}

func (d *Device) count(i int)              { d.add(i, 1) }
func (d *Device) add(i int, n uint64)      { atomic.AddUint64(&d.counters[i], n) }
func (d *Device) counter(i int) (v uint64) { return atomic.LoadUint64(&d.counters[i]) }

// drop counts a receive drop of the given kind and logs the first few.
func (d *Device) drop(err error, slot uint, n int) {
	d.count(counterByErr[err])
	d.drops.Print("daemon", "debug", err, ": slot ", slot, " length ", n)
}

// Count of the given error kind.
func (d *Device) Count(err error) uint64 {
	i, found := counterByErr[err]
	if !found {
		return 0
	}
	return d.counter(i)
}

// Counters may be read while another goroutine sends and receives.
func (d *Device) Counters() []Counter {
	cs := make([]Counter, n_counters)
	for i := range cs {
		cs[i] = Counter{counterNames[i], d.counter(i)}
	}
	return cs
}

func (d *Device) ClearCounters() {
	for i := range d.counters {
		atomic.StoreUint64(&d.counters[i], 0)
	}
}
