// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eth100

import "errors"

// Receive drops are counted by kind rather than returned; Send returns
// only ErrTxBusy.
var (
	ErrOversizeFrame       = errors.New("eth100: oversize frame")
	ErrUndersizeFrame      = errors.New("eth100: undersize frame")
	ErrRingSlot            = errors.New("eth100: rx slot error")
	ErrUnsupportedProtocol = errors.New("eth100: unsupported protocol")
	ErrBufferTooSmall      = errors.New("eth100: rx buffer too small")
	ErrRegisterOutOfRange  = errors.New("eth100: register out of range")
	ErrTxBusy              = errors.New("eth100: tx busy")
	ErrNoDevice            = errors.New("eth100: no device")
)
