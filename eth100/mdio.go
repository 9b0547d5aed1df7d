// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package eth100

import "github.com/platinasystems/log"

// MDIO is the PHY management bus. The core's MDIO controller isn't driven;
// reads return zero and writes are discarded, both without error.
type MDIO struct {
	d *Device
}

func (m *MDIO) Read(phy, regAddr uint8) (uint16, error) {
	log.Printf("daemon", "debug", "eth100: %#x: read MII %#x, %#x",
		m.d.cfg.Base, phy, regAddr)
	return 0, nil
}

func (m *MDIO) Write(phy, regAddr uint8, v uint16) error {
	log.Printf("daemon", "debug", "eth100: %#x: write MII %#x, %#x, %#x",
		m.d.cfg.Base, phy, regAddr, v)
	return nil
}
