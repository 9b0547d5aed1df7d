// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package redisstat publishes eth100 counters as fields of a redis hash.
package redisstat

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	redigo "github.com/garyburd/redigo/redis"
	"github.com/platinasystems/eth100/eth100"
	"go.uber.org/multierr"
)

const (
	DefaultAddr   = "127.0.0.1:6379"
	DefaultKey    = "platina"
	DefaultPrefix = "eth100."
)

// Conn is the part of a redigo connection that's used here.
type Conn interface {
	Do(cmd string, args ...interface{}) (interface{}, error)
}

// Source is typically an *eth100.Device.
type Source interface {
	Counters() []eth100.Counter
}

type Publisher struct {
	Key    string
	Prefix string

	conn Conn
	last map[string]uint64
}

// Dial a redis server at the given tcp address.
func Dial(addr string) (redigo.Conn, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	return redigo.Dial("tcp", addr,
		redigo.DialConnectTimeout(time.Second),
		redigo.DialWriteTimeout(time.Second))
}

func New(conn Conn) *Publisher {
	return &Publisher{
		Key:    DefaultKey,
		Prefix: DefaultPrefix,
		conn:   conn,
		last:   make(map[string]uint64),
	}
}

// Field is the hash field of the named counter, e.g. "eth100.rx_packets".
func (p *Publisher) Field(name string) string {
	return p.Prefix + strings.Replace(name, " ", "_", -1)
}

// Publish sets the fields of counters that changed since the last Publish.
// A failed field is retried on the next call.
func (p *Publisher) Publish(src Source) (err error) {
	for _, c := range src.Counters() {
		if v, found := p.last[c.Name]; found && v == c.Value {
			continue
		}
		_, e := p.conn.Do("HSET", p.Key, p.Field(c.Name), c.Value)
		if e != nil {
			err = multierr.Append(err, e)
			continue
		}
		p.last[c.Name] = c.Value
	}
	return
}

// Run publishes every interval until stop is closed, then once more.
func (p *Publisher) Run(src Source, interval time.Duration,
	stop <-chan struct{}) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return p.Publish(src)
		case <-t.C:
			if err := p.Publish(src); err != nil {
				return err
			}
		}
	}
}

// Read returns the counters last published under Key and Prefix, sorted by
// name.
func (p *Publisher) Read() ([]eth100.Counter, error) {
	m, err := redigo.StringMap(p.conn.Do("HGETALL", p.Key))
	if err != nil {
		return nil, err
	}
	var cs []eth100.Counter
	for field, s := range m {
		if !strings.HasPrefix(field, p.Prefix) {
			continue
		}
		v, e := strconv.ParseUint(s, 0, 64)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", field, e))
			continue
		}
		name := strings.Replace(strings.TrimPrefix(field, p.Prefix),
			"_", " ", -1)
		cs = append(cs, eth100.Counter{Name: name, Value: v})
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })
	return cs, err
}
