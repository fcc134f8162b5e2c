package provider

import (
	"strings"
	"sync/atomic"
)

// EndpointPool hands out provider endpoints round-robin.
type EndpointPool struct {
	endpoints []string
	current   int64
}

// NewEndpointPool builds a pool from a comma-separated endpoint list.
func NewEndpointPool(list string) *EndpointPool {
	raw := strings.Split(list, ",")
	endpoints := make([]string, 0, len(raw))
	for _, e := range raw {
		if e = strings.TrimSpace(e); e != "" {
			endpoints = append(endpoints, e)
		}
	}
	return &EndpointPool{endpoints: endpoints, current: -1}
}

// Next returns the next endpoint, or "" when the pool is empty.
func (p *EndpointPool) Next() string {
	switch len(p.endpoints) {
	case 0:
		return ""
	case 1:
		return p.endpoints[0]
	}

	next := atomic.AddInt64(&p.current, 1)
	n := int64(len(p.endpoints))
	// ((i % n) + n) % n stays non-negative after overflow
	return p.endpoints[((next%n)+n)%n]
}

func (p *EndpointPool) Endpoints() []string {
	out := make([]string, len(p.endpoints))
	copy(out, p.endpoints)
	return out
}

func (p *EndpointPool) Size() int {
	return len(p.endpoints)
}
