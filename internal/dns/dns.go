package dns

import (
	"net"
	"sync"
	"time"
)

// DNSLookup provides reverse DNS lookups with caching, used to label
// top source addresses on the console surface.
type DNSLookup struct {
	mu      sync.Mutex
	cache   map[string]string
	timeout time.Duration
}

// NewDNSLookup creates a new DNS lookup instance.
func NewDNSLookup() *DNSLookup {
	return &DNSLookup{
		cache:   make(map[string]string),
		timeout: 2 * time.Second,
	}
}

// ReverseLookup resolves a single address, returning the address
// itself when resolution fails or times out.
func (d *DNSLookup) ReverseLookup(ip string) string {
	d.mu.Lock()
	if hostname, ok := d.cache[ip]; ok {
		d.mu.Unlock()
		return hostname
	}
	d.mu.Unlock()

	hostname := d.lookupWithTimeout(ip)

	d.mu.Lock()
	d.cache[ip] = hostname
	d.mu.Unlock()

	return hostname
}

func (d *DNSLookup) lookupWithTimeout(ip string) string {
	type result struct {
		names []string
		err   error
	}

	ch := make(chan result, 1)
	go func() {
		names, err := net.LookupAddr(ip)
		ch <- result{names, err}
	}()

	select {
	case res := <-ch:
		if res.err == nil && len(res.names) > 0 {
			return res.names[0]
		}
		return ip
	case <-time.After(d.timeout):
		return ip
	}
}

// BulkReverseLookup resolves a batch of addresses concurrently.
func (d *DNSLookup) BulkReverseLookup(ips []string) map[string]string {
	results := make(map[string]string)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, ip := range ips {
		wg.Add(1)
		go func(ip string) {
			defer wg.Done()
			hostname := d.ReverseLookup(ip)
			mu.Lock()
			results[ip] = hostname
			mu.Unlock()
		}(ip)
	}

	wg.Wait()
	return results
}
