package phonedata

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Defaults bounding the per-client bucket table.
const (
	DefaultMaxClients  = 10000
	DefaultClientIdle  = 10 * time.Minute
	limiterSweepPeriod = time.Minute
)

// ClientKeyFunc names the client a request is rate limited as.
type ClientKeyFunc func(r *http.Request) string

// RemoteAddrKey keys clients by the connection address. Headers are ignored,
// so clients cannot pick their own bucket.
func RemoteAddrKey(r *http.Request) string {
	if addr := remoteAddr(r); addr.IsValid() {
		return addr.String()
	}
	return r.RemoteAddr
}

// TrustedProxyKey honours X-Forwarded-For only when the connection comes from
// one of proxies. The client is the rightmost forwarded address that is not
// itself a trusted proxy.
func TrustedProxyKey(proxies ...netip.Prefix) ClientKeyFunc {
	trusted := func(addr netip.Addr) bool {
		for _, p := range proxies {
			if p.Contains(addr) {
				return true
			}
		}
		return false
	}
	return func(r *http.Request) string {
		remote := remoteAddr(r)
		if !remote.IsValid() || !trusted(remote) {
			return RemoteAddrKey(r)
		}
		hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				break
			}
			addr = addr.Unmap()
			if !trusted(addr) {
				return addr.String()
			}
		}
		return remote.String()
	}
}

func remoteAddr(r *http.Request) netip.Addr {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(host))
	if err != nil {
		return netip.Addr{}
	}
	return addr.Unmap()
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client. Buckets idle for longer
// than idle are dropped; at most maxClients are held, evicting the least
// recently seen when full.
type clientLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*clientBucket
	lastSweep time.Time

	rate       rate.Limit
	burst      int
	key        ClientKeyFunc
	maxClients int
	idle       time.Duration
	now        func() time.Time
}

func newClientLimiter(opts Options) *clientLimiter {
	if opts.RateLimit <= 0 {
		return nil
	}
	l := &clientLimiter{
		buckets:    make(map[string]*clientBucket),
		rate:       opts.RateLimit,
		burst:      opts.Burst,
		key:        opts.ClientKey,
		maxClients: opts.MaxClients,
		idle:       opts.ClientIdle,
		now:        time.Now,
	}
	if l.key == nil {
		l.key = RemoteAddrKey
	}
	if l.maxClients <= 0 {
		l.maxClients = DefaultMaxClients
	}
	if l.idle <= 0 {
		l.idle = DefaultClientIdle
	}
	return l
}

func (l *clientLimiter) allow(r *http.Request) bool {
	if l == nil {
		return true
	}
	key := l.key(r)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= limiterSweepPeriod {
		l.sweep(now)
	}
	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= l.maxClients {
			l.sweep(now)
		}
		if len(l.buckets) >= l.maxClients {
			l.evictOldest()
		}
		b = &clientBucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (l *clientLimiter) sweep(now time.Time) {
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idle {
			delete(l.buckets, key)
		}
	}
}

func (l *clientLimiter) evictOldest() {
	var (
		oldest string
		seen   time.Time
		found  bool
	)
	for key, b := range l.buckets {
		if !found || b.lastSeen.Before(seen) {
			oldest, seen, found = key, b.lastSeen, true
		}
	}
	if found {
		delete(l.buckets, oldest)
	}
}
