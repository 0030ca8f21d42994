// Package netdiag checks the path from this host to the Telegram Bot API.
package netdiag

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"weekly-task-report/pkg/telegram"
)

// Config tunes the probes.
type Config struct {
	Host         string
	HTTPAttempts int
	Timeout      time.Duration
}

// Probes are the network primitives used by Run.
type Probes struct {
	Resolve func(ctx context.Context, host string) (a, aaaa []string, err error)
	Dial    func(ctx context.Context, network, address string) error
	Get     func(ctx context.Context, url string) (status int, err error)
	GetMe   func(ctx context.Context) error
}

// Diagnostics runs a fixed set of probes and renders a text report.
type Diagnostics struct {
	cfg    Config
	probes Probes
}

// New creates Diagnostics with real network probes. getMe checks the Bot API
// itself and may be nil.
func New(cfg Config, getMe func(ctx context.Context) error) *Diagnostics {
	if cfg.Host == "" {
		cfg.Host = "api.telegram.org"
	}
	if cfg.HTTPAttempts < 1 {
		cfg.HTTPAttempts = 3
	}
	if cfg.Timeout < time.Second {
		cfg.Timeout = 6 * time.Second
	}
	return NewWithProbes(cfg, Probes{
		Resolve: resolve,
		Dial:    dial,
		Get:     httpGetter(cfg.Timeout),
		GetMe:   getMe,
	})
}

// NewWithProbes creates Diagnostics with custom probes.
func NewWithProbes(cfg Config, probes Probes) *Diagnostics {
	return &Diagnostics{cfg: cfg, probes: probes}
}

type tcpResult struct {
	ok      bool
	skipped bool
	info    string
}

type httpsResult struct {
	ok, fail  int
	durations []time.Duration
	codes     []string
}

// Run resolves the host, then probes TCP over IPv4 and IPv6, HTTPS and the Bot
// API in parallel. A failing probe only affects its own line.
func (d *Diagnostics) Run(ctx context.Context) string {
	host := d.cfg.Host
	lines := []string{fmt.Sprintf("Network diagnostic for %s", host)}

	a, aaaa, dnsErr := d.resolve(ctx, host)
	if dnsErr != nil {
		lines = append(lines, fmt.Sprintf("DNS: FAIL (%v)", dnsErr))
	} else {
		lines = append(lines,
			fmt.Sprintf("DNS A: %s", joinOrDash(a)),
			fmt.Sprintf("DNS AAAA: %s", joinOrDash(aaaa)),
		)
	}

	var (
		tcp4, tcp6 tcpResult
		https      httpsResult
		getMeLine  string
	)
	address := net.JoinHostPort(host, "443")

	var g errgroup.Group
	g.Go(func() error {
		tcp4 = d.tcp(ctx, "tcp4", address)
		return nil
	})
	g.Go(func() error {
		if len(aaaa) == 0 {
			tcp6 = tcpResult{skipped: true, info: "no AAAA"}
			return nil
		}
		tcp6 = d.tcp(ctx, "tcp6", address)
		return nil
	})
	g.Go(func() error {
		https = d.https(ctx, "https://"+host)
		return nil
	})
	g.Go(func() error {
		getMeLine = d.getMe(ctx)
		return nil
	})
	_ = g.Wait()

	lines = append(lines,
		"TCP 443 IPv4: "+tcp4.String(),
		"TCP 443 IPv6: "+tcp6.String(),
		fmt.Sprintf("HTTPS %s: %s", host, https.String()),
		"Bot API getMe: "+getMeLine,
	)
	return strings.Join(lines, "\n")
}

func (d *Diagnostics) resolve(ctx context.Context, host string) ([]string, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()
	return d.probes.Resolve(ctx, host)
}

func (d *Diagnostics) tcp(ctx context.Context, network, address string) tcpResult {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	start := time.Now()
	if err := d.probes.Dial(ctx, network, address); err != nil {
		return tcpResult{info: err.Error()}
	}
	return tcpResult{ok: true, info: formatMs(time.Since(start))}
}

func (d *Diagnostics) https(ctx context.Context, url string) httpsResult {
	var res httpsResult
	for i := 0; i < max(1, d.cfg.HTTPAttempts); i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
		start := time.Now()
		status, err := d.probes.Get(attemptCtx, url)
		elapsed := time.Since(start)
		cancel()

		if err != nil {
			res.fail++
			continue
		}
		res.ok++
		res.durations = append(res.durations, elapsed)
		res.codes = append(res.codes, fmt.Sprint(status))
	}
	return res
}

func (d *Diagnostics) getMe(ctx context.Context) string {
	if d.probes.GetMe == nil {
		return "SKIP (no bot)"
	}
	start := time.Now()
	if err := d.probes.GetMe(ctx); err != nil {
		return fmt.Sprintf("FAIL (%s)", errorKind(err))
	}
	return fmt.Sprintf("OK (%s)", formatMs(time.Since(start)))
}

// errorKind names a Bot API failure. The error text is not echoed: it can
// carry the request URL and with it the token.
func errorKind(err error) string {
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.Is(err, telegram.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, telegram.ErrAPI):
		return "api error"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.As(err, &dnsErr):
		return "dns error"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.As(err, &netErr):
		return "network error"
	default:
		return "error"
	}
}

func (r tcpResult) String() string {
	switch {
	case r.skipped:
		return fmt.Sprintf("SKIP (%s)", r.info)
	case r.ok:
		return fmt.Sprintf("OK (%s)", r.info)
	default:
		return fmt.Sprintf("FAIL (%s)", r.info)
	}
}

func (r httpsResult) String() string {
	timing := "n/a"
	if len(r.durations) > 0 {
		var total, longest time.Duration
		for _, d := range r.durations {
			total += d
			longest = max(longest, d)
		}
		avg := total / time.Duration(len(r.durations))
		timing = fmt.Sprintf("avg=%s max=%s", formatMs(avg), formatMs(longest))
	}
	return fmt.Sprintf("ok=%d fail=%d %s codes=%s", r.ok, r.fail, timing, joinCodes(r.codes))
}

func formatMs(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func joinCodes(codes []string) string {
	if len(codes) == 0 {
		return "-"
	}
	seen := make(map[string]struct{}, len(codes))
	uniq := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		uniq = append(uniq, c)
	}
	sort.Strings(uniq)
	return strings.Join(uniq, ",")
}

func resolve(ctx context.Context, host string) ([]string, []string, error) {
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, nil, err
	}

	var a, aaaa []string
	for _, addr := range addrs {
		if addr.IP.To4() != nil {
			a = append(a, addr.IP.String())
		} else {
			aaaa = append(aaaa, addr.IP.String())
		}
	}
	sort.Strings(a)
	sort.Strings(aaaa)
	return a, aaaa, nil
}

func dial(ctx context.Context, network, address string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, address)
	if err != nil {
		return err
	}
	return conn.Close()
}

func httpGetter(timeout time.Duration) func(ctx context.Context, url string) (int, error) {
	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return func(ctx context.Context, url string) (int, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return 0, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return 0, err
		}
		resp.Body.Close()
		return resp.StatusCode, nil
	}
}
