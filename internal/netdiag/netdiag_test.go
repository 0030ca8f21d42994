package netdiag_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"weekly-task-report/internal/netdiag"
	"weekly-task-report/pkg/telegram"
)

func TestRun(t *testing.T) {
	cfg := netdiag.Config{Host: "api.telegram.org", HTTPAttempts: 3, Timeout: time.Second}

	t.Run("All probes succeed", func(t *testing.T) {
		var mu sync.Mutex
		var dialed []string
		d := netdiag.NewWithProbes(cfg, netdiag.Probes{
			Resolve: func(ctx context.Context, host string) ([]string, []string, error) {
				return []string{"149.154.167.220"}, []string{"2001:67c:4e8:f004::9"}, nil
			},
			Dial: func(ctx context.Context, network, address string) error {
				mu.Lock()
				dialed = append(dialed, network+" "+address)
				mu.Unlock()
				return nil
			},
			Get: func(ctx context.Context, url string) (int, error) {
				if url != "https://api.telegram.org" {
					t.Errorf("unexpected url %q", url)
				}
				return 302, nil
			},
			GetMe: func(ctx context.Context) error { return nil },
		})

		lines := strings.Split(d.Run(context.Background()), "\n")
		if len(lines) != 7 {
			t.Fatalf("expected 7 lines, got %d: %q", len(lines), lines)
		}
		prefixes := []string{
			"Network diagnostic for api.telegram.org",
			"DNS A: 149.154.167.220",
			"DNS AAAA: 2001:67c:4e8:f004::9",
			"TCP 443 IPv4: OK (",
			"TCP 443 IPv6: OK (",
			"HTTPS api.telegram.org: ok=3 fail=0 avg=",
			"Bot API getMe: OK (",
		}
		for i, p := range prefixes {
			if !strings.HasPrefix(lines[i], p) {
				t.Errorf("line %d: expected prefix %q, got %q", i, p, lines[i])
			}
		}
		if !strings.HasSuffix(lines[5], "codes=302") {
			t.Errorf("expected codes=302, got %q", lines[5])
		}
		if len(dialed) != 2 {
			t.Errorf("expected 2 dials, got %v", dialed)
		}
	})

	t.Run("No AAAA skips IPv6", func(t *testing.T) {
		d := netdiag.NewWithProbes(cfg, netdiag.Probes{
			Resolve: func(ctx context.Context, host string) ([]string, []string, error) {
				return []string{"149.154.167.220"}, nil, nil
			},
			Dial: func(ctx context.Context, network, address string) error {
				if network == "tcp6" {
					t.Errorf("tcp6 must not be dialed")
				}
				return nil
			},
			Get:   func(ctx context.Context, url string) (int, error) { return 200, nil },
			GetMe: func(ctx context.Context) error { return nil },
		})

		out := d.Run(context.Background())
		if !strings.Contains(out, "DNS AAAA: -") {
			t.Errorf("expected empty AAAA line, got:\n%s", out)
		}
		if !strings.Contains(out, "TCP 443 IPv6: SKIP (no AAAA)") {
			t.Errorf("expected IPv6 skip, got:\n%s", out)
		}
	})

	t.Run("Failures stay on their own line", func(t *testing.T) {
		d := netdiag.NewWithProbes(cfg, netdiag.Probes{
			Resolve: func(ctx context.Context, host string) ([]string, []string, error) {
				return nil, nil, errors.New("no such host")
			},
			Dial: func(ctx context.Context, network, address string) error {
				return errors.New("connection refused")
			},
			Get: func(ctx context.Context, url string) (int, error) {
				return 0, errors.New("tls handshake timeout")
			},
			GetMe: func(ctx context.Context) error {
				return fmt.Errorf("%w: getMe 401: Unauthorized", telegram.ErrAPI)
			},
		})

		out := d.Run(context.Background())
		expected := []string{
			"DNS: FAIL (no such host)",
			"TCP 443 IPv4: FAIL (connection refused)",
			"TCP 443 IPv6: SKIP (no AAAA)",
			"HTTPS api.telegram.org: ok=0 fail=3 n/a codes=-",
			"Bot API getMe: FAIL (api error)",
		}
		for _, e := range expected {
			if !strings.Contains(out, e) {
				t.Errorf("expected %q in:\n%s", e, out)
			}
		}
	})

	t.Run("Mixed HTTPS results", func(t *testing.T) {
		calls := 0
		d := netdiag.NewWithProbes(cfg, netdiag.Probes{
			Resolve: func(ctx context.Context, host string) ([]string, []string, error) {
				return []string{"1.2.3.4"}, nil, nil
			},
			Dial: func(ctx context.Context, network, address string) error { return nil },
			Get: func(ctx context.Context, url string) (int, error) {
				calls++
				switch calls {
				case 1:
					return 200, nil
				case 2:
					return 0, errors.New("reset")
				default:
					return 302, nil
				}
			},
		})

		out := d.Run(context.Background())
		if !strings.Contains(out, "ok=2 fail=1") || !strings.Contains(out, "codes=200,302") {
			t.Errorf("unexpected https line in:\n%s", out)
		}
		if !strings.Contains(out, "Bot API getMe: SKIP (no bot)") {
			t.Errorf("expected getMe skip without bot, got:\n%s", out)
		}
	})

	t.Run("getMe failure shows only the error kind", func(t *testing.T) {
		cases := []struct {
			name     string
			err      error
			expected string
		}{
			{
				name:     "refused",
				err:      &url.Error{Op: "Post", URL: "http://127.0.0.1:1/bot1:SECRET/getMe", Err: syscall.ECONNREFUSED},
				expected: "connection refused",
			},
			{
				name:     "timeout",
				err:      fmt.Errorf("%w: getMe: %v", telegram.ErrTimeout, context.DeadlineExceeded),
				expected: "timeout",
			},
			{
				name:     "other",
				err:      errors.New("Post http://x/bot1:SECRET/getMe: boom"),
				expected: "error",
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				d := netdiag.NewWithProbes(cfg, netdiag.Probes{
					Resolve: func(ctx context.Context, host string) ([]string, []string, error) {
						return []string{"1.2.3.4"}, nil, nil
					},
					Dial:  func(ctx context.Context, network, address string) error { return nil },
					Get:   func(ctx context.Context, url string) (int, error) { return 200, nil },
					GetMe: func(ctx context.Context) error { return tc.err },
				})

				out := d.Run(context.Background())
				if !strings.Contains(out, "Bot API getMe: FAIL ("+tc.expected+")") {
					t.Errorf("expected kind %q in:\n%s", tc.expected, out)
				}
				if strings.Contains(out, "SECRET") {
					t.Errorf("diagnostic leaks error text:\n%s", out)
				}
			})
		}
	})

	t.Run("Unreachable bot does not leak token", func(t *testing.T) {
		const token = "123456:SECRET-TOKEN"
		bot := telegram.NewBot(token)
		bot.SetAPIURL("http://127.0.0.1:1/bot" + token)

		d := netdiag.NewWithProbes(cfg, netdiag.Probes{
			Resolve: func(ctx context.Context, host string) ([]string, []string, error) {
				return []string{"1.2.3.4"}, nil, nil
			},
			Dial: func(ctx context.Context, network, address string) error { return nil },
			Get:  func(ctx context.Context, url string) (int, error) { return 200, nil },
			GetMe: func(ctx context.Context) error {
				_, err := bot.GetMe(ctx)
				return err
			},
		})

		out := d.Run(context.Background())
		if !strings.Contains(out, "Bot API getMe: FAIL (") {
			t.Fatalf("expected getMe failure in:\n%s", out)
		}
		if strings.Contains(out, token) {
			t.Errorf("diagnostic leaks bot token:\n%s", out)
		}
	})
}
