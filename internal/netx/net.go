// Package netx builds the outbound HTTP client used to talk to the CMS.
package netx

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	proxy "github.com/cloudfoundry/socks5-proxy"
)

// Options configure NewHTTPClient.
//
// Timeout of zero means no client-side timeout; requests then rely on the
// caller's context. ProxyURL, when set, has the form
// ssh+socks5://user@jumphost:22?private-key=/path/to/key and routes every
// connection through an SSH tunnel. ProxyLog receives the tunnel's own log
// lines; nil discards them.
type Options struct {
	Timeout  time.Duration
	ProxyURL string
	ProxyLog *log.Logger
}

// NewHTTPClient returns an *http.Client configured from opts.
func NewHTTPClient(opts Options) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if opts.ProxyURL != "" {
		dial, err := socks5DialContext(opts.ProxyURL, opts.ProxyLog)
		if err != nil {
			return nil, err
		}
		transport.DialContext = dial
		transport.Proxy = nil
	}

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
	}, nil
}

type dialContextFunc func(ctx context.Context, network, address string) (net.Conn, error)

// socks5DialContext parses an ssh+socks5 proxy URL and returns a dialer that
// lazily opens the SSH tunnel on first use.
func socks5DialContext(raw string, logger *log.Logger) (dialContextFunc, error) {
	proxyURL, err := url.Parse(strings.TrimPrefix(raw, "ssh+"))
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}

	keyPath := proxyURL.Query().Get("private-key")
	if keyPath == "" {
		return nil, fmt.Errorf("proxy url missing required 'private-key' query param")
	}

	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("read proxy private key: %w", err)
	}

	username := ""
	if proxyURL.User != nil {
		username = proxyURL.User.Username()
	}

	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	socks5 := proxy.NewSocks5Proxy(proxy.NewHostKey(), logger, time.Minute)

	var (
		mu     sync.Mutex
		dialer proxy.DialFunc
	)

	return func(ctx context.Context, network, address string) (net.Conn, error) {
		return dialWithContext(ctx, func() (net.Conn, error) {
			mu.Lock()
			if dialer == nil {
				d, err := socks5.Dialer(username, string(key), proxyURL.Host)
				if err != nil {
					mu.Unlock()
					return nil, fmt.Errorf("create socks5 dialer: %w", err)
				}
				dialer = d
			}
			d := dialer
			mu.Unlock()

			return d(network, address)
		})
	}, nil
}

// dialWithContext runs dial, which takes no context, and stops waiting when
// ctx is done. A connection that arrives after that is closed.
func dialWithContext(ctx context.Context, dial func() (net.Conn, error)) (net.Conn, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		conn, err := dial()
		ch <- result{conn, err}
	}()

	select {
	case r := <-ch:
		return r.conn, r.err
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.conn != nil {
				_ = r.conn.Close()
			}
		}()
		return nil, ctx.Err()
	}
}
