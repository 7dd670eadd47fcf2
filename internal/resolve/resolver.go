// Package resolve follows HTTP redirects for playlist stream addresses.
//
// Each distinct candidate address is probed once per round by a bounded
// worker pool. Redirect responses are followed manually up to a hop
// limit; on the final response only the headers are inspected, and the
// body is closed the moment the content classification is known, never
// read. Failed probes are retried as a whole batch after a fixed delay
// for a bounded number of rounds; addresses still failing after the last
// round are reported unresolved and pass through unchanged.
package resolve

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Result is the outcome of probing one original address.
type Result struct {
	// FinalURL is the address after following redirects; on failure it is
	// the last address attempted.
	FinalURL string
	// OK reports whether the probe reached a non-error final response.
	OK bool
	// Media reports whether the final response looked like stream media
	// (video content type, octet-stream, an HLS MIME type, or an .m3u8
	// address). Carried for reporting; rewriting only requires OK.
	Media bool
}

// Options bound the probe pool.
type Options struct {
	Workers      int
	Timeout      time.Duration
	MaxRedirects int
	Retries      int
	RetryDelay   time.Duration
	UserAgent    string
	// Progress, when non-nil, is called after every completed probe with
	// the number of finished probes and the total for the current round.
	Progress func(done, total int)
}

// Resolver probes playlist addresses. One Resolver may be reused across
// batches; ResolveAll itself runs to completion synchronously.
type Resolver struct {
	opts   Options
	client *http.Client
	logger *slog.Logger
}

// New returns a Resolver. Zero or negative option fields fall back to
// conservative defaults.
func New(logger *slog.Logger, opts Options) *Resolver {
	if opts.Workers <= 0 {
		opts.Workers = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = 10
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		opts:   opts,
		logger: logger,
		client: &http.Client{
			Timeout: opts.Timeout,
			// Redirects are followed manually so each hop's headers can
			// be inspected without ever reading a body.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// ResolveAll probes every address and returns a result per original
// address. Failed addresses are retried in batches until the retry budget
// is exhausted.
func (r *Resolver) ResolveAll(ctx context.Context, urls []string) map[string]Result {
	results := make(map[string]Result, len(urls))
	pending := urls

	for round := 0; round <= r.opts.Retries && len(pending) > 0; round++ {
		if round > 0 {
			r.logger.Info("retrying failed addresses",
				"round", round+1,
				"pending", len(pending),
				"delay", r.opts.RetryDelay)
			select {
			case <-time.After(r.opts.RetryDelay):
			case <-ctx.Done():
				return results
			}
		}
		pending = r.resolveBatch(ctx, pending, results)
	}

	for _, u := range pending {
		r.logger.Warn("address unresolved after final round", "url", u)
	}
	return results
}

type outcome struct {
	url string
	res Result
}

// resolveBatch probes one batch through the worker pool and returns the
// addresses that failed.
func (r *Resolver) resolveBatch(ctx context.Context, urls []string, results map[string]Result) []string {
	jobs := make(chan string)
	out := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				out <- outcome{url: u, res: r.probe(ctx, u)}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, u := range urls {
			select {
			case jobs <- u:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(out)
	}()

	var failed []string
	done := 0
	for oc := range out {
		results[oc.url] = oc.res
		if !oc.res.OK {
			failed = append(failed, oc.url)
		}
		done++
		if r.opts.Progress != nil {
			r.opts.Progress(done, len(urls))
		}
	}
	return failed
}

// probe follows redirects for one address until a final response, the hop
// limit, or an error.
func (r *Resolver) probe(ctx context.Context, rawURL string) Result {
	current := rawURL

	for hop := 0; hop <= r.opts.MaxRedirects; hop++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
		if err != nil {
			return Result{FinalURL: current}
		}
		if r.opts.UserAgent != "" {
			req.Header.Set("User-Agent", r.opts.UserAgent)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			r.logger.Debug("probe failed", "url", current, "error", err)
			return Result{FinalURL: current}
		}

		if isRedirect(resp.StatusCode) {
			loc := resp.Header.Get("Location")
			resp.Body.Close()
			if loc == "" {
				return Result{FinalURL: current}
			}
			next, err := resp.Request.URL.Parse(loc)
			if err != nil {
				return Result{FinalURL: current}
			}
			current = next.String()
			continue
		}

		ct := resp.Header.Get("Content-Type")
		// Never read a body: classification needs headers only.
		resp.Body.Close()
		if resp.StatusCode >= 400 {
			return Result{FinalURL: current}
		}
		return Result{FinalURL: current, OK: true, Media: isMediaRelated(ct, current)}
	}

	r.logger.Debug("redirect limit exceeded", "url", rawURL, "limit", r.opts.MaxRedirects)
	return Result{FinalURL: current}
}

func isRedirect(code int) bool {
	switch code {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

func isMediaRelated(contentType, url string) bool {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "video/"),
		strings.Contains(ct, "application/octet-stream"),
		strings.Contains(ct, "application/vnd.apple.mpegurl"),
		strings.Contains(ct, "application/x-mpegurl"):
		return true
	}
	return strings.HasSuffix(strings.ToLower(url), ".m3u8")
}

var addressLine = regexp.MustCompile(`^https?://\S+`)

// CandidateURLs returns the distinct address lines of a playlist, in
// first-seen order.
func CandidateURLs(lines []string) []string {
	seen := make(map[string]struct{})
	var urls []string
	for _, line := range lines {
		if !addressLine.MatchString(line) {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		urls = append(urls, line)
	}
	return urls
}

// Rewrite replaces every successfully resolved address line with its final
// URL and returns the rewritten lines plus the number of distinct
// addresses replaced. Unresolved addresses pass through unchanged.
func Rewrite(lines []string, results map[string]Result) ([]string, int) {
	out := make([]string, len(lines))
	replaced := make(map[string]struct{})
	for i, line := range lines {
		out[i] = line
		if res, ok := results[line]; ok && res.OK {
			out[i] = res.FinalURL
			replaced[line] = struct{}{}
		}
	}
	return out, len(replaced)
}
