package links

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/checkmark/internal/logging"
)

// ErrUnreachable marks a link that could not be resolved.
var ErrUnreachable = errors.New("link unreachable")

const (
	defaultConcurrency = 8
	defaultBackoff     = 200 * time.Millisecond
	userAgent          = "checkmark-link-checker"
)

// Result is the outcome of resolving one link. Err is nil for reachable
// and skipped links, and wraps ErrUnreachable otherwise.
type Result struct {
	Link    Link
	Skipped bool
	Err     error
}

// Reason returns the failure description without the sentinel prefix.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return strings.TrimPrefix(r.Err.Error(), ErrUnreachable.Error()+": ")
}

// ResolverOptions configure an HTTPResolver.
type ResolverOptions struct {
	// Timeout bounds each request attempt.
	Timeout time.Duration

	// MaxRetries is the number of retries after a failed attempt.
	MaxRetries int

	// Concurrency bounds the number of in-flight requests.
	Concurrency int

	// Proxy, when set, routes requests through this HTTP proxy URL.
	Proxy string

	// Backoff is the base delay between retries.
	Backoff time.Duration

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// HTTPResolver checks remote links over HTTP and relative links against
// the filesystem.
type HTTPResolver struct {
	client      *http.Client
	timeout     time.Duration
	maxRetries  uint64
	concurrency int
	backoff     time.Duration
}

// NewHTTPResolver creates a resolver.
func NewHTTPResolver(opts ResolverOptions) (*HTTPResolver, error) {
	client := opts.Client
	if client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if opts.Proxy != "" {
			proxyURL, err := url.Parse(opts.Proxy)
			if err != nil {
				return nil, fmt.Errorf("parse proxy url: %w", err)
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
		client = &http.Client{Transport: transport}
	}

	r := &HTTPResolver{
		client:      client,
		timeout:     opts.Timeout,
		concurrency: opts.Concurrency,
		backoff:     opts.Backoff,
	}
	if opts.MaxRetries > 0 {
		r.maxRetries = uint64(opts.MaxRetries)
	}
	if r.concurrency <= 0 {
		r.concurrency = defaultConcurrency
	}
	if r.backoff <= 0 {
		r.backoff = defaultBackoff
	}
	return r, nil
}

// Resolve checks every link of coll. docPath anchors relative links.
// Results are returned in the collection's order. Only context
// cancellation is reported as an error; individual failures are recorded
// in the results.
func (r *HTTPResolver) Resolve(ctx context.Context, docPath string, coll *Collection) ([]Result, error) {
	links := coll.Links()
	results := make([]Result, len(links))
	baseDir := filepath.Dir(docPath)
	logger := logging.FromContext(ctx)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.concurrency)

	for idx, link := range links {
		group.Go(func() error {
			result := r.resolveOne(groupCtx, baseDir, link)
			if ctxErr := groupCtx.Err(); ctxErr != nil {
				return ctxErr
			}

			results[idx] = result

			if result.Err != nil {
				logger.Debug("link unreachable", logging.FieldURL, link.URI, "reason", result.Reason())
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("resolve links: %w", err)
	}
	return results, nil
}

func (r *HTTPResolver) resolveOne(ctx context.Context, baseDir string, link Link) Result {
	uri := link.URI

	switch {
	case strings.HasPrefix(uri, "#"),
		strings.HasPrefix(uri, "mailto:"),
		strings.HasPrefix(uri, "tel:"):
		return Result{Link: link, Skipped: true}
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return Result{Link: link, Err: fmt.Errorf("%w: %s", ErrUnreachable, "malformed URL")}
	}

	switch parsed.Scheme {
	case "http", "https":
		return Result{Link: link, Err: r.checkRemote(ctx, uri)}
	case "":
		return Result{Link: link, Err: checkLocal(baseDir, parsed.Path)}
	default:
		return Result{Link: link, Skipped: true}
	}
}

// checkRemote sends HEAD, falling back to GET when the server rejects
// HEAD. Network errors, 429 and 5xx responses are retried with
// exponential backoff.
func (r *HTTPResolver) checkRemote(ctx context.Context, uri string) error {
	backoff := retry.WithMaxRetries(r.maxRetries, retry.NewExponential(r.backoff))

	var status int
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		code, err := r.fetch(ctx, http.MethodHead, uri)
		if err == nil && (code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented ||
			code == http.StatusForbidden) {
			code, err = r.fetch(ctx, http.MethodGet, uri)
		}
		if err != nil {
			return retry.RetryableError(err)
		}

		status = code
		if code == http.StatusTooManyRequests || code >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("status %d %s", code, http.StatusText(code)))
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrUnreachable, ctx.Err())
		}
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	if status >= http.StatusBadRequest {
		return fmt.Errorf("%w: status %d %s", ErrUnreachable, status, http.StatusText(status))
	}
	return nil
}

func (r *HTTPResolver) fetch(ctx context.Context, method, uri string) (int, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, uri, err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// checkLocal verifies that a relative link points at an existing file.
func checkLocal(baseDir, path string) error {
	if path == "" {
		return nil
	}

	decoded, err := url.PathUnescape(path)
	if err == nil {
		path = decoded
	}

	target := path
	if !filepath.IsAbs(target) {
		target = filepath.Join(baseDir, filepath.FromSlash(path))
	}

	if _, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: file %s does not exist", ErrUnreachable, target)
		}
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	return nil
}
