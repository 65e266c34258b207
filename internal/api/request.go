package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultUserAgent = "blogfront/0.1"
	defaultTimeout   = 10 * time.Second
	maxBodyBytes     = 8 << 20
)

// LoadingIndicator is told when a request starts and when it finishes.
type LoadingIndicator interface {
	SetLoading(loading bool)
}

// LoadingFunc adapts a plain function to LoadingIndicator.
type LoadingFunc func(loading bool)

// SetLoading calls f.
func (f LoadingFunc) SetLoading(loading bool) { f(loading) }

// Request describes one call to the API. Body, when non-nil, is encoded as JSON.
type Request struct {
	Method string
	URL    string
	Body   any
}

// Result is the uniform outcome of Do. Exactly one of Data and Err is set.
type Result struct {
	Data json.RawMessage
	Err  *Error
}

// OK reports whether the request succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Decode unmarshals Data into dest.
func (r Result) Decode(dest any) error {
	if r.Err != nil {
		return r.Err
	}
	if err := json.Unmarshal(r.Data, dest); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// Requester performs JSON requests against the blog API and never fails out of band:
// every problem is reported through Result.Err.
type Requester struct {
	http      *http.Client
	timeout   time.Duration
	loading   LoadingIndicator
	log       zerolog.Logger
	userAgent string
	metrics   *metrics
}

// Option customizes a Requester.
type Option func(*Requester)

// WithHTTPClient replaces the default instrumented client. The client is used as
// given; WithTimeout does not touch it.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Requester) {
		if c != nil {
			r.http = c
		}
	}
}

// WithTimeout sets the per-request timeout of the default client. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Requester) {
		r.timeout = d
	}
}

// WithLoadingIndicator sets the indicator toggled around every request.
func WithLoadingIndicator(l LoadingIndicator) Option {
	return func(r *Requester) {
		r.loading = l
	}
}

// WithLogger sets the logger used for failed requests.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Requester) {
		r.log = log
	}
}

// WithRegisterer registers the request metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(r *Requester) {
		r.metrics = newMetrics(reg)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(r *Requester) {
		if ua != "" {
			r.userAgent = ua
		}
	}
}

// New builds a Requester. The default HTTP client traces requests with OpenTelemetry.
func New(opts ...Option) *Requester {
	r := &Requester{
		timeout:   defaultTimeout,
		log:       zerolog.Nop(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.http == nil {
		r.http = &http.Client{
			Timeout:   r.timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if r.metrics == nil {
		r.metrics = newMetrics(nil)
	}
	return r
}

// Do performs the request. The loading indicator is switched on before the call
// and off when Do returns, whatever the outcome.
func (r *Requester) Do(ctx context.Context, req Request) (res Result) {
	if r.loading != nil {
		r.loading.SetLoading(true)
		defer r.loading.SetLoading(false)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	start := time.Now()
	defer func() {
		r.metrics.observe(method, res.statusLabel(), time.Since(start))
		if res.Err != nil {
			r.log.Warn().
				Str("method", method).
				Str("url", req.URL).
				Int("status", res.Err.Status).
				Err(res.Err.Err).
				Msg("api request failed")
		}
	}()

	fail := func(kind Kind, status int, err error) Result {
		return Result{Err: &Error{Kind: kind, Status: status, Method: method, URL: req.URL, Err: err}}
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return fail(KindEncode, 0, fmt.Errorf("encode body: %w", err))
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return fail(KindTransport, 0, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", r.userAgent)

	resp, err := r.http.Do(httpReq)
	if err != nil {
		return fail(KindTransport, 0, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fail(KindStatus, resp.StatusCode, fmt.Errorf("api %s returned status %d", req.URL, resp.StatusCode))
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fail(KindDecode, resp.StatusCode, fmt.Errorf("read response: %w", err))
	}
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		payload = []byte("null")
	}
	if !json.Valid(payload) {
		return fail(KindDecode, resp.StatusCode, fmt.Errorf("decode response: invalid JSON"))
	}
	return Result{Data: json.RawMessage(payload)}
}

func (r Result) statusLabel() string {
	if r.Err == nil {
		return "ok"
	}
	if r.Err.Status > 0 {
		return strconv.Itoa(r.Err.Status)
	}
	return r.Err.Kind.String()
}
