// Package middleware provides HTTP middleware components for the checkout service.
package middleware

import (
	"bytes"
	"crypto/sha256"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader carries the client-chosen idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long a cached response stays replayable.
	// Scanner double-fires arrive within milliseconds; five minutes also
	// covers gateway retries.
	IdempotencyKeyTTL = 5 * time.Minute
)

// cachedResponse is a recorded response ready to be replayed.
type cachedResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Timestamp  time.Time
}

// IdempotencyConfig holds configuration for the idempotency middleware.
type IdempotencyConfig struct {
	Cache   *idempotencyCache
	TTL     time.Duration
	Enabled bool
}

// DefaultIdempotencyConfig returns the standard idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   newIdempotencyCache(IdempotencyKeyTTL),
		TTL:     IdempotencyKeyTTL,
		Enabled: true,
	}
}

// Idempotency deduplicates mutating requests that carry an Idempotency-Key
// header. A barcode scanner that fires twice, or a kiosk that retries a
// timed-out POST, gets the original response back instead of mutating the
// cart again. Replayed responses carry X-Idempotency-Replayed: true.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			// Reads are naturally idempotent.
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		fingerprint := requestFingerprint(key, c.Request)

		if prior, ok := cfg.Cache.Get(fingerprint); ok {
			for k, v := range prior.Headers {
				c.Header(k, v)
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(prior.StatusCode, "application/json", prior.Body)
			c.Abort()
			return
		}

		rec := &recordingWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
			headers:        make(map[string]string),
		}
		c.Writer = rec

		c.Next()

		// Only successful outcomes are worth replaying; a failed scan
		// should be retryable.
		if rec.statusCode >= 200 && rec.statusCode < 300 {
			cfg.Cache.Set(fingerprint, &cachedResponse{
				StatusCode: rec.statusCode,
				Headers:    rec.headers,
				Body:       rec.body.Bytes(),
				Timestamp:  time.Now(),
			})
		}
	}
}

// requestFingerprint hashes the idempotency key together with the method,
// path, and body. The same key with a different payload is a different
// request, not a replay.
func requestFingerprint(idempotencyKey string, req *http.Request) int {
	hasher := sha256.New()
	hasher.Write([]byte(idempotencyKey))
	hasher.Write([]byte(req.Method))
	hasher.Write([]byte(req.URL.Path))

	if req.Body != nil {
		bodyBytes, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		if len(bodyBytes) > 0 {
			hasher.Write(bodyBytes)
		}
	}

	sum := hasher.Sum(nil)
	var key int
	for i := 0; i < 8 && i < len(sum); i++ {
		key = key<<8 | int(sum[i])
	}
	if key < 0 {
		key = -key
	}
	return key
}

// recordingWriter tees the response into a buffer so it can be cached.
type recordingWriter struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
	headers    map[string]string
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *recordingWriter) Header() http.Header {
	headers := w.ResponseWriter.Header()
	for k, v := range headers {
		if len(v) > 0 {
			w.headers[k] = v[0]
		}
	}
	return headers
}
