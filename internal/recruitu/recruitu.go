// Package recruitu is a client for the RecruitU candidate API: a search
// endpoint returning candidate identifiers and a people endpoint returning
// full candidate records. Both are treated as loosely specified: response
// bodies come in more than one shape and malformed payloads are reported as
// "no usable data" rather than errors.
package recruitu

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	userAgent = "talentcompass/sourcer"

	// The staging backend throttles aggressively; one request at a time
	// with a small sustained rate keeps it happy.
	defaultRequestsPerSecond = 5
)

type Client struct {
	logger     *zap.Logger
	limiter    *rate.Limiter
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a client for the API rooted at apiURL. A zero rps selects the
// built-in default; a negative one disables rate limiting.
func New(apiURL string, rps float64, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	if rps == 0 {
		rps = defaultRequestsPerSecond
	}

	limit := rate.Limit(rps)
	if rps < 0 {
		limit = rate.Inf
	}

	return &Client{
		logger:  logger,
		limiter: rate.NewLimiter(limit, 1),
		APIURL:  apiURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		UserAgent: userAgent,
	}
}
