package bot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultAttempts = 3
)

// Requester sends a request and waits for the reply. *nats.Conn is one.
type Requester interface {
	Request(subj string, data []byte, timeout time.Duration) (*nats.Msg, error)
}

// RequestWithRetry sends data to subject, retrying with exponential backoff
// when no reply arrives in time.
func RequestWithRetry(ctx context.Context, r Requester, subject string, data []byte,
	timeout time.Duration, attempts uint, delay time.Duration) (*nats.Msg, error) {

	logger := log.Ctx(ctx).With().Str("subject", subject).Logger()
	return retry.DoWithData(
		func() (*nats.Msg, error) {
			return r.Request(subject, data, timeout)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			logger.Err(err).Uint("n", n).
				Msg("did-not-receive-reply-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

type Client struct {
	nc       Requester
	subject  string
	timeout  time.Duration
	attempts uint
	delay    time.Duration
}

func NewClient(nc Requester, subject string) *Client {
	return &Client{
		nc:       nc,
		subject:  subject,
		timeout:  DefaultTimeout,
		attempts: DefaultAttempts,
		delay:    100 * time.Millisecond,
	}
}

// SetRetry changes the per-attempt timeout, the number of attempts and the
// first backoff delay.
func (c *Client) SetRetry(timeout time.Duration, attempts uint, delay time.Duration) {
	c.timeout = timeout
	c.attempts = attempts
	c.delay = delay
}

// Solve sends req to the solver service. An error reported by the service
// is returned as an error.
func (c *Client) Solve(ctx context.Context, req *SolveRequest) (*SolveResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	res, err := RequestWithRetry(ctx, c.nc, c.subject, data, c.timeout, c.attempts, c.delay)
	if err != nil {
		log.Error().Err(err).Str("subject", c.subject).Msg("solve-request-failed")
		return nil, err
	}
	log.Debug().Msgf("res: %v", string(res.Data))

	resp := &SolveResponse{}
	if err := json.Unmarshal(res.Data, resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New("solver returned: " + resp.Error)
	}
	return resp, nil
}
