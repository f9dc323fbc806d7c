package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"casarural/internal/adapters/observability"
	"casarural/internal/domain"
)

// Client captures charges through the Stripe charges API. One attempt per
// capture: a failed call must not be retried, since the caller cannot know
// whether the first attempt charged the card.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

var ErrDeclined = errors.New("stripe: card declined")

type chargeResp struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Error    *struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Capture(ctx context.Context, req domain.CaptureRequest) (domain.Charge, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.Charge{}, err
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", req.Currency)
	form.Set("description", req.Description)
	form.Set("source", req.SourceToken)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return domain.Charge{}, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// secret key as username, empty password
	httpReq.SetBasicAuth(c.key, "")

	start := time.Now()
	resp, err := c.hc.Do(httpReq)
	if err != nil {
		observability.ObserveExternal("stripe", "charges", 0, time.Since(start))
		if ctx.Err() != nil {
			return domain.Charge{}, ctx.Err()
		}
		return domain.Charge{}, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("stripe", "charges", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		var ch chargeResp
		if err := json.NewDecoder(resp.Body).Decode(&ch); err != nil {
			return domain.Charge{}, err
		}
		return domain.Charge{ID: ch.ID, Status: ch.Status, Amount: ch.Amount, Currency: ch.Currency}, nil

	case http.StatusPaymentRequired:
		var ch chargeResp
		if err := json.NewDecoder(resp.Body).Decode(&ch); err == nil && ch.Error != nil {
			return domain.Charge{}, fmt.Errorf("%w: %s (%s)", ErrDeclined, ch.Error.Message, ch.Error.Code)
		}
		return domain.Charge{}, ErrDeclined

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.Charge{}, fmt.Errorf("stripe: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
