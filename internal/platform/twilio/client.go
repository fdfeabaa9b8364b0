package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/callguard/spam-checker/internal/domain"
)

const (
	lookupBaseURL  = "https://lookups.twilio.com/v1/PhoneNumbers/"
	spamScoreAddOn = "nomorobo_spamscore"

	// requestTimeout bounds every provider call. No retries; callers
	// re-invoke if they want another attempt.
	requestTimeout = 10 * time.Second
)

// Client calls the Twilio Lookup API with the Nomorobo spam-score add-on
// and normalizes the response. It implements service.Provider.
type Client struct {
	accountSID string
	authToken  string
	baseURL    string
	httpClient *http.Client
}

func NewClient(accountSID, authToken string) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		baseURL:    lookupBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// NewClientWithBaseURL exists for tests that point the client at a local
// test server.
func NewClientWithBaseURL(accountSID, authToken, baseURL string) *Client {
	c := NewClient(accountSID, authToken)
	c.baseURL = baseURL
	return c
}

// lookupResponse mirrors the slice of the Twilio payload we care about.
// Score is a pointer so an absent add-on result at any nesting level is
// distinguishable from an explicit zero.
type lookupResponse struct {
	CountryCode string `json:"country_code"`
	PhoneType   string `json:"type"`
	Carrier     struct {
		Name string `json:"name"`
	} `json:"carrier"`
	AddOns struct {
		Results struct {
			Nomorobo struct {
				Result struct {
					Score *int `json:"score"`
				} `json:"result"`
			} `json:"nomorobo_spamscore"`
		} `json:"results"`
	} `json:"add_ons"`
}

func (c *Client) Lookup(ctx context.Context, phoneNumber string) (*domain.ProviderResult, error) {
	endpoint := c.baseURL + url.PathEscape(phoneNumber) + "?AddOns=" + spamScoreAddOn

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("twilio: build request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNumberNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrProviderAuth
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, domain.ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamError, resp.StatusCode)
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrUpstreamError, err)
	}

	return &domain.ProviderResult{
		Score:       payload.AddOns.Results.Nomorobo.Result.Score,
		Carrier:     payload.Carrier.Name,
		CountryCode: payload.CountryCode,
		PhoneType:   payload.PhoneType,
	}, nil
}
