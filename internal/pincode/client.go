// Package pincode looks up Indian postal pincodes for address autofill. The
// upstream service (api.postalpincode.in) is public and unauthenticated.
package pincode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"wolfly.in/app/internal/shared/apperr"
)

var codePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

type Location struct {
	District string
	State    string
	Country  string
}

type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

type lookupResponse struct {
	Status     string `json:"Status"`
	PostOffice []struct {
		District string `json:"District"`
		State    string `json:"State"`
	} `json:"PostOffice"`
}

// Lookup resolves a 6-digit pincode to district/state. An unknown or
// malformed code comes back as a not-found error with user-facing copy.
func (c *Client) Lookup(ctx context.Context, code string) (Location, error) {
	code = strings.TrimSpace(code)
	if !codePattern.MatchString(code) {
		return Location{}, apperr.InvalidErr("Enter a valid 6-digit pincode.", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/pincode/"+code, nil)
	if err != nil {
		return Location{}, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return Location{}, apperr.NetworkErr("Pincode lookup is unavailable right now.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, apperr.NetworkErr("Pincode lookup is unavailable right now.",
			fmt.Errorf("pincode api status %d", resp.StatusCode))
	}

	var lr []lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return Location{}, apperr.Wrap(fmt.Errorf("decode pincode response: %w", err))
	}

	if len(lr) == 0 || lr[0].Status != "Success" || len(lr[0].PostOffice) == 0 {
		return Location{}, apperr.NotFoundErr("Invalid pincode.")
	}

	po := lr[0].PostOffice[0]
	return Location{District: po.District, State: po.State, Country: "India"}, nil
}
