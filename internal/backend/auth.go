package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"wolfly.in/app/internal/shared/apperr"
)

type loginResponse struct {
	Token struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	} `json:"token"`
	// some deployments return the pair at the top level
	Access string `json:"access"`
}

// Login exchanges credentials for a bearer token. The client stores the
// opaque access token for the session; refresh is the backend's concern.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/user/login/", "", body)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", c.apiError(resp)
	}
	defer resp.Body.Close()

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", apperr.Wrap(fmt.Errorf("decode login response: %w", err))
	}

	token := lr.Token.Access
	if token == "" {
		token = lr.Access
	}
	if token == "" {
		return "", apperr.Wrap(fmt.Errorf("login response carried no access token"))
	}
	return token, nil
}
