package backend

import (
	"context"
	"net/http"
)

type Address struct {
	ID            int64  `json:"id"`
	VillageOrTown string `json:"village_or_town"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       int64  `json:"pincode"`
	Phone         int64  `json:"phone"`
	Country       string `json:"country"`
}

func (c *Client) ListAddresses(ctx context.Context, token string) ([]Address, error) {
	var out []Address
	if err := c.getJSON(ctx, "/api/user/address/", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type AddressInput struct {
	VillageOrTown string `json:"village_or_town"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       int64  `json:"pincode"`
	Phone         int64  `json:"phone"`
	Country       string `json:"country"`
}

func (c *Client) AddAddress(ctx context.Context, token string, in AddressInput) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/user/address/", token, in)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp)
	}
	resp.Body.Close()
	return nil
}
