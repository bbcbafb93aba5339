package api

import "context"

type parkingTokenRequest struct {
	Token           string `json:"token"`
	CurrentLocation string `json:"current_location"`
}

type parkingTokenResponse struct {
	Status       bool   `json:"status"`
	ParkingToken string `json:"parking_token"`
	Message      string `json:"message"`
}

// ParkingToken asks the server to issue a parking token for the given
// location. The 30-minute validity window starts client-side at the moment
// the response is recorded.
func (c *Client) ParkingToken(ctx context.Context, token, currentLocation string) (string, error) {
	req := parkingTokenRequest{Token: token, CurrentLocation: currentLocation}
	var resp parkingTokenResponse
	if err := c.postJSON(ctx, "/parkingtoken", req, &resp); err != nil {
		return "", err
	}
	if !resp.Status {
		return "", businessErr(resp.Message, "Failed to generate parking token.")
	}
	return resp.ParkingToken, nil
}
