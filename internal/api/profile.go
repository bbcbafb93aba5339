package api

import (
	"context"

	"github.com/securespot/securespot-go/internal/model"
)

type tokenRequest struct {
	Token string `json:"token"`
}

type userDetailsResponse struct {
	Status  bool               `json:"status"`
	Data    *model.UserProfile `json:"data"`
	Message string             `json:"message"`
}

func (c *Client) UserDetails(ctx context.Context, token string) (*model.UserProfile, error) {
	var resp userDetailsResponse
	if err := c.postJSON(ctx, "/get_user_details", tokenRequest{Token: token}, &resp); err != nil {
		return nil, err
	}
	if !resp.Status || resp.Data == nil {
		return nil, businessErr(resp.Message, "Failed to retrieve profile data.")
	}
	return resp.Data, nil
}

type vehicleDetailsResponse struct {
	Status  bool           `json:"status"`
	Data    *model.Vehicle `json:"data"`
	Message string         `json:"message"`
}

func (c *Client) VehicleDetails(ctx context.Context, token string) (*model.Vehicle, error) {
	var resp vehicleDetailsResponse
	if err := c.postJSON(ctx, "/get_vehicle_details", tokenRequest{Token: token}, &resp); err != nil {
		return nil, err
	}
	if !resp.Status || resp.Data == nil {
		return nil, businessErr(resp.Message, "Failed to retrieve vehicle details.")
	}
	return resp.Data, nil
}

type registerVehicleRequest struct {
	Token        string `json:"token"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	LicensePlate string `json:"license_plate"`
}

func (c *Client) RegisterVehicle(ctx context.Context, token string, v model.Vehicle) (string, error) {
	req := registerVehicleRequest{
		Token:        token,
		Model:        v.Model,
		Year:         v.Year,
		Color:        v.Color,
		LicensePlate: v.LicensePlate,
	}
	var resp messageResponse
	if err := c.postJSON(ctx, "/register_vehicle", req, &resp); err != nil {
		return "", err
	}
	if !resp.Status {
		return "", businessErr(resp.Message, "Vehicle registration failed.")
	}
	if resp.Message == "" {
		return "Vehicle registered successfully!", nil
	}
	return resp.Message, nil
}
