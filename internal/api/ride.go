package api

import (
	"context"

	"github.com/securespot/securespot-go/internal/model"
)

type rideRequestBody struct {
	Token               string `json:"token"`
	CurrentLocation     string `json:"current_location"`
	DestinationLocation string `json:"destination_location"`
}

func (c *Client) CreateRideRequest(ctx context.Context, token, currentLocation, destinationLocation string) (string, error) {
	req := rideRequestBody{
		Token:               token,
		CurrentLocation:     currentLocation,
		DestinationLocation: destinationLocation,
	}
	var resp messageResponse
	if err := c.postJSON(ctx, "/ride_requests", req, &resp); err != nil {
		return "", err
	}
	if !resp.Status {
		return "", businessErr(resp.Message, "Request failed.")
	}
	if resp.Message == "" {
		return "Ride requested.", nil
	}
	return resp.Message, nil
}

type statusResponse struct {
	Status bool `json:"status"`
}

// RideRequestStatus reports whether the server holds an active ride request
// for this session. status=false is a normal answer here, not a failure.
func (c *Client) RideRequestStatus(ctx context.Context, token string) (bool, error) {
	var resp statusResponse
	if err := c.getJSON(ctx, "/ride_request_status/"+token, &resp); err != nil {
		return false, err
	}
	return resp.Status, nil
}

type matchingOffersResponse struct {
	Status         bool                  `json:"status"`
	MatchingOffers []model.MatchingOffer `json:"matching_offers"`
}

func (c *Client) MatchingOffers(ctx context.Context, token string) ([]model.MatchingOffer, error) {
	var resp matchingOffersResponse
	if err := c.getJSON(ctx, "/get_ride_requests/"+token, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, nil
	}
	return resp.MatchingOffers, nil
}

func (c *Client) StopRideRequest(ctx context.Context, token string) (string, error) {
	var resp messageResponse
	if err := c.postJSON(ctx, "/stop_ride_request/"+token, nil, &resp); err != nil {
		return "", err
	}
	if !resp.Status {
		return "", businessErr(resp.Message, "Stop failed.")
	}
	if resp.Message == "" {
		return "Ride request stopped.", nil
	}
	return resp.Message, nil
}

type rideShareBody struct {
	Token               string `json:"token"`
	CurrentLocation     string `json:"current_location"`
	DestinationLocation string `json:"destination_location"`
	AvailableSeats      int    `json:"available_seats"`
}

func (c *Client) CreateRideShare(ctx context.Context, token, currentLocation, destinationLocation string, availableSeats int) (string, error) {
	req := rideShareBody{
		Token:               token,
		CurrentLocation:     currentLocation,
		DestinationLocation: destinationLocation,
		AvailableSeats:      availableSeats,
	}
	var resp messageResponse
	if err := c.postJSON(ctx, "/ride_share", req, &resp); err != nil {
		return "", err
	}
	if !resp.Status {
		return "", businessErr(resp.Message, "Ride share failed.")
	}
	if resp.Message == "" {
		return "Ride shared successfully.", nil
	}
	return resp.Message, nil
}

func (c *Client) RideShareStatus(ctx context.Context, token string) (bool, error) {
	var resp statusResponse
	if err := c.postJSON(ctx, "/ride_share_status/"+token, nil, &resp); err != nil {
		return false, err
	}
	return resp.Status, nil
}

func (c *Client) StopRideShare(ctx context.Context, token string) (string, error) {
	var resp messageResponse
	if err := c.postJSON(ctx, "/stop_ride_share/"+token, nil, &resp); err != nil {
		return "", err
	}
	if !resp.Status {
		return "", businessErr(resp.Message, "Stop failed.")
	}
	if resp.Message == "" {
		return "Ride sharing stopped.", nil
	}
	return resp.Message, nil
}
