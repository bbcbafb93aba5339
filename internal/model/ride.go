package model

// MatchingOffer is a driver-side ride share matched to an open ride request.
// Matching happens server-side; the client only renders the list.
type MatchingOffer struct {
	RiderOfferID        string `json:"rider_offer_id"`
	Name                string `json:"name"`
	VehicleModel        string `json:"vehicle_model"`
	Color               string `json:"color"`
	CurrentLocation     string `json:"current_location"`
	DestinationLocation string `json:"destination_location"`
	AvailableSeats      int    `json:"available_seats"`
}
