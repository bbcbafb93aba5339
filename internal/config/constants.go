package config

import "time"

// Timer cadences fixed by the product, not configurable.
const (
	// ParkingTokenTTL is how long an issued parking token stays active.
	ParkingTokenTTL = 30 * time.Minute

	// ParkingTickInterval drives elapsed-time recomputation while a token exists.
	ParkingTickInterval = time.Second

	// OTPWindow is the client-side validity window of an emailed code.
	OTPWindow = 60 * time.Second

	// OfferPollInterval is the silent refresh cadence for matching ride offers.
	OfferPollInterval = 30 * time.Second

	// SuggestDebounce coalesces location-autocomplete keystrokes.
	SuggestDebounce = 300 * time.Millisecond
)

// Autocomplete queries shorter than this never reach the network.
const MinAutocompleteInput = 3

// Store connection settings.
const (
	StoreMaxOpenConns    = 5
	StoreMaxIdleConns    = 2
	StoreConnMaxLifetime = 5 * time.Minute
	StorePingTimeout     = 5 * time.Second
)
