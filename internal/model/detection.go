package model

import (
	"fmt"
	"strings"
)

// ParkingDetection is the structured result of the parking-occupancy check.
// Numeric fields are pointers because the classifier omits them for photos
// it cannot read; rendering falls back to "N/A" rather than zero.
type ParkingDetection struct {
	ParkingValid     bool   `json:"parking_valid"`
	TotalSlots       *int   `json:"total_slot"`
	OccupiedSlots    *int   `json:"occupied_slot"`
	FreeSlots        *int   `json:"free_slots"`
	DetectedCarCount *int   `json:"detected_car_count"`
	Message          string `json:"message"`
}

func (d ParkingDetection) Details() string {
	if d.Message == "" {
		return "No details provided."
	}
	return d.Message
}

// SecurityDetection is the structured result of the security-alert check.
type SecurityDetection struct {
	Activity        string   `json:"activity"`
	AlertLevel      string   `json:"alert_level"`
	Confidence      *float64 `json:"confidence"`
	DetectedObjects []string `json:"detected_objects"`
	Message         string   `json:"message"`
}

func (d SecurityDetection) ActivityLabel() string {
	return orNone(d.Activity)
}

func (d SecurityDetection) AlertLabel() string {
	return orNone(d.AlertLevel)
}

func (d SecurityDetection) ObjectsLabel() string {
	if len(d.DetectedObjects) == 0 {
		return "None"
	}
	return strings.Join(d.DetectedObjects, ", ")
}

// IntLabel renders an optional count, "N/A" when absent.
func IntLabel(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}

func FloatLabel(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *v)
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
