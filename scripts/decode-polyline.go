package main

import (
	"fmt"
	"os"

	"github.com/securespot/securespot-go/internal/places"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/decode-polyline.go <encoded-polyline>\n")
		os.Exit(1)
	}

	points := places.DecodePolyline(os.Args[1])
	for _, p := range points {
		fmt.Printf("%.5f,%.5f\n", p.Latitude, p.Longitude)
	}
}
