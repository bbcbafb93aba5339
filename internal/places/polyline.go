package places

// LatLng is a decoded route point in degrees.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DecodePolyline unpacks Google's encoded polyline format: deltas in units
// of 1e-5 degrees, zig-zag signed, packed five bits per byte offset by 63.
func DecodePolyline(encoded string) []LatLng {
	var points []LatLng
	var lat, lng int64

	index := 0
	for index < len(encoded) {
		dlat, next := decodeChunk(encoded, index)
		lat += dlat
		index = next

		if index >= len(encoded) {
			break
		}
		dlng, next := decodeChunk(encoded, index)
		lng += dlng
		index = next

		points = append(points, LatLng{
			Latitude:  float64(lat) / 1e5,
			Longitude: float64(lng) / 1e5,
		})
	}
	return points
}

func decodeChunk(encoded string, index int) (int64, int) {
	var result int64
	var shift uint
	for index < len(encoded) {
		b := int64(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), index
	}
	return result >> 1, index
}
