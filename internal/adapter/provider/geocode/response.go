package geocode

// apiPlace is one search hit in a Nominatim JSON response.
// Coordinates are encoded as decimal strings.
type apiPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
