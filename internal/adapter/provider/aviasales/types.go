package aviasales

import (
	"bytes"
	"encoding/json"
)

// pricesResponse is the wire format of the Travelpayouts prices_for_dates
// endpoint.
type pricesResponse struct {
	Data []priceEntry `json:"data"`
}

// priceEntry is one cached fare for a route and date pair.
type priceEntry struct {
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
	Price       *float64      `json:"price"`
	Airline     string        `json:"airline"`
	Transfers   int           `json:"transfers"`
	Duration    *durationInfo `json:"duration"`
	DepartureAt string        `json:"departure_at"`
	ReturnAt    string        `json:"return_at"`
	Link        string        `json:"link"`
}

// durationInfo carries the trip duration in minutes. Upstream sends either a
// bare number or an object with a total field.
type durationInfo struct {
	Total *int `json:"total"`
}

// UnmarshalJSON accepts both the number and the object shape.
func (d *durationInfo) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var minutes int
	if err := json.Unmarshal(data, &minutes); err == nil {
		d.Total = &minutes
		return nil
	}

	type alias durationInfo
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unexpected shape leaves the duration unknown.
		return nil
	}
	*d = durationInfo(obj)
	return nil
}
