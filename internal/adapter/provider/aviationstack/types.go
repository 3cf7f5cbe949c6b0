package aviationstack

// flightsResponse is the wire format of the Aviationstack flights endpoint.
type flightsResponse struct {
	Data []flightEntry `json:"data"`
}

// flightEntry is one scheduled flight.
type flightEntry struct {
	FlightStatus string       `json:"flight_status"`
	Departure    stopInfo     `json:"departure"`
	Arrival      stopInfo     `json:"arrival"`
	Airline      airlineInfo  `json:"airline"`
	Flight       flightNumber `json:"flight"`
}

// stopInfo describes one end of a flight.
type stopInfo struct {
	Airport   string `json:"airport"`
	IATA      string `json:"iata"`
	Scheduled string `json:"scheduled"`
}

// airlineInfo identifies the operating carrier.
type airlineInfo struct {
	Name string `json:"name"`
}

// flightNumber carries the flight designator variants.
type flightNumber struct {
	Number string `json:"number"`
	IATA   string `json:"iata"`
}
