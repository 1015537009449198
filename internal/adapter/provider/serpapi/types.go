package serpapi

// searchResponse is the subset of the SerpAPI Google Flights response this
// adapter reads. Groups appear in two buckets with identical shapes.
type searchResponse struct {
	BestFlights  []flightGroup `json:"best_flights"`
	OtherFlights []flightGroup `json:"other_flights"`
	Error        string        `json:"error,omitempty"`
}

// flightGroup is one itinerary: a sequence of flight segments with an overall
// price, total duration, and the layovers between segments.
type flightGroup struct {
	Flights       []flightSegment `json:"flights"`
	Layovers      []layover       `json:"layovers"`
	TotalDuration int             `json:"total_duration"`
	Price         float64         `json:"price"`
}

// flightSegment is one flight within an itinerary.
type flightSegment struct {
	DepartureAirport airportPoint `json:"departure_airport"`
	ArrivalAirport   airportPoint `json:"arrival_airport"`
	Airline          string       `json:"airline"`
	FlightNumber     string       `json:"flight_number"`
}

// airportPoint is an airport with its scheduled local time.
type airportPoint struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

// layover is a connection between two segments.
type layover struct {
	Duration int    `json:"duration"`
	Name     string `json:"name"`
	ID       string `json:"id"`
}
