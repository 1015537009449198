package gemini

// generateRequest is the request body for the generateContent endpoint.
type generateRequest struct {
	Contents []content `json:"contents"`
}

// content is one conversational turn in a generateContent request or response.
type content struct {
	Parts []part `json:"parts"`
}

// part is one piece of content; this client only uses text parts.
type part struct {
	Text string `json:"text"`
}

// generateResponse is the subset of the generateContent response this client
// reads. The shape is validated defensively; nothing here is trusted to match
// the requested schema.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

// candidate is one generated completion.
type candidate struct {
	Content content `json:"content"`
}

// extractionPayload mirrors the JSON object the schema hint asks the service
// to produce.
type extractionPayload struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DepartDate  string `json:"depart_date"`
	ReturnDate  string `json:"return_date"`
}
