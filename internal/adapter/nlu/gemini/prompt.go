package gemini

import (
	"fmt"
	"time"

	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/timeutil"
)

// promptTemplate is the fixed instruction sent alongside the raw user text.
// It owns the schema hint: required fields, code normalization, and date
// format. Airport/city name normalization is delegated to the service here
// rather than done locally; the parser trusts the returned code field.
const promptTemplate = `Extract structured flight details from the following travel request.

Request: %q

Today's date is %s. Resolve relative or year-less dates against it; never produce a past date.

Return only a JSON object with exactly these fields and no other text:
- "origin": 3-letter IATA code of the departure airport or city
- "destination": 3-letter IATA code of the arrival airport or city
- "depart_date": departure date in YYYY-MM-DD format
- "return_date": return date in YYYY-MM-DD format, or null for a one-way trip

When the request names a city or airport instead of a code, answer with its IATA code (e.g. "Toronto" becomes "YTO"). When a required field cannot be determined from the request, set it to null.`

// buildPrompt renders the schema hint around the raw user text.
func buildPrompt(rawText string, now time.Time) string {
	return fmt.Sprintf(promptTemplate, rawText, timeutil.FormatDate(now))
}
