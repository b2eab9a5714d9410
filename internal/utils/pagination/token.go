package pagination

import (
	"encoding/base64"
	"fmt"
	"time"
)

const dateFormat = "2006-01-02" // Entry dates carry no time component

// EncodeDateToken creates a base64 encoded token from the last entry date of a
// page. Entry listings paginate on the calendar date, which is unique per
// method, so the date alone is a stable cursor.
func EncodeDateToken(date time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(date.UTC().Format(dateFormat)))
}

// DecodeDateToken parses a token created by EncodeDateToken back into a date.
func DecodeDateToken(token string) (time.Time, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	date, err := time.Parse(dateFormat, string(decodedBytes))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	return date.UTC(), nil
}
