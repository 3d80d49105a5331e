package catalog

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

const (
	DefaultLimit = 8
	MinLimit     = 1
	MaxLimit     = 24
)

// Query is a search request. Limit must be within [MinLimit, MaxLimit]; use
// DefaultLimit when the caller did not ask for one. Empty Text or Country
// disable that filter.
type Query struct {
	Text    string
	Country string
	Limit   int
}

// ParseLimit parses a limit query parameter that was present in the request.
// An empty value is malformed; absent parameters are the caller's concern.
func ParseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.Wrap(ErrInvalidLimit, "empty value")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidLimit, "%q is not an integer", raw)
	}
	if err := checkLimit(n); err != nil {
		return 0, err
	}
	return n, nil
}

func checkLimit(n int) error {
	if n < MinLimit || n > MaxLimit {
		return errors.Wrapf(ErrInvalidLimit, "%d is outside [%d, %d]", n, MinLimit, MaxLimit)
	}
	return nil
}

// Search returns the records matching q in store order, truncated to
// q.Limit after filtering. The limit is validated before any record is looked at.
func Search(records []Product, q Query) ([]Product, error) {
	limit := q.Limit
	if err := checkLimit(limit); err != nil {
		return nil, err
	}

	tokens := strings.Fields(strings.ToLower(q.Text))

	out := make([]Product, 0, min(limit, len(records)))
	for _, p := range records {
		if q.Country != "" && !strings.EqualFold(p.Country, q.Country) {
			continue
		}
		if !matchAll(p.searchText(), tokens) {
			continue
		}
		out = append(out, p.clone())
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func matchAll(haystack string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}
