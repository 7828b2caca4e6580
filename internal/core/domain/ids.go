package domain

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

var idListPattern = regexp.MustCompile(`^\d+(?:\s*,\s*\d+)*$`)

// ParseIDList parses a comma separated list of non-negative ids.
// An empty string yields an empty list.
func ParseIDList(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	if !idListPattern.MatchString(raw) {
		return nil, zerr.With(zerr.Wrap(ErrInvalidInput, "expected a comma separated list of ids"), "input", raw)
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(ErrInvalidInput, "id out of range"), "id", strings.TrimSpace(p))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseCustomOrder parses a custom sample ordering. Ids may be negative and
// surrounding whitespace is ignored. An empty string means no custom order.
func ParseCustomOrder(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(ErrInvalidInput, "malformed custom ordering"), "element", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseID parses a single numeric id.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, zerr.With(zerr.Wrap(ErrInvalidInput, "malformed id"), "id", raw)
	}
	return id, nil
}

// FlexibleID decodes an id that the service may encode as a number or a string.
type FlexibleID int

// UnmarshalJSON accepts both 12 and "12".
func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		id, err := ParseID(s)
		if err != nil {
			return err
		}
		*f = FlexibleID(id)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return zerr.Wrap(err, "id is neither a number nor a numeric string")
	}
	*f = FlexibleID(n)
	return nil
}
