package mcrit

import (
	"bytes"
	"encoding/json"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/zerr"
)

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeCollection decodes either a JSON array or an object keyed by id.
// Objects keep the member order of the document.
func decodeCollection[T any](data json.RawMessage) ([]T, error) {
	if isNull(data) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return nil, zerr.New("expected an array or an object")
	}

	var out []T
	for dec.More() {
		if delim == '{' {
			// member name
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
		}
		var item T
		if err := dec.Decode(&item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func decodeOptional[T any](data json.RawMessage) (*T, error) {
	if isNull(data) {
		return nil, nil
	}
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func decodeSearch[T any](data json.RawMessage) (*domain.SearchResult[T], error) {
	if isNull(data) {
		return nil, zerr.New("search returned no data")
	}

	var dto searchDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	results, err := decodeCollection[T](dto.Results)
	if err != nil {
		return nil, err
	}
	idMatch, err := decodeOptional[T](dto.IDMatch)
	if err != nil {
		return nil, err
	}
	shaMatch, err := decodeOptional[T](dto.SHAMatch)
	if err != nil {
		return nil, err
	}

	return &domain.SearchResult[T]{
		IDMatch:  idMatch,
		SHAMatch: shaMatch,
		Results:  results,
		Cursor:   dto.Cursor.toDomain(),
	}, nil
}
