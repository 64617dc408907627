package roi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedRecords is returned by DecodeRecords for input that is not an
// array of complete records.
var ErrMalformedRecords = errors.New("malformed roi records")

// record mirrors Box with pointer fields so missing keys can be detected.
type record struct {
	X1   *float64 `json:"x1"`
	Y1   *float64 `json:"y1"`
	X2   *float64 `json:"x2"`
	Y2   *float64 `json:"y2"`
	Name *string  `json:"name"`
}

// EncodeRecords renders boxes as an indented JSON array. An empty or nil
// slice encodes as [].
func EncodeRecords(boxes []Box) ([]byte, error) {
	if boxes == nil {
		boxes = []Box{}
	}
	return json.MarshalIndent(boxes, "", "  ")
}

// DecodeRecords parses a JSON array of records. Every element must carry
// x1, y1, x2, y2 and name; unknown keys are ignored. Coordinates are not
// range checked.
func DecodeRecords(data []byte) ([]Box, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a json array", ErrMalformedRecords)
	}
	var raw []record
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecords, err)
	}
	boxes := make([]Box, 0, len(raw))
	for i, r := range raw {
		if r.X1 == nil || r.Y1 == nil || r.X2 == nil || r.Y2 == nil || r.Name == nil {
			return nil, fmt.Errorf("%w: record %d is missing a field", ErrMalformedRecords, i)
		}
		boxes = append(boxes, Box{X1: *r.X1, Y1: *r.Y1, X2: *r.X2, Y2: *r.Y2, Name: *r.Name})
	}
	return boxes, nil
}
