package format

import (
	"bytes"
	"encoding/json"

	"tally/internal/domain"
)

var jsonCodec = Codec{
	Name: "json",
	Decode: func(text string) (map[string]domain.Language, error) {
		var out map[string]domain.Language
		dec := json.NewDecoder(bytes.NewBufferString(text))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	},
	Encode: func(output map[string]domain.Language) (string, error) {
		data, err := json.Marshal(output)
		if err != nil {
			return "", err
		}
		return string(data), nil
	},
}
