//go:build !noyaml

package format

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"tally/internal/domain"
)

func init() {
	register(Codec{
		Name:     "yaml",
		priority: 30,
		Decode: func(text string) (map[string]domain.Language, error) {
			var out map[string]domain.Language
			dec := yaml.NewDecoder(bytes.NewBufferString(text))
			dec.KnownFields(true)
			if err := dec.Decode(&out); err != nil {
				return nil, err
			}
			return out, nil
		},
		Encode: func(output map[string]domain.Language) (string, error) {
			data, err := yaml.Marshal(output)
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
	})
}
