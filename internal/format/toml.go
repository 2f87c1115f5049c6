//go:build !notoml

package format

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"tally/internal/domain"
)

func init() {
	register(Codec{
		Name:     "toml",
		priority: 20,
		Decode: func(text string) (map[string]domain.Language, error) {
			var out map[string]domain.Language
			meta, err := toml.Decode(text, &out)
			if err != nil {
				return nil, err
			}
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				return nil, fmt.Errorf("unexpected key %s", undecoded[0].String())
			}
			return out, nil
		},
		Encode: func(output map[string]domain.Language) (string, error) {
			var buf bytes.Buffer
			if err := toml.NewEncoder(&buf).Encode(output); err != nil {
				return "", err
			}
			return buf.String(), nil
		},
	})
}
