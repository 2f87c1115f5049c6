//go:build !nomsgpack

package format

import (
	"encoding/hex"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"tally/internal/domain"
)

// msgpack output is hex encoded so it stays printable
func init() {
	register(Codec{
		Name:     "msgpack",
		priority: 10,
		Decode: func(text string) (map[string]domain.Language, error) {
			raw, err := hex.DecodeString(strings.TrimSpace(text))
			if err != nil {
				return nil, err
			}
			var out map[string]domain.Language
			if err := msgpack.Unmarshal(raw, &out); err != nil {
				return nil, err
			}
			return out, nil
		},
		Encode: func(output map[string]domain.Language) (string, error) {
			raw, err := msgpack.Marshal(output)
			if err != nil {
				return "", err
			}
			return hex.EncodeToString(raw), nil
		},
	})
}
