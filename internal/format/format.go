// Package format serializes and parses statistics results.
//
// JSON is always available. Other codecs register themselves from
// build-tag-guarded files and can be compiled out with -tags nomsgpack,
// notoml or noyaml.
package format

import (
	"fmt"
	"sort"
	"strings"

	"tally/internal/domain"
)

// Codec encodes and decodes a serialized result (languages plus a Total entry)
type Codec struct {
	Decode func(text string) (map[string]domain.Language, error)
	Encode func(output map[string]domain.Language) (string, error)
	Name   string

	// priority orders parse attempts after JSON; lower goes first
	priority int
}

// knownFormat describes a codec that may or may not be compiled in
type knownFormat struct {
	name string
	tag  string
}

// known lists every codec tally ships, in parse priority order
var known = []knownFormat{
	{name: "msgpack", tag: "nomsgpack"},
	{name: "toml", tag: "notoml"},
	{name: "yaml", tag: "noyaml"},
}

var registry = map[string]Codec{}

func register(c Codec) {
	registry[c.Name] = c
}

// Supported returns the names of compiled-in formats, json first
func Supported() []string {
	names := []string{jsonCodec.Name}
	for _, c := range ordered() {
		names = append(names, c.Name)
	}
	return names
}

// NotSupported returns the names of formats compiled out of this build
func NotSupported() []string {
	var names []string
	for _, k := range known {
		if _, ok := registry[k.name]; !ok {
			names = append(names, k.name)
		}
	}
	return names
}

// Lookup returns the codec for name. A known format that was compiled out
// yields an error naming the build tag responsible.
func Lookup(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == jsonCodec.Name {
		return jsonCodec, nil
	}
	if c, ok := registry[name]; ok {
		return c, nil
	}
	for _, k := range known {
		if k.name == name {
			return Codec{}, fmt.Errorf(
				"this version of tally was compiled without '%s' serialization support: "+
					"rebuild without the '%s' build tag to enable it (tags that remove formats: %s)",
				k.name, k.tag, strings.Join(allTags(), ", "))
		}
	}
	return Codec{}, fmt.Errorf("%q is not a supported serialization format", name)
}

// Print serializes langs (with a Total entry) using the named format
func Print(langs domain.Languages, name string) (string, error) {
	codec, err := Lookup(name)
	if err != nil {
		return "", err
	}

	output := make(map[string]domain.Language, len(langs)+1)
	for k, v := range langs {
		output[k] = v
	}
	output[domain.TotalKey] = langs.Total()

	return codec.Encode(output)
}

// Parse decodes text by trying JSON first and then every compiled-in codec
// in priority order. The first structurally valid decode wins; the Total
// entry is dropped.
func Parse(text string) (domain.Languages, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	codecs := append([]Codec{jsonCodec}, ordered()...)
	for _, c := range codecs {
		decoded, err := c.Decode(text)
		if err != nil || decoded == nil {
			continue
		}
		langs := make(domain.Languages, len(decoded))
		for k, v := range decoded {
			if k == domain.TotalKey {
				continue
			}
			langs[k] = v
		}
		return langs, true
	}

	return nil, false
}

func ordered() []Codec {
	codecs := make([]Codec, 0, len(registry))
	for _, c := range registry {
		codecs = append(codecs, c)
	}
	sort.Slice(codecs, func(i, j int) bool {
		return codecs[i].priority < codecs[j].priority
	})
	return codecs
}

func allTags() []string {
	tags := make([]string, len(known))
	for i, k := range known {
		tags[i] = k.tag
	}
	return tags
}
