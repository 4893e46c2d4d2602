// internal/config/load.go
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads the process configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read")
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "config: parse")
	}

	return &cfg, nil
}

// ChannelPair maps one stimulus channel to its response channels.
type ChannelPair struct {
	Stimulus  string
	Responses []string
}

// ChannelMap preserves the file order of stimulus channels. Order only
// affects log readability, but operators read those logs for weeks.
type ChannelMap []ChannelPair

// AllChannels returns every stimulus and response channel in map
// order, deduplicated. This is the set the readiness check probes.
func (m ChannelMap) AllChannels() []string {
	seen := make(map[string]bool)
	var out []string

	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	for _, pair := range m {
		add(pair.Stimulus)
		for _, r := range pair.Responses {
			add(r)
		}
	}
	return out
}

// LoadChannelMap reads the JSON channel map file.
func LoadChannelMap(path string) (ChannelMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read channel map")
	}
	return ParseChannelMap(raw)
}

// ParseChannelMap decodes a JSON object of stimulus channel to response
// channel list. Decoded token by token so the object's key order
// survives into the ChannelMap.
func ParseChannelMap(raw []byte) (ChannelMap, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "config: channel map")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("config: channel map must be a JSON object")
	}

	var out ChannelMap
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "config: channel map")
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("config: channel map key is not a string")
		}

		var responses []string
		if err := dec.Decode(&responses); err != nil {
			return nil, errors.Wrapf(err, "config: channel map entry %q", key)
		}

		out = append(out, ChannelPair{Stimulus: key, Responses: responses})
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "config: channel map")
	}

	return out, nil
}

// LoadParamOverrides reads the optional JSON parameter override file.
func LoadParamOverrides(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read param overrides")
	}

	var overrides map[string]string
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return nil, errors.Wrap(err, "config: parse param overrides")
	}

	return overrides, nil
}
