// Package config loads default option values from a YAML file, for
// pre-filling RunContext.Defaults before argv is matched (SPEC_FULL §4.9).
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults maps a canonical option name (its first declared spelling, e.g.
// "--tag") to the string value that should stand in for it when argv leaves
// the option unset. Command[T].Boolean/.String look values up by exactly
// that spelling, so Load normalizes bare YAML keys onto it.
type Defaults map[string]string

// Load reads a YAML document at path and decodes it into Defaults. A
// missing file is not an error: it returns an empty Defaults, so a
// command-line tool can treat a config file as optional.
//
// A YAML key is taken as an option's long spelling with its leading dashes
// dropped (`tag: default-value` fills in `--tag`), matching how command
// declarations list long names first; a key already written with its dashes
// (`--tag: default-value`) is accepted as-is.
func Load(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults{}, nil
		}
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	out := make(Defaults, len(raw))
	for k, v := range raw {
		out[canonicalKey(k)] = fmt.Sprintf("%v", v)
	}
	return out, nil
}

// canonicalKey turns a bare YAML key into its "--"-prefixed long spelling,
// leaving an already-dashed key untouched.
func canonicalKey(k string) string {
	if strings.HasPrefix(k, "-") {
		return k
	}
	return "--" + k
}

// Merge overlays override's keys onto a copy of d.
func (d Defaults) Merge(override Defaults) Defaults {
	out := make(Defaults, len(d)+len(override))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
