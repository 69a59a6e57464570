package routepolicy

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRulesFile is returned when a rules file cannot be read or parsed.
var ErrInvalidRulesFile = errors.New("invalid route policy rules file")

// LoadRules reads rule tables from a YAML file. Missing tables fall back
// to the compiled-in defaults when the result is passed to NewClassifier.
//
//	open_prefixes:
//	  - /select-client
//	  - /login
//	gated_prefixes:
//	  - /signup
//	  - /register
//	bypass_params: [ref, invite, code, client]
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("%w: %v", ErrInvalidRulesFile, err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("%w: %v", ErrInvalidRulesFile, err)
	}
	return rules, nil
}
