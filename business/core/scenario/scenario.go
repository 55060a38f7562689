// Package scenario provides the canned educational analysis of attack and
// strategy scenarios.
package scenario

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var document []byte

// Analysis is the explanation of a single scenario.
type Analysis struct {
	Explanation string `yaml:"explanation" json:"explanation"`
	RiskLevel   string `yaml:"risk_level" json:"risk_level"`
	Prevention  string `yaml:"prevention" json:"prevention"`
}

// Fallback is returned for scenarios that are not in the table.
var Fallback = Analysis{
	Explanation: "This scenario is not yet documented in our educational system.",
	RiskLevel:   "unknown",
	Prevention:  "Please consult with the instructor for more information.",
}

var (
	table   map[string]Analysis
	loadErr error
	once    sync.Once
)

// load parses the embedded table once.
func load() (map[string]Analysis, error) {
	once.Do(func() {
		table, loadErr = Parse(document)
	})
	return table, loadErr
}

// Parse decodes a scenario table from YAML.
func Parse(data []byte) (map[string]Analysis, error) {
	var t map[string]Analysis
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing scenarios: %w", err)
	}
	return t, nil
}

// Lookup returns the analysis for the scenario or the fallback when the
// scenario is unknown.
func Lookup(key string) (Analysis, error) {
	t, err := load()
	if err != nil {
		return Analysis{}, err
	}

	if a, exists := t[key]; exists {
		return a, nil
	}

	return Fallback, nil
}

// Keys returns the documented scenarios in sorted order.
func Keys() ([]string, error) {
	t, err := load()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys, nil
}
