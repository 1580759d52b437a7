// Command weburlcheck parses a batch of URLs from a YAML fixture file and
// prints one JSON result per line: the resulting href, origin, and any
// validation errors collected along the way. A single malformed fixture
// does not abort the batch; its error is reported in that line's result.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/netic-go/weburl/urlparser"
	"github.com/netic-go/weburl/weburl"
)

// fixture is one entry of the YAML input file: an input URL string and an
// optional base URL string to resolve it against.
type fixture struct {
	Input string `yaml:"input"`
	Base  string `yaml:"base"`
}

// result is the JSON line printed for each fixture.
type result struct {
	Input      string   `json:"input"`
	Base       string   `json:"base,omitempty"`
	Href       string   `json:"href,omitempty"`
	Origin     string   `json:"origin,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	ParseError string   `json:"parse_error,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "path to a YAML fixture file")
	flag.Parse()

	if *configPath == "" {
		log.Fatal("weburlcheck: -config is required")
	}

	fixtures, err := loadFixtures(*configPath)
	if err != nil {
		log.Fatalf("weburlcheck: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, f := range fixtures {
		enc.Encode(check(f))
	}
}

func loadFixtures(path string) ([]fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture file: %w", err)
	}
	var fixtures []fixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parsing fixture file: %w", err)
	}
	return fixtures, nil
}

func check(f fixture) result {
	r := result{Input: f.Input, Base: f.Base}

	var base *weburl.URL
	if f.Base != "" {
		b, err := weburl.Parse(f.Base, nil)
		if err != nil {
			r.ParseError = fmt.Sprintf("base: %v", err)
			return r
		}
		base = b
	}

	var warnings []string
	sink := urlparser.ErrorSink(func(message string) {
		warnings = append(warnings, message)
	})
	record, err := weburl.ParseWithSink(f.Input, base, sink)
	if err != nil {
		r.ParseError = err.Error()
		r.Warnings = warnings
		return r
	}

	r.Href = record.Href()
	r.Origin = record.Origin()
	r.Warnings = warnings
	return r
}
