// Package parser converts the editor tool's wire arguments into model
// structs. Arguments arrive as quoted strings, numbers may be serialized
// with trailing decimals, and curves come as nested bracket arrays.
package parser

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gearforge/drivetrain/internal/util"
)

// parseFloat parses a cleaned wire number.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parseFloat: %q is not a valid number", s)
	}
	return f, nil
}

// parseIntFromFloat parses a string that may be an integer ("4") or float
// ("4.00") into int. The editor serializes all numbers as floats.
func parseIntFromFloat(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("parseIntFromFloat: %q is not a valid int", s)
	}
	return int(f), nil
}

// parseBoolFlag accepts 1/0 as well as true/false.
func parseBoolFlag(s string) (bool, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// Parser provides pure []string -> model struct conversion.
// It has zero external dependencies beyond a logger.
type Parser struct {
	logger *slog.Logger

	// Static config set at creation time
	backendVersion  string
	exporterVersion string
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger, backendVersion, exporterVersion string) *Parser {
	return &Parser{
		logger:          logger,
		backendVersion:  backendVersion,
		exporterVersion: exporterVersion,
	}
}

// BackendVersion returns the backend version the parser stamps onto exports.
func (p *Parser) BackendVersion() string {
	return p.backendVersion
}

// ExporterVersion returns the exporter tool version.
func (p *Parser) ExporterVersion() string {
	return p.exporterVersion
}

// cleanArgs strips wire quoting in place.
func cleanArgs(data []string) {
	for i, v := range data {
		data[i] = util.FixEscapeQuotes(util.TrimQuotes(v))
	}
}

// parsePairs parses a nested bracket array of [x,y] pairs, e.g.
// [[0,400],[1500,500]].
func parsePairs(s string) ([][2]float64, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("parsePairs: %q is not a bracket array", s)
	}

	var pairs [][2]float64
	for _, part := range util.SplitTopLevel(s[1 : len(s)-1]) {
		if len(part) < 2 || part[0] != '[' || part[len(part)-1] != ']' {
			return nil, fmt.Errorf("parsePairs: %q is not a pair", part)
		}
		fields := strings.Split(part[1:len(part)-1], ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("parsePairs: %q has %d fields, want 2", part, len(fields))
		}
		x, err := parseFloat(fields[0])
		if err != nil {
			return nil, err
		}
		y, err := parseFloat(fields[1])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]float64{x, y})
	}
	return pairs, nil
}

// parseFlags parses a flat bracket array of boolean flags, e.g. [1,1,0,0].
func parseFlags(s string) ([]bool, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("parseFlags: %q is not a bracket array", s)
	}

	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, nil
	}
	fields := strings.Split(inner, ",")
	flags := make([]bool, len(fields))
	for i, f := range fields {
		b, err := parseBoolFlag(f)
		if err != nil {
			return nil, fmt.Errorf("parseFlags: field %d: %w", i, err)
		}
		flags[i] = b
	}
	return flags, nil
}
