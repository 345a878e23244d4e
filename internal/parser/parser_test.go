package parser

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	return NewParser(slog.Default(), "4.1", "1.0.0")
}

func TestNewParser(t *testing.T) {
	p := newTestParser()
	require.NotNil(t, p)
	assert.Equal(t, "4.1", p.BackendVersion())
	assert.Equal(t, "1.0.0", p.ExporterVersion())
}

func TestParseIntFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"integer", "4", 4, false},
		{"zero", "0", 0, false},
		{"negative integer", "-1", -1, false},
		{"float with decimals", "4.00", 4, false},
		{"fractional rejects", "4.5", 0, true},
		{"empty string", "", 0, true},
		{"non-numeric", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntFromFloat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseBoolFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"1", true, false},
		{"0", false, false},
		{"true", true, false},
		{"false", false, false},
		{"yes", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseBoolFlag(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParsePairs(t *testing.T) {
	pairs, err := parsePairs("[[0,400],[1500,500],[5729,400]]")
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{0, 400}, {1500, 500}, {5729, 400}}, pairs)

	pairs, err = parsePairs("[]")
	require.NoError(t, err)
	assert.Empty(t, pairs)

	_, err = parsePairs("0,400")
	assert.Error(t, err)

	_, err = parsePairs("[[0,400,1]]")
	assert.Error(t, err)

	_, err = parsePairs("[[0,abc]]")
	assert.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	flags, err := parseFlags("[1,1,0,0]")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false, false}, flags)

	flags, err = parseFlags("[true,false]")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, flags)

	flags, err = parseFlags("[]")
	require.NoError(t, err)
	assert.Empty(t, flags)

	_, err = parseFlags("[1,2]")
	assert.Error(t, err)

	_, err = parseFlags("1,0")
	assert.Error(t, err)
}
