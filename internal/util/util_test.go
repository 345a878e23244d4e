package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimQuotes(t *testing.T) {
	assert.Equal(t, "abc", TrimQuotes(`"abc"`))
	assert.Equal(t, "abc", TrimQuotes("abc"))
	assert.Equal(t, "", TrimQuotes(`""`))
}

func TestFixEscapeQuotes(t *testing.T) {
	assert.Equal(t, `say "hi"`, FixEscapeQuotes(`say ""hi""`))
	assert.Equal(t, "plain", FixEscapeQuotes("plain"))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-0.5, 0, 1))
	assert.Equal(t, 1.0, Clamp(1.5, 0, 1))
	assert.Equal(t, 0.7, Clamp(0.7, 0, 1))
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"flat list", "1,2,3", []string{"1", "2", "3"}},
		{"nested pairs", "[0,400],[1500,500]", []string{"[0,400]", "[1500,500]"}},
		{"single nested", "[4,0.65,0.5]", []string{"[4,0.65,0.5]"}},
		{"spaces", " [0,1] , [20,0.9] ", []string{"[0,1]", "[20,0.9]"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTopLevel(tt.input))
		})
	}
}
