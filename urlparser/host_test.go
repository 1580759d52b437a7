package urlparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHostIPv4(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "dotted decimal", input: "127.0.0.1", expected: "127.0.0.1"},
		{name: "hex octet", input: "0x7f.0.0.1", expected: "127.0.0.1"},
		{name: "octal octet", input: "0177.0.0.1", expected: "127.0.0.1"},
		{name: "short form", input: "127.1", expected: "127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHost(tt.input, false, nil)
			require.NoError(t, err)
			require.True(t, IsIPv4(h))
			assert.Equal(t, tt.expected, SerializeHost(h))
		})
	}
}

func TestParseHostIPv4OutOfRange(t *testing.T) {
	_, err := ParseHost("0x100.0.0.0", false, nil)
	assert.Error(t, err)
}

func TestParseHostIPv6Compression(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "loopback", input: "[::1]", expected: "[::1]"},
		{name: "full address", input: "[2001:db8:0:0:0:0:0:1]", expected: "[2001:db8::1]"},
		{name: "first longest run chosen", input: "[1:0:0:2:0:0:0:3]", expected: "[1:0:0:2::3]"},
		{name: "all zero", input: "[0:0:0:0:0:0:0:0]", expected: "[::]"},
		{name: "no compressible run", input: "[1:2:3:4:5:6:7:8]", expected: "[1:2:3:4:5:6:7:8]"},
		{name: "equal length runs pick first", input: "[0:0:1:0:0:2:3:4]", expected: "[::1:0:0:2:3:4]"},
		{name: "single elided group with trailing explicit run", input: "[1::2:3:4:5:6:7]", expected: "[1:0:2:3:4:5:6:7]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHost(tt.input, false, nil)
			require.NoError(t, err)
			require.True(t, IsIPv6(h))
			assert.Equal(t, tt.expected, SerializeHost(h))
			assert.LessOrEqual(t, countOccurrences(SerializeHost(h), "::"), 1)
		})
	}
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
			i += len(substr) - 1
		}
	}
	return count
}

func TestParseHostDomain(t *testing.T) {
	h, err := ParseHost("example.org", false, nil)
	require.NoError(t, err)
	require.True(t, IsDomain(h))
	assert.Equal(t, "example.org", SerializeHost(h))
}

func TestParseHostTrailingDotPreserved(t *testing.T) {
	h, err := ParseHost("example.org.", false, nil)
	require.NoError(t, err)
	assert.Equal(t, "example.org.", SerializeHost(h))
}

func TestParseHostOpaque(t *testing.T) {
	h, err := ParseHost("aéb", true, nil)
	require.NoError(t, err)
	require.True(t, IsOpaque(h))
	assert.Equal(t, "a%C3%A9b", SerializeHost(h))
}

func TestParseHostEmpty(t *testing.T) {
	h, err := ParseHost("", false, nil)
	require.NoError(t, err)
	assert.True(t, IsEmpty(h))
	assert.Equal(t, "", SerializeHost(h))
}

func TestParseHostForbiddenCodePoint(t *testing.T) {
	_, err := ParseHost("exa mple.org", false, nil)
	assert.Error(t, err)
}
