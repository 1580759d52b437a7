package weburl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParamsSortStable(t *testing.T) {
	sp := NewSearchParams("k=5&k=1&j=2")
	sp.Sort()
	assert.Equal(t, "j=2&k=5&k=1", sp.String())
}

func TestSearchParamsAppendGetHas(t *testing.T) {
	sp := NewSearchParams("")
	sp.Append("a", "1")
	sp.Append("a", "2")
	sp.Append("b", "3")

	assert.True(t, sp.Has("a"))
	assert.False(t, sp.Has("c"))

	v, ok := sp.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	assert.Equal(t, []string{"1", "2"}, sp.GetAll("a"))
}

func TestSearchParamsSet(t *testing.T) {
	sp := NewSearchParams("a=1&b=2&a=3")
	sp.Set("a", "9")
	assert.Equal(t, "a=9&b=2", sp.String())
}

func TestSearchParamsSetNewKey(t *testing.T) {
	sp := NewSearchParams("a=1")
	sp.Set("b", "2")
	assert.Equal(t, "a=1&b=2", sp.String())
}

func TestSearchParamsDelete(t *testing.T) {
	sp := NewSearchParams("a=1&b=2&a=3")
	sp.Delete("a")
	assert.Equal(t, "b=2", sp.String())
}

func TestSearchParamsFromPairs(t *testing.T) {
	sp, err := NewSearchParamsFromPairs([][]string{{"a", "1"}, {"b", "2"}})
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=2", sp.String())
}

func TestSearchParamsFromPairsInvalid(t *testing.T) {
	_, err := NewSearchParamsFromPairs([][]string{{"a"}})
	assert.Error(t, err)
}

func TestSearchParamsUnmarshalText(t *testing.T) {
	sp := &SearchParams{}
	require.NoError(t, sp.UnmarshalText([]byte("a=1&b=2")))
	assert.Equal(t, 2, sp.Len())
	text, err := sp.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=2", string(text))
}
