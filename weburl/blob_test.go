package weburl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStoreRegisterAndResolve(t *testing.T) {
	store := NewBlobStore()
	creator, err := Parse("https://example.org/", nil)
	require.NoError(t, err)

	handle := store.Register(creator)

	blobURL, err := Parse("blob:"+handle.String(), nil)
	require.NoError(t, err)
	blobURL.SetBlobResolver(store.Resolver())

	assert.Equal(t, "https://example.org", blobURL.Origin())
}

func TestBlobStoreRevoke(t *testing.T) {
	store := NewBlobStore()
	creator, err := Parse("https://example.org/", nil)
	require.NoError(t, err)

	handle := store.Register(creator)
	store.Revoke(handle)

	blobURL, err := Parse("blob:"+handle.String(), nil)
	require.NoError(t, err)
	blobURL.SetBlobResolver(store.Resolver())

	assert.Equal(t, "null", blobURL.Origin())
}
