package media

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStoreRoundTrip(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Put("questions/abc.png", strings.NewReader("fake-png"))
	require.NoError(t, err)
	assert.Equal(t, "questions/abc.png", key)

	rc, err := store.Get(key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "fake-png", string(data))

	require.NoError(t, store.Delete(key))
	_, err = store.Get(key)
	assert.Error(t, err)
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put("", strings.NewReader("x"))
	assert.Error(t, err)
	_, err = store.Put("../outside.txt", strings.NewReader("x"))
	assert.Error(t, err)
	_, err = store.Get("../../etc/passwd")
	assert.Error(t, err)
}
