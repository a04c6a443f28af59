package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "images/ab/one.jpg", strings.NewReader("hello")))

	rc, err := s.Get(ctx, "images/ab/one.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(data))

	require.NoError(t, s.Delete(ctx, "images/ab/one.jpg"))
	_, err = s.Get(ctx, "images/ab/one.jpg")
	assert.ErrorIs(t, err, ErrNotExist)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, "images/ab/one.jpg"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	err = s.Save(context.Background(), "../escape.txt", strings.NewReader("x"))
	assert.Error(t, err)

	_, err = s.Get(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}
