package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-generator/internal/types"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := New(Options{Addr: mr.Addr(), TTL: ttl})
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_GetSet(t *testing.T) {
	c, mr := newTestCache(t, time.Hour)
	ctx := context.Background()

	_, found, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "abc", "data:text/html;base64,PGgxPg=="))
	uri, found, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "data:text/html;base64,PGgxPg==", uri)

	assert.True(t, mr.Exists("cvgen:result:abc"))
	assert.Equal(t, time.Hour, mr.TTL("cvgen:result:abc"))
}

func TestCache_Expiry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v"))
	mr.FastForward(2 * time.Minute)

	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_CustomPrefix(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c := New(Options{Addr: mr.Addr(), Prefix: "test:"})
	defer c.Close()
	require.NoError(t, c.Set(context.Background(), "k", "v"))
	assert.True(t, mr.Exists("test:result:k"))
}

func TestCache_ServerDown(t *testing.T) {
	c, mr := newTestCache(t, 0)
	mr.Close()

	_, _, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, c.Set(context.Background(), "k", "v"))
	assert.Error(t, c.Ping(context.Background()))
}

func TestKey(t *testing.T) {
	data := types.SampleCV()
	k1, err := Key(types.TemplateModern, types.FormatPDF, data)
	require.NoError(t, err)
	assert.Len(t, k1, 64)

	again, err := Key(types.TemplateModern, types.FormatPDF, types.SampleCV())
	require.NoError(t, err)
	assert.Equal(t, k1, again, "equal inputs hash equally")

	otherFormat, err := Key(types.TemplateModern, types.FormatHTML, data)
	require.NoError(t, err)
	assert.NotEqual(t, k1, otherFormat)

	otherTemplate, err := Key(types.TemplateClassic, types.FormatPDF, data)
	require.NoError(t, err)
	assert.NotEqual(t, k1, otherTemplate)

	changed := types.SampleCV()
	changed.Styling = &types.Styling{PrimaryColor: types.Some("#000000")}
	otherData, err := Key(types.TemplateModern, types.FormatPDF, changed)
	require.NoError(t, err)
	assert.NotEqual(t, k1, otherData)
}
