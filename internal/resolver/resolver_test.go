package resolver

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cropdoctor/cropdoctor/internal/domain"
	"github.com/cropdoctor/cropdoctor/internal/store"
)

type fakeProvider struct {
	name  string
	url   string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(context.Context, string) (string, error) {
	f.calls++
	return f.url, f.err
}

func newTestCache(t *testing.T) *store.ImageCache {
	t.Helper()
	return store.NewImageCache(filepath.Join(t.TempDir(), "images.json"))
}

func TestResolvePrimaryProvider(t *testing.T) {
	primary := &fakeProvider{name: "a", url: "https://a.example/tomato.jpg"}
	secondary := &fakeProvider{name: "b", url: "https://b.example/tomato.jpg"}
	r := New(newTestCache(t), zap.NewNop(), primary, secondary)

	got := r.Resolve(context.Background(), "Tomato")

	assert.Equal(t, "https://a.example/tomato.jpg", got)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, secondary.calls, "secondary must not be consulted after primary success")
}

func TestResolveFallsThroughOnFailure(t *testing.T) {
	primary := &fakeProvider{name: "a", err: errors.New("rate limited")}
	secondary := &fakeProvider{name: "b", url: "https://b.example/rice.jpg"}
	r := New(newTestCache(t), zap.NewNop(), primary, secondary)

	got := r.Resolve(context.Background(), "Rice")

	assert.Equal(t, "https://b.example/rice.jpg", got)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestResolveFallsThroughOnEmptyResult(t *testing.T) {
	primary := &fakeProvider{name: "a"}
	secondary := &fakeProvider{name: "b", url: "https://b.example/wheat.jpg"}
	r := New(newTestCache(t), zap.NewNop(), primary, secondary)

	got := r.Resolve(context.Background(), "Wheat")
	assert.Equal(t, "https://b.example/wheat.jpg", got)
}

func TestResolveAllProvidersExhausted(t *testing.T) {
	primary := &fakeProvider{name: "a", err: errors.New("down")}
	secondary := &fakeProvider{name: "b"}
	r := New(newTestCache(t), zap.NewNop(), primary, secondary)

	got := r.Resolve(context.Background(), "Mango")
	assert.Equal(t, "", got)
}

func TestResolveNoProviders(t *testing.T) {
	r := New(newTestCache(t), zap.NewNop())

	assert.Equal(t, "", r.Resolve(context.Background(), "Guava"))
}

func TestResolveSecondCallServedFromCache(t *testing.T) {
	primary := &fakeProvider{name: "a", url: "https://a.example/papaya.jpg"}
	r := New(newTestCache(t), zap.NewNop(), primary)

	first := r.Resolve(context.Background(), "Papaya")
	second := r.Resolve(context.Background(), "Papaya")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, primary.calls, "second resolve must be a pure cache hit")
}

func TestResolveEveryCropNeverFails(t *testing.T) {
	primary := &fakeProvider{name: "a", err: errors.New("boom")}
	r := New(newTestCache(t), zap.NewNop(), primary)

	for _, crop := range domain.Crops {
		got := r.Resolve(context.Background(), string(crop))
		assert.Equal(t, "", got, "crop %s", crop)
	}
}

func TestResolveCachePrefilled(t *testing.T) {
	cache := newTestCache(t)
	require.NoError(t, cache.Put("Banana", "https://cached.example/banana.jpg"))

	primary := &fakeProvider{name: "a", url: "https://a.example/banana.jpg"}
	r := New(cache, zap.NewNop(), primary)

	got := r.Resolve(context.Background(), "Banana")

	assert.Equal(t, "https://cached.example/banana.jpg", got)
	assert.Zero(t, primary.calls)
}
