package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedNormalizer_MatchesUncached(t *testing.T) {
	base := MustNormalizer(Mask{Pattern: `^[a-z]{2}-[A-Z]{2}$`, Replacement: "#locale"})
	cached, err := NewCachedNormalizer(base, 16)
	require.NoError(t, err)
	defer cached.Close()

	paths := []string{"/users/1", "/users/2", "/de-DE/docs", "/users/1", "/health"}
	for _, p := range paths {
		want := base.Normalize(p)
		assert.Equal(t, want, cached.Normalize(p))
		cached.cache.Wait()
		assert.Equal(t, want, cached.Normalize(p))
	}
}

func TestCachedNormalizer_DefaultSize(t *testing.T) {
	cached, err := NewCachedNormalizer(MustNormalizer(), 0)
	require.NoError(t, err)
	defer cached.Close()

	assert.Equal(t, "/orders/#val", cached.Normalize("/orders/12"))
}
