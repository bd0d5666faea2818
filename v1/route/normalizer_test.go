package route

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_BuiltinMasks(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"root", "/", "/"},
		{"empty", "", ""},
		{"static", "/health", "/health"},
		{"integer", "/users/42", "/users/#val"},
		{"two integers", "/users/42/orders/7", "/users/#val/orders/#val"},
		{"uuid", "/docs/3f2504e0-4f89-11d3-9a0c-0305e82c3301/raw", "/docs/#val/raw"},
		{"long hex", "/objects/507f1f77bcf86cd799439011", "/objects/#val"},
		{"hex word without digits", "/deadbeefdeadbeefcafe", "/deadbeefdeadbeefcafe"},
		{"short hex", "/v/abc123", "/v/abc123"},
		{"query dropped", "/users/42?expand=true", "/users/#val"},
		{"trailing slash", "/users/42/", "/users/#val/"},
		{"mixed segment untouched", "/v2/users", "/v2/users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.path))
		})
	}
}

func TestNormalize_ExtraMasksChain(t *testing.T) {
	n, err := NewNormalizer([]Mask{
		{Pattern: `^[a-z]{2}-[A-Z]{2}$`, Replacement: "#locale"},
		{Pattern: `^#locale$`, Replacement: "#lang"},
	})
	require.NoError(t, err)

	// The second mask rewrites the output of the first.
	assert.Equal(t, "/#lang/users/#val", n.Normalize("/en-US/users/42"))
}

func TestNormalize_MaskOrderMatters(t *testing.T) {
	redFirst, err := NewNormalizer([]Mask{
		{Pattern: `^\w+-red$`, Replacement: "#red"},
		{Pattern: `^item-.*$`, Replacement: "#item"},
	})
	require.NoError(t, err)

	itemFirst, err := NewNormalizer([]Mask{
		{Pattern: `^item-.*$`, Replacement: "#item"},
		{Pattern: `^\w+-red$`, Replacement: "#red"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/shop/#red", redFirst.Normalize("/shop/item-red"))
	assert.Equal(t, "/shop/#item", itemFirst.Normalize("/shop/item-red"))
}

func TestNormalize_GroupReferences(t *testing.T) {
	n, err := NewNormalizer([]Mask{
		{Pattern: `^item-(.*)$`, Replacement: "sku-$1"},
		{Pattern: `^sku-red$`, Replacement: "#red"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/#red", n.Normalize("/item-red"))
	assert.Equal(t, "/sku-green", n.Normalize("/item-green"))
}

func TestNormalize_Idempotent(t *testing.T) {
	n, err := NewNormalizer([]Mask{
		{Pattern: `^user-(\d+)$`, Replacement: "$1"},
		{Pattern: `^[a-z]{2}-[A-Z]{2}$`, Replacement: "#locale"},
		{Pattern: `^tmp.*`, Replacement: "#tmp"},
	})
	require.NoError(t, err)

	paths := []string{
		"",
		"/",
		"//",
		"/users/42",
		"/user-17/profile",
		"/en-US/docs/3f2504e0-4f89-11d3-9a0c-0305e82c3301",
		"/tmp123/file",
		"/a/b/c/d/e",
		"/objects/507f1f77bcf86cd799439011/versions/3",
		"/metrics",
		"relative/9",
	}

	for _, p := range paths {
		once := n.Normalize(p)
		assert.Equal(t, once, n.Normalize(once), "path %q", p)
	}
}

func TestNormalize_GroupReferenceThatNeverSettles(t *testing.T) {
	n, err := NewNormalizer([]Mask{{Pattern: `^(x+)$`, Replacement: "${1}x"}})
	require.NoError(t, err)

	once := n.Normalize("/xxxxxxxx/orders/x")
	assert.Equal(t, "/#val/orders/#val", once)
	assert.Equal(t, once, n.Normalize(once))
}

func TestNewNormalizer_PlaceholderMustSettle(t *testing.T) {
	_, err := NewNormalizer([]Mask{{Pattern: `^#(.*)$`, Replacement: "#${1}#"}})
	assert.ErrorIs(t, err, ErrMaskNotIdempotent)
}

func TestNormalize_SameShapeCollapses(t *testing.T) {
	a := Normalize("/users/1/orders/3f2504e0-4f89-11d3-9a0c-0305e82c3301")
	b := Normalize("/users/9999/orders/6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.Equal(t, a, b)
}

func TestNormalize_SegmentCountPreserved(t *testing.T) {
	n, err := NewNormalizer([]Mask{{Pattern: `^.*$`, Replacement: "x"}})
	require.NoError(t, err)

	paths := []string{"/a", "/a/b", "/a/b/c", "/1/2/3/4"}
	seen := map[string]string{}
	for _, p := range paths {
		got := n.Normalize(p)
		assert.Equal(t, strings.Count(p, Separator), strings.Count(got, Separator))
		if other, ok := seen[got]; ok {
			t.Fatalf("%q and %q collapsed into %q", p, other, got)
		}
		seen[got] = p
	}
}

func TestNewNormalizer_InvalidMasks(t *testing.T) {
	tests := []struct {
		name string
		mask Mask
		want error
	}{
		{"bad regexp", Mask{Pattern: `(`, Replacement: "x"}, ErrInvalidMask},
		{"empty pattern", Mask{Pattern: "", Replacement: "x"}, ErrInvalidMask},
		{"separator in replacement", Mask{Pattern: `^a$`, Replacement: "b/c"}, ErrInvalidMask},
		{"growing replacement", Mask{Pattern: `a`, Replacement: "aa"}, ErrMaskNotIdempotent},
		{"self-prefixing replacement", Mask{Pattern: `id`, Replacement: "#id"}, ErrMaskNotIdempotent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNormalizer([]Mask{tt.mask})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsInvalidMaskError(err))
		})
	}
}

func TestMustNormalizer_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNormalizer(Mask{Pattern: "["}) })
	assert.NotPanics(t, func() { MustNormalizer() })
}
