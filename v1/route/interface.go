package route

// PathNormalizer maps a raw request path to its route label.
// Implemented by *Normalizer and *CachedNormalizer.
type PathNormalizer interface {
	Normalize(rawPath string) string
}
