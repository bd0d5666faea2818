package route

const (
	// Placeholder replaces segments matched by a built-in mask.
	Placeholder = "#val"

	// Separator splits a path into segments.
	Separator = "/"

	// maxPasses bounds the per-segment fixpoint iteration.
	maxPasses = 8
)

// Mask rewrites path segments matching Pattern with Replacement.
//
// Pattern is a Go regular expression matched against a single segment (it
// never sees "/"). Replacement follows regexp.ReplaceAllString semantics, so
// "$1" style group references are allowed. A Replacement containing "/" is
// rejected because it would change the number of segments.
type Mask struct {
	Pattern     string `yaml:"pattern" json:"pattern"`
	Replacement string `yaml:"replacement" json:"replacement"`
}
