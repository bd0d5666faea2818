package route

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	decimalSegment = regexp.MustCompile(`^\d+$`)
	hexSegment     = regexp.MustCompile(`^[0-9a-fA-F]{16,}$`)
)

// Normalize returns the route label for rawPath. A query string, if present,
// is dropped. Empty segments are kept as-is so the separator structure of the
// input is preserved exactly.
func (n *Normalizer) Normalize(rawPath string) string {
	if i := strings.IndexByte(rawPath, '?'); i >= 0 {
		rawPath = rawPath[:i]
	}
	if rawPath == "" {
		return rawPath
	}

	segments := strings.Split(rawPath, Separator)
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		segments[i] = n.normalizeSegment(seg)
	}
	return strings.Join(segments, Separator)
}

// normalizeSegment runs the mask chain until the segment stops changing, so
// the result is a fixed point of the chain. Segments that never settle map to
// the fallback, which is itself a fixed point.
func (n *Normalizer) normalizeSegment(seg string) string {
	out, ok := n.fixpoint(seg)
	if !ok {
		return n.fallback
	}
	return out
}

func (n *Normalizer) fixpoint(seg string) (string, bool) {
	for pass := 0; pass < maxPasses; pass++ {
		next := n.applyOnce(seg)
		if next == seg {
			return seg, true
		}
		seg = next
	}
	return seg, false
}

func (n *Normalizer) applyOnce(seg string) string {
	if isDynamicSegment(seg) {
		seg = Placeholder
	}
	for _, m := range n.masks {
		seg = m.re.ReplaceAllString(seg, m.replacement)
	}
	return seg
}

func isDynamicSegment(seg string) bool {
	switch {
	case decimalSegment.MatchString(seg):
		return true
	case len(seg) == 36 && isUUID(seg):
		return true
	case hexSegment.MatchString(seg) && strings.ContainsAny(seg, "0123456789"):
		return true
	}
	return false
}

func isUUID(seg string) bool {
	_, err := uuid.Parse(seg)
	return err == nil
}
