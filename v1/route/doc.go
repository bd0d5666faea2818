// Package route turns raw request paths into bounded-cardinality route labels.
//
// Every path is split on "/" and each segment is rewritten independently:
// first by the built-in structural masks (decimal integers, UUIDs and long
// hexadecimal identifiers become "#val"), then by the configured extra masks
// in the order they were supplied. Segments are never merged or split, so
// routes of different shapes never collapse into the same label.
//
//	n, err := route.NewNormalizer([]route.Mask{
//		{Pattern: `^[a-z]{2}-[A-Z]{2}$`, Replacement: "#locale"},
//	})
//	if err != nil {
//		return err // malformed masks fail here, never per request
//	}
//	n.Normalize("/en-US/users/42/orders") // "/#locale/users/#val/orders"
//
// Normalization is deterministic and idempotent: normalizing an already
// normalized path returns it unchanged.
package route
