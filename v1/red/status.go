package red

import "strconv"

// statusLabel renders code exactly, or as its class ("2xx") when classes
// are enabled.
func statusLabel(code int, classes bool) string {
	if !classes {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(code/100) + "xx"
}
