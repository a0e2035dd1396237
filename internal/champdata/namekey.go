// Package champdata provides the champion roster, counter sheet and icon
// lookups shared by every WR Counterpick front-end.
package champdata

import "strings"

// Normalize turns a display name into its NameKey: the lowercased text with
// everything outside [a-z0-9] removed. Non-ASCII letters are dropped, not
// folded, unless lowercasing itself maps them onto ASCII (the Kelvin sign).
func Normalize(text string) string {
	lower := strings.ToLower(text)
	buf := make([]byte, 0, len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			buf = append(buf, c)
		}
	}
	return string(buf)
}
