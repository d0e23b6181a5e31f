package shopping

import (
	"strings"
	"unicode/utf8"
)

// NormalizeName builds the merge key for a display name: lowercase, single spaces,
// and one trailing "s" dropped from keys longer than three characters. The plural
// rule is deliberately naive ("tomatoes" stays "tomatoe").
func NormalizeName(name string) string {
	key := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	if strings.HasSuffix(key, "s") && utf8.RuneCountInString(key) > 3 {
		key = strings.TrimSuffix(key, "s")
	}
	return key
}
