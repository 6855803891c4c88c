package catalog

import "strings"

// MaxNameLength is the cap applied to sanitized directory/file names.
const MaxNameLength = 100

// invalidNameChars are replaced with '_' when sanitizing a name.
const invalidNameChars = `/\:*?"<>|`

// SanitizeName replaces invalid path characters with '_' and caps the
// result at MaxNameLength runes.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(invalidNameChars, r) || r < 0x20 {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	sanitized := b.String()
	if sanitized == "" {
		sanitized = "_"
	}

	runes := []rune(sanitized)
	if len(runes) > MaxNameLength {
		runes = runes[:MaxNameLength]
	}
	return string(runes)
}

func toLower(s string) string {
	return strings.ToLower(s)
}
