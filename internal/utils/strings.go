package utils

import (
	"strings"
	"unicode"
)

// SnakeToTitle turns an identifier such as "DUE_DATE" or "client-name" into
// "Due Date" / "Client Name".
func SnakeToTitle(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
