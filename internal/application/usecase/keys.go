package usecase

import "strings"

// normalizeCode los códigos de producto se guardan en mayúsculas.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeKey(key string) string {
	return strings.TrimSpace(key)
}
