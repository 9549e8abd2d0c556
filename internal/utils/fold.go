package utils

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold приводит строку к форме для сравнения без учета регистра
// (Unicode case folding, а не просто нижний регистр).
func Fold(raw string) string {
	return cases.Fold().String(raw)
}

// IsBlank сообщает, состоит ли строка только из пробельных символов.
func IsBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// ContainsFolded проверяет вхождение needle в haystack без учета регистра.
// needle ожидается уже свернутым через Fold.
func ContainsFolded(haystack, foldedNeedle string) bool {
	return strings.Contains(Fold(haystack), foldedNeedle)
}
