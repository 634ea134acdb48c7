package normalization

import (
  "strings"
)

// ParseInputString lowercases and trims credential-style inputs (emails,
// role names). Asset text fields keep their casing, use TrimInputString.
func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

func TrimInputString(input string) string {
  return strings.TrimSpace(input)
}
