package dialog

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeSalary validates a salary expectation answer. Spaces and commas
// used as thousands separators are stripped and the remainder must parse as
// an integer; the returned value is the canonical digit string. The original
// range check (10000-500000) stays disabled, so any integer is accepted.
func NormalizeSalary(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return "", fmt.Errorf("salary %q is not a number", raw)
	}

	return strconv.Itoa(value), nil
}
