package order

import "strings"

// Compare orders two filenames the way a human reads them: contiguous digit
// runs compare as numbers rather than character by character, so "track2"
// sorts before "track10". Letters compare case-insensitively. Returns -1, 0
// or 1.
func Compare(a, b string) int {
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			da, restA := digitRun(a)
			db, restB := digitRun(b)
			if c := compareDigitRuns(da, db); c != 0 {
				return c
			}
			a, b = restA, restB
			continue
		}

		ca, cb := lower(a[0]), lower(b[0])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		a, b = a[1:], b[1:]
	}

	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// digitRun splits s into its leading digit run and the remainder.
func digitRun(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// compareDigitRuns compares two digit runs numerically without converting,
// so arbitrarily long runs cannot overflow. Leading zeros are ignored:
// "007" and "7" compare equal.
func compareDigitRuns(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
