package validate

import (
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
)

// NormalizePAN strips spaces and dashes a user may type between digit groups.
func NormalizePAN(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

func IsLuhn(number string) bool {
	number = NormalizePAN(number)
	if len(number) < 12 || len(number) > 19 {
		return false
	}
	return goluhn.Validate(number) == nil
}
