package booking

import (
	"math/rand/v2"
	"strings"

	"staybcn/internal/domain/catalog"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode produces a confirmation reference: the last four characters of the
// uppercased, alphanumeric-only unit id, a dash, and four random characters.
// There is no uniqueness guarantee; nothing persists codes to collide against.
func GenerateCode(id catalog.UnitID) string {
	var prefix strings.Builder
	for _, r := range strings.ToUpper(string(id)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			prefix.WriteRune(r)
		}
	}
	p := prefix.String()
	if len(p) > 4 {
		p = p[len(p)-4:]
	}

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return p + "-" + string(suffix)
}
