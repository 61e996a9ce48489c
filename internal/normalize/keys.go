package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/claude/ironpulse/internal/ident"
)

var (
	nonKeyRun   = regexp.MustCompile(`[^a-z0-9]+`)
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]`)
	edgeHyphens = regexp.MustCompile(`^-+|-+$`)
)

// fold lower-cases s and strips combining marks after canonical decomposition.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// ExerciseKey derives the stable join key for an exercise name:
// "Développé Incliné" becomes "developpe-incline". Names with no usable
// characters get a random "exercise-" key.
func ExerciseKey(name string) string {
	key := edgeHyphens.ReplaceAllString(nonKeyRun.ReplaceAllString(fold(name), "-"), "")
	if key == "" {
		return "exercise-" + ident.Short(6)
	}
	return key
}

// Header folds a column title for synonym matching: "Échauffement" becomes "echauffement".
func Header(s string) string {
	return nonAlnum.ReplaceAllString(fold(s), "")
}

// ParseNumber parses a user-typed number, accepting a comma decimal separator.
// Blank text parses as zero. ok is false when the value is not a finite number.
func ParseNumber(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(strings.Replace(x, ",", ".", 1))
		if s == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToNumber parses v for aggregation; anything unparsable counts as zero.
func ToNumber(v any) float64 {
	f, _ := ParseNumber(v)
	return f
}

// ClampPositiveInt rounds v and returns it when positive, otherwise fallback.
func ClampPositiveInt(v any, fallback int) int {
	f, ok := ParseNumber(v)
	if !ok {
		return fallback
	}
	n := math.Floor(f + 0.5)
	if n <= 0 || n > math.MaxInt32 {
		return fallback
	}
	return int(n)
}
