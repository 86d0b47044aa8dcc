package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/IlyaBatulin/lesopilka/models"
)

var (
	plainNumber = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	nonNumeric  = regexp.MustCompile(`[^\d.,]`)
)

// thickness keys always sort numerically, after stripping units like "мм"
var thicknessKeys = map[string]bool{
	"thickness": true,
	"толщина":   true,
}

func isThicknessKey(key string) bool {
	return thicknessKeys[strings.ToLower(strings.TrimSpace(key))]
}

// ExtractFacets derives filter dimensions from the scoped product set. Every
// non-empty characteristic contributes its key and stringified value; keys
// are returned alphabetically.
func ExtractFacets(products []models.Product) []models.Facet {
	values := make(map[string][]string)
	seen := make(map[string]map[string]bool)

	for _, p := range products {
		for _, ch := range p.Characteristics {
			if ch.Value.IsEmpty() {
				continue
			}
			s := ch.Value.String()
			if seen[ch.Key] == nil {
				seen[ch.Key] = make(map[string]bool)
			}
			if seen[ch.Key][s] {
				continue
			}
			seen[ch.Key][s] = true
			values[ch.Key] = append(values[ch.Key], s)
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	facets := make([]models.Facet, 0, len(keys))
	for _, k := range keys {
		vals := values[k]
		SortFacetValues(k, vals)
		facets = append(facets, models.Facet{
			Key:    k,
			Label:  FormatKey(k),
			Values: vals,
		})
	}
	return facets
}

// SortFacetValues orders vals in place: thickness keys by their numeric part,
// all-numeric value sets numerically, anything else lexicographically.
func SortFacetValues(key string, vals []string) {
	if isThicknessKey(key) {
		sortByLeadingNumber(vals)
		return
	}
	if allPlainNumbers(vals) {
		sort.SliceStable(vals, func(i, j int) bool {
			a, _ := strconv.ParseFloat(vals[i], 64)
			b, _ := strconv.ParseFloat(vals[j], 64)
			if a != b {
				return a < b
			}
			return vals[i] < vals[j]
		})
		return
	}
	sort.Strings(vals)
}

func allPlainNumbers(vals []string) bool {
	for _, v := range vals {
		if !plainNumber.MatchString(v) {
			return false
		}
	}
	return len(vals) > 0
}

// sortByLeadingNumber handles "24 мм", "19,5мм" and the like. Values with no
// number at all go last.
func sortByLeadingNumber(vals []string) {
	type keyed struct {
		n  float64
		ok bool
	}
	keys := make(map[string]keyed, len(vals))
	for _, v := range vals {
		n, ok := parseThickness(v)
		keys[v] = keyed{n, ok}
	}
	sort.SliceStable(vals, func(i, j int) bool {
		a, b := keys[vals[i]], keys[vals[j]]
		switch {
		case a.ok && b.ok && a.n != b.n:
			return a.n < b.n
		case a.ok != b.ok:
			return a.ok
		default:
			return vals[i] < vals[j]
		}
	})
}

func parseThickness(v string) (float64, bool) {
	cleaned := strings.ReplaceAll(nonNumeric.ReplaceAllString(v, ""), ",", ".")
	return parseLeadingFloat(cleaned)
}

// parseLeadingFloat reads the longest decimal prefix of s ("1.5.2" → 1.5)
func parseLeadingFloat(s string) (float64, bool) {
	end, dot, digits := 0, false, false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			digits = true
		} else if c == '.' && !dot {
			dot = true
		} else {
			break
		}
		end++
	}
	if !digits {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var keyLabels = map[string]string{
	"pieces_per_cubic_meter": "Штук в м³",
	"pieces per cubic meter": "Штук в м³",
	"grade":                  "Сорт",
	"drying":                 "Сушка",
	"wood_type":              "Порода",
	"size":                   "Размер",
	"standard":               "Стандарт",
	"thickness":              "Толщина",
	"width":                  "Ширина",
	"length":                 "Длина",
	"moisture":               "Влажность",
	"surface_treatment":      "Обработка поверхности",
	"purpose":                "Назначение",
}

// FormatKey turns a characteristic key into a display label: known English
// keys are translated, others get underscores replaced and words capitalised.
func FormatKey(key string) string {
	lower := strings.ToLower(key)
	if label, ok := keyLabels[lower]; ok {
		return label
	}
	spaced := strings.ReplaceAll(key, "_", " ")
	if label, ok := keyLabels[strings.ToLower(spaced)]; ok {
		return label
	}

	words := strings.Split(spaced, " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
