package service

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// variantSpellings maps known label variants onto the canonical spelling
// carried by the Trelix catalog. Every value must itself be a normalization
// fixed point, otherwise normalizeResourceType loses idempotence.
var variantSpellings = map[string]string{
	"interactive exercise":  "interactive exercice",
	"interactive-exercice":  "interactive exercice",
	"exercice interactif":   "interactive exercice",
	"interactive excercice": "interactive exercice",
}

// normalizeResourceType canonicalizes a resource-type label: collapse runs of
// whitespace, trim, lowercase, then correct known variant spellings. It is
// total and idempotent.
func normalizeResourceType(label string) string {
	label = whitespaceRegex.ReplaceAllString(label, " ")
	label = strings.ToLower(strings.TrimSpace(label))
	if canonical, ok := variantSpellings[label]; ok {
		return canonical
	}
	return label
}
