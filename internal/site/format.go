package site

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FormatDate renders t as dd/mm/yyyy in UTC, or NoDateText for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return NoDateText
	}
	return t.UTC().Format("02/01/2006")
}

// Icons of the donation types on the map.
const (
	IconBlood  = "ilustraciones_logos/sang.svg"
	IconMarrow = "ilustraciones_logos/medula.svg"
	IconOrgan  = "ilustraciones_logos/organ.svg"
	IconMilk   = "ilustraciones_logos/llet.svg"
	IconCord   = "ilustraciones_logos/cordon.svg"
)

var iconRules = []struct {
	word string
	icon string
}{
	{"medula", IconMarrow},
	{"organo", IconOrgan},
	{"leche", IconMilk},
	{"cordon", IconCord},
}

// IconFor picks the icon for a donation type from its name, ignoring case and accents.
// Names matching no rule get the blood icon.
func IconFor(typeName string) string {
	folded := fold(typeName)
	for _, r := range iconRules {
		if strings.Contains(folded, r.word) {
			return r.icon
		}
	}
	return IconBlood
}

// fold lowercases s and strips combining marks, so "Médula" becomes "medula".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
