package classify

import (
	"regexp"
	"strings"
)

// RoleKeywords declares one actor role and its per-language keyword lists.
// Vocabularies are ordered slices because detected roles are reported in
// vocabulary declaration order, not text order.
type RoleKeywords struct {
	Role     string
	Keywords map[string][]string
}

// AIActRoles is the actor vocabulary for AI-system regulations.
var AIActRoles = []RoleKeywords{
	{Role: "provider", Keywords: map[string][]string{
		"EN": {`provider`, `supplier`, `manufacturer`, `developer`, `downstream provider`},
		"FR": {`fournisseur`, `fabricant`, `prestataire`, `fournisseur en aval`},
		"DE": {`anbieter`, `hersteller`, `lieferant`, `nachgelagerter anbieter`},
	}},
	{Role: "deployer", Keywords: map[string][]string{
		"EN": {`deployer`, `operator`, `user in own authority`, `integrator`},
		"FR": {`déployeur`, `opérateur`, `utilisateur en propre`, `intégrateur`},
		"DE": {`betreiber`, `nutzer in eigener verantwortung`, `integrator`},
	}},
	{Role: "authorised_representative", Keywords: map[string][]string{
		"EN": {`authorised representative`},
		"FR": {`mandataire`},
		"DE": {`bevollmaechtigter`},
	}},
	{Role: "importer", Keywords: map[string][]string{
		"EN": {`importer`},
		"FR": {`importateur`},
		"DE": {`einfuehrer`},
	}},
	{Role: "distributor", Keywords: map[string][]string{
		"EN": {`distributor`, `reseller`},
		"FR": {`distributeur`},
		"DE": {`haendler`},
	}},
	{Role: "operator", Keywords: map[string][]string{
		"EN": {`operator`, `actor`, `provider`, `manufacturer`, `deployer`, `authorised representative`, `importer`, `distributor`},
		"FR": {`opérateur`, `acteur`, `fournisseur`, `fabricant`, `déployeur`, `mandataire`, `importateur`, `distributeur`},
		"DE": {`betreiber`, `akteur`, `anbieter`, `hersteller`, `bevollmaechtigter`, `einfuehrer`, `haendler`},
	}},
	{Role: "notified_body", Keywords: map[string][]string{
		"EN": {`notified body`, `conformity assessment body`},
		"FR": {`organisme notifié`, `organisme d'évaluation de la conformité`},
		"DE": {`notifizierte stelle`, `konformitaetsbewertungsstelle`},
	}},
	{Role: "regulator", Keywords: map[string][]string{
		"EN": {`AI Office`, `national competent authority`, `market surveillance authority`, `notifying authority`, `law enforcement authority`},
		"FR": {`Bureau de l'IA`, `autorite nationale competente`, `autorite de surveillance du marche`, `autorite notifiante`, `autorites repressives`},
		"DE": {`Buro fuer Kuenstliche Intelligenz`, `zustaendige nationale Behoerde`, `marktueberwachungsbehoerde`, `notifizierende Behoerde`, `Strafverfolgungsbehoerde`},
	}},
	{Role: "sponsor", Keywords: map[string][]string{
		"EN": {`sponsor`, `clinical sponsor`},
		"FR": {`sponsor`, `sponsor clinique`},
		"DE": {`sponsor`, `klinischer sponsor`},
	}},
}

// MedicalDeviceRoles is the actor vocabulary for medical-device regulations.
var MedicalDeviceRoles = []RoleKeywords{
	{Role: "manufacturer", Keywords: map[string][]string{
		"EN": {`manufacturer`, `legal manufacturer`},
		"FR": {`fabricant`},
		"DE": {`hersteller`},
	}},
	{Role: "authorised_representative", Keywords: map[string][]string{
		"EN": {`authorised representative`},
		"FR": {`mandataire`},
		"DE": {`bevollmaechtigter`},
	}},
	{Role: "importer", Keywords: map[string][]string{
		"EN": {`importer`},
		"FR": {`importateur`},
		"DE": {`einfuehrer`},
	}},
	{Role: "distributor", Keywords: map[string][]string{
		"EN": {`distributor`, `economic operator`},
		"FR": {`distributeur`, `operateur economique`},
		"DE": {`haendler`, `wirtschaftsakteur`},
	}},
	{Role: "notified_body", Keywords: map[string][]string{
		"EN": {`notified body`},
		"FR": {`organisme notifie`},
		"DE": {`benannte stelle`},
	}},
	{Role: "conformity_assessment_body", Keywords: map[string][]string{
		"EN": {`conformity assessment body`},
		"FR": {`organisme d'evaluation de la conformite`},
		"DE": {`konformitaetsbewertungsstelle`},
	}},
	{Role: "sponsor", Keywords: map[string][]string{
		"EN": {`sponsor`, `clinical sponsor`},
		"FR": {`sponsor`, `promoteur`},
		"DE": {`sponsor`},
	}},
	{Role: "investigator", Keywords: map[string][]string{
		"EN": {`investigator`},
		"FR": {`investigateur`},
		"DE": {`pruefer`},
	}},
	{Role: "ethics_committee", Keywords: map[string][]string{
		"EN": {`ethics committee`},
		"FR": {`comite d'ethique`},
		"DE": {`ethik-kommission`},
	}},
	{Role: "health_institution", Keywords: map[string][]string{
		"EN": {`health institution`, `hospital`},
		"FR": {`etablissement de sante`},
		"DE": {`gesundheitseinrichtung`},
	}},
	{Role: "user", Keywords: map[string][]string{
		"EN": {`user`, `professional user`, `healthcare professional`},
		"FR": {`utilisateur`, `professionnel de sante`},
		"DE": {`anwender`, `gesundheitsfachkraft`},
	}},
	{Role: "lay_person", Keywords: map[string][]string{
		"EN": {`lay person`, `lay user`},
		"FR": {`profane`},
		"DE": {`laie`},
	}},
	{Role: "market_surveillance_authority", Keywords: map[string][]string{
		"EN": {`market surveillance authority`},
		"FR": {`autorite de surveillance du marche`},
		"DE": {`marktueberwachungsbehoerde`},
	}},
	{Role: "competent_authority", Keywords: map[string][]string{
		"EN": {`competent authority`},
		"FR": {`autorite competente`},
		"DE": {`zustaendige behoerde`},
	}},
}

type compiledRole struct {
	role     string
	patterns map[string][]*regexp.Regexp
}

// RoleDetector detects actor roles in provision text using one vocabulary.
// A detector is selected once per document from the regulation's declared
// family and passed explicitly to the graph builder; there is no global
// detector registry.
type RoleDetector struct {
	entries []compiledRole
}

// NewRoleDetector compiles a role vocabulary into a detector. Keywords are
// matched case-insensitively on word boundaries, tolerating a trailing
// possessive or word-continuation suffix ("providers", "provider's").
func NewRoleDetector(vocab []RoleKeywords) *RoleDetector {
	d := &RoleDetector{}
	for _, rk := range vocab {
		entry := compiledRole{role: rk.Role, patterns: make(map[string][]*regexp.Regexp)}
		for lang, keywords := range rk.Keywords {
			for _, kw := range keywords {
				re := regexp.MustCompile(`(?i)\b` + kw + `(?:['’]s|\w+)?\b`)
				entry.patterns[lang] = append(entry.patterns[lang], re)
			}
		}
		d.entries = append(d.entries, entry)
	}
	return d
}

// NoRoles returns a detector that never matches. It is the non-fatal
// substitute when a regulation family has no role vocabulary.
func NoRoles() *RoleDetector {
	return &RoleDetector{}
}

// Detect returns the roles whose keywords occur in the text, in vocabulary
// declaration order. Multiple roles may match the same text.
func (d *RoleDetector) Detect(text, lang string) []string {
	lang = strings.ToUpper(lang)
	if lang == "" {
		lang = "EN"
	}
	var detected []string
	for _, entry := range d.entries {
		patterns := entry.patterns[lang]
		if patterns == nil {
			patterns = entry.patterns["EN"]
		}
		for _, re := range patterns {
			if re.MatchString(text) {
				detected = append(detected, entry.role)
				break
			}
		}
	}
	return detected
}

// SemanticRole returns the first detected role, or "" when none match.
func (d *RoleDetector) SemanticRole(text, lang string) string {
	roles := d.Detect(text, lang)
	if len(roles) == 0 {
		return ""
	}
	return roles[0]
}
