package orchestrator

import (
	"regexp"
	"strconv"
	"strings"
)

// Requirements is the structured form of a free-text site-selection query.
type Requirements struct {
	Disease          string   `json:"disease,omitempty"`
	Phase            string   `json:"phase,omitempty"`
	TherapeuticArea  string   `json:"therapeutic_area,omitempty"`
	Regions          []string `json:"geographic_preferences,omitempty"`
	TargetEnrollment int      `json:"target_enrollment,omitempty"`
	MinSiteCapacity  int      `json:"min_site_capacity,omitempty"`
}

// diseaseAreas maps recognized disease phrases to their therapeutic area.
// Longer phrases are listed before their substrings so "type 2 diabetes"
// wins over a bare "diabetes".
var diseaseAreas = []struct {
	disease string
	area    string
}{
	{"type 2 diabetes", "Endocrinology"},
	{"type 1 diabetes", "Endocrinology"},
	{"chronic kidney disease", "Nephrology"},
	{"rheumatoid arthritis", "Rheumatology"},
	{"psoriatic arthritis", "Rheumatology"},
	{"atrial fibrillation", "Cardiology"},
	{"heart failure", "Cardiology"},
	{"breast cancer", "Oncology"},
	{"hypertension", "Cardiology"},
	{"diabetes", "Endocrinology"},
	{"asthma", "Pulmonology"},
	{"copd", "Pulmonology"},
	{"cancer", "Oncology"},
}

// regionKeywords maps query phrases to the region argument sent to the tool
// servers. The servers do their own normalization; these are just the
// spellings people actually type.
var regionKeywords = []struct {
	keyword string
	region  string
}{
	{"northeast", "Northeast"},
	{"new england", "Northeast"},
	{"boston", "Northeast"},
	{"california", "California"},
	{"bay area", "California"},
	{"los angeles", "California"},
	{"texas", "Texas"},
	{"dallas", "Texas"},
	{"florida", "Florida"},
	{"miami", "Florida"},
	{"illinois", "Illinois"},
	{"chicago", "Illinois"},
	{"washington", "Washington"},
	{"seattle", "Washington"},
}

var (
	phasePattern      = regexp.MustCompile(`(?i)\bphase\s+(iii|ii|iv|i|[1-4])\b`)
	patientsPattern   = regexp.MustCompile(`(?i)\b(\d+)\s+patients\b`)
	capacityPattern   = regexp.MustCompile(`(?i)\b(?:capacity(?:\s+of)?|at least|minimum(?:\s+of)?)\s+(\d+)\b`)
	phaseRomanNumbers = map[string]string{"i": "I", "1": "I", "ii": "II", "2": "II", "iii": "III", "3": "III", "iv": "IV", "4": "IV"}
)

// ParseRequirements extracts structured trial requirements from a free-text
// query using keyword matching. It is deliberately deterministic; anything
// it cannot recognize is simply left unset.
func ParseRequirements(query string) Requirements {
	lower := strings.ToLower(query)
	var req Requirements

	for _, d := range diseaseAreas {
		if strings.Contains(lower, d.disease) {
			req.Disease = titleCase(d.disease)
			req.TherapeuticArea = d.area
			break
		}
	}

	seen := map[string]bool{}
	for _, rk := range regionKeywords {
		if strings.Contains(lower, rk.keyword) && !seen[rk.region] {
			req.Regions = append(req.Regions, rk.region)
			seen[rk.region] = true
		}
	}

	if m := phasePattern.FindStringSubmatch(lower); m != nil {
		req.Phase = "Phase " + phaseRomanNumbers[m[1]]
	}
	if m := patientsPattern.FindStringSubmatch(lower); m != nil {
		req.TargetEnrollment, _ = strconv.Atoi(m[1])
	}
	if m := capacityPattern.FindStringSubmatch(lower); m != nil {
		req.MinSiteCapacity, _ = strconv.Atoi(m[1])
	}

	return req
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		// Keep numerals as-is ("type 2 diabetes").
		if w[0] >= 'a' && w[0] <= 'z' {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
