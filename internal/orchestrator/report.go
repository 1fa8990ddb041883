package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"github.com/trialworks/sitescout/internal/dataset"
)

// Step is one entry in the run's audit trail.
type Step struct {
	Timestamp time.Time `json:"timestamp"`
	Node      string    `json:"node"`
	Tool      string    `json:"tool,omitempty"`
	Target    string    `json:"target,omitempty"`
	Summary   string    `json:"summary"`
}

// Report is the aggregated outcome of one orchestrated run.
type Report struct {
	RunID        string                       `json:"run_id"`
	Flow         string                       `json:"flow"`
	Query        string                       `json:"query"`
	Requirements Requirements                 `json:"requirements"`
	Sites        []SiteScore                  `json:"recommended_sites"`
	PatientPools []dataset.PatientPool        `json:"patient_pools"`
	Demographics []dataset.RegionDemographics `json:"demographics,omitempty"`
	Capabilities []dataset.Capabilities       `json:"capabilities,omitempty"`
	Steps        []Step                       `json:"audit_trail"`
	StartedAt    time.Time                    `json:"started_at"`
	GeneratedAt  time.Time                    `json:"generated_at"`

	candidateSites []dataset.Site
	histories      map[string]dataset.EnrollmentHistory
}

func (r *Report) step(node, tool, target, summary string) {
	r.Steps = append(r.Steps, Step{
		Timestamp: time.Now().UTC(),
		Node:      node,
		Tool:      tool,
		Target:    target,
		Summary:   summary,
	})
}

func (r *Report) hasSite(siteID string) bool {
	for _, s := range r.candidateSites {
		if s.SiteID == siteID {
			return true
		}
	}
	return false
}

// Render formats the report as a plain-text summary.
func (r *Report) Render() string {
	var b strings.Builder
	rule := strings.Repeat("=", 72)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "CLINICAL TRIAL SITE SELECTION REPORT")
	fmt.Fprintf(&b, "Run %s  (flow: %s)\n", r.RunID, r.Flow)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Query: %s\n\n", r.Query)

	fmt.Fprintln(&b, "TRIAL REQUIREMENTS:")
	fmt.Fprintf(&b, "  Disease: %s\n", orNA(r.Requirements.Disease))
	fmt.Fprintf(&b, "  Phase: %s\n", orNA(r.Requirements.Phase))
	fmt.Fprintf(&b, "  Therapeutic Area: %s\n", orNA(r.Requirements.TherapeuticArea))
	fmt.Fprintf(&b, "  Geographic Preferences: %s\n", orNA(strings.Join(r.Requirements.Regions, ", ")))
	if r.Requirements.TargetEnrollment > 0 {
		fmt.Fprintf(&b, "  Target Enrollment: %d\n", r.Requirements.TargetEnrollment)
	}
	fmt.Fprintln(&b)

	if len(r.Sites) > 0 {
		fmt.Fprintln(&b, "RECOMMENDED SITES:")
		for _, s := range r.Sites {
			fmt.Fprintf(&b, "  #%d  %s (%s)  score %.2f\n", s.Rank, s.Site.SiteName, s.Site.SiteID, s.Score)
			fmt.Fprintf(&b, "      %s\n", s.Reasoning)
			for _, str := range s.KeyStrengths {
				fmt.Fprintf(&b, "      + %s\n", str)
			}
			for _, c := range s.Concerns {
				fmt.Fprintf(&b, "      - %s\n", c)
			}
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "DATA SOURCES: %d patient pools, %d candidate sites\n\n", len(r.PatientPools), len(r.candidateSites))

	fmt.Fprintf(&b, "AUDIT TRAIL (%d steps):\n", len(r.Steps))
	for _, s := range r.Steps {
		target := s.Target
		if target != "" {
			target = " " + target
		}
		fmt.Fprintf(&b, "  [%s] %s %s%s: %s\n", s.Timestamp.Format(time.RFC3339), s.Node, s.Tool, target, s.Summary)
	}

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Generated at %s\n", r.GeneratedAt.Format(time.RFC3339))
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
