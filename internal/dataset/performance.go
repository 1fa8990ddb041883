package dataset

import (
	"fmt"
	"strings"
	"time"
)

// Site is one clinical research site record.
type Site struct {
	SiteID             string   `json:"site_id"`
	SiteName           string   `json:"site_name"`
	Region             string   `json:"region"`
	State              string   `json:"state"`
	City               string   `json:"city"`
	Specialties        []string `json:"specialties"`
	EnrollmentCapacity int      `json:"enrollment_capacity"`
	ActiveTrials       int      `json:"active_trials"`
}

// Capabilities describes a site's equipment and certifications.
type Capabilities struct {
	SiteID         string   `json:"site_id"`
	SiteName       string   `json:"site_name"`
	Equipment      []string `json:"equipment"`
	Certifications []string `json:"certifications"`
	OnSiteLab      bool     `json:"on_site_lab"`
	OvernightBeds  int      `json:"overnight_beds"`
}

// TrialRecord is one completed trial in a site's enrollment history.
type TrialRecord struct {
	TrialID        string  `json:"trial_id"`
	Indication     string  `json:"indication"`
	Phase          string  `json:"phase"`
	Enrolled       int     `json:"enrolled"`
	Target         int     `json:"target_enrollment"`
	CompletionYear int     `json:"completion_year"`
	CompletionRate float64 `json:"completion_rate"`
}

// EnrollmentHistory is the get_enrollment_history tool payload.
type EnrollmentHistory struct {
	SiteID   string        `json:"site_id"`
	SiteName string        `json:"site_name"`
	Years    int           `json:"years"`
	Trials   []TrialRecord `json:"trials"`
}

// SiteQuery is the echoed query shape for site searches.
type SiteQuery struct {
	Region          string `json:"region"`
	TherapeuticArea string `json:"therapeutic_area,omitempty"`
	MinCapacity     int    `json:"min_capacity"`
}

// SiteSearchResult is the search_sites tool payload.
type SiteSearchResult struct {
	Sites      []Site    `json:"sites"`
	TotalCount int       `json:"total_count"`
	Query      SiteQuery `json:"query"`
}

// PerformanceStore serves the site-performance tool lookups over an injected
// dataset. All methods are pure reads.
type PerformanceStore struct {
	sites        []Site
	capabilities map[string]Capabilities
	history      map[string][]TrialRecord
	now          func() time.Time
}

// NewPerformanceStore creates a store seeded with the built-in dataset.
func NewPerformanceStore() *PerformanceStore {
	return NewPerformanceStoreWith(sites, siteCapabilities, enrollmentHistory)
}

// NewPerformanceStoreWith creates a store over explicit data.
func NewPerformanceStoreWith(s []Site, caps map[string]Capabilities, hist map[string][]TrialRecord) *PerformanceStore {
	return &PerformanceStore{
		sites:        s,
		capabilities: caps,
		history:      hist,
		now:          time.Now,
	}
}

// SearchSites filters sites by region, therapeutic area, and minimum
// enrollment capacity, ANDed. The region predicate accepts a normalized
// region-code prefix, a state name, or containment in either direction
// between the input and the state name.
func (s *PerformanceStore) SearchSites(q SiteQuery) SiteSearchResult {
	matched := make([]Site, 0, len(s.sites))
	for _, site := range s.sites {
		if !siteRegionMatches(site, q.Region) {
			continue
		}
		if q.TherapeuticArea != "" && !siteSpecialtyMatches(site, q.TherapeuticArea) {
			continue
		}
		if site.EnrollmentCapacity < q.MinCapacity {
			continue
		}
		matched = append(matched, site)
	}
	return SiteSearchResult{
		Sites:      matched,
		TotalCount: len(matched),
		Query:      q,
	}
}

// SiteCapabilities looks up one site's capabilities by exact identifier.
func (s *PerformanceStore) SiteCapabilities(siteID string) (Capabilities, error) {
	caps, ok := s.capabilities[siteID]
	if !ok {
		return Capabilities{}, fmt.Errorf("site %q: %w", siteID, ErrNotFound)
	}
	return caps, nil
}

// EnrollmentHistory returns the site's trials completed within the last
// `years` years. The site must exist; an empty trial list after the year
// filter is a valid result, never a not-found.
func (s *PerformanceStore) EnrollmentHistory(siteID string, years int) (EnrollmentHistory, error) {
	var site *Site
	for i := range s.sites {
		if s.sites[i].SiteID == siteID {
			site = &s.sites[i]
			break
		}
	}
	if site == nil {
		return EnrollmentHistory{}, fmt.Errorf("site %q: %w", siteID, ErrNotFound)
	}

	cutoff := s.now().UTC().Year() - years
	trials := make([]TrialRecord, 0)
	for _, t := range s.history[siteID] {
		if t.CompletionYear >= cutoff {
			trials = append(trials, t)
		}
	}
	return EnrollmentHistory{
		SiteID:   site.SiteID,
		SiteName: site.SiteName,
		Years:    years,
		Trials:   trials,
	}, nil
}

// Sites returns the full site list.
func (s *PerformanceStore) Sites() []Site {
	out := make([]Site, len(s.sites))
	copy(out, s.sites)
	return out
}

func siteRegionMatches(site Site, region string) bool {
	trimmed := strings.TrimSpace(region)
	if trimmed == "" {
		return true
	}
	norm := NormalizeRegion(region)
	code := strings.ToUpper(site.Region)
	if strings.HasPrefix(code, norm) || strings.HasPrefix(norm, code) {
		return true
	}
	if strings.EqualFold(site.State, trimmed) {
		return true
	}
	return containsFold(site.State, trimmed) || containsFold(trimmed, site.State)
}

func siteSpecialtyMatches(site Site, area string) bool {
	for _, spec := range site.Specialties {
		if containsFold(spec, area) || containsFold(area, spec) {
			return true
		}
	}
	return false
}
