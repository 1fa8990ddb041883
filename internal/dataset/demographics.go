package dataset

import (
	"fmt"
	"strings"
)

// Region is one metropolitan region record in the demographics dataset.
type Region struct {
	RegionID   string  `json:"region_id"`
	RegionName string  `json:"region_name"`
	Population int     `json:"population"`
	MedianAge  float64 `json:"median_age"`
	UrbanPct   float64 `json:"urban_pct"`
}

// PatientPool is an estimated patient population for one disease in one region.
type PatientPool struct {
	PoolID              string `json:"pool_id"`
	RegionID            string `json:"region_id"`
	RegionName          string `json:"region_name"`
	Disease             string `json:"disease"`
	EstimatedPopulation int    `json:"estimated_population"`
	AgeRange            string `json:"age_range"`
	DataSource          string `json:"data_source"`
}

// PoolQuery is the echoed query shape for patient-pool searches.
type PoolQuery struct {
	Disease       string `json:"disease,omitempty"`
	Region        string `json:"region"`
	MinPopulation int    `json:"min_population"`
}

// PoolSearchResult is the search_patient_pools tool payload.
type PoolSearchResult struct {
	Pools      []PatientPool `json:"pools"`
	TotalCount int           `json:"total_count"`
	Query      PoolQuery     `json:"query"`
}

// RegionDemographics is the get_demographics_by_region tool payload. When a
// disease filter was supplied, MatchingPools carries the region's pools for
// that disease.
type RegionDemographics struct {
	Region
	MatchingPools []PatientPool `json:"matching_pools,omitempty"`
}

// DemographicsStore serves the demographics tool lookups over an injected
// dataset. All methods are pure reads.
type DemographicsStore struct {
	regions []Region
	pools   []PatientPool
}

// NewDemographicsStore creates a store seeded with the built-in dataset.
func NewDemographicsStore() *DemographicsStore {
	return NewDemographicsStoreWith(demographicsRegions, patientPools)
}

// NewDemographicsStoreWith creates a store over explicit data, used by tests
// and by callers that load their own datasets.
func NewDemographicsStoreWith(regions []Region, pools []PatientPool) *DemographicsStore {
	return &DemographicsStore{regions: regions, pools: pools}
}

// SearchPatientPools filters pools by disease, region, and minimum estimated
// population. All three predicates are ANDed; an empty disease matches every
// pool. The region predicate matches either the normalized region-code
// prefix or a case-insensitive substring of the pool's human region name.
func (s *DemographicsStore) SearchPatientPools(q PoolQuery) PoolSearchResult {
	matched := make([]PatientPool, 0, len(s.pools))
	for _, p := range s.pools {
		if q.Disease != "" && !containsFold(p.Disease, q.Disease) {
			continue
		}
		if !poolRegionMatches(p, q.Region) {
			continue
		}
		if p.EstimatedPopulation < q.MinPopulation {
			continue
		}
		matched = append(matched, p)
	}
	return PoolSearchResult{
		Pools:      matched,
		TotalCount: len(matched),
		Query:      q,
	}
}

// DemographicsByRegion looks up one region by exact identifier. When
// diseaseFilter is non-empty, the region's pools whose disease name contains
// the filter are attached.
func (s *DemographicsStore) DemographicsByRegion(regionID, diseaseFilter string) (RegionDemographics, error) {
	for _, r := range s.regions {
		if r.RegionID != regionID {
			continue
		}
		out := RegionDemographics{Region: r}
		if diseaseFilter != "" {
			for _, p := range s.pools {
				if p.RegionID == regionID && containsFold(p.Disease, diseaseFilter) {
					out.MatchingPools = append(out.MatchingPools, p)
				}
			}
		}
		return out, nil
	}
	return RegionDemographics{}, fmt.Errorf("region %q: %w", regionID, ErrNotFound)
}

// Regions returns the full region list. Used by read-only callers such as
// tool descriptions and tests.
func (s *DemographicsStore) Regions() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

func poolRegionMatches(p PatientPool, region string) bool {
	if strings.TrimSpace(region) == "" {
		return true
	}
	norm := NormalizeRegion(region)
	if strings.HasPrefix(strings.ToUpper(p.RegionID), norm) {
		return true
	}
	return containsFold(p.RegionName, strings.TrimSpace(region))
}
