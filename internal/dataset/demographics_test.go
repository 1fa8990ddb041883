package dataset

import (
	"errors"
	"strings"
	"testing"
)

func TestSearchPatientPoolsByDiseaseAndRegion(t *testing.T) {
	store := NewDemographicsStore()

	res := store.SearchPatientPools(PoolQuery{Disease: "Type 2 Diabetes", Region: "Northeast"})
	if res.TotalCount != 1 {
		t.Fatalf("TotalCount = %d, want 1", res.TotalCount)
	}
	if res.Pools[0].PoolID != "POOL-001" {
		t.Errorf("PoolID = %q, want POOL-001", res.Pools[0].PoolID)
	}
	for _, p := range res.Pools {
		if !strings.HasPrefix(p.RegionID, "US-NE") {
			t.Errorf("pool %s region %q escapes the Northeast filter", p.PoolID, p.RegionID)
		}
	}
}

func TestSearchPatientPoolsCaseInsensitiveDisease(t *testing.T) {
	store := NewDemographicsStore()

	lower := store.SearchPatientPools(PoolQuery{Disease: "diabetes", Region: ""})
	upper := store.SearchPatientPools(PoolQuery{Disease: "DIABETES", Region: ""})
	if lower.TotalCount == 0 {
		t.Fatal("expected diabetes pools in the dataset")
	}
	if lower.TotalCount != upper.TotalCount {
		t.Errorf("case changed result count: %d vs %d", lower.TotalCount, upper.TotalCount)
	}
}

func TestSearchPatientPoolsMinPopulation(t *testing.T) {
	store := NewDemographicsStore()

	res := store.SearchPatientPools(PoolQuery{Region: "", MinPopulation: 1000000})
	if res.TotalCount == 0 {
		t.Fatal("expected pools above one million")
	}
	for _, p := range res.Pools {
		if p.EstimatedPopulation < 1000000 {
			t.Errorf("pool %s population %d below threshold", p.PoolID, p.EstimatedPopulation)
		}
	}
}

func TestSearchPatientPoolsEmptyRegionMatchesAll(t *testing.T) {
	store := NewDemographicsStore()

	all := store.SearchPatientPools(PoolQuery{Region: ""})
	if all.TotalCount != 13 {
		t.Errorf("TotalCount = %d, want the full dataset of 13", all.TotalCount)
	}
}

func TestSearchPatientPoolsEchoesQuery(t *testing.T) {
	store := NewDemographicsStore()

	q := PoolQuery{Disease: "Asthma", Region: "California", MinPopulation: 100}
	res := store.SearchPatientPools(q)
	if res.Query != q {
		t.Errorf("Query = %+v, want %+v", res.Query, q)
	}
}

func TestSearchPatientPoolsRegionNameSubstring(t *testing.T) {
	store := NewDemographicsStore()

	res := store.SearchPatientPools(PoolQuery{Region: "Boston"})
	if res.TotalCount != 2 {
		t.Fatalf("TotalCount = %d, want 2", res.TotalCount)
	}
	for _, p := range res.Pools {
		if p.RegionID != "US-NE-001" {
			t.Errorf("pool %s region %q, want US-NE-001", p.PoolID, p.RegionID)
		}
	}
}

func TestDemographicsByRegion(t *testing.T) {
	store := NewDemographicsStore()

	demo, err := store.DemographicsByRegion("US-NE-001", "")
	if err != nil {
		t.Fatalf("DemographicsByRegion returned error: %v", err)
	}
	if demo.RegionName != "Boston Metropolitan Area" {
		t.Errorf("RegionName = %q", demo.RegionName)
	}
	if demo.MatchingPools != nil {
		t.Errorf("MatchingPools = %v, want nil without a disease filter", demo.MatchingPools)
	}
}

func TestDemographicsByRegionDiseaseFilter(t *testing.T) {
	store := NewDemographicsStore()

	demo, err := store.DemographicsByRegion("US-NE-001", "hypertension")
	if err != nil {
		t.Fatalf("DemographicsByRegion returned error: %v", err)
	}
	if len(demo.MatchingPools) != 1 {
		t.Fatalf("MatchingPools = %d, want 1", len(demo.MatchingPools))
	}
	if demo.MatchingPools[0].PoolID != "POOL-002" {
		t.Errorf("PoolID = %q, want POOL-002", demo.MatchingPools[0].PoolID)
	}
}

func TestDemographicsByRegionNotFound(t *testing.T) {
	store := NewDemographicsStore()

	_, err := store.DemographicsByRegion("US-XX-999", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	// Lookup is exact: the human name is not an identifier.
	_, err = store.DemographicsByRegion("Boston Metropolitan Area", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound for region name lookup", err)
	}
}
