package orchestrator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trialworks/sitescout/internal/dataset"
)

// SiteScore is one ranked site recommendation.
type SiteScore struct {
	Rank         int          `json:"rank"`
	Site         dataset.Site `json:"site"`
	Score        float64      `json:"score"`
	Reasoning    string       `json:"reasoning"`
	KeyStrengths []string     `json:"key_strengths,omitempty"`
	Concerns     []string     `json:"concerns,omitempty"`
	// EligiblePatients is the estimated pool population in the site's
	// region for the trial's disease, when known.
	EligiblePatients int `json:"eligible_patients,omitempty"`
}

// Ranker orders candidate sites against the trial requirements. The
// production scoring behind this interface is inherently pluggable; the
// orchestrator only depends on this contract.
type Ranker interface {
	Rank(req Requirements, sites []dataset.Site, pools []dataset.PatientPool, histories map[string]dataset.EnrollmentHistory) []SiteScore
}

// WeightedRanker is the default deterministic ranking: patient-pool match,
// historical completion performance, and capacity, combined on a 0..1 scale.
type WeightedRanker struct {
	// PoolWeight, HistoryWeight, and CapacityWeight must sum to 1.
	PoolWeight     float64
	HistoryWeight  float64
	CapacityWeight float64
}

// NewWeightedRanker returns a ranker with the default 0.4/0.3/0.3 weights.
func NewWeightedRanker() *WeightedRanker {
	return &WeightedRanker{
		PoolWeight:     0.4,
		HistoryWeight:  0.3,
		CapacityWeight: 0.3,
	}
}

// Rank scores every site and returns them ordered best first. Ties break on
// site ID so the output is stable.
func (r *WeightedRanker) Rank(req Requirements, sites []dataset.Site, pools []dataset.PatientPool, histories map[string]dataset.EnrollmentHistory) []SiteScore {
	maxCapacity := 1
	maxPool := 1
	for _, s := range sites {
		if s.EnrollmentCapacity > maxCapacity {
			maxCapacity = s.EnrollmentCapacity
		}
	}
	poolByRegion := map[string]int{}
	for _, p := range pools {
		if req.Disease == "" || strings.Contains(strings.ToLower(p.Disease), strings.ToLower(req.Disease)) {
			poolByRegion[p.RegionID] += p.EstimatedPopulation
		}
	}
	for _, v := range poolByRegion {
		if v > maxPool {
			maxPool = v
		}
	}

	scored := make([]SiteScore, 0, len(sites))
	for _, site := range sites {
		eligible := poolByRegion[strings.ToUpper(site.Region)]
		poolScore := float64(eligible) / float64(maxPool)
		capacityScore := float64(site.EnrollmentCapacity) / float64(maxCapacity)
		historyScore := avgCompletionRate(histories[site.SiteID])

		score := r.PoolWeight*poolScore + r.HistoryWeight*historyScore + r.CapacityWeight*capacityScore

		ss := SiteScore{
			Site:             site,
			Score:            score,
			EligiblePatients: eligible,
		}
		ss.KeyStrengths, ss.Concerns = annotate(site, eligible, historyScore, req)
		ss.Reasoning = fmt.Sprintf("pool match %.2f, historical performance %.2f, capacity %.2f",
			poolScore, historyScore, capacityScore)
		scored = append(scored, ss)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Site.SiteID < scored[j].Site.SiteID
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

func avgCompletionRate(h dataset.EnrollmentHistory) float64 {
	if len(h.Trials) == 0 {
		return 0
	}
	var sum float64
	for _, t := range h.Trials {
		sum += t.CompletionRate
	}
	return sum / float64(len(h.Trials))
}

func annotate(site dataset.Site, eligible int, historyScore float64, req Requirements) (strengths, concerns []string) {
	if eligible > 0 {
		strengths = append(strengths, fmt.Sprintf("estimated %d eligible patients in region", eligible))
	} else if req.Disease != "" {
		concerns = append(concerns, "no known patient pool for the target disease in region")
	}
	if historyScore >= 0.85 {
		strengths = append(strengths, fmt.Sprintf("strong completion history (%.0f%%)", historyScore*100))
	} else if historyScore > 0 && historyScore < 0.8 {
		concerns = append(concerns, fmt.Sprintf("below-average completion history (%.0f%%)", historyScore*100))
	} else if historyScore == 0 {
		concerns = append(concerns, "no recent enrollment history")
	}
	if req.TherapeuticArea != "" {
		for _, spec := range site.Specialties {
			if strings.EqualFold(spec, req.TherapeuticArea) {
				strengths = append(strengths, spec+" specialty on site")
				break
			}
		}
	}
	if req.MinSiteCapacity > 0 && site.EnrollmentCapacity < req.MinSiteCapacity*2 {
		concerns = append(concerns, "limited headroom over required capacity")
	}
	return strengths, concerns
}
