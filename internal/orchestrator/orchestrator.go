// Package orchestrator sequences calls to the demographics and performance
// tool servers under one delegation flow and aggregates the results into a
// ranked site-selection report.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/trialworks/sitescout/internal/dataset"
	"github.com/trialworks/sitescout/internal/flow"
	"github.com/trialworks/sitescout/internal/mcpclient"
)

const (
	// DefaultTimeout bounds one orchestrated run end to end.
	DefaultTimeout = 120 * time.Second

	// maxDetailLookups caps how many per-region and per-site detail calls
	// one run issues.
	maxDetailLookups = 5
)

// Config holds the orchestrator's endpoints and run timeout.
type Config struct {
	DemographicsURL string
	PerformanceURL  string
	Timeout         time.Duration
}

// ToolCaller is the slice of the invocation client the orchestrator needs.
type ToolCaller interface {
	CallToolInto(ctx context.Context, name string, args map[string]any, v any) error
	Close() error
}

// Orchestrator runs the site-selection workflow. The delegation flow is an
// explicit parameter of construction, threaded through every call site; no
// global flow state exists.
type Orchestrator struct {
	cfg      Config
	selector *flow.Selector
	ranker   Ranker
	logger   *slog.Logger

	// newClient is swapped in tests to avoid real connections.
	newClient func(ctx context.Context, serverURL, bearer string) (ToolCaller, error)
}

// New creates an orchestrator for the given flow selector and ranker.
func New(cfg Config, selector *flow.Selector, ranker Ranker, logger *slog.Logger) *Orchestrator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Orchestrator{
		cfg:      cfg,
		selector: selector,
		ranker:   ranker,
		logger:   logger,
		newClient: func(ctx context.Context, serverURL, bearer string) (ToolCaller, error) {
			return mcpclient.New(ctx, serverURL, bearer, logger)
		},
	}
}

// Run executes the workflow for one query: parse requirements, query
// patient demographics, query site performance, rank, report. The token for
// the active flow is selected once, before any network call; if it is
// unavailable the run fails immediately with an unauthenticated error.
func (o *Orchestrator) Run(ctx context.Context, query string) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	report := &Report{
		RunID:     uuid.NewString(),
		Flow:      o.selector.Flow().String(),
		Query:     query,
		StartedAt: time.Now().UTC(),
	}

	report.Requirements = ParseRequirements(query)
	report.step("parse_requirements", "", "", fmt.Sprintf("disease=%q regions=%d", report.Requirements.Disease, len(report.Requirements.Regions)))
	o.logger.Info("parsed requirements",
		"run_id", report.RunID,
		"flow", report.Flow,
		"disease", report.Requirements.Disease,
		"regions", report.Requirements.Regions,
	)

	bearer, err := o.selector.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("select token: %w", err)
	}

	if err := o.queryDemographics(ctx, bearer, report); err != nil {
		return nil, err
	}
	if err := o.queryPerformance(ctx, bearer, report); err != nil {
		return nil, err
	}

	report.Sites = o.ranker.Rank(report.Requirements, report.candidateSites, report.PatientPools, report.histories)
	report.step("analyze_and_rank", "", "", fmt.Sprintf("ranked %d sites", len(report.Sites)))

	report.GeneratedAt = time.Now().UTC()
	return report, nil
}

func (o *Orchestrator) queryDemographics(ctx context.Context, bearer string, report *Report) error {
	client, err := o.newClient(ctx, o.cfg.DemographicsURL, bearer)
	if err != nil {
		return fmt.Errorf("connect demographics server: %w", err)
	}
	defer client.Close()

	regions := report.Requirements.Regions
	if len(regions) == 0 {
		// No geographic preference means a broad US-wide search.
		regions = []string{"US"}
	}

	for _, region := range regions {
		args := map[string]any{
			"region":         region,
			"min_population": 0,
		}
		if report.Requirements.Disease != "" {
			args["disease"] = report.Requirements.Disease
		}

		var result dataset.PoolSearchResult
		if err := client.CallToolInto(ctx, "search_patient_pools", args, &result); err != nil {
			report.step("query_demographics", "search_patient_pools", region, "ERROR: "+err.Error())
			if !isToolError(err) {
				return err
			}
			continue
		}
		report.PatientPools = append(report.PatientPools, result.Pools...)
		report.step("query_demographics", "search_patient_pools", region, fmt.Sprintf("found %d pools", result.TotalCount))
	}

	for _, regionID := range uniqueRegionIDs(report.PatientPools, maxDetailLookups) {
		args := map[string]any{"region_id": regionID}
		if report.Requirements.Disease != "" {
			args["disease_filter"] = report.Requirements.Disease
		}

		var demo dataset.RegionDemographics
		if err := client.CallToolInto(ctx, "get_demographics_by_region", args, &demo); err != nil {
			report.step("query_demographics", "get_demographics_by_region", regionID, "ERROR: "+err.Error())
			if !isToolError(err) {
				return err
			}
			continue
		}
		report.Demographics = append(report.Demographics, demo)
		report.step("query_demographics", "get_demographics_by_region", regionID, "ok")
	}
	return nil
}

func (o *Orchestrator) queryPerformance(ctx context.Context, bearer string, report *Report) error {
	client, err := o.newClient(ctx, o.cfg.PerformanceURL, bearer)
	if err != nil {
		return fmt.Errorf("connect performance server: %w", err)
	}
	defer client.Close()

	regions := report.Requirements.Regions
	if len(regions) == 0 {
		regions = []string{"US"}
	}

	for _, region := range regions {
		args := map[string]any{
			"region":       region,
			"min_capacity": report.Requirements.MinSiteCapacity,
		}
		if report.Requirements.TherapeuticArea != "" {
			args["therapeutic_area"] = report.Requirements.TherapeuticArea
		}

		var result dataset.SiteSearchResult
		if err := client.CallToolInto(ctx, "search_sites", args, &result); err != nil {
			report.step("query_performance", "search_sites", region, "ERROR: "+err.Error())
			if !isToolError(err) {
				return err
			}
			continue
		}
		for _, site := range result.Sites {
			if !report.hasSite(site.SiteID) {
				report.candidateSites = append(report.candidateSites, site)
			}
		}
		report.step("query_performance", "search_sites", region, fmt.Sprintf("found %d sites", result.TotalCount))
	}

	if report.histories == nil {
		report.histories = map[string]dataset.EnrollmentHistory{}
	}
	limit := len(report.candidateSites)
	if limit > maxDetailLookups {
		limit = maxDetailLookups
	}
	for _, site := range report.candidateSites[:limit] {
		var caps dataset.Capabilities
		if err := client.CallToolInto(ctx, "get_site_capabilities", map[string]any{"site_id": site.SiteID}, &caps); err != nil {
			report.step("query_performance", "get_site_capabilities", site.SiteID, "ERROR: "+err.Error())
			if !isToolError(err) {
				return err
			}
		} else {
			report.Capabilities = append(report.Capabilities, caps)
			report.step("query_performance", "get_site_capabilities", site.SiteID, "ok")
		}

		var history dataset.EnrollmentHistory
		if err := client.CallToolInto(ctx, "get_enrollment_history", map[string]any{"site_id": site.SiteID}, &history); err != nil {
			report.step("query_performance", "get_enrollment_history", site.SiteID, "ERROR: "+err.Error())
			if !isToolError(err) {
				return err
			}
			continue
		}
		report.histories[site.SiteID] = history
		report.step("query_performance", "get_enrollment_history", site.SiteID, fmt.Sprintf("%d trials", len(history.Trials)))
	}
	return nil
}

// isToolError distinguishes in-envelope tool failures (recorded, run
// continues) from transport failures (run aborts).
func isToolError(err error) bool {
	var te *mcpclient.ToolError
	return errors.As(err, &te)
}

func uniqueRegionIDs(pools []dataset.PatientPool, limit int) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range pools {
		if p.RegionID == "" || seen[p.RegionID] {
			continue
		}
		seen[p.RegionID] = true
		out = append(out, p.RegionID)
		if len(out) == limit {
			break
		}
	}
	return out
}
