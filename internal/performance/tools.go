// Package performance implements the site-performance tool server: site
// search, capability lookups, and enrollment history over the static site
// dataset.
package performance

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/trialworks/sitescout/internal/audit"
	"github.com/trialworks/sitescout/internal/dataset"
	"github.com/trialworks/sitescout/internal/toolserver"
)

const (
	// ServerName identifies this server in /health and the MCP handshake.
	ServerName = "site-performance"
	// Scope is the token scope required to call this server's tools.
	Scope = "read:performance"

	// defaultHistoryYears bounds get_enrollment_history when the caller
	// does not pass a years argument.
	defaultHistoryYears = 3

	toolSearchSites       = "search_sites"
	toolSiteCapabilities  = "get_site_capabilities"
	toolEnrollmentHistory = "get_enrollment_history"
)

// Handlers implements the site-performance tools over an injected store.
type Handlers struct {
	store *dataset.PerformanceStore
	audit *audit.Logger
}

// NewHandlers creates the site-performance tool handlers.
func NewHandlers(store *dataset.PerformanceStore, auditLog *audit.Logger) *Handlers {
	return &Handlers{
		store: store,
		audit: auditLog,
	}
}

// Tools declares the server's tools with their input schemas.
func (h *Handlers) Tools() []toolserver.Tool {
	return []toolserver.Tool{
		{
			Def: mcp.NewTool(toolSearchSites,
				mcp.WithDescription("Search clinical trial sites by region, therapeutic area, and minimum enrollment capacity"),
				mcp.WithString("region",
					mcp.Required(),
					mcp.Description("Region name, state name, or region code prefix"),
				),
				mcp.WithString("therapeutic_area",
					mcp.Description("Therapeutic area, substring matched against site specialties"),
				),
				mcp.WithNumber("min_capacity",
					mcp.DefaultNumber(0),
					mcp.Description("Minimum enrollment capacity"),
				),
			),
			Handler: h.handleSearchSites,
		},
		{
			Def: mcp.NewTool(toolSiteCapabilities,
				mcp.WithDescription("Get equipment and certification details for one site"),
				mcp.WithString("site_id",
					mcp.Required(),
					mcp.Description("Exact site identifier (e.g. \"SITE-001\")"),
				),
			),
			Handler: h.handleSiteCapabilities,
		},
		{
			Def: mcp.NewTool(toolEnrollmentHistory,
				mcp.WithDescription("Get a site's trial enrollment history for the last N years"),
				mcp.WithString("site_id",
					mcp.Required(),
					mcp.Description("Exact site identifier"),
				),
				mcp.WithNumber("years",
					mcp.DefaultNumber(defaultHistoryYears),
					mcp.Description("How many years of completed trials to include"),
				),
			),
			Handler: h.handleEnrollmentHistory,
		},
	}
}

func (h *Handlers) handleSearchSites(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	region, err := request.RequireString("region")
	if err != nil {
		h.audit.Record(ctx, toolserver.EntryFor(ctx, toolSearchSites, args, audit.OutcomeError, err.Error()))
		return mcp.NewToolResultError(err.Error()), nil
	}

	query := dataset.SiteQuery{
		Region:          region,
		TherapeuticArea: request.GetString("therapeutic_area", ""),
		MinCapacity:     request.GetInt("min_capacity", 0),
	}
	result := h.store.SearchSites(query)

	h.audit.Record(ctx, toolserver.EntryFor(ctx, toolSearchSites, args, audit.OutcomeOK,
		fmt.Sprintf("%d sites matched", result.TotalCount)))
	return toolserver.JSONResult(result)
}

func (h *Handlers) handleSiteCapabilities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	siteID, err := request.RequireString("site_id")
	if err != nil {
		h.audit.Record(ctx, toolserver.EntryFor(ctx, toolSiteCapabilities, args, audit.OutcomeError, err.Error()))
		return mcp.NewToolResultError(err.Error()), nil
	}

	caps, err := h.store.SiteCapabilities(siteID)
	if err != nil {
		h.audit.Record(ctx, toolserver.EntryFor(ctx, toolSiteCapabilities, args, audit.OutcomeError, err.Error()))
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.audit.Record(ctx, toolserver.EntryFor(ctx, toolSiteCapabilities, args, audit.OutcomeOK, ""))
	return toolserver.JSONResult(caps)
}

func (h *Handlers) handleEnrollmentHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	siteID, err := request.RequireString("site_id")
	if err != nil {
		h.audit.Record(ctx, toolserver.EntryFor(ctx, toolEnrollmentHistory, args, audit.OutcomeError, err.Error()))
		return mcp.NewToolResultError(err.Error()), nil
	}

	history, err := h.store.EnrollmentHistory(siteID, request.GetInt("years", defaultHistoryYears))
	if err != nil {
		h.audit.Record(ctx, toolserver.EntryFor(ctx, toolEnrollmentHistory, args, audit.OutcomeError, err.Error()))
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.audit.Record(ctx, toolserver.EntryFor(ctx, toolEnrollmentHistory, args, audit.OutcomeOK,
		fmt.Sprintf("%d trials within %d years", len(history.Trials), history.Years)))
	return toolserver.JSONResult(history)
}
