// Package demographics implements the patient-demographics tool server:
// patient-pool search and per-region demographic lookups over the static
// demographics dataset.
package demographics

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
	ServerName = "patient-demographics"
	// Scope is the token scope required to call this server's tools.
	Scope = "read:demographics"

	toolSearchPatientPools   = "search_patient_pools"
	toolDemographicsByRegion = "get_demographics_by_region"
)

// Handlers implements the demographics tools over an injected store.
type Handlers struct {
	store *dataset.DemographicsStore
	audit *audit.Logger
}

// NewHandlers creates the demographics tool handlers.
func NewHandlers(store *dataset.DemographicsStore, auditLog *audit.Logger) *Handlers {
	return &Handlers{
		store: store,
		audit: auditLog,
	}
}

// Tools declares the server's tools with their input schemas.
func (h *Handlers) Tools() []toolserver.Tool {
	return []toolserver.Tool{
		{
			Def: mcp.NewTool(toolSearchPatientPools,
				mcp.WithDescription("Search patient pools by disease, region, and minimum estimated population"),
				mcp.WithString("disease",
					mcp.Description("Disease or condition name, substring matched"),
				),
				mcp.WithString("region",
					mcp.Required(),
					mcp.Description("Region name (e.g. \"Northeast\") or region code prefix (e.g. \"US-NE\")"),
				),
				mcp.WithNumber("min_population",
					mcp.DefaultNumber(0),
					mcp.Description("Minimum estimated patient population"),
				),
			),
			Handler: h.handleSearchPatientPools,
		},
		{
			Def: mcp.NewTool(toolDemographicsByRegion,
				mcp.WithDescription("Get demographic details for one region by its identifier"),
				mcp.WithString("region_id",
					mcp.Required(),
					mcp.Description("Exact region identifier (e.g. \"US-NE-001\")"),
				),
				mcp.WithString("disease_filter",
					mcp.Description("When set, attach the region's patient pools matching this disease"),
				),
			),
			Handler: h.handleDemographicsByRegion,
		},
	}
}

func (h *Handlers) handleSearchPatientPools(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	region, err := request.RequireString("region")
	if err != nil {
		h.audit.Record(ctx, toolserver.EntryFor(ctx, toolSearchPatientPools, args, audit.OutcomeError, err.Error()))
		return mcp.NewToolResultError(err.Error()), nil
	}

	query := dataset.PoolQuery{
		Disease:       request.GetString("disease", ""),
		Region:        region,
		MinPopulation: request.GetInt("min_population", 0),
	}
	result := h.store.SearchPatientPools(query)

	h.audit.Record(ctx, toolserver.EntryFor(ctx, toolSearchPatientPools, args, audit.OutcomeOK,
		fmt.Sprintf("%d pools matched", result.TotalCount)))
	return toolserver.JSONResult(result)
}

func (h *Handlers) handleDemographicsByRegion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	regionID, err := request.RequireString("region_id")
	if err != nil {
		h.audit.Record(ctx, toolserver.EntryFor(ctx, toolDemographicsByRegion, args, audit.OutcomeError, err.Error()))
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.store.DemographicsByRegion(regionID, request.GetString("disease_filter", ""))
	if err != nil {
		h.audit.Record(ctx, toolserver.EntryFor(ctx, toolDemographicsByRegion, args, audit.OutcomeError, err.Error()))
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.audit.Record(ctx, toolserver.EntryFor(ctx, toolDemographicsByRegion, args, audit.OutcomeOK, ""))
	return toolserver.JSONResult(result)
}
