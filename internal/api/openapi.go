package api

import (
	"fmt"

	"github.com/outpost-labs/scout/internal/config"
	"github.com/outpost-labs/scout/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the runs API.
func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"RunRequest": {
			Type:     "object",
			Required: []string{"topic", "research_approach"},
			Properties: map[string]*openapi.Schema{
				"topic": {Type: "string", Description: "Research topic", Example: "edge computing"},
				"research_approach": {
					Type:        "string",
					Description: "Research path selection",
					Enum:        []any{"topic_only", "topic_company_leads"},
				},
				"company_name": {Type: "string", Description: "Target company; required for topic_company_leads"},
				"title_areas": {
					Type:        "array",
					Description: "Job title areas to focus lead and contact discovery on",
					Items:       &openapi.Schema{Type: "string"},
				},
				"video_url":      {Type: "string", Description: "Optional video to analyze alongside the research"},
				"create_podcast": {Type: "boolean", Description: "Generate a podcast from the report"},
				"notify_email":   {Type: "string", Format: "email", Description: "Optional address for results notification"},
			},
		},
		"Output": {
			Type:        "object",
			Description: "Projected run output. Fields for branches that never ran are null.",
			Properties: map[string]*openapi.Schema{
				"run_id":                   {Type: "string", Format: "uuid"},
				"topic":                    {Type: "string"},
				"report":                   {Type: "string", Description: "Markdown research report"},
				"report_url":               {Type: "string", Description: "Time-limited artifact download URL"},
				"identified_opportunities": {Type: "array", Items: openapi.SchemaRef("Opportunity")},
				"linkedin_contacts":        {Type: "array", Items: openapi.SchemaRef("CseContact")},
				"podcast_script":           {Type: "string"},
				"podcast_url":              {Type: "string", Description: "Time-limited artifact download URL"},
				"errors":                   {Type: "array", Items: openapi.SchemaRef("StepError")},
				"skipped":                  {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"Opportunity": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":                 {Type: "string"},
				"description":          {Type: "string"},
				"relevant_departments": {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"contact_points":       {Type: "array", Items: openapi.SchemaRef("ContactPoint")},
				"decision_makers":      {Type: "array", Items: openapi.SchemaRef("DecisionMaker")},
			},
		},
		"ContactPoint": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":         {Type: "string"},
				"title":        {Type: "string"},
				"department":   {Type: "string"},
				"linkedin_url": {Type: "string"},
				"relevance":    {Type: "string"},
			},
		},
		"DecisionMaker": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":      {Type: "string"},
				"title":     {Type: "string"},
				"rationale": {Type: "string"},
			},
		},
		"CseContact": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"title":   {Type: "string"},
				"link":    {Type: "string"},
				"snippet": {Type: "string"},
			},
		},
		"StepError": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"step":    {Type: "string"},
				"message": {Type: "string"},
				"fatal":   {Type: "boolean"},
			},
		},
		"Run": {
			Type:        "object",
			Description: "Archived run record",
			Properties: map[string]*openapi.Schema{
				"id":                {Type: "string", Format: "uuid"},
				"topic":             {Type: "string"},
				"approach":          {Type: "string"},
				"company_name":      {Type: "string"},
				"video_requested":   {Type: "boolean"},
				"podcast_requested": {Type: "boolean"},
				"status":            {Type: "string", Enum: []any{"completed", "failed"}},
				"output":            openapi.SchemaRef("Output"),
				"error":             {Type: "string"},
				"error_count":       {Type: "integer"},
				"created_at":        {Type: "string", Format: "date-time"},
				"completed_at":      {Type: "string", Format: "date-time"},
				"duration_ms":       {Type: "integer"},
			},
		},
		"RunPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Run")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"MetricsSnapshot": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"runs_started":      {Type: "integer"},
				"runs_completed":    {Type: "integer"},
				"runs_failed":       {Type: "integer"},
				"runs_active":       {Type: "integer"},
				"steps_completed":   {Type: "integer"},
				"steps_failed":      {Type: "integer"},
				"steps_skipped":     {Type: "integer"},
				"avg_step_duration": {Type: "integer", Description: "Nanoseconds"},
			},
		},
	})

	spec.Paths["/runs"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Execute a research run",
			Description: "Runs the full research pipeline request-scoped and returns the projected output. Expect multi-minute latency for company runs.",
			Tags:        []string{"runs"},
			RequestBody: openapi.RequestBodyJSON("RunRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Run output", "Output"),
				400: openapi.ResponseRef("BadRequest"),
				502: {Description: "Report synthesis failed; no output produced"},
			},
		},
		Get: &openapi.Operation{
			Summary: "List archived runs",
			Tags:    []string{"runs"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Results per page", false),
				openapi.QueryParam("search", "string", "Search topic and company name", false),
				openapi.QueryParam("status", "string", "Filter by run status", false),
				openapi.QueryParam("approach", "string", "Filter by research approach", false),
				openapi.QueryParam("company_name", "string", "Filter by company name (contains)", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Run page", "RunPage"),
			},
		},
	}

	spec.Paths["/runs/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find an archived run",
			Tags:       []string{"runs"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Run ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Archived run", "Run"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/runs/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search archived runs",
			Tags:        []string{"runs"},
			RequestBody: openapi.RequestBodyJSON("PageRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Run page", "RunPage"),
			},
		},
	}

	spec.Paths["/metrics"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Engine metrics snapshot",
			Tags:    []string{"metrics"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Counters", "MetricsSnapshot"),
			},
		},
	}

	spec.Paths["/artifacts/{key}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Download a run artifact",
			Tags:    []string{"artifacts"},
			Parameters: []*openapi.Parameter{
				{
					Name:        "key",
					In:          "path",
					Required:    true,
					Description: "Artifact storage key, e.g. reports/research_report_topic.md",
					Schema:      &openapi.Schema{Type: "string"},
				},
			},
			Responses: map[int]*openapi.Response{
				200: {Description: "Artifact content"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
