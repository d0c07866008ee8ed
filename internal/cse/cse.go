// Package cse finds LinkedIn profiles for a company through the Google
// Custom Search JSON API. The search engine behind the configured engine
// ID is expected to index the public web; queries are site-restricted to
// linkedin.com/in.
package cse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/outpost-labs/scout/internal/engine"
)

// Client wraps the custom search service for profile lookups.
type Client struct {
	svc        *customsearch.Service
	engineID   string
	maxResults int64
	logger     *slog.Logger
}

func New(ctx context.Context, cfg *Config, logger *slog.Logger) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize custom search service: %w", err)
	}

	return &Client{
		svc:        svc,
		engineID:   cfg.EngineID,
		maxResults: int64(cfg.MaxResults),
		logger:     logger.With("system", "cse"),
	}, nil
}

// BuildQuery composes the site-restricted profile query: the company name
// quoted for exact matching, followed by any title keywords.
func BuildQuery(company string, titleAreas []string) string {
	query := fmt.Sprintf("site:linkedin.com/in %q", company)
	if len(titleAreas) > 0 {
		query += " " + strings.Join(titleAreas, " ")
	}
	return query
}

// SearchProfiles runs the profile query and maps results to contacts.
func (c *Client) SearchProfiles(ctx context.Context, company string, titleAreas []string) ([]engine.CseContact, error) {
	query := BuildQuery(company, titleAreas)

	resp, err := c.svc.Cse.List().
		Cx(c.engineID).
		Q(query).
		Num(c.maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("profile search %q: %w", query, err)
	}

	contacts := make([]engine.CseContact, 0, len(resp.Items))
	for _, item := range resp.Items {
		contacts = append(contacts, engine.CseContact{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}

	c.logger.InfoContext(ctx, "profile search complete",
		"company", company,
		"query", query,
		"results", len(contacts),
	)

	return contacts, nil
}

// Step returns the LinkedIn profile search step. A nil client means the
// custom search API is not configured; the step then records an empty
// contact list rather than failing the run.
func Step(client *Client, logger *slog.Logger) engine.StepFunc {
	return func(ctx context.Context, st *engine.RunState) (*engine.Update, error) {
		if client == nil {
			logger.WarnContext(ctx, "linkedin search not configured, skipping profile lookup",
				"company", st.Input.CompanyName,
			)
			contacts := []engine.CseContact{}
			return &engine.Update{Contacts: &contacts}, nil
		}

		contacts, err := client.SearchProfiles(ctx, st.Input.CompanyName, st.Input.TitleAreas)
		if err != nil {
			return nil, fmt.Errorf("linkedin search: %w", err)
		}
		return &engine.Update{Contacts: &contacts}, nil
	}
}
