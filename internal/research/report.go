package research

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/outpost-labs/scout/pkg/storage"
)

// buildReport renders the final report markdown: title, executive summary
// holding the synthesis, then the video source and numbered web sources
// when present.
func buildReport(topic, videoURL, synthesis string, sources []string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Research Report: %s\n\n", topic)
	sb.WriteString("## Executive Summary\n\n")
	sb.WriteString(synthesis)
	sb.WriteString("\n")

	if videoURL != "" {
		sb.WriteString("\n## Video Source\n\n")
		fmt.Fprintf(&sb, "- **URL**: %s\n", videoURL)
	}

	if len(sources) > 0 {
		sb.WriteString("\n## Additional Sources\n\n")
		for _, source := range sources {
			sb.WriteString(source)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n---\n")
	sb.WriteString("*Report generated using multi-modal AI research combining web search and video analysis*\n")
	return sb.String()
}

func reportKey(topic string) string {
	return fmt.Sprintf("reports/research_report_%s.md", storage.SafeName(topic))
}

func podcastKey(topic, company string) string {
	if company != "" {
		return fmt.Sprintf("podcasts/research_podcast_%s_%s.wav", storage.SafeName(topic), storage.SafeName(company))
	}
	return fmt.Sprintf("podcasts/research_podcast_%s.wav", storage.SafeName(topic))
}

// publish uploads an artifact and returns a signed download URL. Callers
// treat failures as a degradation: the artifact is still delivered inline.
func (rt *Runtime) publish(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if rt.Store == nil {
		return "", storage.ErrNotConfigured
	}

	if err := rt.Store.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	url, err := rt.Store.SignedURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("sign %s: %w", key, err)
	}
	return url, nil
}
