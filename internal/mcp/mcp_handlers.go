package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sitegrade/sitegrade/core"
	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/internal/history"
	"github.com/sitegrade/sitegrade/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg    *contract.Config
	collectors contract.CollectorSet
	summarizer contract.Summarizer
	store      *history.Store
}

func (h *toolHandler) handleRunAudit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	urlStr := request.GetString("url", "")
	if err := contract.RevalidateAuditURL(cfg, urlStr); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid url: %v", err)), nil
	}
	if kw := request.GetString("keywords", ""); kw != "" {
		cfg.Keywords = nil
		for part := range strings.SplitSeq(kw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				cfg.Keywords = append(cfg.Keywords, trimmed)
			}
		}
	}
	if country := request.GetString("country", ""); country != "" {
		cfg.Country = strings.ToLower(strings.TrimSpace(country))
	}
	if skip := request.GetString("skip", ""); skip != "" {
		cfg.Skip = make(map[string]bool)
		for part := range strings.SplitSeq(skip, ",") {
			name := strings.ToLower(strings.TrimSpace(part))
			if name == "" {
				continue
			}
			if _, ok := contract.ValidCollectorNames[name]; !ok {
				return mcp.NewToolResultError(fmt.Sprintf("invalid collector %q in skip", name)), nil
			}
			cfg.Skip[name] = true
		}
	}

	result, err := core.ExecuteAudit(ctx, cfg, h.collectors, h.summarizer)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("audit failed: %v", err)), nil
	}

	if _, err := h.store.RecordAudit(cfg.Domain, result); err != nil {
		contract.LogWarn("History tracking failed", err)
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGradeScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	score := request.GetFloat("score", -1)
	if score < 0 || score > 100 {
		return mcp.NewToolResultError("score must be between 0 and 100"), nil
	}

	grade := core.GradeFor(score)
	jsonData, _ := json.MarshalIndent(grade, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListAuditHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain := contract.NormalizeDomain(request.GetString("domain", ""))
	limit := request.GetInt("limit", 0)

	entries, err := h.store.ListAudits(domain, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}
	if entries == nil {
		entries = []schema.HistoryEntry{}
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
