// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/internal/history"
)

// NewMCPServer initializes and configures the sitegrade MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, collectors contract.CollectorSet, summarizer contract.Summarizer, store *history.Store) *server.MCPServer {
	s := server.NewMCPServer(
		"Sitegrade Audit Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:    baseCfg,
		collectors: collectors,
		summarizer: summarizer,
		store:      store,
	}

	// --- 1. Tool: run_audit ---
	s.AddTool(mcp.NewTool("run_audit",
		mcp.WithDescription("Run a full digital marketing audit for a website and return scores, grade and breakdown."),
		mcp.WithString("url", mcp.Description("Website URL to audit."), mcp.Required()),
		mcp.WithString("keywords", mcp.Description("Comma-separated keywords for SEO visibility. Derived automatically when omitted.")),
		mcp.WithString("country", mcp.Description("2-letter country code for search rankings.")),
		mcp.WithString("skip", mcp.Description("Comma-separated collectors to skip (business, tech, pagespeed, google, facebook, seo).")),
	), h.handleRunAudit)

	// --- 2. Tool: grade_score ---
	s.AddTool(mcp.NewTool("grade_score",
		mcp.WithDescription("Convert a 0-100 marketing score into its grade, risk level and verdict."),
		mcp.WithNumber("score", mcp.Description("Final marketing score between 0 and 100."), mcp.Required()),
	), h.handleGradeScore)

	// --- 3. Tool: list_audit_history ---
	s.AddTool(mcp.NewTool("list_audit_history",
		mcp.WithDescription("List stored audit results, newest first."),
		mcp.WithString("domain", mcp.Description("Filter by domain (all domains when omitted).")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of entries to return.")),
	), h.handleListAuditHistory)

	return s
}

// StartMCPServer starts the sitegrade MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, collectors contract.CollectorSet, summarizer contract.Summarizer, store *history.Store) error {
	s := NewMCPServer(baseCfg, collectors, summarizer, store)
	return server.ServeStdio(s)
}
