package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/workbench/internal/metrics"
)

type contextKey int

const sessionIDKey contextKey = iota

// getSessionID extracts session ID from context.
func getSessionID(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDKey).(string)
	return v
}

// sessionMiddleware extracts session ID from Mcp-Session-Id header (HTTP),
// request metadata, or the transport session.
func sessionMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var sessionID string

			extra := req.GetExtra()
			if extra != nil && extra.Header != nil {
				sessionID = extra.Header.Get("Mcp-Session-Id")
			}

			// Some notifications (like "initialized") have nil params, and
			// GetMeta panics on a nil underlying value.
			if sessionID == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if sid, ok := meta["session_id"].(string); ok {
								sessionID = sid
							}
						}
					}()
				}
			}

			if sessionID == "" {
				sessionID = safeSessionID(req)
			}

			if sessionID != "" {
				ctx = context.WithValue(ctx, sessionIDKey, sessionID)
			}

			return next(ctx, method, req)
		}
	}
}

// toolMetricsMiddleware counts tools/call requests by tool and outcome.
func toolMetricsMiddleware(m *metrics.Metrics, logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method != "tools/call" {
				return next(ctx, method, req)
			}

			tool := "unknown"
			if params, ok := safeParams(req).(*sdkmcp.CallToolParamsRaw); ok && params != nil {
				tool = params.Name
			}

			start := time.Now()
			result, err := next(ctx, method, req)
			elapsed := time.Since(start)

			failed := err != nil
			if res, ok := result.(*sdkmcp.CallToolResult); ok && res != nil && res.IsError {
				failed = true
			}
			m.ObserveToolCall(tool, failed, elapsed)
			if logger != nil {
				logger.Debug("tool call", "tool", tool, "failed", failed, "duration", elapsed)
			}
			return result, err
		}
	}
}
