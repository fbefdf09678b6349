// Package testserver runs the full workbench stack against a fixed
// reference date for end-to-end tests.
package testserver

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/workbench/internal/dates"
	"github.com/rpggio/workbench/internal/domain/activity"
	"github.com/rpggio/workbench/internal/domain/calendar"
	"github.com/rpggio/workbench/internal/domain/knowledge"
	"github.com/rpggio/workbench/internal/domain/project"
	"github.com/rpggio/workbench/internal/domain/security"
	"github.com/rpggio/workbench/internal/domain/timeledger"
	"github.com/rpggio/workbench/internal/mcp"
	"github.com/rpggio/workbench/internal/metrics"
	"github.com/rpggio/workbench/internal/seed"
	"github.com/rpggio/workbench/internal/sqlite"
	"github.com/rpggio/workbench/internal/transport"
)

// Reference is the "now" every test server runs at: Wednesday 2024-06-12
// 15:30 UTC.
var Reference = time.Date(2024, time.June, 12, 15, 30, 0, 0, time.UTC)

type TestServer struct {
	Server  *httptest.Server
	MCP     *sdkmcp.Server
	DB      *sqlite.DB
	Metrics *metrics.Metrics
	Dataset *seed.Dataset
}

// New builds seeded services, an activity database and the HTTP router.
func New(t *testing.T) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	registry := project.NewDefaultRegistry()
	dataset, err := seed.New(Reference, registry.List(), nil).Generate()
	require.NoError(t, err)

	clock := dates.Clock(func() time.Time { return Reference })
	m := metrics.New()

	services := mcp.Services{
		Projects: registry,
		Time: timeledger.NewService(registry, nil,
			timeledger.WithClock(clock),
			timeledger.WithEntries(dataset.TimeEntries),
			timeledger.WithRecorder(m),
		),
		Calendar: calendar.NewService(dataset.Events, nil,
			calendar.WithClock(clock),
			calendar.WithLocation(time.UTC),
		),
		Knowledge: knowledge.NewService(dataset.Articles, nil),
		Security: security.NewService(dataset.Issues, nil,
			security.WithClock(clock),
			security.WithLocation(time.UTC),
		),
		Activity: activity.NewService(sqlite.NewActivityRepository(db), nil),
	}

	mcpServer, err := mcp.NewServer(mcp.Config{
		Services: services,
		Metrics:  m,
		Version:  "test",
	})
	require.NoError(t, err)

	server := httptest.NewServer(transport.NewRouter(transport.Options{
		Server:         mcpServer,
		SessionTimeout: time.Minute,
		Metrics:        m.Handler(),
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:  server,
		MCP:     mcpServer,
		DB:      db,
		Metrics: m,
		Dataset: dataset,
	}
}

// Connect opens a client session over streamable HTTP.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	return connect(t, &sdkmcp.StreamableClientTransport{Endpoint: ts.Server.URL + "/mcp"})
}

// ConnectInMemory opens a client session over an in-process transport pair.
func (ts *TestServer) ConnectInMemory(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := ts.MCP.Connect(context.Background(), serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	return connect(t, clientTransport)
}

func connect(t *testing.T, transport sdkmcp.Transport) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "workbench-test", Version: "test"}, nil)
	session, err := client.Connect(context.Background(), transport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

// CallTool calls a tool and fails the test on a protocol error. Tool errors
// are returned in the result for the caller to inspect.
func CallTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()

	if args == nil {
		args = map[string]any{}
	}
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "call %s", name)
	return res
}

// Decode calls a tool that must succeed and decodes its structured result.
func Decode[T any](t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) T {
	t.Helper()

	res := CallTool(t, session, name, args)
	require.False(t, res.IsError, "%s failed: %s", name, ErrorText(res))

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// ErrorText returns the text of the first content block.
func ErrorText(res *sdkmcp.CallToolResult) string {
	if res == nil || len(res.Content) == 0 {
		return ""
	}
	if text, ok := res.Content[0].(*sdkmcp.TextContent); ok {
		return text.Text
	}
	return ""
}
