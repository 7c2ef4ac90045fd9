package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/keo/pkg/keo/cards"
	"github.com/cognicore/keo/pkg/keo/config"
	"github.com/cognicore/keo/pkg/keo/internalerr"
	"github.com/cognicore/keo/pkg/keo/journal"
)

func noEnv(string) string { return "" }

// execute runs one CLI invocation against the sqlite database at dbPath.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(noEnv)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--store", "sqlite", "--dsn", dbPath, "--log-mode", "prod"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

const entries = `{"owner_id":"u1","text":"I am very happy about my new job but a bit anxious about the deadline.","created_at":"2026-03-01T08:00:00Z"}
{"owner_id":"u1","text":"Went for a run, feeling healthy and calm.","created_at":"2026-03-02T08:00:00Z"}
{"owner_id":"u1","text":"<p>Dinner with <b>family</b>, grateful for them.</p>","created_at":"2026-03-03T08:00:00Z"}
`

func TestCLIWorkflow(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "keo.db")
	src := filepath.Join(dir, "entries.jsonl")
	require.NoError(t, os.WriteFile(src, []byte(entries), 0o644))

	out, err := execute(t, db, "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 3 entries")

	out, err = execute(t, db, "analyze", "--id", "1", "--save")
	require.NoError(t, err)
	var insight journal.Insight
	require.NoError(t, json.Unmarshal([]byte(out), &insight))
	assert.Greater(t, insight.SentimentScore, 0.5)
	assert.NotEmpty(t, insight.SupportSuggestions)

	out, err = execute(t, db, "trends", "--owner", "u1", "--save")
	require.NoError(t, err)
	var report journal.TrendReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEqual(t, journal.TrendNotEnoughData, report.OverallSentimentTrend)

	out, err = execute(t, db, "keywords", "--owner", "u1", "--top", "5")
	require.NoError(t, err)
	var cloud []journal.Keyword
	require.NoError(t, json.Unmarshal([]byte(out), &cloud))
	require.NotEmpty(t, cloud)
	assert.Equal(t, 1.0, cloud[0].Weight)
	assert.LessOrEqual(t, len(cloud), 5)

	out, err = execute(t, db, "prompt", "--owner", "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	out, err = execute(t, db, "cards", "--owner", "u1")
	require.NoError(t, err)
	var saved []cards.Card
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	require.Len(t, saved, 2)
	kinds := []cards.Kind{saved[0].Kind, saved[1].Kind}
	assert.ElementsMatch(t, []cards.Kind{cards.KindEntry, cards.KindTrends}, kinds)

	out, err = execute(t, db, "refresh", "--owner", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "processed 3, saved 3, errors 0")

	out, err = execute(t, db, "cards", "--owner", "u1", "--kind", "entry")
	require.NoError(t, err)
	saved = nil
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.Len(t, saved, 4)
}

func TestAnalyzeRequiresID(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "keo.db"), "analyze")
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
}

func TestAnalyzeMissingEntry(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "keo.db"), "analyze", "--id", "42")
	assert.True(t, errors.Is(err, internalerr.ErrNotFound))
}

func TestBuildRuntimeBackends(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{config.BackendMemory, config.BackendLRU, config.BackendRedis} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "keo.yaml")
			body := "cache:\n  backend: " + backend + "\nredis:\n  addr: 127.0.0.1:1\n"
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			rt, cleanup, err := buildRuntime(ctx, globalFlags{configPath: path, driver: config.DriverMemory}, noEnv)
			require.NoError(t, err)
			defer cleanup()

			// an unreachable redis only costs memoisation
			version := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
			got := rt.engine.AnalyzeEntryCached(ctx, "Feeling calm today.", 1, "u1", version)
			assert.NotEmpty(t, got.Summary)
		})
	}
}

func TestBuildRuntimeErrors(t *testing.T) {
	ctx := context.Background()

	_, _, err := buildRuntime(ctx, globalFlags{driver: "mongo"}, noEnv)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidConfig))

	_, _, err = buildRuntime(ctx, globalFlags{driver: config.DriverMemory, strategy: config.StrategyRemote}, noEnv)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidConfig), "remote without API key")

	rt, cleanup, err := buildRuntime(ctx, globalFlags{driver: config.DriverMemory, strategy: config.StrategyRemote},
		func(k string) string {
			if k == "OPENAI_API_KEY" {
				return "sk-test"
			}
			return ""
		})
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, config.StrategyRemote, rt.cfg.Strategy)
}
