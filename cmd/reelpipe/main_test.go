package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"

	"reelpipe/internal/config"
	"reelpipe/internal/store"
)

type cliTestEnv struct {
	cfg        *config.Config
	store      *store.Store
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.LLM.APIKey = "test"

	configPath := filepath.Join(base, "config.toml")
	data, err := toml.Marshal(cfgVal)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	st, err := store.Open(&cfgVal)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})

	return &cliTestEnv{cfg: &cfgVal, store: st, configPath: configPath}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLIEnqueueAndJobsList(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "enqueue", "generate_hook", "--script", "3")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if !strings.Contains(out, "Enqueued generate_hook") {
		t.Fatalf("unexpected enqueue output: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "jobs", "list")
	if err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	if !strings.Contains(out, "generate_hook") || !strings.Contains(out, "script 3") {
		t.Fatalf("jobs list missing entry: %q", out)
	}
}

func TestCLIEnqueueRejectsUnknownKind(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "enqueue", "mystery_kind")
	if err == nil || !strings.Contains(err.Error(), "unknown job kind") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestCLIJobsCancel(t *testing.T) {
	env := setupCLITestEnv(t)

	job, err := env.store.NewJob(context.Background(), store.KindFetchTopics, nil)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "jobs", "cancel", "1")
	if err != nil {
		t.Fatalf("jobs cancel: %v", err)
	}
	if !strings.Contains(out, "Canceled 1 job(s)") {
		t.Fatalf("unexpected cancel output: %q", out)
	}

	updated, err := env.store.GetJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if updated.Status != store.JobError {
		t.Fatalf("expected canceled job to be errored, got %s", updated.Status)
	}
}

func TestCLISourcesAddAndList(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "sources", "add", "Tech News", "https://example.com/feed", "--category", "tech")
	if err != nil {
		t.Fatalf("sources add: %v", err)
	}
	if !strings.Contains(out, "Added source") {
		t.Fatalf("unexpected add output: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "sources", "list")
	if err != nil {
		t.Fatalf("sources list: %v", err)
	}
	if !strings.Contains(out, "Tech News") || !strings.Contains(out, "pending") {
		t.Fatalf("sources list missing entry: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "sources", "list", "--category", "gaming")
	if err != nil {
		t.Fatalf("sources list --category: %v", err)
	}
	if !strings.Contains(out, "No sources") {
		t.Fatalf("expected empty category, got %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "sources", "list", "--category", "tech")
	if err != nil {
		t.Fatalf("sources list --category: %v", err)
	}
	if !strings.Contains(out, "Tech News") {
		t.Fatalf("expected tech source in category listing: %q", out)
	}
}

func TestCLIStatusWithoutDaemon(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "not running") {
		t.Fatalf("expected daemon not running, got %q", out)
	}
}

func TestCLITrendsEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "trends")
	if err != nil {
		t.Fatalf("trends: %v", err)
	}
	if !strings.Contains(out, "No trends detected") {
		t.Fatalf("unexpected trends output: %q", out)
	}
}

func TestCLITestNotifyUnconfigured(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "test-notify")
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	if !strings.Contains(out, "not configured") {
		t.Fatalf("unexpected notify output: %q", out)
	}
}
