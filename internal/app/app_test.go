package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/recipegrid/internal/config"
	"github.com/specialistvlad/recipegrid/internal/dag"
	"github.com/specialistvlad/recipegrid/internal/events"
	"github.com/specialistvlad/recipegrid/internal/executor"
	"github.com/specialistvlad/recipegrid/internal/recipe"
	"github.com/specialistvlad/recipegrid/internal/testutil"
)

const ciHCL = `
recipe "build" {
  command {
    args = ["sh", "-c", "echo build $MODE"]
  }
}

recipe "test" {
  depends_on = ["build"]
  command {
    args = ["sh", "-c", "echo test"]
  }
}
`

const deployYAML = `
recipes:
  - name: deploy
    description: Ship it
    depends_on: [test]
    params:
      - name: target
      - name: region
        default: eu
    commands:
      - args: [echo, "deploy {{target}} {{region}}"]
`

// setupApp writes files to a temp dir and returns an app reading them.
func setupApp(t *testing.T, files map[string]string, mutate func(*Config)) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()
	dir := testutil.WriteFiles(t, files)

	cfg := Config{
		RecipePaths: []string{dir},
		DotenvPath:  filepath.Join(dir, ".env"),
		LogLevel:    "debug",
		Color:       "never",
	}
	if _, ok := files[".env"]; !ok {
		cfg.DotenvPath = ""
	}
	if mutate != nil {
		mutate(&cfg)
	}
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out, errOut := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	a := NewApp(out, errOut, validated)
	a.stdin = strings.NewReader("")
	a.environ = []string{"PATH=/usr/bin:/bin", "MODE=process"}
	testutil.DumpLogsOnCleanup(t, errOut)
	return a, out, errOut
}

func TestRun(t *testing.T) {
	t.Run("runs the plan across HCL and YAML files", func(t *testing.T) {
		// --- Arrange ---
		a, out, errOut := setupApp(t, map[string]string{"ci.hcl": ciHCL, "deploy.yaml": deployYAML}, nil)

		// --- Act ---
		res, err := a.Run(context.Background(), "deploy", []string{"prod"})

		// --- Assert ---
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, 0, res.ExitCode())
		assert.Equal(t, dag.Plan{"build", "test", "deploy"}, res.Plan)
		assert.Equal(t, "build process\ntest\ndeploy prod eu\n", out.String())
		assert.Contains(t, errOut.String(), "3 recipe(s) succeeded")

		snap, seen := a.Store().Snapshot()
		require.True(t, seen)
		assert.True(t, snap.Done)
		assert.Equal(t, res.RunID, snap.RunID)
	})

	t.Run("failure is reported with its exit code", func(t *testing.T) {
		a, out, errOut := setupApp(t, map[string]string{"r.hcl": `
recipe "B" {
  command {
    args = ["sh", "-c", "exit 3"]
  }
}
recipe "C" {
  depends_on = ["B"]
  command {
    args = ["echo", "C"]
  }
}
recipe "A" {
  depends_on = ["B", "C"]
  command {
    args = ["echo", "A"]
  }
}
`}, nil)

		res, err := a.Run(context.Background(), "A", nil)

		require.NoError(t, err)
		assert.Equal(t, 3, res.ExitCode())
		assert.Equal(t, []string{"C", "A"}, res.Skipped())
		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), `recipe "B" failed`)
	})

	t.Run("missing argument fails before running", func(t *testing.T) {
		a, out, _ := setupApp(t, map[string]string{"ci.hcl": ciHCL, "deploy.yaml": deployYAML}, nil)

		res, err := a.Run(context.Background(), "deploy", nil)

		assert.Nil(t, res)
		var argErr *executor.ArgumentCountError
		require.True(t, errors.As(err, &argErr))
		assert.Empty(t, out.String())
	})

	t.Run("dry run prints the plan", func(t *testing.T) {
		a, out, _ := setupApp(t, map[string]string{"ci.hcl": ciHCL}, func(c *Config) { c.DryRun = true })

		res, err := a.Run(context.Background(), "test", nil)

		require.NoError(t, err)
		assert.Nil(t, res)
		assert.Equal(t, "1. build\n   $ sh -c \"echo build $MODE\"\n2. test\n   $ sh -c \"echo test\"\n", out.String())
	})

	t.Run("dotenv values are inherited and the process wins", func(t *testing.T) {
		a, out, _ := setupApp(t, map[string]string{
			".env": "MODE=dotenv\nEXTRA=from-dotenv\n",
			"env.hcl": `
recipe "show" {
  command {
    args = ["sh", "-c", "echo $MODE $EXTRA"]
  }
}
`,
		}, nil)

		res, err := a.Run(context.Background(), "show", nil)

		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode())
		assert.Equal(t, "process from-dotenv\n", out.String())
	})

	t.Run("unreachable events server does not fail the run", func(t *testing.T) {
		a, out, errOut := setupApp(t, map[string]string{"ci.hcl": ciHCL}, func(c *Config) {
			c.EventsURL = "http://127.0.0.1:1"
		})

		res, err := a.Run(context.Background(), "build", nil)

		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode())
		assert.Equal(t, "build process\n", out.String())
		assert.Contains(t, errOut.String(), "Run events will not be published")
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("duplicate across formats", func(t *testing.T) {
		a, _, _ := setupApp(t, map[string]string{
			"a.hcl":  `recipe "x" {}`,
			"b.yaml": "recipes:\n  - name: x\n",
		}, nil)

		err := a.Load(context.Background())

		var dup *recipe.DuplicateRecipeError
		require.True(t, errors.As(err, &dup))
	})

	t.Run("dangling dependency", func(t *testing.T) {
		a, _, _ := setupApp(t, map[string]string{"a.hcl": `
recipe "X" {
  depends_on = ["Y"]
}
`}, nil)

		err := a.Load(context.Background())

		var dangling *recipe.DanglingDependencyError
		require.True(t, errors.As(err, &dangling))
		assert.Equal(t, "Y", dangling.To)
	})

	t.Run("broken file", func(t *testing.T) {
		a, _, _ := setupApp(t, map[string]string{"a.hcl": `recipe "X" {`}, nil)

		err := a.Load(context.Background())

		var loadErr *config.LoadError
		require.True(t, errors.As(err, &loadErr))
	})

	t.Run("explicit dotenv file must exist", func(t *testing.T) {
		a, _, _ := setupApp(t, map[string]string{"a.hcl": `recipe "X" {}`}, func(c *Config) {
			c.DotenvPath = filepath.Join(t.TempDir(), "missing.env")
		})

		require.Error(t, a.Load(context.Background()))
	})
}

func TestCheck(t *testing.T) {
	t.Run("reports cycles no root reaches", func(t *testing.T) {
		a, _, _ := setupApp(t, map[string]string{"a.hcl": `
recipe "ok" {}
recipe "p" {
  depends_on = ["q"]
}
recipe "q" {
  depends_on = ["p"]
}
`}, nil)

		err := a.Check(context.Background())

		var cyc *dag.CyclicDependencyError
		require.True(t, errors.As(err, &cyc))
		assert.Equal(t, []string{"p", "q", "p"}, cyc.Cycle)
	})

	t.Run("valid files", func(t *testing.T) {
		a, out, _ := setupApp(t, map[string]string{"ci.hcl": ciHCL, "deploy.yaml": deployYAML}, nil)

		require.NoError(t, a.Check(context.Background()))
		assert.Equal(t, "3 recipe(s) OK\n", out.String())
	})
}

func TestList(t *testing.T) {
	a, out, _ := setupApp(t, map[string]string{"ci.hcl": ciHCL, "deploy.yaml": deployYAML}, nil)

	require.NoError(t, a.List(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "build"))
	assert.True(t, strings.HasPrefix(lines[1], "test"))
	assert.Contains(t, lines[2], `deploy <target> [region="eu"]`)
	assert.Contains(t, lines[2], "# Ship it")
}

func TestStatusHandler(t *testing.T) {
	a, _, _ := setupApp(t, map[string]string{"ci.hcl": ciHCL}, nil)
	require.NoError(t, a.Load(context.Background()))
	orch := a.newOrchestrator(a.store)
	srv := httptest.NewServer(a.statusHandler(context.Background(), orch))
	defer srv.Close()

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("status before a run", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/status")
		require.NoError(t, err)
		defer resp.Body.Close()

		var body statusResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "idle", body.Phase)
		assert.Nil(t, body.Run)
	})

	t.Run("status after a run", func(t *testing.T) {
		a.store.Publish(context.Background(), events.Event{Type: events.RunStarted, RunID: "r1", Recipe: "test"})
		a.store.Publish(context.Background(), events.Event{Type: events.PlanResolved, Plan: []string{"build", "test"}})

		resp, err := http.Get(srv.URL + "/status")
		require.NoError(t, err)
		defer resp.Body.Close()

		var body statusResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotNil(t, body.Run)
		assert.Equal(t, "r1", body.Run.RunID)
		assert.Len(t, body.Run.Recipes, 2)
	})
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "auto", cfg.Color)

	invalid := []Config{
		{LogLevel: "loud"},
		{LogFormat: "xml"},
		{Color: "sometimes"},
		{StatusPort: 70000},
		{GracePeriod: -1},
		{EventsURL: "localhost"},
	}
	for _, c := range invalid {
		_, err := NewConfig(c)
		assert.Error(t, err, "%+v", c)
	}
}
