package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/specialistvlad/recipegrid/internal/executor"
	"github.com/specialistvlad/recipegrid/internal/orchestrator"
	"github.com/specialistvlad/recipegrid/internal/recipe"
)

func TestSummary(t *testing.T) {
	t.Run("failure names the recipe, command and skipped recipes", func(t *testing.T) {
		// --- Arrange ---
		var buf bytes.Buffer
		res := &orchestrator.Result{
			Plan: []string{"B", "C", "A"},
			Recipes: []orchestrator.RecipeResult{
				{Recipe: "B", Status: orchestrator.StatusFailure, ExitCode: 3, Command: 2, Argv: []string{"sh", "-c", "exit 3"}},
				{Recipe: "C", Status: orchestrator.StatusSkipped},
				{Recipe: "A", Status: orchestrator.StatusSkipped},
			},
		}

		// --- Act ---
		NewPrinter(&buf, false).Summary(res)

		// --- Assert ---
		out := buf.String()
		assert.Contains(t, out, `recipe "B" failed`)
		assert.Contains(t, out, `command 2: sh -c "exit 3"`)
		assert.Contains(t, out, "exit code 3")
		assert.Contains(t, out, "skipped: C, A")
		assert.NotContains(t, out, "\x1b[", "colour must be off")
	})

	t.Run("launch error is reported as an error", func(t *testing.T) {
		var buf bytes.Buffer
		res := &orchestrator.Result{
			Recipes: []orchestrator.RecipeResult{{
				Recipe:   "x",
				Status:   orchestrator.StatusFailure,
				ExitCode: executor.ExitLaunch,
				Command:  1,
				Argv:     []string{"nope"},
				Err:      &executor.LaunchError{Recipe: "x", Argv: []string{"nope"}, Err: errors.New("not found")},
			}},
		}

		NewPrinter(&buf, false).Summary(res)

		assert.Contains(t, buf.String(), "error: recipe \"x\": cannot launch")
	})

	t.Run("success", func(t *testing.T) {
		var buf bytes.Buffer
		res := &orchestrator.Result{
			Recipes: []orchestrator.RecipeResult{
				{Recipe: "a", Status: orchestrator.StatusSuccess, Duration: time.Second},
			},
			Duration: time.Second,
		}

		NewPrinter(&buf, false).Summary(res)

		assert.Contains(t, buf.String(), "ok      a (1s)")
		assert.Contains(t, buf.String(), "1 recipe(s) succeeded in 1s")
	})

	t.Run("colour can be forced on", func(t *testing.T) {
		var buf bytes.Buffer
		res := &orchestrator.Result{Recipes: []orchestrator.RecipeResult{{Recipe: "a", Status: orchestrator.StatusSuccess}}}

		NewPrinter(&buf, true).Summary(res)

		assert.Contains(t, buf.String(), "\x1b[")
	})
}

func TestPlan(t *testing.T) {
	var buf bytes.Buffer
	steps := []orchestrator.Step{
		{Recipe: &recipe.Recipe{Name: "build"}, Invocations: []executor.Invocation{{Args: []string{"go", "build", "./..."}}}},
		{Recipe: &recipe.Recipe{Name: "all"}},
	}

	NewPrinter(&buf, false).Plan(steps)

	assert.Equal(t, "1. build\n   $ go build ./...\n2. all\n   (no commands)\n", buf.String())
}

func TestRecipes(t *testing.T) {
	var buf bytes.Buffer
	def := "dev"
	tbl := recipe.NewTable()
	assert.NoError(t, tbl.Define(&recipe.Recipe{Name: "build", Description: "Compile"}))
	assert.NoError(t, tbl.Define(&recipe.Recipe{
		Name:   "deploy",
		Params: []recipe.Param{{Name: "target"}, {Name: "env", Default: &def}},
	}))

	NewPrinter(&buf, false).Recipes(tbl)

	assert.Equal(t, "build   # Compile\ndeploy <target> [env=\"dev\"]\n", buf.String())
}
