package dag

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/specialistvlad/recipegrid/internal/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTable builds an unsealed table from name -> dependencies pairs, keeping
// the order in which the pairs are listed.
func newTable(t *testing.T, defs ...[]string) *recipe.Table {
	t.Helper()
	tbl := recipe.NewTable()
	for _, def := range defs {
		require.NoError(t, tbl.Define(&recipe.Recipe{Name: def[0], Dependencies: def[1:]}))
	}
	return tbl
}

func sealed(t *testing.T, defs ...[]string) *recipe.Table {
	t.Helper()
	tbl := newTable(t, defs...)
	require.NoError(t, tbl.Finalize(context.Background()))
	return tbl
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("shared dependency appears once before both dependents", func(t *testing.T) {
		tbl := sealed(t,
			[]string{"A", "B", "C"},
			[]string{"B"},
			[]string{"C", "B"},
		)

		plan, err := Resolve(ctx, tbl, "A")

		require.NoError(t, err)
		assert.Equal(t, Plan{"B", "C", "A"}, plan)
	})

	t.Run("composite recipe follows declared order", func(t *testing.T) {
		tbl := sealed(t,
			[]string{"ci", "fmt-check", "build", "lint", "test", "doc-lint"},
			[]string{"fmt-check"},
			[]string{"build"},
			[]string{"lint"},
			[]string{"test", "build"},
			[]string{"doc-lint"},
		)

		plan, err := Resolve(ctx, tbl, "ci")

		require.NoError(t, err)
		assert.Equal(t, Plan{"fmt-check", "build", "lint", "test", "doc-lint", "ci"}, plan)
	})

	t.Run("recipe without dependencies plans itself", func(t *testing.T) {
		tbl := sealed(t, []string{"solo"})
		plan, err := Resolve(ctx, tbl, "solo")
		require.NoError(t, err)
		assert.Equal(t, Plan{"solo"}, plan)
	})

	t.Run("unknown root", func(t *testing.T) {
		tbl := sealed(t, []string{"a"})
		_, err := Resolve(ctx, tbl, "zzz")
		var unknown *recipe.UnknownRecipeError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "zzz", unknown.Name)
	})

	t.Run("dangling edge on an unsealed table", func(t *testing.T) {
		tbl := newTable(t, []string{"X", "Y"})
		_, err := Resolve(ctx, tbl, "X")
		var dangling *recipe.DanglingDependencyError
		require.True(t, errors.As(err, &dangling))
		assert.Equal(t, "X", dangling.From)
		assert.Equal(t, "Y", dangling.To)
	})

	t.Run("resolving twice yields identical plans", func(t *testing.T) {
		tbl := sealed(t,
			[]string{"top", "m2", "m1"},
			[]string{"m1", "leaf"},
			[]string{"m2", "leaf", "m1"},
			[]string{"leaf"},
		)
		first, err := Resolve(ctx, tbl, "top")
		require.NoError(t, err)
		second, err := Resolve(ctx, tbl, "top")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, Plan{"leaf", "m1", "m2", "top"}, first)
	})
}

func TestResolve_Cycles(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name  string
		defs  [][]string
		root  string
		cycle []string
	}{
		{
			name:  "self dependency",
			defs:  [][]string{{"a", "a"}},
			root:  "a",
			cycle: []string{"a", "a"},
		},
		{
			name:  "direct cycle",
			defs:  [][]string{{"a", "b"}, {"b", "a"}},
			root:  "a",
			cycle: []string{"a", "b", "a"},
		},
		{
			name:  "cycle below the root names only its members",
			defs:  [][]string{{"root", "x"}, {"x", "y"}, {"y", "z"}, {"z", "x"}},
			root:  "root",
			cycle: []string{"x", "y", "z", "x"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tbl := sealed(t, tc.defs...)

			_, err := Resolve(ctx, tbl, tc.root)

			var cyc *CyclicDependencyError
			require.True(t, errors.As(err, &cyc), "expected a cycle error, got %v", err)
			assert.Equal(t, tc.cycle, cyc.Cycle)
			assert.ElementsMatch(t, tc.cycle[:len(tc.cycle)-1], cyc.Members())
			assert.ErrorContains(t, err, "cyclic dependency")
		})
	}
}

func TestDetectCycles(t *testing.T) {
	ctx := context.Background()

	t.Run("acyclic table", func(t *testing.T) {
		tbl := sealed(t, []string{"a", "b"}, []string{"b"}, []string{"c", "a", "b"})
		assert.NoError(t, DetectCycles(ctx, tbl))
	})

	t.Run("cycle unreachable from the first recipe is still found", func(t *testing.T) {
		tbl := sealed(t, []string{"ok"}, []string{"p", "q"}, []string{"q", "p"})
		err := DetectCycles(ctx, tbl)
		var cyc *CyclicDependencyError
		require.True(t, errors.As(err, &cyc))
		assert.Equal(t, []string{"p", "q", "p"}, cyc.Cycle)
	})
}

// TestResolve_TopologicalOrder checks on random acyclic tables that every
// planned recipe appears after all of its dependencies and exactly once.
func TestResolve_TopologicalOrder(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 50; iter++ {
		n := 2 + rng.Intn(15)
		defs := make([][]string, n)
		for i := 0; i < n; i++ {
			def := []string{fmt.Sprintf("r%d", i)}
			// Edges only point at lower indices, so the table is acyclic.
			for j := 0; j < i; j++ {
				if rng.Intn(3) == 0 {
					def = append(def, fmt.Sprintf("r%d", j))
				}
			}
			defs[i] = def
		}
		tbl := sealed(t, defs...)
		root := fmt.Sprintf("r%d", n-1)

		plan, err := Resolve(ctx, tbl, root)
		require.NoError(t, err)

		seen := make(map[string]bool)
		for _, name := range plan {
			require.False(t, seen[name], "recipe %s planned twice", name)
			seen[name] = true
		}
		for _, name := range plan {
			rec, err := tbl.Lookup(name)
			require.NoError(t, err)
			for _, dep := range rec.Dependencies {
				assert.Less(t, plan.Index(dep), plan.Index(name), "%s must run before %s", dep, name)
			}
		}
		assert.Equal(t, root, plan[len(plan)-1])
	}
}
