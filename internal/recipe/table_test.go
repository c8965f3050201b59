package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cmd(args ...string) Command {
	return Command{Args: args}
}

func TestDefine(t *testing.T) {
	t.Run("defines recipes in order", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Define(&Recipe{Name: "build", Commands: []Command{cmd("true")}}))
		require.NoError(t, tbl.Define(&Recipe{Name: "test", Dependencies: []string{"build"}}))

		assert.Equal(t, []string{"build", "test"}, tbl.Names())
		assert.Equal(t, 2, tbl.Len())
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Define(&Recipe{Name: "build", Source: "a.hcl"}))

		err := tbl.Define(&Recipe{Name: "build", Source: "b.hcl"})

		var dup *DuplicateRecipeError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "build", dup.Name)
		assert.Contains(t, err.Error(), "a.hcl")
		assert.Contains(t, err.Error(), "b.hcl")
		assert.Equal(t, 1, tbl.Len(), "the failed definition must not be recorded")
	})

	t.Run("invalid recipes are rejected", func(t *testing.T) {
		tbl := NewTable()
		assert.ErrorIs(t, tbl.Define(&Recipe{Name: " "}), ErrInvalidRecipe)
		assert.ErrorIs(t, tbl.Define(&Recipe{Name: "x", Commands: []Command{{}}}), ErrInvalidRecipe)
		assert.ErrorIs(t, tbl.Define(&Recipe{
			Name:   "y",
			Params: []Param{{Name: "a"}, {Name: "a"}},
		}), ErrInvalidRecipe)
	})

	t.Run("define after finalize fails", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Finalize(context.Background()))
		assert.ErrorIs(t, tbl.Define(&Recipe{Name: "late"}), ErrTableFinalized)
	})
}

func TestLookup(t *testing.T) {
	tbl := NewTable()
	want := &Recipe{Name: "lint"}
	require.NoError(t, tbl.Define(want))

	got, err := tbl.Lookup("lint")
	require.NoError(t, err)
	assert.Same(t, want, got)

	_, err = tbl.Lookup("nope")
	var unknown *UnknownRecipeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nope", unknown.Name)
}

func TestFinalize(t *testing.T) {
	t.Run("dangling dependency is reported with both names", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Define(&Recipe{Name: "X", Dependencies: []string{"Y"}}))

		err := tbl.Finalize(context.Background())

		var dangling *DanglingDependencyError
		require.True(t, errors.As(err, &dangling))
		assert.Equal(t, "X", dangling.From)
		assert.Equal(t, "Y", dangling.To)
		assert.False(t, tbl.Finalized())
	})

	t.Run("first dangling reference in definition order wins", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Define(&Recipe{Name: "a", Dependencies: []string{"ok", "missing-1"}}))
		require.NoError(t, tbl.Define(&Recipe{Name: "ok"}))
		require.NoError(t, tbl.Define(&Recipe{Name: "b", Dependencies: []string{"missing-2"}}))

		err := tbl.Finalize(context.Background())

		var dangling *DanglingDependencyError
		require.True(t, errors.As(err, &dangling))
		assert.Equal(t, "a", dangling.From)
		assert.Equal(t, "missing-1", dangling.To)
	})

	t.Run("valid table seals and finalize is idempotent", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Define(&Recipe{Name: "b"}))
		require.NoError(t, tbl.Define(&Recipe{Name: "a", Dependencies: []string{"b"}}))

		require.NoError(t, tbl.Finalize(context.Background()))
		assert.True(t, tbl.Finalized())
		assert.NoError(t, tbl.Finalize(context.Background()))
	})
}
