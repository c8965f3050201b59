// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package report renders human-readable output: run summaries, plans and
// recipe listings.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/specialistvlad/recipegrid/internal/executor"
	"github.com/specialistvlad/recipegrid/internal/orchestrator"
	"github.com/specialistvlad/recipegrid/internal/recipe"
)

// Printer writes reports to w.
type Printer struct {
	w     io.Writer
	bold  *color.Color
	ok    *color.Color
	fail  *color.Color
	muted *color.Color
}

// NewPrinter creates a printer. Colour escape codes are only written when
// colorize is true.
func NewPrinter(w io.Writer, colorize bool) *Printer {
	p := &Printer{
		w:     w,
		bold:  color.New(color.Bold),
		ok:    color.New(color.FgGreen, color.Bold),
		fail:  color.New(color.FgRed, color.Bold),
		muted: color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.bold, p.ok, p.fail, p.muted} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Summary prints the outcome of a run: the status of every planned recipe,
// the failing command and the skipped recipes.
func (p *Printer) Summary(res *orchestrator.Result) {
	fmt.Fprintln(p.w)
	for _, rr := range res.Recipes {
		switch rr.Status {
		case orchestrator.StatusSuccess:
			p.ok.Fprint(p.w, "  ok      ")
			fmt.Fprintf(p.w, "%s %s\n", rr.Recipe, p.muted.Sprintf("(%s)", rr.Duration.Round(1e6)))
		case orchestrator.StatusFailure:
			p.fail.Fprint(p.w, "  FAILED  ")
			fmt.Fprintf(p.w, "%s\n", rr.Recipe)
		case orchestrator.StatusSkipped:
			p.muted.Fprintf(p.w, "  skipped %s\n", rr.Recipe)
		default:
			p.muted.Fprintf(p.w, "  pending %s\n", rr.Recipe)
		}
	}

	if f := res.FirstFailure(); f != nil {
		fmt.Fprintln(p.w)
		p.fail.Fprintf(p.w, "recipe %q failed", f.Recipe)
		fmt.Fprintln(p.w)
		if f.Command > 0 {
			fmt.Fprintf(p.w, "  command %d: %s\n", f.Command, executor.FormatArgv(f.Argv))
		}
		switch {
		case f.Interrupted:
			fmt.Fprintf(p.w, "  interrupted (exit code %d)\n", f.ExitCode)
		case f.Err != nil:
			fmt.Fprintf(p.w, "  error: %v\n", f.Err)
		default:
			fmt.Fprintf(p.w, "  exit code %d\n", f.ExitCode)
		}
		if skipped := res.Skipped(); len(skipped) > 0 {
			fmt.Fprintf(p.w, "  skipped: %s\n", strings.Join(skipped, ", "))
		}
		return
	}

	fmt.Fprintln(p.w)
	p.ok.Fprintf(p.w, "%d recipe(s) succeeded", len(res.Recipes))
	fmt.Fprintf(p.w, " in %s\n", res.Duration.Round(1e6))
}

// Plan prints the recipes that a run would execute, with their substituted
// command lines.
func (p *Printer) Plan(steps []orchestrator.Step) {
	for i, s := range steps {
		p.bold.Fprintf(p.w, "%d. %s", i+1, s.Recipe.Name)
		fmt.Fprintln(p.w)
		if len(s.Invocations) == 0 {
			p.muted.Fprintln(p.w, "   (no commands)")
		}
		for _, inv := range s.Invocations {
			fmt.Fprintf(p.w, "   $ %s\n", inv.String())
		}
	}
}

// Recipes lists the recipes of a table in definition order.
func (p *Printer) Recipes(t *recipe.Table) {
	names := t.Names()
	width := 0
	for _, n := range names {
		if len(n) > width {
			width = len(n)
		}
	}

	for _, n := range names {
		r, err := t.Lookup(n)
		if err != nil {
			continue
		}
		p.bold.Fprintf(p.w, "%-*s", width, n)
		if params := paramList(r.Params); params != "" {
			fmt.Fprintf(p.w, " %s", params)
		}
		if r.Description != "" {
			p.muted.Fprintf(p.w, "  # %s", r.Description)
		}
		fmt.Fprintln(p.w)
	}
}

func paramList(params []recipe.Param) string {
	parts := make([]string, 0, len(params))
	for _, prm := range params {
		if prm.Default != nil {
			parts = append(parts, fmt.Sprintf("[%s=%q]", prm.Name, *prm.Default))
		} else {
			parts = append(parts, "<"+prm.Name+">")
		}
	}
	return strings.Join(parts, " ")
}
