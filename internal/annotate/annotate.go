// Package annotate adds a province code column to tabular survey data.
package annotate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/JonMunkholm/provcodes/internal/logging"
	"github.com/JonMunkholm/provcodes/internal/provincia"
	"github.com/JonMunkholm/provcodes/internal/tabular"
)

// Default column names.
const (
	DefaultNameColumn = "Provincia"
	DefaultCodeColumn = "Codigo_Provincia"
)

// ErrUnresolved reports rows whose province name has no code. AddCodeColumn
// never returns it; callers that require full coverage use Result.Check.
var ErrUnresolved = errors.New("unresolved province names")

// Options names the input and output columns. Empty fields use the defaults.
type Options struct {
	NameColumn string
	CodeColumn string
}

func (o Options) withDefaults() Options {
	if o.NameColumn == "" {
		o.NameColumn = DefaultNameColumn
	}
	if o.CodeColumn == "" {
		o.CodeColumn = DefaultCodeColumn
	}
	return o
}

// Result summarizes one annotation pass.
type Result struct {
	Rows     int
	Resolved int
	Missing  int

	// Unresolved holds the distinct non-blank names that had no code, sorted.
	Unresolved []string
}

// Check returns an error wrapping ErrUnresolved if any row was missing a code.
func (r Result) Check() error {
	if r.Missing == 0 {
		return nil
	}
	if len(r.Unresolved) == 0 {
		return fmt.Errorf("%w: %d of %d rows have no name", ErrUnresolved, r.Missing, r.Rows)
	}
	return fmt.Errorf("%w: %d of %d rows, e.g. %q", ErrUnresolved, r.Missing, r.Rows, r.Unresolved[0])
}

// AddCodeColumn sets opts.CodeColumn to the code of each row's
// opts.NameColumn value. Rows whose name does not resolve get nil.
//
// Errors from frame are returned wrapped; frame is left unchanged on error.
func AddCodeColumn(ctx context.Context, frame tabular.Frame, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	opts = opts.withDefaults()

	names, err := frame.Column(opts.NameColumn)
	if err != nil {
		return Result{}, fmt.Errorf("read name column: %w", err)
	}

	res := Result{Rows: len(names)}
	seen := make(map[string]bool)

	codes := tabular.Apply(names, func(v any) any {
		code, ok := provincia.Lookup(v)
		if ok {
			res.Resolved++
			return code
		}

		res.Missing++
		if raw := rawName(v); raw != "" && !seen[raw] {
			seen[raw] = true
			res.Unresolved = append(res.Unresolved, raw)
		}
		return nil
	})

	if err := frame.SetColumn(opts.CodeColumn, codes); err != nil {
		return Result{}, fmt.Errorf("write code column: %w", err)
	}

	sort.Strings(res.Unresolved)

	logger := logging.FromContext(ctx)
	logger.Debug("code column assigned",
		"name_column", opts.NameColumn,
		"code_column", opts.CodeColumn,
		"rows", res.Rows,
		"resolved", res.Resolved,
		"missing", res.Missing,
	)
	for _, raw := range res.Unresolved {
		logger.Debug("unresolved province", "value", raw)
	}

	return res, nil
}

// rawName is the trimmed text of a cell, or "" for non-text cells.
func rawName(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case *string:
		if s != nil {
			return strings.TrimSpace(*s)
		}
	}
	return ""
}
