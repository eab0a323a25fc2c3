package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/JonMunkholm/provcodes/internal/annotate"
	"github.com/JonMunkholm/provcodes/internal/config"
	"github.com/JonMunkholm/provcodes/internal/tabular"
)

// stdio is the path that names stdin or stdout.
const stdio = "-"

func (a *App) runAnnotate(ctx context.Context, c *cli.Context) error {
	cfg := a.Config.Annotate
	cfg.NameColumn = c.String("name-column")
	cfg.CodeColumn = c.String("code-column")
	cfg.Sheet = c.String("sheet")
	cfg.Comma = c.String("comma")
	cfg.Encoding = c.String("encoding")
	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}

	if c.NArg() != 1 {
		return usagef("expected one input path, got %d", c.NArg())
	}
	input := c.Args().First()

	switch {
	case strings.TrimSpace(cfg.NameColumn) == "":
		return usagef("-name-column must not be empty")
	case strings.TrimSpace(cfg.CodeColumn) == "":
		return usagef("-code-column must not be empty")
	case !config.ValidComma(cfg.Comma):
		return usagef("-comma must be a single character other than a quote or line break, got %q", cfg.Comma)
	case !tabular.ValidEncoding(cfg.Encoding):
		return usagef("-encoding must be utf-8, latin1 or windows-1252, got %q", cfg.Encoding)
	}
	streamFormat, err := oneOf("format", c.String("format"), tabular.FormatNames()...)
	if err != nil {
		return err
	}

	opts := annotate.FileOptions{
		Options: annotate.Options{
			NameColumn: cfg.NameColumn,
			CodeColumn: cfg.CodeColumn,
		},
		Table: tabular.Options{
			Comma:    cfg.CommaRune(),
			Encoding: cfg.Encoding,
			Sheet:    cfg.Sheet,
		},
	}

	var res annotate.Result
	dest := c.String("o")
	if input != stdio && dest != stdio {
		if dest == "" {
			dest = annotate.OutputPath(input)
		}
		res, err = annotate.File(ctx, input, dest, opts)
	} else {
		if dest == "" {
			dest = stdio
		}
		res, err = a.stream(ctx, input, dest, streamFormat, opts)
	}
	if err != nil {
		return err
	}

	a.summarize(res, dest)

	if cfg.Strict {
		return res.Check()
	}
	return nil
}

// stream annotates when either end is stdin or stdout. Output is buffered so
// nothing is written unless annotation succeeds.
func (a *App) stream(ctx context.Context, input, output, streamFormat string, opts annotate.FileOptions) (annotate.Result, error) {
	in, _ := tabular.Get(streamFormat)
	out := in

	var err error
	if input != stdio {
		if in, err = tabular.ForPath(input); err != nil {
			return annotate.Result{}, err
		}
	}
	if output != stdio {
		if out, err = tabular.ForPath(output); err != nil {
			return annotate.Result{}, err
		}
	}

	var r io.Reader = a.Stdin
	if input != stdio {
		f, err := os.Open(input)
		if err != nil {
			return annotate.Result{}, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var buf bytes.Buffer
	res, err := annotate.Stream(ctx, r, &buf, in, out, opts)
	if err != nil {
		return annotate.Result{}, err
	}

	if output == stdio {
		if _, err := buf.WriteTo(a.Stdout); err != nil {
			return annotate.Result{}, fmt.Errorf("write output: %w", err)
		}
		return res, nil
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return annotate.Result{}, fmt.Errorf("write output: %w", err)
	}
	return res, nil
}

// summarize reports annotation counts on stderr, leaving stdout to the data.
func (a *App) summarize(res annotate.Result, dest string) {
	target := dest
	if dest == stdio {
		target = "stdout"
	}
	fmt.Fprintf(a.Stderr, "annotated %d rows: %d resolved, %d missing -> %s\n",
		res.Rows, res.Resolved, res.Missing, target)
	if len(res.Unresolved) > 0 {
		fmt.Fprintf(a.Stderr, "unresolved: %s\n", strings.Join(res.Unresolved, ", "))
	}
}
