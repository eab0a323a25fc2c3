package annotate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/provcodes/internal/logging"
	"github.com/JonMunkholm/provcodes/internal/tabular"
)

// outputSuffix is appended to the input's base name when no output path is
// given.
const outputSuffix = "_con_codigos"

// FileOptions configures file annotation.
type FileOptions struct {
	Options
	Table tabular.Options
}

// OutputPath returns the default output path for src:
// "encuesta.csv" -> "encuesta_con_codigos.csv".
func OutputPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + outputSuffix + ext
}

// Stream reads a table in format in from r, annotates it and writes it in
// format out to w.
func Stream(ctx context.Context, r io.Reader, w io.Writer, in, out tabular.Format, opts FileOptions) (Result, error) {
	tbl, err := in.Read(r, opts.Table)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", in.Name, err)
	}

	res, err := AddCodeColumn(ctx, tbl, opts.Options)
	if err != nil {
		return Result{}, err
	}

	if err := out.Write(w, tbl, opts.Table); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", out.Name, err)
	}
	return res, nil
}

// File annotates the table at src and writes it to dst. An empty dst selects
// OutputPath(src). Formats are chosen by file extension, so a CSV input can
// be written as XLSX and vice versa.
//
// The whole input is read before dst is created, so dst may equal src.
// A partially written dst is removed on error.
func File(ctx context.Context, src, dst string, opts FileOptions) (Result, error) {
	if dst == "" {
		dst = OutputPath(src)
	}

	in, err := tabular.ForPath(src)
	if err != nil {
		return Result{}, err
	}
	out, err := tabular.ForPath(dst)
	if err != nil {
		return Result{}, err
	}

	logger := logging.WithFields(ctx, "input", src, "output", dst)
	logger.Debug("annotation started", "input_format", in.Name, "output_format", out.Name)

	tbl, err := readFile(src, in, opts.Table)
	if err != nil {
		return Result{}, err
	}

	res, err := AddCodeColumn(ctx, tbl, opts.Options)
	if err != nil {
		return Result{}, err
	}

	if err := writeFile(dst, out, tbl, opts.Table); err != nil {
		return Result{}, err
	}

	logger.Info("annotated file",
		"rows", res.Rows,
		"resolved", res.Resolved,
		"missing", res.Missing,
	)
	return res, nil
}

func readFile(path string, format tabular.Format, opts tabular.Options) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	tbl, err := format.Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return tbl, nil
}

func writeFile(path string, format tabular.Format, tbl *tabular.Table, opts tabular.Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
		if err != nil {
			err = errors.Join(err, removeIfExists(path))
		}
	}()

	if err := format.Write(f, tbl, opts); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove partial output: %w", err)
	}
	return nil
}
