package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/provcodes/internal/logging"
	"github.com/JonMunkholm/provcodes/internal/provincia"
)

const listHeading = "Códigos de Provincias Argentinas:"

func (a *App) runList(_ context.Context, c *cli.Context) error {
	if c.NArg() > 0 {
		return usagef("unexpected argument %q", c.Args().First())
	}

	f, err := oneOf("format", c.String("format"), "text", "json", "yaml")
	if err != nil {
		return err
	}

	switch f {
	case "json":
		enc := json.NewEncoder(a.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(provincia.All()); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil

	case "yaml":
		enc := yaml.NewEncoder(a.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(provincia.All()); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	}

	fmt.Fprintln(a.Stdout, listHeading)
	fmt.Fprintln(a.Stdout, strings.Repeat("-", 40))
	return provincia.WriteList(a.Stdout)
}

func (a *App) runCode(ctx context.Context, c *cli.Context) error {
	if c.NArg() == 0 {
		return usagef("missing province name")
	}

	logger := logging.FromContext(ctx)
	for _, name := range c.Args() {
		code, ok := provincia.CodeOf(name)
		if !ok {
			logger.Debug("unresolved province", "value", name, "normalized", provincia.Normalize(name))
			code = notAvailable
		}
		fmt.Fprintf(a.Stdout, "%s -> %s\n", name, code)
	}
	return nil
}

func (a *App) runName(ctx context.Context, c *cli.Context) error {
	if c.NArg() == 0 {
		return usagef("missing province code")
	}

	for _, code := range c.Args() {
		name, ok := provincia.NameOf(code)
		if !ok {
			logging.FromContext(ctx).Debug("unknown province code", "value", code)
			name = notAvailable
		}
		fmt.Fprintf(a.Stdout, "%s -> %s\n", code, name)
	}
	return nil
}
