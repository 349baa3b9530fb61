package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dorkboard/internal/domain"
)

// renderOutput is the document written by render for json and yaml formats.
type renderOutput struct {
	Target     string                    `json:"target" yaml:"target"`
	BaseURL    string                    `json:"base_url" yaml:"base_url"`
	Categories []domain.RenderedCategory `json:"categories" yaml:"categories"`
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var (
		format   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "render <target>",
		Short: "Print every rendered query and search URL for a target",
		Example: `  dorkboard render example.com
  dorkboard render example.com --category files --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			target, err := domain.NormalizeTarget(args[0])
			if err != nil {
				return domain.NewDomainError("render", err, "pass a domain such as example.com")
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()

			var cats []domain.RenderedCategory
			if category != "" {
				c, err := a.catalog.Category(category)
				if err != nil {
					return err
				}
				rc, err := a.renderer.RenderCategory(c, target)
				if err != nil {
					return err
				}
				cats = []domain.RenderedCategory{rc}
			} else {
				cats, err = a.renderer.RenderCatalog(ctx, a.catalog, target)
				if err != nil {
					return err
				}
			}

			return writeRender(cmd.OutOrStdout(), format, renderOutput{
				Target:     target,
				BaseURL:    a.renderer.BaseURL(),
				Categories: cats,
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().StringVarP(&category, "category", "c", "", "render only this category ID")
	return cmd
}

func checkFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	}
	return domain.NewDomainError("format", domain.ErrInvalidInput,
		fmt.Sprintf("unknown format %q (want text, json or yaml)", format))
}

func writeRender(w io.Writer, format string, out renderOutput) error {
	switch format {
	case "json":
		return writeJSON(w, out)
	case "yaml":
		return writeYAML(w, out)
	}

	fmt.Fprintf(w, "Target: %s\n", out.Target)
	for _, cat := range out.Categories {
		fmt.Fprintf(w, "\n== %s (%s) ==\n", cat.Name, cat.ID)
		for _, d := range cat.Dorks {
			fmt.Fprintf(w, "\n%s\n", d.Label)
			fmt.Fprintf(w, "  query: %s\n", d.Query)
			fmt.Fprintf(w, "  url:   %s\n", d.URL)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
