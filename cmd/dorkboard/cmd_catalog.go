package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dorkboard/internal/adapter/catalog"
	"dorkboard/internal/domain"
	"dorkboard/internal/usecase"
)

func newCatalogCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect, export or validate dork catalogs",
	}
	cmd.AddCommand(
		newCatalogListCmd(flags),
		newCatalogValidateCmd(),
		newCatalogExportCmd(),
	)
	return cmd
}

func newCatalogListCmd(flags *rootFlags) *cobra.Command {
	var (
		format  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the active catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.close()

			cats := a.catalog.Categories()
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(out, cats)
			case "yaml":
				return writeYAML(out, map[string][]domain.Category{"categories": cats})
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			if verbose {
				fmt.Fprintln(tw, "CATEGORY\tDORK\tLABEL\tOPERATORS")
				for _, c := range cats {
					for _, d := range c.Dorks {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, d.ID, d.Label, operatorTokens(d.Template))
					}
				}
			} else {
				fmt.Fprintln(tw, "ID\tNAME\tDORKS")
				for _, c := range cats {
					fmt.Fprintf(tw, "%s\t%s\t%d\n", c.ID, c.Name, len(c.Dorks))
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every dork with its operators")
	return cmd
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a catalog file against the schema and ID rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d categories, %d dorks)\n",
				args[0], cat.CategoryCount(), cat.DorkCount())
			return nil
		},
	}
}

func newCatalogExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the built-in catalog as YAML, a starting point for catalog.path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(catalog.DefaultYAML())
			return err
		},
	}
}

func operatorTokens(template string) string {
	var tokens []string
	for _, op := range usecase.Explain(template) {
		tokens = append(tokens, op.Token)
	}
	return strings.Join(tokens, ", ")
}
