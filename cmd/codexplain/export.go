package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/julianshen/codexplain/internal/diagram"
	"github.com/julianshen/codexplain/internal/export"
	"github.com/julianshen/codexplain/internal/logger"
)

func exportCmd() *cobra.Command {
	var (
		formatFlag string
		dirFlag    string
		svgFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Download a tutorial as a markdown site",
		Long: "Fetch a tutorial and write it to disk as plain markdown, a Hugo site or a Docusaurus\n" +
			"site. With --svg each diagram is also rendered to SVG in headless Chrome.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			logger.Initialize(debugFlag, verboseFlag)
			ctx := commandContext(cmd)

			format := cfg.Export.Format
			if cmd.Flags().Changed("format") {
				format = formatFlag
			}
			if !slices.Contains(export.Formats, format) {
				return fmt.Errorf("unknown export format %q (want one of %v)", format, export.Formats)
			}
			dir := cfg.Export.Dir
			if cmd.Flags().Changed("dir") {
				dir = dirFlag
			}

			t, err := newClient(cfg).GetTutorial(ctx, args[0])
			if err != nil {
				return fmt.Errorf("fetching tutorial %s: %w", args[0], err)
			}

			exp := export.NewExporter(format, dir)
			if svgFlag {
				r, err := diagram.NewSVGRenderer(ctx, "", cfg.API.FetchTimeout)
				if err != nil {
					return err
				}
				defer r.Close()
				exp.SVG = r
			}

			out, err := exp.Export(ctx, t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "raw-md", "output format: raw-md, hugo, docusaurus")
	cmd.Flags().StringVar(&dirFlag, "dir", "", "base output directory (default from [export] dir)")
	cmd.Flags().BoolVar(&svgFlag, "svg", false, "render diagrams to SVG with headless Chrome")
	return cmd
}
