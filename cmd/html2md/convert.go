package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/html2md/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert local HTML files to Markdown",
	Long: `Convert reads HTML files (or stdin when no file or "-" is given) and
renders each as Markdown with a front-matter block. With --out-dir each file
is written to <out-dir>/<name>.md and existing outputs are skipped; otherwise
the Markdown goes to stdout.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, "out-dir", "workers")
	},
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("base-url", "", "https base URL for resolving relative links (also the source key)")
	convertCmd.Flags().String("out-dir", "", "directory for converted files (default: stdout)")
	convertCmd.Flags().Int("workers", 0, "concurrent conversions (default 1)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig().Convert
	baseURL, _ := cmd.Flags().GetString("base-url")
	if len(args) == 0 {
		args = []string{"-"}
	}

	c := convert.FileConverter{
		BaseURL:     baseURL,
		FrontMatter: cfg.FrontMatter,
		Stdin:       cmd.InOrStdin(),
	}

	if cfg.OutDir == "" {
		for _, path := range args {
			md, err := c.Convert(path)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
		}
		return nil
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", cfg.OutDir, err)
	}
	result := convert.ConvertPaths(c, args, cfg.OutDir, cfg.Workers, cmd.OutOrStdout())
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}
