// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/html2md/internal/store"
	"github.com/pdiddy/html2md/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search clipped pages",
	Long: `Search runs a full-text query over the clip index and lists matches
newest first. Without a query it lists the most recent clips.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, "index-db", "max-results")
	},
	RunE: runSearch,
}

var searchExportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export the clip index to YAML or JSON on stdout",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, "index-db")
	},
	RunE: runSearchExport,
}

var searchSectionCmd = &cobra.Command{
	Use:   "section <url> <heading>",
	Short: "Print one section of a clipped page",
	Args:  cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, "index-db")
	},
	RunE: runSearchSection,
}

func openStore() (*store.Store, error) {
	cfg := loadConfig().Clip
	return store.Open(cfg.IndexDB, cfg.MaxResults)
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	return store.QueryOptions{
		Query:      strings.Join(args, " "),
		Status:     types.ClipStatus(status),
		MaxResults: limit,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	results, err := st.Search(cmd.Context(), queryOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatSearchOutput(w io.Writer, results []store.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-15s  %-40s  %s\n", "Rank", "Name", "Title", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i, r := range results {
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-15s  %-40s  %s\n", i+1, r.Name, title, r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(w, "      %s\n", strings.ReplaceAll(r.Snippet, "\n", " "))
		}
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

func runSearchExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	opts := queryOptsFromFlags(cmd, args)
	switch format {
	case "yaml", "":
		return st.ExportYAML(cmd.Context(), cmd.OutOrStdout(), opts)
	case "json":
		return st.ExportJSON(cmd.Context(), cmd.OutOrStdout(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

func runSearchSection(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	text, err := st.Section(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func init() {
	searchCmd.PersistentFlags().String("index-db", "", "SQLite clip index (default clips/index/clips.db)")
	searchCmd.Flags().Int("max-results", 0, "default result limit (default 20)")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use max-results)")
	searchCmd.Flags().String("status", "", "filter by status: clipped, failed")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	searchExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	searchExportCmd.Flags().String("status", "", "filter by status for partial export")
	searchExportCmd.Flags().Int("limit", 0, "maximum clips to export (0 = all)")

	searchCmd.AddCommand(searchExportCmd)
	searchCmd.AddCommand(searchSectionCmd)
	rootCmd.AddCommand(searchCmd)
}
