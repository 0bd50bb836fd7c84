package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/html2md/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve conversions over HTTP",
	Long: `Serve listens for POST /v1/convert with an HTML body and answers with
Markdown. Query parameters: base_url for link resolution and the source key,
and repeated key parameters selecting front-matter keys. GET /healthz reports
liveness and GET /metrics exposes Prometheus metrics.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, "listen", "max-body-bytes")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		s := server.New(cfg.Server, cfg.Convert.FrontMatter, cmd.ErrOrStderr())
		return s.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (default :8080)")
	serveCmd.Flags().Int64("max-body-bytes", 0, "request body limit (default 10 MiB)")

	rootCmd.AddCommand(serveCmd)
}
