package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/html2md/internal/clip"
	"github.com/pdiddy/html2md/internal/fetch"
	"github.com/pdiddy/html2md/internal/httputil"
	"github.com/pdiddy/html2md/internal/store"
	"github.com/pdiddy/html2md/pkg/types"
)

var clipCmd = &cobra.Command{
	Use:   "clip [urls...]",
	Short: "Clip web pages into Markdown notes",
	Long: `Clip fetches each URL, converts the page to Markdown, and writes it to
<vault-dir>/<YYYYMMDD_HHMMSS>.md using the clip time in the configured
timezone offset. Every clip is recorded in the SQLite index; URLs already
clipped are skipped.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, "vault-dir", "index-db", "timeout", "fetch-delay", "timezone-offset")
	},
	RunE: runClip,
}

var messageCmd = &cobra.Command{
	Use:   "message [text]",
	Short: "Save a chat-style message as a note",
	Long: `Message saves one message. Text starting with the prefix is a command:
"<prefix>url <address>" clips the page into the vault directory. Any other
text is saved as-is to the messages directory. Notes are named after the
message timestamp (RFC 3339) in the configured timezone offset.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, "vault-dir", "messages-dir", "index-db", "timeout", "timezone-offset")
	},
	RunE: runMessage,
}

func init() {
	for _, c := range []*cobra.Command{clipCmd, messageCmd} {
		c.Flags().String("vault-dir", "", "directory for clipped notes (default clips)")
		c.Flags().String("index-db", "", "SQLite clip index (default clips/index/clips.db)")
		c.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
		c.Flags().String("timezone-offset", "", "UTC offset for note names (default +09:00)")
	}
	clipCmd.Flags().Duration("fetch-delay", 0, "delay between consecutive fetches (default 1s)")

	messageCmd.Flags().String("messages-dir", "", "directory for plain messages (default messages)")
	messageCmd.Flags().String("prefix", "!", "command prefix")
	messageCmd.Flags().String("timestamp", "", "message time in RFC 3339 (default now)")

	rootCmd.AddCommand(clipCmd)
	rootCmd.AddCommand(messageCmd)
}

// newClipper opens the index and builds a Clipper. The caller closes the
// returned store.
func newClipper(cfg types.AppConfig) (*clip.Clipper, *store.Store, error) {
	if _, err := clip.ParseOffset(cfg.Clip.TimezoneOffset); err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.Clip.IndexDB, cfg.Clip.MaxResults)
	if err != nil {
		return nil, nil, err
	}
	httputil.RetryLog = os.Stderr
	return &clip.Clipper{
		Fetcher:     fetch.New(cfg.Clip.HTTPConfig),
		Index:       st,
		Config:      cfg.Clip,
		FrontMatter: cfg.Convert.FrontMatter,
	}, st, nil
}

func runClip(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more URLs to clip")
	}
	c, st, err := newClipper(loadConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	result := c.ClipBatch(cmd.Context(), args, cmd.OutOrStdout())
	if result.HasFailures() {
		return fmt.Errorf("%d URL(s) failed clipping", result.Failed)
	}
	return nil
}

func runMessage(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	prefix, _ := cmd.Flags().GetString("prefix")
	timestamp, _ := cmd.Flags().GetString("timestamp")
	if timestamp == "" {
		timestamp = time.Now().Format(time.RFC3339)
	}

	c, st, err := newClipper(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	res, err := c.ProcessMessage(ctx, args[0], prefix, timestamp)
	if err != nil {
		return err
	}
	if res.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s (already clipped)\n", res.URL)
		return nil
	}

	dir := cfg.Clip.MessagesDir
	if res.IsClip {
		dir = cfg.Clip.VaultDir
	}
	path, name, err := clip.WriteNote(dir, res.Name, res.Markdown)
	if err != nil {
		return err
	}
	if res.IsClip {
		at, _ := time.Parse(time.RFC3339Nano, timestamp)
		rec := types.Clip{
			URL:       res.URL,
			Name:      name,
			Title:     res.Title,
			Path:      path,
			ClippedAt: at,
			Status:    types.ClipDone,
			Markdown:  res.Markdown,
		}
		if err := st.Put(ctx, rec); err != nil {
			return fmt.Errorf("indexing %s: %w", rec.URL, err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved: %s\n", path)
	return nil
}
