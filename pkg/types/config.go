package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "html2md/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ConvertConfig holds settings for HTML-to-Markdown conversion.
type ConvertConfig struct {
	// FrontMatter lists the front-matter keys to extract, in output order.
	FrontMatter []string `json:"frontmatter" yaml:"frontmatter" mapstructure:"frontmatter"`

	// OutDir is the directory for converted files. Empty means stdout.
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir"`

	// Workers bounds concurrent file conversions (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// ClipConfig holds settings for the clip stage.
type ClipConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// VaultDir is the directory clipped notes are written to.
	VaultDir string `json:"vault_dir" yaml:"vault_dir" mapstructure:"vault_dir"`

	// MessagesDir is the directory plain (non-command) messages are
	// written to.
	MessagesDir string `json:"messages_dir" yaml:"messages_dir" mapstructure:"messages_dir"`

	// IndexDB is the SQLite clip index path.
	IndexDB string `json:"index_db" yaml:"index_db" mapstructure:"index_db"`

	// TimezoneOffset is the UTC offset used for clip file names (e.g. "+09:00").
	TimezoneOffset string `json:"timezone_offset" yaml:"timezone_offset" mapstructure:"timezone_offset"`

	// FetchDelay is the delay between consecutive fetches (default 1s).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay" mapstructure:"fetch_delay"`

	// MaxResults bounds search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ServerConfig holds settings for the HTTP conversion endpoint.
type ServerConfig struct {
	// Listen is the address the server binds (default ":8080").
	Listen string `json:"listen" yaml:"listen" mapstructure:"listen"`

	// MaxBodyBytes caps the request body size (default 10 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// AppConfig groups all stage configurations.
type AppConfig struct {
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Clip    ClipConfig    `json:"clip" yaml:"clip" mapstructure:"clip"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}
