// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clip

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnknownCommand is returned for a prefixed message whose command is
	// not recognized.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidURL is returned when a clip target is missing or is not an
	// absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid URL")
)

// nameLayout formats clip file names.
const nameLayout = "20060102_150405"

// DefaultOffset is the UTC offset used for names when none is configured.
const DefaultOffset = "+09:00"

// Result is the outcome of processing one message.
type Result struct {
	// Markdown is the note body: the converted page for clips, the
	// message text otherwise.
	Markdown string
	// IsClip reports whether the message was a url command.
	IsClip bool
	// URL is the clipped address.
	URL string
	// Name is the note name without extension.
	Name string
	// Title is the page title, for clips that have one.
	Title string
	// Skipped reports a url command whose target is already indexed. No
	// page was fetched and Markdown is empty.
	Skipped bool
}

// ValidateURL accepts absolute http and https URLs with a host.
func ValidateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q is not http or https", ErrInvalidURL, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidURL, raw)
	}
	return nil
}

// ParseOffset turns "+09:00", "-0530" or "Z" into a fixed zone. An empty
// offset is DefaultOffset.
func ParseOffset(offset string) (*time.Location, error) {
	if offset == "" {
		offset = DefaultOffset
	}
	if offset == "Z" || offset == "UTC" {
		return time.UTC, nil
	}
	if len(offset) < 3 || (offset[0] != '+' && offset[0] != '-') {
		return nil, fmt.Errorf("invalid timezone offset %q", offset)
	}
	digits := strings.ReplaceAll(offset[1:], ":", "")
	if len(digits) != 2 && len(digits) != 4 {
		return nil, fmt.Errorf("invalid timezone offset %q", offset)
	}
	hours, err := strconv.Atoi(digits[:2])
	if err != nil || hours > 14 {
		return nil, fmt.Errorf("invalid timezone offset %q", offset)
	}
	minutes := 0
	if len(digits) == 4 {
		minutes, err = strconv.Atoi(digits[2:])
		if err != nil || minutes > 59 {
			return nil, fmt.Errorf("invalid timezone offset %q", offset)
		}
	}
	secs := hours*3600 + minutes*60
	if offset[0] == '-' {
		secs = -secs
	}
	return time.FixedZone(offset, secs), nil
}

// FormatName renders an RFC 3339 timestamp as YYYYMMDD_HHMMSS in loc. A
// timestamp that does not parse is returned unchanged.
func FormatName(timestamp string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return timestamp
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(nameLayout)
}

// ProcessMessage handles one chat-style message. Text that does not start
// with prefix is kept as a note named after timestamp. Prefixed text is a
// command of the form "<prefix><command> <arg>"; "url <target>" clips the
// target page unless the index already holds it.
func (c *Clipper) ProcessMessage(ctx context.Context, input, prefix, timestamp string) (Result, error) {
	input = strings.TrimSpace(input)
	prefix = strings.TrimSpace(prefix)
	name := FormatName(timestamp, c.location())

	rest, ok := strings.CutPrefix(input, prefix)
	if prefix == "" || !ok {
		return Result{Markdown: input, Name: name}, nil
	}

	parts := strings.SplitN(strings.TrimLeft(rest, " \t"), " ", 3)
	var arg string
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	switch parts[0] {
	case "url":
		if arg == "" {
			return Result{}, fmt.Errorf("%w: missing url argument", ErrInvalidURL)
		}
		if err := ValidateURL(arg); err != nil {
			return Result{}, err
		}
		if c.Index != nil {
			has, err := c.Index.Has(ctx, arg)
			if err != nil {
				return Result{}, fmt.Errorf("checking index: %w", err)
			}
			if has {
				return Result{IsClip: true, URL: arg, Name: name, Skipped: true}, nil
			}
		}
		md, title, err := c.Fetch(ctx, arg)
		if err != nil {
			return Result{}, err
		}
		return Result{Markdown: md, IsClip: true, URL: arg, Name: name, Title: title}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
}
