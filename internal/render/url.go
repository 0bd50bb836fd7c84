// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/html2md/pkg/types"
)

var unsafePrefixes = []string{"http://", "#", "javascript:", "data:", "vbscript:"}

// IsSafeURL reports whether u may appear as a link or image target. Blank
// values, plain http, fragment-only and script-bearing schemes are rejected.
func IsSafeURL(u string) bool {
	u = strings.ToLower(strings.TrimSpace(u))
	if u == "" {
		return false
	}
	for _, p := range unsafePrefixes {
		if strings.HasPrefix(u, p) {
			return false
		}
	}
	return true
}

var schemeRE = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)

// ResolveURL resolves target against base. Targets with a scheme pass
// through and protocol-relative targets get https. The base must be an
// https URL; its query and fragment are ignored, and a last path segment
// containing a dot is treated as a file whose directory is the base.
func ResolveURL(base, target string) (string, error) {
	target = strings.TrimSpace(target)
	if schemeRE.MatchString(target) {
		return target, nil
	}
	if strings.HasPrefix(target, "//") {
		return "https:" + target, nil
	}

	host, dir, err := splitBase(base)
	if err != nil {
		return "", err
	}
	if _, err := url.Parse(target); err != nil {
		return target, nil
	}

	switch {
	case strings.HasPrefix(target, "/"):
		return "https://" + host + target, nil
	case strings.HasPrefix(target, "./"):
		return "https://" + host + dir + strings.TrimPrefix(target, "./"), nil
	case strings.HasPrefix(target, "../"):
		segs := strings.FieldsFunc(dir, func(r rune) bool { return r == '/' })
		rest := target
		for {
			if strings.HasPrefix(rest, "../") {
				rest = rest[3:]
				if len(segs) > 0 {
					segs = segs[:len(segs)-1]
				}
				continue
			}
			if strings.HasPrefix(rest, "./") {
				rest = rest[2:]
				continue
			}
			break
		}
		p := "/"
		if len(segs) > 0 {
			p += strings.Join(segs, "/") + "/"
		}
		return "https://" + host + p + rest, nil
	default:
		return "https://" + host + dir + target, nil
	}
}

// splitBase returns the host and the directory path (always ending in "/")
// of an https base URL.
func splitBase(base string) (host, dir string, err error) {
	clean := strings.TrimSpace(base)
	if i := strings.IndexByte(clean, '#'); i >= 0 {
		clean = clean[:i]
	}
	if i := strings.IndexByte(clean, '?'); i >= 0 {
		clean = clean[:i]
	}
	if !strings.HasPrefix(strings.ToLower(clean), "https://") {
		return "", "", types.NewError(types.KindInvalidURL, "base URL %q is not https", base)
	}
	rest := clean[len("https://"):]
	host, path, _ := strings.Cut(rest, "/")
	if host == "" {
		return "", "", types.NewError(types.KindInvalidURL, "base URL %q has no host", base)
	}
	path = "/" + path

	if i := strings.LastIndexByte(path, '/'); strings.Contains(path[i+1:], ".") {
		path = path[:i+1]
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return host, path, nil
}
