// Package weburl parses, resolves, and compares the URLs a tab loads and
// navigates to. It is a deliberately narrow implementation of the scheme
// the browser actually needs (http/https/file/data), not a general-purpose
// URL library.
package weburl

import (
	"fmt"
	"strings"
)

// URL is a parsed scheme://host[:port]/path[?query] reference, or a file/
// data URL carrying its payload directly.
type URL struct {
	Scheme string
	Host   string
	Port   int
	Path   string

	// FilePath holds the local filesystem path for scheme "file".
	FilePath string

	// DataBody and DataMediaType hold the decoded payload for scheme "data".
	DataMediaType string
	DataBody      string
}

// defaultPort returns the default port for a scheme, or 0 if there is none.
func defaultPort(scheme string) int {
	switch scheme {
	case "http":
		return 80
	case "https":
		return 443
	}
	return 0
}

// Parse parses an absolute URL string.
func Parse(raw string) (URL, error) {
	if strings.HasPrefix(raw, "data:") {
		return parseData(raw)
	}
	if strings.HasPrefix(raw, "file://") {
		return URL{Scheme: "file", FilePath: strings.TrimPrefix(raw, "file://")}, nil
	}

	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return URL{}, fmt.Errorf("weburl: missing scheme in %q", raw)
	}
	scheme = strings.ToLower(scheme)
	if scheme != "http" && scheme != "https" {
		return URL{}, fmt.Errorf("weburl: unsupported scheme %q", scheme)
	}

	hostPart, path, ok := strings.Cut(rest, "/")
	if !ok {
		hostPart, path = rest, ""
	}
	path = "/" + path

	host := hostPart
	port := defaultPort(scheme)
	if h, p, ok := strings.Cut(hostPart, ":"); ok {
		host = h
		var parsedPort int
		if _, err := fmt.Sscanf(p, "%d", &parsedPort); err != nil {
			return URL{}, fmt.Errorf("weburl: bad port in %q: %w", raw, err)
		}
		port = parsedPort
	}

	return URL{Scheme: scheme, Host: host, Port: port, Path: path}, nil
}

func parseData(raw string) (URL, error) {
	rest := strings.TrimPrefix(raw, "data:")
	meta, body, ok := strings.Cut(rest, ",")
	if !ok {
		return URL{}, fmt.Errorf("weburl: malformed data url %q", raw)
	}
	return URL{Scheme: "data", DataMediaType: meta, DataBody: body}, nil
}

// String renders the URL back to its canonical textual form.
func (u URL) String() string {
	switch u.Scheme {
	case "file":
		return "file://" + u.FilePath
	case "data":
		return "data:" + u.DataMediaType + "," + u.DataBody
	default:
		if u.Port == defaultPort(u.Scheme) {
			return fmt.Sprintf("%s://%s%s", u.Scheme, u.Host, u.Path)
		}
		return fmt.Sprintf("%s://%s:%d%s", u.Scheme, u.Host, u.Port, u.Path)
	}
}

// Origin returns the (scheme, host, port) triple as a single comparable
// string, used to gate CSP checks and cross-origin XHR (spec §6).
func (u URL) Origin() string {
	return fmt.Sprintf("%s://%s:%d", u.Scheme, u.Host, u.Port)
}

// Resolve resolves a possibly-relative reference against this URL,
// supporting absolute ("scheme://..."), scheme-relative ("//host/path"),
// path-relative ("foo.html"), and "../" segments.
func (u URL) Resolve(ref string) (URL, error) {
	if strings.Contains(ref, "://") {
		return Parse(ref)
	}
	if strings.HasPrefix(ref, "//") {
		return Parse(u.Scheme + ":" + ref)
	}
	if u.Scheme == "file" || u.Scheme == "data" {
		return URL{}, fmt.Errorf("weburl: cannot resolve %q against %s url", ref, u.Scheme)
	}

	resolved := u
	resolved.Path = ""

	if !strings.HasPrefix(ref, "/") {
		dir := u.Path
		if idx := strings.LastIndex(dir, "/"); idx >= 0 {
			dir = dir[:idx+1]
		} else {
			dir = "/"
		}
		ref = dir + ref
	}

	segments := strings.Split(ref, "/")
	var out []string
	for _, seg := range segments {
		switch seg {
		case "", ".":
			// drop empty/current segments, rejoin below
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	resolved.Path = "/" + strings.Join(out, "/")
	return resolved, nil
}
