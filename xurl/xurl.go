// Package xurl extends Go's net/url with an immutable URL value that tolerates
// relative and protocol-less input like "google.com" or "my_file.pdf".
package xurl

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// URL is an immutable URL value around its raw string.
// The zero value is an empty URL.
type URL struct {
	raw string
}

// Extensions recognized by [URL.IsImage] and [URL.IsHTML].
var (
	ImageExtensions = []string{"gif", "ico", "jpeg", "jpg", "png"}
	HTMLExtensions  = []string{"html", "htm"}
)

var protocolRe = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.\-]*)://`)

// New creates a [URL] from raw, replacing its query string with query if query is not empty.
func New(raw string, query url.Values) URL {
	return URL{raw}.WithQuery(query)
}

// FromSearch creates a [URL] with only a query string, like "?foo=unicorn".
func FromSearch(search string) URL {
	return URL{}.WithSearch(search)
}

// WithQuery returns u with its query string replaced by the encoded query.
// Keys are sorted. An empty query keeps u unchanged.
func (u URL) WithQuery(query url.Values) URL {
	search := query.Encode()
	if search == "" {
		return u
	}
	return URL{u.Path() + "?" + search}
}

// WithSearch is like [URL.WithQuery] with a raw query string like "foo=unicorn&ilike=pizza".
// Malformed pairs are dropped.
func (u URL) WithSearch(search string) URL {
	query, _ := url.ParseQuery(strings.TrimPrefix(search, "?"))
	return u.WithQuery(query)
}

// String returns u as an absolute URL, see [URL.AsAbsolute].
func (u URL) String() string {
	return u.AsAbsolute()
}

// AsAbsolute returns the absolute form of u, assuming http if u has no protocol.
func (u URL) AsAbsolute() string {
	if u.IsAbsolute() {
		return u.parsed().String()
	}
	return "http://" + u.raw
}

// AsRelative returns u without protocol and host if it is absolute, unchanged otherwise.
func (u URL) AsRelative() string {
	if u.IsAbsolute() {
		return u.WithoutHostname()
	}
	return u.raw
}

// IsValid returns true if u is a web URI: http or https with a host.
func (u URL) IsValid() bool {
	p, err := url.Parse(u.raw)
	if err != nil {
		return false
	}
	return (p.Scheme == "http" || p.Scheme == "https") && p.Host != ""
}

// HasURL returns true if u is not empty.
func (u URL) HasURL() bool {
	return u.raw != ""
}

// Path returns the raw URL without the query string.
func (u URL) Path() string {
	path, _, _ := strings.Cut(u.raw, "?")
	return path
}

// Pathname returns the path component of u, "/" if it has none.
func (u URL) Pathname() string {
	path := u.parsed().Path
	if path == "" {
		return "/"
	}
	return path
}

// PathWithoutHost returns [URL.Pathname] without its leading slash.
func (u URL) PathWithoutHost() string {
	return strings.Replace(u.Pathname(), "/", "", 1)
}

// SplitPath returns the segments of [URL.PathWithoutHost].
func (u URL) SplitPath() []string {
	return strings.Split(u.PathWithoutHost(), "/")
}

// HasSearch returns true if u has a query string.
func (u URL) HasSearch() bool {
	return u.Search() != ""
}

// Search returns the query string, "google.com?foo=unicorn&ilike=pizza" has "foo=unicorn&ilike=pizza".
func (u URL) Search() string {
	_, search, _ := strings.Cut(u.raw, "?")
	return search
}

// Query returns the parsed query string.
func (u URL) Query() url.Values {
	query, _ := url.ParseQuery(u.Search())
	return query
}

// Protocol returns the scheme of u without the separator, like "https".
// It is empty when u has no "scheme://" prefix.
func (u URL) Protocol() string {
	m := protocolRe.FindStringSubmatch(u.raw)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// HasProtocol returns true if u starts with a protocol.
func (u URL) HasProtocol() bool {
	return u.Protocol() != ""
}

// IsAbsolute returns true if u is not empty and includes its protocol.
func (u URL) IsAbsolute() bool {
	return u.HasURL() && u.HasProtocol()
}

// IsSecure returns true if u is absolute and uses https.
func (u URL) IsSecure() bool {
	return u.IsAbsolute() && u.Protocol() == "https"
}

// WithoutProtocol returns the raw URL without its "scheme://" prefix.
func (u URL) WithoutProtocol() string {
	return protocolRe.ReplaceAllString(u.raw, "")
}

// Hostname returns the host of u without port. Protocol-less URLs are
// read as if they had one, so "www.google.com" has hostname "www.google.com".
func (u URL) Hostname() string {
	return u.parsed().Hostname()
}

// Domain returns the second level domain name, "www.google.com" has "google".
func (u URL) Domain() string {
	parts := strings.Split(u.Hostname(), ".")
	if len(parts) < 2 {
		return parts[0]
	}
	return parts[len(parts)-2]
}

// TLD returns the top level domain, "www.google.com" has "com".
func (u URL) TLD() string {
	parts := strings.Split(u.Hostname(), ".")
	return parts[len(parts)-1]
}

// WithoutHostname returns the path and query string of u.
func (u URL) WithoutHostname() string {
	if u.HasSearch() {
		return u.Pathname() + "?" + u.Search()
	}
	return u.Pathname()
}

// Filename returns the last segment of the raw URL.
func (u URL) Filename() string {
	return u.raw[strings.LastIndex(u.raw, "/")+1:]
}

// SplitFilename returns [URL.Filename] split by periods.
func (u URL) SplitFilename() []string {
	return strings.Split(u.Filename(), ".")
}

// HasExtension returns true if the filename has at least one period.
func (u URL) HasExtension() bool {
	return len(u.SplitFilename()) >= 2
}

// FileBasename returns the filename without its last extension, "a.b.c.xls" has "a.b.c".
func (u URL) FileBasename() string {
	parts := u.SplitFilename()
	if len(parts) >= 2 {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}

// Extension returns the last extension of the filename, empty if there is none.
func (u URL) Extension() string {
	parts := u.SplitFilename()
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-1]
}

// IsImage returns true if the extension is one of [ImageExtensions].
func (u URL) IsImage() bool {
	return slices.Contains(ImageExtensions, u.Extension())
}

// IsHTML returns true if the extension is one of [HTMLExtensions].
func (u URL) IsHTML() bool {
	return slices.Contains(HTMLExtensions, u.Extension())
}

// parsed returns u parsed by net/url, read as http when it has no protocol.
func (u URL) parsed() *url.URL {
	raw := u.raw
	if !u.HasProtocol() {
		raw = "http://" + raw
	}
	p, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return p
}
