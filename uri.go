package linkml

import (
	"net/url"
	"strings"
)

// wellKnownSchemes are colon forms that are URIs rather than CURIEs even
// when their leading segment is not a bound prefix.
var wellKnownSchemes = map[string]bool{
	"http": true, "https": true, "ftp": true, "file": true,
	"urn": true, "mailto": true, "doi": true,
}

// isAbsoluteURI reports whether urlStr parses with a URI scheme. Note a
// CURIE's prefix also parses as a scheme, so callers must consult the
// prefix map before trusting this.
func isAbsoluteURI(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != ""
}

// splitCURIE splits "prefix:local" into its two parts. A string with no
// colon, an empty prefix component, or an authority form ("://") is not
// a CURIE.
func splitCURIE(s string) (prefix, local string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return "", "", false
	}
	if strings.HasPrefix(s[i+1:], "//") {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// expandURI expands name against a unioned prefix map, applying LinkML's
// pop_uri_on_no_prefix rule: absolute URIs are kept; CURIEs expand via
// prefixes; bare names become "defaultPrefix:name". The prefix map
// decides whether a colon form is a CURIE: a bound prefix expands, an
// unbound one that names a well-known URI scheme passes through
// unchanged, and anything else fails ErrUnresolvedPrefix.
func expandURI(name, defaultPrefix string, prefixes map[string]string) (string, error) {
	if name == "" {
		return "", nil
	}
	if prefix, local, ok := splitCURIE(name); ok {
		if base, known := prefixes[prefix]; known {
			return base + local, nil
		}
		if wellKnownSchemes[prefix] {
			return name, nil
		}
		return "", wrapf(ErrUnresolvedPrefix, "prefix %q in %q", prefix, name)
	}
	if isAbsoluteURI(name) {
		return name, nil
	}
	if defaultPrefix == "" {
		return name, nil
	}
	base, known := prefixes[defaultPrefix]
	if !known {
		return defaultPrefix + ":" + name, nil
	}
	return base + name, nil
}

// unionPrefixes merges importer and imported prefix maps, importer wins.
func unionPrefixes(importer, imported map[string]string) map[string]string {
	out := make(map[string]string, len(importer)+len(imported))
	for k, v := range imported {
		out[k] = v
	}
	for k, v := range importer {
		out[k] = v
	}
	return out
}
