package apiroute

import (
	"regexp"
	"strings"
)

// placeholder matches a path segment that is entirely ":name".
var placeholder = regexp.MustCompile(`^:([A-Za-z_][A-Za-z0-9_]*)$`)

// toOpenAPIPath rewrites ":name" segments to "{name}", the form used by
// OpenAPI documents as well as by chi and net/http patterns. A colon inside
// a segment, as in "/files/:name.json", is left as literal text.
func toOpenAPIPath(path string) string {
	segs := strings.Split(path, "/")
	for i, seg := range segs {
		if m := placeholder.FindStringSubmatch(seg); m != nil {
			segs[i] = "{" + m[1] + "}"
		}
	}
	return strings.Join(segs, "/")
}

// pathParams returns the placeholder names of path in order.
func pathParams(path string) []string {
	var names []string
	for _, seg := range strings.Split(path, "/") {
		if m := placeholder.FindStringSubmatch(seg); m != nil {
			names = append(names, m[1])
		}
	}
	return names
}
