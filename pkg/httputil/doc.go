// Package httputil provides response helpers for the dashchart HTTP service.
//
// # Errors
//
// Handlers return structured errors from [github.com/matzehuels/dashchart/pkg/errors].
// [StatusFor] maps their codes to HTTP status codes and [WriteError] renders
// them as a JSON body:
//
//	{"error": "unknown chart \"pie\"", "code": "INVALID_CHART"}
//
// # Conditional requests
//
// Rendered charts are deterministic for a given snapshot and width, so the
// service sends a strong [ETag] and answers If-None-Match with 304:
//
//	tag := httputil.ETag(data)
//	if httputil.NotModified(w, r, tag) {
//	    return
//	}
package httputil
