// Package docserver serves the read-only documentation web UI: the agent
// manifest rendered as HTML plus markdown/example/config browsing under
// constrained base directories. It consumes the core only through the
// manifest document, never through memory views, and exposes no mutating
// endpoint.
package docserver
