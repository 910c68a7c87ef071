// Package preflight validates the runtime environment before the service
// accepts work: directory access, disk headroom, API reachability, and
// optional external tools.
package preflight
