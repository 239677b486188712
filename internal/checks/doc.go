// Package checks contains the built-in configuration health checks.
//
// Each check covers one aspect of deploy readiness: build settings, lock
// file hygiene, service configuration, environment and secret hygiene, and
// repository sync state. Checks read the snapshot for project facts; the
// two tool probes additionally invoke the local toolchain under the run's
// context deadline.
package checks
