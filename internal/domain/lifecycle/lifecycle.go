// Package lifecycle holds shared process-lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown work (DB pings, server drain).
const DefaultTimeout = 10 * time.Second
