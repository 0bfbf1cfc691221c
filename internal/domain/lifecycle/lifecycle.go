// Package lifecycle holds shared limits for fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop hook, such as a database ping
// or an HTTP server shutdown.
const DefaultTimeout = 10 * time.Second
