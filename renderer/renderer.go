// Package renderer converts analytics results into markdown reports.
package renderer

import "time"

// Now is the clock used for report timestamps. Tests override it to get
// stable output.
var Now = time.Now
