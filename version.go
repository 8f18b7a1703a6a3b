// Package tinderbox holds shared metadata for the tinderbox CLI.
package tinderbox

// Version is the current tinderbox release version.
const Version = "0.3.0"
