//go:build debug

package diag

import "log"

func trace(format string, args ...interface{}) {
	log.Printf(format, args...)
}
