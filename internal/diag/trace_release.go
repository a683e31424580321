//go:build !debug

package diag

func trace(format string, args ...interface{}) {}
