//go:build !linux

package system

// ScrubArg is a no-op where the runtime copies argv.
func ScrubArg(string) bool {
	return false
}
