//go:build linux

package system

import (
	"os"
	"unsafe"
)

// ScrubArg overwrites value with 'x' bytes when it points into the process
// argument memory, hiding it from /proc/<pid>/cmdline and ps. On Linux the
// runtime builds os.Args without copying argv, so a flag value parsed from
// os.Args shares that memory. The caller must clone value beforehand.
func ScrubArg(value string) bool {
	if value == "" {
		return false
	}

	p := uintptr(unsafe.Pointer(unsafe.StringData(value)))
	end := p + uintptr(len(value))

	for _, arg := range os.Args {
		if arg == "" {
			continue
		}
		start := uintptr(unsafe.Pointer(unsafe.StringData(arg)))
		if p < start || end > start+uintptr(len(arg)) {
			continue
		}

		b := unsafe.Slice(unsafe.StringData(value), len(value))
		for i := range b {
			b[i] = 'x'
		}
		return true
	}

	return false
}
