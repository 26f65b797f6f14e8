package main

import (
	"slices"
	"strings"

	"sshpass/pkg/define"
)

// valueFlags take their value from the next argument unless given as
// -flag=value.
var valueFlags = []string{
	define.FlagFile, "f",
	define.FlagFD, "d",
	define.FlagPassword, "p",
	define.FlagPrompt, "P",
	define.FlagConfig, "c",
}

// terminateOptions inserts "--" before the first argument that is not an
// option of ours, so the wrapped command keeps its own flags. Strings are
// not copied: argv scrubbing relies on the values still pointing into the
// process arguments.
func terminateOptions(args []string) []string {
	if len(args) == 0 {
		return args
	}

	i := 1
	for i < len(args) {
		arg := args[i]
		if arg == "--" {
			return args
		}
		if len(arg) < 2 || arg[0] != '-' {
			break
		}

		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			i++
			continue
		}
		if slices.Contains(valueFlags, name) {
			i += 2
			continue
		}
		i++
	}

	if i >= len(args) {
		return args
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, args[:i]...)
	out = append(out, "--")
	return append(out, args[i:]...)
}
