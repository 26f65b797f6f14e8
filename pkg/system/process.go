package system

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/process"
)

// DescribeProcess renders the name and controlling terminal of pid for
// diagnostics. Fields that cannot be read are left empty.
func DescribeProcess(ctx context.Context, pid int) string {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return fmt.Sprintf("pid %d (%v)", pid, err)
	}

	name, _ := p.NameWithContext(ctx)
	tty, _ := p.TerminalWithContext(ctx)

	return fmt.Sprintf("pid %d name %q terminal %q", pid, name, tty)
}
