package container

import (
	"context"
	"fmt"
	"os/exec"
	"os/user"
	"runtime"
)

// UserArgs returns ["--user", "uid:gid"] on POSIX platforms so that files a
// container writes into a bind-mounted workspace end up owned by the
// invoking user rather than root. It returns nil on platforms without a
// POSIX uid/gid model.
func UserArgs() []string {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		return nil
	}
	u, err := user.Current()
	if err != nil {
		return nil
	}
	return []string{"--user", fmt.Sprintf("%s:%s", u.Uid, u.Gid)}
}

// Preflight checks that the named container engine is installed and its
// daemon is reachable. It is CLI convenience only; the scheduler never
// calls it.
func Preflight(ctx context.Context, engine string) error {
	if engine == "" {
		engine = defaultEngine
	}
	c := exec.CommandContext(ctx, engine, "version", "--format", "{{.Server.Version}}")
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s is not available — is it installed and running? %w", engine, err)
	}
	return nil
}
