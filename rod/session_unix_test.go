//go:build integration && !windows

package rod_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/sitechat/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Close_KillsBrowserProcess(t *testing.T) {
	t.Parallel()

	session, err := rod.NewLauncher().Open(context.Background())
	require.NoError(t, err)

	pid := session.(*rod.Session).LauncherPID()
	require.NotZero(t, pid, "launcher PID should be set")

	// Signal 0 checks that the process exists without affecting it.
	err = syscall.Kill(pid, syscall.Signal(0))
	require.NoError(t, err, "browser process should be running before Close()")

	require.NoError(t, session.Close())

	time.Sleep(100 * time.Millisecond)

	err = syscall.Kill(pid, syscall.Signal(0))
	assert.Error(t, err, "browser process should be terminated after Close()")
}
