package notify

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"style-watcher/pkg/logger"
)

func TestShowUsesCustomCommand(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	out := filepath.Join(t.TempDir(), "notified")
	svc := NewNotifyService(fmt.Sprintf("printf '%%s|%%s' > %s", out), logger.Nop())

	require.NoError(t, svc.Show("it's $HOME; `quoted`", Info))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "INFO|it's $HOME; `quoted`", string(data))
}

func TestShowCustomCommandErrorType(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	out := filepath.Join(t.TempDir(), "notified")
	svc := NewNotifyService(fmt.Sprintf("printf '%%s' > %s", out), logger.Nop())

	require.NoError(t, svc.Show("request failed", Error))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "ERROR", string(data))
}

func TestPrintToTerminalNeverFails(t *testing.T) {
	svc := NewNotifyService("", logger.Nop())
	assert.NoError(t, svc.printToTerminal("StyleWatcher", "hello", Info))
	assert.NoError(t, svc.printToTerminal("StyleWatcher", "oops", Error))
}

type sent struct {
	name string
	args []string
}

func fakeTools(t *testing.T, available ...string) (*NotifyService, *[]sent) {
	t.Helper()
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")

	svc := NewNotifyService("", logger.Nop())
	var calls []sent
	svc.lookPath = func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
	svc.run = func(name string, args ...string) error {
		calls = append(calls, sent{name: name, args: args})
		return nil
	}
	return svc, &calls
}

func TestSystemNotificationUrgencyPerType(t *testing.T) {
	tests := []struct {
		nType   NotificationType
		urgency string
		timeout string
	}{
		{Info, "low", "4000"},
		{Warning, "normal", "8000"},
		{Error, "critical", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.nType.String(), func(t *testing.T) {
			svc, calls := fakeTools(t, "notify-send", "zenity")

			require.NoError(t, svc.trySystemNotification("StyleWatcher", "hello", tt.nType))

			require.Len(t, *calls, 1)
			got := (*calls)[0]
			assert.Equal(t, "/usr/bin/notify-send", got.name)
			assert.Equal(t, []string{"-u", tt.urgency, "-t", tt.timeout, "-a", "StyleWatcher", "StyleWatcher", "hello"}, got.args)
		})
	}
}

func TestSystemNotificationPrefersHyprland(t *testing.T) {
	svc, calls := fakeTools(t, "hyprctl", "notify-send")
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "abc")

	require.NoError(t, svc.trySystemNotification("StyleWatcher", "bind Alt+S", Warning))

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"notify", "0", "8000", "0", "StyleWatcher: bind Alt+S"}, (*calls)[0].args)
}

func TestSystemNotificationSkipsHyprlandOutsideSession(t *testing.T) {
	svc, calls := fakeTools(t, "hyprctl", "zenity")

	require.NoError(t, svc.trySystemNotification("StyleWatcher", "oops", Error))

	require.Len(t, *calls, 1)
	assert.Equal(t, "/usr/bin/zenity", (*calls)[0].name)
	assert.Equal(t, "--error", (*calls)[0].args[0])
}

func TestSystemNotificationDetectsOnce(t *testing.T) {
	svc, _ := fakeTools(t, "dunstify")
	lookups := 0
	look := svc.lookPath
	svc.lookPath = func(name string) (string, error) {
		lookups++
		return look(name)
	}

	require.NoError(t, svc.trySystemNotification("StyleWatcher", "a", Info))
	n := lookups
	require.NoError(t, svc.trySystemNotification("StyleWatcher", "b", Info))

	assert.Equal(t, n, lookups)
}

func TestSystemNotificationWithoutTools(t *testing.T) {
	svc, calls := fakeTools(t)

	assert.Error(t, svc.trySystemNotification("StyleWatcher", "a", Info))
	assert.Empty(t, *calls)
}

func TestNotificationTypeString(t *testing.T) {
	assert.Equal(t, "INFO", Info.String())
	assert.Equal(t, "WARNING", Warning.String())
	assert.Equal(t, "ERROR", Error.String())
}
