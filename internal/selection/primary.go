package selection

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w (%s)", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// PrimarySource reads the desktop's PRIMARY selection, which always holds
// the active text selection and never touches the clipboard.
type PrimarySource struct {
	wayland bool
	run     runFunc
}

func NewPrimarySource(wayland bool) *PrimarySource {
	return &PrimarySource{wayland: wayland, run: runCommand}
}

func (s *PrimarySource) Name() string {
	if s.wayland {
		return "primary(wl-paste)"
	}
	return "primary(xclip)"
}

func (s *PrimarySource) Selection(ctx context.Context) (string, error) {
	var (
		out []byte
		err error
	)
	if s.wayland {
		out, err = s.run(ctx, "wl-paste", "--primary", "--no-newline", "--type", "text")
	} else {
		out, err = s.run(ctx, "xclip", "-o", "-selection", "primary")
	}
	if err != nil {
		return "", err
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return "", ErrNoSelection
	}
	return string(out), nil
}

// Available reports whether the helper binary is installed.
func (s *PrimarySource) Available() bool {
	name := "xclip"
	if s.wayland {
		name = "wl-paste"
	}
	_, err := exec.LookPath(name)
	return err == nil
}
