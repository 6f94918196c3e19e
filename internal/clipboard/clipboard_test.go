package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"style-watcher/pkg/logger"
)

type memClipboard struct {
	text     string
	readErr  error
	writeErr error
	writes   int
}

func (m *memClipboard) ReadText(ctx context.Context) (string, error) {
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.text, nil
}

func (m *memClipboard) WriteText(ctx context.Context, text string) error {
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.text = text
	return nil
}

func TestWithSnapshotRestores(t *testing.T) {
	ctx := context.Background()
	cb := &memClipboard{text: "user data"}

	err := WithSnapshot(ctx, cb, logger.Nop(), func(*Snapshot) error {
		cb.text = "copied selection"
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "user data", cb.text)
}

func TestWithSnapshotRestoresOnError(t *testing.T) {
	ctx := context.Background()
	cb := &memClipboard{text: "user data"}
	boom := errors.New("copy failed")

	err := WithSnapshot(ctx, cb, logger.Nop(), func(*Snapshot) error {
		cb.text = "half written"
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "user data", cb.text)
}

func TestWithSnapshotRestoresOnPanic(t *testing.T) {
	ctx := context.Background()
	cb := &memClipboard{text: "user data"}

	assert.PanicsWithValue(t, "boom", func() {
		_ = WithSnapshot(ctx, cb, logger.Nop(), func(*Snapshot) error {
			cb.text = "copied"
			panic("boom")
		})
	})
	assert.Equal(t, "user data", cb.text)
}

func TestWithSnapshotRestoresEmptyClipboard(t *testing.T) {
	cb := &memClipboard{}

	_ = WithSnapshot(context.Background(), cb, logger.Nop(), func(*Snapshot) error {
		cb.text = "copied"
		return nil
	})

	assert.Equal(t, "", cb.text)
}

func TestRestoreAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := &memClipboard{text: "user data"}

	snap := Acquire(ctx, cb, logger.Nop())
	cb.text = "copied"
	cancel()
	snap.Restore(ctx)

	assert.Equal(t, "user data", cb.text)
}

func TestFailedReadSkipsRestore(t *testing.T) {
	cb := &memClipboard{readErr: errors.New("no display")}

	snap := Acquire(context.Background(), cb, logger.Nop())
	snap.Restore(context.Background())

	assert.Zero(t, cb.writes)
}

func TestFailedRestoreIsSwallowed(t *testing.T) {
	cb := &memClipboard{text: "x", writeErr: errors.New("locked")}

	assert.NotPanics(t, func() {
		Acquire(context.Background(), cb, logger.Nop()).Restore(context.Background())
	})
	assert.Equal(t, 1, cb.writes)

	var nilSnap *Snapshot
	assert.NotPanics(t, func() { nilSnap.Restore(context.Background()) })
}

func TestSnapshotValid(t *testing.T) {
	ctx := context.Background()

	assert.True(t, Acquire(ctx, &memClipboard{text: "x"}, logger.Nop()).Valid())
	assert.True(t, Acquire(ctx, &memClipboard{}, logger.Nop()).Valid())
	assert.False(t, Acquire(ctx, &memClipboard{readErr: errors.New("image")}, logger.Nop()).Valid())

	var nilSnap *Snapshot
	assert.False(t, nilSnap.Valid())
}
