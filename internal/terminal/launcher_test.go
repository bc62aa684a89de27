package terminal

import (
	"errors"
	"testing"

	apperrors "flutteredit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSpawner struct {
	calls   int
	results []error
	name    string
	args    []string
}

func (s *countingSpawner) Spawn(name string, args ...string) error {
	s.calls++
	s.name, s.args = name, args
	if len(s.results) == 0 {
		return nil
	}
	err := s.results[0]
	s.results = s.results[1:]
	return err
}

func TestLaunchSpawnsExactlyOnce(t *testing.T) {
	spawner := &countingSpawner{}
	l := NewLauncher(spawner, "gnome-terminal")
	assert.Equal(t, NotStarted, l.State())

	require.NoError(t, l.Launch())
	assert.Equal(t, Started, l.State())
	assert.Equal(t, 1, spawner.calls)
	assert.Equal(t, "gnome-terminal", spawner.name)

	for i := 0; i < 5; i++ {
		require.NoError(t, l.Launch())
	}
	assert.Equal(t, 1, spawner.calls)
	assert.Equal(t, Started, l.State())
}

func TestLaunchFailureAllowsRetry(t *testing.T) {
	spawner := &countingSpawner{results: []error{errors.New("not installed"), nil}}
	l := NewLauncher(spawner, "xterm", "-fa", "Monospace")

	err := l.Launch()
	require.Error(t, err)
	var spawnErr *apperrors.SpawnError
	require.ErrorAs(t, err, &spawnErr)
	assert.Equal(t, "xterm", spawnErr.Command())
	assert.Equal(t, apperrors.ProcessSpawnFailed, apperrors.KindOf(err))
	assert.Equal(t, Failed, l.State())

	require.NoError(t, l.Launch())
	assert.Equal(t, Started, l.State())
	assert.Equal(t, 2, spawner.calls)
	assert.Equal(t, []string{"-fa", "Monospace"}, spawner.args)

	require.NoError(t, l.Launch())
	assert.Equal(t, 2, spawner.calls)
}

func TestCommand(t *testing.T) {
	assert.Equal(t, "xterm -e htop", NewLauncher(nil, "xterm", "-e", "htop").Command())
	assert.Equal(t, "konsole", NewLauncher(nil, "konsole").Command())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not started", NotStarted.String())
	assert.Equal(t, "started", Started.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(9).String())
}

func TestExecSpawnerMissingBinary(t *testing.T) {
	err := ExecSpawner{}.Spawn("flutteredit-no-such-terminal-binary")
	assert.Error(t, err)
}
