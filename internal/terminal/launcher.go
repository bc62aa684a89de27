// Package terminal starts the external terminal emulator at most once per process.
package terminal

import (
	"os/exec"
	"strings"

	"flutteredit/internal/errors"
	"flutteredit/internal/log"
)

// State of the launch guard.
type State int

const (
	NotStarted State = iota
	Started
	Failed // last attempt failed; the next Launch retries
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Started:
		return "started"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Spawner is the OS process collaborator.
type Spawner interface {
	Spawn(name string, args ...string) error
}

// Launcher guards a single successful spawn of the terminal command.
type Launcher struct {
	spawner Spawner
	command string
	args    []string
	state   State
}

// NewLauncher creates a Launcher for command.
func NewLauncher(spawner Spawner, command string, args ...string) *Launcher {
	return &Launcher{spawner: spawner, command: command, args: args}
}

// State returns the current guard state.
func (l *Launcher) State() State {
	return l.state
}

// Command returns the command line the launcher runs.
func (l *Launcher) Command() string {
	return strings.TrimSpace(l.command + " " + strings.Join(l.args, " "))
}

// Launch spawns the terminal unless it already started. After the first success it
// is a no-op for the rest of the process lifetime.
func (l *Launcher) Launch() error {
	if l.state == Started {
		log.Debug("terminal already started")
		return nil
	}

	if err := l.spawner.Spawn(l.command, l.args...); err != nil {
		l.state = Failed
		return errors.NewSpawnError(l.command, err)
	}

	l.state = Started
	log.LogWithFields(log.F("command", l.Command())).Info("terminal started")
	return nil
}

// ExecSpawner starts programs with os/exec without waiting for them.
type ExecSpawner struct{}

// Spawn starts name and logs its exit from a background goroutine.
func (ExecSpawner) Spawn(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		err := cmd.Wait()
		fields := []log.Field{log.F("command", name), log.F("pid", cmd.Process.Pid)}
		if err != nil {
			log.LogWithFields(fields...).WithError(err).Warn("terminal exited with error")
			return
		}
		log.LogWithFields(fields...).Debug("terminal exited")
	}()
	return nil
}
