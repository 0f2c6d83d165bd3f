package services

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os/exec"
	"sync"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/tkrajnik/runkey/internal/models"
	"github.com/tkrajnik/runkey/internal/registry"
	"github.com/tkrajnik/runkey/internal/store"
)

// ExecutorService spawns command scripts, tracks them in the process
// registry, and captures their combined output. It is also the component
// that terminates running instances (see terminator.go).
type ExecutorService struct {
	commands *CommandService
	settings *store.SettingsStore
	registry *registry.Registry
	history  *HistoryService
}

// NewExecutorService creates a new ExecutorService instance.
func NewExecutorService(commands *CommandService, settings *store.SettingsStore, reg *registry.Registry, history *HistoryService) *ExecutorService {
	return &ExecutorService{
		commands: commands,
		settings: settings,
		registry: reg,
		history:  history,
	}
}

// Execute runs the script of the command with the given id and blocks until
// the child process is gone. The safe-mode gate is checked before anything
// is spawned. A command whose previous instance is still alive is rejected
// with ErrAlreadyRunning; a stale registry entry for a dead pid is evicted
// and the claim retried. A non-zero exit code is returned as part of the
// result, not as an error.
func (s *ExecutorService) Execute(id string) (*models.ExecResult, error) {
	settings, err := s.settings.Load()
	if err != nil {
		return nil, err
	}
	if settings.SafeMode {
		return nil, ErrSafeModeBlocked
	}

	cmd, err := s.commands.Get(id)
	if err != nil {
		return nil, err
	}

	// Claim the command before anything is spawned. Reserve either inserts
	// a pending entry atomically or reports the pid already held, so two
	// concurrent Executes can never both pass the gate. A dead leftover pid
	// is evicted and the claim retried; the eviction can lose to another
	// caller, in which case the loop sees that caller's entry next time.
	for {
		cur, ok := s.registry.Reserve(id)
		if ok {
			break
		}
		if cur == registry.PidPending || pidAlive(cur) {
			return nil, ErrAlreadyRunning
		}
		s.registry.Evict(id, cur)
	}

	log.Printf("[executor] running command %q (%s)", cmd.Name, cmd.ID)

	child := exec.Command("sh", "-c", cmd.Script)
	stdout, err := child.StdoutPipe()
	if err != nil {
		s.registry.Unregister(id)
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}
	stderr, err := child.StderrPipe()
	if err != nil {
		s.registry.Unregister(id)
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	if err := child.Start(); err != nil {
		s.registry.Unregister(id)
		s.history.RecordSpawnFailure(cmd, err)
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	pid := child.Process.Pid
	s.registry.Register(id, pid)
	runID := s.history.Start(cmd, pid)

	// Both pipes are drained concurrently and without any size cap, so a
	// chatty script can never deadlock on a full pipe buffer while we wait
	// on the other stream.
	var output lockedBuffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		io.Copy(&output, stdout)
	}()
	go func() {
		defer wg.Done()
		io.Copy(&output, stderr)
	}()

	// Drain to EOF before Wait, otherwise Wait closes the pipes and can
	// discard trailing output still in the kernel buffer.
	wg.Wait()
	err = child.Wait()
	s.registry.Unregister(id)

	exitCode := 0
	terminated := false
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			s.history.Fail(runID, err)
			return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
		}
		exitCode = exitErr.ExitCode()
		// An exit code of -1 means the process died from a signal,
		// which is how a Kill on the tracked pid shows up here.
		if exitCode == -1 {
			terminated = true
		}
	}

	result := &models.ExecResult{
		Output:     output.String(),
		ExitCode:   exitCode,
		Terminated: terminated,
	}
	s.history.Finish(runID, result)

	log.Printf("[executor] command %q finished with exit_code=%d terminated=%v", cmd.Name, exitCode, terminated)
	return result, nil
}

// lockedBuffer lets both drain goroutines append to one accumulator.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// pidAlive reports whether a tracked pid still refers to a live process.
// Registry entries can go stale when a completion-side removal was lost.
func pidAlive(pid int) bool {
	alive, err := process.PidExists(int32(pid))
	if err != nil {
		// When the probe itself fails, assume the process is alive so a
		// second instance is not spawned behind a live one.
		return true
	}
	return alive
}
