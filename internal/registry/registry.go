// Package registry tracks the OS process id of each command's running
// instance. It is the only state shared between concurrent executes and
// kills, so the lock is held for map mutation only, never across a syscall
// or a wait on the child.
package registry

import "sync"

// PidPending marks an entry whose run is reserved but not yet spawned. No
// real child ever has pid 0.
const PidPending = 0

// Registry is a concurrency-safe map from command id to process id, with at
// most one entry per command.
type Registry struct {
	mu   sync.Mutex
	pids map[string]int
}

// New creates an empty registry. One instance is built at startup and handed
// to every executor and terminator call.
func New() *Registry {
	return &Registry{pids: make(map[string]int)}
}

// Reserve atomically claims the command for a new run when it has no entry,
// inserting a pending one. When the claim fails, the existing entry's pid is
// returned so the caller can tell a live run from a stale leftover.
func (r *Registry) Reserve(commandID string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pid, ok := r.pids[commandID]; ok {
		return pid, false
	}
	r.pids[commandID] = PidPending
	return PidPending, true
}

// Register records the pid for a command, overwriting any stale entry left
// behind by a run whose removal was lost.
func (r *Registry) Register(commandID string, pid int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pids[commandID] = pid
}

// Unregister removes the entry for a command. Removing an absent entry is a
// no-op.
func (r *Registry) Unregister(commandID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pids, commandID)
}

// Evict removes the entry only while it still holds the given pid, so a
// stale entry can be cleared without racing the run that replaced it.
func (r *Registry) Evict(commandID string, pid int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.pids[commandID]; ok && cur == pid {
		delete(r.pids, commandID)
		return true
	}
	return false
}

// Lookup returns the tracked pid for a command, if any. Pending entries are
// not visible: until the spawn has a real pid there is nothing to signal.
func (r *Registry) Lookup(commandID string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pid, ok := r.pids[commandID]
	if !ok || pid == PidPending {
		return 0, false
	}
	return pid, true
}

// Len reports the number of tracked processes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pids)
}
