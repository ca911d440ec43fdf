// Package jobstore implements the process-wide JobState store of §3/§4.H: a
// typed, single-writer map of job-id to JobState, with progress events
// broadcast to subscribers over channels rather than a shared mutable
// queue.
package jobstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"aeoaudit/model"
)

// eventBufferSize bounds each subscriber's channel depth. When a
// subscriber's channel is full, the new event is dropped for that
// subscriber rather than blocking the single writer. The store keeps no
// per-job event history: a subscriber sees only events published after it
// subscribed.
const eventBufferSize = 64

// entry is the store's internal per-job record: the JobState itself plus
// its subscriber fan-out channels. Only the Store's owning goroutine
// mutates an entry's JobState; readers take a copy under the mutex.
type entry struct {
	state       model.JobState
	subscribers map[int]chan model.ProgressEvent
	nextSubID   int
}

// Store is the single-writer, process-wide job table (§3 JobState, §4.H).
// All exported methods are safe for concurrent use; the "single writer"
// guarantee is enforced by convention (only the domain orchestrator calls
// the mutating methods for a given job), matching §5's "JobState is the
// only shared-mutable structure; all writes go through the orchestrator."
type Store struct {
	mu   sync.Mutex
	jobs map[string]*entry
	ttl  time.Duration
}

// New builds a Store with the given result-retention TTL (§3 JobState
// "evicted after a configurable TTL", §6 job.ttl_seconds).
func New(ttl time.Duration) *Store {
	return &Store{
		jobs: make(map[string]*entry),
		ttl:  ttl,
	}
}

// Create allocates a new job in the queued state and returns its id.
func (s *Store) Create() string {
	jobID := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[jobID] = &entry{
		state: model.JobState{
			JobID:     jobID,
			Status:    model.JobQueued,
			CreatedAt: time.Now(),
		},
		subscribers: make(map[int]chan model.ProgressEvent),
	}
	return jobID
}

// Get returns a copy of the job's current state.
func (s *Store) Get(jobID string) (model.JobState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.jobs[jobID]
	if !ok {
		return model.JobState{}, false
	}
	return e.state, true
}

// Transition advances a job to a new status and publishes a progress event
// derived from the updated state (§4.H state machine: queued ->
// discovering -> auditing -> completed|failed, no state ever revisited).
func (s *Store) Transition(jobID string, status model.JobStatus, mutate func(*model.JobState)) {
	s.mu.Lock()
	e, ok := s.jobs[jobID]
	if !ok {
		s.mu.Unlock()
		return
	}
	e.state.Status = status
	if mutate != nil {
		mutate(&e.state)
	}
	event := eventFromState(e.state)
	subs := make([]chan model.ProgressEvent, 0, len(e.subscribers))
	for _, ch := range e.subscribers {
		subs = append(subs, ch)
	}
	s.mu.Unlock()

	broadcast(subs, event)
}

func eventFromState(st model.JobState) model.ProgressEvent {
	return model.ProgressEvent{
		Status:         st.Status,
		Percentage:     st.Percentage,
		PagesAudited:   st.PagesAudited,
		TotalURLs:      st.TotalURLs,
		URLsDiscovered: st.URLsDiscovered,
		CurrentURL:     st.CurrentURL,
		Message:        st.FailureReason,
	}
}

func broadcast(subs []chan model.ProgressEvent, event model.ProgressEvent) {
	for _, ch := range subs {
		select {
		case ch <- event:
		default:
			// Slow subscriber: drop rather than block the single writer
			// (§5: progress events are totally ordered per job, but a lazy
			// consumer should never stall the orchestrator).
		}
	}
}

// Subscribe returns a channel of progress events for jobID and an unsubscribe
// function. The channel is closed when unsubscribe is called or when Evict
// removes the job; reaching a terminal state does not close it, so callers
// watch for a completed or failed status in the events they receive.
func (s *Store) Subscribe(jobID string) (<-chan model.ProgressEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.jobs[jobID]
	if !ok {
		ch := make(chan model.ProgressEvent)
		close(ch)
		return ch, func() {}
	}

	id := e.nextSubID
	e.nextSubID++
	ch := make(chan model.ProgressEvent, eventBufferSize)
	e.subscribers[id] = ch

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if e, ok := s.jobs[jobID]; ok {
			if sub, ok := e.subscribers[id]; ok {
				delete(e.subscribers, id)
				close(sub)
			}
		}
	}
	return ch, unsubscribe
}

// SetResult populates the terminal DomainAudit result on a completed job.
func (s *Store) SetResult(jobID string, result *model.DomainAudit) {
	s.Transition(jobID, model.JobCompleted, func(st *model.JobState) {
		st.Result = result
		st.Percentage = 100
	})
}

// Fail transitions a job to failed with a reason, from any prior state
// (§4.H: "any prior state -> failed", no state is ever revisited once
// terminal).
func (s *Store) Fail(jobID string, reason string) {
	s.mu.Lock()
	e, ok := s.jobs[jobID]
	if ok && isTerminal(e.state.Status) {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.Transition(jobID, model.JobFailed, func(st *model.JobState) {
		st.FailureReason = reason
	})
}

func isTerminal(status model.JobStatus) bool {
	return status == model.JobCompleted || status == model.JobFailed
}

// Evict removes jobs older than the store's TTL, measured from CreatedAt
// for terminal jobs (§3 "evicted after a configurable TTL"). Intended to be
// called periodically by the process (e.g. on a ticker); it is not run
// automatically by the Store itself.
func (s *Store) Evict(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.jobs {
		if !isTerminal(e.state.Status) {
			continue
		}
		if now.Sub(e.state.CreatedAt) > s.ttl {
			for _, ch := range e.subscribers {
				close(ch)
			}
			delete(s.jobs, id)
		}
	}
}
