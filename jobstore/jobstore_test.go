package jobstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeoaudit/model"
)

func TestCreate_StartsQueued(t *testing.T) {
	s := New(time.Hour)
	jobID := s.Create()

	st, ok := s.Get(jobID)
	require.True(t, ok)
	assert.Equal(t, model.JobQueued, st.Status)
}

func TestSubscribe_ReceivesTransitionEvents(t *testing.T) {
	s := New(time.Hour)
	jobID := s.Create()

	events, unsubscribe := s.Subscribe(jobID)
	defer unsubscribe()

	s.Transition(jobID, model.JobDiscovering, nil)

	select {
	case ev := <-events:
		assert.Equal(t, model.JobDiscovering, ev.Status)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for progress event")
	}
}

func TestFail_DoesNotRevisitTerminalState(t *testing.T) {
	s := New(time.Hour)
	jobID := s.Create()

	s.SetResult(jobID, &model.DomainAudit{Domain: "example.com"})
	s.Fail(jobID, "should not apply")

	st, _ := s.Get(jobID)
	assert.Equal(t, model.JobCompleted, st.Status)
	assert.NotEqual(t, "should not apply", st.FailureReason)
}

func TestEvict_RemovesOldTerminalJobs(t *testing.T) {
	s := New(time.Millisecond)
	jobID := s.Create()
	s.SetResult(jobID, &model.DomainAudit{Domain: "example.com"})

	time.Sleep(5 * time.Millisecond)
	s.Evict(time.Now())

	_, ok := s.Get(jobID)
	assert.False(t, ok)
}
