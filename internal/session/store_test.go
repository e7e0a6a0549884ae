package session

import (
	"sync"
	"testing"
	"time"

	"cardbot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetUnknownUserIsIdle(t *testing.T) {
	s := NewStore()

	sess := s.Get(42)

	assert.Equal(t, domain.ModeIdle, sess.Mode)
	assert.Empty(t, sess.Target)
	assert.Equal(t, 0, s.Len())
}

func TestStore_SetAndGet(t *testing.T) {
	s := NewStore()
	distractors := []string{"dog", "owl"}

	s.Set(42, domain.Session{
		Mode:        domain.ModeAwaitingAnswer,
		Target:      "cat",
		Translation: "кот",
		Distractors: distractors,
	})

	// Mutating the caller's slice must not leak into the store
	distractors[0] = "changed"

	sess := s.Get(42)
	assert.Equal(t, domain.ModeAwaitingAnswer, sess.Mode)
	assert.Equal(t, "cat", sess.Target)
	assert.Equal(t, "кот", sess.Translation)
	assert.Equal(t, []string{"dog", "owl"}, sess.Distractors)
	assert.False(t, sess.UpdatedAt.IsZero())

	sess.Distractors[1] = "changed"
	assert.Equal(t, []string{"dog", "owl"}, s.Get(42).Distractors)
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	s := NewStore()

	s.Set(1, domain.Session{Mode: domain.ModeAwaitingNewWord})
	s.Set(2, domain.Session{Mode: domain.ModeAwaitingDeleteWord})
	s.Reset(1)

	assert.Equal(t, domain.ModeIdle, s.Get(1).Mode)
	assert.Equal(t, domain.ModeAwaitingDeleteWord, s.Get(2).Mode)
}

func TestStore_EvictIdle(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	s := NewStore()
	s.now = func() time.Time { return now }

	s.Set(1, domain.Session{Mode: domain.ModeAwaitingAnswer, Target: "cat"})

	now = now.Add(2 * time.Hour)
	s.Set(2, domain.Session{Mode: domain.ModeAwaitingAnswer, Target: "dog"})

	now = now.Add(30 * time.Minute)
	evicted := s.EvictIdle(time.Hour)

	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, domain.ModeIdle, s.Get(1).Mode)
	assert.Equal(t, "dog", s.Get(2).Target)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			s.Set(userID, domain.Session{Mode: domain.ModeAwaitingAnswer, Target: "cat"})
			_ = s.Get(userID)
			s.Reset(userID)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
	assert.Equal(t, 0, s.EvictIdle(time.Hour))
}
