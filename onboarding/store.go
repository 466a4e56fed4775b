// onboarding/store.go
package onboarding

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/lykr/lykr_backend/models"
)

const snapshotKeyPrefix = "onboarding:state:"

// DefaultSnapshotTTL bounds how long an abandoned session's snapshot lives.
const DefaultSnapshotTTL = 24 * time.Hour

// SnapshotStore persists the wizard document as a JSON snapshot in a
// session-scoped Redis slot. Every transition overwrites the previous value;
// hydration happens once per session.
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &SnapshotStore{
		client: client,
		ttl:    ttl,
		logger: log.New(os.Stdout, "[ONBOARDING] ", log.LstdFlags),
	}
}

// Save serializes the whole document and overwrites the session's slot.
func (s *SnapshotStore) Save(ctx context.Context, sessionID string, state models.WizardState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, snapshotKeyPrefix+sessionID, payload, s.ttl).Err()
}

// Load reads the session's snapshot. Absence or a corrupt payload degrades
// silently to the default document; the second return reports whether a
// snapshot was restored.
func (s *SnapshotStore) Load(ctx context.Context, sessionID string) (models.WizardState, bool) {
	payload, err := s.client.Get(ctx, snapshotKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Printf("failed to read snapshot for session %s: %v", sessionID, err)
		}
		return DefaultState(), false
	}

	var state models.WizardState
	if err := json.Unmarshal(payload, &state); err != nil {
		s.logger.Printf("corrupt snapshot for session %s, starting fresh: %v", sessionID, err)
		return DefaultState(), false
	}
	return state, true
}

// Clear removes the session's snapshot.
func (s *SnapshotStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, snapshotKeyPrefix+sessionID).Err()
}
