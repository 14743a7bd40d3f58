// Package popular tracks which form choices officers actually pick, so the
// entry form can float frequent job types and contacts to the top.
package popular

import (
	"context"
	"fmt"

	platformredis "enquiries/internal/platform/redis"
	id "enquiries/pkg/domain"
)

const (
	keyJobTypes = "popular:job_types"
	keyContacts = "popular:contacts"
)

// Choice is one ranked entry: an entity ID and how often it was used.
type Choice struct {
	ID    string
	Count int64
}

// Recorder keeps usage counters in Redis sorted sets. A nil client disables
// it: bumps and reads become no-ops so the service runs without Redis.
type Recorder struct {
	client *platformredis.Client
}

func NewRecorder(client *platformredis.Client) *Recorder {
	return &Recorder{client: client}
}

func (r *Recorder) BumpJobType(ctx context.Context, jobTypeID id.JobTypeID) error {
	return r.bump(ctx, keyJobTypes, jobTypeID.String())
}

func (r *Recorder) BumpContact(ctx context.Context, contactID id.ContactID) error {
	return r.bump(ctx, keyContacts, contactID.String())
}

func (r *Recorder) bump(ctx context.Context, key, member string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.ZIncrBy(ctx, key, 1, member).Err(); err != nil {
		return fmt.Errorf("bump %s: %w", key, err)
	}
	return nil
}

// TopJobTypes returns the most-used job type IDs, most used first.
func (r *Recorder) TopJobTypes(ctx context.Context, n int) ([]Choice, error) {
	return r.top(ctx, keyJobTypes, n)
}

// TopContacts returns the most-used contact IDs, most used first.
func (r *Recorder) TopContacts(ctx context.Context, n int) ([]Choice, error) {
	return r.top(ctx, keyContacts, n)
}

func (r *Recorder) top(ctx context.Context, key string, n int) ([]Choice, error) {
	if r.client == nil || n <= 0 {
		return nil, nil
	}
	members, err := r.client.ZRevRangeWithScores(ctx, key, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	out := make([]Choice, 0, len(members))
	for _, m := range members {
		member, ok := m.Member.(string)
		if !ok {
			continue
		}
		out = append(out, Choice{ID: member, Count: int64(m.Score)})
	}
	return out, nil
}
