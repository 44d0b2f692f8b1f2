package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const submissionKeyPrefix = "hostel:submission:"

// SubmissionRepository keeps the durable per-student "documents submitted"
// flag. The legacy client kept this in browser storage, which desynchronised
// across devices; holding it gateway-side makes every session agree.
type SubmissionRepository struct {
	client *redis.Client
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(client *redis.Client) *SubmissionRepository {
	return &SubmissionRepository{client: client}
}

// MarkSubmitted records that the student completed document submission. The
// flag has no expiry; an explicit edit clears it.
func (r *SubmissionRepository) MarkSubmitted(ctx context.Context, studentID string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Set(ctx, submissionKey(studentID), "1", 0).Err(); err != nil {
		return fmt.Errorf("redis set submission flag: %w", err)
	}
	return nil
}

// ClearSubmitted removes the flag, re-enabling uploads and removals.
func (r *SubmissionRepository) ClearSubmitted(ctx context.Context, studentID string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, submissionKey(studentID)).Err(); err != nil {
		return fmt.Errorf("redis clear submission flag: %w", err)
	}
	return nil
}

// IsSubmitted reports whether the student already completed submission.
func (r *SubmissionRepository) IsSubmitted(ctx context.Context, studentID string) (bool, error) {
	if r.client == nil {
		return false, nil
	}
	count, err := r.client.Exists(ctx, submissionKey(studentID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis read submission flag: %w", err)
	}
	return count > 0, nil
}

func submissionKey(studentID string) string {
	return submissionKeyPrefix + studentID
}
