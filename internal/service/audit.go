package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pos-checkout-service/internal/domain/model"
	"github.com/guttosm/pos-checkout-service/internal/repository"
)

// AuditService defines audit trail operations for register activity.
type AuditService interface {
	// Record queues one audit entry for asynchronous persistence.
	Record(entry *model.AuditEntry)

	// Query retrieves audit entries matching the filter.
	Query(ctx context.Context, opts model.AuditQueryOptions) ([]model.AuditEntry, error)

	// Close flushes queued entries and stops the writer.
	Close()
}

// AuditServiceImpl persists audit entries through a buffered channel so
// cart mutations never wait on MongoDB. When the buffer is full the
// entry is dropped with a warning; the audit trail is best effort.
type AuditServiceImpl struct {
	repo      repository.AuditRepositoryInterface
	entries   chan *model.AuditEntry
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewAuditService creates an audit service with the given queue size.
func NewAuditService(repo repository.AuditRepositoryInterface, bufferSize int) *AuditServiceImpl {
	if bufferSize < 1 {
		bufferSize = 256
	}
	s := &AuditServiceImpl{
		repo:    repo,
		entries: make(chan *model.AuditEntry, bufferSize),
	}
	s.wg.Add(1)
	go s.writer()
	return s
}

// Record queues one audit entry for asynchronous persistence.
func (s *AuditServiceImpl) Record(entry *model.AuditEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	select {
	case s.entries <- entry:
	default:
		log.Warn().Str("action", entry.ActionType).Msg("Audit queue full, dropping entry")
	}
}

// Query retrieves audit entries matching the filter.
func (s *AuditServiceImpl) Query(ctx context.Context, opts model.AuditQueryOptions) ([]model.AuditEntry, error) {
	return s.repo.Query(ctx, opts)
}

// Close flushes queued entries and stops the writer.
func (s *AuditServiceImpl) Close() {
	s.closeOnce.Do(func() {
		close(s.entries)
		s.wg.Wait()
	})
}

func (s *AuditServiceImpl) writer() {
	defer s.wg.Done()

	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.repo.Create(ctx, entry); err != nil {
			log.Warn().Err(err).Str("action", entry.ActionType).Msg("Audit write failed")
		}
		cancel()
	}
}
