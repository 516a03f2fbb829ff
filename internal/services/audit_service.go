package services

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// AuditEntry describes one mutating action to record.
type AuditEntry struct {
	UserID     *uint64
	Action     string
	EntityType string
	EntityID   *uint64
	Details    map[string]interface{}
	IPAddress  string
}

// AuditService is the best-effort audit sink. Record hands entries to a
// worker goroutine and returns immediately; the request path never waits on
// the store and never observes a write failure. At-most-once: a full queue
// drops the entry, failures are logged and discarded.
type AuditService struct {
	auditRepo repository.AuditRepository
	log       *zap.Logger
	queue     chan models.AuditLog
	wg        sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewAuditService creates the sink and starts its worker.
func NewAuditService(auditRepo repository.AuditRepository, log *zap.Logger, queueSize int) *AuditService {
	if queueSize < 1 {
		queueSize = 1
	}

	s := &AuditService{
		auditRepo: auditRepo,
		log:       log,
		queue:     make(chan models.AuditLog, queueSize),
	}

	s.wg.Add(1)
	go s.run()

	return s
}

func (s *AuditService) run() {
	defer s.wg.Done()
	for entry := range s.queue {
		s.write(entry)
	}
}

// write persists one entry. Errors must never propagate to the caller.
func (s *AuditService) write(entry models.AuditLog) {
	if err := s.auditRepo.Insert(&entry); err != nil {
		s.log.Error("failed to write audit log",
			zap.String("action", entry.Action),
			zap.String("entity_type", entry.EntityType),
			zap.Error(err),
		)
	}
}

// Record enqueues an entry without blocking. Callers invoke it only after the
// primary operation has committed, so the ordering is always
// primary-commit-then-audit.
func (s *AuditService) Record(entry AuditEntry) {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		s.log.Error("failed to encode audit details",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		details = []byte("{}")
	}

	row := models.AuditLog{
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    details,
		IPAddress:  entry.IPAddress,
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.log.Warn("audit sink closed, dropping entry",
			zap.String("action", entry.Action),
		)
		return
	}

	select {
	case s.queue <- row:
	default:
		s.log.Warn("audit queue full, dropping entry",
			zap.String("action", entry.Action),
		)
	}
}

// Close stops accepting entries and waits for the worker to drain the queue.
func (s *AuditService) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// Recent returns the newest audit entries with the actor attached.
func (s *AuditService) Recent(limit int) ([]models.AuditLog, error) {
	logs, err := s.auditRepo.Recent(limit)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch audit logs", err)
	}
	return logs, nil
}

// Clear removes every audit entry.
func (s *AuditService) Clear() error {
	if err := s.auditRepo.Clear(); err != nil {
		return apperrors.Internal("Failed to clear audit logs", err)
	}
	return nil
}

// PruneOlderThan removes entries past the retention window and reports how
// many were deleted.
func (s *AuditService) PruneOlderThan(retention time.Duration) (int64, error) {
	removed, err := s.auditRepo.DeleteBefore(time.Now().Add(-retention))
	if err != nil {
		return 0, apperrors.Internal("Failed to prune audit logs", err)
	}
	return removed, nil
}
