package services

import (
	"context"
	"log"
	"time"

	"grant-management-api/models"

	"gorm.io/gorm"
)

// GrantReconcilerService closes grants whose deadline has passed. The
// list-grants read runs it inline before returning results; the daemon
// runs the same sweep on an interval so stale rows do not accumulate
// between reads. Concurrent sweeps can issue the same update twice;
// the overwrite is idempotent.
type GrantReconcilerService struct {
	db *gorm.DB
}

func NewGrantReconcilerService(db *gorm.DB) *GrantReconcilerService {
	return &GrantReconcilerService{db: db}
}

// Reconcile flips every non-closed grant with a deadline before now to
// Closed and returns how many rows changed.
func (s *GrantReconcilerService) Reconcile(now time.Time) (int, error) {
	var grants []models.Grant
	if err := s.db.Where("status <> ? AND delete_at IS NULL", models.GrantClosed).Find(&grants).Error; err != nil {
		return 0, err
	}

	closed := 0
	for _, grant := range grants {
		if !grant.PastDeadline(now) {
			continue
		}
		err := s.db.Model(&models.Grant{}).
			Where("grant_id = ?", grant.GrantID).
			Update("status", models.GrantClosed).Error
		if err != nil {
			return closed, err
		}
		closed++
	}

	return closed, nil
}

// StartDaemon runs Reconcile on the given interval until ctx is done.
func (s *GrantReconcilerService) StartDaemon(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				closed, err := s.Reconcile(time.Now())
				if err != nil {
					log.Printf("grant reconciler: sweep failed: %v", err)
					continue
				}
				if closed > 0 {
					log.Printf("grant reconciler: closed %d expired grants", closed)
				}
			}
		}
	}()
}
