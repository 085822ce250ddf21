package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/camden-git/inspectsysbackend/models"
	"github.com/camden-git/inspectsysbackend/repository"
)

var referencePrefixes = map[string]string{
	models.CategoryDefect: "DEF",
	models.CategoryRisk:   "RISK",
}

// ReferenceService issues the human-readable sequential identifiers attached
// to defect and risk photos (DEF-2024-001, RISK-2024-002, ...). Issuance is
// strictly increasing and gapless per (project, category); a number is never
// reused, even after the owning photo is removed
type ReferenceService struct {
	counters repository.CounterRepositoryInterface

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

// NewReferenceService creates a new instance of ReferenceService
func NewReferenceService(counters repository.CounterRepositoryInterface) *ReferenceService {
	return &ReferenceService{
		counters: counters,
		locks:    make(map[string]*sync.Mutex),
		now:      time.Now,
	}
}

func (s *ReferenceService) projectLock(projectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[projectID] = lock
	}
	return lock
}

// Next increments the counter for (projectID, category) by exactly 1 and
// returns the new counter value with its formatted reference ID. Increments
// are serialized per project, so two racing captures can never observe the
// same value
func (s *ReferenceService) Next(projectID, category string) (int, string, error) {
	prefix, ok := referencePrefixes[category]
	if !ok {
		return 0, "", fmt.Errorf("reference IDs are not issued for category %q", category)
	}

	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	value, err := s.counters.Increment(projectID, category)
	if err != nil {
		return 0, "", err
	}

	// the year segment is evaluated at issuance time, so an inspection that
	// spans a year boundary issues IDs with different year prefixes for the
	// same project. counters do not reset on the boundary
	year := s.now().Year()
	return value, fmt.Sprintf("%s-%d-%03d", prefix, year, value), nil
}
