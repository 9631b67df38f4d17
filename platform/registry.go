package platform

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"bac_exam_platform/models"
	"bac_exam_platform/navigation"
)

// Visitor is the in-memory state of one browser: where it is in the
// platform and what it is doing there. Callers hold the embedded mutex
// while reading or changing it.
type Visitor struct {
	sync.Mutex

	ID   string
	Nav  navigation.State
	Exam *ExamSession
	QCM  *QCMSession

	rng      *rand.Rand
	now      func() time.Time
	lastSeen time.Time
}

func newVisitor(id string, now func() time.Time) *Visitor {
	return &Visitor{ID: id, Nav: navigation.Initial(), now: now}
}

// Apply runs a router event. An accepted event drops the exam and QCM
// sessions of the previous view.
func (v *Visitor) Apply(e navigation.Event, user *models.User) error {
	next, err := navigation.Transition(v.Nav, e, user)
	if err != nil {
		return err
	}
	v.Nav = next
	v.Exam = nil
	v.QCM = nil
	return nil
}

// StartExam opens the exam the visitor navigated to.
func (v *Visitor) StartExam(e models.Exam) *ExamSession {
	v.Exam = newExamSession(e, &v.Nav.Transient, v.rng, v.now)
	return v.Exam
}

// StartQCM opens the QCM of the chapter the visitor navigated to.
func (v *Visitor) StartQCM(chapterID int64, qs []models.QCMQuestion) *QCMSession {
	v.QCM = NewQCMSession(chapterID, qs)
	return v.QCM
}

// SetError records a loading error shown in the current view.
func (v *Visitor) SetError(msg string) {
	v.Nav.Transient.Error = msg
}

// Registry holds the visitors seen recently.
type Registry struct {
	mu       sync.RWMutex
	visitors map[string]*Visitor
	idle     time.Duration
	now      func() time.Time
}

func NewRegistry(idle time.Duration) *Registry {
	return &Registry{
		visitors: make(map[string]*Visitor),
		idle:     idle,
		now:      time.Now,
	}
}

// Get returns the visitor with this id, creating a fresh one on first use.
func (r *Registry) Get(id string) *Visitor {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.visitors[id]
	if !ok {
		v = newVisitor(id, r.now)
		r.visitors[id] = v
	}
	v.lastSeen = r.now()
	return v
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.visitors, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.visitors)
}

// Evict forgets visitors idle for longer than the idle timeout and
// returns how many were removed.
func (r *Registry) Evict() int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, v := range r.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(r.visitors, id)
			n++
		}
	}
	return n
}

// Run evicts idle visitors every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(); n > 0 {
				log.Printf("Evicted %d idle visitors", n)
			}
		}
	}
}
