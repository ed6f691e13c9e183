package draft

import (
	"context"
	"sync"
	"time"

	appclient "github.com/clientregistry/backend/internal/application/client"
	"github.com/clientregistry/backend/internal/domain/client"
	"github.com/clientregistry/backend/internal/domain/enrichment"
	"github.com/clientregistry/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds draft session timing
type Config struct {
	SessionTTL    time.Duration
	SweepInterval time.Duration
	LookupTimeout time.Duration
}

// DefaultConfig returns 30 minute sessions swept every minute
func DefaultConfig() Config {
	return Config{
		SessionTTL:    30 * time.Minute,
		SweepInterval: time.Minute,
		LookupTimeout: 30 * time.Second,
	}
}

// MsgDraftNotFound is returned for unknown or expired session IDs
const MsgDraftNotFound = "Rascunho não encontrado"

// Manager owns the open draft sessions
type Manager struct {
	enricher Enricher
	clients  ClientWriter
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session

	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewManager creates a manager and starts the idle-session sweep
func NewManager(enricher Enricher, clients ClientWriter, cfg Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultConfig()
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = def.SessionTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = def.SweepInterval
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = def.LookupTimeout
	}

	m := &Manager{
		enricher: enricher,
		clients:  clients,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
		stopChan: make(chan struct{}),
	}
	m.wg.Add(1)
	go m.sweepLoop()
	return m
}

// Open starts a session. clientID 0 opens an empty draft; otherwise the
// draft is a copy of the stored client.
func (m *Manager) Open(ctx context.Context, clientID int64) (*Session, error) {
	var seed client.Details
	if clientID != 0 {
		stored, err := m.clients.GetByID(ctx, clientID)
		if err != nil {
			return nil, err
		}
		seed = detailsOf(stored)
	}

	id := uuid.NewString()
	s := &Session{
		id:            id,
		clientID:      clientID,
		enricher:      m.enricher,
		clients:       m.clients,
		lookupTimeout: m.cfg.LookupTimeout,
		logger:        m.logger.With(zap.String("draft_id", id)),
		now:           m.now,
		draft:         seed,
		watches:       watchesOf(seed),
		lastActive:    m.now(),
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Debug("Draft session opened", zap.String("draft_id", id), zap.Int64("client_id", clientID))
	return s, nil
}

// Get returns an open session
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, shared.NewDomainError(shared.CodeNotFound, MsgDraftNotFound)
	}
	return s, nil
}

// Submit saves the draft and forgets the session on success
func (m *Manager) Submit(ctx context.Context, id string) (*appclient.ClientResponse, bool, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, false, err
	}
	resp, created, err := s.Submit(ctx)
	if err != nil {
		return nil, false, err
	}
	m.forget(id)
	return resp, created, nil
}

// Discard closes the session and forgets it. It fails with
// LOOKUPS_IN_FLIGHT while a lookup is running.
func (m *Manager) Discard(id string) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return err
	}
	m.forget(id)
	return nil
}

// Len returns the number of open sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops closed sessions and sessions idle longer than the TTL.
// Sessions with a lookup in flight are kept.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.cfg.SessionTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.idleSince(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("Expired draft sessions removed", zap.Int("count", removed))
	}
	return removed
}

// Close stops the sweep goroutine. Safe to call more than once.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		close(m.stopChan)
		m.wg.Wait()
	})
	return nil
}

func (m *Manager) sweepLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (m *Manager) forget(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func detailsOf(r *appclient.ClientResponse) client.Details {
	return client.Details{
		TaxID:      r.TaxID,
		LegalName:  r.LegalName,
		TradeName:  r.TradeName,
		PostalCode: r.PostalCode,
		Street:     r.Street,
		District:   r.District,
		City:       r.City,
		Region:     r.Region,
		Complement: r.Complement,
		Email:      r.Email,
		Phone:      r.Phone,
	}
}

// watchesOf marks the trigger fields a stored client already fills, so
// reopening it starts no lookup until the user changes them
func watchesOf(d client.Details) Watches {
	_, taxID := enrichment.TriggeredBy(client.FieldTaxID, d.TaxID)
	_, postal := enrichment.TriggeredBy(client.FieldPostalCode, d.PostalCode)
	return Watches{TaxID: taxID, PostalCode: postal}
}
