// Package draft keeps in-memory client drafts that are enriched from the
// registries while the user edits them and saved only on submit.
package draft

import (
	"context"
	"errors"
	"sync"
	"time"

	appclient "github.com/clientregistry/backend/internal/application/client"
	"github.com/clientregistry/backend/internal/domain/client"
	"github.com/clientregistry/backend/internal/domain/enrichment"
	"github.com/clientregistry/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Notice kinds
const (
	NoticeLookupFailed = "lookup_failed"
	NoticeNotFound     = "not_found"
)

const fallbackNotice = "Erro ao buscar dados"

var triggerFields = []client.Field{client.FieldTaxID, client.FieldPostalCode}

// Enricher runs one registry lookup and returns the merged patch
type Enricher interface {
	Enrich(ctx context.Context, source enrichment.Source, value string) (enrichment.Patch, error)
}

// ClientWriter persists submitted drafts
type ClientWriter interface {
	Create(ctx context.Context, req appclient.CreateClientRequest) (*appclient.ClientResponse, error)
	Update(ctx context.Context, id int64, req appclient.UpdateClientRequest) (*appclient.ClientResponse, error)
	GetByID(ctx context.Context, id int64) (*appclient.ClientResponse, error)
}

// Notice is a user-visible message about a failed lookup
type Notice struct {
	Kind    string       `json:"kind"`
	Field   client.Field `json:"field"`
	Message string       `json:"message"`
	At      time.Time    `json:"at"`
}

// Watches reports whether each trigger field currently holds a value of
// qualifying length
type Watches struct {
	TaxID      bool `json:"cnpj"`
	PostalCode bool `json:"cep"`
}

// Snapshot is a consistent copy of a session for rendering
type Snapshot struct {
	ID       string            `json:"id"`
	ClientID int64             `json:"clientId,omitempty"`
	Draft    client.Details    `json:"draft"`
	Watches  Watches           `json:"watches"`
	InFlight int               `json:"inFlight"`
	Notices  []Notice          `json:"notices"`
	Errors   map[string]string `json:"errors,omitempty"`
	Closed   bool              `json:"closed"`
	Version  int64             `json:"version"`
}

// Session is one draft being created (ClientID 0) or edited.
//
// Lookups run in their own goroutines and apply their whole patch under the
// lock in completion order, so the last lookup to finish wins any field two
// lookups both supply.
type Session struct {
	id       string
	clientID int64

	enricher      Enricher
	clients       ClientWriter
	lookupTimeout time.Duration
	logger        *zap.Logger
	now           func() time.Time

	mu         sync.Mutex
	draft      client.Details
	watches    Watches
	inFlight   int
	idle       chan struct{}
	notices    []Notice
	errors     map[string]string
	closed     bool
	version    int64
	lastActive time.Time
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// SetField stores a user edit. A tax ID that becomes 14 characters or a
// postal code that becomes 8 starts a lookup; writing back the value already
// held starts nothing.
func (s *Session) SetField(ctx context.Context, field client.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable(); err != nil {
		return err
	}
	return s.set(ctx, field, value)
}

// SetFields applies several edits in display order. Nothing is applied when
// any key is unknown.
func (s *Session) SetFields(ctx context.Context, values map[string]string) error {
	edits := make(map[client.Field]string, len(values))
	for name, v := range values {
		f, err := client.ParseField(name)
		if err != nil {
			return err
		}
		edits[f] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable(); err != nil {
		return err
	}
	for _, f := range client.Fields {
		if v, ok := edits[f]; ok {
			if err := s.set(ctx, f, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) set(ctx context.Context, field client.Field, value string) error {
	prev := s.draft.Get(field)
	if err := s.draft.Set(field, value); err != nil {
		return err
	}
	s.version++
	s.lastActive = s.now()

	if value != prev {
		s.watch(ctx, field, value)
	}
	return nil
}

// watch refreshes the watch flag of a changed field and starts its lookup
// when the new value qualifies. Must be called with s.mu held.
func (s *Session) watch(ctx context.Context, field client.Field, value string) {
	source, fires := enrichment.TriggeredBy(field, value)
	switch field {
	case client.FieldTaxID:
		s.watches.TaxID = fires
	case client.FieldPostalCode:
		s.watches.PostalCode = fires
	default:
		return
	}
	if fires {
		s.startLookup(ctx, source, value)
	}
}

// startLookup must be called with s.mu held
func (s *Session) startLookup(ctx context.Context, source enrichment.Source, value string) {
	if s.inFlight == 0 {
		s.idle = make(chan struct{})
	}
	s.inFlight++

	// the triggering request returns before the lookup does
	lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.lookupTimeout)
	go func() {
		defer cancel()
		patch, err := s.enricher.Enrich(lookupCtx, source, value)
		s.finishLookup(ctx, source, value, patch, err)
	}()
}

// finishLookup merges a completed lookup. A trigger field the patch changes
// is watched like a user edit, so a tax ID patch carrying a full postal code
// starts the postal lookup.
func (s *Session) finishLookup(ctx context.Context, source enrichment.Source, value string, patch enrichment.Patch, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		n := noticeFor(source, err, s.now())
		s.notices = append(s.notices, n)
		s.logger.Warn("Draft lookup failed",
			zap.String("source", string(source)),
			zap.String("value", value),
			zap.String("notice", n.Kind),
			zap.Error(err),
		)
	} else {
		before := s.draft
		patch.ApplyTo(&s.draft)
		s.version++
		s.logger.Debug("Draft enriched",
			zap.String("source", string(source)),
			zap.Int("fields", len(patch.Fields())),
		)
		for _, f := range triggerFields {
			if v := s.draft.Get(f); v != before.Get(f) {
				s.watch(ctx, f, v)
			}
		}
	}

	// chained lookups above keep the count positive
	s.inFlight--
	if s.inFlight == 0 {
		close(s.idle)
		s.idle = nil
	}
}

func noticeFor(source enrichment.Source, err error, at time.Time) Notice {
	n := Notice{
		Kind:    NoticeLookupFailed,
		Field:   client.FieldTaxID,
		Message: fallbackNotice,
		At:      at,
	}
	if source == enrichment.SourcePostal {
		n.Field = client.FieldPostalCode
	}
	if errors.Is(err, shared.ErrNotFound) {
		n.Kind = NoticeNotFound
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		n.Message = de.Message
		if msg, ok := de.Fields[string(n.Field)]; ok {
			n.Message = msg
		}
	}
	return n
}

// InFlight returns the number of lookups still running
func (s *Session) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Wait blocks until no lookup is in flight or ctx is done
func (s *Session) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		idle := s.idle
		s.mu.Unlock()
		if idle == nil {
			return nil
		}
		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Validate runs the field rules on the draft, remembers the result and
// returns the failing fields. A nil map means the draft is valid.
func (s *Session) Validate() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errors = s.draft.Check()
	return copyErrors(s.errors)
}

// Submit validates the draft and saves it: a create for a new draft, an
// update for one seeded from a stored client. The session closes on success.
// created reports which of the two happened.
func (s *Session) Submit(ctx context.Context) (resp *appclient.ClientResponse, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable(); err != nil {
		return nil, false, err
	}
	if s.inFlight > 0 {
		return nil, false, shared.ErrLookupsInFlight
	}

	s.errors = s.draft.Check()
	if len(s.errors) > 0 {
		return nil, false, shared.NewValidationError(copyErrors(s.errors))
	}

	if s.clientID == 0 {
		resp, err = s.clients.Create(ctx, appclient.NewCreateRequest(s.draft))
		created = true
	} else {
		resp, err = s.clients.Update(ctx, s.clientID, appclient.FullUpdate(s.draft))
	}
	if err != nil {
		return nil, false, err
	}

	s.closed = true
	s.lastActive = s.now()
	return resp, created, nil
}

// Close ends the session. It is refused while a lookup is in flight; lookups
// are never cancelled.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight > 0 {
		return shared.ErrLookupsInFlight
	}
	s.closed = true
	return nil
}

// Snapshot returns a copy of the session state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	notices := make([]Notice, len(s.notices))
	copy(notices, s.notices)
	return Snapshot{
		ID:       s.id,
		ClientID: s.clientID,
		Draft:    s.draft,
		Watches:  s.watches,
		InFlight: s.inFlight,
		Notices:  notices,
		Errors:   copyErrors(s.errors),
		Closed:   s.closed,
		Version:  s.version,
	}
}

// idleSince reports whether the session can be swept: no lookup running
// and no activity since cutoff, or already closed
func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight > 0 {
		return false
	}
	return s.closed || s.lastActive.Before(cutoff)
}

func (s *Session) writable() error {
	if s.closed {
		return shared.NewDomainError(shared.CodeInvalidState, "Rascunho já encerrado")
	}
	return nil
}

func copyErrors(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
