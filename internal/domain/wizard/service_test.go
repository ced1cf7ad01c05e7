package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/festhub/festival-api/internal/domain/booking"
	"github.com/festhub/festival-api/internal/domain/catalog"
)

type fakeStore struct {
	mu       sync.Mutex
	machines map[uuid.UUID]*Machine
	cleared  map[uuid.UUID]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		machines: map[uuid.UUID]*Machine{},
		cleared:  map[uuid.UUID]bool{},
	}
}

func (f *fakeStore) Load(ctx context.Context, sessionID uuid.UUID) (*Machine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.machines[sessionID]; ok {
		return m, nil
	}
	return NewMachine(), nil
}

func (f *fakeStore) Save(ctx context.Context, sessionID uuid.UUID, m *Machine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.machines[sessionID] = m
	return nil
}

func (f *fakeStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.machines, sessionID)
	f.cleared[sessionID] = true
	return nil
}

type fakeCatalog struct {
	content *catalog.FormContent
	err     error
}

func (f *fakeCatalog) Content(ctx context.Context) (*catalog.FormContent, error) {
	return f.content, f.err
}

type fakeSubmitter struct {
	err       error
	submitted *booking.Booking
	id        uuid.UUID
}

func (f *fakeSubmitter) Submit(ctx context.Context, draft *booking.Booking) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.submitted = draft
	return f.id, nil
}

type fakeSessions struct {
	mu      sync.Mutex
	revoked map[uuid.UUID]time.Duration
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{revoked: map[uuid.UUID]time.Duration{}}
}

func (f *fakeSessions) RevokeAfter(sessionID uuid.UUID, delay time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[sessionID] = delay
}

func serviceContent() *catalog.FormContent {
	return &catalog.FormContent{
		Tickets:   []catalog.TicketOption{{ID: 1, Price: decimal.NewFromInt(100)}},
		Beverages: []catalog.BeverageOption{{ID: 1, Price: decimal.NewFromInt(10)}},
	}
}

func submittableMachine() *Machine {
	m := NewMachine()
	m.ActiveStep = StepSummary
	m.Draft.FirstName = "Ana"
	m.Draft.LastName = "Berg"
	m.Draft.Email = "ana@example.org"
	m.Draft.Phone = "0123456789"
	m.Draft.TicketID = 1
	m.Draft.TimeslotPriority1 = 10
	m.Draft.TimeslotPriority2 = 11
	m.Draft.TimeslotPriority3 = 12
	m.Draft.SupporterBuddy = "none"
	m.Draft.Signature = "data:image/png;base64,AAAA"
	return m
}

func TestUpdateFieldRepricesAndPersists(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeCatalog{content: serviceContent()}, &fakeSubmitter{}, newFakeSessions(), time.Hour, 10*time.Second)
	sessionID := uuid.New()

	m, err := svc.UpdateField(context.Background(), sessionID, booking.FieldTicketID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Draft.TotalPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("total = %s", m.Draft.TotalPrice)
	}
	if _, ok := store.machines[sessionID]; !ok {
		t.Fatal("machine not persisted")
	}
}

func TestUpdateFieldPricesAgainstPlaceholderWhenCatalogDown(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeCatalog{err: errors.New("db down")}, &fakeSubmitter{}, newFakeSessions(), time.Hour, 10*time.Second)

	m, err := svc.UpdateField(context.Background(), uuid.New(), booking.FieldTicketID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Draft.TotalPrice.Equal(decimal.NewFromInt(-1)) {
		t.Fatalf("placeholder total = %s", m.Draft.TotalPrice)
	}
}

func TestSubmitRequiresSummaryStep(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeCatalog{content: serviceContent()}, &fakeSubmitter{}, newFakeSessions(), time.Hour, 10*time.Second)
	sessionID := uuid.New()

	m := submittableMachine()
	m.ActiveStep = StepSignature
	store.machines[sessionID] = m

	if _, err := svc.Submit(context.Background(), sessionID); !errors.Is(err, ErrNotAtSummary) {
		t.Fatalf("expected ErrNotAtSummary, got %v", err)
	}
}

func TestSubmitRejectsIncompleteDraft(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeCatalog{content: serviceContent()}, &fakeSubmitter{}, newFakeSessions(), time.Hour, 10*time.Second)
	sessionID := uuid.New()

	m := submittableMachine()
	m.Draft.Signature = ""
	store.machines[sessionID] = m

	if _, err := svc.Submit(context.Background(), sessionID); !errors.Is(err, ErrDraftIncomplete) {
		t.Fatalf("expected ErrDraftIncomplete, got %v", err)
	}
	if m.Validation[booking.FieldSignature] == "" {
		t.Fatal("missing signature not flagged")
	}
}

func TestSubmitSuccessClearsSnapshotAndSchedulesLogout(t *testing.T) {
	store := newFakeStore()
	submitter := &fakeSubmitter{id: uuid.New()}
	sessions := newFakeSessions()
	svc := NewService(store, &fakeCatalog{content: serviceContent()}, submitter, sessions, time.Hour, 10*time.Second)
	sessionID := uuid.New()
	store.machines[sessionID] = submittableMachine()

	m, err := svc.Submit(context.Background(), sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if m.Submission != SubmissionSuccess {
		t.Fatalf("submission = %q", m.Submission)
	}
	if submitter.submitted == nil {
		t.Fatal("draft never reached the submitter")
	}
	if !store.cleared[sessionID] {
		t.Fatal("snapshot not cleared after success")
	}
	if sessions.revoked[sessionID] != time.Hour {
		t.Fatalf("logout delay = %v", sessions.revoked[sessionID])
	}
}

func TestSubmitFailureKeepsSnapshotAndSchedulesShortLogout(t *testing.T) {
	store := newFakeStore()
	sessions := newFakeSessions()
	svc := NewService(store, &fakeCatalog{content: serviceContent()}, &fakeSubmitter{err: errors.New("db down")}, sessions, time.Hour, 10*time.Second)
	sessionID := uuid.New()
	store.machines[sessionID] = submittableMachine()

	m, err := svc.Submit(context.Background(), sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if m.Submission != SubmissionError {
		t.Fatalf("submission = %q", m.Submission)
	}
	if m.CurrentError == "" {
		t.Fatal("failure message not surfaced")
	}
	if store.cleared[sessionID] {
		t.Fatal("snapshot destroyed on failure")
	}
	if sessions.revoked[sessionID] != 10*time.Second {
		t.Fatalf("logout delay = %v", sessions.revoked[sessionID])
	}
}

func TestSubmitTwiceRejected(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeCatalog{content: serviceContent()}, &fakeSubmitter{id: uuid.New()}, newFakeSessions(), time.Hour, 10*time.Second)
	sessionID := uuid.New()

	m := submittableMachine()
	m.Submission = SubmissionSuccess
	store.machines[sessionID] = m

	if _, err := svc.Submit(context.Background(), sessionID); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestRankOptions(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeCatalog{content: serviceContent()}, &fakeSubmitter{}, newFakeSessions(), time.Hour, 10*time.Second)
	sessionID := uuid.New()

	if _, err := svc.AssignPriority(context.Background(), sessionID, 1, 10); err != nil {
		t.Fatal(err)
	}
	ranks, err := svc.RankOptions(context.Background(), sessionID, 11)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranks) != 2 || ranks[0] != 2 || ranks[1] != 3 {
		t.Fatalf("ranks = %v", ranks)
	}
}
