package wizard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"

	"github.com/festhub/festival-api/internal/domain/booking"
)

func TestRedisStoreLoadMissingSnapshotReturnsFreshMachine(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb, "5", time.Hour)
	sessionID := uuid.New()

	mock.ExpectGet(snapshotPrefix + sessionID.String()).RedisNil()

	m, err := store.Load(context.Background(), sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if m.ActiveStep != StepPersonal {
		t.Fatalf("fresh machine at step %s", m.ActiveStep)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRedisStoreLoadRestoresMatchingVersion(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb, "5", time.Hour)
	sessionID := uuid.New()

	draft := booking.NewDraft()
	draft.FirstName = "Ana"
	draft.TicketID = 2
	raw, err := json.Marshal(snapshot{
		FormVersion: "5",
		ActiveStep:  int(StepWorkShift),
		Booking:     draft,
		Validation:  map[string]string{booking.FieldEmail: "Invalid email address"},
		SavedAt:     time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
	mock.ExpectGet(snapshotPrefix + sessionID.String()).SetVal(string(raw))

	m, err := store.Load(context.Background(), sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if m.ActiveStep != StepWorkShift {
		t.Fatalf("restored step = %s", m.ActiveStep)
	}
	if m.Draft.FirstName != "Ana" || m.Draft.TicketID != 2 {
		t.Fatalf("draft not restored: %+v", m.Draft)
	}
	if m.Validation[booking.FieldEmail] == "" {
		t.Fatal("validation map not restored")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRedisStoreLoadDiscardsVersionMismatch(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb, "5", time.Hour)
	sessionID := uuid.New()
	key := snapshotPrefix + sessionID.String()

	draft := booking.NewDraft()
	draft.FirstName = "Stale"
	raw, err := json.Marshal(snapshot{
		FormVersion: "4",
		ActiveStep:  int(StepSummary),
		Booking:     draft,
	})
	if err != nil {
		t.Fatal(err)
	}
	mock.ExpectGet(key).SetVal(string(raw))
	mock.ExpectDel(key).SetVal(1)

	m, err := store.Load(context.Background(), sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if m.ActiveStep != StepPersonal || m.Draft.FirstName != "" {
		t.Fatal("stale snapshot was not discarded")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRedisStoreLoadDiscardsCorruptSnapshot(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb, "5", time.Hour)
	sessionID := uuid.New()
	key := snapshotPrefix + sessionID.String()

	mock.ExpectGet(key).SetVal("{not json")
	mock.ExpectDel(key).SetVal(1)

	m, err := store.Load(context.Background(), sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if m.ActiveStep != StepPersonal {
		t.Fatal("corrupt snapshot was not discarded")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRedisStoreSaveWritesVersionedSnapshot(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb, "5", time.Hour)
	sessionID := uuid.New()

	m := NewMachine()
	m.ActiveStep = StepTicket

	mock.Regexp().ExpectSet(snapshotPrefix+sessionID.String(), `"form_version":"5"`, time.Hour).SetVal("OK")

	if err := store.Save(context.Background(), sessionID, m); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
