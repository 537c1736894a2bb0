package bookings

import (
	"context"
	"errors"
	"testing"

	"provider-dashboard/internal/ports/auth"
	"provider-dashboard/internal/ports/marketplace"
)

// -------------------------
// Fakes (in-memory)
// -------------------------

type testRegistry struct {
	byProvider map[string]*Store
}

func newTestRegistry() *testRegistry {
	return &testRegistry{byProvider: map[string]*Store{}}
}

func (r *testRegistry) ForProvider(providerID string) *Store {
	st, ok := r.byProvider[providerID]
	if !ok {
		st = NewStore()
		r.byProvider[providerID] = st
	}
	return st
}

// fakeAPI simula el backend del marketplace: mantiene los bookings como
// estado autoritativo y los muta en UpdateBookingStatus.
type fakeAPI struct {
	bookings []marketplace.BookingRecord

	listErr   error
	updateErr error

	listCalls   int
	updateCalls int
}

func (f *fakeAPI) GetProvider(ctx context.Context, token, providerID string) (marketplace.ProviderRecord, error) {
	return marketplace.ProviderRecord{ID: providerID, Role: "provider", Status: "approved"}, nil
}

func (f *fakeAPI) ListBookings(ctx context.Context, token, providerID string) ([]marketplace.BookingRecord, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]marketplace.BookingRecord, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
}

func (f *fakeAPI) UpdateBookingStatus(ctx context.Context, token, bookingID, status string) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID {
			f.bookings[i].Status = status
			return nil
		}
	}
	return marketplace.ErrNotFound
}

func (f *fakeAPI) ListServices(ctx context.Context, token, providerID string) ([]marketplace.ServiceRecord, error) {
	return nil, nil
}

func (f *fakeAPI) CreateService(ctx context.Context, token string, in marketplace.ServiceInput) (marketplace.ServiceRecord, error) {
	return marketplace.ServiceRecord{}, nil
}

func (f *fakeAPI) UpdateService(ctx context.Context, token, serviceID string, in marketplace.ServiceInput) (marketplace.ServiceRecord, error) {
	return marketplace.ServiceRecord{}, nil
}

func (f *fakeAPI) DeleteService(ctx context.Context, token, serviceID string) error {
	return nil
}

func testSession() auth.Session {
	return auth.Session{
		Token:  "test-token",
		Claims: auth.Claims{ProviderID: "prov-1", Role: "provider"},
	}
}

func record(id, status string) marketplace.BookingRecord {
	return marketplace.BookingRecord{ID: id, BookingID: "B-" + id, Status: status}
}

// -------------------------
// Tests
// -------------------------

func TestService_Refresh_FullReplace(t *testing.T) {
	api := &fakeAPI{bookings: []marketplace.BookingRecord{
		record("1", "pending"),
		record("2", "accepted"),
	}}
	reg := newTestRegistry()
	svc := NewService(api, reg)

	if err := svc.Refresh(context.Background(), testSession()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	st := reg.ForProvider("prov-1")
	if st.Len() != 2 {
		t.Fatalf("expected 2 bookings, got %d", st.Len())
	}

	// Segundo fetch con menos resultados: reemplazo total, nada stale.
	api.bookings = []marketplace.BookingRecord{record("2", "accepted")}
	if err := svc.Refresh(context.Background(), testSession()); err != nil {
		t.Fatalf("Refresh #2 returned error: %v", err)
	}
	if st.Len() != 1 {
		t.Fatalf("expected full replace to 1 booking, got %d", st.Len())
	}
}

func TestService_Refresh_FailureLeavesStoreIntact(t *testing.T) {
	api := &fakeAPI{bookings: []marketplace.BookingRecord{record("1", "pending")}}
	reg := newTestRegistry()
	svc := NewService(api, reg)

	if err := svc.Refresh(context.Background(), testSession()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	api.listErr = &marketplace.UpstreamError{Status: 500, Message: "boom"}
	if err := svc.Refresh(context.Background(), testSession()); err == nil {
		t.Fatalf("expected error")
	}

	if got := reg.ForProvider("prov-1").Len(); got != 1 {
		t.Fatalf("failed refresh must not touch the store, got len %d", got)
	}
}

func TestService_Transition_AcceptPending_ShiftsCounts(t *testing.T) {
	api := &fakeAPI{bookings: []marketplace.BookingRecord{
		record("1", "pending"),
		record("2", "pending"),
		record("3", "accepted"),
	}}
	reg := newTestRegistry()
	svc := NewService(api, reg)
	sess := testSession()

	if err := svc.Refresh(context.Background(), sess); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	before := reg.ForProvider("prov-1").Counts()
	if before.Pending != 2 || before.Accepted != 1 {
		t.Fatalf("unexpected initial counts: %+v", before)
	}

	if err := svc.Transition(context.Background(), sess, "1", StatusAccepted); err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}

	// El re-fetch awaited refleja el estado autoritativo del server:
	// los counts se corren exactamente uno de pending a accepted.
	after := reg.ForProvider("prov-1").Counts()
	if after.Pending != before.Pending-1 || after.Accepted != before.Accepted+1 {
		t.Fatalf("expected counts to shift by one, before=%+v after=%+v", before, after)
	}
	if after.Sum() != before.Sum() {
		t.Fatalf("collection size must not change on transition")
	}

	if got, ok := reg.ForProvider("prov-1").StatusOf("1"); !ok || got != StatusAccepted {
		t.Fatalf("expected booking 1 accepted, got %q", got)
	}
}

func TestService_Transition_IllegalEdgeBlockedLocally(t *testing.T) {
	api := &fakeAPI{bookings: []marketplace.BookingRecord{record("1", "pending")}}
	reg := newTestRegistry()
	svc := NewService(api, reg)
	sess := testSession()

	if err := svc.Refresh(context.Background(), sess); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	err := svc.Transition(context.Background(), sess, "1", StatusCompleted)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if api.updateCalls != 0 {
		t.Fatalf("illegal transition must not hit the server")
	}
}

func TestService_Transition_UnknownBookingDelegatesToServer(t *testing.T) {
	// Vista stale: el booking no está en el store => decide el server.
	api := &fakeAPI{bookings: []marketplace.BookingRecord{record("9", "pending")}}
	reg := newTestRegistry()
	svc := NewService(api, reg)

	if err := svc.Transition(context.Background(), testSession(), "9", StatusAccepted); err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if api.updateCalls != 1 {
		t.Fatalf("expected server call, got %d", api.updateCalls)
	}
}

func TestService_Transition_ServiceNotApproved_LeavesStateUntouched(t *testing.T) {
	api := &fakeAPI{bookings: []marketplace.BookingRecord{record("1", "pending")}}
	reg := newTestRegistry()
	svc := NewService(api, reg)
	sess := testSession()

	if err := svc.Refresh(context.Background(), sess); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	api.updateErr = marketplace.ErrServiceNotApproved
	listCallsBefore := api.listCalls

	err := svc.Transition(context.Background(), sess, "1", StatusAccepted)
	if !errors.Is(err, marketplace.ErrServiceNotApproved) {
		t.Fatalf("expected ErrServiceNotApproved, got %v", err)
	}

	// Sin re-fetch y con el status local intacto.
	if api.listCalls != listCallsBefore {
		t.Fatalf("failed transition must not trigger a re-fetch")
	}
	if got, _ := reg.ForProvider("prov-1").StatusOf("1"); got != StatusPending {
		t.Fatalf("expected booking 1 still pending, got %q", got)
	}
}

func TestService_Transition_RejectsUnknownTarget(t *testing.T) {
	svc := NewService(&fakeAPI{}, newTestRegistry())

	err := svc.Transition(context.Background(), testSession(), "1", Status("weird"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
