package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"provider-dashboard/internal/ports/auth"
	"provider-dashboard/internal/ports/marketplace"
)

// -------------------------
// Fakes (in-memory)
// -------------------------

type fakeAPI struct {
	record marketplace.ProviderRecord
	err    error
	calls  int
}

func (f *fakeAPI) GetProvider(ctx context.Context, token, providerID string) (marketplace.ProviderRecord, error) {
	f.calls++
	if f.err != nil {
		return marketplace.ProviderRecord{}, f.err
	}
	return f.record, nil
}

func (f *fakeAPI) ListBookings(ctx context.Context, token, providerID string) ([]marketplace.BookingRecord, error) {
	return nil, nil
}

func (f *fakeAPI) UpdateBookingStatus(ctx context.Context, token, bookingID, status string) error {
	return nil
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

type fakeCache struct {
	byToken map[string]Provider
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{byToken: map[string]Provider{}}
}

func (c *fakeCache) Get(token string) (Provider, bool) {
	p, ok := c.byToken[token]
	return p, ok
}

func (c *fakeCache) Put(token string, p Provider, expiresAt time.Time) {
	c.puts++
	c.byToken[token] = p
}

func approvedRecord() marketplace.ProviderRecord {
	return marketplace.ProviderRecord{
		ID:     "prov-1",
		Name:   "Lucía",
		Email:  "lucia@example.com",
		Role:   "provider",
		Status: "approved",
	}
}

func session() auth.Session {
	return auth.Session{
		Token: "tok-1",
		Claims: auth.Claims{
			ProviderID: "prov-1",
			Role:       "provider",
			ExpiresAt:  time.Now().Add(time.Hour),
		},
	}
}

// -------------------------
// Tests
// -------------------------

func TestAuthorize_ApprovedProvider(t *testing.T) {
	api := &fakeAPI{record: approvedRecord()}
	svc := NewService(api, newFakeCache())

	p, err := svc.Authorize(context.Background(), session())
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if p.ID != "prov-1" || p.Approval != ApprovalApproved {
		t.Fatalf("unexpected provider: %+v", p)
	}
	if !p.Approved() {
		t.Fatalf("expected Approved() true")
	}
}

func TestAuthorize_NormalizesRoleAndStatusCase(t *testing.T) {
	record := approvedRecord()
	record.Role = " Provider "
	record.Status = "APPROVED"
	svc := NewService(&fakeAPI{record: record}, nil)

	p, err := svc.Authorize(context.Background(), session())
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if p.Role != RoleProvider || p.Approval != ApprovalApproved {
		t.Fatalf("expected normalized role/status, got %+v", p)
	}
}

func TestAuthorize_PendingAccountRejected(t *testing.T) {
	record := approvedRecord()
	record.Status = "pending"
	svc := NewService(&fakeAPI{record: record}, newFakeCache())

	_, err := svc.Authorize(context.Background(), session())
	if !errors.Is(err, ErrNotApproved) {
		t.Fatalf("expected ErrNotApproved, got %v", err)
	}
}

func TestAuthorize_WrongRoleRejected(t *testing.T) {
	record := approvedRecord()
	record.Role = "customer"
	svc := NewService(&fakeAPI{record: record}, newFakeCache())

	_, err := svc.Authorize(context.Background(), session())
	if !errors.Is(err, ErrNotAProvider) {
		t.Fatalf("expected ErrNotAProvider, got %v", err)
	}
}

func TestAuthorize_MissingRecord(t *testing.T) {
	svc := NewService(&fakeAPI{err: marketplace.ErrNotFound}, newFakeCache())

	_, err := svc.Authorize(context.Background(), session())
	if !errors.Is(err, ErrProviderMissing) {
		t.Fatalf("expected ErrProviderMissing, got %v", err)
	}
}

func TestAuthorize_SessionInvalidPassthrough(t *testing.T) {
	svc := NewService(&fakeAPI{err: marketplace.ErrSessionInvalid}, newFakeCache())

	_, err := svc.Authorize(context.Background(), session())
	if !errors.Is(err, marketplace.ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestAuthorize_UpstreamErrorPassthrough(t *testing.T) {
	upstream := &marketplace.UpstreamError{Status: 503, Message: "maintenance"}
	svc := NewService(&fakeAPI{err: upstream}, newFakeCache())

	_, err := svc.Authorize(context.Background(), session())
	var ue *marketplace.UpstreamError
	if !errors.As(err, &ue) || ue.Status != 503 {
		t.Fatalf("expected UpstreamError 503, got %v", err)
	}
}

func TestAuthorize_CacheSkipsSecondNetworkCall(t *testing.T) {
	api := &fakeAPI{record: approvedRecord()}
	cache := newFakeCache()
	svc := NewService(api, cache)
	sess := session()

	if _, err := svc.Authorize(context.Background(), sess); err != nil {
		t.Fatalf("Authorize #1 returned error: %v", err)
	}
	if _, err := svc.Authorize(context.Background(), sess); err != nil {
		t.Fatalf("Authorize #2 returned error: %v", err)
	}

	if api.calls != 1 {
		t.Fatalf("expected a single network call, got %d", api.calls)
	}
	if cache.puts != 1 {
		t.Fatalf("expected a single cache Put, got %d", cache.puts)
	}
}

func TestAuthorize_RejectionsNeverCached(t *testing.T) {
	record := approvedRecord()
	record.Status = "pending"
	api := &fakeAPI{record: record}
	cache := newFakeCache()
	svc := NewService(api, cache)
	sess := session()

	for i := 0; i < 2; i++ {
		if _, err := svc.Authorize(context.Background(), sess); !errors.Is(err, ErrNotApproved) {
			t.Fatalf("attempt %d: expected ErrNotApproved, got %v", i, err)
		}
	}

	// Cada intento rechazado vuelve a la red: una aprobación posterior
	// del admin se refleja sin esperar a que expire nada.
	if api.calls != 2 {
		t.Fatalf("expected 2 network calls, got %d", api.calls)
	}
	if cache.puts != 0 {
		t.Fatalf("rejections must not be cached, got %d puts", cache.puts)
	}
}

func TestAuthorize_MissingProviderIDRejectedLocally(t *testing.T) {
	api := &fakeAPI{record: approvedRecord()}
	svc := NewService(api, newFakeCache())

	_, err := svc.Authorize(context.Background(), auth.Session{Token: "tok"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if api.calls != 0 {
		t.Fatalf("expected no network call, got %d", api.calls)
	}
}
