package bookingflow

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"staybcn/internal/domain/booking"
	"staybcn/internal/domain/catalog"
)

var testNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fakeStore keeps sessions in a plain map, no locking needed in tests.
type fakeStore struct {
	items map[string]*booking.Session
	next  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]*booking.Session)}
}

func (f *fakeStore) Create(ctx context.Context, session *booking.Session) (string, error) {
	f.next++
	id := "session-" + strconv.Itoa(f.next)
	f.items[id] = session
	return id, nil
}

func (f *fakeStore) View(ctx context.Context, id string, fn func(*booking.Session) error) error {
	return f.with(id, fn)
}

func (f *fakeStore) Update(ctx context.Context, id string, fn func(*booking.Session) error) error {
	return f.with(id, fn)
}

func (f *fakeStore) with(id string, fn func(*booking.Session) error) error {
	s, ok := f.items[id]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(s)
}

type fakeNotifier struct {
	confirmed []booking.Confirmation
	err       error
}

func (f *fakeNotifier) BookingConfirmed(ctx context.Context, conf booking.Confirmation) error {
	f.confirmed = append(f.confirmed, conf)
	return f.err
}

func catalogWith(t *testing.T) catalog.Catalog {
	t.Helper()
	first, err := catalog.NewUnit(catalog.CreateUnitParams{
		ID:          "gracia-401",
		Title:       "Terraza Privada",
		NightlyRate: 210,
		CleaningFee: 55,
		Capacity:    4,
		BlockedDates: []time.Time{
			date(2025, 10, 5),
		},
	})
	if err != nil {
		t.Fatalf("unit fixture invalid: %v", err)
	}
	second, err := catalog.NewUnit(catalog.CreateUnitParams{
		ID:          "gracia-402",
		Title:       "Ático con Terraza",
		NightlyRate: 180,
		CleaningFee: 55,
		Capacity:    4,
	})
	if err != nil {
		t.Fatalf("unit fixture invalid: %v", err)
	}
	return fakeCatalog{first, second}
}

type fakeCatalog []catalog.Unit

func (f fakeCatalog) List(ctx context.Context) ([]catalog.Unit, error) {
	return append([]catalog.Unit(nil), f...), nil
}

func (f fakeCatalog) ByID(ctx context.Context, id catalog.UnitID) (catalog.Unit, error) {
	for _, u := range f {
		if u.ID == id {
			return u, nil
		}
	}
	return catalog.Unit{}, catalog.ErrUnitNotFound
}

func newService(t *testing.T) (*Service, *fakeStore, *fakeNotifier) {
	t.Helper()
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := &Service{
		Catalog:        catalogWith(t),
		Sessions:       store,
		Notifier:       notifier,
		DefaultCityTax: 2,
		Now:            func() time.Time { return testNow },
	}
	return svc, store, notifier
}

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestOpenSession_PreselectsFirstUnit(t *testing.T) {
	svc, _, _ := newService(t)
	view, err := svc.OpenSession(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ID == "" {
		t.Error("expected a session id")
	}
	if view.Draft.Unit == nil || view.Draft.Unit.ID != "gracia-401" {
		t.Errorf("expected first unit preselected, got %+v", view.Draft.Unit)
	}
	if view.Draft.CityTaxRate != 2 {
		t.Errorf("expected default city tax 2, got %v", view.Draft.CityTaxRate)
	}
	if view.Derived.Nights != 3 {
		t.Errorf("expected seeded 3-night stay, got %d", view.Derived.Nights)
	}
}

func TestUpdateSelection_SwitchesUnit(t *testing.T) {
	svc, _, _ := newService(t)
	opened, _ := svc.OpenSession(context.Background())

	view, err := svc.UpdateSelection(context.Background(), opened.ID, SelectionInput{
		UnitID: strPtr("gracia-402"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Draft.Unit.ID != "gracia-402" {
		t.Errorf("expected gracia-402 selected, got %s", view.Draft.Unit.ID)
	}
	if view.Derived.Price.NightlyRate != 180 {
		t.Errorf("price must follow the new unit, got %v", view.Derived.Price.NightlyRate)
	}
}

func TestUpdateSelection_UnknownUnit(t *testing.T) {
	svc, _, _ := newService(t)
	opened, _ := svc.OpenSession(context.Background())

	_, err := svc.UpdateSelection(context.Background(), opened.ID, SelectionInput{
		UnitID: strPtr("missing"),
	})
	if !errors.Is(err, catalog.ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound, got %v", err)
	}
}

func TestConfirm_NotifiesOnce(t *testing.T) {
	svc, _, notifier := newService(t)
	opened, _ := svc.OpenSession(context.Background())

	if _, err := svc.UpdateSelection(context.Background(), opened.ID, SelectionInput{
		Name:          strPtr("Núria Ferrer"),
		Email:         strPtr("nuria@example.com"),
		RulesAccepted: boolPtr(true),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	conf, err := svc.Confirm(context.Background(), opened.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Code == "" {
		t.Error("expected a confirmation code")
	}
	if len(notifier.confirmed) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.confirmed))
	}

	// repeat confirm returns the same code and stays silent
	again, err := svc.Confirm(context.Background(), opened.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Code != conf.Code {
		t.Error("repeat confirm must return the original confirmation")
	}
	if len(notifier.confirmed) != 1 {
		t.Errorf("repeat confirm must not notify again, got %d", len(notifier.confirmed))
	}
}

func TestConfirm_SurfacesViolations(t *testing.T) {
	svc, _, notifier := newService(t)
	opened, _ := svc.OpenSession(context.Background())

	_, err := svc.Confirm(context.Background(), opened.ID)
	var validation *booking.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(notifier.confirmed) != 0 {
		t.Error("failed confirm must not notify")
	}
}

func TestBook_OneShot(t *testing.T) {
	svc, _, notifier := newService(t)

	conf, err := svc.Book(context.Background(), BookingInput{
		UnitID:        "gracia-401",
		CheckIn:       date(2025, 9, 10),
		CheckOut:      date(2025, 9, 13),
		Adults:        3,
		CityTaxRate:   2,
		Name:          "Núria Ferrer",
		Email:         "nuria@example.com",
		RulesAccepted: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Price.Total != 703 {
		t.Errorf("expected total 703, got %v", conf.Price.Total)
	}
	if len(notifier.confirmed) != 1 {
		t.Errorf("expected one notification, got %d", len(notifier.confirmed))
	}
}

func TestBook_MissingDatesViolation(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Book(context.Background(), BookingInput{
		UnitID:        "gracia-401",
		Adults:        2,
		Name:          "Núria Ferrer",
		Email:         "nuria@example.com",
		RulesAccepted: true,
	})
	var validation *booking.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	found := false
	for _, v := range validation.Violations {
		if v == booking.ViolationDatesMissing {
			found = true
		}
	}
	if !found {
		t.Errorf("expected dates_missing, got %v", validation.Violations)
	}
}

func TestBook_BlockedRange(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Book(context.Background(), BookingInput{
		UnitID:        "gracia-401",
		CheckIn:       date(2025, 10, 3),
		CheckOut:      date(2025, 10, 8),
		Adults:        2,
		Name:          "Núria Ferrer",
		Email:         "nuria@example.com",
		RulesAccepted: true,
	})
	var validation *booking.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestResetSession(t *testing.T) {
	svc, _, _ := newService(t)
	opened, _ := svc.OpenSession(context.Background())
	if _, err := svc.UpdateSelection(context.Background(), opened.ID, SelectionInput{
		Name:          strPtr("Núria Ferrer"),
		Email:         strPtr("nuria@example.com"),
		RulesAccepted: boolPtr(true),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Confirm(context.Background(), opened.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := svc.ResetSession(context.Background(), opened.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.State != booking.StateSelecting {
		t.Errorf("expected Selecting after reset, got %s", view.State)
	}
	if view.Confirmation != nil {
		t.Error("reset view must not carry a confirmation")
	}
}
