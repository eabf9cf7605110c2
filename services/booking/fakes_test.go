package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"busfleet/database/repository"
	"busfleet/models"

	"go.uber.org/zap"
)

// memStore is an in-memory stand-in for the trip, booking, fleet and
// reservation repositories. Its commits apply the same version and status
// guards as the Mongo implementation.
type memStore struct {
	mu        sync.Mutex
	trips     map[string]models.Trip
	bookings  map[string]models.Booking
	busRoutes map[string]models.BusRoute
	buses     map[string]models.Bus

	// commitErrs are returned, in order, by the next reservation commits
	// before any write is applied.
	commitErrs []error
	commits    int
}

func newMemStore() *memStore {
	return &memStore{
		trips:     make(map[string]models.Trip),
		bookings:  make(map[string]models.Booking),
		busRoutes: make(map[string]models.BusRoute),
		buses:     make(map[string]models.Bus),
	}
}

func copyTrip(t models.Trip) *models.Trip {
	seats := make([]models.SeatAvailability, len(t.SeatAvailability))
	copy(seats, t.SeatAvailability)
	t.SeatAvailability = seats
	return &t
}

func copyBooking(b models.Booking) *models.Booking {
	seats := make([]models.SeatDetail, len(b.SeatDetails))
	copy(seats, b.SeatDetails)
	b.SeatDetails = seats
	return &b
}

// --- TripRepository ---

func (m *memStore) Create(ctx context.Context, trip *models.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.trips {
		if t.BusRouteID == trip.BusRouteID && t.TripDate.Equal(trip.TripDate) {
			return fmt.Errorf("trip for route %s: %w", trip.BusRouteID, repository.ErrDuplicateKey)
		}
	}
	m.trips[trip.ID] = *copyTrip(*trip)
	return nil
}

func (m *memStore) GetByID(ctx context.Context, tripID string) (*models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[tripID]
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", tripID, repository.ErrNotFound)
	}
	return copyTrip(t), nil
}

func (m *memStore) FindByRouteAndDate(ctx context.Context, busRouteID string, tripDate time.Time) (*models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.trips {
		if t.BusRouteID == busRouteID && t.TripDate.Equal(tripDate) {
			return copyTrip(t), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) UpdateStatus(ctx context.Context, tripID string, expectedVersion int64, status models.TripStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[tripID]
	if !ok || t.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	t.Status = status
	t.Version++
	m.trips[tripID] = t
	return nil
}

// --- FleetRepository ---

func (m *memStore) GetBusRoute(ctx context.Context, busRouteID string) (*models.BusRoute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	br, ok := m.busRoutes[busRouteID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &br, nil
}

func (m *memStore) GetBus(ctx context.Context, busID string) (*models.Bus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buses[busID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

// --- ReservationRepository ---

func (m *memStore) CommitReservation(ctx context.Context, tripID string, expectedVersion int64, seats []models.SeatAvailability, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits++
	if len(m.commitErrs) > 0 {
		err := m.commitErrs[0]
		m.commitErrs = m.commitErrs[1:]
		return err
	}
	t, ok := m.trips[tripID]
	if !ok || t.Version != expectedVersion || t.Status != models.TripStatusScheduled {
		return repository.ErrVersionConflict
	}
	for _, b := range m.bookings {
		if b.BookingReference == booking.BookingReference {
			return repository.ErrDuplicateKey
		}
	}
	t.SeatAvailability = append([]models.SeatAvailability(nil), seats...)
	t.Version++
	m.trips[tripID] = t
	m.bookings[booking.ID] = *copyBooking(*booking)
	return nil
}

func (m *memStore) CommitCancellation(ctx context.Context, tripID string, expectedVersion int64, seats []models.SeatAvailability, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits++
	if len(m.commitErrs) > 0 {
		err := m.commitErrs[0]
		m.commitErrs = m.commitErrs[1:]
		return err
	}
	t, ok := m.trips[tripID]
	if !ok || t.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	current, ok := m.bookings[booking.ID]
	if !ok || current.Status != models.BookingStatusConfirmed {
		return repository.ErrBookingStateChanged
	}
	t.SeatAvailability = append([]models.SeatAvailability(nil), seats...)
	t.Version++
	m.trips[tripID] = t
	m.bookings[booking.ID] = *copyBooking(*booking)
	return nil
}

// bookingStore adapts memStore to BookingRepository; GetByID collides with
// the trip lookup on memStore itself.
type bookingStore struct{ *memStore }

func (s bookingStore) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", bookingID, repository.ErrNotFound)
	}
	return copyBooking(b), nil
}

func (s bookingStore) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.BookingReference == reference {
			return copyBooking(b), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s bookingStore) ListByPassenger(ctx context.Context, passengerID string, status models.BookingStatus, skip, limit int64) ([]models.Booking, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Booking
	for _, b := range s.bookings {
		if b.PassengerID != passengerID || (status != "" && b.Status != status) {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := int64(len(matched))
	if skip >= total {
		return nil, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return matched[skip:end], total, nil
}

func (s bookingStore) UpdatePayment(ctx context.Context, bookingID string, payment models.PaymentDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok || b.Status != models.BookingStatusConfirmed || b.PaymentDetails.PaymentStatus != models.PaymentStatusPending {
		return repository.ErrBookingStateChanged
	}
	b.PaymentDetails = payment
	s.bookings[bookingID] = b
	return nil
}

// --- fixtures ---

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(store *memStore) *DefaultBookingService {
	clock := &fakeClock{now: testNow}
	return &DefaultBookingService{
		Trips:        store,
		Bookings:     bookingStore{store},
		Fleet:        store,
		Reservations: store,
		Locker:       NewLocalTripLocker(),
		Payments:     &SimulatedPaymentProcessor{logger: zap.NewNop(), now: clock.Now},
		Currency:     "lkr",
		Now:          clock.Now,
	}
}

// seedFleet stores bus "bus-1" with totalSeats seats assigned to bus route
// "route-1" at baseFare.
func seedFleet(store *memStore, totalSeats int, baseFare float64, status models.BusRouteStatus) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.buses["bus-1"] = models.Bus{ID: "bus-1", Specifications: models.BusSpecifications{TotalSeats: totalSeats}}
	store.busRoutes["route-1"] = models.BusRoute{
		ID:      "route-1",
		BusID:   "bus-1",
		Status:  status,
		Pricing: models.RoutePricing{BaseFare: baseFare},
	}
}

// seedTrip stores the fleet plus a scheduled trip of totalSeats seats on tripDate.
func seedTrip(store *memStore, tripID string, totalSeats int, baseFare float64, tripDate time.Time) {
	seedFleet(store, totalSeats, baseFare, models.BusRouteStatusActive)
	store.mu.Lock()
	defer store.mu.Unlock()
	store.trips[tripID] = models.Trip{
		ID:               tripID,
		BusRouteID:       "route-1",
		TripDate:         tripDate,
		Status:           models.TripStatusScheduled,
		SeatAvailability: NewSeatMap(totalSeats),
	}
}

func (m *memStore) trip(tripID string) models.Trip {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *copyTrip(m.trips[tripID])
}

func reserveRequest(tripID, passengerID string, labels ...string) models.ReserveRequest {
	details := make([]models.SeatDetail, 0, len(labels))
	for _, l := range labels {
		details = append(details, models.SeatDetail{
			SeatNumber:      l,
			PassengerName:   "Passenger " + l,
			PassengerAge:    30,
			PassengerGender: "female",
		})
	}
	return models.ReserveRequest{
		TripID:        tripID,
		PassengerID:   passengerID,
		SeatDetails:   details,
		Journey:       models.JourneyInput{BoardingPoint: "Colombo", DroppingPoint: "Kandy", JourneyTime: "08:30"},
		PaymentMethod: models.PaymentMethodCard,
	}
}
