package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type statusChange struct {
	booking  *entity.Booking
	from, to entity.BookingStatus
}

type recordingNotifier struct {
	mu        sync.Mutex
	created   []*entity.Booking
	changed   []statusChange
	cancelled []string
}

func (n *recordingNotifier) OnBookingCreated(b *entity.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, b)
}

func (n *recordingNotifier) OnBookingStatusChanged(b *entity.Booking, from, to entity.BookingStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, statusChange{booking: b, from: from, to: to})
}

func (n *recordingNotifier) OnBookingCancelled(b *entity.Booking, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, reason)
}

type capturingOTPSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func (s *capturingOTPSender) SendOTP(ctx context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = code
	return nil
}

func (s *capturingOTPSender) last(phone string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[phone]
}

type testEnv struct {
	store    *memStore
	repo     *repository.Repository
	config   *utils.Config
	notifier *recordingNotifier
	otp      *capturingOTPSender
	svc      *Service
}

func testConfig() *utils.Config {
	return &utils.Config{
		Database: utils.DatabaseConfig{QueryTimeout: 5 * time.Second},
		Session:  utils.SessionConfig{ExpiryHours: 24},
		OTP:      utils.OTPConfig{ExpiryMinutes: 5, Length: 6, MaxAttempts: 3},
		Booking:  utils.BookingConfig{ReferenceMaxAttempts: 5},
	}
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	env := &testEnv{
		store:    store,
		repo:     store.repository(),
		config:   testConfig(),
		notifier: &recordingNotifier{},
		otp:      &capturingOTPSender{codes: map[string]string{}},
	}
	env.svc = NewService(env.repo, env.config, env.notifier, env.otp, zap.NewNop())
	return env
}

func (e *testEnv) seedUser(role entity.UserRole) uuid.UUID {
	now := time.Now()
	id := uuid.New()

	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	e.store.st.users[id] = entity.User{
		Base:     entity.Base{ID: id, CreatedAt: now, UpdatedAt: now},
		Phone:    fmt.Sprintf("+9715%08d", len(e.store.st.users)+1),
		Role:     role,
		IsActive: true,
	}
	return id
}

func (e *testEnv) seedService(title string, price int64, active bool, carTypes ...entity.CarType) uuid.UUID {
	now := time.Now()
	id := uuid.New()

	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	e.store.st.services[id] = entity.Service{
		BaseNoDelete: entity.BaseNoDelete{ID: id, CreatedAt: now, UpdatedAt: now},
		Title:        title,
		Description:  title + " description",
		Price:        price,
		Category:     "Wash",
		CarTypes:     carTypes,
		IsActive:     active,
	}
	return id
}

func (e *testEnv) setServicePrice(id uuid.UUID, price int64) {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	s := e.store.st.services[id]
	s.Price = price
	e.store.st.services[id] = s
}

func (e *testEnv) setServiceActive(id uuid.UUID, active bool) {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	s := e.store.st.services[id]
	s.IsActive = active
	e.store.st.services[id] = s
}

func (e *testEnv) seedCar(userID uuid.UUID, carType entity.CarType, plate string) uuid.UUID {
	now := time.Now()
	id := uuid.New()

	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	e.store.st.cars[id] = entity.Car{
		Base:        entity.Base{ID: id, CreatedAt: now, UpdatedAt: now},
		UserID:      userID,
		Type:        carType,
		PlateNumber: plate,
	}
	return id
}

// seedBooking inserts a booking directly in the given status.
func (e *testEnv) seedBooking(userID uuid.UUID, status entity.BookingStatus) uuid.UUID {
	now := time.Now()
	id := uuid.New()

	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	e.store.st.bookings[id] = entity.Booking{
		BaseNoDelete:    entity.BaseNoDelete{ID: id, CreatedAt: now, UpdatedAt: now},
		ReferenceNumber: fmt.Sprintf("#D-%06d", len(e.store.st.bookings)+900000),
		UserID:          userID,
		ServiceID:       uuid.New(),
		ServiceTitle:    "Seeded wash",
		CarID:           uuid.New(),
		CarType:         entity.CarTypeSedan,
		CarPlate:        "SEED 1",
		ScheduledDate:   time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC),
		TimeSlot:        "10:00-11:00",
		Quantity:        1,
		UnitPrice:       50,
		TotalPrice:      50,
		Status:          status,
	}
	return id
}

func (e *testEnv) booking(id uuid.UUID) entity.Booking {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return e.store.st.bookings[id]
}

func (e *testEnv) countBookings() int {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return len(e.store.st.bookings)
}

func (e *testEnv) countCart(userID uuid.UUID) int {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	n := 0
	for _, item := range e.store.st.cart {
		if item.UserID == userID {
			n++
		}
	}
	return n
}

func (e *testEnv) addToCart(t *testing.T, userID, serviceID, carID uuid.UUID, date, slot string, qty int) uuid.UUID {
	t.Helper()

	item, err := e.svc.Cart.AddToCart(context.Background(), userID, &request.AddToCartRequest{
		ServiceID: serviceID.String(),
		CarID:     carID.String(),
		Date:      date,
		Slot:      slot,
		Qty:       qty,
	})
	require.NoError(t, err)
	return uuid.MustParse(item.ID)
}
