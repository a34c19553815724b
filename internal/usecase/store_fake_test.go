package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"

	"github.com/google/uuid"
)

// memState is the whole in-memory database. Values, not pointers, so a
// shallow map copy is a consistent snapshot.
type memState struct {
	users         map[uuid.UUID]entity.User
	settings      map[uuid.UUID]entity.NotificationSettings
	sessions      map[uuid.UUID]entity.Session
	otps          map[uuid.UUID]entity.OTP
	services      map[uuid.UUID]entity.Service
	cars          map[uuid.UUID]entity.Car
	buildings     map[uuid.UUID]entity.Building
	cart          map[uuid.UUID]entity.CartItem
	bookings      map[uuid.UUID]entity.Booking
	wallet        []entity.WalletTransaction
	notifications map[uuid.UUID]entity.Notification
	reviews       map[uuid.UUID]entity.Review
}

func newMemState() memState {
	return memState{
		users:         map[uuid.UUID]entity.User{},
		settings:      map[uuid.UUID]entity.NotificationSettings{},
		sessions:      map[uuid.UUID]entity.Session{},
		otps:          map[uuid.UUID]entity.OTP{},
		services:      map[uuid.UUID]entity.Service{},
		cars:          map[uuid.UUID]entity.Car{},
		buildings:     map[uuid.UUID]entity.Building{},
		cart:          map[uuid.UUID]entity.CartItem{},
		bookings:      map[uuid.UUID]entity.Booking{},
		notifications: map[uuid.UUID]entity.Notification{},
		reviews:       map[uuid.UUID]entity.Review{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s memState) clone() memState {
	return memState{
		users:         cloneMap(s.users),
		settings:      cloneMap(s.settings),
		sessions:      cloneMap(s.sessions),
		otps:          cloneMap(s.otps),
		services:      cloneMap(s.services),
		cars:          cloneMap(s.cars),
		buildings:     cloneMap(s.buildings),
		cart:          cloneMap(s.cart),
		bookings:      cloneMap(s.bookings),
		wallet:        append([]entity.WalletTransaction(nil), s.wallet...),
		notifications: cloneMap(s.notifications),
		reviews:       cloneMap(s.reviews),
	}
}

// memStore backs every repository interface. Transactions are serialized
// and roll back by restoring a snapshot, which is enough to observe the
// all-or-nothing and race outcomes the services promise.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   memState

	// unavailable makes every call fail like a timed out query.
	unavailable bool
}

func newMemStore() *memStore {
	return &memStore{st: newMemState()}
}

func (m *memStore) lock() (func(), error) {
	m.mu.Lock()
	if m.unavailable {
		m.mu.Unlock()
		return nil, context.DeadlineExceeded
	}
	return m.mu.Unlock, nil
}

// repository returns a Repository whose every member reads and writes m.
func (m *memStore) repository() *repository.Repository {
	repo := m.bind()
	repo.Tx = &memTransactor{store: m}
	return repo
}

func (m *memStore) bind() *repository.Repository {
	return &repository.Repository{
		User:         &memUserRepo{m},
		Session:      &memSessionRepo{m},
		OTP:          &memOTPRepo{m},
		Service:      &memServiceRepo{m},
		Car:          &memCarRepo{m},
		Building:     &memBuildingRepo{m},
		Cart:         &memCartRepo{m},
		Booking:      &memBookingRepo{m},
		Wallet:       &memWalletRepo{m},
		Notification: &memNotificationRepo{m},
		Review:       &memReviewRepo{m},
	}
}

type memTransactor struct {
	store *memStore
}

func (t *memTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *repository.Repository) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	t.store.mu.Lock()
	snapshot := t.store.st.clone()
	t.store.mu.Unlock()

	tx := t.store.bind()
	tx.Tx = joinedMemTransactor{repo: tx}

	if err := fn(ctx, tx); err != nil {
		t.store.mu.Lock()
		t.store.st = snapshot
		t.store.mu.Unlock()
		return err
	}
	return nil
}

type joinedMemTransactor struct {
	repo *repository.Repository
}

func (j joinedMemTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *repository.Repository) error) error {
	return fn(ctx, j.repo)
}

func ptr[T any](v T) *T { return &v }

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ==================== USERS / AUTH ====================

type memUserRepo struct{ m *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	for _, u := range r.m.st.users {
		if u.Phone == user.Phone {
			return repository.ErrDuplicate
		}
	}
	r.m.st.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	u, ok := r.m.st.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, u := range r.m.st.users {
		if u.Phone == phone && u.DeletedAt == nil {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if _, ok := r.m.st.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	r.m.st.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindNotificationSettings(ctx context.Context, id uuid.UUID) (*entity.NotificationSettings, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	u, ok := r.m.st.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	settings, ok := r.m.st.settings[id]
	if !ok {
		settings = entity.DefaultNotificationSettings()
	}
	return &settings, nil
}

func (r *memUserRepo) UpdateNotificationSettings(ctx context.Context, id uuid.UUID, settings entity.NotificationSettings) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if _, ok := r.m.st.users[id]; !ok {
		return repository.ErrNotFound
	}
	r.m.st.settings[id] = settings
	return nil
}

type memSessionRepo struct{ m *memStore }

func (r *memSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	r.m.st.sessions[session.Token] = *session
	return nil
}

func (r *memSessionRepo) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	s, ok := r.m.st.sessions[token]
	if !ok || s.RevokedAt != nil || !s.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	u, ok := r.m.st.users[s.UserID]
	if !ok || !u.IsActive || u.DeletedAt != nil {
		return nil, nil
	}
	s.Role = u.Role
	return &s, nil
}

func (r *memSessionRepo) Revoke(ctx context.Context, token uuid.UUID) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	s, ok := r.m.st.sessions[token]
	if !ok || s.RevokedAt != nil {
		return repository.ErrNotFound
	}
	s.RevokedAt = ptr(time.Now())
	r.m.st.sessions[token] = s
	return nil
}

func (r *memSessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	var n int64
	for token, s := range r.m.st.sessions {
		if !s.ExpiresAt.After(time.Now()) {
			delete(r.m.st.sessions, token)
			n++
		}
	}
	return n, nil
}

type memOTPRepo struct{ m *memStore }

func (r *memOTPRepo) Create(ctx context.Context, otp *entity.OTP) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	r.m.st.otps[otp.ID] = *otp
	return nil
}

func (r *memOTPRepo) FindLatestValid(ctx context.Context, phone string) (*entity.OTP, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	var latest *entity.OTP
	for _, o := range r.m.st.otps {
		if o.Phone != phone || o.IsUsed || !o.ExpiresAt.After(time.Now()) {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = ptr(o)
		}
	}
	return latest, nil
}

func (r *memOTPRepo) IncrementAttempts(ctx context.Context, otpID uuid.UUID) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	o := r.m.st.otps[otpID]
	o.Attempts++
	r.m.st.otps[otpID] = o
	return nil
}

func (r *memOTPRepo) MarkAsUsed(ctx context.Context, otpID uuid.UUID) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	o, ok := r.m.st.otps[otpID]
	if !ok || o.IsUsed {
		return repository.ErrNotFound
	}
	o.IsUsed = true
	r.m.st.otps[otpID] = o
	return nil
}

// ==================== CATALOG / FLEET ====================

type memServiceRepo struct{ m *memStore }

func (r *memServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	s, ok := r.m.st.services[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memServiceRepo) FindAll(ctx context.Context, filter entity.ServiceFilter) ([]*entity.Service, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	var out []*entity.Service
	for _, s := range r.m.st.services {
		if s.IsActive && filter.Matches(&s) {
			out = append(out, ptr(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

type memCarRepo struct{ m *memStore }

func (r *memCarRepo) plateTaken(car *entity.Car) bool {
	for _, c := range r.m.st.cars {
		if c.ID != car.ID && c.UserID == car.UserID && c.DeletedAt == nil &&
			strings.EqualFold(c.PlateNumber, car.PlateNumber) {
			return true
		}
	}
	return false
}

func (r *memCarRepo) Create(ctx context.Context, car *entity.Car) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if r.plateTaken(car) {
		return repository.ErrDuplicate
	}
	r.m.st.cars[car.ID] = *car
	return nil
}

func (r *memCarRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, ok := r.m.st.cars[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	return &c, nil
}

func (r *memCarRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Car, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	var out []*entity.Car
	for _, c := range r.m.st.cars {
		if c.UserID == userID && c.DeletedAt == nil {
			out = append(out, ptr(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memCarRepo) Update(ctx context.Context, car *entity.Car) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	c, ok := r.m.st.cars[car.ID]
	if !ok || c.UserID != car.UserID || c.DeletedAt != nil {
		return repository.ErrNotFound
	}
	if r.plateTaken(car) {
		return repository.ErrDuplicate
	}
	r.m.st.cars[car.ID] = *car
	return nil
}

func (r *memCarRepo) SoftDelete(ctx context.Context, id, userID uuid.UUID) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	c, ok := r.m.st.cars[id]
	if !ok || c.UserID != userID || c.DeletedAt != nil {
		return repository.ErrNotFound
	}
	c.DeletedAt = ptr(time.Now())
	r.m.st.cars[id] = c
	return nil
}

type memBuildingRepo struct{ m *memStore }

func (r *memBuildingRepo) Create(ctx context.Context, building *entity.Building) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	r.m.st.buildings[building.ID] = *building
	return nil
}

func (r *memBuildingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Building, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, ok := r.m.st.buildings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *memBuildingRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Building, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	var out []*entity.Building
	for _, b := range r.m.st.buildings {
		if b.UserID == userID {
			out = append(out, ptr(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memBuildingRepo) FindDefault(ctx context.Context, userID uuid.UUID) (*entity.Building, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, b := range r.m.st.buildings {
		if b.UserID == userID && b.IsDefault {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *memBuildingRepo) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	for id, b := range r.m.st.buildings {
		if b.UserID == userID && b.IsDefault {
			b.IsDefault = false
			r.m.st.buildings[id] = b
		}
	}
	return nil
}

func (r *memBuildingRepo) SetDefault(ctx context.Context, id, userID uuid.UUID) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	b, ok := r.m.st.buildings[id]
	if !ok || b.UserID != userID {
		return repository.ErrNotFound
	}
	b.IsDefault = true
	r.m.st.buildings[id] = b
	return nil
}

// ==================== CART ====================

type memCartRepo struct{ m *memStore }

func sameSelection(a, b entity.CartItem) bool {
	return a.UserID == b.UserID && a.ServiceID == b.ServiceID && a.CarID == b.CarID &&
		a.ScheduledDate.Equal(b.ScheduledDate) && a.TimeSlot == b.TimeSlot
}

func (r *memCartRepo) Upsert(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	for id, existing := range r.m.st.cart {
		if sameSelection(existing, *item) {
			existing.Quantity += item.Quantity
			if item.SpecialInstructions != nil {
				existing.SpecialInstructions = item.SpecialInstructions
			}
			existing.UpdatedAt = time.Now()
			r.m.st.cart[id] = existing
			return &existing, nil
		}
	}
	r.m.st.cart[item.ID] = *item
	return ptr(*item), nil
}

func (r *memCartRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	item, ok := r.m.st.cart[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *memCartRepo) byUser(userID uuid.UUID, keep func(entity.CartItem) bool) []*entity.CartItem {
	var out []*entity.CartItem
	for _, item := range r.m.st.cart {
		if item.UserID == userID && keep(item) {
			out = append(out, ptr(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *memCartRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return r.byUser(userID, func(entity.CartItem) bool { return true }), nil
}

func (r *memCartRepo) LockByUserAndIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*entity.CartItem, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.byUser(userID, func(item entity.CartItem) bool { return wanted[item.ID] }), nil
}

func (r *memCartRepo) LockByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	return r.FindByUserID(ctx, userID)
}

func (r *memCartRepo) UpdateQuantity(ctx context.Context, id, userID uuid.UUID, delta int) (*entity.CartItem, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	item, ok := r.m.st.cart[id]
	if !ok || item.UserID != userID {
		return nil, repository.ErrNotFound
	}
	item.Quantity += delta
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	r.m.st.cart[id] = item
	return &item, nil
}

func (r *memCartRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	item, ok := r.m.st.cart[id]
	if !ok || item.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.m.st.cart, id)
	return nil
}

func (r *memCartRepo) deleteWhere(keep func(entity.CartItem) bool) int64 {
	var n int64
	for id, item := range r.m.st.cart {
		if keep(item) {
			delete(r.m.st.cart, id)
			n++
		}
	}
	return n
}

func (r *memCartRepo) DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.deleteWhere(func(item entity.CartItem) bool { return item.UserID == userID && wanted[item.ID] }), nil
}

func (r *memCartRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	return r.deleteWhere(func(item entity.CartItem) bool { return item.UserID == userID }), nil
}

func (r *memCartRepo) DeleteByCarID(ctx context.Context, userID, carID uuid.UUID) (int64, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	return r.deleteWhere(func(item entity.CartItem) bool { return item.UserID == userID && item.CarID == carID }), nil
}

// ==================== BOOKINGS ====================

type memBookingRepo struct{ m *memStore }

func (r *memBookingRepo) Create(ctx context.Context, booking *entity.Booking) (bool, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return false, err
	}
	defer unlock()

	for _, b := range r.m.st.bookings {
		if b.ReferenceNumber == booking.ReferenceNumber {
			return false, nil
		}
	}
	r.m.st.bookings[booking.ID] = *booking
	return true, nil
}

func (r *memBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, ok := r.m.st.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *memBookingRepo) filter(userID uuid.UUID, status *entity.BookingStatus) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.m.st.bookings {
		if b.UserID == userID && (status == nil || b.Status == *status) {
			out = append(out, ptr(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return page(r.filter(userID, status), limit, offset), nil
}

func (r *memBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus) (int64, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	return int64(len(r.filter(userID, status))), nil
}

func (r *memBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (*entity.Booking, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, ok := r.m.st.bookings[id]
	if !ok || b.Status != from {
		return nil, repository.ErrNotFound
	}
	b.Status = to
	b.UpdatedAt = time.Now()
	r.m.st.bookings[id] = b
	return &b, nil
}

func (r *memBookingRepo) Cancel(ctx context.Context, id uuid.UUID, userID *uuid.UUID, reason string, by entity.CancelledBy) (*entity.Booking, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, ok := r.m.st.bookings[id]
	if !ok || (userID != nil && b.UserID != *userID) || !b.Status.Cancellable() {
		return nil, repository.ErrNotFound
	}
	b.Status = entity.BookingStatusCancelled
	b.CancellationReason = &reason
	b.CancelledBy = &by
	b.UpdatedAt = time.Now()
	r.m.st.bookings[id] = b
	return &b, nil
}

// ==================== WALLET / INBOX / REVIEWS ====================

type memWalletRepo struct{ m *memStore }

func (r *memWalletRepo) Create(ctx context.Context, txn *entity.WalletTransaction) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	r.m.st.wallet = append(r.m.st.wallet, *txn)
	return nil
}

func (r *memWalletRepo) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	var balance int64
	for _, t := range r.m.st.wallet {
		if t.UserID != userID {
			continue
		}
		if t.Type == entity.TransactionCredit {
			balance += t.Amount
		} else {
			balance -= t.Amount
		}
	}
	return balance, nil
}

func (r *memWalletRepo) byUser(userID uuid.UUID) []*entity.WalletTransaction {
	var out []*entity.WalletTransaction
	for i := len(r.m.st.wallet) - 1; i >= 0; i-- {
		if r.m.st.wallet[i].UserID == userID {
			out = append(out, ptr(r.m.st.wallet[i]))
		}
	}
	return out
}

func (r *memWalletRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.WalletTransaction, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return page(r.byUser(userID), limit, offset), nil
}

func (r *memWalletRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	return int64(len(r.byUser(userID))), nil
}

func (r *memWalletRepo) FindByReference(ctx context.Context, userID uuid.UUID, reference string, txnType entity.TransactionType) (*entity.WalletTransaction, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, t := range r.m.st.wallet {
		if t.UserID == userID && t.Type == txnType && t.Reference != nil && *t.Reference == reference {
			return ptr(t), nil
		}
	}
	return nil, nil
}

// LockUser is a no-op: memTransactor already serializes transactions.
func (r *memWalletRepo) LockUser(ctx context.Context, userID uuid.UUID) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	unlock()
	return nil
}

type memNotificationRepo struct{ m *memStore }

func (r *memNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	r.m.st.notifications[n.ID] = *n
	return nil
}

func (r *memNotificationRepo) byUser(userID uuid.UUID) []*entity.Notification {
	var out []*entity.Notification
	for _, n := range r.m.st.notifications {
		if n.UserID == userID {
			out = append(out, ptr(n))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return page(r.byUser(userID), limit, offset), nil
}

func (r *memNotificationRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	return int64(len(r.byUser(userID))), nil
}

func (r *memNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	var n int64
	for _, item := range r.byUser(userID) {
		if !item.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *memNotificationRepo) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	n, ok := r.m.st.notifications[id]
	if !ok || n.UserID != userID {
		return repository.ErrNotFound
	}
	n.IsRead = true
	r.m.st.notifications[id] = n
	return nil
}

type memReviewRepo struct{ m *memStore }

func (r *memReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	unlock, err := r.m.lock()
	if err != nil {
		return err
	}
	defer unlock()

	for _, existing := range r.m.st.reviews {
		if existing.BookingID == review.BookingID {
			return repository.ErrDuplicate
		}
	}
	r.m.st.reviews[review.ID] = *review
	return nil
}

func (r *memReviewRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, review := range r.m.st.reviews {
		if review.BookingID == bookingID {
			return ptr(review), nil
		}
	}
	return nil, nil
}

func (r *memReviewRepo) byUser(userID uuid.UUID) []*entity.Review {
	var out []*entity.Review
	for _, review := range r.m.st.reviews {
		if review.UserID == userID {
			out = append(out, ptr(review))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memReviewRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return page(r.byUser(userID), limit, offset), nil
}

func (r *memReviewRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	unlock, err := r.m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	return int64(len(r.byUser(userID))), nil
}
