package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var referencePattern = regexp.MustCompile(`^#D-\d{6}$`)

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending booking from the cart", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		serviceID := env.seedService("Exterior Wash", 50, true)
		carID := env.seedCar(userID, entity.CarTypeSedan, "X 1")
		env.addToCart(t, userID, serviceID, carID, "2024-11-04", "10:00-11:00", 1)

		result, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{})
		require.NoError(t, err)
		require.Len(t, result.Bookings, 1)

		b := result.Bookings[0]
		assert.Equal(t, entity.BookingStatusPending, b.Status)
		assert.Equal(t, int64(50), b.TotalPrice)
		assert.Equal(t, int64(50), result.Total)
		assert.Regexp(t, referencePattern, b.ReferenceNumber)
		assert.Equal(t, "2024-11-04", b.Date)
		assert.Equal(t, "10:00-11:00", b.Slot)
		assert.Equal(t, "X 1", b.Car.PlateNumber)

		assert.Zero(t, env.countCart(userID))
		assert.Len(t, env.notifier.created, 1)
	})

	t.Run("price is frozen at checkout", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		serviceID := env.seedService("Interior Clean", 30, true)
		carID := env.seedCar(userID, entity.CarTypeSUV, "S 1")
		env.addToCart(t, userID, serviceID, carID, "2024-11-05", "09:00 AM", 3)

		result, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{})
		require.NoError(t, err)
		require.Len(t, result.Bookings, 1)
		assert.Equal(t, int64(90), result.Bookings[0].TotalPrice)

		env.setServicePrice(serviceID, 999)

		fetched, err := env.svc.Booking.GetBooking(ctx, userID, uuid.MustParse(result.Bookings[0].ID))
		require.NoError(t, err)
		assert.Equal(t, int64(90), fetched.TotalPrice)
		assert.Equal(t, int64(30), fetched.UnitPrice)
	})

	t.Run("round trip returns what was created", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		serviceID := env.seedService("Full Detail", 120, true)
		carID := env.seedCar(userID, entity.CarTypeVan, "V 1")
		env.addToCart(t, userID, serviceID, carID, "2024-12-01", "14:00-15:00", 1)

		result, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{})
		require.NoError(t, err)

		fetched, err := env.svc.Booking.GetBooking(ctx, userID, uuid.MustParse(result.Bookings[0].ID))
		require.NoError(t, err)
		assert.Equal(t, result.Bookings[0], *fetched)
	})

	t.Run("one booking per selected item and the rest stays in the cart", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		wash := env.seedService("Wash", 50, true)
		wax := env.seedService("Wax", 20, true)
		carID := env.seedCar(userID, entity.CarTypeSedan, "A 1")
		first := env.addToCart(t, userID, wash, carID, "2024-11-04", "10:00-11:00", 1)
		second := env.addToCart(t, userID, wax, carID, "2024-11-04", "10:00-11:00", 2)
		env.addToCart(t, userID, wash, carID, "2024-11-06", "10:00-11:00", 1)

		result, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{
			CartItemIDs: []string{first.String(), second.String(), first.String()},
		})
		require.NoError(t, err)
		assert.Len(t, result.Bookings, 2)
		assert.Equal(t, int64(90), result.Total)
		assert.Equal(t, 1, env.countCart(userID))
		assert.NotEqual(t, result.Bookings[0].ReferenceNumber, result.Bookings[1].ReferenceNumber)
	})

	t.Run("empty cart", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)

		_, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{})
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("inactive service aborts the whole checkout", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		wash := env.seedService("Wash", 50, true)
		polish := env.seedService("Polish", 40, true)
		carID := env.seedCar(userID, entity.CarTypeSedan, "A 1")
		env.addToCart(t, userID, wash, carID, "2024-11-04", "10:00-11:00", 1)
		env.addToCart(t, userID, polish, carID, "2024-11-04", "11:00-12:00", 1)

		env.setServiceActive(polish, false)

		_, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{})
		assert.ErrorIs(t, err, ErrInactiveService)
		assert.Zero(t, env.countBookings())
		assert.Equal(t, 2, env.countCart(userID))
		assert.Empty(t, env.notifier.created)
	})

	t.Run("deleted car is rejected", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		serviceID := env.seedService("Wash", 50, true)
		carID := env.seedCar(userID, entity.CarTypeSedan, "A 1")
		itemID := env.addToCart(t, userID, serviceID, carID, "2024-11-04", "10:00-11:00", 1)

		// the car disappears without the cart cleanup DeleteCar would do
		env.store.mu.Lock()
		delete(env.store.st.cars, carID)
		env.store.mu.Unlock()

		_, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{CartItemIDs: []string{itemID.String()}})
		assert.ErrorIs(t, err, ErrInvalidCar)
		assert.Equal(t, 1, env.countCart(userID))
	})

	t.Run("foreign car reads as missing", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		otherID := env.seedUser(entity.RoleCustomer)
		serviceID := env.seedService("Wash", 50, true)
		carID := env.seedCar(userID, entity.CarTypeSedan, "A 1")
		itemID := env.addToCart(t, userID, serviceID, carID, "2024-11-04", "10:00-11:00", 1)

		// ownership changes behind the cart's back
		env.store.mu.Lock()
		car := env.store.st.cars[carID]
		car.UserID = otherID
		env.store.st.cars[carID] = car
		env.store.mu.Unlock()

		_, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{CartItemIDs: []string{itemID.String()}})
		assert.ErrorIs(t, err, ErrInvalidCar)
		assert.NotErrorIs(t, err, ErrForbidden)
		assert.Equal(t, 1, env.countCart(userID))
	})

	t.Run("partially missing selection is a conflict", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		serviceID := env.seedService("Wash", 50, true)
		carID := env.seedCar(userID, entity.CarTypeSedan, "A 1")
		itemID := env.addToCart(t, userID, serviceID, carID, "2024-11-04", "10:00-11:00", 1)

		_, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{
			CartItemIDs: []string{itemID.String(), uuid.NewString()},
		})
		assert.ErrorIs(t, err, ErrCartConflict)
		assert.Zero(t, env.countBookings())
		assert.Equal(t, 1, env.countCart(userID))
	})

	t.Run("another user's cart item is not found", func(t *testing.T) {
		env := setup(t)
		owner := env.seedUser(entity.RoleCustomer)
		other := env.seedUser(entity.RoleCustomer)
		serviceID := env.seedService("Wash", 50, true)
		carID := env.seedCar(owner, entity.CarTypeSedan, "A 1")
		itemID := env.addToCart(t, owner, serviceID, carID, "2024-11-04", "10:00-11:00", 1)

		_, err := env.svc.Booking.Checkout(ctx, other, &request.CheckoutRequest{CartItemIDs: []string{itemID.String()}})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 1, env.countCart(owner))
	})

	t.Run("invalid item id fails validation", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)

		_, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{CartItemIDs: []string{"nope"}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("default building is attached", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		serviceID := env.seedService("Wash", 50, true)
		carID := env.seedCar(userID, entity.CarTypeSedan, "A 1")
		env.addToCart(t, userID, serviceID, carID, "2024-11-04", "10:00-11:00", 1)

		building, err := env.svc.Building.AddBuilding(ctx, userID, &request.BuildingRequest{
			Name: "Marina Tower", Address: "1 Marina Walk", City: "Dubai", Country: "UAE",
		})
		require.NoError(t, err)

		result, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{})
		require.NoError(t, err)
		require.NotNil(t, result.Bookings[0].BuildingID)
		assert.Equal(t, building.ID, *result.Bookings[0].BuildingID)
	})

	t.Run("foreign building is not found", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		other := env.seedUser(entity.RoleCustomer)
		serviceID := env.seedService("Wash", 50, true)
		carID := env.seedCar(userID, entity.CarTypeSedan, "A 1")
		env.addToCart(t, userID, serviceID, carID, "2024-11-04", "10:00-11:00", 1)

		building, err := env.svc.Building.AddBuilding(ctx, other, &request.BuildingRequest{
			Name: "Other", Address: "2 Street", City: "Dubai", Country: "UAE",
		})
		require.NoError(t, err)

		_, err = env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{BuildingID: &building.ID})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 1, env.countCart(userID))
	})

	t.Run("store outage surfaces as unavailable", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		env.store.unavailable = true

		_, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{})
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

func TestCheckout_ConcurrentSingleItemCart(t *testing.T) {
	const n = 10
	ctx := context.Background()

	for _, explicit := range []bool{true, false} {
		t.Run(fmt.Sprintf("explicit ids %v", explicit), func(t *testing.T) {
			env := setup(t)
			userID := env.seedUser(entity.RoleCustomer)
			serviceID := env.seedService("Wash", 50, true)
			carID := env.seedCar(userID, entity.CarTypeSedan, "A 1")
			itemID := env.addToCart(t, userID, serviceID, carID, "2024-11-04", "10:00-11:00", 1)

			req := request.CheckoutRequest{}
			if explicit {
				req.CartItemIDs = []string{itemID.String()}
			}

			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				successes int
				losses    []error
			)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					r := req
					_, err := env.svc.Booking.Checkout(ctx, userID, &r)

					mu.Lock()
					defer mu.Unlock()
					if err == nil {
						successes++
						return
					}
					losses = append(losses, err)
				}()
			}
			wg.Wait()

			assert.Equal(t, 1, successes)
			assert.Len(t, losses, n-1)
			for _, err := range losses {
				if explicit {
					assert.ErrorIs(t, err, ErrNotFound)
				} else {
					assert.ErrorIs(t, err, ErrEmptyCart)
				}
			}
			assert.Equal(t, 1, env.countBookings())
			assert.Zero(t, env.countCart(userID))
		})
	}
}

func TestCheckout_ReferenceCollisions(t *testing.T) {
	ctx := context.Background()

	newEnv := func(t *testing.T, refs ...string) (*testEnv, *bookingService, uuid.UUID) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		serviceID := env.seedService("Wash", 50, true)
		carID := env.seedCar(userID, entity.CarTypeSedan, "A 1")
		env.addToCart(t, userID, serviceID, carID, "2024-11-04", "10:00-11:00", 1)

		// an existing booking owns #D-000001
		existing := env.seedBooking(env.seedUser(entity.RoleCustomer), entity.BookingStatusPending)
		env.store.mu.Lock()
		b := env.store.st.bookings[existing]
		b.ReferenceNumber = "#D-000001"
		env.store.st.bookings[existing] = b
		env.store.mu.Unlock()

		svc := NewBookingService(env.repo, env.config, env.notifier, zap.NewNop()).(*bookingService)
		var i int
		svc.newReference = func() (string, error) {
			ref := refs[i%len(refs)]
			i++
			return ref, nil
		}
		return env, svc, userID
	}

	t.Run("regenerates after a collision", func(t *testing.T) {
		env, svc, userID := newEnv(t, "#D-000001", "#D-000002")

		result, err := svc.Checkout(ctx, userID, &request.CheckoutRequest{})
		require.NoError(t, err)
		assert.Equal(t, "#D-000002", result.Bookings[0].ReferenceNumber)
		assert.Equal(t, 2, env.countBookings())
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		env, svc, userID := newEnv(t, "#D-000001")

		_, err := svc.Checkout(ctx, userID, &request.CheckoutRequest{})
		assert.ErrorIs(t, err, ErrReferenceGenerationFailed)
		assert.Equal(t, 1, env.countBookings())
		assert.Equal(t, 1, env.countCart(userID))
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	reason := &request.CancelBookingRequest{Reason: "Not happy with punctuality"}

	t.Run("allowed only from pending and accepted", func(t *testing.T) {
		for _, status := range entity.BookingStatuses {
			t.Run(string(status), func(t *testing.T) {
				env := setup(t)
				userID := env.seedUser(entity.RoleCustomer)
				bookingID := env.seedBooking(userID, status)

				resp, err := env.svc.Booking.Cancel(ctx, userID, bookingID, reason)
				if status.Cancellable() {
					require.NoError(t, err)
					assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
					require.NotNil(t, resp.CancelledBy)
					assert.Equal(t, entity.CancelledByUser, *resp.CancelledBy)
					return
				}
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, status, env.booking(bookingID).Status)
			})
		}
	})

	t.Run("second cancel is an invalid transition", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		serviceID := env.seedService("Wash", 50, true)
		carID := env.seedCar(userID, entity.CarTypeSedan, "X 1")
		env.addToCart(t, userID, serviceID, carID, "2024-11-04", "10:00-11:00", 1)

		result, err := env.svc.Booking.Checkout(ctx, userID, &request.CheckoutRequest{})
		require.NoError(t, err)
		bookingID := uuid.MustParse(result.Bookings[0].ID)

		cancelled, err := env.svc.Booking.Cancel(ctx, userID, bookingID, reason)
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancellationReason)
		assert.Equal(t, "Not happy with punctuality", *cancelled.CancellationReason)

		_, err = env.svc.Booking.Cancel(ctx, userID, bookingID, reason)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, []string{"Not happy with punctuality"}, env.notifier.cancelled)
	})

	t.Run("Other needs a note", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		bookingID := env.seedBooking(userID, entity.BookingStatusPending)

		_, err := env.svc.Booking.Cancel(ctx, userID, bookingID, &request.CancelBookingRequest{Reason: entity.CancelReasonOther})
		assert.ErrorIs(t, err, ErrValidation)

		note := "  moving abroad "
		resp, err := env.svc.Booking.Cancel(ctx, userID, bookingID, &request.CancelBookingRequest{
			Reason: entity.CancelReasonOther,
			Note:   &note,
		})
		require.NoError(t, err)
		assert.Equal(t, "Other: moving abroad", *resp.CancellationReason)
	})

	t.Run("unknown reason", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		bookingID := env.seedBooking(userID, entity.BookingStatusPending)

		_, err := env.svc.Booking.Cancel(ctx, userID, bookingID, &request.CancelBookingRequest{Reason: "bored"})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, entity.BookingStatusPending, env.booking(bookingID).Status)
	})

	t.Run("another user's booking is not found", func(t *testing.T) {
		env := setup(t)
		owner := env.seedUser(entity.RoleCustomer)
		other := env.seedUser(entity.RoleCustomer)
		bookingID := env.seedBooking(owner, entity.BookingStatusPending)

		_, err := env.svc.Booking.Cancel(ctx, other, bookingID, reason)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, entity.BookingStatusPending, env.booking(bookingID).Status)
	})

	t.Run("concurrent cancels succeed once", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		bookingID := env.seedBooking(userID, entity.BookingStatusAccepted)

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := env.svc.Booking.Cancel(ctx, userID, bookingID, reason)
				if err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
					return
				}
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
	})
}

func TestAdvance(t *testing.T) {
	ctx := context.Background()
	target := func(s entity.BookingStatus) *request.AdvanceBookingRequest {
		v := string(s)
		return &request.AdvanceBookingRequest{Target: &v}
	}

	t.Run("walks the lifecycle in order", func(t *testing.T) {
		env := setup(t)
		userID := env.seedUser(entity.RoleCustomer)
		bookingID := env.seedBooking(userID, entity.BookingStatusPending)

		for _, next := range []entity.BookingStatus{
			entity.BookingStatusAccepted,
			entity.BookingStatusInProgress,
			entity.BookingStatusCompleted,
		} {
			resp, err := env.svc.Booking.Advance(ctx, bookingID, target(next))
			require.NoError(t, err)
			assert.Equal(t, next, resp.Status)
		}

		require.Len(t, env.notifier.changed, 3)
		assert.Equal(t, entity.BookingStatusPending, env.notifier.changed[0].from)
		assert.Equal(t, entity.BookingStatusCompleted, env.notifier.changed[2].to)

		_, err := env.svc.Booking.Advance(ctx, bookingID, &request.AdvanceBookingRequest{})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("without a target moves one step", func(t *testing.T) {
		env := setup(t)
		bookingID := env.seedBooking(env.seedUser(entity.RoleCustomer), entity.BookingStatusAccepted)

		resp, err := env.svc.Booking.Advance(ctx, bookingID, &request.AdvanceBookingRequest{})
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusInProgress, resp.Status)
	})

	t.Run("skipping a state is rejected", func(t *testing.T) {
		env := setup(t)
		bookingID := env.seedBooking(env.seedUser(entity.RoleCustomer), entity.BookingStatusPending)

		_, err := env.svc.Booking.Advance(ctx, bookingID, target(entity.BookingStatusCompleted))
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, entity.BookingStatusPending, env.booking(bookingID).Status)
		assert.Empty(t, env.notifier.changed)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		env := setup(t)
		bookingID := env.seedBooking(env.seedUser(entity.RoleCustomer), entity.BookingStatusCancelled)

		_, err := env.svc.Booking.Advance(ctx, bookingID, &request.AdvanceBookingRequest{})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		env := setup(t)

		_, err := env.svc.Booking.Advance(ctx, uuid.New(), &request.AdvanceBookingRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("provider rejection cancels the booking", func(t *testing.T) {
		env := setup(t)
		bookingID := env.seedBooking(env.seedUser(entity.RoleCustomer), entity.BookingStatusPending)

		resp, err := env.svc.Booking.Reject(ctx, bookingID, &request.RejectBookingRequest{Reason: "No crew available"})
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
		require.NotNil(t, resp.CancelledBy)
		assert.Equal(t, entity.CancelledByProvider, *resp.CancelledBy)
		assert.Equal(t, []string{"No crew available"}, env.notifier.cancelled)
	})

	t.Run("in progress cannot be rejected", func(t *testing.T) {
		env := setup(t)
		bookingID := env.seedBooking(env.seedUser(entity.RoleCustomer), entity.BookingStatusInProgress)

		_, err := env.svc.Booking.Reject(ctx, bookingID, &request.RejectBookingRequest{Reason: "late"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestListBookings(t *testing.T) {
	ctx := context.Background()
	env := setup(t)
	userID := env.seedUser(entity.RoleCustomer)
	env.seedBooking(userID, entity.BookingStatusPending)
	env.seedBooking(userID, entity.BookingStatusCompleted)
	env.seedBooking(userID, entity.BookingStatusCompleted)
	env.seedBooking(env.seedUser(entity.RoleCustomer), entity.BookingStatusCompleted)

	t.Run("all of the user's bookings", func(t *testing.T) {
		page, err := env.svc.Booking.ListBookings(ctx, userID, &request.BookingListRequest{})
		require.NoError(t, err)
		assert.Len(t, page.Data, 3)
		assert.Equal(t, int64(3), page.Pagination.Total)
		assert.Equal(t, 1, page.Pagination.Page)
	})

	t.Run("filtered by status and paged", func(t *testing.T) {
		status := string(entity.BookingStatusCompleted)
		page, err := env.svc.Booking.ListBookings(ctx, userID, &request.BookingListRequest{
			PaginatedRequest: request.PaginatedRequest{Page: 2, PerPage: 1},
			Status:           &status,
		})
		require.NoError(t, err)
		assert.Len(t, page.Data, 1)
		assert.Equal(t, int64(2), page.Pagination.Total)
		assert.Equal(t, 2, page.Pagination.TotalPages)
	})

	t.Run("unknown status", func(t *testing.T) {
		status := "rejected"
		_, err := env.svc.Booking.ListBookings(ctx, userID, &request.BookingListRequest{Status: &status})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestCancelReasons(t *testing.T) {
	env := setup(t)

	reasons := env.svc.Booking.CancelReasons()
	assert.Equal(t, entity.CancelReasons, reasons.Reasons)
	assert.Equal(t, entity.CancelReasonOther, reasons.Other)

	// callers get a copy
	reasons.Reasons[0] = "changed"
	assert.NotEqual(t, "changed", entity.CancelReasons[0])
}
