package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"catering/database"
	bookingRepo "catering/database/repository/booking"
	"catering/models"
	"catering/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, id string, fields map[string]any) (*models.Booking, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

const bookingID = "7f9c24e5-2a3b-4c1d-9e8f-0a1b2c3d4e5f"

var unavailable = fmt.Errorf("%w: dial tcp: connection refused", database.ErrUnavailable)

func init() {
	utils.Logger = zap.NewNop()
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Phone:     "07700 900000",
		Location:  "Leeds",
		EventDate: "2026-06-01",
	}
}

func TestCreateBookingMissingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.BookingRequest)
		field  string
	}{
		{"name", func(r *models.BookingRequest) { r.Name = "" }, "name"},
		{"email", func(r *models.BookingRequest) { r.Email = "  " }, "email"},
		{"phone", func(r *models.BookingRequest) { r.Phone = "" }, "phone"},
		{"location", func(r *models.BookingRequest) { r.Location = "" }, "location"},
		{"event date", func(r *models.BookingRequest) { r.EventDate = "" }, "eventDate"},
		{"first of several", func(r *models.BookingRequest) { r.Phone = ""; r.EventDate = "" }, "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			svc := NewBookingService(repo)
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.CreateBooking(context.Background(), req)

			var verr *utils.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, "Missing required field: "+tt.field, verr.Error())
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateBookingMapsRequest(t *testing.T) {
	repo := new(mockRepo)
	svc := NewBookingService(repo)

	req := validRequest()
	req.Services = models.ServiceSelection{HogRoast: true, Bar: false}
	req.HogRoastGuests = models.Guests(60)
	req.BarGuests = models.Guests(40)
	req.DietaryNotes = "no nuts"

	var saved *models.Booking
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Booking")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Booking) }).
		Return(&models.Booking{ID: bookingID}, nil)

	created, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, created.Durable)
	assert.Equal(t, bookingID, created.BookingID)
	require.NotNil(t, saved)
	assert.NotEmpty(t, saved.ID)

	assert.Equal(t, models.BookingStatusPending, saved.Status)
	assert.False(t, saved.DepositPaid)
	assert.Equal(t, "Ada Lovelace", saved.ClientName)
	require.NotNil(t, saved.HogRoastGuests)
	assert.Equal(t, 60, *saved.HogRoastGuests)
	assert.Nil(t, saved.BarGuests, "guest count of an unselected service is dropped")
	require.NotNil(t, saved.DietaryNotes)
	assert.Equal(t, "no nuts", *saved.DietaryNotes)
	assert.Nil(t, saved.ArrivalTime)
}

func TestCreateBookingStoreUnavailable(t *testing.T) {
	repo := new(mockRepo)
	svc := NewBookingService(repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, unavailable)

	created, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, created.Durable)
	assert.NotEmpty(t, created.BookingID)
}

func TestCreateBookingStoreFailure(t *testing.T) {
	repo := new(mockRepo)
	svc := NewBookingService(repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("constraint violation"))

	_, err := svc.CreateBooking(context.Background(), validRequest())
	status, category := utils.Classify(err)
	assert.Equal(t, 500, status)
	assert.Equal(t, utils.CategoryUpstream, category)
}

func TestListBookingsUnavailableIsEmpty(t *testing.T) {
	repo := new(mockRepo)
	svc := NewBookingService(repo)
	repo.On("GetAll", mock.Anything).Return(nil, unavailable)

	bookings, err := svc.ListBookings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestGetBookingErrors(t *testing.T) {
	t.Run("store down with any id", func(t *testing.T) {
		svc := NewBookingService(bookingRepo.NewTableBookingRepo(database.Disconnected{}))

		_, err := svc.GetBooking(context.Background(), "abc")
		status, category := utils.Classify(err)
		assert.Equal(t, 503, status)
		assert.Equal(t, utils.CategoryUnavailable, category)

		name := "Bea"
		_, err = svc.UpdateBooking(context.Background(), "abc", models.BookingUpdate{ClientName: &name})
		status, _ = utils.Classify(err)
		assert.Equal(t, 503, status)

		_, err = svc.ApplyDepositPayment(context.Background(), "abc", models.DepositPayment{Amount: 500, SessionID: "cs_1"})
		status, _ = utils.Classify(err)
		assert.Equal(t, 503, status)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, bookingID).Return(nil, bookingRepo.ErrNotFound)
		_, err := NewBookingService(repo).GetBooking(context.Background(), bookingID)
		status, _ := utils.Classify(err)
		assert.Equal(t, 404, status)
	})

	t.Run("store down", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, bookingID).Return(nil, unavailable)
		_, err := NewBookingService(repo).GetBooking(context.Background(), bookingID)
		status, category := utils.Classify(err)
		assert.Equal(t, 503, status)
		assert.Equal(t, utils.CategoryUnavailable, category)
		assert.Equal(t, "Database not available", err.Error())
	})
}

func TestUpdateBooking(t *testing.T) {
	repo := new(mockRepo)
	svc := NewBookingService(repo)

	name := "Grace Hopper"
	status := models.BookingStatusDepositPaid
	repo.On("Update", mock.Anything, bookingID, map[string]any{
		"client_name":      "Grace Hopper",
		"status":           "deposit_paid",
		"hog_roast_guests": 80,
	}).Return(&models.Booking{ID: bookingID, ClientName: name, Status: status}, nil)

	updated, err := svc.UpdateBooking(context.Background(), bookingID, models.BookingUpdate{
		ClientName:     &name,
		Status:         &status,
		HogRoastGuests: models.Guests(80),
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.ClientName)
	repo.AssertExpectations(t)
}

func TestUpdateBookingValidation(t *testing.T) {
	repo := new(mockRepo)
	svc := NewBookingService(repo)

	_, err := svc.UpdateBooking(context.Background(), bookingID, models.BookingUpdate{})
	var verr *utils.ValidationError
	assert.ErrorAs(t, err, &verr)

	bogus := models.BookingStatus("archived")
	_, err = svc.UpdateBooking(context.Background(), bookingID, models.BookingUpdate{Status: &bogus})
	assert.ErrorAs(t, err, &verr)

	empty := " "
	_, err = svc.UpdateBooking(context.Background(), bookingID, models.BookingUpdate{ClientEmail: &empty})
	assert.ErrorAs(t, err, &verr)

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBookingNotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Update", mock.Anything, bookingID, mock.Anything).Return(nil, bookingRepo.ErrNotFound)

	paid := true
	_, err := NewBookingService(repo).UpdateBooking(context.Background(), bookingID, models.BookingUpdate{DepositPaid: &paid})
	var nf *utils.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestApplyDepositPaymentIsIdempotent(t *testing.T) {
	repo := new(mockRepo)
	svc := NewBookingService(repo)

	pending := &models.Booking{ID: bookingID, Status: models.BookingStatusPending}
	amount := 500.0
	session := "cs_test_123"
	paid := &models.Booking{
		ID:              bookingID,
		Status:          models.BookingStatusDepositPaid,
		DepositPaid:     true,
		DepositAmount:   &amount,
		StripeSessionID: &session,
	}

	repo.On("GetByID", mock.Anything, bookingID).Return(pending, nil).Once()
	repo.On("Update", mock.Anything, bookingID, map[string]any{
		"status":            "deposit_paid",
		"deposit_paid":      true,
		"deposit_amount":    500.0,
		"stripe_session_id": "cs_test_123",
	}).Return(paid, nil).Once()
	repo.On("GetByID", mock.Anything, bookingID).Return(paid, nil).Once()

	payment := models.DepositPayment{Amount: 500, SessionID: session}
	first, err := svc.ApplyDepositPayment(context.Background(), bookingID, payment)
	require.NoError(t, err)
	second, err := svc.ApplyDepositPayment(context.Background(), bookingID, payment)
	require.NoError(t, err)

	assert.Equal(t, *first.DepositAmount, *second.DepositAmount)
	assert.Equal(t, first.Status, second.Status)
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestApplyDepositPaymentUnknownBooking(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, bookingID).Return(nil, bookingRepo.ErrNotFound)

	_, err := NewBookingService(repo).ApplyDepositPayment(context.Background(), bookingID, models.DepositPayment{Amount: 500, SessionID: "cs"})
	var nf *utils.NotFoundError
	assert.ErrorAs(t, err, &nf)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
