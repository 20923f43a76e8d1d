package booking

import (
	"errors"

	"catering/database"
	bookingRepo "catering/database/repository/booking"
	"catering/utils"
)

const storeName = "Database"

// storeError maps repository failures onto the error taxonomy.
func storeError(err error, id string) error {
	switch {
	case errors.Is(err, bookingRepo.ErrNotFound):
		return &utils.NotFoundError{Resource: "Booking", ID: id}
	case database.IsUnavailable(err):
		return &utils.UpstreamError{Service: storeName, Unavailable: true, Err: err}
	}
	return &utils.UpstreamError{Service: storeName, Err: err}
}
