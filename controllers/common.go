package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
	mysql "github.com/go-sql-driver/mysql"
)

// isDuplicateKey recognizes unique-index violations from MySQL (errno 1062)
// and from the sqlite driver used in tests.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "Duplicate entry")
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Validation failures and missing records are recoverable; the client
// resubmits the form.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.JSONError(c, http.StatusBadRequest, verr.Reason)
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "record not found")
	case errors.Is(err, services.ErrNoAvailableRoom):
		utils.JSONError(c, http.StatusConflict, "no available room matches the application; select one manually")
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "the room was taken by a concurrent operation; please retry")
	default:
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	}
}

// parseDateField parses an optional YYYY-MM-DD form value.
func parseDateField(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
