package handlers

import (
	"errors"
	"net/http"

	"github.com/crmlite/customers/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "github.com/crmlite/customers/internal/errors"
)

// response is the envelope every endpoint answers with, clients branch
// on Success rather than on the transport status code alone
type response struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func respondOK(c echo.Context, status int, msg string, data any) error {
	return c.JSON(status, &response{Success: true, Message: msg, Data: data})
}

// respondErr maps domain errors to status codes: validation 422,
// conflict 409, not found 404, anything else 500
func respondErr(c echo.Context, err error) error {
	var pldErr *validation.PayloadError
	if errors.As(err, &pldErr) {
		return c.JSON(http.StatusUnprocessableEntity, &response{
			Success: false,
			Message: "The given data was invalid.",
			Errors:  pldErr.Violations(),
		})
	}

	var confErr *apperrors.ConflictErr
	if errors.As(err, &confErr) {
		return c.JSON(http.StatusConflict, &response{Success: false, Message: confErr.Error()})
	}

	var nfErr *apperrors.NotFoundErr
	if errors.As(err, &nfErr) {
		return c.JSON(http.StatusNotFound, &response{Success: false, Message: nfErr.Error()})
	}

	logrus.Errorf("request to %s failed - %v", c.Path(), err)
	return c.JSON(http.StatusInternalServerError, &response{Success: false, Message: "Internal server error."})
}
