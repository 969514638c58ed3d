// Package httperr maps store errors to the service's uniform HTTP error
// shape: {"error": "<message>"}.
package httperr

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/quickserve/catalog-service/internal/model"
)

type Response struct {
	Error string `json:"error"`
}

// JSON writes err with the status its class maps to: 404 for lookup
// misses, 409 for rejected deletes, 500 for everything else.
func JSON(c echo.Context, err error) error {
	return c.JSON(statusOf(err), Response{Error: err.Error()})
}

func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case model.IsNotFound(err):
		return http.StatusNotFound
	case model.IsReferentialViolation(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ParseIDParam parses a decimal integer path segment. Non-numeric segments
// are rejected rather than coerced into a never-matching id.
func ParseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be a decimal integer", name)
	}
	return id, nil
}
