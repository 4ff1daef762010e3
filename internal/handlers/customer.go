package handlers

import (
	"net/http"
	"strconv"

	"github.com/crmlite/customers/internal/model"
	"github.com/crmlite/customers/internal/service"
	"github.com/labstack/echo/v4"

	apperrors "github.com/crmlite/customers/internal/errors"
)

// CustomerHandler is the http handler for the customers endpoint
type CustomerHandler struct {
	custSvc service.CustomerService
}

func NewCustomerHandler(custSvc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{custSvc: custSvc}
}

// GetAll lists all customers, or runs an approximate text search when
// the search query param is present. Search results come straight from
// the index and carry no id or timestamps.
func (h *CustomerHandler) GetAll(c echo.Context) error {
	ctx := c.Request().Context()

	if query := c.QueryParam("search"); query != "" {
		docs, err := h.custSvc.Search(ctx, query)
		if err != nil {
			return respondErr(c, err)
		}
		return respondOK(c, http.StatusOK, "Search results retrieved successfully.", docs)
	}

	customers, err := h.custSvc.FindAll(ctx)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "Customers retrieved successfully.", customers)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return respondErr(c, err)
	}

	cust, err := h.custSvc.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "Customer retrieved successfully.", cust)
}

func (h *CustomerHandler) Post(c echo.Context) error {
	var newCust model.NewCustomer
	if err := c.Bind(&newCust); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&newCust); err != nil {
		return respondErr(c, err)
	}

	cust, err := h.custSvc.Create(c.Request().Context(), newCust)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusCreated, "Customer created successfully.", cust)
}

// Update serves both PUT and PATCH, absent fields keep their values
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return respondErr(c, err)
	}

	var patch model.PatchCustomer
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	patch.ID = id

	if err := c.Validate(&patch); err != nil {
		return respondErr(c, err)
	}

	cust, err := h.custSvc.Update(c.Request().Context(), patch)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "Customer updated successfully.", cust)
}

func (h *CustomerHandler) DeleteByID(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return respondErr(c, err)
	}

	if err := h.custSvc.DeleteByID(c.Request().Context(), id); err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "Customer deleted successfully.", nil)
}

// Reindex rebuilds the search index from the record store
func (h *CustomerHandler) Reindex(c echo.Context) error {
	indexed, err := h.custSvc.ReindexAll(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "Customers reindexed successfully.", map[string]int{"indexed": indexed})
}

// customerID parses the id path param, a malformed id can match no
// customer so it reports not found
func customerID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewNotFoundErr("Customer not found.")
	}
	return id, nil
}
