package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/enrollhub/enrollment-api/internal/core/ports"
)

// MasterHandler serves the public master-data reference lists.
type MasterHandler struct {
	master ports.MasterService
}

func NewMasterHandler(master ports.MasterService) *MasterHandler {
	return &MasterHandler{master: master}
}

// States lists all states.
//
// @Summary      List states
// @Tags         master
// @Produce      json
// @Success      200  {array}  domain.State
// @Router       /master/states [get]
func (h *MasterHandler) States(c echo.Context) error {
	states, err := h.master.States(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, states)
}

// Districts lists the districts of one state.
//
// @Summary      List districts by state
// @Tags         master
// @Produce      json
// @Param        state_id  query  int  true  "State ID"
// @Success      200  {array}  domain.District
// @Router       /master/districts [get]
func (h *MasterHandler) Districts(c echo.Context) error {
	stateID, err := queryID(c, "state_id")
	if err != nil {
		return err
	}
	districts, err := h.master.Districts(c.Request().Context(), stateID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, districts)
}

// Colleges lists the colleges of one state.
//
// @Summary      List colleges by state
// @Tags         master
// @Produce      json
// @Param        state_id  query  int  true  "State ID"
// @Success      200  {array}  domain.College
// @Router       /master/colleges [get]
func (h *MasterHandler) Colleges(c echo.Context) error {
	stateID, err := queryID(c, "state_id")
	if err != nil {
		return err
	}
	colleges, err := h.master.Colleges(c.Request().Context(), stateID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, colleges)
}

// Castes lists all castes.
//
// @Summary      List castes
// @Tags         master
// @Produce      json
// @Success      200  {array}  domain.Caste
// @Router       /master/castes [get]
func (h *MasterHandler) Castes(c echo.Context) error {
	castes, err := h.master.Castes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, castes)
}

func queryID(c echo.Context, name string) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}
