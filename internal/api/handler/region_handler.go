package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// RegionHandler serves the sido/sigungu/dong cascade. The upstream endpoints
// need no auth and no business rules, so the handler talks to the API port
// directly.
type RegionHandler struct {
	regions ports.RegionAPI
}

func NewRegionHandler(regions ports.RegionAPI) *RegionHandler {
	return &RegionHandler{regions: regions}
}

// Sido lists the top-level provinces.
//
// @Summary      Sido list
// @Tags         region
// @Produce      json
// @Success      200  {array}  string
// @Router       /law-dong/sido [get]
func (h *RegionHandler) Sido(c echo.Context) error {
	names, err := h.regions.SidoList(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, names)
}

// Sigungu lists the districts of a province.
//
// @Summary      Sigungu list
// @Tags         region
// @Produce      json
// @Param        sido  query  string  true  "Province name"
// @Success      200  {array}  string
// @Router       /law-dong/sigungu [get]
func (h *RegionHandler) Sigungu(c echo.Context) error {
	sido := c.QueryParam("sido")
	if sido == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "sido is required")
	}
	names, err := h.regions.SigunguList(c.Request().Context(), sido)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, names)
}

// Dong lists the neighborhoods of a district.
//
// @Summary      Dong list
// @Tags         region
// @Produce      json
// @Param        sido     query  string  true  "Province name"
// @Param        sigungu  query  string  true  "District name"
// @Success      200  {array}  string
// @Router       /law-dong/dong [get]
func (h *RegionHandler) Dong(c echo.Context) error {
	sido, sigungu := c.QueryParam("sido"), c.QueryParam("sigungu")
	if sido == "" || sigungu == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "sido and sigungu are required")
	}
	names, err := h.regions.DongList(c.Request().Context(), sido, sigungu)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, names)
}

// Resolve maps a full cascade selection to its legal-dong record.
//
// @Summary      Resolve law dong
// @Tags         region
// @Produce      json
// @Param        sido     query  string  true  "Province name"
// @Param        sigungu  query  string  true  "District name"
// @Param        dong     query  string  true  "Neighborhood name"
// @Success      200  {object}  domain.LawDong
// @Failure      404  {object}  errorResponse
// @Router       /law-dong/resolve [get]
func (h *RegionHandler) Resolve(c echo.Context) error {
	sido, sigungu, dong := c.QueryParam("sido"), c.QueryParam("sigungu"), c.QueryParam("dong")
	if sido == "" || sigungu == "" || dong == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "sido, sigungu and dong are required")
	}
	ld, err := h.regions.ResolveLawDong(c.Request().Context(), sido, sigungu, dong)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ld)
}
