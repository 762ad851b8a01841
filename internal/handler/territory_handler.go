package handler

import (
	"context"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/addresskit/internal/utils"
	"github.com/GTDGit/addresskit/pkg/addresskit"
)

// AddressService is the subset of the AddressKit client the handlers need.
type AddressService interface {
	GetProvinces(ctx context.Context) ([]addresskit.Province, error)
	GetProvince(ctx context.Context, provinceCode string) *addresskit.Province
	GetDistricts(ctx context.Context, provinceCode string) ([]addresskit.District, error)
	GetDistrict(ctx context.Context, provinceCode, districtCode string) *addresskit.District
	GetWards(ctx context.Context, provinceCode, districtCode string) ([]addresskit.Ward, error)
	GetWard(ctx context.Context, provinceCode, districtCode, wardCode string) *addresskit.Ward
	SearchProvinces(ctx context.Context, query string) ([]addresskit.Province, error)
	SearchDistricts(ctx context.Context, provinceCode, query string) ([]addresskit.District, error)
	SearchWards(ctx context.Context, provinceCode, districtCode, query string) ([]addresskit.Ward, error)
}

var _ AddressService = (*addresskit.Client)(nil)

// Administrative codes are numeric; anything else would be forwarded
// unescaped into the upstream path.
var codePattern = regexp.MustCompile(`^\d{1,10}$`)

// TerritoryHandler exposes province/district/ward lookups over HTTP.
type TerritoryHandler struct {
	svc AddressService
}

// NewTerritoryHandler creates a new TerritoryHandler.
func NewTerritoryHandler(svc AddressService) *TerritoryHandler {
	return &TerritoryHandler{svc: svc}
}

// RegisterTerritoryRoutes mounts the territory endpoints on group.
func RegisterTerritoryRoutes(group *gin.RouterGroup, h *TerritoryHandler) {
	group.GET("/province", h.GetProvinces)
	group.GET("/province/:province_code", h.GetProvince)
	group.GET("/province/:province_code/district", h.GetDistricts)
	group.GET("/province/:province_code/district/:district_code", h.GetDistrict)
	group.GET("/province/:province_code/district/:district_code/ward", h.GetWards)
	group.GET("/province/:province_code/district/:district_code/ward/:ward_code", h.GetWard)
}

// GetProvinces returns all provinces, filtered by ?q= when present.
// GET /v1/territory/province
func (h *TerritoryHandler) GetProvinces(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Query("q")

	var (
		provinces []addresskit.Province
		err       error
	)
	if query != "" {
		provinces, err = h.svc.SearchProvinces(ctx, query)
	} else {
		provinces, err = h.svc.GetProvinces(ctx)
	}
	if err != nil {
		h.upstreamError(c, err, "Failed to retrieve provinces")
		return
	}

	utils.SuccessWithMeta(c, http.StatusOK, "Successfully retrieved provinces", provinces, utils.Meta{
		Total: utils.IntPtr(len(provinces)),
		Query: query,
	})
}

// GetProvince returns a single province.
// GET /v1/territory/province/:province_code
func (h *TerritoryHandler) GetProvince(c *gin.Context) {
	provinceCode := c.Param("province_code")
	if !h.validCodes(c, provinceCode) {
		return
	}

	province := h.svc.GetProvince(c.Request.Context(), provinceCode)
	if province == nil {
		utils.Error(c, http.StatusNotFound, utils.ErrNotFound.Error(), "Province with code '"+provinceCode+"' does not exist")
		return
	}
	utils.Success(c, http.StatusOK, "Successfully retrieved province", province)
}

// GetDistricts returns the districts of a province, filtered by ?q= when present.
// GET /v1/territory/province/:province_code/district
func (h *TerritoryHandler) GetDistricts(c *gin.Context) {
	ctx := c.Request.Context()
	provinceCode := c.Param("province_code")
	query := c.Query("q")
	if !h.validCodes(c, provinceCode) {
		return
	}

	var (
		districts []addresskit.District
		err       error
	)
	if query != "" {
		districts, err = h.svc.SearchDistricts(ctx, provinceCode, query)
	} else {
		districts, err = h.svc.GetDistricts(ctx, provinceCode)
	}
	if err != nil {
		h.upstreamError(c, err, "Failed to retrieve districts")
		return
	}

	utils.SuccessWithMeta(c, http.StatusOK, "Successfully retrieved districts", districts, utils.Meta{
		Total:        utils.IntPtr(len(districts)),
		Query:        query,
		ProvinceCode: provinceCode,
	})
}

// GetDistrict returns a single district.
// GET /v1/territory/province/:province_code/district/:district_code
func (h *TerritoryHandler) GetDistrict(c *gin.Context) {
	provinceCode := c.Param("province_code")
	districtCode := c.Param("district_code")
	if !h.validCodes(c, provinceCode, districtCode) {
		return
	}

	district := h.svc.GetDistrict(c.Request.Context(), provinceCode, districtCode)
	if district == nil {
		utils.Error(c, http.StatusNotFound, utils.ErrNotFound.Error(), "District with code '"+districtCode+"' does not exist")
		return
	}
	utils.Success(c, http.StatusOK, "Successfully retrieved district", district)
}

// GetWards returns the wards of a district, filtered by ?q= when present.
// GET /v1/territory/province/:province_code/district/:district_code/ward
func (h *TerritoryHandler) GetWards(c *gin.Context) {
	ctx := c.Request.Context()
	provinceCode := c.Param("province_code")
	districtCode := c.Param("district_code")
	query := c.Query("q")
	if !h.validCodes(c, provinceCode, districtCode) {
		return
	}

	var (
		wards []addresskit.Ward
		err   error
	)
	if query != "" {
		wards, err = h.svc.SearchWards(ctx, provinceCode, districtCode, query)
	} else {
		wards, err = h.svc.GetWards(ctx, provinceCode, districtCode)
	}
	if err != nil {
		h.upstreamError(c, err, "Failed to retrieve wards")
		return
	}

	utils.SuccessWithMeta(c, http.StatusOK, "Successfully retrieved wards", wards, utils.Meta{
		Total:        utils.IntPtr(len(wards)),
		Query:        query,
		ProvinceCode: provinceCode,
		DistrictCode: districtCode,
	})
}

// GetWard returns a single ward.
// GET /v1/territory/province/:province_code/district/:district_code/ward/:ward_code
func (h *TerritoryHandler) GetWard(c *gin.Context) {
	provinceCode := c.Param("province_code")
	districtCode := c.Param("district_code")
	wardCode := c.Param("ward_code")
	if !h.validCodes(c, provinceCode, districtCode, wardCode) {
		return
	}

	ward := h.svc.GetWard(c.Request.Context(), provinceCode, districtCode, wardCode)
	if ward == nil {
		utils.Error(c, http.StatusNotFound, utils.ErrNotFound.Error(), "Ward with code '"+wardCode+"' does not exist")
		return
	}
	utils.Success(c, http.StatusOK, "Successfully retrieved ward", ward)
}

// Helper functions

func (h *TerritoryHandler) validCodes(c *gin.Context, codes ...string) bool {
	for _, code := range codes {
		if !codePattern.MatchString(code) {
			utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Code '"+code+"' must be numeric")
			return false
		}
	}
	return true
}

func (h *TerritoryHandler) upstreamError(c *gin.Context, err error, message string) {
	status, code := utils.ClassifyUpstream(err)
	log.Warn().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Msg("upstream addresskit request failed")
	utils.Error(c, status, code.Error(), message)
}
