package handler

import (
	"net/http"

	"anoa.com/placementportal/internal/modules/company/dto"
	companyService "anoa.com/placementportal/internal/modules/company/service"
	"anoa.com/placementportal/pkg/response"
	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyService companyService.CompanyService
}

func NewCompanyHandler(companyService companyService.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func (h *CompanyHandler) GetProfile(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.companyService.GetProfile(c.Request.Context(), actor)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CompanyHandler) UpdateProfile(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateCompanyProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	profile, err := h.companyService.UpdateProfile(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateCompanyProfileResponse{
		Message: "Profile updated successfully",
		Profile: profile,
	})
}

func (h *CompanyHandler) GetAllCompanies(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	companies, err := h.companyService.ListAll(c.Request.Context(), actor)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, companies)
}
