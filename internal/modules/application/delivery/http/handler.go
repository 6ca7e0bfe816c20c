package handler

import (
	"net/http"

	"anoa.com/placementportal/internal/modules/application/dto"
	appService "anoa.com/placementportal/internal/modules/application/service"
	"anoa.com/placementportal/pkg/response"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationService appService.ApplicationService
}

func NewApplicationHandler(applicationService appService.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.ApplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ApplicationMessageResponse{
		Message:     "Application submitted successfully",
		Application: application,
	})
}

func (h *ApplicationHandler) GetStudentApplications(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	applications, err := h.applicationService.ListByStudent(c.Request.Context(), actor)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) GetJobApplications(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	jobID, err := response.ParamUUID(c, "jobId")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	applications, err := h.applicationService.ListByJob(c.Request.Context(), actor, jobID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) GetAllApplications(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	applications, err := h.applicationService.ListAll(c.Request.Context(), actor)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	application, err := h.applicationService.SetStatus(c.Request.Context(), actor, id, input.Status)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ApplicationMessageResponse{
		Message:     "Application status updated successfully",
		Application: application,
	})
}
