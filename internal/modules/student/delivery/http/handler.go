package handler

import (
	"net/http"

	"anoa.com/placementportal/internal/modules/student/dto"
	studentService "anoa.com/placementportal/internal/modules/student/service"
	"anoa.com/placementportal/pkg/apperror"
	"anoa.com/placementportal/pkg/response"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentService studentService.StudentService
}

func NewStudentHandler(studentService studentService.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func (h *StudentHandler) GetProfile(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.studentService.GetProfile(c.Request.Context(), actor)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateStudentProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	profile, err := h.studentService.UpdateProfile(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateStudentProfileResponse{
		Message: "Profile updated successfully",
		Profile: profile,
	})
}

func (h *StudentHandler) UploadResume(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		response.ResponseError(c, apperror.Validation("resume file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, apperror.Validation("failed to read resume file"))
		return
	}
	defer file.Close()

	profile, err := h.studentService.UploadResume(c.Request.Context(), actor, dto.ResumeFile{
		Reader:   file,
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
	})
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateStudentProfileResponse{
		Message: "Resume uploaded successfully",
		Profile: profile,
	})
}

func (h *StudentHandler) GetAllStudents(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	students, err := h.studentService.ListAll(c.Request.Context(), actor)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}
