package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminContentController struct {
	adminService service.AdminService
}

func NewAdminContentController(adminService service.AdminService) *AdminContentController {
	return &AdminContentController{adminService: adminService}
}

// CreateLesson godoc
// @Summary (Admin) Create a lesson with its questions
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param lesson body dto.LessonCreateDTO true "Lesson with questions"
// @Success 201 {object} dto.LessonResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/lessons [post]
func (c *AdminContentController) CreateLesson(ctx *gin.Context) {
	var req dto.LessonCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	lesson, err := c.adminService.CreateLesson(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateLesson: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create lesson", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, lesson)
}

// CreatePack godoc
// @Summary (Admin) Create a lesson pack
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param pack body dto.PackCreateDTO true "Pack details"
// @Success 201 {object} dto.PackResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/packs [post]
func (c *AdminContentController) CreatePack(ctx *gin.Context) {
	var req dto.PackCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	pack, err := c.adminService.CreatePack(req)
	if err != nil {
		log.Error().Err(err).Msg("CreatePack: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create pack", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, pack)
}
