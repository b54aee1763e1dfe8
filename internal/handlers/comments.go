package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/scriptscope/internal/middleware"
	"github.com/localnerve/scriptscope/internal/services"
	"github.com/localnerve/scriptscope/internal/types"
	"github.com/localnerve/scriptscope/internal/utils"
	"gorm.io/gorm"
)

// CommentHandler handles the two comment kinds
type CommentHandler struct {
	DB *gorm.DB
}

// AddChapterComment handles POST /api/chapter_comments
// @Summary Comment on a chapter
// @Tags Comments
// @Accept json
// @Produce json
// @Param body body object true "chapter_id, content"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /chapter_comments [post]
func (h *CommentHandler) AddChapterComment(c *fiber.Ctx) error {
	var body struct {
		ChapterID types.FlexUint64 `json:"chapter_id"`
		Content   string           `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "comments.validation.input")
	}

	id, err := services.AddChapterComment(h.DB, middleware.Principal(c), uint(body.ChapterID.Uint64()), body.Content)
	if err != nil {
		return domainErrorResponse(c, err, "comments.chapter.add")
	}
	return utils.MutationSuccessResponse(c, fiber.Map{"id": id})
}

// AddSectionComment handles POST /api/section_comments
// @Summary Comment on a section
// @Tags Comments
// @Accept json
// @Produce json
// @Param body body object true "section_id, content"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /section_comments [post]
func (h *CommentHandler) AddSectionComment(c *fiber.Ctx) error {
	var body struct {
		SectionID types.FlexUint64 `json:"section_id"`
		Content   string           `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "comments.validation.input")
	}

	id, err := services.AddSectionComment(h.DB, middleware.Principal(c), uint(body.SectionID.Uint64()), body.Content)
	if err != nil {
		return domainErrorResponse(c, err, "comments.section.add")
	}
	return utils.MutationSuccessResponse(c, fiber.Map{"id": id})
}

// ListChapterComments handles GET /api/chapter_comments/:chapterId
// @Summary List a chapter's comments, newest first
// @Tags Comments
// @Produce json
// @Param chapterId path int true "Chapter ID"
// @Success 200 {array} services.CommentView
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /chapter_comments/{chapterId} [get]
func (h *CommentHandler) ListChapterComments(c *fiber.Ctx) error {
	chapterID, err := parseID(c, "chapterId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "comments.validation.id")
	}

	comments, err := services.ListChapterComments(h.DB, chapterID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "comments.chapter.list")
	}
	return c.Status(fiber.StatusOK).JSON(comments)
}

// ListSectionComments handles GET /api/section_comments/:sectionId
// @Summary List a section's comments, newest first
// @Tags Comments
// @Produce json
// @Param sectionId path int true "Section ID"
// @Success 200 {array} services.CommentView
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /section_comments/{sectionId} [get]
func (h *CommentHandler) ListSectionComments(c *fiber.Ctx) error {
	sectionID, err := parseID(c, "sectionId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "comments.validation.id")
	}

	comments, err := services.ListSectionComments(h.DB, sectionID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "comments.section.list")
	}
	return c.Status(fiber.StatusOK).JSON(comments)
}
