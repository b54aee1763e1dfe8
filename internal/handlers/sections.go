// sections.go
//
// Server-rendered-free JSON backend for the ScriptScope content sharing app
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of scriptscope.
// scriptscope is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// scriptscope is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with scriptscope.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/scriptscope/internal/middleware"
	"github.com/localnerve/scriptscope/internal/models"
	"github.com/localnerve/scriptscope/internal/services"
	"github.com/localnerve/scriptscope/internal/types"
	"github.com/localnerve/scriptscope/internal/utils"
	"gorm.io/gorm"
)

// SectionHandler handles section routes
type SectionHandler struct {
	DB *gorm.DB
}

func sectionRef(s *models.Section) interface{} {
	if s == nil {
		return nil
	}
	return fiber.Map{"id": s.ID, "name": s.Name}
}

// Create handles POST /api/sections
// @Summary Create a section under a chapter
// @Tags Sections
// @Accept json
// @Produce json
// @Param body body object true "chapter_id, name, content"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /sections [post]
func (h *SectionHandler) Create(c *fiber.Ctx) error {
	var body struct {
		ChapterID types.FlexUint64 `json:"chapter_id"`
		Name      string           `json:"name"`
		Content   *string          `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "sections.validation.input")
	}

	id, err := services.CreateSection(h.DB, middleware.Principal(c), uint(body.ChapterID.Uint64()), body.Name, body.Content)
	if err != nil {
		return domainErrorResponse(c, err, "sections.create")
	}

	return utils.MutationSuccessResponse(c, fiber.Map{
		"section": fiber.Map{"id": id, "name": body.Name},
	})
}

// Update handles PUT /api/sections/:id
// @Summary Update a section's name and content
// @Tags Sections
// @Accept json
// @Produce json
// @Param id path int true "Section ID"
// @Param body body object true "name, content"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /sections/{id} [put]
func (h *SectionHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "sections.validation.id")
	}

	var body struct {
		Name    string  `json:"name"`
		Content *string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "sections.validation.input")
	}

	if err := services.UpdateSection(h.DB, middleware.Principal(c), id, body.Name, body.Content); err != nil {
		return domainErrorResponse(c, err, "sections.update")
	}
	return utils.MutationSuccessResponse(c, nil)
}

// Delete handles DELETE /api/sections/:id
// @Summary Delete a section and its comments
// @Tags Sections
// @Produce json
// @Param id path int true "Section ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /sections/{id} [delete]
func (h *SectionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "sections.validation.id")
	}

	if err := services.DeleteSection(h.DB, middleware.Principal(c), id); err != nil {
		return domainErrorResponse(c, err, "sections.delete")
	}
	return utils.MutationSuccessResponse(c, nil)
}

// Get handles GET /api/chapters/:chapterId/sections/:id
// @Summary Section detail with prev/next navigation and comments
// @Tags Sections
// @Produce json
// @Param chapterId path int true "Chapter ID"
// @Param id path int true "Section ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /chapters/{chapterId}/sections/{id} [get]
func (h *SectionHandler) Get(c *fiber.Ctx) error {
	chapterID, err := parseID(c, "chapterId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "sections.validation.id")
	}
	sectionID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "sections.validation.id")
	}

	detail, err := services.GetSection(h.DB, middleware.Principal(c), chapterID, sectionID)
	if err != nil {
		return domainErrorResponse(c, err, "sections.get")
	}

	all := make([]fiber.Map, 0, len(detail.All))
	for i := range detail.All {
		all = append(all, fiber.Map{"id": detail.All[i].ID, "name": detail.All[i].Name})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"chapter": fiber.Map{"id": detail.Chapter.ID, "name": detail.Chapter.Name},
		"section": fiber.Map{
			"id":         detail.Section.ID,
			"name":       detail.Section.Name,
			"content":    detail.Section.Content,
			"created_at": detail.Section.CreatedAt,
			"updated_at": detail.Section.UpdatedAt,
		},
		"all_sections": all,
		"prev_section": sectionRef(detail.Prev),
		"next_section": sectionRef(detail.Next),
		"comments":     detail.Comments,
	})
}

// AdminList handles GET /api/admin/sections/:chapterId
// @Summary List a chapter's sections for the owning admin's edit forms
// @Tags Admin
// @Produce json
// @Param chapterId path int true "Chapter ID"
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/sections/{chapterId} [get]
func (h *SectionHandler) AdminList(c *fiber.Ctx) error {
	chapterID, err := parseID(c, "chapterId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "sections.validation.id")
	}

	sections, err := services.AdminSections(h.DB, middleware.Principal(c), chapterID)
	if err != nil {
		return domainErrorResponse(c, err, "admin.sections")
	}

	out := make([]fiber.Map, 0, len(sections))
	for i := range sections {
		out = append(out, fiber.Map{
			"id":      sections[i].ID,
			"name":    sections[i].Name,
			"content": sections[i].Content,
		})
	}
	return c.Status(fiber.StatusOK).JSON(out)
}
