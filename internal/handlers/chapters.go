// chapters.go
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
	"github.com/localnerve/scriptscope/internal/services"
	"github.com/localnerve/scriptscope/internal/utils"
	"gorm.io/gorm"
)

// ChapterHandler handles chapter routes
type ChapterHandler struct {
	DB *gorm.DB
}

// List handles GET /api/chapters?search=&sort=
// @Summary List chapters
// @Description Public chapter index with optional name filter and sort
// @Tags Chapters
// @Produce json
// @Param search query string false "Case-insensitive substring filter on name"
// @Param sort query string false "name (default) or date"
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /chapters [get]
func (h *ChapterHandler) List(c *fiber.Ctx) error {
	chapters, err := services.ListChapters(h.DB, c.Query("search"), c.Query("sort", "name"))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "chapters.list")
	}

	out := make([]fiber.Map, 0, len(chapters))
	for i := range chapters {
		out = append(out, fiber.Map{
			"id":         chapters[i].ID,
			"name":       chapters[i].Name,
			"created_at": chapters[i].CreatedAt,
		})
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Get handles GET /api/chapters/:id
// @Summary Chapter detail with sections and comments
// @Tags Chapters
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /chapters/{id} [get]
func (h *ChapterHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "chapters.validation.id")
	}

	detail, err := services.GetChapter(h.DB, middleware.Principal(c), id)
	if err != nil {
		return domainErrorResponse(c, err, "chapters.get")
	}

	sections := make([]fiber.Map, 0, len(detail.Sections))
	for i := range detail.Sections {
		sections = append(sections, fiber.Map{
			"id":   detail.Sections[i].ID,
			"name": detail.Sections[i].Name,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"chapter": fiber.Map{
			"id":         detail.Chapter.ID,
			"name":       detail.Chapter.Name,
			"created_at": detail.Chapter.CreatedAt,
		},
		"sections": sections,
		"comments": detail.Comments,
	})
}

// Create handles POST /api/chapters
// @Summary Create a chapter
// @Tags Chapters
// @Accept json
// @Produce json
// @Param body body object true "Chapter name"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /chapters [post]
func (h *ChapterHandler) Create(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "chapters.validation.input")
	}

	id, err := services.CreateChapter(h.DB, middleware.Principal(c), body.Name)
	if err != nil {
		return domainErrorResponse(c, err, "chapters.create")
	}

	return utils.MutationSuccessResponse(c, fiber.Map{
		"chapter": fiber.Map{"id": id, "name": body.Name},
	})
}

// Rename handles PUT /api/chapters/:id
// @Summary Rename a chapter
// @Tags Chapters
// @Accept json
// @Produce json
// @Param id path int true "Chapter ID"
// @Param body body object true "New name"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /chapters/{id} [put]
func (h *ChapterHandler) Rename(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "chapters.validation.id")
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "chapters.validation.input")
	}

	if err := services.RenameChapter(h.DB, middleware.Principal(c), id, body.Name); err != nil {
		return domainErrorResponse(c, err, "chapters.rename")
	}
	return utils.MutationSuccessResponse(c, nil)
}

// Delete handles DELETE /api/chapters/:id
// @Summary Delete a chapter and everything under it
// @Tags Chapters
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /chapters/{id} [delete]
func (h *ChapterHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "chapters.validation.id")
	}

	if err := services.DeleteChapter(h.DB, middleware.Principal(c), id); err != nil {
		return domainErrorResponse(c, err, "chapters.delete")
	}
	return utils.MutationSuccessResponse(c, nil)
}

// AdminList handles GET /api/admin/chapters
// @Summary List the acting admin's own chapters
// @Tags Admin
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /admin/chapters [get]
func (h *ChapterHandler) AdminList(c *fiber.Ctx) error {
	chapters, err := services.AdminChapters(h.DB, middleware.Principal(c))
	if err != nil {
		return domainErrorResponse(c, err, "admin.chapters")
	}

	out := make([]fiber.Map, 0, len(chapters))
	for i := range chapters {
		out = append(out, fiber.Map{"id": chapters[i].ID, "name": chapters[i].Name})
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Dashboard handles GET /api/admin/dashboard
// @Summary Content totals for the acting admin
// @Tags Admin
// @Produce json
// @Success 200 {object} services.DashboardStats
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /admin/dashboard [get]
func (h *ChapterHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := services.GetDashboardStats(h.DB, middleware.Principal(c))
	if err != nil {
		return domainErrorResponse(c, err, "admin.dashboard")
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
