// routes.go
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
	"github.com/localnerve/scriptscope/internal/config"
	"github.com/localnerve/scriptscope/internal/middleware"
	"gorm.io/gorm"
)

// RegisterRoutes wires the /api route table. The server main and the handler
// tests share this function, so the auth middleware ordering under test is
// exactly what runs in production.
func RegisterRoutes(api fiber.Router, cfg *config.Config, db *gorm.DB) {
	api.Use(middleware.VersionMiddleware())

	authHandler := &AuthHandler{DB: db}
	chapterHandler := &ChapterHandler{DB: db}
	sectionHandler := &SectionHandler{DB: db}
	commentHandler := &CommentHandler{DB: db}
	healthHandler := &HealthHandler{Cfg: cfg, DB: db}

	// Auth routes
	api.Post("/users/register", authHandler.RegisterUser)
	api.Post("/users/login", authHandler.LoginUser)
	api.Post("/admins/register", authHandler.RegisterAdmin)
	api.Post("/admins/login", authHandler.LoginAdmin)
	api.Post("/logout", authHandler.Logout)
	api.Get("/session", authHandler.Session)

	// Chapter routes (public listing, authenticated detail, admin mutation)
	api.Get("/chapters", chapterHandler.List)
	api.Get("/chapters/:id", middleware.RequirePrincipal(), chapterHandler.Get)
	api.Post("/chapters", middleware.RequireAdmin(), chapterHandler.Create)
	api.Put("/chapters/:id", middleware.RequireAdmin(), chapterHandler.Rename)
	api.Delete("/chapters/:id", middleware.RequireAdmin(), chapterHandler.Delete)

	// Section routes
	api.Get("/chapters/:chapterId/sections/:id", middleware.RequirePrincipal(), sectionHandler.Get)
	api.Post("/sections", middleware.RequireAdmin(), sectionHandler.Create)
	api.Put("/sections/:id", middleware.RequireAdmin(), sectionHandler.Update)
	api.Delete("/sections/:id", middleware.RequireAdmin(), sectionHandler.Delete)

	// Comment routes (public listing, user-authenticated creation)
	api.Post("/chapter_comments", middleware.RequireUser(), commentHandler.AddChapterComment)
	api.Get("/chapter_comments/:chapterId", commentHandler.ListChapterComments)
	api.Post("/section_comments", middleware.RequireUser(), commentHandler.AddSectionComment)
	api.Get("/section_comments/:sectionId", commentHandler.ListSectionComments)

	// Admin form-support routes
	api.Get("/admin/chapters", middleware.RequireAdmin(), chapterHandler.AdminList)
	api.Get("/admin/sections/:chapterId", middleware.RequireAdmin(), sectionHandler.AdminList)
	api.Get("/admin/dashboard", middleware.RequireAdmin(), chapterHandler.Dashboard)

	// Health
	api.Get("/health", healthHandler.Get)
}
