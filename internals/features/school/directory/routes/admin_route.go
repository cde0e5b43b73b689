package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dirctl "sekolahku_backend/internals/features/school/directory/controller"
)

// DirectoryAdminRoutes: endpoint readonly untuk picker cohort
func DirectoryAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &dirctl.DirectoryController{DB: db}

	grp := admin.Group("/directory")
	{
		grp.Get("/classes", h.ListClasses)
		grp.Post("/resolve-cohort", h.ResolveCohort)
	}
}
