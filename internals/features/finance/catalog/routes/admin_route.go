package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	catalogctl "sekolahku_backend/internals/features/finance/catalog/controller"
)

/*
Admin routes (CRUD katalog fee item)
*/
func CatalogAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &catalogctl.FeeItemHandler{DB: db}

	grp := admin.Group("/fee-items")
	{
		grp.Post("/", h.CreateFeeItem)
		grp.Get("/", h.ListFeeItems)
		grp.Get("/:id", h.GetFeeItem)
		grp.Patch("/:id", h.UpdateFeeItem)
		grp.Delete("/:id", h.DeleteFeeItem)
	}
}
