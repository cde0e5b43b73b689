// file: internals/features/school/directory/controller/directory_controller.go
package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/directory/model"
	"sekolahku_backend/internals/features/school/directory/service"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/errs"
)

type DirectoryController struct {
	DB *gorm.DB
}

// =======================================================
// LIST CLASSES (readonly — untuk picker cohort di admin)
// GET /api/a/directory/classes?grade=6&active=true
// =======================================================

func (h *DirectoryController) ListClasses(c *fiber.Ctx) error {
	q := h.DB.Model(&model.SchoolClass{})

	if v := c.Query("grade"); v != "" {
		if g, err := strconv.Atoi(v); err == nil {
			q = q.Where("school_class_grade = ?", g)
		}
	}
	if v := c.Query("active"); v != "" {
		q = q.Where("school_class_is_active = ?", strings.EqualFold(v, "true"))
	}

	var rows []model.SchoolClass
	if err := q.Order("school_class_grade ASC, school_class_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "classes", rows)
}

// =======================================================
// RESOLVE COHORT (preview wizard step 1)
// POST /api/a/directory/resolve-cohort
// Body: {"grades":[6], "class_ids":["..."]}
// =======================================================

type resolveCohortRequest struct {
	Grades   []int16     `json:"grades"`
	ClassIDs []uuid.UUID `json:"class_ids"`
}

func (h *DirectoryController) ResolveCohort(c *fiber.Ctx) error {
	var in resolveCohortRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	cohort, err := service.NewDirectory(h.DB).ResolveCohort(in.Grades, in.ClassIDs)
	if err != nil {
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}

	return helper.JsonOK(c, "cohort resolved", fiber.Map{
		"class_ids":     cohort.ClassIDs,
		"student_count": len(cohort.Students),
		"students":      cohort.Students,
	})
}
