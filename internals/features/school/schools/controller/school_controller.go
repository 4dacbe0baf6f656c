// file: internals/features/school/schools/controller/school_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/school/schools/dto"
	model "schoolku_backend/internals/features/school/schools/model"
	helper "schoolku_backend/internals/helpers"
)

type SchoolController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db, Validate: validator.New()}
}

// POST /schools
func (ctl *SchoolController) Create(c *fiber.Ctx) error {
	var req dto.CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	school := model.SchoolModel{
		SchoolName:     strings.TrimSpace(req.SchoolName),
		SchoolSlug:     strings.ToLower(strings.TrimSpace(req.SchoolSlug)),
		SchoolAddress:  req.SchoolAddress,
		SchoolIsActive: true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&school).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.JsonError(c, fiber.StatusConflict, "Slug sekolah sudah dipakai")
		}
		log.Printf("[SCHOOL] ❌ create gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat sekolah")
	}

	return helper.JsonCreated(c, "Sekolah berhasil dibuat", dto.FromSchoolModel(school))
}

// GET /schools
func (ctl *SchoolController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.SchoolModel{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("school_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var rows []model.SchoolModel
	if err := q.Order("school_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	resp := make([]dto.SchoolResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromSchoolModel(rows[i]))
	}
	return helper.JsonList(c, "Daftar sekolah", resp,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /schools/:id
func (ctl *SchoolController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var school model.SchoolModel
	err = ctl.DB.WithContext(c.UserContext()).
		Where("school_id = ?", id).
		Limit(1).
		Take(&school).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonOK(c, "Detail sekolah", dto.FromSchoolModel(school))
}

// PATCH /schools/:id
func (ctl *SchoolController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.SchoolName != nil {
		updates["school_name"] = strings.TrimSpace(*req.SchoolName)
	}
	if req.SchoolAddress != nil {
		updates["school_address"] = *req.SchoolAddress
	}
	if req.SchoolIsActive != nil {
		updates["school_is_active"] = *req.SchoolIsActive
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&model.SchoolModel{}).
		Where("school_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		log.Printf("[SCHOOL] ❌ update gagal: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui sekolah")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
	}

	var school model.SchoolModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("school_id = ?", id).
		Take(&school).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonUpdated(c, "Sekolah diperbarui", dto.FromSchoolModel(school))
}

// DELETE /schools/:id (soft delete)
func (ctl *SchoolController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Where("school_id = ?", id).
		Delete(&model.SchoolModel{})
	if res.Error != nil {
		log.Printf("[SCHOOL] ❌ delete gagal: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus sekolah")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Sekolah dihapus", fiber.Map{"school_id": id})
}
