// file: internals/features/school/classes/controller/class_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/school/classes/dto"
	model "schoolku_backend/internals/features/school/classes/model"
	helper "schoolku_backend/internals/helpers"
)

type ClassController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db, Validate: validator.New()}
}

// POST /classes
func (ctl *ClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	class := model.ClassModel{
		ClassSchoolID: req.ClassSchoolID,
		ClassName:     strings.TrimSpace(req.ClassName),
		ClassSlug:     strings.ToLower(strings.TrimSpace(req.ClassSlug)),
		ClassIsActive: true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&class).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.JsonError(c, fiber.StatusConflict, "Slug kelas sudah dipakai di sekolah ini")
		}
		log.Printf("[CLASS] ❌ create gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kelas")
	}

	return helper.JsonCreated(c, "Kelas berhasil dibuat", dto.FromClassModel(class))
}

// GET /classes?school_id=&search=
func (ctl *ClassController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.ClassModel{})
	if v := c.Query("school_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "school_id tidak valid")
		}
		q = q.Where("class_school_id = ?", id)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("class_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var rows []model.ClassModel
	if err := q.Order("class_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	resp := make([]dto.ClassResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromClassModel(rows[i]))
	}
	return helper.JsonList(c, "Daftar kelas", resp,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /classes/:id
func (ctl *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var class model.ClassModel
	err = ctl.DB.WithContext(c.UserContext()).
		Where("class_id = ?", id).
		Limit(1).
		Take(&class).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonOK(c, "Detail kelas", dto.FromClassModel(class))
}

// PATCH /classes/:id
func (ctl *ClassController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.ClassName != nil {
		updates["class_name"] = strings.TrimSpace(*req.ClassName)
	}
	if req.ClassIsActive != nil {
		updates["class_is_active"] = *req.ClassIsActive
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&model.ClassModel{}).
		Where("class_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		log.Printf("[CLASS] ❌ update gagal: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kelas")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}

	var class model.ClassModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("class_id = ?", id).
		Take(&class).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonUpdated(c, "Kelas diperbarui", dto.FromClassModel(class))
}

// DELETE /classes/:id (soft delete)
func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Where("class_id = ?", id).
		Delete(&model.ClassModel{})
	if res.Error != nil {
		log.Printf("[CLASS] ❌ delete gagal: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kelas")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Kelas dihapus", fiber.Map{"class_id": id})
}
