// file: internals/features/school/students/controller/student_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/school/students/dto"
	model "schoolku_backend/internals/features/school/students/model"
	helper "schoolku_backend/internals/helpers"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validate: validator.New()}
}

// POST /students
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	student := model.StudentModel{
		StudentUserID:  req.StudentUserID,
		StudentClassID: req.StudentClassID,
		StudentNumber:  strings.TrimSpace(req.StudentNumber),
		StudentName:    strings.TrimSpace(req.StudentName),
		StudentStatus:  model.StudentActive,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&student).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.JsonError(c, fiber.StatusConflict, "Nomor induk atau akun sudah terpakai")
		}
		log.Printf("[STUDENT] ❌ create gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat siswa")
	}

	return helper.JsonCreated(c, "Siswa berhasil dibuat", dto.FromStudentModel(student))
}

// GET /students?class_id=&status=&search=
func (ctl *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.StudentModel{})
	if v := c.Query("class_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		q = q.Where("student_class_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		q = q.Where("student_status = ?", strings.ToLower(v))
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("student_name ILIKE ? OR student_number ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var rows []model.StudentModel
	if err := q.Order("student_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	resp := make([]dto.StudentResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromStudentModel(rows[i]))
	}
	return helper.JsonList(c, "Daftar siswa", resp,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /students/:id
func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var student model.StudentModel
	err = ctl.DB.WithContext(c.UserContext()).
		Where("student_id = ?", id).
		Limit(1).
		Take(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonOK(c, "Detail siswa", dto.FromStudentModel(student))
}

// PATCH /students/:id (pindah kelas, ganti nama, ubah status)
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.StudentClassID != nil {
		updates["student_class_id"] = *req.StudentClassID
	}
	if req.StudentName != nil {
		updates["student_name"] = strings.TrimSpace(*req.StudentName)
	}
	if req.StudentStatus != nil {
		updates["student_status"] = *req.StudentStatus
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&model.StudentModel{}).
		Where("student_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		log.Printf("[STUDENT] ❌ update gagal: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui siswa")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}

	var student model.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("student_id = ?", id).
		Take(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonUpdated(c, "Siswa diperbarui", dto.FromStudentModel(student))
}

// DELETE /students/:id (soft delete)
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Where("student_id = ?", id).
		Delete(&model.StudentModel{})
	if res.Error != nil {
		log.Printf("[STUDENT] ❌ delete gagal: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus siswa")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Siswa dihapus", fiber.Map{"student_id": id})
}
