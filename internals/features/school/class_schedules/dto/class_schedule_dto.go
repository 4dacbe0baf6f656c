// file: internals/features/school/class_schedules/dto/class_schedule_dto.go
package dto

import (
	"github.com/google/uuid"

	model "schoolku_backend/internals/features/school/class_schedules/model"
)

/* ===================== REQUESTS ===================== */

type CreateClassScheduleRequest struct {
	ClassID   uuid.UUID `json:"class_id" validate:"required"`
	DayOfWeek string    `json:"day_of_week" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime string    `json:"start_time" validate:"required"`
	EndTime   string    `json:"end_time" validate:"required"`
}

type UpdateClassScheduleRequest struct {
	DayOfWeek *string               `json:"day_of_week" validate:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime *string               `json:"start_time"`
	EndTime   *string               `json:"end_time"`
	Status    *model.ScheduleStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

/* ===================== RESPONSES ===================== */

type ClassScheduleResponse struct {
	ClassScheduleID uuid.UUID            `json:"class_schedule_id"`
	ClassID         uuid.UUID            `json:"class_id"`
	DayOfWeek       string               `json:"day_of_week"`
	StartTime       string               `json:"start_time"`
	EndTime         string               `json:"end_time"`
	Status          model.ScheduleStatus `json:"status"`
}

func FromClassScheduleModel(m model.ClassScheduleModel) ClassScheduleResponse {
	return ClassScheduleResponse{
		ClassScheduleID: m.ClassScheduleID,
		ClassID:         m.ClassScheduleClassID,
		DayOfWeek:       m.ClassScheduleDayOfWeek,
		StartTime:       m.ClassScheduleStartTime,
		EndTime:         m.ClassScheduleEndTime,
		Status:          m.ClassScheduleStatus,
	}
}
