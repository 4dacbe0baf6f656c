// file: internals/features/school/teamups/dto/teamup_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/school/teamups/model"
)

/* ===================== REQUESTS ===================== */

type ConfirmTeamUpRequest struct {
	TeammateStudentID uuid.UUID      `json:"teammate_student_id" validate:"required"`
	Meta              map[string]any `json:"meta" validate:"omitempty"`
}

/* ===================== RESPONSES ===================== */

type TeamUpResponse struct {
	TeamUpID                 uuid.UUID      `json:"team_up_id"`
	TeamUpClassID            uuid.UUID      `json:"team_up_class_id"`
	TeamUpInitiatorStudentID uuid.UUID      `json:"team_up_initiator_student_id"`
	TeamUpTeammateStudentID  uuid.UUID      `json:"team_up_teammate_student_id"`
	TeamUpConfirmedAt        time.Time      `json:"team_up_confirmed_at"`
	TeamUpMeta               map[string]any `json:"team_up_meta,omitempty"`
	TeamUpCreatedAt          time.Time      `json:"team_up_created_at"`
}

func FromTeamUpModel(m model.TeamUpModel) TeamUpResponse {
	return TeamUpResponse{
		TeamUpID:                 m.TeamUpID,
		TeamUpClassID:            m.TeamUpClassID,
		TeamUpInitiatorStudentID: m.TeamUpInitiatorStudentID,
		TeamUpTeammateStudentID:  m.TeamUpTeammateStudentID,
		TeamUpConfirmedAt:        m.TeamUpConfirmedAt,
		TeamUpMeta:               m.TeamUpMeta,
		TeamUpCreatedAt:          m.TeamUpCreatedAt,
	}
}
