package constants

import "fmt"

const (
	RoleUser    = "user"
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
	RoleOwner   = "owner"
)

// Template pesan error role
const (
	ErrOnlyTutorsCanAccess  = "❌ Hanya tutor, admin, atau owner yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess  = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyNonUserCanAccess = "❌ Hanya role selain 'user' yang boleh mengakses fitur %s."
)

func RoleErrorTutor(feature string) string {
	return fmt.Sprintf(ErrOnlyTutorsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorNonUser(feature string) string {
	return fmt.Sprintf(ErrOnlyNonUserCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleStudent,
		RoleTutor,
		RoleAdmin,
		RoleOwner,
	}

	NonUserRoles = []string{
		RoleStudent,
		RoleTutor,
		RoleAdmin,
		RoleOwner,
	}

	TutorAndAbove = []string{
		RoleTutor,
		RoleAdmin,
		RoleOwner,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleOwner,
	}
)
