package models

// Role defines the user role type. The set is closed and enforced by a
// CHECK constraint on users.role.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role belongs to the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// CreatedBy records how a user row came into existence.
type CreatedBy string

const (
	CreatedBySelfRegister CreatedBy = "self_register"
	CreatedByAdminImport  CreatedBy = "admin_import"
	// CreatedBySystem marks rows written by the seeder itself.
	CreatedBySystem CreatedBy = "system"
)

// FileType classifies uploaded files. Restricted by convention, not by a
// database constraint.
type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeImage FileType = "image"
)

// Valid reports whether the file type is one of the conventional values.
func (t FileType) Valid() bool {
	return t == FileTypePDF || t == FileTypeImage
}

// ConfigKeySubmissionDeadline is the seeded operational parameter holding
// the certificate submission deadline as a formatted timestamp string.
const ConfigKeySubmissionDeadline = "submission_deadline"
