package entity

import "time"

// Roles for User. The doctor is the clinic owner; everyone else is staff
// created by the owner.
const (
	RoleDoctor    = "doctor"
	RoleReception = "reception"
	RoleLab       = "lab"
	RolePharmacy  = "pharmacy"
)

// StaffRoles are the roles an owner may assign when adding staff.
var StaffRoles = []string{RoleReception, RoleLab, RolePharmacy}

// ValidStaffRole reports whether role can be assigned to a staff member.
func ValidStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is a principal within a clinic.
type User struct {
	ID           string
	ClinicID     string
	FullName     string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext past registration
	Role         string // doctor, reception, lab, pharmacy
	CreatedBy    string // owner user ID for staff; empty for the owner
	Status       string // active, inactive
	ResetOTPHash string // bcrypt hash of the pending password-reset OTP
	ResetExpires *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOwner reports whether the user owns the clinic.
func (u *User) IsOwner() bool { return u.Role == RoleDoctor }
