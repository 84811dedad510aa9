package auth

// The three flat roles. There is no permission matrix behind them; each
// handler states the role it requires.
const (
	RoleAdmin      = "Admin"
	RoleSupervisor = "Supervisor"
	RoleUser       = "User"
)

var Roles = []string{RoleAdmin, RoleSupervisor, RoleUser}

func ValidRole(role string) bool {
	for _, candidate := range Roles {
		if role == candidate {
			return true
		}
	}
	return false
}

// CanExportReports gates the nominative and backup report downloads.
func CanExportReports(role string) bool {
	return role == RoleAdmin || role == RoleSupervisor
}
