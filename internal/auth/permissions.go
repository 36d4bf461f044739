package auth

import "github.com/spec-kit/gym-service/internal/domain"

// Permission is an atomic capability checked before a protected operation.
type Permission string

const (
	PermListStudents  Permission = "LIST_STUDENTS"
	PermCreateStudent Permission = "CREATE_STUDENT"
	PermViewStudent   Permission = "VIEW_STUDENT"
	PermUpdateStudent Permission = "UPDATE_STUDENT"
	PermDeleteStudent Permission = "DELETE_STUDENT"

	PermListStaff   Permission = "LIST_STAFF"
	PermCreateStaff Permission = "CREATE_STAFF"
	PermViewStaff   Permission = "VIEW_STAFF"
	PermUpdateStaff Permission = "UPDATE_STAFF"
	PermDeleteStaff Permission = "DELETE_STAFF"
	PermUnlockStaff Permission = "UNLOCK_STAFF"

	PermListPlans  Permission = "LIST_PLANS"
	PermCreatePlan Permission = "CREATE_PLAN"
	PermViewPlan   Permission = "VIEW_PLAN"
	PermUpdatePlan Permission = "UPDATE_PLAN"
	PermDeletePlan Permission = "DELETE_PLAN"

	PermListCheckIns  Permission = "LIST_CHECKINS"
	PermCreateCheckIn Permission = "CREATE_CHECKIN"
	PermViewCheckIn   Permission = "VIEW_CHECKIN"
	PermDeleteCheckIn Permission = "DELETE_CHECKIN"

	PermGenerateReports Permission = "GENERATE_REPORTS"
	PermViewFinancial   Permission = "VIEW_FINANCIAL"
)

// allPermissions is in display order.
var allPermissions = []Permission{
	PermListStudents, PermCreateStudent, PermViewStudent, PermUpdateStudent, PermDeleteStudent,
	PermListStaff, PermCreateStaff, PermViewStaff, PermUpdateStaff, PermDeleteStaff, PermUnlockStaff,
	PermListPlans, PermCreatePlan, PermViewPlan, PermUpdatePlan, PermDeletePlan,
	PermListCheckIns, PermCreateCheckIn, PermViewCheckIn, PermDeleteCheckIn,
	PermGenerateReports, PermViewFinancial,
}

// rolePermissions is built once at init and only ever read afterwards, so
// lookups need no locking.
var rolePermissions = buildRolePermissions(map[domain.Role][]Permission{
	domain.RoleAdmin: allPermissions,
	domain.RoleManager: {
		PermListStudents, PermCreateStudent, PermViewStudent, PermUpdateStudent,
		PermListStaff, PermViewStaff,
		PermListPlans, PermCreatePlan, PermViewPlan, PermUpdatePlan,
		PermListCheckIns, PermCreateCheckIn, PermViewCheckIn,
		PermGenerateReports, PermViewFinancial,
	},
	domain.RoleInstructor: {
		PermListStudents, PermViewStudent, PermUpdateStudent,
		PermListPlans, PermViewPlan,
		PermListCheckIns, PermCreateCheckIn, PermViewCheckIn,
	},
	domain.RoleFrontDesk: {
		PermListStudents, PermCreateStudent, PermViewStudent, PermUpdateStudent,
		PermListPlans, PermViewPlan,
		PermListCheckIns, PermCreateCheckIn, PermViewCheckIn,
	},
})

func buildRolePermissions(table map[domain.Role][]Permission) map[domain.Role]map[Permission]struct{} {
	out := make(map[domain.Role]map[Permission]struct{}, len(table))
	for role, perms := range table {
		if len(perms) == 0 {
			panic("auth: role " + string(role) + " has no permissions")
		}
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		out[role] = set
	}
	return out
}

// Authorize reports whether role holds permission. Unknown roles and
// permissions are denied.
func Authorize(role domain.Role, permission Permission) bool {
	set, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = set[permission]
	return ok
}

// AuthorizeAny reports whether role holds at least one of permissions.
func AuthorizeAny(role domain.Role, permissions ...Permission) bool {
	for _, p := range permissions {
		if Authorize(role, p) {
			return true
		}
	}
	return false
}

// PermissionsFor lists the permissions granted to role in display order.
func PermissionsFor(role domain.Role) []Permission {
	set, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]Permission, 0, len(set))
	for _, p := range allPermissions {
		if _, granted := set[p]; granted {
			out = append(out, p)
		}
	}
	return out
}
