package authz

import (
	"errors"
	"time"

	"workflow-management-api/internal/auth"
	"workflow-management-api/internal/cache"
	"workflow-management-api/internal/models"
)

// Deny reasons surfaced by the gate. Handlers map NoCredential to 401 and
// the other two to 403.
var (
	ErrNoCredential     = errors.New("authz: no credential provided")
	ErrInvalidCredential = errors.New("authz: invalid credential")
	ErrInsufficientRole = errors.New("authz: insufficient role")
)

// Operation names a role-gated API operation. The capability table below is
// the single source of authorization policy; transport middleware only looks
// it up.
type Operation string

const (
	OpUserCreateStaff     Operation = "user.create-staff"
	OpUserResetPassword   Operation = "user.reset-password"
	OpUserList            Operation = "user.list"
	OpApplicationManage   Operation = "application.manage"
	OpApplicationSubmit   Operation = "application.submit"
	OpApplicationHandover Operation = "application.handover"
	OpApplicationProgress Operation = "application.progress"
	OpTaskManage          Operation = "task.manage"
	OpTaskDocuments       Operation = "task.documents"
	OpChecklistManage     Operation = "task.checklist"
	OpTeamTasks           Operation = "task.team-list"
	OpSubtaskPick         Operation = "subtask.pick"
	OpTaskAssign          Operation = "task.assign"
	OpReportView          Operation = "report.view"
	OpClientManage        Operation = "client.manage"
	OpAppointmentManage   Operation = "appointment.manage"
	OpReminderManage      Operation = "reminder.manage"
)

// capabilities maps each operation to the flat set of roles allowed to call
// it. No role implies another.
var capabilities = map[Operation][]models.Role{
	OpUserCreateStaff:     {models.RoleAdmin},
	OpUserResetPassword:   {models.RoleAdmin, models.RoleManager},
	OpUserList:            {models.RoleAdmin, models.RoleManager},
	OpApplicationManage:   {models.RoleAdmin},
	OpApplicationSubmit:   {models.RoleAdmin},
	OpApplicationHandover: {models.RoleAdmin},
	OpApplicationProgress: {models.RoleAdmin, models.RoleManager, models.RoleMember},
	OpTaskManage:          {models.RoleManager, models.RoleAdmin},
	OpTaskDocuments:       {models.RoleMember, models.RoleAdmin, models.RoleManager},
	OpChecklistManage:     {models.RoleMember, models.RoleAdmin, models.RoleManager},
	OpTeamTasks:           {models.RoleMember},
	OpSubtaskPick:         {models.RoleMember},
	OpTaskAssign:          {models.RoleAdmin, models.RoleManager, models.RoleMember},
	OpReportView:          {models.RoleAdmin, models.RoleManager},
	OpClientManage:        {models.RoleAdmin, models.RoleManager},
	OpAppointmentManage:   {models.RoleAdmin, models.RoleManager},
	OpReminderManage:      {models.RoleAdmin, models.RoleManager},
}

// claimsCache memoizes signature verification for hot tokens. Entries expire
// well before the tokens themselves do.
var claimsCache = cache.NewTTLCache[string, *auth.Claims]()

const claimsCacheTTL = time.Minute

// RequiredRoles returns the allowed role set for an operation.
func RequiredRoles(op Operation) []models.Role {
	return capabilities[op]
}

// Allowed reports whether role is in the operation's allowed set.
func Allowed(op Operation, role models.Role) bool {
	for _, r := range capabilities[op] {
		if r == role {
			return true
		}
	}
	return false
}

// AuthenticateToken verifies a credential without consulting the capability
// table; used by endpoints open to any authenticated caller.
func AuthenticateToken(tokenString string) (*auth.Claims, error) {
	if tokenString == "" {
		return nil, ErrNoCredential
	}
	if claims, ok := claimsCache.Get(tokenString); ok {
		return claims, nil
	}
	claims, err := auth.ValidateToken(tokenString)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	claimsCache.Set(tokenString, claims, claimsCacheTTL)
	return claims, nil
}

// Authorize is the gate: given the raw bearer token and the target operation
// it either returns the verified claims or one of the deny reasons. It
// performs no business-rule checks.
func Authorize(tokenString string, op Operation) (*auth.Claims, error) {
	claims, err := AuthenticateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if !Allowed(op, claims.Role) {
		return nil, ErrInsufficientRole
	}
	return claims, nil
}
