package application

import "marketplace-console/internal/domain"

type RegisterInput struct {
	Username      string
	Password      string
	UserType      string
	RealName      string
	SchoolCompany string
	SkillTags     string
	Contact       string
}

type CreateProjectInput struct {
	Name        string
	Description string
	Company     string
	Status      string
	Deadline    string
}

type UpdateProjectInput struct {
	Name        string
	Description string
	Company     string
	Status      string
	Deadline    string
	ResultURL   string
}

type CreateRoleInput struct {
	Name         string
	TaskDesc     string
	SkillRequire string
	LimitNum     string
	Status       string
	TaskDeadline string
}

type UpdateRoleInput struct {
	Name         string
	TaskDesc     string
	SkillRequire string
	LimitNum     string
	JoinNum      string
	Status       string
	TaskDeadline string
}

type registerPayload struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	UserType      string `json:"user_type"`
	RealName      string `json:"real_name"`
	SchoolCompany string `json:"school_company"`
	SkillTags     string `json:"skill_tags"`
	Contact       string `json:"contact"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Blank deadlines are sent as JSON null, never omitted.
type createProjectPayload struct {
	ProjectName   string  `json:"project_name"`
	Description   string  `json:"description"`
	Company       string  `json:"company"`
	ProjectStatus string  `json:"project_status"`
	Deadline      *string `json:"deadline"`
}

type createRolePayload struct {
	RoleName     string   `json:"role_name"`
	TaskDesc     string   `json:"task_desc"`
	SkillRequire string   `json:"skill_require"`
	LimitNum     *float64 `json:"limit_num"`
	RoleStatus   string   `json:"role_status"`
	TaskDeadline *string  `json:"task_deadline"`
}

type applyPayload struct {
	Motivation string `json:"motivation"`
}

type reviewPayload struct {
	Decision string `json:"decision"`
}

type RegisterResult struct {
	Message  string `json:"message"`
	UserID   int64  `json:"user_id"`
	UserType string `json:"user_type"`
}

type LoginResult struct {
	Message  string `json:"message"`
	UserID   int64  `json:"user_id"`
	UserType string `json:"user_type"`
	Token    string `json:"token"`
}

type MessageResult struct {
	Message string `json:"message"`
}

type ProjectList struct {
	Projects []domain.Project `json:"projects"`
}

type ProjectDetail struct {
	Project domain.Project `json:"project"`
	Roles   []domain.Role  `json:"roles"`
}

type CreatedProject struct {
	ProjectID int64 `json:"project_id"`
}

type RoleList struct {
	Roles []domain.Role `json:"roles"`
}

type CreatedRole struct {
	RoleID int64 `json:"role_id"`
}

type SubmittedApplication struct {
	Message       string `json:"message"`
	ApplicationID int64  `json:"application_id"`
}

type ApplicationList struct {
	Applications []domain.Application `json:"applications"`
}

type profileResponse struct {
	User domain.Profile `json:"user"`
}
