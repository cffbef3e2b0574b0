package application

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"marketplace-console/internal/domain"
	"marketplace-console/internal/ports"
)

type AuthService struct {
	gateway ports.Gateway
	session ports.SessionStore
	logger  ports.Logger
}

func NewAuthService(gateway ports.Gateway, session ports.SessionStore, logger ports.Logger) *AuthService {
	return &AuthService{gateway: gateway, session: session, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	payload := registerPayload{
		Username:      in.Username,
		Password:      in.Password,
		UserType:      in.UserType,
		RealName:      in.RealName,
		SchoolCompany: in.SchoolCompany,
		SkillTags:     in.SkillTags,
		Contact:       in.Contact,
	}
	var out RegisterResult
	err := s.gateway.Do(ctx, ports.Request{Method: http.MethodPost, Path: "/api/auth/register", Body: payload}, &out)
	return out, err
}

// Login writes the session only after the backend accepted the credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var out LoginResult
	err := s.gateway.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Body:   loginPayload{Username: username, Password: password},
	}, &out)
	if err != nil {
		return LoginResult{}, err
	}
	s.session.SignIn(out.Token, out.UserType)
	s.logger.Info(ctx, "signed in", "user_id", out.UserID, "user_type", out.UserType)
	return out, nil
}

// Logout clears the local session even when the backend call fails.
func (s *AuthService) Logout(ctx context.Context) (MessageResult, error) {
	var out MessageResult
	err := s.gateway.Do(ctx, ports.Request{Method: http.MethodPost, Path: "/api/auth/logout"}, &out)
	s.session.SignOut()
	s.logger.Info(ctx, "signed out")
	return out, err
}

func (s *AuthService) Profile(ctx context.Context) (domain.Profile, error) {
	var out profileResponse
	if err := s.gateway.Do(ctx, ports.Request{Path: "/api/auth/profile"}, &out); err != nil {
		return domain.Profile{}, err
	}
	return out.User, nil
}

type ProjectService struct {
	gateway ports.Gateway
}

func NewProjectService(gateway ports.Gateway) *ProjectService {
	return &ProjectService{gateway: gateway}
}

func (s *ProjectService) List(ctx context.Context, keyword string) ([]domain.Project, error) {
	req := ports.Request{Path: "/api/projects"}
	if keyword != "" {
		req.Query = url.Values{"q": {keyword}}
	}
	var out ProjectList
	if err := s.gateway.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

func (s *ProjectService) Detail(ctx context.Context, projectID string) (ProjectDetail, error) {
	var out ProjectDetail
	if err := s.gateway.Do(ctx, ports.Request{Path: "/api/projects/" + url.PathEscape(projectID)}, &out); err != nil {
		return ProjectDetail{}, err
	}
	return out, nil
}

func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (CreatedProject, error) {
	payload := createProjectPayload{
		ProjectName:   in.Name,
		Description:   in.Description,
		Company:       in.Company,
		ProjectStatus: orDefault(in.Status, domain.DefaultStatus),
		Deadline:      nullable(in.Deadline),
	}
	var out CreatedProject
	err := s.gateway.Do(ctx, ports.Request{Method: http.MethodPost, Path: "/api/enterprise/projects", Body: payload}, &out)
	return out, err
}

func (s *ProjectService) ListOwn(ctx context.Context, status string) ([]domain.Project, error) {
	req := ports.Request{Path: "/api/enterprise/projects"}
	if status != "" {
		req.Query = url.Values{"status": {status}}
	}
	var out ProjectList
	if err := s.gateway.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

// Update sends only the fields that were filled in.
func (s *ProjectService) Update(ctx context.Context, projectID string, in UpdateProjectInput) (MessageResult, error) {
	fields := map[string]any{}
	setIfPresent(fields, "project_name", in.Name)
	setIfPresent(fields, "description", in.Description)
	setIfPresent(fields, "company", in.Company)
	setIfPresent(fields, "project_status", in.Status)
	setIfPresent(fields, "deadline", in.Deadline)
	setIfPresent(fields, "result_url", in.ResultURL)
	var out MessageResult
	err := s.gateway.Do(ctx, ports.Request{
		Method: http.MethodPut,
		Path:   "/api/enterprise/projects/" + url.PathEscape(projectID),
		Body:   fields,
	}, &out)
	return out, err
}

type RoleService struct {
	gateway ports.Gateway
}

func NewRoleService(gateway ports.Gateway) *RoleService {
	return &RoleService{gateway: gateway}
}

func (s *RoleService) Create(ctx context.Context, projectID string, in CreateRoleInput) (CreatedRole, error) {
	payload := createRolePayload{
		RoleName:     in.Name,
		TaskDesc:     in.TaskDesc,
		SkillRequire: in.SkillRequire,
		LimitNum:     numberOr(in.LimitNum, 1),
		RoleStatus:   orDefault(in.Status, domain.DefaultStatus),
		TaskDeadline: nullable(in.TaskDeadline),
	}
	var out CreatedRole
	err := s.gateway.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/api/enterprise/projects/" + url.PathEscape(projectID) + "/roles",
		Body:   payload,
	}, &out)
	return out, err
}

func (s *RoleService) ListByProject(ctx context.Context, projectID string) ([]domain.Role, error) {
	var out RoleList
	err := s.gateway.Do(ctx, ports.Request{Path: "/api/enterprise/projects/" + url.PathEscape(projectID) + "/roles"}, &out)
	if err != nil {
		return nil, err
	}
	return out.Roles, nil
}

func (s *RoleService) Update(ctx context.Context, roleID string, in UpdateRoleInput) (MessageResult, error) {
	fields := map[string]any{}
	setIfPresent(fields, "role_name", in.Name)
	setIfPresent(fields, "task_desc", in.TaskDesc)
	setIfPresent(fields, "skill_require", in.SkillRequire)
	setIfPresent(fields, "role_status", in.Status)
	setIfPresent(fields, "task_deadline", in.TaskDeadline)
	if strings.TrimSpace(in.LimitNum) != "" {
		fields["limit_num"] = numberOr(in.LimitNum, 1)
	}
	if strings.TrimSpace(in.JoinNum) != "" {
		fields["join_num"] = numberOr(in.JoinNum, 0)
	}
	var out MessageResult
	err := s.gateway.Do(ctx, ports.Request{
		Method: http.MethodPut,
		Path:   "/api/enterprise/roles/" + url.PathEscape(roleID),
		Body:   fields,
	}, &out)
	return out, err
}

type ApplicationService struct {
	gateway ports.Gateway
}

func NewApplicationService(gateway ports.Gateway) *ApplicationService {
	return &ApplicationService{gateway: gateway}
}

func (s *ApplicationService) Apply(ctx context.Context, roleID, motivation string) (SubmittedApplication, error) {
	var out SubmittedApplication
	err := s.gateway.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/api/roles/" + url.PathEscape(roleID) + "/apply",
		Body:   applyPayload{Motivation: motivation},
	}, &out)
	return out, err
}

func (s *ApplicationService) ListMine(ctx context.Context) ([]domain.Application, error) {
	var out ApplicationList
	if err := s.gateway.Do(ctx, ports.Request{Path: "/api/student/applications"}, &out); err != nil {
		return nil, err
	}
	return out.Applications, nil
}

func (s *ApplicationService) Cancel(ctx context.Context, applicationID string) (MessageResult, error) {
	var out MessageResult
	err := s.gateway.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/api/student/applications/" + url.PathEscape(applicationID) + "/cancel",
	}, &out)
	return out, err
}

func (s *ApplicationService) ListForRole(ctx context.Context, roleID string) ([]domain.Application, error) {
	var out ApplicationList
	err := s.gateway.Do(ctx, ports.Request{Path: "/api/enterprise/roles/" + url.PathEscape(roleID) + "/applications"}, &out)
	if err != nil {
		return nil, err
	}
	return out.Applications, nil
}

func (s *ApplicationService) Review(ctx context.Context, applicationID, decision string) (MessageResult, error) {
	var out MessageResult
	err := s.gateway.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/api/enterprise/applications/" + url.PathEscape(applicationID) + "/review",
		Body:   reviewPayload{Decision: decision},
	}, &out)
	return out, err
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func nullable(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

// numberOr coerces a form value to a JSON number. Blank input yields fallback;
// input that is not a number yields nil so the backend reports it.
func numberOr(v string, fallback float64) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return &fallback
	}
	n, err := parseNumber(v)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

// parseNumber reads decimal or exponent notation plus unsigned 0x, 0o and 0b integers.
func parseNumber(v string) (float64, error) {
	if len(v) > 2 && v[0] == '0' {
		base := 0
		switch v[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(v[2:], base, 64)
			return float64(n), err
		}
	}
	return strconv.ParseFloat(v, 64)
}

func setIfPresent(fields map[string]any, key, v string) {
	if strings.TrimSpace(v) != "" {
		fields[key] = v
	}
}
