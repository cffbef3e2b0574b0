package http

import (
	"bytes"
	"fmt"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"marketplace-console/internal/application"
	"marketplace-console/internal/domain"
)

type Toaster interface {
	Notify(msg string)
	Current() (string, bool)
	Duration() time.Duration
}

// Responder writes view-region fragments and the out-of-band toast. Failed actions never
// touch their region: htmx is told not to swap and only the toast changes.
type Responder struct {
	views  *Views
	toasts Toaster
}

func NewResponder(views *Views, toasts Toaster) *Responder {
	return &Responder{views: views, toasts: toasts}
}

func (r *Responder) toast(oob bool) toastView {
	msg, visible := r.toasts.Current()
	return toastView{Message: msg, Visible: visible, OOB: oob, PollAfter: pollAfter(r.toasts.Duration())}
}

func (r *Responder) region(c echo.Context, name string, data any, message string) error {
	var buf bytes.Buffer
	if err := r.views.Execute(&buf, name, data); err != nil {
		return err
	}
	if message != "" {
		r.toasts.Notify(message)
		if err := r.views.Execute(&buf, "toast", r.toast(true)); err != nil {
			return err
		}
	}
	return c.HTML(stdhttp.StatusOK, buf.String())
}

func (r *Responder) notice(c echo.Context, message string) error {
	r.toasts.Notify(message)
	var buf bytes.Buffer
	if err := r.views.Execute(&buf, "toast", r.toast(true)); err != nil {
		return err
	}
	c.Response().Header().Set("HX-Reswap", "none")
	return c.HTML(stdhttp.StatusOK, buf.String())
}

func (r *Responder) fail(c echo.Context, err error) error {
	return r.notice(c, err.Error())
}

func field(c echo.Context, name string) string {
	return strings.TrimSpace(c.FormValue(name))
}

func messageOr(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

type pageView struct {
	Session       domain.SessionSnapshot
	Toast         toastView
	UserTypes     []string
	Decisions     []string
	DefaultStatus string
}

type SessionHandler struct {
	resp    *Responder
	session *domain.Session
	auth    *application.AuthService
}

func NewSessionHandler(resp *Responder, session *domain.Session, auth *application.AuthService) *SessionHandler {
	return &SessionHandler{resp: resp, session: session, auth: auth}
}

func (h *SessionHandler) Page(c echo.Context) error {
	var buf bytes.Buffer
	err := h.resp.views.Execute(&buf, "page", pageView{
		Session:       h.session.Snapshot(),
		Toast:         h.resp.toast(false),
		UserTypes:     []string{domain.UserTypeStudent, domain.UserTypeEnterprise},
		Decisions:     []string{domain.DecisionAccepted, domain.DecisionRejected},
		DefaultStatus: domain.DefaultStatus,
	})
	if err != nil {
		return err
	}
	return c.HTML(stdhttp.StatusOK, buf.String())
}

func (h *SessionHandler) Toast(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.resp.views.Execute(&buf, "toast", h.resp.toast(false)); err != nil {
		return err
	}
	return c.HTML(stdhttp.StatusOK, buf.String())
}

// SetBaseURL ignores a blank value without notifying.
func (h *SessionHandler) SetBaseURL(c echo.Context) error {
	if !h.session.SetBaseURL(field(c, "base_url")) {
		return c.NoContent(stdhttp.StatusNoContent)
	}
	return h.resp.region(c, "session", h.session.Snapshot(), "API base updated")
}

func (h *SessionHandler) Register(c echo.Context) error {
	res, err := h.auth.Register(c.Request().Context(), application.RegisterInput{
		Username:      field(c, "username"),
		Password:      field(c, "password"),
		UserType:      field(c, "user_type"),
		RealName:      field(c, "real_name"),
		SchoolCompany: field(c, "school_company"),
		SkillTags:     field(c, "skill_tags"),
		Contact:       field(c, "contact"),
	})
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.notice(c, messageOr(res.Message, "registration succeeded"))
}

func (h *SessionHandler) Login(c echo.Context) error {
	if _, err := h.auth.Login(c.Request().Context(), field(c, "username"), field(c, "password")); err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.region(c, "session", h.session.Snapshot(), "login succeeded")
}

func (h *SessionHandler) Logout(c echo.Context) error {
	message := "signed out"
	if _, err := h.auth.Logout(c.Request().Context()); err != nil {
		message = err.Error()
	}
	return h.resp.region(c, "session", h.session.Snapshot(), message)
}

func (h *SessionHandler) Profile(c echo.Context) error {
	profile, err := h.auth.Profile(c.Request().Context())
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.region(c, "profile", profile, "")
}

type ProjectsHandler struct {
	resp    *Responder
	service *application.ProjectService
}

func NewProjectsHandler(resp *Responder, service *application.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{resp: resp, service: service}
}

func (h *ProjectsHandler) List(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context(), field(c, "q"))
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.region(c, "project_list", projects, "")
}

func (h *ProjectsHandler) Detail(c echo.Context) error {
	detail, err := h.service.Detail(c.Request().Context(), field(c, "project_id"))
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.region(c, "project_detail", detail, "")
}

func (h *ProjectsHandler) Create(c echo.Context) error {
	res, err := h.service.Create(c.Request().Context(), application.CreateProjectInput{
		Name:        field(c, "project_name"),
		Description: field(c, "description"),
		Company:     field(c, "company"),
		Status:      field(c, "project_status"),
		Deadline:    field(c, "deadline"),
	})
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.notice(c, fmt.Sprintf("project created: %d", res.ProjectID))
}

func (h *ProjectsHandler) ListOwn(c echo.Context) error {
	projects, err := h.service.ListOwn(c.Request().Context(), field(c, "status"))
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.region(c, "project_list", projects, "")
}

func (h *ProjectsHandler) Update(c echo.Context) error {
	res, err := h.service.Update(c.Request().Context(), field(c, "project_id"), application.UpdateProjectInput{
		Name:        field(c, "project_name"),
		Description: field(c, "description"),
		Company:     field(c, "company"),
		Status:      field(c, "project_status"),
		Deadline:    field(c, "deadline"),
		ResultURL:   field(c, "result_url"),
	})
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.notice(c, messageOr(res.Message, "project updated"))
}

type RolesHandler struct {
	resp    *Responder
	service *application.RoleService
}

func NewRolesHandler(resp *Responder, service *application.RoleService) *RolesHandler {
	return &RolesHandler{resp: resp, service: service}
}

func (h *RolesHandler) Create(c echo.Context) error {
	res, err := h.service.Create(c.Request().Context(), field(c, "project_id"), application.CreateRoleInput{
		Name:         field(c, "role_name"),
		TaskDesc:     field(c, "task_desc"),
		SkillRequire: field(c, "skill_require"),
		LimitNum:     field(c, "limit_num"),
		Status:       field(c, "role_status"),
		TaskDeadline: field(c, "task_deadline"),
	})
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.notice(c, fmt.Sprintf("role created: %d", res.RoleID))
}

func (h *RolesHandler) List(c echo.Context) error {
	roles, err := h.service.ListByProject(c.Request().Context(), field(c, "project_id"))
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.region(c, "role_items", roles, "")
}

func (h *RolesHandler) Update(c echo.Context) error {
	res, err := h.service.Update(c.Request().Context(), field(c, "role_id"), application.UpdateRoleInput{
		Name:         field(c, "role_name"),
		TaskDesc:     field(c, "task_desc"),
		SkillRequire: field(c, "skill_require"),
		LimitNum:     field(c, "limit_num"),
		JoinNum:      field(c, "join_num"),
		Status:       field(c, "role_status"),
		TaskDeadline: field(c, "task_deadline"),
	})
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.notice(c, messageOr(res.Message, "role updated"))
}

type ApplicationsHandler struct {
	resp    *Responder
	service *application.ApplicationService
}

func NewApplicationsHandler(resp *Responder, service *application.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{resp: resp, service: service}
}

func (h *ApplicationsHandler) Apply(c echo.Context) error {
	res, err := h.service.Apply(c.Request().Context(), field(c, "role_id"), field(c, "motivation"))
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.notice(c, fmt.Sprintf("application submitted: %d", res.ApplicationID))
}

func (h *ApplicationsHandler) ListMine(c echo.Context) error {
	apps, err := h.service.ListMine(c.Request().Context())
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.region(c, "my_applications", apps, "")
}

func (h *ApplicationsHandler) Cancel(c echo.Context) error {
	res, err := h.service.Cancel(c.Request().Context(), field(c, "application_id"))
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.notice(c, messageOr(res.Message, "application cancelled"))
}

func (h *ApplicationsHandler) ListForRole(c echo.Context) error {
	apps, err := h.service.ListForRole(c.Request().Context(), field(c, "role_id"))
	if err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.region(c, "role_applications", apps, "")
}

func (h *ApplicationsHandler) Review(c echo.Context) error {
	if _, err := h.service.Review(c.Request().Context(), field(c, "application_id"), field(c, "decision")); err != nil {
		return h.resp.fail(c, err)
	}
	return h.resp.notice(c, "review completed")
}
