package domain

import (
	"bytes"
	"encoding/json"
)

const (
	DefaultStatus = "招募中"

	UserTypeStudent    = "学生"
	UserTypeEnterprise = "企业"

	DecisionAccepted = "accepted"
	DecisionRejected = "rejected"
)

type Project struct {
	ID            int64  `json:"project_id"`
	Name          string `json:"project_name"`
	Description   string `json:"description"`
	Status        string `json:"project_status"`
	Company       string `json:"company"`
	PublisherID   int64  `json:"publisher_id,omitempty"`
	PublisherName string `json:"publisher_name,omitempty"`
	PublishTime   Timestamp `json:"publish_time,omitempty"`
	Deadline      Timestamp `json:"deadline,omitempty"`
	ResultURL     string `json:"result_url,omitempty"`
}

type Role struct {
	ID           int64  `json:"role_id"`
	ProjectID    int64  `json:"project_id"`
	Name         string `json:"role_name"`
	TaskDesc     string `json:"task_desc"`
	SkillRequire string `json:"skill_require"`
	LimitNum     int    `json:"limit_num"`
	JoinNum      int    `json:"join_num"`
	Status       string `json:"role_status"`
	TaskDeadline Timestamp `json:"task_deadline,omitempty"`
}

type Application struct {
	ID          int64  `json:"application_id"`
	Status      string `json:"status"`
	Motivation  string `json:"motivation"`
	ApplyTime   Timestamp `json:"apply_time,omitempty"`
	UpdateTime  Timestamp `json:"update_time,omitempty"`
	RoleID      int64  `json:"role_id,omitempty"`
	RoleName    string `json:"role_name,omitempty"`
	ProjectID   int64  `json:"project_id,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
	Company     string `json:"company,omitempty"`
	StudentID   int64  `json:"student_id,omitempty"`
	StudentName string `json:"student_name,omitempty"`
	RealName    string `json:"real_name,omitempty"`
}

type Profile struct {
	UserID        int64  `json:"user_id"`
	Username      string `json:"username"`
	UserType      string `json:"user_type"`
	RealName      string `json:"real_name"`
	SchoolCompany string `json:"school_company"`
}

// Timestamp is a backend time column. The backend does not check the format, so a
// value may come back as a JSON string, a number or null; non-strings keep their raw text.
type Timestamp string

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Timestamp(s)
		return nil
	}
	*t = Timestamp(data)
	return nil
}
