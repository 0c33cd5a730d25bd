package models

import "time"

type ComplianceStatus string

const (
	ComplianceCompliant     ComplianceStatus = "Compliant"
	CompliancePartial       ComplianceStatus = "Partially Compliant"
	ComplianceNonCompliant  ComplianceStatus = "Non-Compliant"
	ComplianceNotApplicable ComplianceStatus = "Not Applicable"
)

func (s ComplianceStatus) Valid() bool {
	switch s {
	case ComplianceCompliant, CompliancePartial, ComplianceNonCompliant, ComplianceNotApplicable:
		return true
	}
	return false
}

// ComplianceRequirement — требование стандарта (ISO 27001, NIST CSF и т.п.).
type ComplianceRequirement struct {
	ID          string           `gorm:"primaryKey;size:36" json:"id"`
	Name        string           `gorm:"size:255;not null" json:"name" validate:"required"`
	Description string           `gorm:"type:text" json:"description"`
	Framework   string           `gorm:"size:128;index" json:"framework" validate:"required"`
	Status      ComplianceStatus `gorm:"type:varchar(32);not null" json:"status" validate:"enum"`
	DueDate     string           `gorm:"size:10" json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Assignee    string           `gorm:"size:255" json:"assignee"`
	Evidence    string           `gorm:"type:text" json:"evidence"`
	ControlIDs  []string         `gorm:"-" json:"controlIds"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (r ComplianceRequirement) GetID() string { return r.ID }

func (r ComplianceRequirement) Clone() ComplianceRequirement {
	r.ControlIDs = CloneIDs(r.ControlIDs)
	return r
}

type ComplianceInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Framework   string           `json:"framework"`
	Status      ComplianceStatus `json:"status"`
	DueDate     string           `json:"dueDate"`
	Assignee    string           `json:"assignee"`
	Evidence    string           `json:"evidence"`
	ControlIDs  []string         `json:"controlIds"`
}

func (in ComplianceInput) Requirement() ComplianceRequirement {
	return ComplianceRequirement{
		Name:        in.Name,
		Description: in.Description,
		Framework:   in.Framework,
		Status:      in.Status,
		DueDate:     in.DueDate,
		Assignee:    in.Assignee,
		Evidence:    in.Evidence,
		ControlIDs:  CloneIDs(in.ControlIDs),
	}
}

type CompliancePatch struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Framework   *string           `json:"framework"`
	Status      *ComplianceStatus `json:"status"`
	DueDate     *string           `json:"dueDate"`
	Assignee    *string           `json:"assignee"`
	Evidence    *string           `json:"evidence"`
	ControlIDs  *[]string         `json:"controlIds"`
}

func (p CompliancePatch) Apply(r *ComplianceRequirement) {
	setIf(&r.Name, p.Name)
	setIf(&r.Description, p.Description)
	setIf(&r.Framework, p.Framework)
	setIf(&r.Status, p.Status)
	setIf(&r.DueDate, p.DueDate)
	setIf(&r.Assignee, p.Assignee)
	setIf(&r.Evidence, p.Evidence)
	if p.ControlIDs != nil {
		r.ControlIDs = CloneIDs(*p.ControlIDs)
	}
}
