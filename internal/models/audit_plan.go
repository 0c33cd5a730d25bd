package models

import "time"

type AuditStatus string

const (
	AuditPlanned    AuditStatus = "Planned"
	AuditInProgress AuditStatus = "In Progress"
	AuditCompleted  AuditStatus = "Completed"
	AuditDelayed    AuditStatus = "Delayed"
	AuditCancelled  AuditStatus = "Cancelled"
)

func (s AuditStatus) Valid() bool {
	switch s {
	case AuditPlanned, AuditInProgress, AuditCompleted, AuditDelayed, AuditCancelled:
		return true
	}
	return false
}

type ChecklistItem struct {
	ID          string `json:"id"`
	Description string `json:"description" validate:"required"`
	Completed   bool   `json:"completed"`
}

// AuditFinding — замечание аудита; статус устранения берётся из шкалы планов мероприятий.
type AuditFinding struct {
	ID               string       `json:"id"`
	Title            string       `json:"title" validate:"required"`
	Description      string       `json:"description"`
	Severity         RiskLevel    `json:"severity" validate:"enum"`
	Recommendation   string       `json:"recommendation"`
	ResponsibleParty string       `json:"responsibleParty"`
	DueDate          string       `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Status           ActionStatus `json:"status" validate:"enum"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

type AuditPlan struct {
	ID                string          `gorm:"primaryKey;size:36" json:"id"`
	Title             string          `gorm:"size:255;not null" json:"title" validate:"required"`
	Description       string          `gorm:"type:text" json:"description"`
	Scope             string          `gorm:"type:text" json:"scope"`
	Objectives        []string        `gorm:"serializer:json;type:text" json:"objectives"`
	Status            AuditStatus     `gorm:"type:varchar(32);not null" json:"status" validate:"enum"`
	StartDate         string          `gorm:"size:10" json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate           string          `gorm:"size:10" json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Auditor           string          `gorm:"size:255" json:"auditor"`
	AuditType         string          `gorm:"size:64" json:"auditType"`
	RelatedRiskIDs    []string        `gorm:"-" json:"relatedRiskIds"`
	RelatedControlIDs []string        `gorm:"-" json:"relatedControlIds"`
	ChecklistItems    []ChecklistItem `gorm:"serializer:json;type:text" json:"checklistItems" validate:"dive"`
	Findings          []AuditFinding  `gorm:"serializer:json;type:text" json:"findings" validate:"dive"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (a AuditPlan) GetID() string { return a.ID }

func (a AuditPlan) Clone() AuditPlan {
	a.Objectives = cloneSlice(a.Objectives)
	a.RelatedRiskIDs = CloneIDs(a.RelatedRiskIDs)
	a.RelatedControlIDs = CloneIDs(a.RelatedControlIDs)
	a.ChecklistItems = cloneSlice(a.ChecklistItems)
	a.Findings = cloneSlice(a.Findings)
	return a
}

type AuditPlanInput struct {
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Scope             string          `json:"scope"`
	Objectives        []string        `json:"objectives"`
	Status            AuditStatus     `json:"status"`
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	Auditor           string          `json:"auditor"`
	AuditType         string          `json:"auditType"`
	RelatedRiskIDs    []string        `json:"relatedRiskIds"`
	RelatedControlIDs []string        `json:"relatedControlIds"`
	ChecklistItems    []ChecklistItem `json:"checklistItems"`
	Findings          []AuditFinding  `json:"findings"`
}

func (in AuditPlanInput) AuditPlan() AuditPlan {
	return AuditPlan{
		Title:             in.Title,
		Description:       in.Description,
		Scope:             in.Scope,
		Objectives:        cloneSlice(in.Objectives),
		Status:            in.Status,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		Auditor:           in.Auditor,
		AuditType:         in.AuditType,
		RelatedRiskIDs:    CloneIDs(in.RelatedRiskIDs),
		RelatedControlIDs: CloneIDs(in.RelatedControlIDs),
		ChecklistItems:    cloneSlice(in.ChecklistItems),
		Findings:          cloneSlice(in.Findings),
	}
}

type AuditPlanPatch struct {
	Title             *string          `json:"title"`
	Description       *string          `json:"description"`
	Scope             *string          `json:"scope"`
	Objectives        *[]string        `json:"objectives"`
	Status            *AuditStatus     `json:"status"`
	StartDate         *string          `json:"startDate"`
	EndDate           *string          `json:"endDate"`
	Auditor           *string          `json:"auditor"`
	AuditType         *string          `json:"auditType"`
	RelatedRiskIDs    *[]string        `json:"relatedRiskIds"`
	RelatedControlIDs *[]string        `json:"relatedControlIds"`
	ChecklistItems    *[]ChecklistItem `json:"checklistItems"`
	Findings          *[]AuditFinding  `json:"findings"`
}

func (p AuditPlanPatch) Apply(a *AuditPlan) {
	setIf(&a.Title, p.Title)
	setIf(&a.Description, p.Description)
	setIf(&a.Scope, p.Scope)
	setIf(&a.Status, p.Status)
	setIf(&a.StartDate, p.StartDate)
	setIf(&a.EndDate, p.EndDate)
	setIf(&a.Auditor, p.Auditor)
	setIf(&a.AuditType, p.AuditType)
	if p.Objectives != nil {
		a.Objectives = cloneSlice(*p.Objectives)
	}
	if p.RelatedRiskIDs != nil {
		a.RelatedRiskIDs = CloneIDs(*p.RelatedRiskIDs)
	}
	if p.RelatedControlIDs != nil {
		a.RelatedControlIDs = CloneIDs(*p.RelatedControlIDs)
	}
	if p.ChecklistItems != nil {
		a.ChecklistItems = cloneSlice(*p.ChecklistItems)
	}
	if p.Findings != nil {
		a.Findings = cloneSlice(*p.Findings)
	}
}

// FindingInput — новое замечание, добавляемое к плану аудита.
type FindingInput struct {
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Severity         RiskLevel    `json:"severity"`
	Recommendation   string       `json:"recommendation"`
	ResponsibleParty string       `json:"responsibleParty"`
	DueDate          string       `json:"dueDate"`
	Status           ActionStatus `json:"status"`
}
