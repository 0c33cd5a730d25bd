package models

import "time"

type ActionStatus string

const (
	ActionNotStarted ActionStatus = "Not Started"
	ActionInProgress ActionStatus = "In Progress"
	ActionCompleted  ActionStatus = "Completed"
	ActionOverdue    ActionStatus = "Overdue"
	ActionCancelled  ActionStatus = "Cancelled"
)

func (s ActionStatus) Valid() bool {
	switch s {
	case ActionNotStarted, ActionInProgress, ActionCompleted, ActionOverdue, ActionCancelled:
		return true
	}
	return false
}

// приоритет плана использует ту же шкалу, что и уровень риска
type ActionPriority = RiskLevel

type ActionTask struct {
	ID        string `json:"id"`
	Title     string `json:"title" validate:"required"`
	Completed bool   `json:"completed"`
}

type ActionComment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content" validate:"required"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// ActionPlan — план мероприятий по снижению рисков.
type ActionPlan struct {
	ID                string          `gorm:"primaryKey;size:36" json:"id"`
	Title             string          `gorm:"size:255;not null" json:"title" validate:"required"`
	Description       string          `gorm:"type:text" json:"description"`
	Status            ActionStatus    `gorm:"type:varchar(32);not null" json:"status" validate:"enum"`
	Priority          ActionPriority  `gorm:"type:varchar(16);not null" json:"priority" validate:"enum"`
	DueDate           string          `gorm:"size:10" json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Assignee          string          `gorm:"size:255" json:"assignee"`
	Progress          int             `json:"progress" validate:"min=0,max=100"`
	RelatedRiskIDs    []string        `gorm:"-" json:"relatedRiskIds"`
	RelatedControlIDs []string        `gorm:"-" json:"relatedControlIds"`
	Tasks             []ActionTask    `gorm:"serializer:json;type:text" json:"tasks" validate:"dive"`
	Comments          []ActionComment `gorm:"serializer:json;type:text" json:"comments" validate:"dive"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (a ActionPlan) GetID() string { return a.ID }

func (a ActionPlan) Clone() ActionPlan {
	a.RelatedRiskIDs = CloneIDs(a.RelatedRiskIDs)
	a.RelatedControlIDs = CloneIDs(a.RelatedControlIDs)
	a.Tasks = cloneSlice(a.Tasks)
	a.Comments = cloneSlice(a.Comments)
	return a
}

type ActionPlanInput struct {
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Status            ActionStatus    `json:"status"`
	Priority          ActionPriority  `json:"priority"`
	DueDate           string          `json:"dueDate"`
	Assignee          string          `json:"assignee"`
	Progress          int             `json:"progress"`
	RelatedRiskIDs    []string        `json:"relatedRiskIds"`
	RelatedControlIDs []string        `json:"relatedControlIds"`
	Tasks             []ActionTask    `json:"tasks"`
	Comments          []ActionComment `json:"comments"`
}

func (in ActionPlanInput) ActionPlan() ActionPlan {
	return ActionPlan{
		Title:             in.Title,
		Description:       in.Description,
		Status:            in.Status,
		Priority:          in.Priority,
		DueDate:           in.DueDate,
		Assignee:          in.Assignee,
		Progress:          in.Progress,
		RelatedRiskIDs:    CloneIDs(in.RelatedRiskIDs),
		RelatedControlIDs: CloneIDs(in.RelatedControlIDs),
		Tasks:             cloneSlice(in.Tasks),
		Comments:          cloneSlice(in.Comments),
	}
}

type ActionPlanPatch struct {
	Title             *string          `json:"title"`
	Description       *string          `json:"description"`
	Status            *ActionStatus    `json:"status"`
	Priority          *ActionPriority  `json:"priority"`
	DueDate           *string          `json:"dueDate"`
	Assignee          *string          `json:"assignee"`
	Progress          *int             `json:"progress"`
	RelatedRiskIDs    *[]string        `json:"relatedRiskIds"`
	RelatedControlIDs *[]string        `json:"relatedControlIds"`
	Tasks             *[]ActionTask    `json:"tasks"`
	Comments          *[]ActionComment `json:"comments"`
}

func (p ActionPlanPatch) Apply(a *ActionPlan) {
	setIf(&a.Title, p.Title)
	setIf(&a.Description, p.Description)
	setIf(&a.Status, p.Status)
	setIf(&a.Priority, p.Priority)
	setIf(&a.DueDate, p.DueDate)
	setIf(&a.Assignee, p.Assignee)
	setIf(&a.Progress, p.Progress)
	if p.RelatedRiskIDs != nil {
		a.RelatedRiskIDs = CloneIDs(*p.RelatedRiskIDs)
	}
	if p.RelatedControlIDs != nil {
		a.RelatedControlIDs = CloneIDs(*p.RelatedControlIDs)
	}
	if p.Tasks != nil {
		a.Tasks = cloneSlice(*p.Tasks)
	}
	if p.Comments != nil {
		a.Comments = cloneSlice(*p.Comments)
	}
}

// CommentInput — новый комментарий к плану.
type CommentInput struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// TaskPatch переключает отметку о выполнении подзадачи.
type TaskPatch struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}
