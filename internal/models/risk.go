package models

import "time"

// RiskLevel — порядковая оценка риска (Low < Medium < High < Critical).
type RiskLevel string

const (
	LevelLow      RiskLevel = "Low"
	LevelMedium   RiskLevel = "Medium"
	LevelHigh     RiskLevel = "High"
	LevelCritical RiskLevel = "Critical"
)

// RiskLevels in ascending order.
var RiskLevels = []RiskLevel{LevelLow, LevelMedium, LevelHigh, LevelCritical}

func (l RiskLevel) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelCritical:
		return true
	}
	return false
}

// CalculateRiskLevel maps likelihood × impact onto a risk level:
// 15 and above is Critical, 8..14 High, 3..7 Medium, below 3 Low.
func CalculateRiskLevel(likelihood, impact int) RiskLevel {
	score := likelihood * impact
	switch {
	case score >= 15:
		return LevelCritical
	case score >= 8:
		return LevelHigh
	case score >= 3:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Risk — запись каталога рисков.
type Risk struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name" validate:"required"`
	Description string    `gorm:"type:text" json:"description" validate:"required"`
	Category    string    `gorm:"size:100;index" json:"category" validate:"required"`
	Likelihood  int       `gorm:"not null" json:"likelihood" validate:"min=1,max=5"`
	Impact      int       `gorm:"not null" json:"impact" validate:"min=1,max=5"`
	Level       RiskLevel `gorm:"type:varchar(16);not null" json:"level" validate:"enum"`
	ControlIDs  []string  `gorm:"-" json:"controlIds"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (r Risk) GetID() string { return r.ID }

func (r Risk) Clone() Risk {
	r.ControlIDs = CloneIDs(r.ControlIDs)
	return r
}

// Recalculate keeps Level in sync with likelihood and impact.
func (r *Risk) Recalculate() {
	r.Level = CalculateRiskLevel(r.Likelihood, r.Impact)
}

// RiskInput is the create payload; level is never accepted from outside.
type RiskInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Likelihood  int      `json:"likelihood"`
	Impact      int      `json:"impact"`
	ControlIDs  []string `json:"controlIds"`
}

func (in RiskInput) Risk() Risk {
	r := Risk{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Likelihood:  in.Likelihood,
		Impact:      in.Impact,
		ControlIDs:  CloneIDs(in.ControlIDs),
	}
	r.Recalculate()
	return r
}

// RiskPatch — частичное обновление: nil означает "поле не передано".
type RiskPatch struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Likelihood  *int      `json:"likelihood"`
	Impact      *int      `json:"impact"`
	ControlIDs  *[]string `json:"controlIds"`
}

func (p RiskPatch) Apply(r *Risk) {
	setIf(&r.Name, p.Name)
	setIf(&r.Description, p.Description)
	setIf(&r.Category, p.Category)
	setIf(&r.Likelihood, p.Likelihood)
	setIf(&r.Impact, p.Impact)
	if p.ControlIDs != nil {
		r.ControlIDs = CloneIDs(*p.ControlIDs)
	}
	r.Recalculate()
}
