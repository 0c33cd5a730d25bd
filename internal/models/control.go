package models

import "time"

type ControlType string
type ControlStatus string

const (
	ControlPreventive ControlType = "Preventive"
	ControlDetective  ControlType = "Detective"
	ControlCorrective ControlType = "Corrective"
	ControlDirective  ControlType = "Directive"

	ControlImplemented    ControlStatus = "Implemented"
	ControlPartial        ControlStatus = "Partial"
	ControlPlanned        ControlStatus = "Planned"
	ControlNotImplemented ControlStatus = "Not Implemented"
)

func (t ControlType) Valid() bool {
	switch t {
	case ControlPreventive, ControlDetective, ControlCorrective, ControlDirective:
		return true
	}
	return false
}

func (s ControlStatus) Valid() bool {
	switch s {
	case ControlImplemented, ControlPartial, ControlPlanned, ControlNotImplemented:
		return true
	}
	return false
}

// Control — мера, снижающая один или несколько рисков.
type Control struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	Name          string        `gorm:"size:255;not null" json:"name" validate:"required"`
	Description   string        `gorm:"type:text" json:"description"`
	Type          ControlType   `gorm:"type:varchar(32);not null" json:"type" validate:"enum"`
	Status        ControlStatus `gorm:"type:varchar(32);not null" json:"status" validate:"enum"`
	Effectiveness int           `gorm:"not null" json:"effectiveness" validate:"min=1,max=5"`
	RiskIDs       []string      `gorm:"-" json:"riskIds"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (c Control) GetID() string { return c.ID }

func (c Control) Clone() Control {
	c.RiskIDs = CloneIDs(c.RiskIDs)
	return c
}

type ControlInput struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Type          ControlType   `json:"type"`
	Status        ControlStatus `json:"status"`
	Effectiveness int           `json:"effectiveness"`
	RiskIDs       []string      `json:"riskIds"`
}

func (in ControlInput) Control() Control {
	return Control{
		Name:          in.Name,
		Description:   in.Description,
		Type:          in.Type,
		Status:        in.Status,
		Effectiveness: in.Effectiveness,
		RiskIDs:       CloneIDs(in.RiskIDs),
	}
}

type ControlPatch struct {
	Name          *string        `json:"name"`
	Description   *string        `json:"description"`
	Type          *ControlType   `json:"type"`
	Status        *ControlStatus `json:"status"`
	Effectiveness *int           `json:"effectiveness"`
	RiskIDs       *[]string      `json:"riskIds"`
}

func (p ControlPatch) Apply(c *Control) {
	setIf(&c.Name, p.Name)
	setIf(&c.Description, p.Description)
	setIf(&c.Type, p.Type)
	setIf(&c.Status, p.Status)
	setIf(&c.Effectiveness, p.Effectiveness)
	if p.RiskIDs != nil {
		c.RiskIDs = CloneIDs(*p.RiskIDs)
	}
}
