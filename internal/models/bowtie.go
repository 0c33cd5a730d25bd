package models

import "time"

// RiskFactor — причина (левая часть bow-tie).
type RiskFactor struct {
	ID          string   `gorm:"primaryKey;size:36" json:"id"`
	Name        string   `gorm:"size:255;not null" json:"name" validate:"required"`
	Description string   `gorm:"type:text" json:"description"`
	RiskIDs     []string `gorm:"-" json:"riskIds"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (f RiskFactor) GetID() string { return f.ID }

func (f RiskFactor) Clone() RiskFactor {
	f.RiskIDs = CloneIDs(f.RiskIDs)
	return f
}

// Consequence — последствие (правая часть bow-tie).
type Consequence struct {
	ID          string   `gorm:"primaryKey;size:36" json:"id"`
	Name        string   `gorm:"size:255;not null" json:"name" validate:"required"`
	Description string   `gorm:"type:text" json:"description"`
	RiskIDs     []string `gorm:"-" json:"riskIds"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (c Consequence) GetID() string { return c.ID }

func (c Consequence) Clone() Consequence {
	c.RiskIDs = CloneIDs(c.RiskIDs)
	return c
}

// BowTieRelationship anchors causes and effects on one risk.
type BowTieRelationship struct {
	ID             string   `gorm:"primaryKey;size:36" json:"id"`
	RiskID         string   `gorm:"size:36;not null;index" json:"riskId" validate:"required"`
	FactorIDs      []string `gorm:"-" json:"factorIds"`
	ConsequenceIDs []string `gorm:"-" json:"consequenceIds"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (b BowTieRelationship) GetID() string { return b.ID }

func (b BowTieRelationship) Clone() BowTieRelationship {
	b.FactorIDs = CloneIDs(b.FactorIDs)
	b.ConsequenceIDs = CloneIDs(b.ConsequenceIDs)
	return b
}

// BowTieDiagram — собранная диаграмма для одного риска.
type BowTieDiagram struct {
	Risk         Risk                `json:"risk"`
	Relationship *BowTieRelationship `json:"relationship"`
	Factors      []RiskFactor        `json:"factors"`
	Consequences []Consequence       `json:"consequences"`
}

// ---- входные данные

type RiskFactorInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	RiskIDs     []string `json:"riskIds"`
}

func (in RiskFactorInput) RiskFactor() RiskFactor {
	return RiskFactor{Name: in.Name, Description: in.Description, RiskIDs: CloneIDs(in.RiskIDs)}
}

type ConsequenceInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	RiskIDs     []string `json:"riskIds"`
}

func (in ConsequenceInput) Consequence() Consequence {
	return Consequence{Name: in.Name, Description: in.Description, RiskIDs: CloneIDs(in.RiskIDs)}
}

type BowTieInput struct {
	RiskID         string   `json:"riskId"`
	FactorIDs      []string `json:"factorIds"`
	ConsequenceIDs []string `json:"consequenceIds"`
}

func (in BowTieInput) BowTie() BowTieRelationship {
	return BowTieRelationship{
		RiskID:         in.RiskID,
		FactorIDs:      CloneIDs(in.FactorIDs),
		ConsequenceIDs: CloneIDs(in.ConsequenceIDs),
	}
}

// ---- частичные обновления

// NodePatch updates a risk factor or a consequence; both share the same shape.
type NodePatch struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	RiskIDs     *[]string `json:"riskIds"`
}

func (p NodePatch) ApplyFactor(f *RiskFactor) {
	setIf(&f.Name, p.Name)
	setIf(&f.Description, p.Description)
	if p.RiskIDs != nil {
		f.RiskIDs = CloneIDs(*p.RiskIDs)
	}
}

func (p NodePatch) ApplyConsequence(c *Consequence) {
	setIf(&c.Name, p.Name)
	setIf(&c.Description, p.Description)
	if p.RiskIDs != nil {
		c.RiskIDs = CloneIDs(*p.RiskIDs)
	}
}

type BowTiePatch struct {
	RiskID         *string   `json:"riskId"`
	FactorIDs      *[]string `json:"factorIds"`
	ConsequenceIDs *[]string `json:"consequenceIds"`
}

func (p BowTiePatch) Apply(b *BowTieRelationship) {
	setIf(&b.RiskID, p.RiskID)
	if p.FactorIDs != nil {
		b.FactorIDs = CloneIDs(*p.FactorIDs)
	}
	if p.ConsequenceIDs != nil {
		b.ConsequenceIDs = CloneIDs(*p.ConsequenceIDs)
	}
}
