package database

// Связующие таблицы. Каскадное удаление делает сервисный слой,
// поэтому внешних ключей с ON DELETE здесь нет.

// RiskControl — связь "риск ↔ мера"; пишется с обеих сторон.
type RiskControl struct {
	RiskID    string `gorm:"primaryKey;size:36"`
	ControlID string `gorm:"primaryKey;size:36;index"`
}

func (RiskControl) TableName() string { return "risk_controls" }

type RiskFactorRisk struct {
	RiskFactorID string `gorm:"primaryKey;size:36"`
	RiskID       string `gorm:"primaryKey;size:36;index"`
}

func (RiskFactorRisk) TableName() string { return "risk_factor_risks" }

type ConsequenceRisk struct {
	ConsequenceID string `gorm:"primaryKey;size:36"`
	RiskID        string `gorm:"primaryKey;size:36;index"`
}

func (ConsequenceRisk) TableName() string { return "consequence_risks" }

type BowTieFactor struct {
	BowTieID string `gorm:"column:bowtie_id;primaryKey;size:36"`
	FactorID string `gorm:"primaryKey;size:36;index"`
}

func (BowTieFactor) TableName() string { return "bowtie_factors" }

type BowTieConsequence struct {
	BowTieID      string `gorm:"column:bowtie_id;primaryKey;size:36"`
	ConsequenceID string `gorm:"primaryKey;size:36;index"`
}

func (BowTieConsequence) TableName() string { return "bowtie_consequences" }

type ComplianceControl struct {
	RequirementID string `gorm:"primaryKey;size:36"`
	ControlID     string `gorm:"primaryKey;size:36;index"`
}

func (ComplianceControl) TableName() string { return "compliance_controls" }

type ActionPlanRisk struct {
	ActionPlanID string `gorm:"primaryKey;size:36"`
	RiskID       string `gorm:"primaryKey;size:36;index"`
}

func (ActionPlanRisk) TableName() string { return "action_plan_risks" }

type ActionPlanControl struct {
	ActionPlanID string `gorm:"primaryKey;size:36"`
	ControlID    string `gorm:"primaryKey;size:36;index"`
}

func (ActionPlanControl) TableName() string { return "action_plan_controls" }

type AuditPlanRisk struct {
	AuditPlanID string `gorm:"primaryKey;size:36"`
	RiskID      string `gorm:"primaryKey;size:36;index"`
}

func (AuditPlanRisk) TableName() string { return "audit_plan_risks" }

type AuditPlanControl struct {
	AuditPlanID string `gorm:"primaryKey;size:36"`
	ControlID   string `gorm:"primaryKey;size:36;index"`
}

func (AuditPlanControl) TableName() string { return "audit_plan_controls" }

type VendorRisk struct {
	VendorID string `gorm:"primaryKey;size:36"`
	RiskID   string `gorm:"primaryKey;size:36;index"`
}

func (VendorRisk) TableName() string { return "vendor_risks" }

type VendorControl struct {
	VendorID  string `gorm:"primaryKey;size:36"`
	ControlID string `gorm:"primaryKey;size:36;index"`
}

func (VendorControl) TableName() string { return "vendor_controls" }

// link describes one reference set of entity T stored in a junction table.
type link[T any] struct {
	model     any
	table     string
	ownerCol  string
	targetCol string
	get       func(*T) []string
	set       func(*T, []string)
}

type linkRow struct {
	OwnerID  string
	TargetID string
}
