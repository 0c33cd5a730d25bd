package models

type VendorStatus string
type DocumentStatus string
type AssessmentStatus string

// критичность поставщика использует ту же шкалу, что и уровень риска
type VendorCriticality = RiskLevel

const (
	VendorActive      VendorStatus = "Active"
	VendorInactive    VendorStatus = "Inactive"
	VendorUnderReview VendorStatus = "Under Review"
	VendorTerminated  VendorStatus = "Terminated"

	DocumentValid         DocumentStatus = "Valid"
	DocumentExpired       DocumentStatus = "Expired"
	DocumentPendingReview DocumentStatus = "Pending Review"

	AssessmentScheduled  AssessmentStatus = "Scheduled"
	AssessmentInProgress AssessmentStatus = "In Progress"
	AssessmentCompleted  AssessmentStatus = "Completed"
	AssessmentOverdue    AssessmentStatus = "Overdue"
)

func (s VendorStatus) Valid() bool {
	switch s {
	case VendorActive, VendorInactive, VendorUnderReview, VendorTerminated:
		return true
	}
	return false
}

func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentValid, DocumentExpired, DocumentPendingReview:
		return true
	}
	return false
}

func (s AssessmentStatus) Valid() bool {
	switch s {
	case AssessmentScheduled, AssessmentInProgress, AssessmentCompleted, AssessmentOverdue:
		return true
	}
	return false
}

type VendorDocument struct {
	ID         string         `json:"id"`
	Name       string         `json:"name" validate:"required"`
	Type       string         `json:"type"`
	UploadDate string         `json:"uploadDate" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate string         `json:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
	Status     DocumentStatus `json:"status" validate:"enum"`
	URL        string         `json:"url"`
}

type VendorAssessment struct {
	ID             string           `json:"id"`
	Date           string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Type           string           `json:"type"`
	Score          int              `json:"score" validate:"min=0,max=100"`
	Findings       []string         `json:"findings"`
	Status         AssessmentStatus `json:"status" validate:"enum"`
	Assessor       string           `json:"assessor"`
	DueDate        string           `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	CompletionDate string           `json:"completionDate" validate:"omitempty,datetime=2006-01-02"`
}

// Vendor — поставщик / третья сторона.
type Vendor struct {
	ID                 string             `gorm:"primaryKey;size:36" json:"id"`
	Name               string             `gorm:"size:255;not null" json:"name" validate:"required"`
	Description        string             `gorm:"type:text" json:"description"`
	Category           string             `gorm:"size:100" json:"category"`
	Status             VendorStatus       `gorm:"type:varchar(32);not null" json:"status" validate:"enum"`
	Criticality        VendorCriticality  `gorm:"type:varchar(16);not null" json:"criticality" validate:"enum"`
	OnboardingDate     string             `gorm:"size:10" json:"onboardingDate" validate:"omitempty,datetime=2006-01-02"`
	LastAssessmentDate string             `gorm:"size:10" json:"lastAssessmentDate" validate:"omitempty,datetime=2006-01-02"`
	NextAssessmentDate string             `gorm:"size:10" json:"nextAssessmentDate" validate:"omitempty,datetime=2006-01-02"`
	ContactName        string             `gorm:"size:255" json:"contactName"`
	ContactEmail       string             `gorm:"size:255" json:"contactEmail" validate:"omitempty,email"`
	ContactPhone       string             `gorm:"size:50" json:"contactPhone"`
	Services           []string           `gorm:"serializer:json;type:text" json:"services"`
	RiskScore          int                `json:"riskScore" validate:"min=0,max=100"`
	RiskLevel          RiskLevel          `gorm:"type:varchar(16)" json:"riskLevel" validate:"enum"`
	RelatedRiskIDs     []string           `gorm:"-" json:"relatedRiskIds"`
	RelatedControlIDs  []string           `gorm:"-" json:"relatedControlIds"`
	Documents          []VendorDocument   `gorm:"serializer:json;type:text" json:"documents" validate:"dive"`
	Assessments        []VendorAssessment `gorm:"serializer:json;type:text" json:"assessments" validate:"dive"`
}

func (v Vendor) GetID() string { return v.ID }

func (v Vendor) Clone() Vendor {
	v.Services = cloneSlice(v.Services)
	v.RelatedRiskIDs = CloneIDs(v.RelatedRiskIDs)
	v.RelatedControlIDs = CloneIDs(v.RelatedControlIDs)
	v.Documents = cloneSlice(v.Documents)
	assessments := make([]VendorAssessment, len(v.Assessments))
	for i, a := range v.Assessments {
		a.Findings = cloneSlice(a.Findings)
		assessments[i] = a
	}
	v.Assessments = assessments
	return v
}

type VendorInput struct {
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Category           string             `json:"category"`
	Status             VendorStatus       `json:"status"`
	Criticality        VendorCriticality  `json:"criticality"`
	OnboardingDate     string             `json:"onboardingDate"`
	LastAssessmentDate string             `json:"lastAssessmentDate"`
	NextAssessmentDate string             `json:"nextAssessmentDate"`
	ContactName        string             `json:"contactName"`
	ContactEmail       string             `json:"contactEmail"`
	ContactPhone       string             `json:"contactPhone"`
	Services           []string           `json:"services"`
	RiskScore          int                `json:"riskScore"`
	RiskLevel          RiskLevel          `json:"riskLevel"`
	RelatedRiskIDs     []string           `json:"relatedRiskIds"`
	RelatedControlIDs  []string           `json:"relatedControlIds"`
	Documents          []VendorDocument   `json:"documents"`
	Assessments        []VendorAssessment `json:"assessments"`
}

// Vendor builds a vendor from the input. riskLevel is entered alongside
// riskScore and is not derived from it; an empty level means Low.
func (in VendorInput) Vendor() Vendor {
	v := Vendor{
		Name:               in.Name,
		Description:        in.Description,
		Category:           in.Category,
		Status:             in.Status,
		Criticality:        in.Criticality,
		OnboardingDate:     in.OnboardingDate,
		LastAssessmentDate: in.LastAssessmentDate,
		NextAssessmentDate: in.NextAssessmentDate,
		ContactName:        in.ContactName,
		ContactEmail:       in.ContactEmail,
		ContactPhone:       in.ContactPhone,
		Services:           in.Services,
		RiskScore:          in.RiskScore,
		RiskLevel:          in.RiskLevel,
		RelatedRiskIDs:     in.RelatedRiskIDs,
		RelatedControlIDs:  in.RelatedControlIDs,
		Documents:          in.Documents,
		Assessments:        in.Assessments,
	}.Clone()
	if v.RiskLevel == "" {
		v.RiskLevel = LevelLow
	}
	return v
}

type VendorPatch struct {
	Name               *string             `json:"name"`
	Description        *string             `json:"description"`
	Category           *string             `json:"category"`
	Status             *VendorStatus       `json:"status"`
	Criticality        *VendorCriticality  `json:"criticality"`
	OnboardingDate     *string             `json:"onboardingDate"`
	LastAssessmentDate *string             `json:"lastAssessmentDate"`
	NextAssessmentDate *string             `json:"nextAssessmentDate"`
	ContactName        *string             `json:"contactName"`
	ContactEmail       *string             `json:"contactEmail"`
	ContactPhone       *string             `json:"contactPhone"`
	Services           *[]string           `json:"services"`
	RiskScore          *int                `json:"riskScore"`
	RiskLevel          *RiskLevel          `json:"riskLevel"`
	RelatedRiskIDs     *[]string           `json:"relatedRiskIds"`
	RelatedControlIDs  *[]string           `json:"relatedControlIds"`
	Documents          *[]VendorDocument   `json:"documents"`
	Assessments        *[]VendorAssessment `json:"assessments"`
}

func (p VendorPatch) Apply(v *Vendor) {
	setIf(&v.Name, p.Name)
	setIf(&v.Description, p.Description)
	setIf(&v.Category, p.Category)
	setIf(&v.Status, p.Status)
	setIf(&v.Criticality, p.Criticality)
	setIf(&v.OnboardingDate, p.OnboardingDate)
	setIf(&v.LastAssessmentDate, p.LastAssessmentDate)
	setIf(&v.NextAssessmentDate, p.NextAssessmentDate)
	setIf(&v.ContactName, p.ContactName)
	setIf(&v.ContactEmail, p.ContactEmail)
	setIf(&v.ContactPhone, p.ContactPhone)
	setIf(&v.RiskScore, p.RiskScore)
	setIf(&v.RiskLevel, p.RiskLevel)
	if p.Services != nil {
		v.Services = *p.Services
	}
	if p.RelatedRiskIDs != nil {
		v.RelatedRiskIDs = *p.RelatedRiskIDs
	}
	if p.RelatedControlIDs != nil {
		v.RelatedControlIDs = *p.RelatedControlIDs
	}
	if p.Documents != nil {
		v.Documents = *p.Documents
	}
	if p.Assessments != nil {
		v.Assessments = *p.Assessments
	}
	*v = v.Clone()
}
