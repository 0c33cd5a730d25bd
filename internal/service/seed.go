package service

import (
	"context"
	"log/slog"

	"grcwalk/internal/models"
)

// Seed fills an empty store with a demo register. It does nothing when at
// least one risk already exists and reports whether data was written.
func (s *Service) Seed(ctx context.Context) (bool, error) {
	seeded := false
	err := s.mutate(ctx, func(tx *txn) error {
		existing, err := tx.Risks().List(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			// данные уже есть — ничего не делаем
			return nil
		}
		if err := s.seed(ctx, tx); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		slog.Info("demo data seeded")
	}
	return seeded, nil
}

func (s *Service) seed(ctx context.Context, tx *txn) error {
	riskInputs := []models.RiskInput{
		{Name: "Cyber attack", Description: "Cyber attack disrupting delivery of critical services", Category: "Information Security", Likelihood: 4, Impact: 5},
		{Name: "Operational risk non-compliance", Description: "Breach of central bank resolutions on operational risk", Category: "Compliance", Likelihood: 2, Impact: 4},
		{Name: "System unavailability", Description: "Critical payment systems unavailable", Category: "Operational", Likelihood: 3, Impact: 4},
		{Name: "Critical third-party outage", Description: "Suppliers and partners unavailable, impacting service delivery", Category: "Operational", Likelihood: 2, Impact: 3},
		{Name: "Transaction fraud", Description: "Internal or external fraud in transactions causing financial loss", Category: "Operational", Likelihood: 4, Impact: 4},
	}
	risks := make([]models.Risk, 0, len(riskInputs))
	for _, in := range riskInputs {
		r, err := s.createRisk(ctx, tx, in)
		if err != nil {
			return err
		}
		risks = append(risks, r)
	}

	controlInputs := []models.ControlInput{
		{Name: "Data Encryption", Description: "All sensitive data is encrypted at rest and in transit", Type: models.ControlPreventive, Status: models.ControlImplemented, Effectiveness: 4, RiskIDs: []string{risks[0].ID}},
		{Name: "Access Controls", Description: "Role-based access control to systems and data", Type: models.ControlPreventive, Status: models.ControlImplemented, Effectiveness: 3, RiskIDs: []string{risks[0].ID}},
		{Name: "Compliance Monitoring", Description: "Regular audit and monitoring of compliance requirements", Type: models.ControlDetective, Status: models.ControlPartial, Effectiveness: 2, RiskIDs: []string{risks[1].ID}},
		{Name: "Redundant Systems", Description: "Backup systems and failover mechanisms", Type: models.ControlCorrective, Status: models.ControlImplemented, Effectiveness: 4},
	}
	controls := make([]models.Control, 0, len(controlInputs))
	for _, in := range controlInputs {
		c, err := s.createControl(ctx, tx, in)
		if err != nil {
			return err
		}
		controls = append(controls, c)
	}

	anchor := []string{risks[0].ID}
	var factorIDs, consequenceIDs []string
	for _, in := range []models.RiskFactorInput{
		{Name: "Weak Passwords", Description: "Use of easy-to-guess passwords by users", RiskIDs: anchor},
		{Name: "Phishing Attempts", Description: "Social engineering attacks via email or messaging", RiskIDs: anchor},
		{Name: "Outdated Software", Description: "Systems running unpatched or obsolete software", RiskIDs: anchor},
	} {
		f, err := s.createRiskFactor(ctx, tx, in)
		if err != nil {
			return err
		}
		factorIDs = append(factorIDs, f.ID)
	}
	for _, in := range []models.ConsequenceInput{
		{Name: "Financial Loss", Description: "Direct monetary losses due to the risk", RiskIDs: anchor},
		{Name: "Reputational Damage", Description: "Loss of customer and market trust", RiskIDs: anchor},
		{Name: "Regulatory Penalties", Description: "Fines and sanctions from regulatory bodies", RiskIDs: anchor},
	} {
		c, err := s.createConsequence(ctx, tx, in)
		if err != nil {
			return err
		}
		consequenceIDs = append(consequenceIDs, c.ID)
	}
	if _, err := s.createBowTie(ctx, tx, models.BowTieInput{RiskID: risks[0].ID, FactorIDs: factorIDs, ConsequenceIDs: consequenceIDs}); err != nil {
		return err
	}

	if _, err := s.createCompliance(ctx, tx, models.ComplianceInput{
		Name:        "A.8.24 Use of cryptography",
		Description: "Rules for the effective use of cryptography are defined and implemented",
		Framework:   "ISO 27001",
		Status:      models.ComplianceCompliant,
		DueDate:     "2025-06-30",
		Assignee:    "Security Office",
		ControlIDs:  []string{controls[0].ID},
	}); err != nil {
		return err
	}

	if _, err := s.createActionPlan(ctx, tx, models.ActionPlanInput{
		Title:             "Roll out MFA",
		Description:       "Enforce multi-factor authentication for all remote access",
		Status:            models.ActionInProgress,
		Priority:          models.LevelHigh,
		DueDate:           "2025-09-30",
		Assignee:          "IT Operations",
		Progress:          60,
		RelatedRiskIDs:    []string{risks[0].ID},
		RelatedControlIDs: []string{controls[1].ID},
		Tasks: []models.ActionTask{
			{Title: "Select MFA provider", Completed: true},
			{Title: "Enroll administrators", Completed: true},
			{Title: "Enroll all staff"},
		},
	}); err != nil {
		return err
	}

	if _, err := s.createAuditPlan(ctx, tx, models.AuditPlanInput{
		Title:             "Payment systems resilience review",
		Description:       "Annual review of failover and recovery for payment systems",
		Scope:             "Payment processing platform",
		Objectives:        []string{"Verify failover procedures", "Review recovery time objectives"},
		Status:            models.AuditPlanned,
		StartDate:         "2025-10-01",
		EndDate:           "2025-10-31",
		Auditor:           "Internal Audit",
		AuditType:         "Internal",
		RelatedRiskIDs:    []string{risks[2].ID},
		RelatedControlIDs: []string{controls[3].ID},
		ChecklistItems: []models.ChecklistItem{
			{Description: "Collect last failover test report"},
			{Description: "Interview platform owners"},
		},
	}); err != nil {
		return err
	}

	_, err := s.createVendor(ctx, tx, models.VendorInput{
		Name:               "CloudHost Ltd",
		Description:        "Infrastructure hosting provider",
		Category:           "Cloud Services",
		Status:             models.VendorActive,
		Criticality:        models.LevelCritical,
		OnboardingDate:     "2023-01-15",
		LastAssessmentDate: "2024-11-20",
		NextAssessmentDate: "2025-11-20",
		ContactName:        "Jane Doe",
		ContactEmail:       "jane.doe@cloudhost.example",
		Services:           []string{"IaaS", "Managed backups"},
		RiskScore:          55,
		RiskLevel:          models.LevelMedium,
		RelatedRiskIDs:     []string{risks[3].ID},
		Documents: []models.VendorDocument{
			{Name: "SOC 2 Type II report", Type: "Certification", UploadDate: "2024-11-20", ExpiryDate: "2025-11-20", Status: models.DocumentValid},
		},
	})
	return err
}
