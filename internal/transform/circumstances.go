package transform

import (
	"fmt"
	"slices"

	"github.com/ukcalc/ukcalc/internal/domain"
)

// SetResidency moves the scenario in or out of Scotland
type SetResidency struct {
	Scotland bool
}

func (sr *SetResidency) Name() string {
	return "set_residency"
}

func (sr *SetResidency) Description() string {
	if sr.Scotland {
		return "Pay Scottish income tax"
	}
	return "Pay rest-of-UK income tax"
}

func (sr *SetResidency) Validate(base *domain.Scenario) error {
	return requireBase(sr.Name(), base)
}

func (sr *SetResidency) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.ResidentInScotland = sr.Scotland
	return modified, nil
}

// SetTaxYear recalculates the scenario under another tax year
type SetTaxYear struct {
	TaxYear string
}

func (st *SetTaxYear) Name() string {
	return "set_tax_year"
}

func (st *SetTaxYear) Description() string {
	return fmt.Sprintf("Use the %s tax year", st.TaxYear)
}

func (st *SetTaxYear) Validate(base *domain.Scenario) error {
	if err := requireBase(st.Name(), base); err != nil {
		return err
	}
	if st.TaxYear == "" {
		return NewTransformError(st.Name(), "validate", "tax year cannot be empty", nil)
	}
	return nil
}

func (st *SetTaxYear) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.TaxYear = st.TaxYear
	return modified, nil
}

// SetExcludeNI turns National Insurance on or off, for example past State Pension age
type SetExcludeNI struct {
	Exclude bool
}

func (se *SetExcludeNI) Name() string {
	return "set_exclude_ni"
}

func (se *SetExcludeNI) Description() string {
	if se.Exclude {
		return "Stop paying National Insurance"
	}
	return "Pay National Insurance"
}

func (se *SetExcludeNI) Validate(base *domain.Scenario) error {
	return requireBase(se.Name(), base)
}

func (se *SetExcludeNI) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.ExcludeNI = se.Exclude
	return modified, nil
}

// AddStudentLoan adds a repayment plan. Adding a plan the scenario already has is a no-op.
type AddStudentLoan struct {
	Plan domain.StudentLoanPlan
}

func (as *AddStudentLoan) Name() string {
	return "add_student_loan"
}

func (as *AddStudentLoan) Description() string {
	return fmt.Sprintf("Repay a %s student loan", as.Plan.Label())
}

func (as *AddStudentLoan) Validate(base *domain.Scenario) error {
	if err := requireBase(as.Name(), base); err != nil {
		return err
	}
	if _, err := domain.ParseStudentLoanPlan(string(as.Plan)); err != nil {
		return NewTransformError(as.Name(), "validate", "invalid plan", err)
	}
	return nil
}

func (as *AddStudentLoan) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	if !slices.Contains(modified.StudentLoanPlans, as.Plan) {
		modified.StudentLoanPlans = append(modified.StudentLoanPlans, as.Plan)
	}
	return modified, nil
}

// RemoveStudentLoan drops one plan, or every plan when Plan is empty
type RemoveStudentLoan struct {
	Plan domain.StudentLoanPlan
}

func (rs *RemoveStudentLoan) Name() string {
	return "remove_student_loan"
}

func (rs *RemoveStudentLoan) Description() string {
	if rs.Plan == "" {
		return "Clear all student loans"
	}
	return fmt.Sprintf("Clear the %s student loan", rs.Plan.Label())
}

func (rs *RemoveStudentLoan) Validate(base *domain.Scenario) error {
	if err := requireBase(rs.Name(), base); err != nil {
		return err
	}
	if rs.Plan != "" && !slices.Contains(base.StudentLoanPlans, rs.Plan) {
		return NewTransformError(rs.Name(), "validate", fmt.Sprintf("scenario has no %s loan", rs.Plan.Label()), nil)
	}
	return nil
}

func (rs *RemoveStudentLoan) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	if rs.Plan == "" {
		modified.StudentLoanPlans = nil
		return modified, nil
	}
	modified.StudentLoanPlans = slices.DeleteFunc(modified.StudentLoanPlans, func(p domain.StudentLoanPlan) bool {
		return p == rs.Plan
	})
	return modified, nil
}
