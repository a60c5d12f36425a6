package productionconfig

import (
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/formula"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateConfigRequest struct {
	StitchRate           decimal.Decimal  `json:"stitch_rate"`
	AppliqueRate         decimal.Decimal  `json:"applique_rate"`
	OnTargetPct          decimal.Decimal  `json:"on_target_pct"`
	AfterTargetPct       decimal.Decimal  `json:"after_target_pct"`
	PcsPerRound          decimal.Decimal  `json:"pcs_per_round"`
	TargetAmount         decimal.Decimal  `json:"target_amount"`
	OffAmount            decimal.Decimal  `json:"off_amount"`
	BonusRate            *decimal.Decimal `json:"bonus_rate,omitempty"`
	Allowance            *decimal.Decimal `json:"allowance,omitempty"`
	StitchFormulaEnabled bool             `json:"stitch_formula_enabled"`
	StitchFormulaRules   formula.Rules    `json:"stitch_formula_rules"`
	EffectiveDate        string           `json:"effective_date" validate:"required,date"`
}

func (r *CreateConfigRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		} else {
			return err
		}
	}

	checkNonNegative(&errs, []namedAmount{
		{"stitch_rate", &r.StitchRate},
		{"applique_rate", &r.AppliqueRate},
		{"on_target_pct", &r.OnTargetPct},
		{"after_target_pct", &r.AfterTargetPct},
		{"pcs_per_round", &r.PcsPerRound},
		{"target_amount", &r.TargetAmount},
		{"off_amount", &r.OffAmount},
		{"bonus_rate", r.BonusRate},
		{"allowance", r.Allowance},
	})
	if err := r.StitchFormulaRules.Validate(); err != nil {
		errs.Add("stitch_formula_rules", err.Error())
	}
	return errs.Err()
}

// ToEntity applies the named defaults: allowance 1500, bonus rate 200.
func (r *CreateConfigRequest) ToEntity(businessID string) Config {
	allowance := DefaultAllowance
	if r.Allowance != nil {
		allowance = *r.Allowance
	}
	bonusRate := DefaultBonusRate
	if r.BonusRate != nil {
		bonusRate = *r.BonusRate
	}
	effective, _ := validator.IsValidDate(r.EffectiveDate)

	return Config{
		BusinessID:           businessID,
		StitchRate:           r.StitchRate,
		AppliqueRate:         r.AppliqueRate,
		OnTargetPct:          r.OnTargetPct,
		AfterTargetPct:       r.AfterTargetPct,
		PcsPerRound:          r.PcsPerRound,
		TargetAmount:         r.TargetAmount,
		OffAmount:            r.OffAmount,
		BonusRate:            &bonusRate,
		Allowance:            allowance,
		StitchFormulaEnabled: r.StitchFormulaEnabled,
		StitchFormulaRules:   formula.Sort(r.StitchFormulaRules),
		EffectiveDate:        effective,
	}
}

type UpdateConfigRequest struct {
	ID                   string           `json:"-"`
	StitchRate           *decimal.Decimal `json:"stitch_rate,omitempty"`
	AppliqueRate         *decimal.Decimal `json:"applique_rate,omitempty"`
	OnTargetPct          *decimal.Decimal `json:"on_target_pct,omitempty"`
	AfterTargetPct       *decimal.Decimal `json:"after_target_pct,omitempty"`
	PcsPerRound          *decimal.Decimal `json:"pcs_per_round,omitempty"`
	TargetAmount         *decimal.Decimal `json:"target_amount,omitempty"`
	OffAmount            *decimal.Decimal `json:"off_amount,omitempty"`
	BonusRate            *decimal.Decimal `json:"bonus_rate,omitempty"`
	Allowance            *decimal.Decimal `json:"allowance,omitempty"`
	StitchFormulaEnabled *bool            `json:"stitch_formula_enabled,omitempty"`
	StitchFormulaRules   *formula.Rules   `json:"stitch_formula_rules,omitempty"`
	EffectiveDate        *string          `json:"effective_date,omitempty" validate:"omitempty,date"`
}

func (r *UpdateConfigRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if err := validator.Struct(r); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		} else {
			return err
		}
	}
	checkNonNegative(&errs, []namedAmount{
		{"stitch_rate", r.StitchRate},
		{"applique_rate", r.AppliqueRate},
		{"on_target_pct", r.OnTargetPct},
		{"after_target_pct", r.AfterTargetPct},
		{"pcs_per_round", r.PcsPerRound},
		{"target_amount", r.TargetAmount},
		{"off_amount", r.OffAmount},
		{"bonus_rate", r.BonusRate},
		{"allowance", r.Allowance},
	})
	if r.StitchFormulaRules != nil {
		if err := r.StitchFormulaRules.Validate(); err != nil {
			errs.Add("stitch_formula_rules", err.Error())
		}
	}
	return errs.Err()
}

// Apply merges the patch onto an existing version.
func (r *UpdateConfigRequest) Apply(c Config) Config {
	set := func(dst *decimal.Decimal, src *decimal.Decimal) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.StitchRate, r.StitchRate)
	set(&c.AppliqueRate, r.AppliqueRate)
	set(&c.OnTargetPct, r.OnTargetPct)
	set(&c.AfterTargetPct, r.AfterTargetPct)
	set(&c.PcsPerRound, r.PcsPerRound)
	set(&c.TargetAmount, r.TargetAmount)
	set(&c.OffAmount, r.OffAmount)
	set(&c.Allowance, r.Allowance)
	if r.BonusRate != nil {
		v := *r.BonusRate
		c.BonusRate = &v
	}
	if r.StitchFormulaEnabled != nil {
		c.StitchFormulaEnabled = *r.StitchFormulaEnabled
	}
	if r.StitchFormulaRules != nil {
		c.StitchFormulaRules = formula.Sort(*r.StitchFormulaRules)
	}
	if r.EffectiveDate != nil {
		if d, ok := validator.IsValidDate(*r.EffectiveDate); ok {
			c.EffectiveDate = d
		}
	}
	return c
}

type namedAmount struct {
	name  string
	value *decimal.Decimal
}

func checkNonNegative(errs *validator.ValidationErrors, fields []namedAmount) {
	for _, f := range fields {
		if f.value != nil && f.value.IsNegative() {
			errs.Add(f.name, "must be non-negative")
		}
	}
}

type ConfigResponse struct {
	ID                   string           `json:"id,omitempty"`
	BusinessID           string           `json:"business_id,omitempty"`
	StitchRate           decimal.Decimal  `json:"stitch_rate"`
	AppliqueRate         decimal.Decimal  `json:"applique_rate"`
	OnTargetPct          decimal.Decimal  `json:"on_target_pct"`
	AfterTargetPct       decimal.Decimal  `json:"after_target_pct"`
	PcsPerRound          decimal.Decimal  `json:"pcs_per_round"`
	TargetAmount         decimal.Decimal  `json:"target_amount"`
	OffAmount            decimal.Decimal  `json:"off_amount"`
	BonusRate            *decimal.Decimal `json:"bonus_rate"`
	Allowance            decimal.Decimal  `json:"allowance"`
	StitchFormulaEnabled bool             `json:"stitch_formula_enabled"`
	StitchFormulaRules   formula.Rules    `json:"stitch_formula_rules"`
	EffectiveDate        string           `json:"effective_date,omitempty"`
	CreatedAt            string           `json:"created_at,omitempty"`
	IsCurrent            bool             `json:"is_current"`
}

func ToResponse(c Config) ConfigResponse {
	if c.IsZero() {
		return ConfigResponse{StitchFormulaRules: formula.Rules{}}
	}
	rules := c.StitchFormulaRules
	if rules == nil {
		rules = formula.Rules{}
	}
	return ConfigResponse{
		ID:                   c.ID,
		BusinessID:           c.BusinessID,
		StitchRate:           c.StitchRate,
		AppliqueRate:         c.AppliqueRate,
		OnTargetPct:          c.OnTargetPct,
		AfterTargetPct:       c.AfterTargetPct,
		PcsPerRound:          c.PcsPerRound,
		TargetAmount:         c.TargetAmount,
		OffAmount:            c.OffAmount,
		BonusRate:            c.BonusRate,
		Allowance:            c.Allowance,
		StitchFormulaEnabled: c.StitchFormulaEnabled,
		StitchFormulaRules:   rules,
		EffectiveDate:        c.EffectiveDate.Format("2006-01-02"),
		CreatedAt:            c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
