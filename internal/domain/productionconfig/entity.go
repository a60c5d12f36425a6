package productionconfig

import (
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/formula"
	"github.com/shopspring/decimal"
)

var (
	DefaultAllowance = decimal.NewFromInt(1500)
	DefaultBonusRate = decimal.NewFromInt(200)
)

// Config is one version of a business's pay rules, effective from
// EffectiveDate until the next version.
type Config struct {
	ID                   string
	BusinessID           string
	StitchRate           decimal.Decimal
	AppliqueRate         decimal.Decimal
	OnTargetPct          decimal.Decimal
	AfterTargetPct       decimal.Decimal
	PcsPerRound          decimal.Decimal
	TargetAmount         decimal.Decimal
	OffAmount            decimal.Decimal
	BonusRate            *decimal.Decimal
	Allowance            decimal.Decimal
	StitchFormulaEnabled bool
	StitchFormulaRules   formula.Rules
	EffectiveDate        time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsZero reports whether c is the empty placeholder returned when a business
// has no configuration at all.
func (c Config) IsZero() bool {
	return c.ID == ""
}

// DesignStitchRules returns the configured curve when enabled, otherwise the
// built-in default.
func (c Config) DesignStitchRules() formula.Rules {
	if c.StitchFormulaEnabled && len(c.StitchFormulaRules) > 0 {
		return c.StitchFormulaRules
	}
	return formula.DefaultRules()
}

// EffectiveBonusRate applies the 200 fallback when the config leaves it unset.
func (c Config) EffectiveBonusRate() decimal.Decimal {
	if c.BonusRate != nil {
		return *c.BonusRate
	}
	return DefaultBonusRate
}

// Snapshot freezes the config fields a staff record was computed with.
func (c Config) Snapshot() Snapshot {
	return Snapshot{
		ConfigID:       c.ID,
		EffectiveDate:  c.EffectiveDate.Format("2006-01-02"),
		StitchRate:     c.StitchRate,
		AppliqueRate:   c.AppliqueRate,
		OnTargetPct:    c.OnTargetPct,
		AfterTargetPct: c.AfterTargetPct,
		PcsPerRound:    c.PcsPerRound,
		TargetAmount:   c.TargetAmount,
		OffAmount:      c.OffAmount,
		BonusRate:      c.EffectiveBonusRate(),
		Allowance:      c.Allowance,
	}
}

// Snapshot is embedded in staff records and never changes after the record is
// written, even if the config it came from is edited.
type Snapshot struct {
	ConfigID       string          `json:"config_id"`
	EffectiveDate  string          `json:"effective_date"`
	StitchRate     decimal.Decimal `json:"stitch_rate"`
	AppliqueRate   decimal.Decimal `json:"applique_rate"`
	OnTargetPct    decimal.Decimal `json:"on_target_pct"`
	AfterTargetPct decimal.Decimal `json:"after_target_pct"`
	PcsPerRound    decimal.Decimal `json:"pcs_per_round"`
	TargetAmount   decimal.Decimal `json:"target_amount"`
	OffAmount      decimal.Decimal `json:"off_amount"`
	BonusRate      decimal.Decimal `json:"bonus_rate"`
	Allowance      decimal.Decimal `json:"allowance"`
}
