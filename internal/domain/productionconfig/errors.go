package productionconfig

import "errors"

var (
	ErrConfigNotFound            = errors.New("production config not found")
	ErrNoConfigForBusiness       = errors.New("set up production config first")
	ErrEffectiveDateExists       = errors.New("a production config already exists for this effective date")
	ErrInvalidStitchFormulaRules = errors.New("invalid stitch formula rules")
)
