package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/formula"
	"github.com/jackc/pgx/v5"
)

type productionConfigRepository struct {
	db *database.DB
}

func NewProductionConfigRepository(db *database.DB) productionconfig.ConfigRepository {
	return &productionConfigRepository{db: db}
}

const productionConfigColumns = `
	id, business_id, stitch_rate, applique_rate, on_target_pct, after_target_pct,
	pcs_per_round, target_amount, off_amount, bonus_rate, allowance,
	stitch_formula_enabled, stitch_formula_rules, effective_date, created_at, updated_at`

func scanProductionConfig(row pgx.Row) (productionconfig.Config, error) {
	var (
		c     productionconfig.Config
		rules []byte
	)
	err := row.Scan(
		&c.ID, &c.BusinessID, &c.StitchRate, &c.AppliqueRate, &c.OnTargetPct, &c.AfterTargetPct,
		&c.PcsPerRound, &c.TargetAmount, &c.OffAmount, &c.BonusRate, &c.Allowance,
		&c.StitchFormulaEnabled, &rules, &c.EffectiveDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return productionconfig.Config{}, err
	}
	if len(rules) > 0 {
		if err := json.Unmarshal(rules, &c.StitchFormulaRules); err != nil {
			return productionconfig.Config{}, fmt.Errorf("failed to decode stitch formula rules: %w", err)
		}
	}
	return c, nil
}

func encodeRules(rules formula.Rules) ([]byte, error) {
	if rules == nil {
		rules = formula.Rules{}
	}
	return json.Marshal(formula.Sort(rules))
}

func (r *productionConfigRepository) Create(ctx context.Context, cfg productionconfig.Config) (productionconfig.Config, error) {
	q := GetQuerier(ctx, r.db)

	rules, err := encodeRules(cfg.StitchFormulaRules)
	if err != nil {
		return productionconfig.Config{}, fmt.Errorf("failed to encode stitch formula rules: %w", err)
	}

	query := `
		INSERT INTO production_configs (
			id, business_id, stitch_rate, applique_rate, on_target_pct, after_target_pct,
			pcs_per_round, target_amount, off_amount, bonus_rate, allowance,
			stitch_formula_enabled, stitch_formula_rules, effective_date, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING` + productionConfigColumns

	created, err := scanProductionConfig(q.QueryRow(ctx, query,
		newID(), cfg.BusinessID, cfg.StitchRate, cfg.AppliqueRate, cfg.OnTargetPct, cfg.AfterTargetPct,
		cfg.PcsPerRound, cfg.TargetAmount, cfg.OffAmount, cfg.BonusRate, cfg.Allowance,
		cfg.StitchFormulaEnabled, rules, cfg.EffectiveDate,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_production_configs_business_effective") {
			return productionconfig.Config{}, productionconfig.ErrEffectiveDateExists
		}
		return productionconfig.Config{}, fmt.Errorf("failed to create production config: %w", err)
	}
	return created, nil
}

func (r *productionConfigRepository) Update(ctx context.Context, cfg productionconfig.Config) (productionconfig.Config, error) {
	q := GetQuerier(ctx, r.db)

	rules, err := encodeRules(cfg.StitchFormulaRules)
	if err != nil {
		return productionconfig.Config{}, fmt.Errorf("failed to encode stitch formula rules: %w", err)
	}

	query := `
		UPDATE production_configs SET
			stitch_rate = $3, applique_rate = $4, on_target_pct = $5, after_target_pct = $6,
			pcs_per_round = $7, target_amount = $8, off_amount = $9, bonus_rate = $10, allowance = $11,
			stitch_formula_enabled = $12, stitch_formula_rules = $13, effective_date = $14,
			updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING` + productionConfigColumns

	updated, err := scanProductionConfig(q.QueryRow(ctx, query,
		cfg.ID, cfg.BusinessID, cfg.StitchRate, cfg.AppliqueRate, cfg.OnTargetPct, cfg.AfterTargetPct,
		cfg.PcsPerRound, cfg.TargetAmount, cfg.OffAmount, cfg.BonusRate, cfg.Allowance,
		cfg.StitchFormulaEnabled, rules, cfg.EffectiveDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return productionconfig.Config{}, productionconfig.ErrConfigNotFound
		}
		if isUniqueViolation(err, "uk_production_configs_business_effective") {
			return productionconfig.Config{}, productionconfig.ErrEffectiveDateExists
		}
		return productionconfig.Config{}, fmt.Errorf("failed to update production config: %w", err)
	}
	return updated, nil
}

func (r *productionConfigRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM production_configs WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete production config: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return productionconfig.ErrConfigNotFound
	}
	return nil
}

func (r *productionConfigRepository) GetByID(ctx context.Context, id string, businessID string) (productionconfig.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + productionConfigColumns + ` FROM production_configs WHERE id = $1 AND business_id = $2`
	cfg, err := scanProductionConfig(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return productionconfig.Config{}, productionconfig.ErrConfigNotFound
		}
		return productionconfig.Config{}, fmt.Errorf("failed to get production config: %w", err)
	}
	return cfg, nil
}

func (r *productionConfigRepository) List(ctx context.Context, businessID string) ([]productionconfig.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + productionConfigColumns + `
		FROM production_configs
		WHERE business_id = $1
		ORDER BY effective_date DESC, created_at DESC`

	rows, err := q.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list production configs: %w", err)
	}
	defer rows.Close()

	var configs []productionconfig.Config
	for rows.Next() {
		cfg, err := scanProductionConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan production config: %w", err)
		}
		configs = append(configs, cfg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return configs, nil
}

func (r *productionConfigRepository) FindEffective(ctx context.Context, businessID string, date time.Time) (productionconfig.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + productionConfigColumns + `
		FROM production_configs
		WHERE business_id = $1 AND effective_date <= $2
		ORDER BY effective_date DESC, created_at DESC
		LIMIT 1`

	cfg, err := scanProductionConfig(q.QueryRow(ctx, query, businessID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return productionconfig.Config{}, productionconfig.ErrConfigNotFound
		}
		return productionconfig.Config{}, fmt.Errorf("failed to find effective production config: %w", err)
	}
	return cfg, nil
}

func (r *productionConfigRepository) FindEarliest(ctx context.Context, businessID string) (productionconfig.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + productionConfigColumns + `
		FROM production_configs
		WHERE business_id = $1
		ORDER BY effective_date ASC, created_at ASC
		LIMIT 1`

	cfg, err := scanProductionConfig(q.QueryRow(ctx, query, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return productionconfig.Config{}, productionconfig.ErrConfigNotFound
		}
		return productionconfig.Config{}, fmt.Errorf("failed to find earliest production config: %w", err)
	}
	return cfg, nil
}
