package staffrecord

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ProductionRowInput carries only the raw inputs of a row; derived amounts
// sent by a client are never read.
type ProductionRowInput struct {
	DesignStitch decimal.Decimal `json:"design_stitch"`
	Applique     decimal.Decimal `json:"applique"`
	PieceCount   decimal.Decimal `json:"piece_count"`
	RoundCount   decimal.Decimal `json:"round_count"`
}

func (in ProductionRowInput) Row() ProductionRow {
	return ProductionRow{
		DesignStitch: in.DesignStitch,
		Applique:     in.Applique,
		PieceCount:   in.PieceCount,
		RoundCount:   in.RoundCount,
	}
}

type CreateRecordRequest struct {
	StaffID    string               `json:"staff_id" validate:"required,uuid7"`
	Date       string               `json:"date" validate:"required,date"`
	Attendance string               `json:"attendance" validate:"required"`
	Production []ProductionRowInput `json:"production"`
	BonusQty   decimal.Decimal      `json:"bonus_qty"`
	BonusRate  *decimal.Decimal     `json:"bonus_rate,omitempty"`
	FixAmount  *decimal.Decimal     `json:"fix_amount,omitempty"`
}

func (r *CreateRecordRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, ve...)
	}
	validateInputs(&errs, r.Attendance, r.Production, r.BonusQty, r.BonusRate, r.FixAmount)
	return errs.Err()
}

// UpdateRecordRequest replaces the mutable inputs of a record. StaffID and
// Date may be echoed back but must not differ from the stored record.
type UpdateRecordRequest struct {
	ID         string               `json:"-"`
	StaffID    string               `json:"staff_id,omitempty" validate:"omitempty,uuid7"`
	Date       string               `json:"date,omitempty" validate:"omitempty,date"`
	Attendance string               `json:"attendance" validate:"required"`
	Production []ProductionRowInput `json:"production"`
	BonusQty   decimal.Decimal      `json:"bonus_qty"`
	BonusRate  *decimal.Decimal     `json:"bonus_rate,omitempty"`
	FixAmount  *decimal.Decimal     `json:"fix_amount,omitempty"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "is required")
	}
	if err := validator.Struct(r); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, ve...)
	}
	validateInputs(&errs, r.Attendance, r.Production, r.BonusQty, r.BonusRate, r.FixAmount)
	return errs.Err()
}

// CheckImmutable rejects attempts to move a record to another staff member
// or date.
func (r *UpdateRecordRequest) CheckImmutable(existing StaffRecord) error {
	var errs validator.ValidationErrors
	if r.StaffID != "" && r.StaffID != existing.StaffID {
		errs.Add("staff_id", "cannot be changed")
	}
	if r.Date != "" && r.Date != existing.Date.Format(validator.DateLayout) {
		errs.Add("date", "cannot be changed")
	}
	return errs.Err()
}

func validateInputs(errs *validator.ValidationErrors, attendance string, rows []ProductionRowInput, bonusQty decimal.Decimal, bonusRate, fixAmount *decimal.Decimal) {
	if attendance != "" {
		if _, ok := ParseAttendance(attendance); !ok {
			errs.Add("attendance", ErrInvalidAttendance.Error())
		}
	}
	for i, row := range rows {
		fields := []struct {
			name  string
			value decimal.Decimal
		}{
			{"design_stitch", row.DesignStitch},
			{"applique", row.Applique},
			{"piece_count", row.PieceCount},
			{"round_count", row.RoundCount},
		}
		for _, f := range fields {
			if f.value.IsNegative() {
				errs.Add(fmt.Sprintf("production[%d].%s", i, f.name), "must be non-negative")
			}
		}
	}
	if bonusQty.IsNegative() {
		errs.Add("bonus_qty", "must be non-negative")
	}
	if bonusRate != nil && bonusRate.IsNegative() {
		errs.Add("bonus_rate", "must be non-negative")
	}
	if fixAmount != nil && fixAmount.IsNegative() {
		errs.Add("fix_amount", "must be non-negative")
	}
}

type RecordFilter struct {
	StaffID    string
	Month      string
	DateFrom   string
	DateTo     string
	Attendance string
	Page       int
	Limit      int
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Month != "" && !validator.IsValidMonth(f.Month) {
		errs.Add("month", "must be in YYYY-MM format")
	}
	errs.AddID("staff_id", f.StaffID)
	errs.AddDate("date_from", f.DateFrom)
	errs.AddDate("date_to", f.DateTo)
	if f.Attendance != "" {
		if a, ok := ParseAttendance(f.Attendance); ok {
			f.Attendance = string(a)
		} else {
			errs.Add("attendance", ErrInvalidAttendance.Error())
		}
	}
	return errs.Err()
}

type RecordResponse struct {
	ID             string                    `json:"id,omitempty"`
	StaffID        string                    `json:"staff_id"`
	StaffName      string                    `json:"staff_name,omitempty"`
	Date           string                    `json:"date"`
	Month          string                    `json:"month"`
	Attendance     Attendance                `json:"attendance"`
	Production     []ProductionRow           `json:"production"`
	Totals         *Totals                   `json:"totals"`
	BaseAmount     decimal.Decimal           `json:"base_amount"`
	BonusQty       decimal.Decimal           `json:"bonus_qty"`
	BonusRate      decimal.Decimal           `json:"bonus_rate"`
	BonusAmount    decimal.Decimal           `json:"bonus_amount"`
	FixAmount      *decimal.Decimal          `json:"fix_amount"`
	FinalAmount    decimal.Decimal           `json:"final_amount"`
	ConfigSnapshot productionconfig.Snapshot `json:"config_snapshot"`
	CreatedAt      *time.Time                `json:"created_at,omitempty"`
	UpdatedAt      *time.Time                `json:"updated_at,omitempty"`
}

func ToResponse(r StaffRecord) RecordResponse {
	production := r.Production
	if production == nil {
		production = []ProductionRow{}
	}
	resp := RecordResponse{
		ID:             r.ID,
		StaffID:        r.StaffID,
		StaffName:      r.StaffName,
		Date:           r.Date.Format(validator.DateLayout),
		Month:          r.Month(),
		Attendance:     r.Attendance,
		Production:     production,
		Totals:         r.Totals,
		BaseAmount:     r.BaseAmount,
		BonusQty:       r.BonusQty,
		BonusRate:      r.BonusRate,
		BonusAmount:    r.BonusAmount,
		FixAmount:      r.FixAmount,
		FinalAmount:    r.FinalAmount,
		ConfigSnapshot: r.ConfigSnapshot,
	}
	if !r.CreatedAt.IsZero() {
		created, updated := r.CreatedAt, r.UpdatedAt
		resp.CreatedAt, resp.UpdatedAt = &created, &updated
	}
	return resp
}

type ListRecordResponse struct {
	Records    []RecordResponse `json:"records"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

type StatsResponse struct {
	Count            int64            `json:"count"`
	TotalFinalAmount decimal.Decimal  `json:"total_final_amount"`
	TotalBonusAmount decimal.Decimal  `json:"total_bonus_amount"`
	TotalBaseAmount  decimal.Decimal  `json:"total_base_amount"`
	Attendance       map[string]int64 `json:"attendance"`
}
