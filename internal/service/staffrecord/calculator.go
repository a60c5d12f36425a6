package staffrecord

import (
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/staffrecord"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	minDesignStitch = decimal.NewFromInt(5000)
	daysPerMonth    = decimal.NewFromInt(30)
	halfDaysPer     = decimal.NewFromInt(60)
)

// CapDesignStitch lifts any positive design stitch count below 5000 up to
// 5000 for pay purposes. Zero and larger counts pass through.
func CapDesignStitch(raw decimal.Decimal) decimal.Decimal {
	if raw.IsPositive() && raw.LessThanOrEqual(minDesignStitch) {
		return minDesignStitch
	}
	return raw
}

// CalcRow recomputes the derived fields of a production row from its inputs.
// The target percentages are multiplied as stored, without a /100.
func CalcRow(row staffrecord.ProductionRow, cfg productionconfig.Config) staffrecord.ProductionRow {
	out := staffrecord.ProductionRow{
		DesignStitch: row.DesignStitch,
		Applique:     row.Applique,
		PieceCount:   row.PieceCount,
		RoundCount:   row.RoundCount,
	}

	out.TotalStitch = row.DesignStitch.Mul(row.RoundCount)

	stitchBase := CapDesignStitch(row.DesignStitch).Mul(cfg.StitchRate).Mul(row.PieceCount).Div(money.Hundred)
	appliqueBase := cfg.AppliqueRate.Mul(row.Applique).Mul(row.PieceCount).Div(money.Hundred)
	combined := stitchBase.Add(appliqueBase)

	out.OnTargetAmount = combined.Mul(cfg.OnTargetPct)
	out.AfterTargetAmount = combined.Mul(cfg.AfterTargetPct)
	return out
}

// SumRows reduces rows field by field. It returns nil for no rows.
func SumRows(rows []staffrecord.ProductionRow) *staffrecord.Totals {
	if len(rows) == 0 {
		return nil
	}
	var t staffrecord.Totals
	for _, r := range rows {
		t.PieceCount = t.PieceCount.Add(r.PieceCount)
		t.RoundCount = t.RoundCount.Add(r.RoundCount)
		t.TotalStitch = t.TotalStitch.Add(r.TotalStitch)
		t.OnTargetAmount = t.OnTargetAmount.Add(r.OnTargetAmount)
		t.AfterTargetAmount = t.AfterTargetAmount.Add(r.AfterTargetAmount)
	}
	return &t
}

// DailySalary is a monthly salary split over 30 days, unrounded so that a
// month of Day records adds back up to the salary.
func DailySalary(salary decimal.Decimal) decimal.Decimal {
	return salary.Div(daysPerMonth)
}

// HalfDailySalary is a monthly salary split over 60 half days.
func HalfDailySalary(salary decimal.Decimal) decimal.Decimal {
	return salary.Div(halfDaysPer)
}

// ResolveBaseAmount maps attendance to the day's base pay. The returned
// attendance differs from the input only when a non-salaried Half day reaches
// the target, which promotes it to Day.
//
// A salary of nil or zero means piece-rate pay; nil totals count as zero.
func ResolveBaseAmount(
	attendance staffrecord.Attendance,
	salary *decimal.Decimal,
	totals *staffrecord.Totals,
	cfg productionconfig.Config,
) (staffrecord.Attendance, decimal.Decimal) {
	salaried := salary != nil && salary.IsPositive()

	var onTarget, afterTarget decimal.Decimal
	if totals != nil {
		onTarget, afterTarget = totals.OnTargetAmount, totals.AfterTargetAmount
	}
	reachedTarget := !onTarget.LessThan(cfg.TargetAmount)

	switch attendance {
	case staffrecord.AttendanceAbsent, staffrecord.AttendanceClose:
		return attendance, decimal.Zero

	case staffrecord.AttendanceSunday:
		if salaried {
			return attendance, DailySalary(*salary)
		}
		return attendance, decimal.Zero

	case staffrecord.AttendanceOff:
		if salaried {
			return attendance, DailySalary(*salary)
		}
		return attendance, cfg.OffAmount

	case staffrecord.AttendanceHalf:
		if salaried {
			return attendance, HalfDailySalary(*salary)
		}
		if reachedTarget {
			return staffrecord.AttendanceDay, afterTarget
		}
		return attendance, onTarget

	default: // Day, Night
		if salaried {
			return attendance, DailySalary(*salary)
		}
		if reachedTarget {
			return attendance, afterTarget
		}
		return attendance, onTarget
	}
}

// BuildInput is everything the engine needs besides the resolved config.
type BuildInput struct {
	StaffID    string
	Date       time.Time
	Attendance staffrecord.Attendance
	Production []staffrecord.ProductionRow
	Salary     *decimal.Decimal
	BonusQty   decimal.Decimal
	BonusRate  *decimal.Decimal
	FixAmount  *decimal.Decimal
}

// Build computes a complete record from raw inputs and the config effective
// on the record's date. It never fails: all validation happens before.
func Build(in BuildInput, cfg productionconfig.Config) staffrecord.StaffRecord {
	rows := []staffrecord.ProductionRow{}
	if in.Attendance.AllowsProduction() {
		for _, r := range in.Production {
			rows = append(rows, CalcRow(r, cfg))
		}
	}
	totals := SumRows(rows)

	attendance, base := ResolveBaseAmount(in.Attendance, in.Salary, totals, cfg)

	bonusRate := cfg.EffectiveBonusRate()
	if in.BonusRate != nil {
		bonusRate = *in.BonusRate
	}
	bonusAmount := decimal.Zero
	if attendance.AllowsProduction() {
		bonusAmount = in.BonusQty.Mul(bonusRate)
	}

	final := base.Add(bonusAmount)
	var fix *decimal.Decimal
	if in.FixAmount != nil {
		v := *in.FixAmount
		fix = &v
		final = v
	}

	return staffrecord.StaffRecord{
		StaffID:        in.StaffID,
		Date:           in.Date,
		Attendance:     attendance,
		Production:     rows,
		Totals:         totals,
		BaseAmount:     base,
		BonusQty:       in.BonusQty,
		BonusRate:      bonusRate,
		BonusAmount:    bonusAmount,
		FixAmount:      fix,
		FinalAmount:    final,
		ConfigSnapshot: cfg.Snapshot(),
	}
}
