package staffrecord

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/shopspring/decimal"
)

type Attendance string

const (
	AttendanceDay    Attendance = "Day"
	AttendanceNight  Attendance = "Night"
	AttendanceHalf   Attendance = "Half"
	AttendanceAbsent Attendance = "Absent"
	AttendanceOff    Attendance = "Off"
	AttendanceClose  Attendance = "Close"
	AttendanceSunday Attendance = "Sunday"
)

var attendances = []Attendance{
	AttendanceDay, AttendanceNight, AttendanceHalf, AttendanceAbsent,
	AttendanceOff, AttendanceClose, AttendanceSunday,
}

// ParseAttendance accepts any casing of the seven states.
func ParseAttendance(s string) (Attendance, bool) {
	for _, a := range attendances {
		if strings.EqualFold(strings.TrimSpace(s), string(a)) {
			return a, true
		}
	}
	return "", false
}

// AllowsProduction is false for the states that cannot carry production rows.
func (a Attendance) AllowsProduction() bool {
	switch a {
	case AttendanceAbsent, AttendanceOff, AttendanceClose, AttendanceSunday:
		return false
	}
	return true
}

// ProductionRow is one line of a day's work. Only the first four fields are
// inputs; the rest are recomputed on every write.
type ProductionRow struct {
	DesignStitch decimal.Decimal `json:"design_stitch"`
	Applique     decimal.Decimal `json:"applique"`
	PieceCount   decimal.Decimal `json:"piece_count"`
	RoundCount   decimal.Decimal `json:"round_count"`

	TotalStitch       decimal.Decimal `json:"total_stitch"`
	OnTargetAmount    decimal.Decimal `json:"on_target_amount"`
	AfterTargetAmount decimal.Decimal `json:"after_target_amount"`
}

type Totals struct {
	PieceCount        decimal.Decimal `json:"piece_count"`
	RoundCount        decimal.Decimal `json:"round_count"`
	TotalStitch       decimal.Decimal `json:"total_stitch"`
	OnTargetAmount    decimal.Decimal `json:"on_target_amount"`
	AfterTargetAmount decimal.Decimal `json:"after_target_amount"`
}

// StaffRecord is one staff member's pay for one calendar date.
type StaffRecord struct {
	ID          string
	BusinessID  string
	StaffID     string
	StaffName   string
	Date        time.Time
	Attendance  Attendance
	Production  []ProductionRow
	Totals      *Totals
	BaseAmount  decimal.Decimal
	BonusQty    decimal.Decimal
	BonusRate   decimal.Decimal
	BonusAmount decimal.Decimal
	FixAmount   *decimal.Decimal
	FinalAmount decimal.Decimal

	ConfigSnapshot productionconfig.Snapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Month is the YYYY-MM payroll month the record belongs to.
func (r StaffRecord) Month() string {
	return r.Date.Format("2006-01")
}

type Stats struct {
	Count            int64
	TotalFinalAmount decimal.Decimal
	TotalBonusAmount decimal.Decimal
	TotalBaseAmount  decimal.Decimal
	AttendanceCounts map[Attendance]int64
}
