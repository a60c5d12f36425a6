package staffrecord

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/staffrecord"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s %v", want, got, msg)
}

func testConfig() productionconfig.Config {
	return productionconfig.Config{
		ID:             "cfg-1",
		StitchRate:     d("2"),
		AppliqueRate:   d("10"),
		OnTargetPct:    d("0.3"),
		AfterTargetPct: d("0.4"),
		TargetAmount:   d("1000"),
		OffAmount:      d("300"),
		Allowance:      d("1500"),
		EffectiveDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func row(ds, applique, pieces, rounds string) staffrecord.ProductionRow {
	return staffrecord.ProductionRow{DesignStitch: d(ds), Applique: d(applique), PieceCount: d(pieces), RoundCount: d(rounds)}
}

func TestCapDesignStitch(t *testing.T) {
	cases := []struct{ in, want string }{
		{"0", "0"},
		{"-10", "-10"},
		{"1", "5000"},
		{"4000", "5000"},
		{"5000", "5000"},
		{"5001", "5001"},
	}
	for _, c := range cases {
		assertDec(t, c.want, CapDesignStitch(d(c.in)), c.in)
	}
}

func TestCalcRow(t *testing.T) {
	got := CalcRow(row("4000", "2", "100", "3"), testConfig())

	assertDec(t, "12000", got.TotalStitch, "total stitch uses the raw design stitch")
	assertDec(t, "3006", got.OnTargetAmount)
	assertDec(t, "4008", got.AfterTargetAmount)
}

func TestCalcRow_IgnoresClientDerivedFields(t *testing.T) {
	in := row("6000", "0", "10", "1")
	in.OnTargetAmount = d("999999")
	in.TotalStitch = d("1")

	got := CalcRow(in, testConfig())
	assertDec(t, "6000", got.TotalStitch)
	assertDec(t, "360", got.OnTargetAmount)
}

func TestSumRows(t *testing.T) {
	assert.Nil(t, SumRows(nil))

	totals := SumRows([]staffrecord.ProductionRow{
		{PieceCount: d("10"), RoundCount: d("1"), TotalStitch: d("100"), OnTargetAmount: d("1.5"), AfterTargetAmount: d("2")},
		{PieceCount: d("5"), RoundCount: d("2"), TotalStitch: d("50"), OnTargetAmount: d("0.5"), AfterTargetAmount: d("1")},
	})
	require.NotNil(t, totals)
	assertDec(t, "15", totals.PieceCount)
	assertDec(t, "3", totals.RoundCount)
	assertDec(t, "150", totals.TotalStitch)
	assertDec(t, "2", totals.OnTargetAmount)
	assertDec(t, "3", totals.AfterTargetAmount)
}

func TestResolveBaseAmount(t *testing.T) {
	cfg := testConfig()
	below := &staffrecord.Totals{OnTargetAmount: d("800"), AfterTargetAmount: d("1100")}
	above := &staffrecord.Totals{OnTargetAmount: d("1200"), AfterTargetAmount: d("1600")}
	salary := dp("30000")
	zero := dp("0")

	cases := []struct {
		name       string
		attendance staffrecord.Attendance
		salary     *decimal.Decimal
		totals     *staffrecord.Totals
		wantAtt    staffrecord.Attendance
		wantBase   string
	}{
		{"absent salaried", staffrecord.AttendanceAbsent, salary, above, staffrecord.AttendanceAbsent, "0"},
		{"close piece rate", staffrecord.AttendanceClose, nil, above, staffrecord.AttendanceClose, "0"},
		{"sunday salaried", staffrecord.AttendanceSunday, salary, nil, staffrecord.AttendanceSunday, "1000"},
		{"sunday piece rate", staffrecord.AttendanceSunday, nil, nil, staffrecord.AttendanceSunday, "0"},
		{"off salaried", staffrecord.AttendanceOff, salary, nil, staffrecord.AttendanceOff, "1000"},
		{"off piece rate", staffrecord.AttendanceOff, nil, nil, staffrecord.AttendanceOff, "300"},
		{"half salaried", staffrecord.AttendanceHalf, salary, above, staffrecord.AttendanceHalf, "500"},
		{"half below target", staffrecord.AttendanceHalf, nil, below, staffrecord.AttendanceHalf, "800"},
		{"half reaches target", staffrecord.AttendanceHalf, nil, above, staffrecord.AttendanceDay, "1600"},
		{"day salaried", staffrecord.AttendanceDay, salary, below, staffrecord.AttendanceDay, "1000"},
		{"day below target", staffrecord.AttendanceDay, nil, below, staffrecord.AttendanceDay, "800"},
		{"day above target", staffrecord.AttendanceDay, nil, above, staffrecord.AttendanceDay, "1600"},
		{"night above target", staffrecord.AttendanceNight, nil, above, staffrecord.AttendanceNight, "1600"},
		{"zero salary is piece rate", staffrecord.AttendanceOff, zero, nil, staffrecord.AttendanceOff, "300"},
		{"day without production", staffrecord.AttendanceDay, nil, nil, staffrecord.AttendanceDay, "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			att, base := ResolveBaseAmount(c.attendance, c.salary, c.totals, cfg)
			assert.Equal(t, c.wantAtt, att)
			assertDec(t, c.wantBase, base)
		})
	}
}

func TestResolveBaseAmount_TargetBoundary(t *testing.T) {
	cfg := testConfig()
	exact := &staffrecord.Totals{OnTargetAmount: d("1000"), AfterTargetAmount: d("1300")}

	att, base := ResolveBaseAmount(staffrecord.AttendanceHalf, nil, exact, cfg)
	assert.Equal(t, staffrecord.AttendanceDay, att, "meeting the target exactly counts as reaching it")
	assertDec(t, "1300", base)
}

func TestResolveBaseAmount_OnlyHalfIsRewritten(t *testing.T) {
	cfg := testConfig()
	above := &staffrecord.Totals{OnTargetAmount: d("5000"), AfterTargetAmount: d("6000")}
	for _, a := range []staffrecord.Attendance{
		staffrecord.AttendanceDay, staffrecord.AttendanceNight, staffrecord.AttendanceAbsent,
		staffrecord.AttendanceOff, staffrecord.AttendanceClose, staffrecord.AttendanceSunday,
	} {
		got, _ := ResolveBaseAmount(a, nil, above, cfg)
		assert.Equal(t, a, got)
	}
}

func TestDailySalary_SumsBackToSalary(t *testing.T) {
	salary := d("1000")
	assert.True(t, salary.Div(d("30")).Equal(DailySalary(salary)))
	assert.True(t, salary.Div(d("60")).Equal(HalfDailySalary(salary)))

	month := decimal.Zero
	for i := 0; i < 30; i++ {
		_, base := ResolveBaseAmount(staffrecord.AttendanceDay, &salary, nil, testConfig())
		month = month.Add(base)
	}
	assert.Equal(t, "1000.00", month.StringFixed(2))
}

func TestBuild_Day(t *testing.T) {
	cfg := testConfig()
	rec := Build(BuildInput{
		StaffID:    "staff-1",
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Attendance: staffrecord.AttendanceDay,
		Production: []staffrecord.ProductionRow{row("4000", "2", "100", "3")},
		BonusQty:   d("2"),
	}, cfg)

	assert.Equal(t, staffrecord.AttendanceDay, rec.Attendance)
	require.Len(t, rec.Production, 1)
	require.NotNil(t, rec.Totals)
	assertDec(t, "4008", rec.BaseAmount)
	assertDec(t, "200", rec.BonusRate, "falls back to the default bonus rate")
	assertDec(t, "400", rec.BonusAmount)
	assertDec(t, "4408", rec.FinalAmount)
	assert.Nil(t, rec.FixAmount)
	assert.Equal(t, "cfg-1", rec.ConfigSnapshot.ConfigID)
}

func TestBuild_BonusRatePrecedence(t *testing.T) {
	cfg := testConfig()
	cfg.BonusRate = dp("250")
	in := BuildInput{Attendance: staffrecord.AttendanceDay, BonusQty: d("2")}

	assertDec(t, "500", Build(in, cfg).BonusAmount, "config rate")

	in.BonusRate = dp("150")
	assertDec(t, "300", Build(in, cfg).BonusAmount, "request override")
}

func TestBuild_NonProductionStatesDropRowsAndBonus(t *testing.T) {
	cfg := testConfig()
	for _, a := range []staffrecord.Attendance{
		staffrecord.AttendanceAbsent, staffrecord.AttendanceOff,
		staffrecord.AttendanceClose, staffrecord.AttendanceSunday,
	} {
		t.Run(string(a), func(t *testing.T) {
			rec := Build(BuildInput{
				Attendance: a,
				Production: []staffrecord.ProductionRow{row("8000", "1", "50", "2")},
				BonusQty:   d("5"),
			}, cfg)

			assert.Empty(t, rec.Production)
			assert.Nil(t, rec.Totals)
			assertDec(t, "0", rec.BonusAmount)
		})
	}
}

func TestBuild_HalfUpgradeEarnsBonus(t *testing.T) {
	cfg := testConfig()
	rec := Build(BuildInput{
		Attendance: staffrecord.AttendanceHalf,
		Production: []staffrecord.ProductionRow{row("4000", "2", "100", "3")},
		BonusQty:   d("1"),
	}, cfg)

	assert.Equal(t, staffrecord.AttendanceDay, rec.Attendance)
	assertDec(t, "4008", rec.BaseAmount)
	assertDec(t, "4208", rec.FinalAmount)
}

func TestBuild_FixAmountOverrides(t *testing.T) {
	cfg := testConfig()
	cases := []struct {
		name string
		in   BuildInput
	}{
		{"day with production", BuildInput{Attendance: staffrecord.AttendanceDay, Production: []staffrecord.ProductionRow{row("4000", "2", "100", "3")}, BonusQty: d("3")}},
		{"off piece rate", BuildInput{Attendance: staffrecord.AttendanceOff}},
		{"salaried sunday", BuildInput{Attendance: staffrecord.AttendanceSunday, Salary: dp("30000")}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.in.FixAmount = dp("0")
			rec := Build(c.in, cfg)
			assertDec(t, "0", rec.FinalAmount)
			require.NotNil(t, rec.FixAmount)

			c.in.FixAmount = dp("725.5")
			assertDec(t, "725.5", Build(c.in, cfg).FinalAmount)
		})
	}
}

func TestBuild_SnapshotSurvivesConfigEdits(t *testing.T) {
	cfg := testConfig()
	rec := Build(BuildInput{Attendance: staffrecord.AttendanceDay}, cfg)

	cfg.StitchRate = d("99")
	cfg.TargetAmount = d("1")
	assertDec(t, "2", rec.ConfigSnapshot.StitchRate)
	assertDec(t, "1000", rec.ConfigSnapshot.TargetAmount)
}
