package staffrecord

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	fields := make([]string, 0, len(ve))
	for _, e := range ve {
		fields = append(fields, e.Field)
	}
	return fields
}

func mustDate(s string) time.Time {
	d, err := time.Parse(validator.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreateRecordRequest_ErrorsKeepFieldOrder(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	req := CreateRecordRequest{
		StaffID:    "0190f3a2-7b1c-7d3e-8f4a-00000000a001",
		Date:       "2024-03-05",
		Attendance: "Day",
		Production: []ProductionRowInput{
			{DesignStitch: neg, Applique: neg, PieceCount: neg, RoundCount: neg},
			{PieceCount: neg},
		},
		BonusQty:  neg,
		BonusRate: &neg,
		FixAmount: &neg,
	}

	want := []string{
		"production[0].design_stitch",
		"production[0].applique",
		"production[0].piece_count",
		"production[0].round_count",
		"production[1].piece_count",
		"bonus_qty",
		"bonus_rate",
		"fix_amount",
	}
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, fieldsOf(t, req.Validate()))
	}
}

func TestUpdateRecordRequest_Validate(t *testing.T) {
	neg := decimal.NewFromInt(-2)
	req := UpdateRecordRequest{
		StaffID:    "staff-1",
		Attendance: "Sometimes",
		Production: []ProductionRowInput{{RoundCount: neg}},
	}

	fields := fieldsOf(t, req.Validate())
	assert.Equal(t, []string{"id", "staff_id", "attendance", "production[0].round_count"}, fields)
}

func TestUpdateRecordRequest_CheckImmutable(t *testing.T) {
	existing := StaffRecord{StaffID: "0190f3a2-7b1c-7d3e-8f4a-00000000a001"}
	existing.Date = mustDate("2024-03-05")

	same := UpdateRecordRequest{StaffID: existing.StaffID, Date: "2024-03-05"}
	assert.NoError(t, same.CheckImmutable(existing))

	moved := UpdateRecordRequest{StaffID: "0190f3a2-7b1c-7d3e-8f4a-00000000a002", Date: "2024-03-06"}
	assert.Equal(t, []string{"staff_id", "date"}, fieldsOf(t, moved.CheckImmutable(existing)))
}
