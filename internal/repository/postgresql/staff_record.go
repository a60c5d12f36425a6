package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/staffrecord"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type staffRecordRepository struct {
	db *database.DB
}

func NewStaffRecordRepository(db *database.DB) staffrecord.RecordRepository {
	return &staffRecordRepository{db: db}
}

const staffRecordColumns = `
	id, business_id, staff_id, staff_name, date, attendance, production, totals,
	base_amount, bonus_qty, bonus_rate, bonus_amount, fix_amount, final_amount,
	config_snapshot, created_at, updated_at`

func scanStaffRecord(row pgx.Row) (staffrecord.StaffRecord, error) {
	var r staffrecord.StaffRecord
	var production, totals, snapshot []byte
	err := row.Scan(
		&r.ID, &r.BusinessID, &r.StaffID, &r.StaffName, &r.Date, &r.Attendance, &production, &totals,
		&r.BaseAmount, &r.BonusQty, &r.BonusRate, &r.BonusAmount, &r.FixAmount, &r.FinalAmount,
		&snapshot, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return staffrecord.StaffRecord{}, err
	}
	if len(production) > 0 {
		if err := json.Unmarshal(production, &r.Production); err != nil {
			return staffrecord.StaffRecord{}, fmt.Errorf("failed to decode production rows: %w", err)
		}
	}
	if len(totals) > 0 && string(totals) != "null" {
		if err := json.Unmarshal(totals, &r.Totals); err != nil {
			return staffrecord.StaffRecord{}, fmt.Errorf("failed to decode production totals: %w", err)
		}
	}
	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &r.ConfigSnapshot); err != nil {
			return staffrecord.StaffRecord{}, fmt.Errorf("failed to decode config snapshot: %w", err)
		}
	}
	return r, nil
}

type encodedRecord struct {
	production, totals, snapshot []byte
}

func encodeStaffRecord(r staffrecord.StaffRecord) (encodedRecord, error) {
	var (
		enc encodedRecord
		err error
	)
	rows := r.Production
	if rows == nil {
		rows = []staffrecord.ProductionRow{}
	}
	if enc.production, err = json.Marshal(rows); err != nil {
		return enc, fmt.Errorf("failed to encode production rows: %w", err)
	}
	if r.Totals != nil {
		if enc.totals, err = json.Marshal(r.Totals); err != nil {
			return enc, fmt.Errorf("failed to encode production totals: %w", err)
		}
	}
	if enc.snapshot, err = json.Marshal(r.ConfigSnapshot); err != nil {
		return enc, fmt.Errorf("failed to encode config snapshot: %w", err)
	}
	return enc, nil
}

func (r *staffRecordRepository) Create(ctx context.Context, rec staffrecord.StaffRecord) (staffrecord.StaffRecord, error) {
	q := GetQuerier(ctx, r.db)

	enc, err := encodeStaffRecord(rec)
	if err != nil {
		return staffrecord.StaffRecord{}, err
	}

	query := `
		INSERT INTO staff_records (
			id, business_id, staff_id, staff_name, date, month, attendance, production, totals,
			base_amount, bonus_qty, bonus_rate, bonus_amount, fix_amount, final_amount,
			config_snapshot, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING` + staffRecordColumns

	created, err := scanStaffRecord(q.QueryRow(ctx, query,
		newID(), rec.BusinessID, rec.StaffID, rec.StaffName, rec.Date, rec.Month(), rec.Attendance, enc.production, enc.totals,
		rec.BaseAmount, rec.BonusQty, rec.BonusRate, rec.BonusAmount, rec.FixAmount, rec.FinalAmount,
		enc.snapshot,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_staff_records_staff_date") {
			return staffrecord.StaffRecord{}, staffrecord.ErrRecordAlreadyExists
		}
		return staffrecord.StaffRecord{}, fmt.Errorf("failed to create staff record: %w", err)
	}
	return created, nil
}

func (r *staffRecordRepository) Update(ctx context.Context, rec staffrecord.StaffRecord) (staffrecord.StaffRecord, error) {
	q := GetQuerier(ctx, r.db)

	enc, err := encodeStaffRecord(rec)
	if err != nil {
		return staffrecord.StaffRecord{}, err
	}

	query := `
		UPDATE staff_records SET
			staff_name = $3, attendance = $4, production = $5, totals = $6,
			base_amount = $7, bonus_qty = $8, bonus_rate = $9, bonus_amount = $10,
			fix_amount = $11, final_amount = $12, config_snapshot = $13, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING` + staffRecordColumns

	updated, err := scanStaffRecord(q.QueryRow(ctx, query,
		rec.ID, rec.BusinessID, rec.StaffName, rec.Attendance, enc.production, enc.totals,
		rec.BaseAmount, rec.BonusQty, rec.BonusRate, rec.BonusAmount,
		rec.FixAmount, rec.FinalAmount, enc.snapshot,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staffrecord.StaffRecord{}, staffrecord.ErrRecordNotFound
		}
		return staffrecord.StaffRecord{}, fmt.Errorf("failed to update staff record: %w", err)
	}
	return updated, nil
}

func (r *staffRecordRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM staff_records WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete staff record: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return staffrecord.ErrRecordNotFound
	}
	return nil
}

func (r *staffRecordRepository) GetByID(ctx context.Context, id string, businessID string) (staffrecord.StaffRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + staffRecordColumns + ` FROM staff_records WHERE id = $1 AND business_id = $2`
	rec, err := scanStaffRecord(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staffrecord.StaffRecord{}, staffrecord.ErrRecordNotFound
		}
		return staffrecord.StaffRecord{}, fmt.Errorf("failed to get staff record: %w", err)
	}
	return rec, nil
}

// recordWhere builds the shared WHERE clause for listing and aggregation.
func recordWhere(businessID string, filter staffrecord.RecordFilter) (string, []interface{}, int) {
	where := ` FROM staff_records WHERE business_id = $1`
	args := []interface{}{businessID}
	argIdx := 2

	if filter.StaffID != "" {
		where += fmt.Sprintf(" AND staff_id = $%d", argIdx)
		args = append(args, filter.StaffID)
		argIdx++
	}
	if filter.Month != "" {
		where += fmt.Sprintf(" AND month = $%d", argIdx)
		args = append(args, filter.Month)
		argIdx++
	}
	if filter.DateFrom != "" {
		where += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != "" {
		where += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, filter.DateTo)
		argIdx++
	}
	if filter.Attendance != "" {
		where += fmt.Sprintf(" AND attendance = $%d", argIdx)
		args = append(args, filter.Attendance)
		argIdx++
	}
	return where, args, argIdx
}

func (r *staffRecordRepository) List(ctx context.Context, businessID string, filter staffrecord.RecordFilter) ([]staffrecord.StaffRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery, args, argIdx := recordWhere(businessID, filter)

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count staff records: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d`, staffRecordColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list staff records: %w", err)
	}
	defer rows.Close()

	var records []staffrecord.StaffRecord
	for rows.Next() {
		rec, err := scanStaffRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan staff record: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return records, total, nil
}

func (r *staffRecordRepository) GetLastByStaff(ctx context.Context, staffID string, businessID string) (staffrecord.StaffRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + staffRecordColumns + `
		FROM staff_records
		WHERE staff_id = $1 AND business_id = $2
		ORDER BY date DESC, created_at DESC
		LIMIT 1`

	rec, err := scanStaffRecord(q.QueryRow(ctx, query, staffID, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staffrecord.StaffRecord{}, staffrecord.ErrRecordNotFound
		}
		return staffrecord.StaffRecord{}, fmt.Errorf("failed to get last staff record: %w", err)
	}
	return rec, nil
}

func (r *staffRecordRepository) Stats(ctx context.Context, businessID string, filter staffrecord.RecordFilter) (staffrecord.Stats, error) {
	q := GetQuerier(ctx, r.db)

	where, args, _ := recordWhere(businessID, filter)

	stats := staffrecord.Stats{AttendanceCounts: map[staffrecord.Attendance]int64{}}
	totalsQuery := `
		SELECT COUNT(*),
			COALESCE(SUM(final_amount), 0),
			COALESCE(SUM(bonus_amount), 0),
			COALESCE(SUM(base_amount), 0)` + where
	if err := q.QueryRow(ctx, totalsQuery, args...).Scan(
		&stats.Count, &stats.TotalFinalAmount, &stats.TotalBonusAmount, &stats.TotalBaseAmount,
	); err != nil {
		return staffrecord.Stats{}, fmt.Errorf("failed to aggregate staff records: %w", err)
	}

	rows, err := q.Query(ctx, `SELECT attendance, COUNT(*)`+where+` GROUP BY attendance`, args...)
	if err != nil {
		return staffrecord.Stats{}, fmt.Errorf("failed to count attendance: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			attendance staffrecord.Attendance
			count      int64
		)
		if err := rows.Scan(&attendance, &count); err != nil {
			return staffrecord.Stats{}, fmt.Errorf("failed to scan attendance count: %w", err)
		}
		stats.AttendanceCounts[attendance] = count
	}
	if err = rows.Err(); err != nil {
		return staffrecord.Stats{}, fmt.Errorf("rows iteration error: %w", err)
	}
	return stats, nil
}

func (r *staffRecordRepository) Months(ctx context.Context, businessID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT month FROM staff_records WHERE business_id = $1 ORDER BY month DESC`, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff record months: %w", err)
	}
	defer rows.Close()

	months, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan staff record months: %w", err)
	}
	return months, nil
}
