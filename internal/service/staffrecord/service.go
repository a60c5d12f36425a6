package staffrecord

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/staff"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/staffrecord"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const module = "staffrecord"

type RecordServiceImpl struct {
	recordRepo staffrecord.RecordRepository
	staffRepo  staff.StaffRepository
	resolver   productionconfig.Resolver
	log        *logrus.Logger
}

func NewRecordService(
	recordRepo staffrecord.RecordRepository,
	staffRepo staff.StaffRepository,
	resolver productionconfig.Resolver,
	log *logrus.Logger,
) staffrecord.RecordService {
	return &RecordServiceImpl{
		recordRepo: recordRepo,
		staffRepo:  staffRepo,
		resolver:   resolver,
		log:        log,
	}
}

// eligibleStaff loads the staff member and applies the engine's preconditions.
func (s *RecordServiceImpl) eligibleStaff(ctx context.Context, staffID, businessID string, requireActive bool) (staff.Staff, error) {
	member, err := s.staffRepo.GetByID(ctx, staffID, businessID)
	if err != nil {
		return staff.Staff{}, err
	}
	if requireActive && !member.IsActive {
		return staff.Staff{}, staff.ErrStaffInactive
	}
	if !member.ProducesEmbroidery() {
		return staff.Staff{}, staff.ErrStaffIneligible
	}
	return member, nil
}

// compute resolves the config for date and runs the engine.
func (s *RecordServiceImpl) compute(ctx context.Context, member staff.Staff, date time.Time, attendance staffrecord.Attendance, rows []staffrecord.ProductionRowInput, bonusQty decimal.Decimal, bonusRate, fixAmount *decimal.Decimal) (staffrecord.StaffRecord, error) {
	cfg, err := s.resolver.ResolveForDate(ctx, member.BusinessID, date)
	if err != nil {
		return staffrecord.StaffRecord{}, err
	}

	production := make([]staffrecord.ProductionRow, 0, len(rows))
	for _, r := range rows {
		production = append(production, r.Row())
	}

	record := Build(BuildInput{
		StaffID:    member.ID,
		Date:       date,
		Attendance: attendance,
		Production: production,
		Salary:     member.Salary,
		BonusQty:   bonusQty,
		BonusRate:  bonusRate,
		FixAmount:  fixAmount,
	}, cfg)
	record.BusinessID = member.BusinessID
	record.StaffName = member.Name
	return record, nil
}

func (s *RecordServiceImpl) build(ctx context.Context, req staffrecord.CreateRecordRequest) (staffrecord.StaffRecord, error) {
	if err := req.Validate(); err != nil {
		return staffrecord.StaffRecord{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return staffrecord.StaffRecord{}, err
	}

	member, err := s.eligibleStaff(ctx, req.StaffID, principal.BusinessID, true)
	if err != nil {
		return staffrecord.StaffRecord{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	attendance, _ := staffrecord.ParseAttendance(req.Attendance)
	return s.compute(ctx, member, date, attendance, req.Production, req.BonusQty, req.BonusRate, req.FixAmount)
}

func (s *RecordServiceImpl) Create(ctx context.Context, req staffrecord.CreateRecordRequest) (staffrecord.RecordResponse, error) {
	record, err := s.build(ctx, req)
	if err != nil {
		return staffrecord.RecordResponse{}, err
	}

	created, err := s.recordRepo.Create(ctx, record)
	if err != nil {
		if !errors.Is(err, staffrecord.ErrRecordAlreadyExists) {
			logger.LogError(s.log, module, "Create", "insert record", map[string]string{"staff_id": req.StaffID, "date": req.Date}, err)
		}
		return staffrecord.RecordResponse{}, err
	}
	created.StaffName = record.StaffName
	return staffrecord.ToResponse(created), nil
}

func (s *RecordServiceImpl) Preview(ctx context.Context, req staffrecord.CreateRecordRequest) (staffrecord.RecordResponse, error) {
	record, err := s.build(ctx, req)
	if err != nil {
		return staffrecord.RecordResponse{}, err
	}
	return staffrecord.ToResponse(record), nil
}

// Update recomputes with the config effective on the record's own date.
func (s *RecordServiceImpl) Update(ctx context.Context, req staffrecord.UpdateRecordRequest) (staffrecord.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return staffrecord.RecordResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return staffrecord.RecordResponse{}, err
	}

	existing, err := s.recordRepo.GetByID(ctx, req.ID, principal.BusinessID)
	if err != nil {
		return staffrecord.RecordResponse{}, err
	}
	if err := req.CheckImmutable(existing); err != nil {
		return staffrecord.RecordResponse{}, err
	}

	member, err := s.eligibleStaff(ctx, existing.StaffID, principal.BusinessID, false)
	if err != nil {
		return staffrecord.RecordResponse{}, err
	}

	attendance, _ := staffrecord.ParseAttendance(req.Attendance)
	record, err := s.compute(ctx, member, existing.Date, attendance, req.Production, req.BonusQty, req.BonusRate, req.FixAmount)
	if err != nil {
		return staffrecord.RecordResponse{}, err
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt

	updated, err := s.recordRepo.Update(ctx, record)
	if err != nil {
		if !errors.Is(err, staffrecord.ErrRecordNotFound) {
			logger.LogError(s.log, module, "Update", "update record", req.ID, err)
		}
		return staffrecord.RecordResponse{}, err
	}
	updated.StaffName = member.Name
	return staffrecord.ToResponse(updated), nil
}

func (s *RecordServiceImpl) Delete(ctx context.Context, id string) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	return s.recordRepo.Delete(ctx, id, principal.BusinessID)
}

func (s *RecordServiceImpl) GetByID(ctx context.Context, id string) (staffrecord.RecordResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return staffrecord.RecordResponse{}, err
	}
	record, err := s.recordRepo.GetByID(ctx, id, principal.BusinessID)
	if err != nil {
		return staffrecord.RecordResponse{}, err
	}
	return staffrecord.ToResponse(record), nil
}

func (s *RecordServiceImpl) List(ctx context.Context, filter staffrecord.RecordFilter) (staffrecord.ListRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return staffrecord.ListRecordResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return staffrecord.ListRecordResponse{}, err
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	records, total, err := s.recordRepo.List(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "List", "list records", filter, err)
		return staffrecord.ListRecordResponse{}, err
	}

	responses := make([]staffrecord.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, staffrecord.ToResponse(r))
	}
	return staffrecord.ListRecordResponse{
		Records:    responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *RecordServiceImpl) GetLast(ctx context.Context, staffID string) (staffrecord.RecordResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return staffrecord.RecordResponse{}, err
	}
	if _, err := s.staffRepo.GetByID(ctx, staffID, principal.BusinessID); err != nil {
		return staffrecord.RecordResponse{}, err
	}
	record, err := s.recordRepo.GetLastByStaff(ctx, staffID, principal.BusinessID)
	if err != nil {
		return staffrecord.RecordResponse{}, err
	}
	return staffrecord.ToResponse(record), nil
}

func (s *RecordServiceImpl) Stats(ctx context.Context, filter staffrecord.RecordFilter) (staffrecord.StatsResponse, error) {
	if err := filter.Validate(); err != nil {
		return staffrecord.StatsResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return staffrecord.StatsResponse{}, err
	}

	stats, err := s.recordRepo.Stats(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "Stats", "aggregate records", filter, err)
		return staffrecord.StatsResponse{}, err
	}

	counts := make(map[string]int64, len(stats.AttendanceCounts))
	for a, n := range stats.AttendanceCounts {
		counts[string(a)] = n
	}
	return staffrecord.StatsResponse{
		Count:            stats.Count,
		TotalFinalAmount: stats.TotalFinalAmount,
		TotalBonusAmount: stats.TotalBonusAmount,
		TotalBaseAmount:  stats.TotalBaseAmount,
		Attendance:       counts,
	}, nil
}

func (s *RecordServiceImpl) Months(ctx context.Context) ([]string, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	months, err := s.recordRepo.Months(ctx, principal.BusinessID)
	if err != nil {
		logger.LogError(s.log, module, "Months", "list record months", principal.BusinessID, err)
		return nil, err
	}
	if months == nil {
		months = []string{}
	}
	return months, nil
}

// SlipPDF renders a single record as a printable slip and returns the file
// name to serve it under.
func (s *RecordServiceImpl) SlipPDF(ctx context.Context, id string) ([]byte, string, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, "", err
	}
	record, err := s.recordRepo.GetByID(ctx, id, principal.BusinessID)
	if err != nil {
		return nil, "", err
	}

	out, err := export.PDF(slipDocument(record))
	if err != nil {
		logger.LogError(s.log, module, "SlipPDF", "render slip", id, err)
		return nil, "", err
	}
	return out, fmt.Sprintf("slip-%s.pdf", record.Date.Format(validator.DateLayout)), nil
}

func slipDocument(r staffrecord.StaffRecord) export.Document {
	doc := export.Document{
		Title: "Daily Production Slip",
		Header: []export.Field{
			{Label: "Staff", Value: r.StaffName},
			{Label: "Date", Value: r.Date.Format(validator.DateLayout)},
			{Label: "Attendance", Value: string(r.Attendance)},
		},
		Columns: []string{"#", "Design Stitch", "Applique", "Pieces", "Rounds", "Total Stitch", "On Target", "After Target"},
	}
	for i, row := range r.Production {
		doc.Rows = append(doc.Rows, []string{
			fmt.Sprint(i + 1),
			row.DesignStitch.String(),
			row.Applique.String(),
			row.PieceCount.String(),
			row.RoundCount.String(),
			row.TotalStitch.String(),
			row.OnTargetAmount.StringFixed(2),
			row.AfterTargetAmount.StringFixed(2),
		})
	}

	doc.Summary = []export.Field{
		{Label: "Base amount", Value: r.BaseAmount.StringFixed(2)},
		{Label: "Bonus", Value: fmt.Sprintf("%s x %s = %s", r.BonusQty.String(), r.BonusRate.StringFixed(2), r.BonusAmount.StringFixed(2))},
	}
	if r.FixAmount != nil {
		doc.Summary = append(doc.Summary, export.Field{Label: "Fixed amount", Value: r.FixAmount.StringFixed(2)})
	}
	doc.Summary = append(doc.Summary, export.Field{Label: "Final amount", Value: r.FinalAmount.StringFixed(2)})
	return doc
}
