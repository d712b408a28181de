package grievance

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Submission limits (spam prevention)
const (
	MinDetailsLength      = 10
	MaxSubmissionsPerHour = 3
)

const cacheTTL = 60 * time.Second

type GrievanceService interface {
	// FetchByCompany returns the company's grievances, tolerating up to 60
	// seconds of staleness via a read-through cache.
	FetchByCompany(ctx context.Context, companyID string) ([]Grievance, error)
	Submit(ctx context.Context, userID, companyID string, req *SubmitRequest) (*Grievance, int, error)
	ExportToExcel(ctx context.Context, companyID string) ([]byte, string, error)
	// SweepCache drops expired cache entries; wired to the minute scheduler.
	SweepCache()
}

type cacheEntry struct {
	grievances []Grievance
	fetchedAt  time.Time
}

type GrievanceServiceImpl struct {
	Repo   GrievanceRepository
	Points *PointsEngine
	Logger *zap.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

func NewGrievanceService(repo GrievanceRepository, points *PointsEngine, logger *zap.Logger) GrievanceService {
	return &GrievanceServiceImpl{
		Repo:   repo,
		Points: points,
		Logger: logger,
		cache:  make(map[string]cacheEntry),
	}
}

func (s *GrievanceServiceImpl) FetchByCompany(ctx context.Context, companyID string) ([]Grievance, error) {
	s.mu.RLock()
	entry, ok := s.cache[companyID]
	s.mu.RUnlock()

	if ok && time.Since(entry.fetchedAt) < cacheTTL {
		return entry.grievances, nil
	}

	grievances, err := s.Repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[companyID] = cacheEntry{grievances: grievances, fetchedAt: time.Now()}
	s.mu.Unlock()

	return grievances, nil
}

func (s *GrievanceServiceImpl) Submit(ctx context.Context, userID, companyID string, req *SubmitRequest) (*Grievance, int, error) {
	if req.Category == "" || req.StressLevel == nil {
		return nil, 0, fmt.Errorf("category and stress_level are required")
	}

	// Length limits count characters, not bytes; CJK details are 3 bytes
	// per character.
	details := strings.TrimSpace(req.Details)
	detailsLength := utf8.RuneCountInString(details)
	if detailsLength < MinDetailsLength {
		return nil, 0, fmt.Errorf("details must be at least %d characters", MinDetailsLength)
	}

	// Velocity check: cap submissions per user per hour
	oneHourAgo := time.Now().Add(-time.Hour)
	recent, err := s.Repo.CountByUserSince(ctx, userID, oneHourAgo)
	if err != nil {
		return nil, 0, fmt.Errorf("spam check failed: %w", err)
	}
	if recent >= MaxSubmissionsPerHour {
		return nil, 0, ErrTooManySubmissions
	}

	g := &Grievance{
		CompanyID:   companyID,
		UserID:      userID,
		Category:    req.Category,
		Details:     details,
		StressLevel: *req.StressLevel,
	}
	if err := s.Repo.Insert(ctx, g); err != nil {
		return nil, 0, err
	}

	points, err := s.Points.Compute(detailsLength)
	if err != nil {
		s.Logger.Warn("points rule failed, using base grant", zap.Error(err))
	}

	// The grievance itself is already saved; a failed point grant is logged
	// and the submission still succeeds.
	if err := s.Repo.AddPointTransaction(ctx, companyID, userID, points, "grievance submission"); err != nil {
		s.Logger.Error("failed to record point transaction",
			zap.String("company_id", companyID), zap.String("viewer_id", userID), zap.Error(err))
	}

	return g, points, nil
}

func (s *GrievanceServiceImpl) ExportToExcel(ctx context.Context, companyID string) ([]byte, string, error) {
	grievances, err := s.FetchByCompany(ctx, companyID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Grievances"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	headers := []string{"ID", "Category", "Details", "Stress Level", "Created At"}
	for i, col := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, g := range grievances {
		values := []interface{}{g.ID, g.Category, g.Details, g.StressLevel, g.CreatedAt.Format("2006-01-02 15:04:05")}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 20)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("grievances_%s_%s.xlsx", companyID, time.Now().Format("20060102_150405"))
	return buffer.Bytes(), filename, nil
}

func (s *GrievanceServiceImpl) SweepCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for companyID, entry := range s.cache {
		if time.Since(entry.fetchedAt) >= cacheTTL {
			delete(s.cache, companyID)
		}
	}
}
