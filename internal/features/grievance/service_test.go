package grievance

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeGrievanceRepo struct {
	grievances  []Grievance
	listErr     error
	listCalls   int
	inserted    []*Grievance
	recentCount int
	points      []int
	pointsErr   error
}

func (f *fakeGrievanceRepo) ListByCompany(ctx context.Context, companyID string) ([]Grievance, error) {
	f.listCalls++
	return f.grievances, f.listErr
}

func (f *fakeGrievanceRepo) Insert(ctx context.Context, g *Grievance) error {
	g.ID = "g-new"
	g.CreatedAt = time.Now()
	f.inserted = append(f.inserted, g)
	return nil
}

func (f *fakeGrievanceRepo) CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	return f.recentCount, nil
}

func (f *fakeGrievanceRepo) AddPointTransaction(ctx context.Context, companyID, userID string, points int, reason string) error {
	if f.pointsErr != nil {
		return f.pointsErr
	}
	f.points = append(f.points, points)
	return nil
}

func newTestGrievanceService(repo GrievanceRepository) GrievanceService {
	return NewGrievanceService(repo, NewPointsEngine(DefaultPointsScript), zap.NewNop())
}

func intPtr(v int) *int { return &v }

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name string
		req  *SubmitRequest
	}{
		{"missing category", &SubmitRequest{Details: strings.Repeat("x", 20), StressLevel: intPtr(3)}},
		{"missing stress level", &SubmitRequest{Category: "workload", Details: strings.Repeat("x", 20)}},
		{"details too short", &SubmitRequest{Category: "workload", Details: "short", StressLevel: intPtr(3)}},
		{"whitespace padding does not count", &SubmitRequest{Category: "workload", Details: "  hi     ", StressLevel: intPtr(3)}},
		{"multibyte details under the character minimum", &SubmitRequest{Category: "workload", Details: "辛いです。", StressLevel: intPtr(4)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeGrievanceRepo{}
			svc := newTestGrievanceService(repo)

			_, _, err := svc.Submit(context.Background(), "u-1", "co-1", tt.req)
			if err == nil {
				t.Error("Submit() accepted an invalid request")
			}
			if len(repo.inserted) != 0 {
				t.Error("invalid request must not be persisted")
			}
		})
	}
}

func TestSubmitVelocityLimit(t *testing.T) {
	repo := &fakeGrievanceRepo{recentCount: MaxSubmissionsPerHour}
	svc := newTestGrievanceService(repo)

	req := &SubmitRequest{Category: "workload", Details: strings.Repeat("x", 20), StressLevel: intPtr(4)}
	_, _, err := svc.Submit(context.Background(), "u-1", "co-1", req)

	if !errors.Is(err, ErrTooManySubmissions) {
		t.Errorf("Submit() error = %v, want ErrTooManySubmissions", err)
	}
}

func TestSubmitAwardsPoints(t *testing.T) {
	tests := []struct {
		name       string
		details    string
		wantPoints int
	}{
		{"base grant", strings.Repeat("a", 20), BasePoints},
		{"50 char bonus", strings.Repeat("a", 60), BasePoints + LengthBonus50Chars},
		{"100 char bonus", strings.Repeat("a", 150), BasePoints + LengthBonus100},
		// Bonuses count characters, not bytes: 34 CJK characters are 102
		// bytes but must earn only the base grant.
		{"multibyte base grant", strings.Repeat("業", 34), BasePoints},
		{"multibyte 50 char bonus", strings.Repeat("業", 60), BasePoints + LengthBonus50Chars},
		{"multibyte 100 char bonus", strings.Repeat("業", 100), BasePoints + LengthBonus100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeGrievanceRepo{}
			svc := newTestGrievanceService(repo)

			req := &SubmitRequest{Category: "workload", Details: tt.details, StressLevel: intPtr(3)}
			g, points, err := svc.Submit(context.Background(), "u-1", "co-1", req)
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}

			if points != tt.wantPoints {
				t.Errorf("points = %d, want %d", points, tt.wantPoints)
			}
			if g.ID == "" {
				t.Error("submitted grievance has no id")
			}
			if len(repo.points) != 1 || repo.points[0] != tt.wantPoints {
				t.Errorf("recorded point transactions = %v", repo.points)
			}
		})
	}
}

func TestSubmitSucceedsWhenPointGrantFails(t *testing.T) {
	repo := &fakeGrievanceRepo{pointsErr: errors.New("ledger down")}
	svc := newTestGrievanceService(repo)

	req := &SubmitRequest{Category: "equipment", Details: strings.Repeat("b", 30), StressLevel: intPtr(2)}
	g, _, err := svc.Submit(context.Background(), "u-1", "co-1", req)

	if err != nil {
		t.Fatalf("Submit() error = %v, grievance save must win", err)
	}
	if g == nil || len(repo.inserted) != 1 {
		t.Error("grievance was not persisted")
	}
}

func TestFetchByCompanyCaches(t *testing.T) {
	repo := &fakeGrievanceRepo{grievances: []Grievance{{ID: "g1"}, {ID: "g2"}}}
	svc := newTestGrievanceService(repo)

	for i := 0; i < 5; i++ {
		got, err := svc.FetchByCompany(context.Background(), "co-1")
		if err != nil {
			t.Fatalf("FetchByCompany() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d grievances, want 2", len(got))
		}
	}

	if repo.listCalls != 1 {
		t.Errorf("store queried %d times within the TTL, want 1", repo.listCalls)
	}
}

func TestFetchByCompanyCacheIsPerCompany(t *testing.T) {
	repo := &fakeGrievanceRepo{}
	svc := newTestGrievanceService(repo)

	svc.FetchByCompany(context.Background(), "co-1")
	svc.FetchByCompany(context.Background(), "co-2")

	if repo.listCalls != 2 {
		t.Errorf("store queried %d times for two companies, want 2", repo.listCalls)
	}
}

func TestFetchByCompanyErrorIsNotCached(t *testing.T) {
	repo := &fakeGrievanceRepo{listErr: errors.New("down")}
	svc := newTestGrievanceService(repo)

	if _, err := svc.FetchByCompany(context.Background(), "co-1"); err == nil {
		t.Fatal("expected error")
	}

	repo.listErr = nil
	repo.grievances = []Grievance{{ID: "g1"}}
	got, err := svc.FetchByCompany(context.Background(), "co-1")
	if err != nil {
		t.Fatalf("FetchByCompany() error = %v", err)
	}
	if len(got) != 1 {
		t.Error("recovered fetch should hit the store, not a cached failure")
	}
}

func TestSweepCacheDropsExpiredEntries(t *testing.T) {
	repo := &fakeGrievanceRepo{}
	svc := newTestGrievanceService(repo).(*GrievanceServiceImpl)

	svc.FetchByCompany(context.Background(), "co-1")

	// Backdate the entry past the TTL
	svc.mu.Lock()
	entry := svc.cache["co-1"]
	entry.fetchedAt = time.Now().Add(-2 * cacheTTL)
	svc.cache["co-1"] = entry
	svc.mu.Unlock()

	svc.SweepCache()

	svc.mu.RLock()
	_, ok := svc.cache["co-1"]
	svc.mu.RUnlock()
	if ok {
		t.Error("expired entry survived the sweep")
	}
}

func TestExportToExcel(t *testing.T) {
	repo := &fakeGrievanceRepo{grievances: []Grievance{
		{ID: "g1", Category: "workload", Details: "too many handoffs", StressLevel: 4, CreatedAt: time.Now()},
	}}
	svc := newTestGrievanceService(repo)

	data, filename, err := svc.ExportToExcel(context.Background(), "co-1")
	if err != nil {
		t.Fatalf("ExportToExcel() error = %v", err)
	}
	if len(data) == 0 {
		t.Error("workbook is empty")
	}
	if !strings.HasPrefix(filename, "grievances_co-1_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}
}
