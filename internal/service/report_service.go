package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spec-kit/gym-service/internal/repository"
)

// ReportService aggregates enrollment and attendance figures.
type ReportService struct {
	students repository.StudentRepository
	plans    repository.PlanRepository
	checkIns repository.CheckInRepository
	now      func() time.Time
}

// PlanEnrollment counts students on a plan.
type PlanEnrollment struct {
	PlanID   int64
	PlanName string
	Students int
	Revenue  float64
}

// ReportSummary is a point-in-time view of the gym.
type ReportSummary struct {
	Students         int
	StudentsWithPlan int
	ActivePlans      int
	CheckIns         int
	CheckInsToday    int
	MonthlyRevenue   float64
	ByPlan           []PlanEnrollment
	GeneratedAt      time.Time
}

// NewReportService constructs the service.
func NewReportService(students repository.StudentRepository, plans repository.PlanRepository, checkIns repository.CheckInRepository) *ReportService {
	return &ReportService{students: students, plans: plans, checkIns: checkIns, now: time.Now}
}

// Summary counts students, plans and check-ins. Revenue sums the price of
// each enrolled student's plan; students whose plan was removed are counted
// as enrolled but add nothing.
func (s *ReportService) Summary(ctx context.Context) (*ReportSummary, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	checkIns, err := s.checkIns.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}

	now := s.now()
	summary := &ReportSummary{
		Students:    len(students),
		CheckIns:    len(checkIns),
		GeneratedAt: now.UTC(),
	}

	byPlan := make(map[int64]*PlanEnrollment, len(plans))
	prices := make(map[int64]float64, len(plans))
	for _, p := range plans {
		if p.Active {
			summary.ActivePlans++
		}
		byPlan[p.ID] = &PlanEnrollment{PlanID: p.ID, PlanName: p.Name}
		prices[p.ID] = p.Price
	}

	for _, st := range students {
		if st.PlanID == nil {
			continue
		}
		summary.StudentsWithPlan++
		entry, ok := byPlan[*st.PlanID]
		if !ok {
			continue
		}
		entry.Students++
		entry.Revenue += prices[*st.PlanID]
		summary.MonthlyRevenue += prices[*st.PlanID]
	}

	for _, ci := range checkIns {
		if sameDay(ci.At, now) {
			summary.CheckInsToday++
		}
	}

	summary.ByPlan = make([]PlanEnrollment, 0, len(byPlan))
	for _, entry := range byPlan {
		summary.ByPlan = append(summary.ByPlan, *entry)
	}
	sort.Slice(summary.ByPlan, func(i, j int) bool {
		return summary.ByPlan[i].PlanID < summary.ByPlan[j].PlanID
	})
	return summary, nil
}

func sameDay(t, ref time.Time) bool {
	ty, tm, td := t.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	return ty == ry && tm == rm && td == rd
}

