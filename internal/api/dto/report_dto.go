package dto

import (
	"time"

	"github.com/spec-kit/gym-service/internal/service"
)

// PlanEnrollmentResponse is one row of the per-plan breakdown.
type PlanEnrollmentResponse struct {
	PlanID   int64   `json:"planoId"`
	PlanName string  `json:"nome"`
	Students int     `json:"alunos"`
	Revenue  float64 `json:"receita"`
}

// ReportSummaryResponse is the body of GET /api/relatorios/resumo.
type ReportSummaryResponse struct {
	Students         int                      `json:"totalAlunos"`
	StudentsWithPlan int                      `json:"alunosComPlano"`
	ActivePlans      int                      `json:"planosAtivos"`
	CheckIns         int                      `json:"totalCheckins"`
	CheckInsToday    int                      `json:"checkinsHoje"`
	MonthlyRevenue   float64                  `json:"receitaEstimada"`
	ByPlan           []PlanEnrollmentResponse `json:"alunosPorPlano"`
	GeneratedAt      time.Time                `json:"geradoEm"`
}

// NewReportSummaryResponse maps a summary.
func NewReportSummaryResponse(s *service.ReportSummary) ReportSummaryResponse {
	rows := make([]PlanEnrollmentResponse, 0, len(s.ByPlan))
	for _, p := range s.ByPlan {
		rows = append(rows, PlanEnrollmentResponse{
			PlanID:   p.PlanID,
			PlanName: p.PlanName,
			Students: p.Students,
			Revenue:  p.Revenue,
		})
	}
	return ReportSummaryResponse{
		Students:         s.Students,
		StudentsWithPlan: s.StudentsWithPlan,
		ActivePlans:      s.ActivePlans,
		CheckIns:         s.CheckIns,
		CheckInsToday:    s.CheckInsToday,
		MonthlyRevenue:   s.MonthlyRevenue,
		ByPlan:           rows,
		GeneratedAt:      s.GeneratedAt,
	}
}
