package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gym-service/internal/auth"
	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/repository"
)

type catalogFixture struct {
	students *StudentService
	plans    *PlanService
	checkIns *CheckInService
	reports  *ReportService
}

func newCatalogFixture() *catalogFixture {
	studentRepo := repository.NewMemoryStudentRepository()
	planRepo := repository.NewMemoryPlanRepository()
	checkInRepo := repository.NewMemoryCheckInRepository()
	return &catalogFixture{
		students: NewStudentService(studentRepo, planRepo),
		plans:    NewPlanService(planRepo),
		checkIns: NewCheckInService(checkInRepo, studentRepo),
		reports:  NewReportService(studentRepo, planRepo, checkInRepo),
	}
}

func sampleStudent(email string) StudentInput {
	return StudentInput{
		FullName:  "Joana Prado",
		Email:     email,
		Phone:     "11988887777",
		BirthDate: "1995-02-20",
		Address: domain.Address{
			Street:  "Rua das Flores",
			Number:  "100",
			City:    "Campinas",
			State:   "SP",
			ZipCode: "13000000",
		},
	}
}

func TestStudentLifecycle(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	created, err := f.students.CreateStudent(ctx, sampleStudent("joana@mail.com"))
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, time.Now().UTC().Format(domain.DateLayout), created.StartDate)

	_, err = f.students.CreateStudent(ctx, sampleStudent("joana@mail.com"))
	de := requireDomainError(t, err, 409)
	require.Equal(t, "Email já cadastrado", de.Message)

	city := "Sorocaba"
	updated, err := f.students.UpdateStudent(ctx, created.ID, StudentUpdate{Address: &AddressUpdate{City: &city}})
	require.NoError(t, err)
	require.Equal(t, "Sorocaba", updated.Address.City)
	require.Equal(t, "Rua das Flores", updated.Address.Street)

	require.NoError(t, f.students.DeleteStudent(ctx, created.ID))
	_, err = f.students.GetStudent(ctx, created.ID)
	requireDomainError(t, err, 404)
}

func TestStudent_PlanMustExist(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	in := sampleStudent("a@mail.com")
	missing := int64(7)
	in.PlanID = &missing
	_, err := f.students.CreateStudent(ctx, in)
	requireDomainError(t, err, 404)

	plan, err := f.plans.CreatePlan(ctx, PlanInput{
		Name: "MUSCULACAO", Modalities: []string{"Musculação"}, Price: 99.9, DurationDays: 30,
		Benefits: []string{"Acesso livre"},
	})
	require.NoError(t, err)
	in.PlanID = &plan.ID
	created, err := f.students.CreateStudent(ctx, in)
	require.NoError(t, err)
	require.Equal(t, plan.ID, *created.PlanID)
}

func TestPlanLifecycle(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	plan, err := f.plans.CreatePlan(ctx, PlanInput{
		Name: "PREMIUM", Modalities: []string{"Musculação", "Natação"}, Price: 150, DurationDays: 30,
		Benefits: []string{"Avaliação física"},
	})
	require.NoError(t, err)
	require.True(t, plan.Active)

	_, err = f.plans.UpdatePlan(ctx, plan.ID, PlanUpdate{})
	de := requireDomainError(t, err, 400)
	require.Equal(t, "Nenhuma alteração foi submetida para atualização", de.Message)

	inactive := false
	price := 180.0
	updated, err := f.plans.UpdatePlan(ctx, plan.ID, PlanUpdate{Active: &inactive, Price: &price})
	require.NoError(t, err)
	require.False(t, updated.Active)
	require.Equal(t, 180.0, updated.Price)
	require.Equal(t, []string{"Musculação", "Natação"}, updated.Modalities)

	list, err := f.plans.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.plans.DeletePlan(ctx, plan.ID))
	requireDomainError(t, f.plans.DeletePlan(ctx, plan.ID), 404)
}

func TestCheckInLifecycle(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	actor := &auth.Principal{StaffID: 5, UserName: "rita", Role: domain.RoleFrontDesk}

	_, err := f.checkIns.RegisterCheckIn(ctx, actor, 1, nil, nil)
	requireDomainError(t, err, 404)

	student, err := f.students.CreateStudent(ctx, sampleStudent("c@mail.com"))
	require.NoError(t, err)

	at := time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC)
	note := "aula experimental"
	checkIn, err := f.checkIns.RegisterCheckIn(ctx, actor, student.ID, &at, &note)
	require.NoError(t, err)
	require.Equal(t, at, checkIn.At)
	require.NotNil(t, checkIn.RegisteredBy)
	require.Equal(t, int64(5), *checkIn.RegisteredBy)

	_, err = f.checkIns.RegisterCheckIn(ctx, actor, student.ID, nil, nil)
	require.NoError(t, err)

	byStudent, err := f.checkIns.ListStudentCheckIns(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, byStudent, 2)

	_, err = f.checkIns.ListStudentCheckIns(ctx, 99)
	requireDomainError(t, err, 404)

	require.NoError(t, f.checkIns.DeleteCheckIn(ctx, checkIn.ID))
	_, err = f.checkIns.GetCheckIn(ctx, checkIn.ID)
	requireDomainError(t, err, 404)
}

func TestReportSummary(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	f.reports.now = func() time.Time { return now }

	basic, err := f.plans.CreatePlan(ctx, PlanInput{
		Name: "BASICO", Modalities: []string{"Musculação"}, Price: 80, DurationDays: 30,
		Benefits: []string{"Armário"},
	})
	require.NoError(t, err)
	inactive := false
	premium, err := f.plans.CreatePlan(ctx, PlanInput{
		Name: "PREMIUM", Modalities: []string{"Natação"}, Price: 200, DurationDays: 30,
		Benefits: []string{"Toalha"}, Active: &inactive,
	})
	require.NoError(t, err)

	enroll := func(email string, planID *int64) *domain.Student {
		in := sampleStudent(email)
		in.PlanID = planID
		st, err := f.students.CreateStudent(ctx, in)
		require.NoError(t, err)
		return st
	}
	a := enroll("a@mail.com", &basic.ID)
	enroll("b@mail.com", &basic.ID)
	enroll("c@mail.com", &premium.ID)
	enroll("d@mail.com", nil)
	require.NoError(t, f.plans.DeletePlan(ctx, premium.ID))

	today := now.Add(-2 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	_, err = f.checkIns.RegisterCheckIn(ctx, nil, a.ID, &today, nil)
	require.NoError(t, err)
	_, err = f.checkIns.RegisterCheckIn(ctx, nil, a.ID, &yesterday, nil)
	require.NoError(t, err)

	summary, err := f.reports.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, summary.Students)
	require.Equal(t, 3, summary.StudentsWithPlan)
	require.Equal(t, 1, summary.ActivePlans)
	require.Equal(t, 2, summary.CheckIns)
	require.Equal(t, 1, summary.CheckInsToday)
	require.InDelta(t, 160.0, summary.MonthlyRevenue, 0.001)
	require.Equal(t, []PlanEnrollment{
		{PlanID: basic.ID, PlanName: "BASICO", Students: 2, Revenue: 160},
	}, summary.ByPlan)
	require.Equal(t, now, summary.GeneratedAt)
}
