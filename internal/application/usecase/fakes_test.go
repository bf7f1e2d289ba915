package usecase_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/domain/entity"
)

// Fakes en memoria compartidos por las pruebas del paquete.

const (
	bizID    = "biz-1"
	branchID = "branch-1"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type fakeBranchRepo struct {
	branches map[string]*entity.Branch
}

func (f *fakeBranchRepo) Create(b *entity.Branch) error {
	f.branches[b.ID] = b
	return nil
}
func (f *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) { return f.branches[id], nil }
func (f *fakeBranchRepo) Update(*entity.Branch) error               { return nil }
func (f *fakeBranchRepo) Delete(id string) error {
	delete(f.branches, id)
	return nil
}
func (f *fakeBranchRepo) ListByBusiness(businessID string, _, _ int) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for _, b := range f.branches {
		if b.BusinessID == businessID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeIngredientRepo struct {
	ingredients map[string]*entity.Ingredient
}

func (f *fakeIngredientRepo) Create(i *entity.Ingredient) error {
	f.ingredients[i.ID] = i
	return nil
}
func (f *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	return f.ingredients[id], nil
}
func (f *fakeIngredientRepo) GetByBusinessAndName(businessID, name string) (*entity.Ingredient, error) {
	for _, i := range f.ingredients {
		if i.BusinessID == businessID && i.Name == name {
			return i, nil
		}
	}
	return nil, nil
}
func (f *fakeIngredientRepo) Update(i *entity.Ingredient) error {
	f.ingredients[i.ID] = i
	return nil
}
func (f *fakeIngredientRepo) UpdateAvgCost(id string, avg decimal.Decimal) error {
	if ing := f.ingredients[id]; ing != nil {
		ing.AvgCost = avg
	}
	return nil
}
func (f *fakeIngredientRepo) ListByBusiness(string, string, int, int) ([]*entity.Ingredient, error) {
	return nil, nil
}
func (f *fakeIngredientRepo) ListByIDs(ids []string) ([]*entity.Ingredient, error) {
	out := make([]*entity.Ingredient, 0, len(ids))
	for _, id := range ids {
		if ing := f.ingredients[id]; ing != nil {
			out = append(out, ing)
		}
	}
	return out, nil
}
func (f *fakeIngredientRepo) Delete(id string) error {
	delete(f.ingredients, id)
	return nil
}

type fakeRecipeRepo struct {
	refs map[string]int // ingredientID → recetas que lo usan
}

func (f *fakeRecipeRepo) Create(*entity.RecipeLine) error                     { return nil }
func (f *fakeRecipeRepo) ListByProduct(string) ([]*entity.RecipeLine, error)  { return nil, nil }
func (f *fakeRecipeRepo) DeleteByProduct(string) error                        { return nil }
func (f *fakeRecipeRepo) ListProductIDsByIngredient(string) ([]string, error) { return nil, nil }
func (f *fakeRecipeRepo) CountByIngredient(ingredientID string) (int, error) {
	return f.refs[ingredientID], nil
}

type fakeSalesTargetRepo struct {
	targets map[string]*entity.DailySalesTarget
}

func (f *fakeSalesTargetRepo) Create(t *entity.DailySalesTarget) error {
	f.targets[t.ID] = t
	return nil
}
func (f *fakeSalesTargetRepo) GetByID(id string) (*entity.DailySalesTarget, error) {
	return f.targets[id], nil
}
func (f *fakeSalesTargetRepo) GetByBranchAndDate(branchID string, date time.Time) (*entity.DailySalesTarget, error) {
	for _, t := range f.targets {
		if t.BranchID == branchID && t.Date.Equal(date) {
			return t, nil
		}
	}
	return nil, nil
}
func (f *fakeSalesTargetRepo) Update(t *entity.DailySalesTarget) error {
	f.targets[t.ID] = t
	return nil
}
func (f *fakeSalesTargetRepo) ListByBranchRange(branchID string, from, to time.Time) ([]*entity.DailySalesTarget, error) {
	var out []*entity.DailySalesTarget
	for _, t := range f.targets {
		if t.BranchID == branchID && !t.Date.Before(from) && !t.Date.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}
func (f *fakeSalesTargetRepo) ListByBusinessRange(businessID string, from, to time.Time) ([]*entity.DailySalesTarget, error) {
	var out []*entity.DailySalesTarget
	for _, t := range f.targets {
		if t.BusinessID == businessID && !t.Date.Before(from) && !t.Date.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}
func (f *fakeSalesTargetRepo) Delete(id string) error {
	delete(f.targets, id)
	return nil
}

type fakeJourneyRepo struct {
	steps map[string]map[string]*entity.JourneyStep // businessID → stepKey → paso
}

func newFakeJourneyRepo() *fakeJourneyRepo {
	return &fakeJourneyRepo{steps: map[string]map[string]*entity.JourneyStep{}}
}

func (f *fakeJourneyRepo) SeedSteps(businessID string) error {
	byKey := f.steps[businessID]
	if byKey == nil {
		byKey = map[string]*entity.JourneyStep{}
		f.steps[businessID] = byKey
	}
	for _, key := range entity.JourneySteps() {
		if byKey[key] == nil {
			byKey[key] = &entity.JourneyStep{
				ID: businessID + ":" + key, BusinessID: businessID, StepKey: key,
			}
		}
	}
	return nil
}
func (f *fakeJourneyRepo) ListByBusiness(businessID string) ([]*entity.JourneyStep, error) {
	byKey := f.steps[businessID]
	var out []*entity.JourneyStep
	for _, key := range entity.JourneySteps() {
		if s := byKey[key]; s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeJourneyRepo) GetByBusinessAndKey(businessID, stepKey string) (*entity.JourneyStep, error) {
	if byKey := f.steps[businessID]; byKey != nil {
		return byKey[stepKey], nil
	}
	return nil, nil
}
func (f *fakeJourneyRepo) SetCompleted(businessID, stepKey string, completed bool) error {
	byKey := f.steps[businessID]
	if byKey == nil || byKey[stepKey] == nil {
		if err := f.SeedSteps(businessID); err != nil {
			return err
		}
		byKey = f.steps[businessID]
	}
	step := byKey[stepKey]
	step.Completed = completed
	if completed {
		now := time.Now()
		step.CompletedAt = &now
	} else {
		step.CompletedAt = nil
	}
	return nil
}

// spyRecoster registra los ingredientes encolados para recosteo.
type spyRecoster struct {
	enqueued []string
}

func (s *spyRecoster) EnqueueIngredient(ingredientID string) {
	s.enqueued = append(s.enqueued, ingredientID)
}

// spyJourney registra los pasos marcados automáticamente.
type spyJourney struct {
	marked []string
}

func (s *spyJourney) MarkStepDone(_, stepKey string) { s.marked = append(s.marked, stepKey) }
