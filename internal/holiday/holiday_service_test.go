package holiday

import (
	"context"
	"database/sql"
	"testing"
	"time"

	holidayerrors "go-payroll/internal/holiday/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	created    []*Holiday
	byDate     map[string]*Holiday
	findAllFn  func(ctx context.Context) ([]Holiday, error)
	createErr  error
	findDateFn func(ctx context.Context, date time.Time) (*Holiday, error)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byDate: map[string]*Holiday{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, h *Holiday) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, h)
	f.byDate[h.HolidayDate.Format("2006-01-02")] = h
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]Holiday, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	out := make([]Holiday, 0, len(f.created))
	for _, h := range f.created {
		out = append(out, *h)
	}
	return out, nil
}

func (f *fakeRepo) FindByDate(ctx context.Context, date time.Time) (*Holiday, error) {
	if f.findDateFn != nil {
		return f.findDateFn(ctx, date)
	}
	if h, ok := f.byDate[date.Format("2006-01-02")]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestCreate_DefaultsToCompanyType(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	res, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name: "Founders Day",
		Date: "2026-03-14",
	})

	assert.NoError(t, err)
	assert.Equal(t, TypeCompany, res.Type)
	assert.Equal(t, "2026-03-14", res.Date)
	assert.Len(t, repo.created, 1)
}

func TestCreate_RejectsInvalidDate(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name: "Broken",
		Date: "14-03-2026",
	})

	assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateFormat)
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name: "Odd One",
		Date: "2026-03-14",
		Type: "regional",
	})

	assert.ErrorIs(t, err, holidayerrors.ErrInvalidHolidayType)
}

func TestCreate_RejectsDuplicateDate(t *testing.T) {
	repo := newFakeRepo()
	date, _ := time.Parse("2006-01-02", "2026-12-25")
	repo.byDate["2026-12-25"] = &Holiday{
		ID:          uuid.New(),
		Name:        "Christmas",
		HolidayDate: date,
		Type:        TypeNational,
	}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name: "Company Christmas",
		Date: "2026-12-25",
		Type: TypeCompany,
	})

	assert.ErrorIs(t, err, holidayerrors.ErrHolidayExists)
	assert.Empty(t, repo.created)
}

func TestGetAll_MapsEntities(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	for _, d := range []string{"2026-01-01", "2026-05-01"} {
		_, err := svc.Create(context.Background(), CreateHolidayRequest{
			Name: "Holiday " + d,
			Date: d,
			Type: TypeNational,
		})
		assert.NoError(t, err)
	}

	res, err := svc.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, "2026-01-01", res[0].Date)
	assert.Equal(t, TypeNational, res[0].Type)
}
