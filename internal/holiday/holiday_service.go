package holiday

import (
	"context"
	"errors"
	"time"

	holidayerrors "go-payroll/internal/holiday/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDateFormat
	}

	holidayType := req.Type
	if holidayType == "" {
		holidayType = TypeCompany
	}
	switch holidayType {
	case TypeNational, TypeCompany, TypePersonal:
	default:
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayType
	}

	if _, err := s.repo.FindByDate(ctx, date); err == nil {
		return HolidayResponse{}, holidayerrors.ErrHolidayExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return HolidayResponse{}, err
	}

	h := &Holiday{
		ID:          uuid.New(),
		Name:        req.Name,
		HolidayDate: date,
		Type:        holidayType,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("holiday create failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.logger.Info("holiday created",
		zap.String("name", h.Name),
		zap.String("date", req.Date),
		zap.String("type", holidayType),
	)
	return mapToResponse(*h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		res[i] = mapToResponse(h)
	}
	return res, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID.String(),
		Name: h.Name,
		Date: h.HolidayDate.Format("2006-01-02"),
		Type: h.Type,
	}
}
