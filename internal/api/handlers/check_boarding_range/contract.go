package check_boarding_range

import (
	"context"

	checkBoardingRange "github.com/m04kA/SMC-SitterAvailability/internal/usecase/check_boarding_range"
)

type CheckBoardingRangeUseCase interface {
	Execute(ctx context.Context, req *checkBoardingRange.Request) (*checkBoardingRange.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
