package routes

import (
	"errors"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/ZhuChiYu/RoomEase-sub000/services"
	"github.com/ZhuChiYu/RoomEase-sub000/storage"
	"github.com/ZhuChiYu/RoomEase-sub000/utils"
)

func reservationService() *services.ReservationService {
	return services.NewReservationService(
		storage.NewReservationStore(storage.DB),
		storage.NewRoomStore(storage.DB),
		services.NewRedisEventPublisher(storage.Redis),
	)
}

func calendarService() *services.CalendarService {
	return services.NewCalendarService(
		storage.NewPropertyStore(storage.DB),
		storage.NewRoomStore(storage.DB),
		storage.NewReservationStore(storage.DB),
		storage.NewOverrideStore(storage.DB),
	)
}

func overrideService() *services.OverrideService {
	return services.NewOverrideService(
		storage.NewRoomStore(storage.DB),
		storage.NewOverrideStore(storage.DB),
	)
}

// writeServiceError maps the engine's error taxonomy onto HTTP statuses.
func writeServiceError(err error, ctx iris.Context) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var conflictErr *services.ConflictError
	var transitionErr *services.InvalidStateTransitionError

	switch {
	case errors.As(err, &validationErr):
		utils.CreateError(iris.StatusBadRequest, "Validation Error", validationErr.Error(), ctx)
	case errors.As(err, &notFoundErr):
		utils.CreateError(iris.StatusNotFound, "Not Found", notFoundErr.Error(), ctx)
	case errors.As(err, &conflictErr):
		ctx.StopWithProblem(iris.StatusConflict, iris.NewProblem().
			Title("Conflict").
			Detail(conflictErr.Error()).
			Key("conflictingReservationIDs", conflictErr.ReservationIDs))
	case errors.As(err, &transitionErr):
		utils.CreateError(iris.StatusBadRequest, "Invalid State Transition", transitionErr.Error(), ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}

// parseDateRange reads startDate/endDate query params in YYYY-MM-DD form.
func parseDateRange(ctx iris.Context) (time.Time, time.Time, bool) {
	startDateStr := ctx.URLParam("startDate")
	endDateStr := ctx.URLParam("endDate")

	if startDateStr == "" || endDateStr == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "startDate and endDate are required", ctx)
		return time.Time{}, time.Time{}, false
	}

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid startDate format, expected YYYY-MM-DD", ctx)
		return time.Time{}, time.Time{}, false
	}

	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid endDate format, expected YYYY-MM-DD", ctx)
		return time.Time{}, time.Time{}, false
	}

	return startDate, endDate, true
}
