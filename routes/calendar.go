package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/ZhuChiYu/RoomEase-sub000/utils"
)

// GetPropertyCalendar returns rooms, active reservations overlapping the
// range and override rows inside it. Grid expansion is the client's job; use
// the /grid variant to get it server-side.
func GetPropertyCalendar(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	startDate, endDate, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	calendar, err := calendarService().GetCalendar(ctx.Request().Context(), propertyID, startDate, endDate)
	if err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.JSON(calendar)
}

// GetPropertyCalendarGrid returns the expanded per-room, per-day cells.
func GetPropertyCalendarGrid(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	startDate, endDate, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	grid, err := calendarService().DayGrid(ctx.Request().Context(), propertyID, startDate, endDate)
	if err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"cells": grid})
}
