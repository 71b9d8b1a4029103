package routes

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/ZhuChiYu/RoomEase-sub000/utils"
)

type BlockRoomInput struct {
	RoomID    uint      `json:"roomID" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	Reason    string    `json:"reason"`
}

// BlockRoomDates blocks every day in the inclusive range. The whole batch is
// written atomically.
func BlockRoomDates(ctx iris.Context) {
	var input BlockRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	count, err := overrideService().BlockRoom(ctx.Request().Context(), input.RoomID, input.StartDate, input.EndDate, input.Reason)
	if err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"blockedDays": count})
}

type UnblockRoomInput struct {
	RoomID    uint      `json:"roomID" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

func UnblockRoomDates(ctx iris.Context) {
	var input UnblockRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	count, err := overrideService().UnblockRoom(ctx.Request().Context(), input.RoomID, input.StartDate, input.EndDate)
	if err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"unblockedDays": count})
}

type SpecialPriceInput struct {
	RoomID uint      `json:"roomID" validate:"required"`
	Date   time.Time `json:"date" validate:"required"`
	Price  float64   `json:"price" validate:"gte=0"`
}

func SetSpecialPrice(ctx iris.Context) {
	var input SpecialPriceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if err := overrideService().SetSpecialPrice(ctx.Request().Context(), input.RoomID, input.Date, input.Price); err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"ok": true})
}

func GetRoomOverrides(ctx iris.Context) {
	roomID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid room ID", ctx)
		return
	}

	startDate, endDate, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	overrides, err := overrideService().ForRoom(ctx.Request().Context(), roomID, startDate, endDate)
	if err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.JSON(overrides)
}
