package routes

import (
	"context"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"

	"github.com/ZhuChiYu/RoomEase-sub000/models"
	"github.com/ZhuChiYu/RoomEase-sub000/services"
	"github.com/ZhuChiYu/RoomEase-sub000/utils"
)

type CreateReservationInput struct {
	CheckInDate  time.Time      `json:"checkInDate" validate:"required"`
	CheckOutDate time.Time      `json:"checkOutDate" validate:"required"`
	GuestID      uint           `json:"guestID"`
	GuestName    string         `json:"guestName"`
	GuestPhone   string         `json:"guestPhone"`
	NumGuests    int            `json:"numGuests" validate:"omitempty,gte=1,lte=16"`
	TotalPrice   float64        `json:"totalPrice" validate:"omitempty,gte=0"`
	AmountPaid   float64        `json:"amountPaid" validate:"omitempty,gte=0"`
	Note         string         `json:"note"`
	Details      datatypes.JSON `json:"details"`
}

func CreateReservation(ctx iris.Context) {
	roomID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid room ID", ctx)
		return
	}

	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	reservation, err := reservationService().Create(ctx.Request().Context(), services.CreateReservationInput{
		RoomID:       roomID,
		CheckInDate:  input.CheckInDate,
		CheckOutDate: input.CheckOutDate,
		GuestID:      input.GuestID,
		GuestName:    input.GuestName,
		GuestPhone:   input.GuestPhone,
		NumGuests:    input.NumGuests,
		TotalPrice:   input.TotalPrice,
		AmountPaid:   input.AmountPaid,
		Note:         input.Note,
		Details:      input.Details,
	})
	if err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(reservation)
}

type UpdateReservationInput struct {
	RoomID       *uint          `json:"roomID"`
	CheckInDate  *time.Time     `json:"checkInDate"`
	CheckOutDate *time.Time     `json:"checkOutDate"`
	GuestName    *string        `json:"guestName"`
	GuestPhone   *string        `json:"guestPhone"`
	NumGuests    *int           `json:"numGuests" validate:"omitempty,gte=1,lte=16"`
	TotalPrice   *float64       `json:"totalPrice" validate:"omitempty,gte=0"`
	AmountPaid   *float64       `json:"amountPaid" validate:"omitempty,gte=0"`
	Note         *string        `json:"note"`
	Details      datatypes.JSON `json:"details"`
}

func UpdateReservation(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid reservation ID", ctx)
		return
	}

	var input UpdateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	reservation, err := reservationService().Update(ctx.Request().Context(), id, services.UpdateReservationInput{
		RoomID:       input.RoomID,
		CheckInDate:  input.CheckInDate,
		CheckOutDate: input.CheckOutDate,
		GuestName:    input.GuestName,
		GuestPhone:   input.GuestPhone,
		NumGuests:    input.NumGuests,
		TotalPrice:   input.TotalPrice,
		AmountPaid:   input.AmountPaid,
		Note:         input.Note,
		Details:      input.Details,
	})
	if err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.JSON(reservation)
}

func ConfirmReservation(ctx iris.Context)  { applyTransition(ctx, reservationService().Confirm) }
func CheckInReservation(ctx iris.Context)  { applyTransition(ctx, reservationService().CheckIn) }
func CheckOutReservation(ctx iris.Context) { applyTransition(ctx, reservationService().CheckOut) }
func CancelReservation(ctx iris.Context)   { applyTransition(ctx, reservationService().Cancel) }

func applyTransition(ctx iris.Context, transition func(reqCtx context.Context, id uint) (*models.Reservation, error)) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid reservation ID", ctx)
		return
	}

	reservation, err := transition(ctx.Request().Context(), id)
	if err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.JSON(reservation)
}

// DeleteReservation hard-deletes; CancelReservation is the lifecycle path.
// Only the reservation's own guest may delete.
func DeleteReservation(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid reservation ID", ctx)
		return
	}

	if err := reservationService().Remove(ctx.Request().Context(), id, userID); err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"deleted": true})
}

func GetReservationsByPropertyID(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	reservations, err := reservationService().ByProperty(ctx.Request().Context(), propertyID)
	if err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.JSON(reservations)
}

func GetGuestReservations(ctx iris.Context) {
	guestID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid guest ID", ctx)
		return
	}

	reservations, err := reservationService().ByGuest(ctx.Request().Context(), guestID)
	if err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.JSON(reservations)
}

type ValidateAvailabilityInput struct {
	CheckInDate  time.Time `json:"checkInDate" validate:"required"`
	CheckOutDate time.Time `json:"checkOutDate" validate:"required"`
}

// ValidateReservationAvailability is a read-only conflict check clients call
// before presenting a booking form. The create path re-checks regardless.
func ValidateReservationAvailability(ctx iris.Context) {
	roomID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid room ID", ctx)
		return
	}

	var input ValidateAvailabilityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if err := reservationService().Validate(ctx.Request().Context(), roomID, input.CheckInDate, input.CheckOutDate); err != nil {
		writeServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"ok": true})
}
