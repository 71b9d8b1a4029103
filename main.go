package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/ZhuChiYu/RoomEase-sub000/routes"
	"github.com/ZhuChiYu/RoomEase-sub000/storage"
	"github.com/ZhuChiYu/RoomEase-sub000/utils"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	reservations := app.Party("/api/reservations")
	{
		reservations.Post("/room/{id:uint}", accessTokenVerifierMiddleware, routes.CreateReservation)
		reservations.Post("/room/{id:uint}/validate", routes.ValidateReservationAvailability)
		reservations.Patch("/{id:uint}", accessTokenVerifierMiddleware, routes.UpdateReservation)
		reservations.Post("/{id:uint}/confirm", accessTokenVerifierMiddleware, routes.ConfirmReservation)
		reservations.Post("/{id:uint}/checkin", accessTokenVerifierMiddleware, routes.CheckInReservation)
		reservations.Post("/{id:uint}/checkout", accessTokenVerifierMiddleware, routes.CheckOutReservation)
		reservations.Post("/{id:uint}/cancel", accessTokenVerifierMiddleware, routes.CancelReservation)
		reservations.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeleteReservation)
		reservations.Get("/property/{id:uint}", accessTokenVerifierMiddleware, routes.GetReservationsByPropertyID)
		reservations.Get("/guest/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetGuestReservations)
	}

	calendar := app.Party("/api/calendar")
	{
		calendar.Get("/property/{id:uint}", routes.GetPropertyCalendar)
		calendar.Get("/property/{id:uint}/grid", routes.GetPropertyCalendarGrid)
	}

	overrides := app.Party("/api/overrides")
	{
		overrides.Post("/block", accessTokenVerifierMiddleware, routes.BlockRoomDates)
		overrides.Post("/unblock", accessTokenVerifierMiddleware, routes.UnblockRoomDates)
		overrides.Post("/price", accessTokenVerifierMiddleware, routes.SetSpecialPrice)
		overrides.Get("/room/{id:uint}", routes.GetRoomOverrides)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	app.Listen(":" + port)
}
