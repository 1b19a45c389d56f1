package main

import (
	"fmt"
	"log"
	"os"

	"github.com/saroopcarr/DoorHinge/routes"
	"github.com/saroopcarr/DoorHinge/services"
	"github.com/saroopcarr/DoorHinge/storage"
	"github.com/saroopcarr/DoorHinge/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	db, err := storage.NewDB(os.Getenv("DB_CONNECTION_STRING"))
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	cache := storage.NewCache(os.Getenv("REDIS_URL"), os.Getenv("REDIS_PASSWORD"))

	emitter := services.NewNotificationEmitter(db)
	ledger := services.NewInterestLedger(db, cache, emitter)
	engine := services.NewMatchEngine(db, cache, emitter)
	listings := services.NewListingService(db, cache)
	messages := services.NewMessageService(db, cache, engine, emitter)
	profiles := services.NewProfileService(db)

	propertyHandler := routes.NewPropertyHandler(listings)
	matchHandler := routes.NewMatchHandler(ledger, engine)
	messageHandler := routes.NewMessageHandler(messages)
	notificationHandler := routes.NewNotificationHandler(emitter)
	profileHandler := routes.NewProfileHandler(profiles)

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
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

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	property := app.Party("/api/properties")
	{
		property.Get("/", propertyHandler.List)
		property.Get("/{id:uint}", propertyHandler.Get)
		property.Post("/", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, propertyHandler.Create)
		property.Put("/{id:uint}", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, propertyHandler.Update)
		property.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, propertyHandler.Update)
		property.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, propertyHandler.Delete)
	}

	match := app.Party("/api/matches")
	{
		match.Post("/like", accessTokenVerifierMiddleware, utils.SeekerOnlyMiddleware, matchHandler.Like)
		match.Post("/", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, matchHandler.Create)
		match.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, matchHandler.List)
	}

	message := app.Party("/api/messages")
	{
		message.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, messageHandler.Create)
		message.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, messageHandler.List)
	}

	notification := app.Party("/api/notifications")
	{
		notification.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, notificationHandler.List)
		notification.Post("/{id:uint}/read", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, notificationHandler.MarkRead)
	}

	profile := app.Party("/api/profiles")
	{
		profile.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, profileHandler.Get)
		profile.Put("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, profileHandler.Upsert)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
