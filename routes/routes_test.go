package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/saroopcarr/DoorHinge/models"
	"github.com/saroopcarr/DoorHinge/services"
	"github.com/saroopcarr/DoorHinge/storage"
	"github.com/saroopcarr/DoorHinge/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var routesDBSeq int64

// buildTestApp wires the full router against an in-memory database and the
// in-process cache, mirroring main.go.
func buildTestApp(t *testing.T) (*iris.Application, *gorm.DB) {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	dsn := fmt.Sprintf("file:routesdb%d?mode=memory&cache=shared", atomic.AddInt64(&routesDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	cache := storage.NewMemoryCache()

	emitter := services.NewNotificationEmitter(db)
	ledger := services.NewInterestLedger(db, cache, emitter)
	engine := services.NewMatchEngine(db, cache, emitter)
	listings := services.NewListingService(db, cache)
	messages := services.NewMessageService(db, cache, engine, emitter)
	profiles := services.NewProfileService(db)

	propertyHandler := NewPropertyHandler(listings)
	matchHandler := NewMatchHandler(ledger, engine)
	messageHandler := NewMessageHandler(messages)
	notificationHandler := NewNotificationHandler(emitter)
	profileHandler := NewProfileHandler(profiles)

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
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

	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}

	return app, db
}

func signTestToken(id uint, role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: id, Role: role})
	return string(token)
}

func doJSON(t *testing.T, app *iris.Application, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := models.User{Email: email, Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func TestPropertyRBAC(t *testing.T) {
	app, db := buildTestApp(t)
	owner := seedUser(t, db, "owner@test.com", models.RoleOwner)
	seeker := seedUser(t, db, "seeker@test.com", models.RoleSeeker)

	input := iris.Map{
		"title":           "Two bed with balcony",
		"description":     "Well lit flat on the third floor",
		"area":            "HSR Layout",
		"bedrooms":        "TWO",
		"furnishedStatus": "FURNISHED",
		"rentAmount":      32000,
	}

	// No token.
	resp := doJSON(t, app, http.MethodPost, "/api/properties", "", input)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	// Seekers cannot create properties.
	resp = doJSON(t, app, http.MethodPost, "/api/properties", signTestToken(seeker.ID, models.RoleSeeker), input)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for seeker, got %d", resp.Code)
	}

	// Owner without a profile is told to complete it first.
	ownerToken := signTestToken(owner.ID, models.RoleOwner)
	resp = doJSON(t, app, http.MethodPost, "/api/properties", ownerToken, input)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without owner profile, got %d", resp.Code)
	}

	resp = doJSON(t, app, http.MethodPut, "/api/profiles", ownerToken, iris.Map{"businessName": "Test Lettings"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 creating profile, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, app, http.MethodPost, "/api/properties", ownerToken, input)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating property, got %d: %s", resp.Code, resp.Body.String())
	}

	// Validation failures surface per field.
	resp = doJSON(t, app, http.MethodPost, "/api/properties", ownerToken, iris.Map{"title": "x"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid input, got %d", resp.Code)
	}

	// The new listing is publicly visible.
	resp = doJSON(t, app, http.MethodGet, "/api/properties?area=hsr", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 listing properties, got %d", resp.Code)
	}
	var listing struct {
		Properties []models.Property `json:"properties"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if listing.Pagination.Total != 1 || len(listing.Properties) != 1 {
		t.Fatalf("expected one property, got %+v", listing)
	}
}

func TestListPaginationEnvelopeClamped(t *testing.T) {
	app, db := buildTestApp(t)
	owner := seedUser(t, db, "owner@test.com", models.RoleOwner)
	ownerProfile := models.OwnerProfile{UserID: owner.ID, IsProfileComplete: true}
	if err := db.Create(&ownerProfile).Error; err != nil {
		t.Fatalf("seed owner profile: %v", err)
	}
	active := true
	for i := 0; i < 3; i++ {
		property := models.Property{
			OwnerID:         ownerProfile.ID,
			Title:           "Two bed with balcony",
			Area:            "HSR Layout",
			Bedrooms:        models.BedroomsTwo,
			FurnishedStatus: models.Furnished,
			RentAmount:      30000 + i,
			IsActive:        &active,
		}
		if err := db.Create(&property).Error; err != nil {
			t.Fatalf("seed property: %v", err)
		}
	}

	// Out-of-range values are clamped before they reach the envelope, so
	// the reported page and limit are the ones actually served.
	resp := doJSON(t, app, http.MethodGet, "/api/properties?page=-5&limit=10000", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var listing struct {
		Properties []models.Property `json:"properties"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
			Pages int   `json:"pages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if listing.Pagination.Page != 1 || listing.Pagination.Limit != services.ListingMaxPageSize {
		t.Fatalf("expected clamped envelope page=1 limit=%d, got %+v", services.ListingMaxPageSize, listing.Pagination)
	}
	if listing.Pagination.Total != 3 || listing.Pagination.Pages != 1 || len(listing.Properties) != 3 {
		t.Fatalf("unexpected listing: %+v", listing.Pagination)
	}
}

func TestLikeMatchMessageFlow(t *testing.T) {
	app, db := buildTestApp(t)
	owner := seedUser(t, db, "owner@test.com", models.RoleOwner)
	seeker := seedUser(t, db, "seeker@test.com", models.RoleSeeker)
	ownerToken := signTestToken(owner.ID, models.RoleOwner)
	seekerToken := signTestToken(seeker.ID, models.RoleSeeker)

	ownerProfile := models.OwnerProfile{UserID: owner.ID, IsProfileComplete: true}
	if err := db.Create(&ownerProfile).Error; err != nil {
		t.Fatalf("seed owner profile: %v", err)
	}
	active := true
	property := models.Property{
		OwnerID:         ownerProfile.ID,
		Title:           "Two bed with balcony",
		Area:            "HSR Layout",
		Bedrooms:        models.BedroomsTwo,
		FurnishedStatus: models.Furnished,
		RentAmount:      32000,
		IsActive:        &active,
	}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("seed property: %v", err)
	}

	// Owners cannot like.
	resp := doJSON(t, app, http.MethodPost, "/api/matches/like", ownerToken, iris.Map{"propertyId": property.ID})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for owner like, got %d", resp.Code)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/matches/like", seekerToken, iris.Map{"propertyId": property.ID})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for like, got %d: %s", resp.Code, resp.Body.String())
	}

	// Second like is a conflict.
	resp = doJSON(t, app, http.MethodPost, "/api/matches/like", seekerToken, iris.Map{"propertyId": property.ID})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate like, got %d", resp.Code)
	}

	// Seekers cannot create matches.
	createInput := iris.Map{"propertyId": property.ID, "seekerId": seeker.ID}
	resp = doJSON(t, app, http.MethodPost, "/api/matches", seekerToken, createInput)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for seeker match create, got %d", resp.Code)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/matches", ownerToken, createInput)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for match create, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		Match models.Match `json:"match"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode match: %v", err)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/matches", ownerToken, createInput)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate match, got %d", resp.Code)
	}

	// Both parties can message; the thread lists in order.
	resp = doJSON(t, app, http.MethodPost, "/api/messages", seekerToken, iris.Map{
		"matchId": created.Match.ID,
		"content": "Is this still available?",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for message, got %d: %s", resp.Code, resp.Body.String())
	}

	path := fmt.Sprintf("/api/messages?matchId=%d", created.Match.ID)
	resp = doJSON(t, app, http.MethodGet, path, ownerToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 listing messages, got %d", resp.Code)
	}
	var thread struct {
		Messages []models.Message `json:"messages"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &thread); err != nil {
		t.Fatalf("decode messages: %v", err)
	}
	if len(thread.Messages) != 1 || thread.Messages[0].Content != "Is this still available?" {
		t.Fatalf("unexpected thread: %+v", thread.Messages)
	}

	// Match lists include the preview for both parties.
	resp = doJSON(t, app, http.MethodGet, "/api/matches", seekerToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 listing matches, got %d", resp.Code)
	}
	var matches struct {
		Matches []models.Match `json:"matches"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &matches); err != nil {
		t.Fatalf("decode matches: %v", err)
	}
	if len(matches.Matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches.Matches))
	}
}

func TestNotificationEndpoints(t *testing.T) {
	app, db := buildTestApp(t)
	seeker := seedUser(t, db, "seeker@test.com", models.RoleSeeker)
	other := seedUser(t, db, "other@test.com", models.RoleSeeker)
	token := signTestToken(seeker.ID, models.RoleSeeker)

	notification := models.Notification{UserID: seeker.ID, Kind: models.NotificationNewMatch, Message: "You matched!"}
	if err := db.Create(&notification).Error; err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/notifications", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 listing notifications, got %d", resp.Code)
	}

	// Another user cannot flip someone else's read flag.
	path := fmt.Sprintf("/api/notifications/%d/read", notification.ID)
	resp = doJSON(t, app, http.MethodPost, path, signTestToken(other.ID, models.RoleSeeker), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign notification, got %d", resp.Code)
	}

	resp = doJSON(t, app, http.MethodPost, path, token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 marking read, got %d: %s", resp.Code, resp.Body.String())
	}

	var fresh models.Notification
	if err := db.First(&fresh, notification.ID).Error; err != nil {
		t.Fatalf("reload notification: %v", err)
	}
	if !fresh.Read {
		t.Fatalf("expected notification to be read")
	}
}
