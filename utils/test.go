package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// SetupTestDB points config.DB at a fresh in-memory SQLite database so
// handler tests do not need a provisioned Postgres.
func SetupTestDB(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access test database: %v", err)
	}
	// One connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := config.MigrateDB(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.DB = db
}

// CreateTestUser creates a user with the given role
func CreateTestUser(t *testing.T, username, role string) *models.User {
	hash, err := HashPassword("Sup3rSecret!")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: hash,
		Role:     role,
	}
	if err := config.DB.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestOffer creates an offer with a full tier triple for a business user
func CreateTestOffer(t *testing.T, owner *models.User, title string, basePrice float64) *models.Offer {
	offer := &models.Offer{
		OwnerID:     owner.ID,
		Title:       title,
		Description: "Test offer description",
		Details: []models.OfferDetail{
			{Title: "Basic", OfferType: models.OfferTypeBasic, Price: basePrice, DeliveryTimeInDays: 7, Revisions: 1, Features: []string{"one concept"}},
			{Title: "Standard", OfferType: models.OfferTypeStandard, Price: basePrice * 2, DeliveryTimeInDays: 5, Revisions: 3, Features: []string{"three concepts"}},
			{Title: "Premium", OfferType: models.OfferTypePremium, Price: basePrice * 4, DeliveryTimeInDays: 3, Revisions: 10, Features: []string{"unlimited concepts"}},
		},
	}
	if err := config.DB.Create(offer).Error; err != nil {
		t.Fatalf("Failed to create test offer: %v", err)
	}
	return offer
}

// CreateTestOrder creates an order for a tier, snapshotting the tier fields
func CreateTestOrder(t *testing.T, buyer *models.User, detail *models.OfferDetail, sellerID uint, status string) *models.Order {
	order := &models.Order{
		BuyerID:            buyer.ID,
		SellerID:           sellerID,
		OfferDetailID:      detail.ID,
		Title:              detail.Title,
		OfferType:          detail.OfferType,
		Price:              detail.Price,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Revisions:          detail.Revisions,
		Status:             status,
	}
	if err := config.DB.Create(order).Error; err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	return order
}

// GetTestToken generates a JWT for a test user
func GetTestToken(t *testing.T, user *models.User) string {
	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	return token
}

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method string
	Path   string
	Body   interface{}
	Token  string
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Body       map[string]interface{}
	Raw        []byte
}

// MakeTestRequest makes a test HTTP request
func MakeTestRequest(t *testing.T, router *gin.Engine, req TestRequest) TestResponse {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	var responseBody map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
			// Binary responses (xlsx, pdf) are returned raw.
			responseBody = nil
		}
	}

	return TestResponse{
		StatusCode: w.Code,
		Body:       responseBody,
		Raw:        w.Body.Bytes(),
	}
}

// AssertStatus asserts the response status code
func AssertStatus(t *testing.T, response TestResponse, expected int) {
	assert.Equal(t, expected, response.StatusCode)
}
