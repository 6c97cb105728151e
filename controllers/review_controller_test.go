package controllers_test

import (
	"net/http"
	"testing"

	"github.com/mfranzen/GigSphere/models"
	"github.com/mfranzen/GigSphere/routes"
	"github.com/mfranzen/GigSphere/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewCustomerOnly(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller := utils.CreateTestUser(t, "anna_b", models.RoleBusiness)
	other := utils.CreateTestUser(t, "bernd_b", models.RoleBusiness)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST",
		Path:   "/api/reviews/",
		Token:  utils.GetTestToken(t, other),
		Body:   map[string]interface{}{"business_user_id": seller.ID, "rating": 5},
	})
	utils.AssertStatus(t, resp, http.StatusForbidden)
}

func TestCreateReviewSubjectRules(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	utils.CreateTestUser(t, "anna_b", models.RoleBusiness)
	buyer := utils.CreateTestUser(t, "carl_c", models.RoleCustomer)
	otherCustomer := utils.CreateTestUser(t, "dora_c", models.RoleCustomer)
	token := utils.GetTestToken(t, buyer)

	// Unknown subject.
	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST",
		Path:   "/api/reviews/",
		Token:  token,
		Body:   map[string]interface{}{"business_user_id": 999, "rating": 4},
	})
	utils.AssertStatus(t, resp, http.StatusNotFound)

	// Customers cannot be review subjects.
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST",
		Path:   "/api/reviews/",
		Token:  token,
		Body:   map[string]interface{}{"business_user_id": otherCustomer.ID, "rating": 4},
	})
	utils.AssertStatus(t, resp, http.StatusBadRequest)

	// Rating must stay within bounds.
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST",
		Path:   "/api/reviews/",
		Token:  token,
		Body:   map[string]interface{}{"business_user_id": 1, "rating": 6},
	})
	utils.AssertStatus(t, resp, http.StatusBadRequest)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST",
		Path:   "/api/reviews/",
		Token:  token,
		Body:   map[string]interface{}{"business_user_id": 1, "rating": 4, "description": "Solid delivery"},
	})
	utils.AssertStatus(t, resp, http.StatusCreated)
	data := resp.Body["data"].(map[string]interface{})
	assert.Equal(t, 4.0, data["rating"])
	assert.Equal(t, float64(buyer.ID), data["reviewer_id"])
}

func TestDuplicateReviewConflictPerPair(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller := utils.CreateTestUser(t, "anna_b", models.RoleBusiness)
	buyer := utils.CreateTestUser(t, "carl_c", models.RoleCustomer)
	other := utils.CreateTestUser(t, "dora_c", models.RoleCustomer)

	body := map[string]interface{}{"business_user_id": seller.ID, "rating": 5}

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/reviews/", Token: utils.GetTestToken(t, buyer), Body: body,
	})
	utils.AssertStatus(t, resp, http.StatusCreated)

	// Same reviewer, same subject: conflict.
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/reviews/", Token: utils.GetTestToken(t, buyer), Body: body,
	})
	utils.AssertStatus(t, resp, http.StatusConflict)

	// A different reviewer may still review the same subject.
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/reviews/", Token: utils.GetTestToken(t, other), Body: body,
	})
	utils.AssertStatus(t, resp, http.StatusCreated)
}

func TestDuplicateReviewConflictPerSubject(t *testing.T) {
	utils.SetupTestDB(t)
	t.Setenv("REVIEW_CONFLICT_SCOPE", "subject")
	router := routes.SetupRouter()

	seller := utils.CreateTestUser(t, "anna_b", models.RoleBusiness)
	buyer := utils.CreateTestUser(t, "carl_c", models.RoleCustomer)
	other := utils.CreateTestUser(t, "dora_c", models.RoleCustomer)

	body := map[string]interface{}{"business_user_id": seller.ID, "rating": 5}

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/reviews/", Token: utils.GetTestToken(t, buyer), Body: body,
	})
	utils.AssertStatus(t, resp, http.StatusCreated)

	// Under subject scope no second review is accepted at all.
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/reviews/", Token: utils.GetTestToken(t, other), Body: body,
	})
	utils.AssertStatus(t, resp, http.StatusConflict)
}

func TestGetReviewsFiltersAndOrdering(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller := utils.CreateTestUser(t, "anna_b", models.RoleBusiness)
	seller2 := utils.CreateTestUser(t, "bernd_b", models.RoleBusiness)
	buyer := utils.CreateTestUser(t, "carl_c", models.RoleCustomer)
	other := utils.CreateTestUser(t, "dora_c", models.RoleCustomer)

	createReview := func(reviewer *models.User, subjectID uint, rating int) {
		resp := utils.MakeTestRequest(t, router, utils.TestRequest{
			Method: "POST", Path: "/api/reviews/", Token: utils.GetTestToken(t, reviewer),
			Body: map[string]interface{}{"business_user_id": subjectID, "rating": rating},
		})
		utils.AssertStatus(t, resp, http.StatusCreated)
	}
	createReview(buyer, seller.ID, 2)
	createReview(other, seller.ID, 5)
	createReview(buyer, seller2.ID, 4)

	// Anonymous listing works.
	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET", Path: "/api/reviews/",
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	require.Len(t, resp.Body["data"], 3)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET", Path: "/api/reviews/?business_user_id=1",
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	require.Len(t, resp.Body["data"], 2)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET", Path: "/api/reviews/?reviewer_id=3",
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	require.Len(t, resp.Body["data"], 2)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET", Path: "/api/reviews/?ordering=-rating",
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	items := resp.Body["data"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, 5.0, first["rating"])
}

func TestReviewAuthorOnlyEdits(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller := utils.CreateTestUser(t, "anna_b", models.RoleBusiness)
	buyer := utils.CreateTestUser(t, "carl_c", models.RoleCustomer)
	other := utils.CreateTestUser(t, "dora_c", models.RoleCustomer)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST", Path: "/api/reviews/", Token: utils.GetTestToken(t, buyer),
		Body: map[string]interface{}{"business_user_id": seller.ID, "rating": 3, "description": "Okay"},
	})
	utils.AssertStatus(t, resp, http.StatusCreated)

	// A non-author cannot touch it.
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "PATCH", Path: "/api/reviews/1/", Token: utils.GetTestToken(t, other),
		Body: map[string]interface{}{"rating": 1},
	})
	utils.AssertStatus(t, resp, http.StatusForbidden)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "DELETE", Path: "/api/reviews/1/", Token: utils.GetTestToken(t, other),
	})
	utils.AssertStatus(t, resp, http.StatusForbidden)

	// The author can edit rating and description independently.
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "PATCH", Path: "/api/reviews/1/", Token: utils.GetTestToken(t, buyer),
		Body: map[string]interface{}{"rating": 5},
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	data := resp.Body["data"].(map[string]interface{})
	assert.Equal(t, 5.0, data["rating"])
	assert.Equal(t, "Okay", data["description"])

	// Out-of-range edits are rejected.
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "PATCH", Path: "/api/reviews/1/", Token: utils.GetTestToken(t, buyer),
		Body: map[string]interface{}{"rating": 0},
	})
	utils.AssertStatus(t, resp, http.StatusBadRequest)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "DELETE", Path: "/api/reviews/1/", Token: utils.GetTestToken(t, buyer),
	})
	utils.AssertStatus(t, resp, http.StatusOK)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "DELETE", Path: "/api/reviews/1/", Token: utils.GetTestToken(t, buyer),
	})
	utils.AssertStatus(t, resp, http.StatusNotFound)
}
