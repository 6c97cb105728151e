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

// marketplace creates a seller with a full offer and a buyer.
func marketplace(t *testing.T) (seller, buyer *models.User, offer *models.Offer) {
	seller = utils.CreateTestUser(t, "anna_b", models.RoleBusiness)
	buyer = utils.CreateTestUser(t, "carl_c", models.RoleCustomer)
	offer = utils.CreateTestOffer(t, seller, "Logo design", 50)
	return seller, buyer, offer
}

func TestCreateOrderCustomerOnly(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller, buyer, offer := marketplace(t)

	// The seller cannot place orders.
	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST",
		Path:   "/api/orders/",
		Token:  utils.GetTestToken(t, seller),
		Body:   map[string]interface{}{"offer_detail_id": offer.Details[0].ID},
	})
	utils.AssertStatus(t, resp, http.StatusForbidden)

	// The customer can, and the order snapshots the tier.
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST",
		Path:   "/api/orders/",
		Token:  utils.GetTestToken(t, buyer),
		Body:   map[string]interface{}{"offer_detail_id": offer.Details[0].ID},
	})
	utils.AssertStatus(t, resp, http.StatusCreated)

	data := resp.Body["data"].(map[string]interface{})
	assert.Equal(t, models.OrderStatusPending, data["status"])
	assert.Equal(t, float64(seller.ID), data["seller_id"])
	assert.Equal(t, float64(buyer.ID), data["buyer_id"])
	assert.Equal(t, 50.0, data["price"])
	assert.Equal(t, "basic", data["offer_type"])
}

func TestCreateOrderUnknownTierNotFound(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	_, buyer, _ := marketplace(t)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "POST",
		Path:   "/api/orders/",
		Token:  utils.GetTestToken(t, buyer),
		Body:   map[string]interface{}{"offer_detail_id": 999},
	})
	utils.AssertStatus(t, resp, http.StatusNotFound)
}

func TestOrderSnapshotSurvivesTierEdit(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller, buyer, offer := marketplace(t)
	order := utils.CreateTestOrder(t, buyer, &offer.Details[0], seller.ID, models.OrderStatusPending)
	require.Equal(t, 50.0, order.Price)

	// Owner raises the tier price after the order exists.
	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "PATCH",
		Path:   "/api/offers/1/",
		Token:  utils.GetTestToken(t, seller),
		Body: map[string]interface{}{
			"details": []map[string]interface{}{
				{"title": "Basic", "offer_type": "basic", "price": 999.0, "delivery_time_in_days": 7, "revisions": 1},
			},
		},
	})
	utils.AssertStatus(t, resp, http.StatusOK)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET",
		Path:   "/api/orders/1/",
		Token:  utils.GetTestToken(t, buyer),
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	data := resp.Body["data"].(map[string]interface{})
	assert.Equal(t, 50.0, data["price"])
}

func TestOrderAccessPartyOnly(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller, buyer, offer := marketplace(t)
	stranger := utils.CreateTestUser(t, "dora_c", models.RoleCustomer)
	utils.CreateTestOrder(t, buyer, &offer.Details[0], seller.ID, models.OrderStatusPending)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET",
		Path:   "/api/orders/1/",
		Token:  utils.GetTestToken(t, stranger),
	})
	utils.AssertStatus(t, resp, http.StatusForbidden)

	for _, u := range []*models.User{seller, buyer} {
		resp = utils.MakeTestRequest(t, router, utils.TestRequest{
			Method: "GET",
			Path:   "/api/orders/1/",
			Token:  utils.GetTestToken(t, u),
		})
		utils.AssertStatus(t, resp, http.StatusOK)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller, buyer, offer := marketplace(t)
	utils.CreateTestOrder(t, buyer, &offer.Details[0], seller.ID, models.OrderStatusPending)

	patchStatus := func(token, status string) utils.TestResponse {
		return utils.MakeTestRequest(t, router, utils.TestRequest{
			Method: "PATCH",
			Path:   "/api/orders/1/",
			Token:  token,
			Body:   map[string]interface{}{"status": status},
		})
	}

	sellerToken := utils.GetTestToken(t, seller)
	buyerToken := utils.GetTestToken(t, buyer)

	// Skipping a state is rejected.
	resp := patchStatus(sellerToken, models.OrderStatusCompleted)
	utils.AssertStatus(t, resp, http.StatusBadRequest)

	// The buyer may not advance the order.
	resp = patchStatus(buyerToken, models.OrderStatusInProgress)
	utils.AssertStatus(t, resp, http.StatusForbidden)

	// The seller advances step by step.
	resp = patchStatus(sellerToken, models.OrderStatusInProgress)
	utils.AssertStatus(t, resp, http.StatusOK)
	resp = patchStatus(sellerToken, models.OrderStatusCompleted)
	utils.AssertStatus(t, resp, http.StatusOK)

	// Completed is terminal.
	resp = patchStatus(sellerToken, models.OrderStatusCancelled)
	utils.AssertStatus(t, resp, http.StatusBadRequest)
}

func TestBuyerMayCancelActiveOrder(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller, buyer, offer := marketplace(t)
	utils.CreateTestOrder(t, buyer, &offer.Details[0], seller.ID, models.OrderStatusInProgress)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "PATCH",
		Path:   "/api/orders/1/",
		Token:  utils.GetTestToken(t, buyer),
		Body:   map[string]interface{}{"status": models.OrderStatusCancelled},
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	data := resp.Body["data"].(map[string]interface{})
	assert.Equal(t, models.OrderStatusCancelled, data["status"])
}

func TestDeleteOrderTerminalOnly(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller, buyer, offer := marketplace(t)
	utils.CreateTestOrder(t, buyer, &offer.Details[0], seller.ID, models.OrderStatusInProgress)
	utils.CreateTestOrder(t, buyer, &offer.Details[1], seller.ID, models.OrderStatusCompleted)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "DELETE",
		Path:   "/api/orders/1/",
		Token:  utils.GetTestToken(t, buyer),
	})
	utils.AssertStatus(t, resp, http.StatusBadRequest)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "DELETE",
		Path:   "/api/orders/2/",
		Token:  utils.GetTestToken(t, buyer),
	})
	utils.AssertStatus(t, resp, http.StatusOK)
}

func TestOrderCounts(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller, buyer, offer := marketplace(t)
	utils.CreateTestOrder(t, buyer, &offer.Details[0], seller.ID, models.OrderStatusInProgress)
	utils.CreateTestOrder(t, buyer, &offer.Details[1], seller.ID, models.OrderStatusInProgress)
	utils.CreateTestOrder(t, buyer, &offer.Details[2], seller.ID, models.OrderStatusCompleted)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET",
		Path:   "/api/order-count/1/",
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	data := resp.Body["data"].(map[string]interface{})
	assert.Equal(t, 2.0, data["order_count"])

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET",
		Path:   "/api/completed-order-count/1/",
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	data = resp.Body["data"].(map[string]interface{})
	assert.Equal(t, 1.0, data["completed_order_count"])

	// Counting against a customer account is a not-found.
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET",
		Path:   "/api/order-count/2/",
	})
	utils.AssertStatus(t, resp, http.StatusNotFound)
}

func TestListOrdersScopedToParties(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller, buyer, offer := marketplace(t)
	stranger := utils.CreateTestUser(t, "dora_c", models.RoleCustomer)
	utils.CreateTestOrder(t, buyer, &offer.Details[0], seller.ID, models.OrderStatusPending)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET",
		Path:   "/api/orders/",
		Token:  utils.GetTestToken(t, buyer),
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	require.Len(t, resp.Body["data"], 1)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET",
		Path:   "/api/orders/",
		Token:  utils.GetTestToken(t, stranger),
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	require.Len(t, resp.Body["data"], 0)
}

func TestExportOrdersSellerOnly(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller, buyer, offer := marketplace(t)
	utils.CreateTestOrder(t, buyer, &offer.Details[0], seller.ID, models.OrderStatusCompleted)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET",
		Path:   "/api/orders/export/",
		Token:  utils.GetTestToken(t, buyer),
	})
	utils.AssertStatus(t, resp, http.StatusForbidden)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET",
		Path:   "/api/orders/export/",
		Token:  utils.GetTestToken(t, seller),
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	assert.NotEmpty(t, resp.Raw)
}

func TestInvoiceCompletedOrdersOnly(t *testing.T) {
	utils.SetupTestDB(t)
	router := routes.SetupRouter()

	seller, buyer, offer := marketplace(t)
	utils.CreateTestOrder(t, buyer, &offer.Details[0], seller.ID, models.OrderStatusPending)
	utils.CreateTestOrder(t, buyer, &offer.Details[1], seller.ID, models.OrderStatusCompleted)

	resp := utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET",
		Path:   "/api/orders/1/invoice/",
		Token:  utils.GetTestToken(t, buyer),
	})
	utils.AssertStatus(t, resp, http.StatusBadRequest)

	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET",
		Path:   "/api/orders/2/invoice/",
		Token:  utils.GetTestToken(t, buyer),
	})
	utils.AssertStatus(t, resp, http.StatusOK)
	assert.NotEmpty(t, resp.Raw)

	// A third party gets no invoice.
	stranger := utils.CreateTestUser(t, "dora_c", models.RoleCustomer)
	resp = utils.MakeTestRequest(t, router, utils.TestRequest{
		Method: "GET",
		Path:   "/api/orders/2/invoice/",
		Token:  utils.GetTestToken(t, stranger),
	})
	utils.AssertStatus(t, resp, http.StatusForbidden)
}
