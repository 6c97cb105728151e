package controllers

import (
	"strconv"

	"github.com/mfranzen/GigSphere/config"
	"github.com/mfranzen/GigSphere/models"
	"github.com/mfranzen/GigSphere/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// offerListFilters holds the parsed query parameters for offer listing
type offerListFilters struct {
	CreatorID       uint
	MinPrice        float64
	MaxDeliveryTime int
	Search          string
	Ordering        string
}

func parseOfferListFilters(c *gin.Context) offerListFilters {
	var f offerListFilters
	if creatorID, err := strconv.ParseUint(c.Query("creator_id"), 10, 32); err == nil {
		f.CreatorID = uint(creatorID)
	}
	if price, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		f.MinPrice = price
	}
	if days, err := strconv.Atoi(c.Query("max_delivery_time")); err == nil {
		f.MaxDeliveryTime = days
	}
	f.Search = c.Query("search")
	f.Ordering = c.DefaultQuery("ordering", "-created_at")
	return f
}

// buildOfferQuery builds the filtered offer query. The derived minimum price
// and delivery time are aggregated over the offer's tiers so the filters and
// ordering run in a single consistent snapshot.
func buildOfferQuery(f offerListFilters) *gorm.DB {
	query := config.DB.Model(&models.Offer{}).
		Joins("LEFT JOIN offer_details ON offer_details.offer_id = offers.id AND offer_details.deleted_at IS NULL").
		Group("offers.id")

	if f.CreatorID > 0 {
		query = query.Where("offers.owner_id = ?", f.CreatorID)
	}
	if f.Search != "" {
		term := "%" + f.Search + "%"
		query = query.Where("LOWER(offers.title) LIKE LOWER(?) OR LOWER(offers.description) LIKE LOWER(?)", term, term)
	}
	if f.MinPrice > 0 {
		query = query.Having("MIN(offer_details.price) >= ?", f.MinPrice)
	}
	if f.MaxDeliveryTime > 0 {
		query = query.Having("MIN(offer_details.delivery_time_in_days) <= ?", f.MaxDeliveryTime)
	}

	return query
}

func offerOrderingClause(ordering string) (string, bool) {
	switch ordering {
	case "min_price":
		return "MIN(offer_details.price) ASC", true
	case "-min_price":
		return "MIN(offer_details.price) DESC", true
	case "updated_at":
		return "offers.updated_at ASC", true
	case "-updated_at":
		return "offers.updated_at DESC", true
	case "created_at":
		return "offers.created_at ASC", true
	case "-created_at", "":
		return "offers.created_at DESC", true
	}
	return "", false
}

// GetOffers handles listing offers with filters, search, ordering and
// pagination. Open to anonymous callers.
func GetOffers(c *gin.Context) {
	utils.LogInfo("GetOffers called with query params: %v", c.Request.URL.Query())

	filters := parseOfferListFilters(c)
	pagination := utils.NewPagination(c)

	orderClause, ok := offerOrderingClause(filters.Ordering)
	if !ok {
		utils.LogError("Invalid ordering requested: %s", filters.Ordering)
		utils.BadRequest(c, "Invalid ordering", gin.H{
			"valid_orderings": []string{"min_price", "-min_price", "updated_at", "-updated_at", "created_at", "-created_at"},
		})
		return
	}

	var total int64
	countQuery := config.DB.Table("(?) AS filtered", buildOfferQuery(filters).Select("offers.id"))
	if err := countQuery.Count(&total).Error; err != nil {
		utils.LogError("Failed to count offers: %v", err)
		utils.InternalServerError(c, "Failed to fetch offers", nil)
		return
	}
	pagination.SetTotal(total)

	var ids []uint
	pageQuery := buildOfferQuery(filters).
		Order(orderClause).
		Limit(pagination.Limit).
		Offset(pagination.Offset)
	if err := pageQuery.Pluck("offers.id", &ids).Error; err != nil {
		utils.LogError("Failed to fetch offer page: %v", err)
		utils.InternalServerError(c, "Failed to fetch offers", nil)
		return
	}

	var offers []models.Offer
	if len(ids) > 0 {
		if err := config.DB.Preload("Details").Preload("Owner").Where("id IN ?", ids).Find(&offers).Error; err != nil {
			utils.LogError("Failed to load offers: %v", err)
			utils.InternalServerError(c, "Failed to fetch offers", nil)
			return
		}
	}

	// Find does not preserve the page ordering; restore it.
	byID := make(map[uint]models.Offer, len(offers))
	for _, o := range offers {
		byID[o.ID] = o
	}
	items := make([]OfferItem, 0, len(ids))
	for _, id := range ids {
		if offer, ok := byID[id]; ok {
			items = append(items, toOfferItem(offer, true))
		}
	}

	utils.LogInfo("Returning %d offers (total %d)", len(items), total)
	utils.SuccessWithPagination(c, "Offers retrieved successfully", items, total, pagination.Page, pagination.Limit)
}
