package shipping

import (
	"net/http"
	"strconv"

	"jungleetoys_back_end/internal/shipping"

	"github.com/gin-gonic/gin"
)

// GetRates is the shared handler behind the three provider rate
// endpoints. Only the fetcher differs per route; the filter, markup,
// fallback and sort stages are the one pipeline in internal/shipping.
//
// The response is always HTTP 200: upstream failures degrade to the
// fallback quote and are reported in the debug field, so checkout can
// always proceed with some shipping price.
func GetRates(fetcher shipping.RateFetcher, carriers shipping.CarrierTable) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ToAddress shipping.Address `json:"to_address" binding:"required"`
			Weight    string           `json:"weight"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		weight := shipping.DefaultWeightKg
		if w, err := strconv.ParseFloat(req.Weight, 64); err == nil && w > 0 {
			weight = w
		}

		raw, fetchErr := fetcher.FetchRates(c.Request.Context(), shipping.WarehouseAddress(), req.ToAddress, weight)
		quotes, debug := shipping.BuildQuotes(carriers, fetcher.Name(), raw, fetchErr)

		c.JSON(http.StatusOK, gin.H{
			"rates": quotes,
			"debug": debug,
		})
	}
}
