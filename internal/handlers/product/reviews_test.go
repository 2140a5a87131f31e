package product

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
)

func deleteReviewRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/api/admin/products/:id/reviews/:reviewId", DeleteReview)
	return r
}

func TestDeleteReview_InvalidProductID(t *testing.T) {
	r := deleteReviewRouter()

	req := httptest.NewRequest(http.MethodDelete,
		"/api/admin/products/not-a-uuid/reviews/"+gocql.TimeUUID().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid product id")
}

func TestDeleteReview_InvalidReviewID(t *testing.T) {
	r := deleteReviewRouter()

	req := httptest.NewRequest(http.MethodDelete,
		"/api/admin/products/"+gocql.TimeUUID().String()+"/reviews/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid review id")
}

// The nested route must populate both path params so the handler gets past
// id parsing and fails only on the missing database.
func TestDeleteReview_RouteCarriesBothIDs(t *testing.T) {
	t.Setenv("SCYLLA_KS_PRODUCTS_KEYSPACE", "")
	r := deleteReviewRouter()

	req := httptest.NewRequest(http.MethodDelete,
		"/api/admin/products/"+gocql.TimeUUID().String()+"/reviews/"+gocql.TimeUUID().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Database connection error")
}
