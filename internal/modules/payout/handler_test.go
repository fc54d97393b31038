package payout

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func payoutTestRouter(role string) (*gin.Engine, *MockPayoutRepository) {
	gin.SetMode(gin.TestMode)
	repo := new(MockPayoutRepository)
	h := NewHandler(NewService(repo, new(MockBookingReader), nil, nil))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", int64(7))
		c.Set("role", role)
	})
	h.RegisterVendorRoutes(&r.RouterGroup)
	h.RegisterAdminRoutes(&r.RouterGroup)
	return r, repo
}

func TestApplyHandler_ZeroAmountGetsTargetedMessage(t *testing.T) {
	r, repo := payoutTestRouter("vendor")

	req := httptest.NewRequest(http.MethodPost, "/vendor/payouts", strings.NewReader(`{"amount":0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Amount must be positive")
	repo.AssertNotCalled(t, "Apply")
}

func TestDecideHandler_EmptyNoteGetsTargetedMessage(t *testing.T) {
	r, repo := payoutTestRouter("admin")

	body := `{"payout_ids":["5bfa0a05-92f0-4b52-b44f-1fa2a9632ecb"],"status":"approved","admin_notes":""}`
	req := httptest.NewRequest(http.MethodPatch, "/admin/payouts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NOTE_REQUIRED")
	repo.AssertNotCalled(t, "Decide")
}
