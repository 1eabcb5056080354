package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// A malformed count is rejected up front whether or not a category is
// given; the uncategorized form is a sampling request too, not a plain
// listing.
func TestListQuestionsRejectsMalformedCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewQuestionHandler(nil, nil)
	r := gin.New()
	r.GET("/questions", h.ListQuestions)

	for _, target := range []string{
		"/questions?count=abc",
		"/questions?category=000000000000000000000001&count=abc",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", target, w.Code, http.StatusBadRequest)
		}
	}
}
