package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	tgbotapi "gopkg.in/telegram-bot-api.v4"
)

type fakeUpdateHandler struct {
	err     error
	handled int
}

func (f *fakeUpdateHandler) HandleUpdate(_ context.Context, _ tgbotapi.Update) error {
	f.handled++
	return f.err
}

func newWebhookRouter(h UpdateHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/webhook", Webhook(h))
	return router
}

func TestWebhookMalformedPayload(t *testing.T) {
	handler := &fakeUpdateHandler{}
	router := newWebhookRouter(handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if handler.handled != 0 {
		t.Error("a malformed payload must not be dispatched")
	}
}

func TestWebhookAcknowledgesDispatch(t *testing.T) {
	handler := &fakeUpdateHandler{}
	router := newWebhookRouter(handler)

	body := `{"update_id":1,"message":{"message_id":2,"chat":{"id":100},"from":{"id":42},"text":"سلام"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("body = %q, want plain ok", w.Body.String())
	}
	if handler.handled != 1 {
		t.Errorf("dispatched = %d, want 1", handler.handled)
	}
}

func TestWebhookDeliveryFailureIs500(t *testing.T) {
	handler := &fakeUpdateHandler{err: fmt.Errorf("telegram unreachable")}
	router := newWebhookRouter(handler)

	body := `{"update_id":1,"message":{"message_id":2,"chat":{"id":100},"from":{"id":42},"text":"x"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
