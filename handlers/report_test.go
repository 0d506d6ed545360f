package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	tgbotapi "gopkg.in/telegram-bot-api.v4"
)

// docSender records the staged file path and whether it existed at send time.
type docSender struct {
	err           error
	path          string
	existedAtSend bool
}

func (d *docSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if doc, ok := c.(tgbotapi.DocumentConfig); ok {
		if path, ok := doc.File.(string); ok {
			d.path = path
			_, statErr := os.Stat(path)
			d.existedAtSend = statErr == nil
		}
	}
	if d.err != nil {
		return tgbotapi.Message{}, d.err
	}
	return tgbotapi.Message{}, nil
}

func newReportRouter(sender Sender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/report", ForwardReport(sender, 100))
	return router
}

func postReport(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestForwardReportRelaysAndCleansUp(t *testing.T) {
	sender := &docSender{}
	router := newReportRouter(sender)

	w := postReport(router, `{"filename":"monthly.txt","content":"گزارش ماهانه"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if filepath.Base(sender.path) != "monthly.txt" {
		t.Errorf("uploaded file = %q, want the requested filename", sender.path)
	}
	if !sender.existedAtSend {
		t.Error("staged file must exist while the relay runs")
	}
	if _, err := os.Stat(sender.path); !os.IsNotExist(err) {
		t.Error("transient copy must be deleted after a successful relay")
	}
}

func TestForwardReportRelayFailureIs502(t *testing.T) {
	sender := &docSender{err: fmt.Errorf("telegram unreachable")}
	router := newReportRouter(sender)

	w := postReport(router, `{"filename":"monthly.txt","content":"x"}`)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
	if _, err := os.Stat(sender.path); !os.IsNotExist(err) {
		t.Error("transient copy must be deleted even when the relay fails")
	}
}

func TestForwardReportWithoutSenderFailsAtFirstUse(t *testing.T) {
	router := newReportRouter(nil)

	w := postReport(router, `{"filename":"monthly.txt","content":"x"}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when telegram auth failed at boot", w.Code)
	}
}

func TestForwardReportMissingFields(t *testing.T) {
	sender := &docSender{}
	router := newReportRouter(sender)

	w := postReport(router, `{"filename":"monthly.txt"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if sender.path != "" {
		t.Error("nothing may be relayed for an incomplete request")
	}
}
