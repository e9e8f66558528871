package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stridelab/stride-api/middleware"
	"github.com/stridelab/stride-api/models"
	"github.com/stridelab/stride-api/services"
	"github.com/stridelab/stride-api/services/moderation"
	"go.uber.org/zap"
)

func chatRequest(body string, account *models.Account) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(body))
	if account != nil {
		req = req.WithContext(middleware.WithAccount(req.Context(), account))
	}
	return req
}

func TestHandleSendMessageSuccess(t *testing.T) {
	account := testAccount()
	reviewer := &stubReviewer{}
	h := NewChatHandler(reviewer, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleSendMessage(rec, chatRequest(`{"text":"great run today"}`, account))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	message := body["message"].(map[string]interface{})
	assert.Equal(t, account.ID.String(), message["authorId"])
	assert.Equal(t, "great run today", message["text"])
	// Live text always reviews under the realtime policy.
	assert.Equal(t, moderation.PolicyRealtime, reviewer.gotPolicy)
}

func TestHandleSendMessageValidation(t *testing.T) {
	h := NewChatHandler(&stubReviewer{}, zap.NewNop())

	tests := []struct {
		name string
		body string
	}{
		{"missing text", `{}`},
		{"empty text", `{"text":""}`},
		{"over max length", `{"text":"` + strings.Repeat("a", 501) + `"}`},
		{"malformed json", `{"text"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleSendMessage(rec, chatRequest(tt.body, testAccount()))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleSendMessageModerationBlock(t *testing.T) {
	reviewer := &stubReviewer{err: services.NewDomainError(services.ErrorTypeModeration,
		"Content rejected by moderation", nil).WithDetail("reasonCode", "lexical_low")}
	h := NewChatHandler(reviewer, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleSendMessage(rec, chatRequest(`{"text":"damn good run"}`, testAccount()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "lexical_low", body["reasonCode"])
}

func TestHandleSendMessageNoAccount(t *testing.T) {
	h := NewChatHandler(&stubReviewer{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleSendMessage(rec, chatRequest(`{"text":"hi"}`, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
