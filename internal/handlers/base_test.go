package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"worldconnect/internal/middleware"
	"worldconnect/internal/models"

	"github.com/gin-gonic/gin"
)

func TestRenderDataEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RenderData(c, http.StatusOK, gin.H{"hello": "world"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["data"]["hello"] != "world" {
		t.Errorf("unexpected envelope: %v", body)
	}
}

func TestRenderErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RenderError(c, http.StatusBadRequest, "bad input")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "bad input" {
		t.Errorf("unexpected envelope: %v", body)
	}
	if !c.IsAborted() {
		t.Error("RenderError should abort the handler chain")
	}
}

func TestCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if CurrentUser(c) != nil {
		t.Error("expected nil user on a bare context")
	}

	want := &models.User{UID: "u1", FirstName: "Ada"}
	c.Set(middleware.CheckUserKey, want)
	if got := CurrentUser(c); got != want {
		t.Errorf("expected the context user back, got %+v", got)
	}
}
