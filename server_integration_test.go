package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"aidat/models"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(b)
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	_ = os.Setenv("UPLOAD_BASE", t.TempDir())
	initDB()
	r := gin.Default()
	setupRoutes(r)
	return r
}

func loginAs(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	rec := performRequest(r, "POST", "/login", jsonBody(t, map[string]string{
		"username": username,
		"password": password,
	}), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login %s: no token in %s", username, rec.Body.String())
	}
	return resp.Token
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)
	admin := loginAs(t, r, "admin", "admin123")

	// register a regular member
	username := fmt.Sprintf("uye-%d", time.Now().UnixNano())
	rec := performRequest(r, "POST", "/register", jsonBody(t, map[string]string{
		"username":  username,
		"password":  "parola123",
		"full_name": "Test Üyesi",
	}), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("register: status %d body %s", rec.Code, rec.Body.String())
	}
	member := loginAs(t, r, username, "parola123")

	// the member can see itself
	rec = performRequest(r, "GET", "/me", nil, member)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: status %d body %s", rec.Code, rec.Body.String())
	}
	var me struct {
		ID      uint `json:"id"`
		IsAdmin bool `json:"is_admin"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &me)
	if me.IsAdmin {
		t.Fatal("regular member reported as admin")
	}

	// member cannot create payments
	rec = performRequest(r, "POST", "/payments", jsonBody(t, map[string]any{
		"user_id":       me.ID,
		"amount":        10000,
		"payment_month": "2024-03",
	}), member)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("member payment create: expected 403, got %d", rec.Code)
	}

	// admin records two installments for the same month
	for _, amount := range []int{10000, 5000} {
		rec = performRequest(r, "POST", "/payments", jsonBody(t, map[string]any{
			"user_id":       me.ID,
			"amount":        amount,
			"payment_month": "2024-03",
		}), admin)
		if rec.Code != http.StatusOK {
			t.Fatalf("payment create: status %d body %s", rec.Code, rec.Body.String())
		}
	}

	// month filter finds both rows
	rec = performRequest(r, "GET", fmt.Sprintf("/payments?user_id=%d&month=2024-03", me.ID), nil, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("payments list: status %d body %s", rec.Code, rec.Body.String())
	}
	var listed struct {
		Total int `json:"total"`
		Page  int `json:"page"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &listed)
	if listed.Total != 2 || listed.Page != 1 {
		t.Fatalf("payments list: got total=%d page=%d body %s", listed.Total, listed.Page, rec.Body.String())
	}

	// the matrix shows a single paid cell with both installments
	rec = performRequest(r, "GET", "/dues", nil, member)
	if rec.Code != http.StatusOK {
		t.Fatalf("dues: status %d body %s", rec.Code, rec.Body.String())
	}
	var dues struct {
		TotalPaid int64 `json:"total_paid"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &dues)
	if dues.TotalPaid != 15000 {
		t.Fatalf("dues: expected total_paid 15000, got %d", dues.TotalPaid)
	}

	// an expense and the yearly summary
	rec = performRequest(r, "POST", "/expenses", jsonBody(t, map[string]any{
		"description":  "çay ve şeker",
		"amount":       4000,
		"expense_date": "2024-03-14",
	}), admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("expense create: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = performRequest(r, "GET", "/reports/summary?year=2024", nil, member)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: status %d body %s", rec.Code, rec.Body.String())
	}

	// non-payers for a past year includes the seeded admin profile
	rec = performRequest(r, "GET", "/reports/nonpayers?year=2023", nil, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("nonpayers: status %d body %s", rec.Code, rec.Body.String())
	}

	// password change and re-login
	rec = performRequest(r, "POST", "/change_password", jsonBody(t, map[string]string{
		"new_password": "yeniparola1",
	}), member)
	if rec.Code != http.StatusOK {
		t.Fatalf("change password: status %d body %s", rec.Code, rec.Body.String())
	}
	loginAs(t, r, username, "yeniparola1")
}

func TestRegisterStatuses(t *testing.T) {
	r := setupTestServer(t)
	username := fmt.Sprintf("uye-%d", time.Now().UnixNano())

	// password policy violations are the caller's fault, not a conflict
	rec := performRequest(r, "POST", "/register", jsonBody(t, map[string]string{
		"username": username,
		"password": "kisa",
	}), "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short password: expected 400, got %d body %s", rec.Code, rec.Body.String())
	}

	rec = performRequest(r, "POST", "/register", jsonBody(t, map[string]string{
		"username": username,
		"password": "parola123",
	}), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("register: status %d body %s", rec.Code, rec.Body.String())
	}

	// only a taken username is a conflict
	rec = performRequest(r, "POST", "/register", jsonBody(t, map[string]string{
		"username": username,
		"password": "parola123",
	}), "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate username: expected 409, got %d body %s", rec.Code, rec.Body.String())
	}
}

// uploadReceipt posts a multipart file to /uploads and returns the public
// URL the API hands back.
func uploadReceipt(t *testing.T, r *gin.Engine, token, fileName string, content []byte) string {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req, _ := http.NewRequest("POST", "/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload: status %d body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.URL == "" {
		t.Fatalf("upload: no url in %s", rec.Body.String())
	}
	return resp.URL
}

func TestReceiptUploadLinksToExpense(t *testing.T) {
	r := setupTestServer(t)
	admin := loginAs(t, r, "admin", "admin123")

	// content that is not a decodable image: OCR degrades gracefully and
	// the upload row is still created
	url := uploadReceipt(t, r, admin, "fis.jpg", []byte("not an image"))

	rec := performRequest(r, "POST", "/expenses", jsonBody(t, map[string]any{
		"description":  "çay ve şeker",
		"amount":       4000,
		"expense_date": "2024-03-14",
		"image_url":    url,
	}), admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("expense create: status %d body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	if created.ID == 0 {
		t.Fatalf("expense create: no id in %s", rec.Body.String())
	}

	// creating the expense must have attached the earlier upload to it
	var up models.Upload
	if err := db.Where("store_path = ?", receiptStorePath(url)).First(&up).Error; err != nil {
		t.Fatalf("upload row not found for %s: %v", url, err)
	}
	if up.ExpenseID == nil || *up.ExpenseID != created.ID {
		t.Fatalf("upload not linked: expense_id=%v, want %d", up.ExpenseID, created.ID)
	}
}

func TestAuthRequired(t *testing.T) {
	r := setupTestServer(t)
	for _, path := range []string{"/payments", "/expenses", "/dues", "/reports/summary"} {
		rec := performRequest(r, "GET", path, nil, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s without token: expected 401, got %d", path, rec.Code)
		}
	}
}
