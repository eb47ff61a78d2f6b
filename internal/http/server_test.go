package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"schoolsite-backend-go/internal/config"
	"schoolsite-backend-go/internal/services"
	"schoolsite-backend-go/internal/storage"
	"schoolsite-backend-go/internal/testutil"
)

const testPassword = "admin123"

type testResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
	Errors     []FieldError    `json:"errors"`
}

type harness struct {
	srv     *Server
	handler http.Handler
	db      *sqlx.DB

	adminID    int64
	superID    int64
	editorID   int64
	inactiveID int64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewDB(t)
	testutil.SeedRoles(t, db)

	// bcrypt keeps fixtures fast; VerifyPassword accepts both formats.
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	store, err := storage.NewLocalDisk(t.TempDir())
	require.NoError(t, err)

	cfg := config.Config{
		JWTSecret:       "test-jwt-secret",
		JWTIssuer:       "schoolsite",
		TokenTTL:        time.Hour,
		RateLimitWindow: time.Minute,
		RateLimitMax:    10000,
		Upload:          config.UploadConfig{Backend: "local", MaxBytes: 1 << 20},
	}
	srv := NewServer(db, cfg, store)
	return &harness{
		srv:        srv,
		handler:    srv.Router(),
		db:         db,
		adminID:    testutil.InsertAccount(t, db, "admin", string(hash), testutil.Int64(1), true),
		superID:    testutil.InsertAccount(t, db, "root", string(hash), testutil.Int64(2), true),
		editorID:   testutil.InsertAccount(t, db, "editor", string(hash), testutil.Int64(3), true),
		inactiveID: testutil.InsertAccount(t, db, "dormant", string(hash), testutil.Int64(1), false),
	}
}

func (h *harness) token(t *testing.T, id int64, role string) string {
	t.Helper()
	token, _, err := h.srv.Tokens.Issue(id, role)
	require.NoError(t, err)
	return token
}

func (h *harness) send(t *testing.T, req *http.Request, token string) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	var body testResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec, body
}

func (h *harness) do(t *testing.T, method, path, token string, payload interface{}) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return h.send(t, req, token)
}

func decodeData(t *testing.T, body testResponse, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body.Data, dst))
}

func TestLogin(t *testing.T) {
	h := newHarness(t)

	rec, body := h.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin", "password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, body.Success)
	assert.Equal(t, "Login successful", body.Message)
	assert.NotContains(t, rec.Body.String(), "password_hash")

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID        int64      `json:"id"`
			Role      string     `json:"role"`
			LastLogin *time.Time `json:"last_login"`
		} `json:"user"`
	}
	decodeData(t, body, &data)
	assert.Equal(t, h.adminID, data.User.ID)
	assert.Equal(t, "admin", data.User.Role)
	assert.NotNil(t, data.User.LastLogin)

	verified, err := h.srv.Tokens.Verify(data.Token)
	require.NoError(t, err)
	assert.Equal(t, h.adminID, verified.AccountID)

	rec, body = h.do(t, http.MethodGet, "/api/auth/me", data.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
}

func TestLogin_Failures(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name    string
		payload map[string]string
		status  int
		message string
	}{
		{name: "wrong password", payload: map[string]string{"username": "admin", "password": "nope"},
			status: http.StatusUnauthorized, message: "Invalid username or password"},
		{name: "unknown user", payload: map[string]string{"username": "ghost", "password": testPassword},
			status: http.StatusUnauthorized, message: "Invalid username or password"},
		{name: "inactive", payload: map[string]string{"username": "dormant", "password": testPassword},
			status: http.StatusForbidden, message: "User account is inactive"},
		{name: "missing password", payload: map[string]string{"username": "admin"},
			status: http.StatusBadRequest, message: "Validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := h.do(t, http.MethodPost, "/api/auth/login", "", tt.payload)
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}

	account, err := h.srv.Accounts.Get(context.Background(), h.adminID)
	require.NoError(t, err)
	assert.Nil(t, account.LastLogin)
}

func TestGuard(t *testing.T) {
	h := newHarness(t)

	expiredIssuer := h.srv.Tokens
	expiredIssuer.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiredIssuer.Issue(h.adminID, "admin")
	require.NoError(t, err)

	deletedID := testutil.InsertAccount(t, h.db, "gone", "x", testutil.Int64(1), true)
	require.NoError(t, h.srv.Accounts.SoftDelete(context.Background(), deletedID))

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{name: "no header", status: http.StatusUnauthorized, message: "No token provided"},
		{name: "wrong scheme", header: "Basic YWRtaW46YWRtaW4=", status: http.StatusUnauthorized, message: "No token provided"},
		{name: "garbage", header: "Bearer garbage", status: http.StatusUnauthorized, message: "Invalid token"},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized, message: "Token expired"},
		{name: "deleted account", header: "Bearer " + h.token(t, deletedID, "admin"), status: http.StatusNotFound, message: "User not found"},
		{name: "inactive account", header: "Bearer " + h.token(t, h.inactiveID, "admin"), status: http.StatusForbidden, message: "User account is inactive"},
		{name: "valid", header: "Bearer " + h.token(t, h.editorID, "editor"), status: http.StatusOK, message: "User retrieved successfully"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec, body := h.send(t, req, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestAuthorize_UsesStoredRole(t *testing.T) {
	h := newHarness(t)

	// The claim says admin but the stored role is editor.
	forged := h.token(t, h.editorID, "admin")
	rec, body := h.do(t, http.MethodGet, "/api/users", forged, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied. Insufficient permissions.", body.Message)

	for _, id := range []int64{h.adminID, h.superID} {
		rec, body = h.do(t, http.MethodGet, "/api/users", h.token(t, id, ""), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, body.Pagination)
		assert.Equal(t, 4, body.Pagination.Total)
	}

	// Demotion takes effect without a new token.
	adminToken := h.token(t, h.adminID, "admin")
	_, err := h.srv.Accounts.Update(context.Background(), h.adminID, services.AccountUpdate{RoleID: testutil.Int64(4)})
	require.NoError(t, err)
	rec, _ = h.do(t, http.MethodGet, "/api/users", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthorize_WithoutIdentity(t *testing.T) {
	t.Parallel()
	handler := Authorize(services.AdminRoles...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Authentication required"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{ID: 1, Role: services.RoleSuperAdmin}))
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPosts_OptionalAuthHidesDrafts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	draft, err := h.srv.Posts.Create(ctx, services.PostInput{Title: "Draft", Content: "d"})
	require.NoError(t, err)
	_, err = h.srv.Posts.Create(ctx, services.PostInput{Title: "Published", Content: "p", Status: "published"})
	require.NoError(t, err)

	expiredIssuer := h.srv.Tokens
	expiredIssuer.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiredIssuer.Issue(h.adminID, "admin")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		total int
	}{
		{name: "anonymous", total: 1},
		{name: "expired token", token: expired, total: 1},
		{name: "editor", token: h.token(t, h.editorID, "editor"), total: 1},
		{name: "admin", token: h.token(t, h.adminID, "admin"), total: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := h.do(t, http.MethodGet, "/api/posts", tt.token, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			require.NotNil(t, body.Pagination)
			assert.Equal(t, tt.total, body.Pagination.Total)
		})
	}

	rec, body := h.do(t, http.MethodGet, "/api/posts/slug/"+draft.Slug, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", body.Message)

	rec, _ = h.do(t, http.MethodGet, "/api/posts/slug/"+draft.Slug, h.token(t, h.adminID, "admin"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	h := newHarness(t)

	rec, body := h.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Route GET /api/nope not found", body.Message)
}

func TestStudents_PaginationEnvelope(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		_, err := h.srv.Students.Create(ctx, services.StudentInput{
			Name: "Siswa " + string(rune('A'+i)), ClassName: "XI-IPA", Gender: services.GenderFemale,
		})
		require.NoError(t, err)
	}

	rec, body := h.do(t, http.MethodGet, "/api/students?page=3&limit=10", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, Pagination{Page: 3, Limit: 10, Total: 25, TotalPages: 3}, *body.Pagination)
	var items []map[string]interface{}
	decodeData(t, body, &items)
	assert.Len(t, items, 5)

	rec, body = h.do(t, http.MethodGet, "/api/students?class=XII", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 0, TotalPages: 0}, *body.Pagination)
	assert.JSONEq(t, `[]`, string(body.Data))

	rec, body = h.do(t, http.MethodGet, "/api/students?page=9223372036854775807", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 25, body.Pagination.Total)
	assert.Positive(t, body.Pagination.Page)
	assert.JSONEq(t, `[]`, string(body.Data))
}

func TestStudents_CreateValidation(t *testing.T) {
	h := newHarness(t)
	admin := h.token(t, h.adminID, "admin")

	rec, body := h.do(t, http.MethodPost, "/api/students", admin, map[string]interface{}{
		"name": "Rina", "class": "X-A", "gender": "X", "score_uts": 120,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", body.Message)
	assert.ElementsMatch(t, []FieldError{
		{Field: "gender", Message: "gender must be one of: L, P"},
		{Field: "score_uts", Message: "score_uts must be at most 100"},
	}, body.Errors)

	rec, body = h.do(t, http.MethodPost, "/api/students", admin, map[string]interface{}{
		"name": "Rina", "class": "X-A", "gender": "P", "nisn": "0099",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Student created successfully", body.Message)

	rec, body = h.do(t, http.MethodPost, "/api/students", admin, map[string]interface{}{
		"name": "Rini", "class": "X-A", "gender": "P", "nisn": "0099",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "NISN already exists", body.Message)

	rec, body = h.do(t, http.MethodPost, "/api/students", h.token(t, h.editorID, "editor"), map[string]interface{}{
		"name": "Rina", "class": "X-A", "gender": "P",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied. Insufficient permissions.", body.Message)
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, file string, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	if file != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+file+`"; filename="upload.bin"`)
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestTeachers_LifecycleWithPhoto(t *testing.T) {
	h := newHarness(t)
	admin := h.token(t, h.adminID, "admin")

	req := multipartRequest(t, http.MethodPost, "/api/teachers",
		map[string]string{"name": "Pak Budi", "nip": "1977", "join_date": "2020-07-01"},
		"photo", "image/png", []byte("png-bytes"))
	rec, body := h.send(t, req, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var teacher struct {
		ID       int64   `json:"id"`
		UserID   *int64  `json:"user_id"`
		Username *string `json:"username"`
		Photo    *string `json:"photo"`
	}
	decodeData(t, body, &teacher)
	require.NotNil(t, teacher.Photo)
	require.NotNil(t, teacher.UserID)
	assert.Equal(t, h.adminID, *teacher.UserID)
	require.NotNil(t, teacher.Username)
	assert.Equal(t, "admin", *teacher.Username)

	rec, _ = h.send(t, httptest.NewRequest(http.MethodGet, *teacher.Photo, nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())

	path := "/api/teachers/" + strconv.FormatInt(teacher.ID, 10)
	rec, body = h.do(t, http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Teacher deleted successfully", body.Message)

	rec, body = h.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Teacher not found", body.Message)

	rec, body = h.do(t, http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Teacher not found", body.Message)

	rec, body = h.do(t, http.MethodGet, "/api/teachers/deleted", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, body.Pagination.Total)

	rec, _ = h.do(t, http.MethodPost, path+"/restore", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = h.do(t, http.MethodPost, path+"/restore", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Teacher not found in deleted list", body.Message)

	rec, body = h.do(t, http.MethodGet, "/api/teachers/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID", body.Message)
}

func TestTeachers_RejectsUploadType(t *testing.T) {
	h := newHarness(t)

	req := multipartRequest(t, http.MethodPost, "/api/teachers",
		map[string]string{"name": "Bu Ani"}, "photo", "text/plain", []byte("hello"))
	rec, body := h.send(t, req, h.token(t, h.adminID, "admin"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid file type. Only JPEG, PNG and MP4 are allowed.", body.Message)

	_, total, err := h.srv.Teachers.List(context.Background(), services.NewPage(1, 10), "")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDeleteUser_Self(t *testing.T) {
	h := newHarness(t)
	admin := h.token(t, h.adminID, "admin")

	rec, body := h.do(t, http.MethodDelete, "/api/users/"+strconv.FormatInt(h.adminID, 10), admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You cannot delete your own account", body.Message)

	rec, _ = h.do(t, http.MethodDelete, "/api/users/"+strconv.FormatInt(h.editorID, 10), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = h.do(t, http.MethodGet, "/api/auth/me", h.token(t, h.editorID, "editor"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", body.Message)

	rec, _ = h.do(t, http.MethodPost, "/api/users/"+strconv.FormatInt(h.editorID, 10)+"/restore", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = h.do(t, http.MethodGet, "/api/auth/me", h.token(t, h.editorID, "editor"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	rec, body := h.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	var sample services.HealthSample
	decodeData(t, body, &sample)
	assert.Equal(t, "ok", sample.Database)
}


func TestProfile_Upsert(t *testing.T) {
	h := newHarness(t)
	admin := h.token(t, h.adminID, "admin")

	rec, body := h.do(t, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Profile not found", body.Message)

	req := multipartRequest(t, http.MethodPost, "/api/profile",
		map[string]string{"npsn": "20100001", "email": ""}, "", "", nil)
	rec, body = h.send(t, req, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "School name is required", body.Message)

	req = multipartRequest(t, http.MethodPost, "/api/profile",
		map[string]string{"school_name": "SMA Negeri 1", "npsn": "20100001"}, "logo", "image/jpeg", []byte("jpeg"))
	rec, body = h.send(t, req, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Profile created successfully", body.Message)

	req = multipartRequest(t, http.MethodPost, "/api/profile",
		map[string]string{"accreditation": "A"}, "", "", nil)
	rec, body = h.send(t, req, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var profile struct {
		SchoolName    string  `json:"school_name"`
		NPSN          *string `json:"npsn"`
		Accreditation *string `json:"accreditation"`
		Logo          *string `json:"logo"`
	}
	decodeData(t, body, &profile)
	assert.Equal(t, "SMA Negeri 1", profile.SchoolName)
	require.NotNil(t, profile.NPSN)
	assert.Equal(t, "20100001", *profile.NPSN)
	require.NotNil(t, profile.Accreditation)
	assert.Equal(t, "A", *profile.Accreditation)
	require.NotNil(t, profile.Logo)
	assert.Contains(t, *profile.Logo, "/uploads/profile/")

	req = multipartRequest(t, http.MethodPost, "/api/profile",
		map[string]string{"school_name": "x"}, "", "", nil)
	rec, _ = h.send(t, req, h.token(t, h.editorID, "editor"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	h := newHarness(t)
	h.srv.Config.RateLimitMax = 2
	handler := h.srv.Router()

	call := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/subjects", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		req.Header.Set("X-Forwarded-For", forwarded)
		req.Header.Set("X-Real-IP", forwarded)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	allowed := 0
	for i := 0; i < 20; i++ {
		if call("10.1.0."+strconv.Itoa(i)) == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 2, allowed)

	h.srv.Config.TrustProxy = true
	handler = h.srv.Router()
	assert.Equal(t, http.StatusOK, call("10.2.0.1"))
	assert.Equal(t, http.StatusOK, call("10.2.0.2"))
	assert.Equal(t, http.StatusOK, call("10.2.0.3"))
}

func TestUpdatePost_RejectsEmptyContent(t *testing.T) {
	h := newHarness(t)
	admin := h.token(t, h.adminID, "admin")
	post, err := h.srv.Posts.Create(context.Background(), services.PostInput{Title: "Pengumuman", Content: "isi"})
	require.NoError(t, err)
	path := "/api/posts/" + strconv.FormatInt(post.ID, 10)

	rec, body := h.do(t, http.MethodPut, path, admin, map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", body.Message)

	rec, body = h.do(t, http.MethodPut, path, admin, map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Content is required", body.Message)

	stored, err := h.srv.Posts.Get(context.Background(), post.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "isi", stored.Content)
}
