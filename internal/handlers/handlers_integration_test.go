package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"geugeu/internal/models"
	"geugeu/internal/repositories"
	"geugeu/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubImageStore stands in for S3 in the full-stack tests.
type stubImageStore struct{}

func (stubImageStore) Upload(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, body)
	return "https://cdn.example.com/" + filename, nil
}

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

// newTestEnv wires the whole stack against a private in-memory database,
// mirroring the wiring in main.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Drawing{},
		&models.Image{},
		&models.Comment{},
		&models.Interest{},
	))

	userRepo := repositories.NewGORMUserRepository(db)
	postRepo := repositories.NewGORMPostRepository(db)
	drawingRepo := repositories.NewGORMDrawingRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)
	interestRepo := repositories.NewGORMInterestRepository(db)

	store := stubImageStore{}
	authService := services.NewAuthService(userRepo, services.AuthConfig{JWTSecret: "integration-secret"})
	userService := services.NewUserService(userRepo, store)
	postService := services.NewPostService(postRepo, store, nil)
	drawingService := services.NewDrawingService(drawingRepo, postRepo, store, nil)
	commentService := services.NewCommentService(commentRepo, postRepo, drawingRepo, nil)
	interestService := services.NewInterestService(interestRepo, postRepo, userRepo)

	app := fiber.New()
	api := app.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(api)
	NewUserHandler(userService, authService).RegisterRoutes(api)
	NewPostHandler(postService, authService).RegisterRoutes(api)
	NewDrawingHandler(drawingService, authService).RegisterRoutes(api)
	NewCommentHandler(commentService, authService).RegisterRoutes(api)
	NewInterestHandler(interestService, authService).RegisterRoutes(api)

	return &testEnv{app: app, db: db}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body io.Reader, contentType string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return e.do(t, method, path, token, bytes.NewReader(body), "application/json")
}

func (e *testEnv) doMultipart(t *testing.T, method, path, token string, fields map[string]string, imageNames ...string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, name := range imageNames {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return e.do(t, method, path, token, &buf, writer.FormDataContentType())
}

// signup registers an account and logs it in, returning the user code and
// a bearer token.
func (e *testEnv) signup(t *testing.T, email, nickname, password string) (code, token string) {
	t.Helper()
	resp, body := e.doJSON(t, http.MethodPost, "/api/v1/users/", "", map[string]string{
		"email":    email,
		"nickname": nickname,
		"password": password,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "signup: %v", body)
	code, _ = body["code"].(string)
	require.NotEmpty(t, code)

	return code, e.login(t, email, password)
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	resp, body := e.do(t, http.MethodPost, "/api/v1/auth/login", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "login: %v", body)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "Bearer", body["token_type"])
	return token
}

func (e *testEnv) createPost(t *testing.T, token, title, content string, imageNames ...string) string {
	t.Helper()
	resp, body := e.doMultipart(t, http.MethodPost, "/api/v1/posts/", token, map[string]string{
		"title":   title,
		"content": content,
	}, imageNames...)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "create post: %v", body)
	code, _ := body["code"].(string)
	require.NotEmpty(t, code)
	return code
}

func (e *testEnv) makeAdmin(t *testing.T, userCode string) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.User{}).Where("code = ?", userCode).Update("is_admin", true).Error)
}

func TestSignupAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	userCode, token := env.signup(t, "hana@example.com", "hana", "password123")

	// Duplicate email is rejected.
	resp, body := env.doJSON(t, http.MethodPost, "/api/v1/users/", "", map[string]string{
		"email":    "hana@example.com",
		"nickname": "imposter",
		"password": "password456",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists", body["detail"])

	// Wrong password gets the same generic body as an unknown email.
	form := url.Values{"username": {"hana@example.com"}, "password": {"wrong"}}
	resp, body = env.do(t, http.MethodPost, "/api/v1/auth/login", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect username or password", body["detail"])

	resp, body = env.do(t, http.MethodGet, "/api/v1/users/me", token, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "hana@example.com", body["email"])
	assert.Equal(t, userCode, body["code"])

	resp, body = env.doJSON(t, http.MethodPut, "/api/v1/users/me", token, map[string]string{"nickname": "new nick"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "new nick", body["nickname"])
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.doJSON(t, http.MethodPost, "/api/v1/users/", "", map[string]string{
		"email":    "not-an-email",
		"nickname": "x",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["detail"])

	resp, body = env.doJSON(t, http.MethodPost, "/api/v1/users/", "", map[string]string{
		"email":    "short@example.com",
		"nickname": "x",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["detail"])
}

func TestAccountDeletionFlow(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "hana@example.com", "hana", "password123")

	resp, _ := env.do(t, http.MethodDelete, "/api/v1/users/me", token, nil, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// The old token no longer resolves.
	resp, body := env.do(t, http.MethodGet, "/api/v1/users/me", token, nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["detail"])

	// Password login is gone too.
	form := url.Values{"username": {"hana@example.com"}, "password": {"password123"}}
	resp, _ = env.do(t, http.MethodPost, "/api/v1/auth/login", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// And the email stays burned.
	resp, body = env.doJSON(t, http.MethodPost, "/api/v1/users/", "", map[string]string{
		"email":    "hana@example.com",
		"nickname": "hana again",
		"password": "password456",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot sign up with this email", body["detail"])
}

func TestPostLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signup(t, "owner@example.com", "owner", "password123")
	_, stranger := env.signup(t, "stranger@example.com", "stranger", "password123")

	// Anonymous creation is rejected.
	resp, _ := env.doMultipart(t, http.MethodPost, "/api/v1/posts/", "", map[string]string{
		"title": "T", "content": "C",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	postCode := env.createPost(t, owner, "First post", "Hello", "pic.png")

	// Reads are public.
	resp, body := env.do(t, http.MethodGet, "/api/v1/posts/"+postCode, "", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "First post", body["title"])
	images, _ := body["images"].([]interface{})
	require.Len(t, images, 1)

	resp, body = env.do(t, http.MethodGet, "/api/v1/posts/", "", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])

	// A missing title is rejected before anything is stored.
	resp, body = env.doMultipart(t, http.MethodPost, "/api/v1/posts/", owner, map[string]string{"content": "C"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Title and content are required", body["detail"])

	// Strangers cannot touch it.
	resp, body = env.doMultipart(t, http.MethodPut, "/api/v1/posts/"+postCode, stranger, map[string]string{
		"title": "Hijacked", "content": "Nope",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Forbidden", body["detail"])

	resp, _ = env.do(t, http.MethodDelete, "/api/v1/posts/"+postCode, stranger, nil, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// A missing post is 404 regardless of who asks.
	resp, _ = env.doMultipart(t, http.MethodPut, "/api/v1/posts/"+uuid.New().String(), stranger, map[string]string{
		"title": "T", "content": "C",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = env.doMultipart(t, http.MethodPut, "/api/v1/posts/"+postCode, owner, map[string]string{
		"title": "Edited", "content": "Changed",
	}, "new.png")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "%v", body)
	assert.Equal(t, "Edited", body["title"])

	resp, _ = env.do(t, http.MethodDelete, "/api/v1/posts/"+postCode, owner, nil, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/v1/posts/"+postCode, "", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminCanModerate(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signup(t, "owner@example.com", "owner", "password123")
	adminCode, _ := env.signup(t, "admin@example.com", "admin", "password123")
	env.makeAdmin(t, adminCode)
	admin := env.login(t, "admin@example.com", "password123")

	postCode := env.createPost(t, owner, "T", "C")

	resp, _ := env.do(t, http.MethodDelete, "/api/v1/posts/"+postCode, admin, nil, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestDrawingFlow(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signup(t, "owner@example.com", "owner", "password123")
	_, artist := env.signup(t, "artist@example.com", "artist", "password123")

	postCode := env.createPost(t, owner, "Draw this", "please")

	resp, body := env.doMultipart(t, http.MethodPost, "/api/v1/drawings/", artist, map[string]string{
		"post_code": postCode,
		"content":   "my take",
	}, "sketch.png")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "%v", body)
	drawingCode, _ := body["code"].(string)
	require.NotEmpty(t, drawingCode)
	assert.Equal(t, postCode, body["post_code"])

	// One drawing per post.
	resp, body = env.doMultipart(t, http.MethodPost, "/api/v1/drawings/", owner, map[string]string{
		"post_code": postCode,
		"content":   "mine too",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Bad request", body["detail"])

	resp, body = env.do(t, http.MethodGet, "/api/v1/drawings/?post="+postCode, "", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])

	// Only the artist (or an admin) may change it.
	resp, _ = env.doMultipart(t, http.MethodPut, "/api/v1/drawings/"+drawingCode, owner, map[string]string{
		"content": "edited",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body = env.doMultipart(t, http.MethodPut, "/api/v1/drawings/"+drawingCode, artist, map[string]string{
		"content": "edited",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "%v", body)
	assert.Equal(t, "edited", body["content"])

	resp, _ = env.do(t, http.MethodDelete, "/api/v1/drawings/"+drawingCode, artist, nil, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// The slot reopens once the drawing is gone.
	resp, _ = env.doMultipart(t, http.MethodPost, "/api/v1/drawings/", artist, map[string]string{
		"post_code": postCode,
		"content":   "second attempt",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestCommentFlow(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signup(t, "owner@example.com", "owner", "password123")
	_, commenter := env.signup(t, "commenter@example.com", "commenter", "password123")

	postCode := env.createPost(t, owner, "T", "C")
	base := "/api/v1/posts/" + postCode + "/comments/"

	// Comments require a credential, even for reading.
	resp, _ := env.do(t, http.MethodGet, base, "", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body := env.doJSON(t, http.MethodPost, base, commenter, map[string]string{"content": "first!"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "%v", body)
	commentCode, _ := body["code"].(string)
	require.NotEmpty(t, commentCode)

	// A reply hangs off its parent and stays out of the top-level list.
	resp, _ = env.doJSON(t, http.MethodPost, base, owner, map[string]string{
		"content":     "thanks",
		"parent_code": commentCode,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body = env.do(t, http.MethodGet, base, commenter, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])

	// A parent that never existed makes the request invalid.
	resp, _ = env.doJSON(t, http.MethodPost, base, commenter, map[string]string{
		"content":     "orphan",
		"parent_code": uuid.New().String(),
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Ownership applies to edits.
	resp, _ = env.doJSON(t, http.MethodPut, base+commentCode, owner, map[string]string{"content": "hijack"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body = env.doJSON(t, http.MethodPut, base+commentCode, commenter, map[string]string{"content": "edited"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "edited", body["content"])

	resp, _ = env.do(t, http.MethodDelete, base+commentCode, commenter, nil, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// Comments on a missing post are 404.
	resp, _ = env.do(t, http.MethodGet, "/api/v1/posts/"+uuid.New().String()+"/comments/", commenter, nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDrawingCommentFlow(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signup(t, "owner@example.com", "owner", "password123")
	_, artist := env.signup(t, "artist@example.com", "artist", "password123")

	postCode := env.createPost(t, owner, "T", "C")
	resp, body := env.doMultipart(t, http.MethodPost, "/api/v1/drawings/", artist, map[string]string{
		"post_code": postCode,
		"content":   "art",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	drawingCode, _ := body["code"].(string)

	base := "/api/v1/drawings/" + drawingCode + "/comments/"
	resp, body = env.doJSON(t, http.MethodPost, base, owner, map[string]string{"content": "love it"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "%v", body)

	resp, body = env.do(t, http.MethodGet, base, owner, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])
}

func TestInterestFlow(t *testing.T) {
	env := newTestEnv(t)
	fanCode, fan := env.signup(t, "fan@example.com", "fan", "password123")
	_, owner := env.signup(t, "owner@example.com", "owner", "password123")

	postCode := env.createPost(t, owner, "T", "C")
	base := "/api/v1/posts/" + postCode + "/interests"

	// Toggling requires a credential.
	resp, _ := env.do(t, http.MethodPost, base, "", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body := env.do(t, http.MethodPost, base, fan, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["is_interested"])
	assert.Equal(t, "Interest added successfully", body["message"])

	// Authenticated listing includes the caller's own status.
	resp, body = env.do(t, http.MethodGet, base, fan, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, true, body["is_interested"])

	// Anonymous listing omits it.
	resp, body = env.do(t, http.MethodGet, base, "", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])
	_, present := body["is_interested"]
	assert.False(t, present)

	// page_size=0 asks for the summary only.
	resp, body = env.do(t, http.MethodGet, base+"?page_size=0", fan, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])
	items, _ := body["items"].([]interface{})
	assert.Empty(t, items)

	// The user's interests are publicly listable.
	resp, body = env.do(t, http.MethodGet, "/api/v1/users/"+fanCode+"/interests", "", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])

	// Toggling off removes it.
	resp, body = env.do(t, http.MethodPost, base, fan, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["is_interested"])
	assert.Equal(t, "Interest removed successfully", body["message"])

	resp, body = env.do(t, http.MethodGet, base, fan, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["count"])
	assert.Equal(t, false, body["is_interested"])

	// Interests on a missing post are 404.
	resp, _ = env.do(t, http.MethodPost, "/api/v1/posts/"+uuid.New().String()+"/interests", fan, nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAuthorFilterOnPosts(t *testing.T) {
	env := newTestEnv(t)
	aCode, a := env.signup(t, "a@example.com", "a", "password123")
	_, b := env.signup(t, "b@example.com", "b", "password123")

	env.createPost(t, a, "by a", "1")
	env.createPost(t, b, "by b", "2")

	resp, body := env.do(t, http.MethodGet, "/api/v1/posts/?author="+aCode, "", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])
	items, _ := body["items"].([]interface{})
	require.Len(t, items, 1)
	first, _ := items[0].(map[string]interface{})
	assert.Equal(t, "by a", first["title"])
}

func TestOAuthRequestValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.doJSON(t, http.MethodPost, "/api/v1/auth/google", "", map[string]string{
		"code": "abc",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["detail"])

	resp, body = env.doJSON(t, http.MethodPost, "/api/v1/auth/apple", "", map[string]string{
		"redirect_uri": "https://app.example.com/cb",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["detail"])
}
