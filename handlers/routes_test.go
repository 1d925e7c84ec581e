// handlers/routes_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"flavorquest-system/catalog"
	"flavorquest-system/models"
	"flavorquest-system/services"
	"flavorquest-system/store"
)

func newTestApp(t *testing.T) (*fiber.App, *store.Memory) {
	t.Helper()
	cat, err := catalog.NewFromSeed()
	if err != nil {
		t.Fatalf("catalog.NewFromSeed() error = %v", err)
	}
	st := store.NewMemoryWithDemoData()

	feedService := services.NewFeedService(st, cat)
	userService := services.NewUserService(st)
	progression := services.NewProgressionService(st, cat, feedService.PostFromCompletion)
	generator := services.NewGeneratorService(cat, userService, "http://generator.invalid", "")

	app := fiber.New()
	SetupProgressionRoutes(app, progression, generator)
	SetupFeedRoutes(app, feedService, userService)
	return app, st
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request, out any) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if out != nil {
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, out); err != nil {
			t.Fatalf("decode response %s: %v", body, err)
		}
	}
	return resp
}

func TestSecuredRoutesRequireUserContext(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/user/progress", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestGetProgressNewUser(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/user/progress", nil)
	req.Header.Set("X-User-ID", "2")

	var body struct {
		Progress models.UserProgress `json:"progress"`
		Level    services.LevelInfo  `json:"level"`
	}
	resp := doJSON(t, app, req, &body)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body.Progress.Points != 0 {
		t.Errorf("points = %d, want 0", body.Progress.Points)
	}
	if len(body.Progress.UnlockedStoneIDs) != 1 || body.Progress.UnlockedStoneIDs[0] != "stone001" {
		t.Errorf("unlocked = %v, want [stone001]", body.Progress.UnlockedStoneIDs)
	}
	if body.Level.Name != "Food Newbie" {
		t.Errorf("level = %q, want Food Newbie", body.Level.Name)
	}
}

func TestCompleteChallengeAndFeed(t *testing.T) {
	app, _ := newTestApp(t)

	form := make(map[string]string)
	form["caption"] = "So good!"
	form["rating"] = "5"
	form["place_name"] = "Maxwell Food Centre"
	req := multipartRequest(t, "/challenges/stone001-challenge001/complete", form)
	req.Header.Set("X-User-ID", "2")

	var body struct {
		Completion models.Completion   `json:"completion"`
		Progress   models.UserProgress `json:"progress"`
	}
	resp := doJSON(t, app, req, &body)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body.Completion.ChallengeID != "stone001-challenge001" {
		t.Errorf("challenge id = %q", body.Completion.ChallengeID)
	}
	if body.Progress.Points != 100 {
		t.Errorf("points = %d, want 100", body.Progress.Points)
	}
	if !body.Progress.HasUnlocked("stone002") {
		t.Errorf("stone002 not unlocked: %v", body.Progress.UnlockedStoneIDs)
	}

	// The completion fans out to the social feed.
	feedReq := httptest.NewRequest(http.MethodGet, "/feed", nil)
	feedReq.Header.Set("X-User-ID", "2")

	var posts []models.Post
	if resp := doJSON(t, app, feedReq, &posts); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("feed status = %d, want 200", resp.StatusCode)
	}
	found := false
	for _, p := range posts {
		if p.ChallengeID == "stone001-challenge001" && p.UserID == "2" {
			found = true
			if p.UserName != "Mike Tan" {
				t.Errorf("post user name = %q", p.UserName)
			}
			if p.Caption != "So good!" {
				t.Errorf("post caption = %q", p.Caption)
			}
		}
	}
	if !found {
		t.Errorf("completion post missing from feed: %+v", posts)
	}
}

func TestCompleteChallengeLegacyID(t *testing.T) {
	app, _ := newTestApp(t)

	req := multipartRequest(t, "/challenges/stone1-challenge1/complete", nil)
	req.Header.Set("X-User-ID", "3")

	var body struct {
		Completion models.Completion `json:"completion"`
	}
	resp := doJSON(t, app, req, &body)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body.Completion.ChallengeID != "stone001-challenge001" {
		t.Errorf("challenge id = %q, want canonical form", body.Completion.ChallengeID)
	}
}

func TestCompleteChallengeErrors(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"invalid id", "/challenges/not-a-challenge/complete", fiber.StatusBadRequest},
		{"unknown challenge", "/challenges/stone009-challenge001/complete", fiber.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := multipartRequest(t, tc.path, nil)
			req.Header.Set("X-User-ID", "2")
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tc.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.wantStatus)
			}
		})
	}
}

func TestCompleteChallengeRejectsBadRating(t *testing.T) {
	app, _ := newTestApp(t)

	req := multipartRequest(t, "/challenges/stone001-challenge001/complete", map[string]string{"rating": "9"})
	req.Header.Set("X-User-ID", "2")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestToggleLikeAndComments(t *testing.T) {
	app, st := newTestApp(t)

	post := models.Post{ID: "post-x", UserID: "1", UserName: "Sarah Chen", ChallengeID: "stone001-challenge001", ChallengeTitle: "Hainanese Chicken Rice", PathID: "sg_general"}
	if err := st.AddPost(context.Background(), post); err != nil {
		t.Fatalf("AddPost() error = %v", err)
	}

	likeReq := httptest.NewRequest(http.MethodPost, "/feed/post-x/like", nil)
	likeReq.Header.Set("X-User-ID", "2")
	if resp := doJSON(t, app, likeReq, &fiber.Map{}); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("like status = %d, want 200", resp.StatusCode)
	}

	feedReq := httptest.NewRequest(http.MethodGet, "/feed", nil)
	feedReq.Header.Set("X-User-ID", "2")
	var posts []models.Post
	doJSON(t, app, feedReq, &posts)
	if len(posts) != 1 || posts[0].Likes != 1 || !posts[0].LikedByCurrentUser {
		t.Errorf("feed after like = %+v", posts)
	}

	cmtReq := httptest.NewRequest(http.MethodPost, "/feed/post-x/comments", jsonBody(t, fiber.Map{"body": "Looks amazing"}))
	cmtReq.Header.Set("Content-Type", "application/json")
	cmtReq.Header.Set("X-User-ID", "2")
	var comment models.Comment
	if resp := doJSON(t, app, cmtReq, &comment); resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("comment status = %d, want 201", resp.StatusCode)
	}
	if comment.Body != "Looks amazing" || comment.UserID != "2" || comment.PostID != "post-x" {
		t.Errorf("comment = %+v", comment)
	}
}

func TestGetUserNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/users/ghost", nil)
	req.Header.Set("X-User-ID", "2")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestAdminListUsers(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/s/admin/users", nil)
	req.Header.Set("X-User-ID", "2")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/s/admin/users", nil)
	req.Header.Set("X-User-ID", "admin")
	req.Header.Set("X-User-Roles", "admin")

	var list []models.AppUser
	if resp := doJSON(t, app, req, &list); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("admin status = %d, want 200", resp.StatusCode)
	}
	if len(list) != 4 {
		t.Errorf("listed %d users, want 4", len(list))
	}
}

func multipartRequest(t *testing.T, path string, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField(%s) error = %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("multipart close error = %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(data)
}
