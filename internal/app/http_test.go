package app

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"dgconsult/api/internal/store"
)

func newTestServer(t *testing.T, fs *fakeStore) (*httptest.Server, *Service) {
	t.Helper()
	svc := newTestService(fs)
	server := httptest.NewServer(NewHTTPServer(svc, "*").Handler())
	t.Cleanup(server.Close)
	return server, svc
}

// loginToken wires a known admin into the fake store and runs the real
// login flow to get a bearer token.
func loginToken(t *testing.T, fs *fakeStore, svc *Service) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	fs.getAdminByEmailFn = func(context.Context, string) (store.AdminUser, error) {
		return store.AdminUser{ID: "adm1", Email: "admin@dgconsult.gr", DisplayName: "Admin", PasswordHash: string(hash)}, nil
	}
	session, err := svc.Login(context.Background(), "admin@dgconsult.gr", "s3cret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	return session.Token
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{})

	resp := doJSON(t, http.MethodGet, server.URL+"/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
	payload := decodeResponse(t, resp)
	if payload["ok"] != true {
		t.Fatalf("expected ok true, got %v", payload["ok"])
	}
}

func TestPublicSectorsEndpoint(t *testing.T) {
	var gotFeatured bool
	fs := &fakeStore{
		listSectorsFn: func(_ context.Context, onlyActive, onlyFeatured bool) ([]store.Sector, error) {
			if !onlyActive {
				t.Fatal("public list must be restricted to active sectors")
			}
			gotFeatured = onlyFeatured
			return []store.Sector{sectorFixture("agrifood", 1)}, nil
		},
	}
	server, _ := newTestServer(t, fs)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/sectors?featured=true", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !gotFeatured {
		t.Fatal("featured=true should narrow the query")
	}
	payload := decodeResponse(t, resp)
	sectors, ok := payload["sectors"].([]any)
	if !ok || len(sectors) != 1 {
		t.Fatalf("expected one sector, got %v", payload["sectors"])
	}
}

func TestPublicSlugEndpointHidesDrafts(t *testing.T) {
	fs := &fakeStore{
		getCaseStudyBySlugFn: func(_ context.Context, slug string) (store.CaseStudy, error) {
			return store.CaseStudy{ID: "cs1", Slug: slug, IsPublished: false}, nil
		},
	}
	server, _ := newTestServer(t, fs)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/case-studies/draft-study", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("draft lookup status = %d, want 404", resp.StatusCode)
	}
	payload := decodeResponse(t, resp)
	if payload["code"] != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", payload["code"])
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{})

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/sectors"},
		{http.MethodPost, "/api/admin/sectors"},
		{http.MethodPost, "/api/admin/case-studies/reorder"},
		{http.MethodGet, "/api/admin/contact-submissions"},
		{http.MethodPost, "/api/upload"},
		{http.MethodPost, "/api/generate-seo"},
	} {
		resp := doJSON(t, route.method, server.URL+route.path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: status = %d, want 401", route.method, route.path, resp.StatusCode)
		}
	}
}

func TestLoginAndSessionEndpoints(t *testing.T) {
	fs := &fakeStore{}
	server, svc := newTestServer(t, fs)
	token := loginToken(t, fs, svc)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]string{
		"email":    "admin@dgconsult.gr",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]string{
		"email":    "admin@dgconsult.gr",
		"password": "s3cret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	payload := decodeResponse(t, resp)
	if payload["token"] == "" || payload["refreshToken"] == "" {
		t.Fatal("expected token and refreshToken in login response")
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/auth/session", token, nil)
	payload = decodeResponse(t, resp)
	if payload["authenticated"] != true {
		t.Fatalf("expected authenticated session, got %v", payload)
	}
	if payload["email"] != "admin@dgconsult.gr" {
		t.Fatalf("unexpected session email %v", payload["email"])
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/auth/session", "garbage-token", nil)
	payload = decodeResponse(t, resp)
	if payload["authenticated"] != false {
		t.Fatalf("garbage token should report unauthenticated, got %v", payload)
	}
}

func TestCreateSectorEndpoint(t *testing.T) {
	fs := &fakeStore{}
	server, svc := newTestServer(t, fs)
	token := loginToken(t, fs, svc)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/admin/sectors", token, map[string]any{
		"title":       "AgTech",
		"slug":        "agtech",
		"description": "Field data platforms",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	payload := decodeResponse(t, resp)
	sector, ok := payload["sector"].(map[string]any)
	if !ok {
		t.Fatalf("expected sector payload, got %v", payload)
	}
	if sector["slug"] != "agtech" {
		t.Fatalf("unexpected slug %v", sector["slug"])
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/admin/sectors", token, map[string]any{"title": "AgTech"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("invalid input status = %d, want 422", resp.StatusCode)
	}
}

func TestReorderEndpointAcceptsBothShapes(t *testing.T) {
	persisted := [][]store.SortOrderUpdate{}
	fs := &fakeStore{
		listSectorsFn: func(context.Context, bool, bool) ([]store.Sector, error) {
			return []store.Sector{sectorFixture("a", 1), sectorFixture("b", 2), sectorFixture("c", 3)}, nil
		},
		updateSectorSortOrdersFn: func(_ context.Context, updates []store.SortOrderUpdate) error {
			persisted = append(persisted, updates)
			return nil
		},
	}
	server, svc := newTestServer(t, fs)
	token := loginToken(t, fs, svc)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/admin/sectors/reorder", token, map[string]any{
		"orderedIds": []string{"c", "a", "b"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("orderedIds reorder status = %d, want 200", resp.StatusCode)
	}

	targetIndex := 0
	resp = doJSON(t, http.MethodPost, server.URL+"/api/admin/sectors/reorder", token, map[string]any{
		"movedId":     "c",
		"targetIndex": targetIndex,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("movedId reorder status = %d, want 200", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/admin/sectors/reorder", token, map[string]any{})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("empty reorder body status = %d, want 422", resp.StatusCode)
	}

	if len(persisted) != 2 {
		t.Fatalf("expected 2 persisted assignments, got %d", len(persisted))
	}
	first := persisted[0]
	if first[0] != (store.SortOrderUpdate{ID: "c", SortOrder: 1}) {
		t.Fatalf("unexpected first assignment %+v", first)
	}
	second := persisted[1]
	if second[0] != (store.SortOrderUpdate{ID: "c", SortOrder: 1}) {
		t.Fatalf("unexpected move assignment %+v", second)
	}
}

func TestContactEndpointValidation(t *testing.T) {
	inserts := 0
	fs := &fakeStore{
		insertContactSubmissionFn: func(context.Context, store.ContactSubmission) error {
			inserts++
			return nil
		},
	}
	server, _ := newTestServer(t, fs)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/contact", "", map[string]string{
		"firstName": "Maria",
		"lastName":  "P",
		"email":     "not-an-email",
		"message":   "hello",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("bad email status = %d, want 422", resp.StatusCode)
	}
	if inserts != 0 {
		t.Fatal("invalid submission must not be persisted")
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/contact", "", map[string]string{
		"firstName": "Maria",
		"lastName":  "P",
		"email":     "maria@example.gr",
		"message":   "hello",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("valid contact status = %d, want 200", resp.StatusCode)
	}
	if inserts != 1 {
		t.Fatalf("expected one persisted submission, got %d", inserts)
	}
}

func TestMutationEndpointsRejectUnknownFields(t *testing.T) {
	inserts := 0
	fs := &fakeStore{
		insertSectorFn: func(context.Context, store.Sector) error {
			inserts++
			return nil
		},
		insertContactSubmissionFn: func(context.Context, store.ContactSubmission) error {
			inserts++
			return nil
		},
	}
	server, svc := newTestServer(t, fs)
	token := loginToken(t, fs, svc)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/admin/sectors", token, map[string]any{
		"title":       "AgTech",
		"slug":        "agtech",
		"description": "Field data platforms",
		"bogusField":  "x",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown field status = %d, want 400", resp.StatusCode)
	}
	payload := decodeResponse(t, resp)
	if payload["code"] != "INVALID_BODY" {
		t.Fatalf("expected INVALID_BODY, got %v", payload["code"])
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/contact", "", map[string]string{
		"firstName": "Maria",
		"lastName":  "P",
		"email":     "maria@example.gr",
		"message":   "hello",
		"subject":   "unexpected",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown contact field status = %d, want 400", resp.StatusCode)
	}

	if inserts != 0 {
		t.Fatalf("unknown-field payloads must not be persisted, got %d writes", inserts)
	}
}

func TestPublicRoutesTolerateTrailingSlash(t *testing.T) {
	fs := &fakeStore{
		listSectorsFn: func(context.Context, bool, bool) ([]store.Sector, error) {
			return []store.Sector{sectorFixture("agrifood", 1)}, nil
		},
	}
	server, _ := newTestServer(t, fs)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/sectors/", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("trailing slash status = %d, want 200", resp.StatusCode)
	}
	payload := decodeResponse(t, resp)
	sectors, ok := payload["sectors"].([]any)
	if !ok || len(sectors) != 1 {
		t.Fatalf("expected one sector, got %v", payload["sectors"])
	}
}

func TestUploadEndpointWithoutStorage(t *testing.T) {
	fs := &fakeStore{}
	server, svc := newTestServer(t, fs)
	token := loginToken(t, fs, svc)

	var buf bytes.Buffer
	contentType := newMultipartUpload(t, &buf, "photo.jpg", []byte{0xFF, 0xD8, 0xFF})
	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/upload", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
	payload := decodeResponse(t, resp)
	if payload["code"] != "STORAGE_UNAVAILABLE" {
		t.Fatalf("expected STORAGE_UNAVAILABLE, got %v", payload["code"])
	}
}

func TestGenerateSEOEndpoint(t *testing.T) {
	fs := &fakeStore{}
	server, svc := newTestServer(t, fs)
	token := loginToken(t, fs, svc)
	svc.SetCopywriter(&fakeCopywriter{})

	resp := doJSON(t, http.MethodPost, server.URL+"/api/generate-seo", token, map[string]string{
		"title":       "Agrifood",
		"description": "Digital transformation",
		"type":        "sector",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	payload := decodeResponse(t, resp)
	if payload["metaTitle"] != "Agrifood" {
		t.Fatalf("unexpected metaTitle %v", payload["metaTitle"])
	}
}

func TestAdminSettingsEndpoint(t *testing.T) {
	fs := &fakeStore{
		getSettingsFn: func(context.Context) (store.GlobalSettings, error) {
			return store.GlobalSettings{ID: "global", Email: "info@dgconsult.gr"}, nil
		},
	}
	server, svc := newTestServer(t, fs)
	token := loginToken(t, fs, svc)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/admin/settings", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	payload := decodeResponse(t, resp)
	settings, ok := payload["settings"].(map[string]any)
	if !ok || settings["email"] != "info@dgconsult.gr" {
		t.Fatalf("unexpected settings payload %v", payload)
	}

	resp = doJSON(t, http.MethodPut, server.URL+"/api/admin/settings", token, map[string]string{"email": "nope"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("invalid settings status = %d, want 422", resp.StatusCode)
	}
}

// newMultipartUpload writes a single-file multipart body into buf and
// returns the content type.
func newMultipartUpload(t *testing.T, buf *bytes.Buffer, filename string, data []byte) string {
	t.Helper()
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return writer.FormDataContentType()
}
