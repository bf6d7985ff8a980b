package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/TonyNguyenVn17/USF-Hackabull/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserTest(t *testing.T) (*echo.Echo, *UserHandler, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	return echo.New(), NewUserHandler(st), st
}

// request builds an echo context for a /api/users/:id style call
func request(e *echo.Echo, method, target, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const adaJSON = `{"name":"Ada Lovelace","email":"ada@x.com","age":30,"skills":["Go"]}`

func TestUserCreate_ThenGet(t *testing.T) {
	e, h, _ := newUserTest(t)

	c, rec := request(e, http.MethodPost, "/api/users/ada", adaJSON, "ada")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = request(e, http.MethodGet, "/api/users/ada", "", "ada")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Ada Lovelace", data["name"])
	assert.Equal(t, "ada@x.com", data["email"])
	assert.Equal(t, float64(30), data["age"])
	assert.Equal(t, "pending", data["registration_status"])
	assert.Equal(t, "direct", data["registration_source"])
	assert.NotEmpty(t, data["created_at"])
}

func TestUserCreate_ConflictNeverOverwrites(t *testing.T) {
	e, h, st := newUserTest(t)

	c, rec := request(e, http.MethodPost, "/api/users/ada", adaJSON, "ada")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = request(e, http.MethodPost, "/api/users/ada",
		`{"name":"Impostor","email":"ada@other.com","age":99}`, "ada")
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	doc, _ := st.Get(context.Background(), store.UsersCollection, "ada")
	assert.Equal(t, "Ada Lovelace", doc["name"])
}

func TestUserGet_NotFound(t *testing.T) {
	e, h, _ := newUserTest(t)

	c, rec := request(e, http.MethodGet, "/api/users/nobody", "", "nobody")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserUpdate_NotFound(t *testing.T) {
	e, h, _ := newUserTest(t)

	c, rec := request(e, http.MethodPut, "/api/users/nobody", adaJSON, "nobody")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserUpdate_ReplacesAndStampsUpdatedAt(t *testing.T) {
	e, h, st := newUserTest(t)

	c, _ := request(e, http.MethodPost, "/api/users/ada", adaJSON, "ada")
	require.NoError(t, h.Create(c))
	before, _ := st.Get(context.Background(), store.UsersCollection, "ada")

	time.Sleep(10 * time.Millisecond)

	c, rec := request(e, http.MethodPut, "/api/users/ada",
		`{"name":"Ada Lovelace","email":"ada@x.com","age":31}`, "ada")
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	after, _ := st.Get(context.Background(), store.UsersCollection, "ada")
	assert.Equal(t, float64(31), after["age"])

	prev, err := time.Parse(time.RFC3339Nano, before["updated_at"].(string))
	require.NoError(t, err)
	next, err := time.Parse(time.RFC3339Nano, after["updated_at"].(string))
	require.NoError(t, err)
	assert.True(t, next.After(prev), "updated_at must strictly increase")
}

func TestUserUpdateStatus_RejectsInvalidValue(t *testing.T) {
	e, h, st := newUserTest(t)

	c, _ := request(e, http.MethodPost, "/api/users/ada", adaJSON, "ada")
	require.NoError(t, h.Create(c))
	before, _ := st.Get(context.Background(), store.UsersCollection, "ada")

	c, rec := request(e, http.MethodPatch, "/api/users/ada/status?status=waitlisted", "", "ada")
	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	after, _ := st.Get(context.Background(), store.UsersCollection, "ada")
	assert.Equal(t, before, after, "a rejected status patch leaves the record unchanged")
}

func TestUserUpdateStatus_AcceptsEnumValues(t *testing.T) {
	e, h, st := newUserTest(t)

	c, _ := request(e, http.MethodPost, "/api/users/ada", adaJSON, "ada")
	require.NoError(t, h.Create(c))

	for _, status := range []string{"accepted", "rejected", "confirmed", "pending"} {
		c, rec := request(e, http.MethodPatch, "/api/users/ada/status?status="+status, "", "ada")
		require.NoError(t, h.UpdateStatus(c))
		require.Equal(t, http.StatusOK, rec.Code, status)

		doc, _ := st.Get(context.Background(), store.UsersCollection, "ada")
		assert.Equal(t, status, doc["registration_status"])
	}
}

func TestUserUpdateStatus_NotFound(t *testing.T) {
	e, h, _ := newUserTest(t)

	c, rec := request(e, http.MethodPatch, "/api/users/nobody/status?status=accepted", "", "nobody")
	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserDelete(t *testing.T) {
	e, h, st := newUserTest(t)

	c, rec := request(e, http.MethodDelete, "/api/users/nobody", "", "nobody")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, _ = request(e, http.MethodPost, "/api/users/ada", adaJSON, "ada")
	require.NoError(t, h.Create(c))

	c, rec = request(e, http.MethodDelete, "/api/users/ada", "", "ada")
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, found := st.Get(context.Background(), store.UsersCollection, "ada")
	assert.False(t, found)
}

func TestUserList_Filters(t *testing.T) {
	e, h, st := newUserTest(t)
	ctx := context.Background()

	st.Set(ctx, store.UsersCollection, "ada", map[string]any{
		"name": "Ada", "registration_status": "accepted", "registration_source": "direct",
	})
	st.Set(ctx, store.UsersCollection, "grace", map[string]any{
		"name": "Grace", "registration_status": "pending", "registration_source": "google_form",
	})
	st.Set(ctx, store.UsersCollection, "alan", map[string]any{
		"name": "Alan", "registration_status": "accepted", "registration_source": "google_form",
	})

	c, rec := request(e, http.MethodGet, "/api/users?status=accepted", "", "")
	require.NoError(t, h.List(c))
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Len(t, data, 2)

	c, rec = request(e, http.MethodGet, "/api/users?status=accepted&source=google_form", "", "")
	require.NoError(t, h.List(c))
	data = decodeBody(t, rec)["data"].(map[string]any)
	require.Len(t, data, 1)
	assert.Contains(t, data, "alan")

	c, rec = request(e, http.MethodGet, "/api/users", "", "")
	require.NoError(t, h.List(c))
	data = decodeBody(t, rec)["data"].(map[string]any)
	assert.Len(t, data, 3)
}

func TestUserBatchImport(t *testing.T) {
	e, h, st := newUserTest(t)

	body := `[
		{"name":"Ada","email":"ada@x.com","age":30},
		{"name":"Grace","email":"grace@navy.mil","age":85}
	]`
	c, rec := request(e, http.MethodPost, "/api/users/batch/import", body, "")
	require.NoError(t, h.BatchImport(c))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["total"])
	results := data["results"].([]any)
	for _, r := range results {
		assert.Equal(t, true, r.(map[string]any)["success"])
	}

	doc, found := st.Get(context.Background(), store.UsersCollection, "grace")
	require.True(t, found)
	assert.Equal(t, "external", doc["registration_source"])
}

func TestUserBatchImport_OverwritesExisting(t *testing.T) {
	e, h, st := newUserTest(t)
	st.Set(context.Background(), store.UsersCollection, "ada", map[string]any{"name": "Old Ada"})

	c, rec := request(e, http.MethodPost, "/api/users/batch/import",
		`[{"name":"New Ada","email":"ada@x.com","age":30}]`, "")
	require.NoError(t, h.BatchImport(c))
	require.Equal(t, http.StatusOK, rec.Code)

	doc, _ := st.Get(context.Background(), store.UsersCollection, "ada")
	assert.Equal(t, "New Ada", doc["name"], "batch import overwrites, unlike the form sync")
}
