package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/TonyNguyenVn17/USF-Hackabull/internal/importer"
	"github.com/TonyNguyenVn17/USF-Hackabull/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReader struct {
	rows [][]string
}

func (s *stubReader) ReadRange(_ context.Context, _, _ string) ([][]string, error) {
	return s.rows, nil
}

func TestSyncGoogleForm_RequiresSpreadsheetID(t *testing.T) {
	e, _, _ := newUserTest(t)
	h := NewSyncHandler(importer.New(store.NewMemory(), &stubReader{}, zap.NewNop()), "Form Responses 1!A:Z")

	c, rec := request(e, http.MethodPost, "/api/users/sync/google-form", "", "")
	require.NoError(t, h.SyncGoogleForm(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncGoogleForm_UnavailableWithoutEngine(t *testing.T) {
	e, _, _ := newUserTest(t)
	h := NewSyncHandler(nil, "Form Responses 1!A:Z")

	c, rec := request(e, http.MethodPost, "/api/users/sync/google-form?spreadsheet_id=sheet", "", "")
	require.NoError(t, h.SyncGoogleForm(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSyncGoogleForm_RespondsImmediatelyAndSyncsInBackground(t *testing.T) {
	e, _, _ := newUserTest(t)
	st := store.NewMemory()
	engine := importer.New(st, &stubReader{rows: [][]string{
		{"Full Name", "Email"},
		{"Ada Lovelace", "ada@x.com"},
	}}, zap.NewNop())
	h := NewSyncHandler(engine, "Form Responses 1!A:Z")

	c, rec := request(e, http.MethodPost, "/api/users/sync/google-form?spreadsheet_id=sheet", "", "")
	require.NoError(t, h.SyncGoogleForm(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "processing", body["status"])

	// The sync runs detached; poll the store for its effect.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, found := st.Get(context.Background(), store.UsersCollection, "ada"); found {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("background sync never stored the imported record")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
