package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/VirgoSitesDev/rd-group-sub000/databases/mocks"
	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

// fakeUploader fails the call numbers listed in failOn (1-based) and
// returns a deterministic URL otherwise.
type fakeUploader struct {
	calls  int
	failOn map[int]bool
}

func (f *fakeUploader) Upload(ctx context.Context, name string, file io.Reader) (string, error) {
	f.calls++
	if f.failOn[f.calls] {
		return "", errors.New("upload rejected")
	}
	return fmt.Sprintf("https://img.example.com/%s.jpg", name), nil
}

func leadForm(t *testing.T, images int, omitContact bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	if !omitContact {
		mw.WriteField("name", "Mario Rossi")
		mw.WriteField("email", "mario.rossi@example.com")
		mw.WriteField("phone", "+39 333 1234567")
	}
	mw.WriteField("message", "Vorrei vendere la mia auto")
	mw.WriteField("make", "Fiat")
	mw.WriteField("model", "Panda")
	mw.WriteField("year", "2018")
	mw.WriteField("mileage", "62000")

	for i := 0; i < images; i++ {
		fw, err := mw.CreateFormFile("images", fmt.Sprintf("photo-%d.jpg", i+1))
		assert.NoError(t, err)
		fw.Write([]byte("not-really-a-jpeg"))
	}
	mw.Close()
	return body, mw.FormDataContentType()
}

func TestCreateLeadHandler(t *testing.T) {
	mockDB := mocks.NewLeadDatabase(t)
	mockDB.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Lead")).Return("id", nil)

	l := Lead{DB: mockDB, Uploader: &fakeUploader{}}
	body, contentType := leadForm(t, 3, false)
	req := httptest.NewRequest("POST", "/api/v1/leads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	l.CreateLeadHandler(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got models.Lead
	err := json.Unmarshal(w.Body.Bytes(), &got)
	assert.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Mario Rossi", got.Name)
	assert.Equal(t, "new", got.Status)
	assert.Len(t, got.ImageURLs, 3)
	assert.Empty(t, got.UploadErrors)
}

func TestCreateLeadHandlerImageCountValidation(t *testing.T) {
	l := Lead{Uploader: &fakeUploader{}}

	for _, images := range []int{0, 1, 5} {
		body, contentType := leadForm(t, images, false)
		req := httptest.NewRequest("POST", "/api/v1/leads", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		l.CreateLeadHandler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "images=%d", images)
		assert.Contains(t, w.Body.String(), "between 2 and 4 images")
	}
}

func TestCreateLeadHandlerMissingContact(t *testing.T) {
	l := Lead{Uploader: &fakeUploader{}}
	body, contentType := leadForm(t, 2, true)
	req := httptest.NewRequest("POST", "/api/v1/leads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	l.CreateLeadHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "required")
}

func TestCreateLeadHandlerPartialUploadFailure(t *testing.T) {
	mockDB := mocks.NewLeadDatabase(t)
	mockDB.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Lead")).Return("id", nil)

	l := Lead{DB: mockDB, Uploader: &fakeUploader{failOn: map[int]bool{2: true}}}
	body, contentType := leadForm(t, 3, false)
	req := httptest.NewRequest("POST", "/api/v1/leads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	l.CreateLeadHandler(w, req)

	// one failed photo does not sink the submission
	assert.Equal(t, http.StatusCreated, w.Code)

	var got models.Lead
	err := json.Unmarshal(w.Body.Bytes(), &got)
	assert.NoError(t, err)
	assert.Len(t, got.ImageURLs, 2)
	assert.Len(t, got.UploadErrors, 1)
	assert.Contains(t, got.UploadErrors[0], "photo-2.jpg")
}

func TestCreateLeadHandlerAllUploadsFail(t *testing.T) {
	l := Lead{Uploader: &fakeUploader{failOn: map[int]bool{1: true, 2: true}}}
	body, contentType := leadForm(t, 2, false)
	req := httptest.NewRequest("POST", "/api/v1/leads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	l.CreateLeadHandler(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to upload lead images")
}

func TestCreateLeadHandlerStoreFailure(t *testing.T) {
	mockDB := mocks.NewLeadDatabase(t)
	mockDB.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Lead")).Return(nil, errors.New("write concern"))

	l := Lead{DB: mockDB, Uploader: &fakeUploader{}}
	body, contentType := leadForm(t, 2, false)
	req := httptest.NewRequest("POST", "/api/v1/leads", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	l.CreateLeadHandler(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to store lead")
}

func TestLeadByIDHandler(t *testing.T) {
	lead := &models.Lead{ID: "abc-123", Name: "Mario Rossi", Status: "new"}
	mockDB := mocks.NewLeadDatabase(t)
	mockDB.On("FindOne", mock.Anything, bson.M{"_id": "abc-123"}).Return(lead, nil)

	l := Lead{DB: mockDB}
	req := httptest.NewRequest("GET", "/api/v1/leads/abc-123", nil)
	req = mux.SetURLVars(req, map[string]string{"lead_id": "abc-123"})
	w := httptest.NewRecorder()
	l.LeadByIDHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Lead
	err := json.Unmarshal(w.Body.Bytes(), &got)
	assert.NoError(t, err)
	assert.Equal(t, "abc-123", got.ID)
}

func TestListLeadsHandler(t *testing.T) {
	mockDB := mocks.NewLeadDatabase(t)
	mockDB.On("Find", mock.Anything, bson.M{}).Return([]models.Lead{
		{ID: "a", Status: "new"},
		{ID: "b", Status: "contacted"},
	}, nil)

	l := Lead{DB: mockDB}
	req := httptest.NewRequest("GET", "/api/v1/admin/leads", nil)
	w := httptest.NewRecorder()
	l.ListLeadsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []models.Lead
	err := json.Unmarshal(w.Body.Bytes(), &got)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListLeadsHandlerEmpty(t *testing.T) {
	mockDB := mocks.NewLeadDatabase(t)
	mockDB.On("Find", mock.Anything, bson.M{}).Return(nil, nil)

	l := Lead{DB: mockDB}
	req := httptest.NewRequest("GET", "/api/v1/admin/leads", nil)
	w := httptest.NewRecorder()
	l.ListLeadsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUpdateLeadStatusHandler(t *testing.T) {
	mockDB := mocks.NewLeadDatabase(t)
	mockDB.On("UpdateStatus", mock.Anything, "abc-123", "contacted").Return(nil)

	l := Lead{DB: mockDB}
	req := httptest.NewRequest("PUT", "/api/v1/admin/leads/abc-123/status", bytes.NewBufferString(`{"status": "contacted"}`))
	req = mux.SetURLVars(req, map[string]string{"lead_id": "abc-123"})
	w := httptest.NewRecorder()
	l.UpdateLeadStatusHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": "abc-123", "status": "contacted"}`, w.Body.String())
}

func TestUpdateLeadStatusHandlerInvalidStatus(t *testing.T) {
	l := Lead{DB: mocks.NewLeadDatabase(t)}
	req := httptest.NewRequest("PUT", "/api/v1/admin/leads/abc-123/status", bytes.NewBufferString(`{"status": "sold"}`))
	req = mux.SetURLVars(req, map[string]string{"lead_id": "abc-123"})
	w := httptest.NewRecorder()
	l.UpdateLeadStatusHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status must be one of")
}

func TestUpdateLeadStatusHandlerUnknownLead(t *testing.T) {
	mockDB := mocks.NewLeadDatabase(t)
	mockDB.On("UpdateStatus", mock.Anything, "missing", "contacted").Return(mongo.ErrNoDocuments)

	l := Lead{DB: mockDB}
	req := httptest.NewRequest("PUT", "/api/v1/admin/leads/missing/status", bytes.NewBufferString(`{"status": "contacted"}`))
	req = mux.SetURLVars(req, map[string]string{"lead_id": "missing"})
	w := httptest.NewRecorder()
	l.UpdateLeadStatusHandler(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "lead not found")
}

func TestDeleteLeadHandler(t *testing.T) {
	mockDB := mocks.NewLeadDatabase(t)
	mockDB.On("Delete", mock.Anything, "abc-123").Return(nil)

	l := Lead{DB: mockDB}
	req := httptest.NewRequest("DELETE", "/api/v1/admin/leads/abc-123", nil)
	req = mux.SetURLVars(req, map[string]string{"lead_id": "abc-123"})
	w := httptest.NewRecorder()
	l.DeleteLeadHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted": true}`, w.Body.String())
}

func TestDeleteLeadHandlerUnknownLead(t *testing.T) {
	mockDB := mocks.NewLeadDatabase(t)
	mockDB.On("Delete", mock.Anything, "missing").Return(mongo.ErrNoDocuments)

	l := Lead{DB: mockDB}
	req := httptest.NewRequest("DELETE", "/api/v1/admin/leads/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"lead_id": "missing"})
	w := httptest.NewRecorder()
	l.DeleteLeadHandler(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "lead not found")
}

func TestLeadByIDHandlerNotFound(t *testing.T) {
	mockDB := mocks.NewLeadDatabase(t)
	mockDB.On("FindOne", mock.Anything, bson.M{"_id": "missing"}).Return(nil, errors.New("mongo: no documents in result"))

	l := Lead{DB: mockDB}
	req := httptest.NewRequest("GET", "/api/v1/leads/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"lead_id": "missing"})
	w := httptest.NewRecorder()
	l.LeadByIDHandler(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
