package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/VirgoSitesDev/rd-group-sub000/api"
	"github.com/VirgoSitesDev/rd-group-sub000/config"
	"github.com/VirgoSitesDev/rd-group-sub000/databases"
	"github.com/VirgoSitesDev/rd-group-sub000/models"
	"github.com/VirgoSitesDev/rd-group-sub000/templates/html"
)

const (
	minLeadImages     = 2
	maxLeadImages     = 4
	maxLeadFormMemory = 32 << 20
)

// Lead exposes the sell-your-car form routes.
type Lead struct {
	DB       databases.LeadDatabase
	Config   config.Config
	Uploader ImageUploader
}

// CreateLeadHandler accepts a multipart form with the customer's contact
// details, the offered vehicle and its photos. Photos upload one at a time;
// a single failed upload is recorded and skipped, the submission only fails
// when every upload fails.
func (l Lead) CreateLeadHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxLeadFormMemory); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	lead := models.Lead{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Message: strings.TrimSpace(r.FormValue("message")),
		Make:    strings.TrimSpace(r.FormValue("make")),
		Model:   strings.TrimSpace(r.FormValue("model")),
		Year:    strings.TrimSpace(r.FormValue("year")),
		Mileage: strings.TrimSpace(r.FormValue("mileage")),
	}
	if lead.Name == "" || lead.Email == "" || lead.Phone == "" {
		config.ErrorStatus("name, email and phone are required", http.StatusBadRequest, w, nil)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) < minLeadImages || len(files) > maxLeadImages {
		config.ErrorStatus(fmt.Sprintf("between %d and %d images are required", minLeadImages, maxLeadImages), http.StatusBadRequest, w, nil)
		return
	}

	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			lead.UploadErrors = append(lead.UploadErrors, fmt.Sprintf("%s: %v", fh.Filename, err))
			continue
		}
		url, err := l.Uploader.Upload(r.Context(), fmt.Sprintf("lead-%s-%d", lead.ID, i+1), f)
		f.Close()
		if err != nil {
			zap.S().With(err).Errorw("lead image upload failed", "leadId", lead.ID, "file", fh.Filename)
			lead.UploadErrors = append(lead.UploadErrors, fmt.Sprintf("%s: %v", fh.Filename, err))
			continue
		}
		lead.ImageURLs = append(lead.ImageURLs, url)
	}
	if len(lead.ImageURLs) == 0 {
		config.ErrorStatus("failed to upload lead images", http.StatusInternalServerError, w, nil)
		return
	}

	lead.Status = "new"
	lead.CreatedAt = primitive.NewDateTimeFromTime(time.Now().UTC())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if _, err := l.DB.InsertOne(ctx, lead); err != nil {
		config.ErrorStatus("failed to store lead", http.StatusInternalServerError, w, err)
		return
	}

	// notify sales in the background so upstream email latency never
	// blocks the form response
	go l.notifySales(lead)

	b, err := json.Marshal(lead)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// LeadByIDHandler returns one stored lead; it backs the summary link in
// the notification email.
func (l Lead) LeadByIDHandler(w http.ResponseWriter, r *http.Request) {
	leadID := mux.Vars(r)["lead_id"]
	if leadID == "" {
		config.ErrorStatus("lead_id is required", http.StatusBadRequest, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	lead, err := l.DB.FindOne(ctx, bson.M{"_id": leadID})
	if err != nil {
		config.ErrorStatus("failed to get lead", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(lead)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// leadStatuses is the triage vocabulary
var leadStatuses = map[string]bool{"new": true, "contacted": true, "closed": true}

// ListLeadsHandler returns every stored lead, for the admin triage view.
func (l Lead) ListLeadsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	leads, err := l.DB.Find(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("failed to list leads", http.StatusInternalServerError, w, err)
		return
	}
	if leads == nil {
		leads = []models.Lead{}
	}

	b, err := json.Marshal(leads)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateLeadStatusHandler moves a lead through the triage states.
func (l Lead) UpdateLeadStatusHandler(w http.ResponseWriter, r *http.Request) {
	leadID := mux.Vars(r)["lead_id"]

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !leadStatuses[body.Status] {
		config.ErrorStatus("status must be one of new, contacted, closed", http.StatusBadRequest, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := l.DB.UpdateStatus(ctx, leadID, body.Status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("lead not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update lead status", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"id": %q, "status": %q}`, leadID, body.Status)))
}

// DeleteLeadHandler removes a lead.
func (l Lead) DeleteLeadHandler(w http.ResponseWriter, r *http.Request) {
	leadID := mux.Vars(r)["lead_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := l.DB.Delete(ctx, leadID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("lead not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to delete lead", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}

// notifySales emails the dealership with the lead details and photo links.
func (l Lead) notifySales(lead models.Lead) {
	if l.Config.SendgridAPIKey == "" || l.Config.LeadsNotifyEmail == "" {
		zap.S().Warnw("lead notification skipped, sendgrid is not configured", "leadId", lead.ID)
		return
	}

	summaryURL := strings.TrimRight(l.Config.BaseURL, "/") + "/api/v1/leads/" + lead.ID
	from := mail.NewEmail("RD Group", "noreply@rdgroupautomobili.it")
	to := mail.NewEmail("RD Group Vendite", l.Config.LeadsNotifyEmail)
	subject := fmt.Sprintf("Nuova richiesta di valutazione: %s %s", lead.Make, lead.Model)
	htmlContent := templates.RenderLeadNotification(lead, summaryURL)

	message := mail.NewSingleEmail(from, subject, to, "", htmlContent)
	client := sendgrid.NewSendClient(l.Config.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		zap.S().With(err).Errorw("failed to send lead notification", "leadId", lead.ID)
		return
	}
	zap.S().Infow("lead notification sent", "leadId", lead.ID, "statusCode", response.StatusCode)
}
