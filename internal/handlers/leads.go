package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"labelworks-backend/internal/adminreview"
	"labelworks-backend/internal/apperror"
	"labelworks-backend/internal/models"
	"labelworks-backend/internal/supabase"
	"labelworks-backend/internal/validation"
)

var contactCSVHeader = []string{"id", "name", "email", "message", "created_at"}

var joinCSVHeader = []string{"id", "name", "email", "role", "skills", "experience",
	"availability", "hourly_rate", "company", "data_types", "project_description", "created_at"}

type LeadsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewLeadsHandler(dbClient *supabase.DatabaseClient) *LeadsHandler {
	return &LeadsHandler{
		dbClient: dbClient,
	}
}

// SubmitContact writes one contact lead. Public, rate limited.
func (h *LeadsHandler) SubmitContact(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if err := validateLeadBase(req.Name, req.Email, req.Message, "message"); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation failed", Message: err.Error()})
		return
	}

	contact, err := h.dbClient.CreateContact(req.Name, validation.NormalizeEmail(req.Email), req.Message)
	if err != nil {
		respondError(c, apperror.Wrap(err, apperror.ErrCodeSubmissionFailed, "contact submission rejected"), "failed to submit contact")
		return
	}

	c.JSON(http.StatusCreated, models.SubmissionResponse{ID: contact.ID.String(), Status: "received"})
}

// SubmitJoin writes one join-request lead. The role tag picks which
// optional detail fields are stored; unknown roles default to labeler.
func (h *LeadsHandler) SubmitJoin(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	var req models.JoinRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if err := validateLeadBase(req.Name, req.Email, req.Skills, "skills"); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation failed", Message: err.Error()})
		return
	}
	if req.HourlyRate != nil && (*req.HourlyRate < 0 || *req.HourlyRate > validation.MaxHourlyRate) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation failed", Message: "hourly_rate out of range"})
		return
	}

	request := &models.JoinRequest{
		Name:   req.Name,
		Email:  validation.NormalizeEmail(req.Email),
		Skills: req.Skills,
	}

	switch models.JoinRole(req.Role) {
	case models.JoinRoleProvider:
		request.Role = models.JoinRoleProvider
		request.Provider = &models.ProviderDetails{
			Company:            req.Company,
			DataTypes:          req.DataTypes,
			ProjectDescription: req.ProjectDescription,
		}
	default:
		request.Role = models.JoinRoleLabeler
		details := &models.LabelerDetails{
			Experience:   req.Experience,
			Availability: req.Availability,
		}
		if req.HourlyRate != nil {
			details.HourlyRate.Float64 = *req.HourlyRate
			details.HourlyRate.Valid = true
		}
		request.Labeler = details
	}

	created, err := h.dbClient.CreateJoinRequest(request)
	if err != nil {
		respondError(c, apperror.Wrap(err, apperror.ErrCodeSubmissionFailed, "join submission rejected"), "failed to submit join request")
		return
	}

	c.JSON(http.StatusCreated, models.SubmissionResponse{ID: created.ID.String(), Status: "received"})
}

// ListContacts returns contact leads after applying the review filter
// (free-text search, inclusive date bounds, chronological sort).
func (h *LeadsHandler) ListContacts(c *gin.Context) {
	records, contacts, ok := h.filteredContacts(c)
	if !ok {
		return
	}

	responses := make([]models.ContactResponse, len(records))
	for i, record := range records {
		responses[i] = contactResponseFrom(contacts[record.ID])
	}

	c.JSON(http.StatusOK, models.ContactListResponse{Contacts: responses})
}

func (h *LeadsHandler) ListJoinRequests(c *gin.Context) {
	records, requests, ok := h.filteredJoinRequests(c)
	if !ok {
		return
	}

	responses := make([]models.JoinRequestResponse, len(records))
	for i, record := range records {
		responses[i] = joinResponseFrom(requests[record.ID])
	}

	c.JSON(http.StatusOK, models.JoinRequestListResponse{JoinRequests: responses})
}

func (h *LeadsHandler) DeleteContact(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	leadID, ok := pathUUID(c, "lead_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteContact(leadID); err != nil {
		respondError(c, err, "failed to delete contact")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "contact deleted successfully"})
}

func (h *LeadsHandler) DeleteJoinRequest(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	leadID, ok := pathUUID(c, "lead_id")
	if !ok {
		return
	}

	if err := h.dbClient.DeleteJoinRequest(leadID); err != nil {
		respondError(c, err, "failed to delete join request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "join request deleted successfully"})
}

// ExportContactsCSV streams the filtered contacts as a CSV attachment.
func (h *LeadsHandler) ExportContactsCSV(c *gin.Context) {
	records, _, ok := h.filteredContacts(c)
	if !ok {
		return
	}

	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = record.CSVRow
	}

	c.Header("Content-Disposition", `attachment; filename="contacts.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(adminreview.CSV(contactCSVHeader, rows)))
}

func (h *LeadsHandler) ExportJoinRequestsCSV(c *gin.Context) {
	records, _, ok := h.filteredJoinRequests(c)
	if !ok {
		return
	}

	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = record.CSVRow
	}

	c.Header("Content-Disposition", `attachment; filename="join_requests.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(adminreview.CSV(joinCSVHeader, rows)))
}

// ListContactEmails backs the bulk copy-emails action with the filtered,
// deduplicated address list.
func (h *LeadsHandler) ListContactEmails(c *gin.Context) {
	records, _, ok := h.filteredContacts(c)
	if !ok {
		return
	}

	emails := adminreview.Emails(records)
	c.JSON(http.StatusOK, models.EmailListResponse{Emails: emails, Count: len(emails)})
}

func (h *LeadsHandler) ListJoinRequestEmails(c *gin.Context) {
	records, _, ok := h.filteredJoinRequests(c)
	if !ok {
		return
	}

	emails := adminreview.Emails(records)
	c.JSON(http.StatusOK, models.EmailListResponse{Emails: emails, Count: len(emails)})
}

func (h *LeadsHandler) filteredContacts(c *gin.Context) ([]adminreview.Record, map[string]models.Contact, bool) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return nil, nil, false
	}

	query, ok := reviewQuery(c)
	if !ok {
		return nil, nil, false
	}

	contacts, err := h.dbClient.ListContacts()
	if err != nil {
		respondError(c, err, "failed to list contacts")
		return nil, nil, false
	}

	byID := make(map[string]models.Contact, len(contacts))
	records := make([]adminreview.Record, len(contacts))
	for i, contact := range contacts {
		byID[contact.ID.String()] = contact
		createdAt := contact.CreatedAt
		records[i] = adminreview.Record{
			ID:        contact.ID.String(),
			Name:      contact.Name,
			Email:     contact.Email,
			Body:      contact.Message,
			CreatedAt: &createdAt,
			CSVRow: []string{
				contact.ID.String(), contact.Name, contact.Email,
				contact.Message, contact.CreatedAt.Format(time.RFC3339),
			},
		}
	}

	return adminreview.Filter(records, query), byID, true
}

func (h *LeadsHandler) filteredJoinRequests(c *gin.Context) ([]adminreview.Record, map[string]models.JoinRequest, bool) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return nil, nil, false
	}

	query, ok := reviewQuery(c)
	if !ok {
		return nil, nil, false
	}

	requests, err := h.dbClient.ListJoinRequests()
	if err != nil {
		respondError(c, err, "failed to list join requests")
		return nil, nil, false
	}

	byID := make(map[string]models.JoinRequest, len(requests))
	records := make([]adminreview.Record, len(requests))
	for i, request := range requests {
		byID[request.ID.String()] = request
		createdAt := request.CreatedAt
		records[i] = adminreview.Record{
			ID:        request.ID.String(),
			Name:      request.Name,
			Email:     request.Email,
			Body:      request.Skills,
			CreatedAt: &createdAt,
			CSVRow:    joinCSVRow(request),
		}
	}

	return adminreview.Filter(records, query), byID, true
}

// reviewQuery parses q, from, to (YYYY-MM-DD, local time) and sort query
// parameters into a review filter.
func reviewQuery(c *gin.Context) (adminreview.Query, bool) {
	query := adminreview.Query{
		Text: c.Query("q"),
		Sort: adminreview.SortNewestFirst,
	}
	if c.Query("sort") == string(adminreview.SortOldestFirst) {
		query.Sort = adminreview.SortOldestFirst
	}

	for _, bound := range []struct {
		param  string
		target **time.Time
	}{
		{"from", &query.FromDate},
		{"to", &query.ToDate},
	} {
		value := c.Query(bound.param)
		if value == "" {
			continue
		}
		parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid " + bound.param + " date",
				Message: "expected YYYY-MM-DD",
			})
			return adminreview.Query{}, false
		}
		*bound.target = &parsed
	}

	return query, true
}

func validateLeadBase(name, email, body, bodyField string) error {
	if err := validation.ValidateLength("name", name, validation.MinNameLength, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}
	return validation.ValidateLength(bodyField, body, validation.MinMessageLength, validation.MaxMessageLength)
}

func joinCSVRow(request models.JoinRequest) []string {
	var experience, availability, hourlyRate, company, dataTypes, projectDescription string
	if request.Labeler != nil {
		experience = request.Labeler.Experience
		availability = request.Labeler.Availability
		if request.Labeler.HourlyRate.Valid {
			hourlyRate = strconv.FormatFloat(request.Labeler.HourlyRate.Float64, 'f', -1, 64)
		}
	}
	if request.Provider != nil {
		company = request.Provider.Company
		dataTypes = strings.Join(request.Provider.DataTypes, "; ")
		projectDescription = request.Provider.ProjectDescription
	}

	return []string{
		request.ID.String(), request.Name, request.Email, string(request.Role),
		request.Skills, experience, availability, hourlyRate,
		company, dataTypes, projectDescription,
		request.CreatedAt.Format(time.RFC3339),
	}
}

func contactResponseFrom(contact models.Contact) models.ContactResponse {
	return models.ContactResponse{
		ID:        contact.ID.String(),
		Name:      contact.Name,
		Email:     contact.Email,
		Message:   contact.Message,
		CreatedAt: contact.CreatedAt,
	}
}

func joinResponseFrom(request models.JoinRequest) models.JoinRequestResponse {
	response := models.JoinRequestResponse{
		ID:        request.ID.String(),
		Name:      request.Name,
		Email:     request.Email,
		Skills:    request.Skills,
		Role:      string(request.Role),
		CreatedAt: request.CreatedAt,
	}
	if request.Labeler != nil {
		response.Experience = request.Labeler.Experience
		response.Availability = request.Labeler.Availability
		if request.Labeler.HourlyRate.Valid {
			rate := request.Labeler.HourlyRate.Float64
			response.HourlyRate = &rate
		}
	}
	if request.Provider != nil {
		response.Company = request.Provider.Company
		response.DataTypes = request.Provider.DataTypes
		response.ProjectDescription = request.Provider.ProjectDescription
	}
	return response
}
