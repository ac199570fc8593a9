package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"labelworks-backend/internal/apperror"
	"labelworks-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) CreateProject(ownerID uuid.UUID, title, description string) (*models.Project, error) {
	var project models.Project
	err := d.db.QueryRow(`
		INSERT INTO projects (owner_id, title, description)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id, owner_id, title, description, created_at
	`, ownerID, title, description).Scan(
		&project.ID, &project.OwnerID, &project.Title,
		&project.Description, &project.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &project, nil
}

func (d *DatabaseClient) GetProject(projectID, ownerID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := d.db.QueryRow(`
		SELECT id, owner_id, title, description, created_at
		FROM projects
		WHERE id = $1 AND owner_id = $2
	`, projectID, ownerID).Scan(
		&project.ID, &project.OwnerID, &project.Title,
		&project.Description, &project.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

// ListProjects returns the owner's projects newest first. Creation-time
// ties fall back to the store's row order, which callers must not rely on.
func (d *DatabaseClient) ListProjects(ownerID uuid.UUID) ([]models.Project, error) {
	rows, err := d.db.Query(`
		SELECT id, owner_id, title, description, created_at
		FROM projects
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID, &project.OwnerID, &project.Title,
			&project.Description, &project.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func (d *DatabaseClient) DeleteProject(projectID, ownerID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM projects
		WHERE id = $1 AND owner_id = $2
	`, projectID, ownerID)
	return err
}

func (d *DatabaseClient) CreateFileRecord(record *models.FileRecord) (*models.FileRecord, error) {
	var created models.FileRecord
	err := d.db.QueryRow(`
		INSERT INTO project_files (project_id, file_name, size_bytes, content_type, storage_path, download_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, project_id, file_name, size_bytes, content_type, storage_path, download_url, uploaded_at
	`, record.ProjectID, record.FileName, record.SizeBytes, record.ContentType,
		record.StoragePath, record.DownloadURL).Scan(
		&created.ID, &created.ProjectID, &created.FileName, &created.SizeBytes,
		&created.ContentType, &created.StoragePath, &created.DownloadURL, &created.UploadedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return &created, nil
}

func (d *DatabaseClient) GetFileRecord(fileID, projectID uuid.UUID) (*models.FileRecord, error) {
	var record models.FileRecord
	err := d.db.QueryRow(`
		SELECT id, project_id, file_name, size_bytes, content_type, storage_path, download_url, uploaded_at
		FROM project_files
		WHERE id = $1 AND project_id = $2
	`, fileID, projectID).Scan(
		&record.ID, &record.ProjectID, &record.FileName, &record.SizeBytes,
		&record.ContentType, &record.StoragePath, &record.DownloadURL, &record.UploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file record: %w", err)
	}

	return &record, nil
}

func (d *DatabaseClient) ListProjectFiles(projectID uuid.UUID) ([]models.FileRecord, error) {
	return d.queryFileRecords(`
		SELECT id, project_id, file_name, size_bytes, content_type, storage_path, download_url, uploaded_at
		FROM project_files
		WHERE project_id = $1
		ORDER BY uploaded_at DESC NULLS LAST
	`, projectID)
}

// ListRecentProjectFiles returns the newest records for one project,
// bounded by limit. Records still waiting on a server timestamp sort last.
func (d *DatabaseClient) ListRecentProjectFiles(projectID uuid.UUID, limit int) ([]models.FileRecord, error) {
	return d.queryFileRecords(`
		SELECT id, project_id, file_name, size_bytes, content_type, storage_path, download_url, uploaded_at
		FROM project_files
		WHERE project_id = $1
		ORDER BY uploaded_at DESC NULLS LAST
		LIMIT $2
	`, projectID, limit)
}

func (d *DatabaseClient) queryFileRecords(query string, args ...interface{}) ([]models.FileRecord, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list file records: %w", err)
	}
	defer rows.Close()

	var records []models.FileRecord
	for rows.Next() {
		var record models.FileRecord
		err := rows.Scan(
			&record.ID, &record.ProjectID, &record.FileName, &record.SizeBytes,
			&record.ContentType, &record.StoragePath, &record.DownloadURL, &record.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// CountProjectFiles is a server-side aggregate so the dashboard never pulls
// whole file collections just to count them.
func (d *DatabaseClient) CountProjectFiles(projectID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM project_files WHERE project_id = $1
	`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count project files: %w", err)
	}
	return count, nil
}

func (d *DatabaseClient) DeleteFileRecord(fileID, projectID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM project_files
		WHERE id = $1 AND project_id = $2
	`, fileID, projectID)
	return err
}

func (d *DatabaseClient) CreateContact(name, email, message string) (*models.Contact, error) {
	var contact models.Contact
	err := d.db.QueryRow(`
		INSERT INTO contacts (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, message, created_at
	`, name, email, message).Scan(
		&contact.ID, &contact.Name, &contact.Email, &contact.Message, &contact.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return &contact, nil
}

func (d *DatabaseClient) ListContacts() ([]models.Contact, error) {
	rows, err := d.db.Query(`
		SELECT id, name, email, message, created_at
		FROM contacts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var contact models.Contact
		err := rows.Scan(&contact.ID, &contact.Name, &contact.Email, &contact.Message, &contact.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}

func (d *DatabaseClient) DeleteContact(contactID uuid.UUID) error {
	result, err := d.db.Exec(`DELETE FROM contacts WHERE id = $1`, contactID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperror.ErrLeadNotFound
	}
	return nil
}

func (d *DatabaseClient) CreateJoinRequest(request *models.JoinRequest) (*models.JoinRequest, error) {
	var experience, availability, company, projectDescription sql.NullString
	var hourlyRate sql.NullFloat64
	var dataTypes []string

	switch request.Role {
	case models.JoinRoleLabeler:
		if request.Labeler != nil {
			experience = nullIfEmpty(request.Labeler.Experience)
			availability = nullIfEmpty(request.Labeler.Availability)
			hourlyRate = request.Labeler.HourlyRate
		}
	case models.JoinRoleProvider:
		if request.Provider != nil {
			company = nullIfEmpty(request.Provider.Company)
			projectDescription = nullIfEmpty(request.Provider.ProjectDescription)
			dataTypes = request.Provider.DataTypes
		}
	}

	var created models.JoinRequest
	var role string
	var outExperience, outAvailability, outCompany, outProjectDescription sql.NullString
	var outHourlyRate sql.NullFloat64
	var outDataTypes pq.StringArray

	err := d.db.QueryRow(`
		INSERT INTO join_requests (name, email, skills, role, experience, availability, hourly_rate, company, data_types, project_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, name, email, skills, role, experience, availability, hourly_rate, company, data_types, project_description, created_at
	`, request.Name, request.Email, request.Skills, string(request.Role),
		experience, availability, hourlyRate, company, pq.Array(dataTypes), projectDescription).Scan(
		&created.ID, &created.Name, &created.Email, &created.Skills, &role,
		&outExperience, &outAvailability, &outHourlyRate,
		&outCompany, &outDataTypes, &outProjectDescription, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create join request: %w", err)
	}

	populateJoinDetails(&created, role, outExperience, outAvailability, outHourlyRate,
		outCompany, outDataTypes, outProjectDescription)
	return &created, nil
}

func (d *DatabaseClient) ListJoinRequests() ([]models.JoinRequest, error) {
	rows, err := d.db.Query(`
		SELECT id, name, email, skills, role, experience, availability, hourly_rate, company, data_types, project_description, created_at
		FROM join_requests
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list join requests: %w", err)
	}
	defer rows.Close()

	var requests []models.JoinRequest
	for rows.Next() {
		var request models.JoinRequest
		var role string
		var experience, availability, company, projectDescription sql.NullString
		var hourlyRate sql.NullFloat64
		var dataTypes pq.StringArray

		err := rows.Scan(
			&request.ID, &request.Name, &request.Email, &request.Skills, &role,
			&experience, &availability, &hourlyRate,
			&company, &dataTypes, &projectDescription, &request.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan join request: %w", err)
		}

		populateJoinDetails(&request, role, experience, availability, hourlyRate,
			company, dataTypes, projectDescription)
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

func (d *DatabaseClient) DeleteJoinRequest(requestID uuid.UUID) error {
	result, err := d.db.Exec(`DELETE FROM join_requests WHERE id = $1`, requestID)
	if err != nil {
		return fmt.Errorf("failed to delete join request: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperror.ErrLeadNotFound
	}
	return nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

func populateJoinDetails(request *models.JoinRequest, role string,
	experience, availability sql.NullString, hourlyRate sql.NullFloat64,
	company sql.NullString, dataTypes []string, projectDescription sql.NullString) {

	request.Role = models.JoinRole(role)
	switch request.Role {
	case models.JoinRoleLabeler:
		request.Labeler = &models.LabelerDetails{
			Experience:   experience.String,
			Availability: availability.String,
			HourlyRate:   hourlyRate,
		}
	case models.JoinRoleProvider:
		request.Provider = &models.ProviderDetails{
			Company:            company.String,
			DataTypes:          dataTypes,
			ProjectDescription: projectDescription.String,
		}
	}
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
