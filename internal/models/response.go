package models

import "time"

type ProjectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type FileResponse struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	FileName    string     `json:"file_name"`
	SizeBytes   int64      `json:"size_bytes"`
	ContentType string     `json:"content_type,omitempty"`
	DownloadURL string     `json:"download_url"`
	UploadedAt  *time.Time `json:"uploaded_at,omitempty"`
}

type FilesResponse struct {
	Files []FileResponse `json:"files"`
}

type RecentUploadResponse struct {
	FileResponse
	ProjectTitle string `json:"project_title,omitempty"`
}

type DashboardResponse struct {
	ProjectCount      int                    `json:"project_count"`
	TotalFileCount    int64                  `json:"total_file_count"`
	TotalStorageBytes int64                  `json:"total_storage_bytes"`
	RecentUploads     []RecentUploadResponse `json:"recent_uploads"`
	LastUploadAt      *time.Time             `json:"last_upload_at,omitempty"`
	Projects          []ProjectResponse      `json:"projects"`
}

type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type JoinRequestResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Skills string `json:"skills"`
	Role   string `json:"role"`

	Experience   string   `json:"experience,omitempty"`
	Availability string   `json:"availability,omitempty"`
	HourlyRate   *float64 `json:"hourly_rate,omitempty"`

	Company            string   `json:"company,omitempty"`
	DataTypes          []string `json:"data_types,omitempty"`
	ProjectDescription string   `json:"project_description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}

type JoinRequestListResponse struct {
	JoinRequests []JoinRequestResponse `json:"join_requests"`
}

type EmailListResponse struct {
	Emails []string `json:"emails"`
	Count  int      `json:"count"`
}

type SubmissionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
