package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description sql.NullString
	CreatedAt   time.Time
}

// FileRecord is the metadata row for one stored object. UploadedAt is
// nullable: a record can briefly exist before the server timestamp
// resolves.
type FileRecord struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	FileName    string
	SizeBytes   int64
	ContentType sql.NullString
	StoragePath string
	DownloadURL string
	UploadedAt  sql.NullTime
}
