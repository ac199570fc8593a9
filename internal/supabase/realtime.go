package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// RealtimeClient notifies live file-list subscribers. Database writes
// already trigger Supabase Realtime changefeeds; explicit publishes here
// are fire-and-forget and carry no ordering guarantee.
type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Go client has no direct Realtime publish; row changes on
	// project_files reach subscribers through the table changefeed.
	// Kept as the single seam for explicit event publishing.
	return nil
}

func (r *RealtimeClient) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("project:%s", projectID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func FileUploadedPayload(projectID, fileID uuid.UUID, fileName string, sizeBytes int64) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"file_id":    fileID.String(),
		"file_name":  fileName,
		"size_bytes": sizeBytes,
		"event":      "file_uploaded",
	}
}

func FileDeletedPayload(projectID, fileID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"file_id":    fileID.String(),
		"event":      "file_deleted",
	}
}

func ProjectDeletedPayload(projectID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"event":      "project_deleted",
	}
}
