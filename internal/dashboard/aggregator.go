// Package dashboard builds the per-account portal summary by fanning out
// reads across the account's projects.
package dashboard

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"labelworks-backend/internal/apperror"
	"labelworks-backend/internal/models"
)

// Store is the slice of the external store the aggregator reads from.
type Store interface {
	ListProjects(ownerID uuid.UUID) ([]models.Project, error)
	CountProjectFiles(projectID uuid.UUID) (int64, error)
	ListRecentProjectFiles(projectID uuid.UUID, limit int) ([]models.FileRecord, error)
}

// Summary is derived, never persisted: it is rebuilt on every request.
//
// TotalStorageBytes only covers the recent records fetched per project, not
// every file the account owns. Projects with more files than the per-project
// recent window underreport bytes. That trade of accuracy for read cost is
// intentional and tests depend on it.
type Summary struct {
	ProjectCount      int
	TotalFileCount    int64
	TotalStorageBytes int64
	RecentUploads     []models.FileRecord
	LastUploadAt      *time.Time
	Projects          []models.Project
}

type Aggregator struct {
	store            Store
	recentPerProject int
	recentCap        int
}

// NewAggregator configures the fan-out. recentPerProject bounds how many
// newest files are fetched per project (default 3); recentCap bounds the
// merged activity feed (default 8).
func NewAggregator(store Store, recentPerProject, recentCap int) *Aggregator {
	if recentPerProject < 1 {
		recentPerProject = 3
	}
	if recentCap < 1 {
		recentCap = 8
	}
	return &Aggregator{
		store:            store,
		recentPerProject: recentPerProject,
		recentCap:        recentCap,
	}
}

type projectPartial struct {
	fileCount int64
	recent    []models.FileRecord
}

// Summarize fans out one count query and one recent-files query per
// project, concurrently, and joins before merging. The join is
// all-or-nothing: any fetch failure fails the whole call, there is no
// partial summary.
func (a *Aggregator) Summarize(ownerID uuid.UUID) (*Summary, error) {
	projects, err := a.store.ListProjects(ownerID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeAggregationFailed, "failed to load projects")
	}

	partials := make([]projectPartial, len(projects))

	var group errgroup.Group
	for i, project := range projects {
		i, project := i, project
		group.Go(func() error {
			count, err := a.store.CountProjectFiles(project.ID)
			if err != nil {
				return err
			}
			recent, err := a.store.ListRecentProjectFiles(project.ID, a.recentPerProject)
			if err != nil {
				return err
			}
			partials[i] = projectPartial{fileCount: count, recent: recent}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeAggregationFailed, "failed to aggregate project files")
	}

	summary := &Summary{
		ProjectCount: len(projects),
		Projects:     projects,
	}

	var merged []models.FileRecord
	for _, partial := range partials {
		summary.TotalFileCount += partial.fileCount
		for _, record := range partial.recent {
			summary.TotalStorageBytes += record.SizeBytes
			merged = append(merged, record)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return uploadEpoch(merged[i]) > uploadEpoch(merged[j])
	})
	if len(merged) > a.recentCap {
		merged = merged[:a.recentCap]
	}
	summary.RecentUploads = merged

	if len(merged) > 0 && merged[0].UploadedAt.Valid {
		t := merged[0].UploadedAt.Time
		summary.LastUploadAt = &t
	}

	return summary, nil
}

// uploadEpoch orders records by upload time. Records whose server
// timestamp has not resolved yet order as epoch zero, i.e. last.
func uploadEpoch(record models.FileRecord) int64 {
	if !record.UploadedAt.Valid {
		return 0
	}
	return record.UploadedAt.Time.UnixMilli()
}
