package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/luct-faculty/reporting-api/pkg/errors"
	"github.com/luct-faculty/reporting-api/pkg/jobs"
	"github.com/luct-faculty/reporting-api/pkg/storage"
)

// ArchivedExport is a previously rendered export served back from disk.
type ArchivedExport struct {
	Content     []byte
	Filename    string
	ContentType string
}

type archivePayload struct {
	RelPath string
	Content []byte
}

// ExportArchiveService keeps a short-lived on-disk copy of every rendered
// export so reviewers can re-download one without re-rendering it. Writes
// go through a background queue; retrieval is by signed token.
type ExportArchiveService struct {
	store  *storage.FileStore
	signer *storage.TokenSigner
	queue  *jobs.Queue
	retain time.Duration
	logger *zap.Logger
	cancel context.CancelFunc
}

// NewExportArchiveService wires the store, token signer and write queue.
func NewExportArchiveService(store *storage.FileStore, signer *storage.TokenSigner, workers int, retain time.Duration, logger *zap.Logger) *ExportArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retain <= 0 {
		retain = 24 * time.Hour
	}

	s := &ExportArchiveService{
		store:  store,
		signer: signer,
		retain: retain,
		logger: logger,
	}
	s.queue = jobs.NewQueue("export-archive", s.persist, jobs.QueueConfig{
		Workers: workers,
		Logger:  logger,
	})
	return s
}

// Start launches the archive workers and the retention sweeper.
func (s *ExportArchiveService) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.queue.Start(ctx)
	go s.sweep(ctx)
}

// Stop drains the workers.
func (s *ExportArchiveService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.queue.Stop()
}

// Archive queues the export for persistence and returns the signed
// download token. The file may not be on disk yet when this returns.
func (s *ExportArchiveService) Archive(result ExportResult) (string, error) {
	jobID := uuid.NewString()
	relPath := path.Join(jobID, result.Filename)

	token, _, err := s.signer.Sign(jobID, relPath)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export token")
	}

	err = s.queue.Enqueue(jobs.Job{
		ID:      jobID,
		Kind:    "export-archive",
		Payload: archivePayload{RelPath: relPath, Content: result.Content},
	})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export archive")
	}
	return token, nil
}

// Fetch validates the token and reads the archived file back.
func (s *ExportArchiveService) Fetch(token string) (*ArchivedExport, error) {
	_, relPath, err := s.signer.Verify(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export not found or expired")
	}

	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export not found or expired")
	}
	defer file.Close() //nolint:errcheck

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read archived export")
	}

	filename := path.Base(relPath)
	return &ArchivedExport{
		Content:     content,
		Filename:    filename,
		ContentType: contentTypeForExport(filename),
	}, nil
}

func (s *ExportArchiveService) persist(_ context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(archivePayload)
	if !ok {
		return fmt.Errorf("unexpected payload for job %s", job.ID)
	}
	if err := s.store.Save(payload.RelPath, payload.Content); err != nil {
		return err
	}
	s.logger.Sugar().Debugw("export archived", "job_id", job.ID, "path", payload.RelPath)
	return nil
}

func (s *ExportArchiveService) sweep(ctx context.Context) {
	interval := s.retain / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.store.Sweep(s.retain)
			if err != nil {
				s.logger.Sugar().Warnw("export cleanup failed", "error", err)
				continue
			}
			if len(deleted) > 0 {
				s.logger.Sugar().Infow("expired exports removed", "count", len(deleted))
			}
		}
	}
}

func contentTypeForExport(filename string) string {
	switch path.Ext(filename) {
	case ".csv":
		return "text/csv"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
