package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/observability"
)

var (
	// ErrScanFileRequired indicates no file was attached to the upload.
	ErrScanFileRequired = errors.New("scan file is required")
	// ErrScanTooLarge indicates the payload exceeded the configured limit.
	ErrScanTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrScanTypeNotAllowed indicates the MIME type is not permitted.
	ErrScanTypeNotAllowed = errors.New("file type not allowed")
)

// FileStorage abstracts upload destinations.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

var allowedScanTypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}

// ScanService accepts marksheet images and returns extracted subject rows.
// Extraction is a fixed demo table until a real OCR backend is wired in.
type ScanService interface {
	Scan(ctx context.Context, userID uint, file *multipart.FileHeader) (dto.ScanResponse, error)
}

type scanService struct {
	storage FileStorage
	logger  zerolog.Logger
	maxSize int64
}

// NewScanService constructs a ScanService instance.
func NewScanService(storage FileStorage, maxSizeMB int, logger zerolog.Logger) ScanService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &scanService{
		storage: storage,
		logger:  logger.With().Str("component", "scan_service").Logger(),
		maxSize: int64(maxSizeMB) * 1024 * 1024,
	}
}

func (s *scanService) Scan(ctx context.Context, userID uint, file *multipart.FileHeader) (dto.ScanResponse, error) {
	start := time.Now()
	defer func() {
		observability.ScanLatency().Observe(time.Since(start).Seconds())
	}()

	if file == nil {
		return dto.ScanResponse{}, ErrScanFileRequired
	}
	if file.Size > s.maxSize {
		observability.ScanRejected().WithLabelValues("size").Inc()
		return dto.ScanResponse{}, ErrScanTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return dto.ScanResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return dto.ScanResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.ScanRejected().WithLabelValues("size").Inc()
		return dto.ScanResponse{}, ErrScanTooLarge
	}

	detected := mimetype.Detect(buf.Bytes())
	if !scanTypeAllowed(detected.String()) {
		observability.ScanRejected().WithLabelValues("type").Inc()
		return dto.ScanResponse{}, ErrScanTypeNotAllowed
	}

	url := ""
	if s.storage != nil {
		url, err = s.storage.Upload(ctx, file.Filename, bytes.NewReader(buf.Bytes()))
		if err != nil {
			s.logger.Warn().Err(err).Msg("scan upload failed, continuing with extraction")
		}
	}

	s.logger.Info().Uint("user_id", userID).Str("mime", detected.String()).Msg("marksheet scan processed")

	return dto.ScanResponse{
		FileURL:  url,
		Subjects: demoScanRows(),
	}, nil
}

func scanTypeAllowed(mime string) bool {
	for _, allowed := range allowedScanTypes {
		if mime == allowed {
			return true
		}
	}
	return false
}

// demoScanRows stands in for OCR output.
func demoScanRows() []dto.MarksheetSubjectInput {
	return []dto.MarksheetSubjectInput{
		{Name: "Mathematics", Marks: 92},
		{Name: "Physics", Marks: 88},
		{Name: "Chemistry", Marks: 85},
		{Name: "English", Marks: 78},
	}
}
