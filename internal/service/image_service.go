package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"bananabill/internal/config"
	"bananabill/internal/domain"
	"bananabill/internal/port"
)

// ImageUploadInput is the DTO for bill image uploads.
type ImageUploadInput struct {
	OwnerID uuid.UUID
	BillID  uuid.UUID
	File    multipart.File
	Header  *multipart.FileHeader
}

// ImageService attaches a photographed bill slip to a bill record.
type ImageService interface {
	Upload(ctx context.Context, input ImageUploadInput) (*domain.Bill, error)
	GetViewURL(ctx context.Context, ownerID, billID uuid.UUID) (string, error)
}

type imageService struct {
	billRepo port.BillRepository
	storage  port.ObjectStorage
	cfg      *config.S3Config
}

// NewImageService creates a new ImageService implementation.
func NewImageService(billRepo port.BillRepository, storage port.ObjectStorage, cfg *config.S3Config) ImageService {
	return &imageService{billRepo: billRepo, storage: storage, cfg: cfg}
}

func (s *imageService) Upload(ctx context.Context, input ImageUploadInput) (*domain.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, input.OwnerID, input.BillID)
	if err != nil {
		return nil, err
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrImageTooLarge
	}

	// Magic-byte detection rather than trusting the client header.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading image header: %w", err)
	}
	detected := http.DetectContentType(buf[:n])
	imageType, ok := domain.AllowedImageContentTypes[detected]
	if !ok {
		return nil, domain.ErrUnsupportedImage
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking image: %w", err)
	}

	key := fmt.Sprintf("bills/%s/%s.%s", bill.ID, uuid.New(), imageType)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.File,
		ContentType: detected,
		Size:        input.Header.Size,
	}); err != nil {
		return nil, domain.ErrUploadFailed
	}

	previousKey := bill.ImageURL
	bill.ImageURL = key
	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	// The bill now points at the new object; a failed cleanup only leaves
	// an orphan behind.
	if previousKey != "" && previousKey != key {
		if err := s.storage.Delete(ctx, s.cfg.Bucket, previousKey); err != nil {
			log.Printf("deleting replaced bill image %s: %v", previousKey, err)
		}
	}
	return bill, nil
}

func (s *imageService) GetViewURL(ctx context.Context, ownerID, billID uuid.UUID) (string, error) {
	bill, err := s.billRepo.GetByID(ctx, ownerID, billID)
	if err != nil {
		return "", err
	}
	if bill.ImageURL == "" {
		return "", domain.ErrNotFound
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.Bucket, bill.ImageURL, s.cfg.PresignExpiry)
}
