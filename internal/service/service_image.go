package service

import (
	"context"
	"errors"
	"path/filepath"

	"bidhouse/internal/logger"
	"bidhouse/internal/store"
	"bidhouse/models"
)

// imageExtensions is the upload allow-list: only these content types are
// accepted, and each maps to the extension used in the stored filename.
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/jpeg": ".jpeg",
	"image/jpg":  ".jpg",
}

// contentTypes is the reverse mapping used when serving a stored image.
// Each extension maps back to exactly the content type it was uploaded
// with, so a stored image round-trips byte for byte, header included.
var contentTypes = map[string]string{
	".png":  "image/png",
	".gif":  "image/gif",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpg",
}

// imageService manages the single optional image each user and auction
// may carry. The database row holds the filename reference; the bytes
// live in the blob store under that filename.
type imageService struct {
	imageRefRepository store.ImageRefRepository
	auctionRepository  store.AuctionRepository
	blobStore          store.BlobStore

	logger *logger.Logger
}

// NewImageService constructs an ImageService wired to the given
// repositories and blob store.
func NewImageService(refs store.ImageRefRepository, auctions store.AuctionRepository, blobs store.BlobStore, logger *logger.Logger) ImageService {
	return &imageService{
		imageRefRepository: refs,
		auctionRepository:  auctions,
		blobStore:          blobs,
		logger:             logger,
	}
}

// SetImage stores an uploaded image for the owner.
//
// The content type is checked against the allow-list before any bytes are
// persisted (ErrUnsupportedImageType otherwise). Only the owner may
// upload: the user themselves, or the auction's seller. Reports true when
// the upload created the owner's first image, false when it replaced an
// existing one; a replacement with a different extension also removes the
// superseded file.
func (s *imageService) SetImage(ctx context.Context, owner models.ImageOwner, ownerID, actorID int64, contentType string, data []byte) (bool, error) {
	log := logger.FromContext(ctx)

	extension, ok := imageExtensions[contentType]
	if !ok {
		return false, ErrUnsupportedImageType
	}
	if len(data) == 0 {
		return false, ErrInvalidDataProvided
	}

	if err := s.checkOwnership(ctx, owner, ownerID, actorID); err != nil {
		return false, err
	}

	filename := owner.Filename(ownerID, extension)
	if err := s.blobStore.Write(ctx, filename, data); err != nil {
		log.Err(err).Str("filename", filename).Msg("image write failed")
		return false, err
	}

	previous, err := s.imageRefRepository.SetImageRef(ctx, owner, ownerID, filename)
	if err != nil {
		return false, err
	}

	if previous != "" && previous != filename {
		if err := s.blobStore.Delete(ctx, previous); err != nil && !errors.Is(err, store.ErrAttachmentNotFound) {
			log.Err(err).Str("filename", previous).Msg("superseded image removal failed")
		}
	}

	return previous == "", nil
}

// GetImage returns the owner's stored image. An owner without an image
// surfaces as store.ErrAttachmentNotFound; the content type is derived
// from the stored filename's extension.
func (s *imageService) GetImage(ctx context.Context, owner models.ImageOwner, ownerID int64) (models.Attachment, error) {
	filename, err := s.imageRefRepository.GetImageRef(ctx, owner, ownerID)
	if err != nil {
		return models.Attachment{}, err
	}
	if filename == "" {
		return models.Attachment{}, store.ErrAttachmentNotFound
	}

	data, err := s.blobStore.Read(ctx, filename)
	if err != nil {
		return models.Attachment{}, err
	}

	contentType, ok := contentTypes[filepath.Ext(filename)]
	if !ok {
		// A reference written by this service always has a known
		// extension; anything else is storage corruption.
		return models.Attachment{}, store.ErrAttachmentNotFound
	}

	return models.Attachment{
		ContentType: contentType,
		Data:        data,
	}, nil
}

// RemoveImage deletes the owner's image under the same ownership rule as
// SetImage. An owner without an image surfaces as
// store.ErrAttachmentNotFound.
func (s *imageService) RemoveImage(ctx context.Context, owner models.ImageOwner, ownerID, actorID int64) error {
	log := logger.FromContext(ctx)

	if err := s.checkOwnership(ctx, owner, ownerID, actorID); err != nil {
		return err
	}

	previous, err := s.imageRefRepository.ClearImageRef(ctx, owner, ownerID)
	if err != nil {
		return err
	}

	if err := s.blobStore.Delete(ctx, previous); err != nil && !errors.Is(err, store.ErrAttachmentNotFound) {
		log.Err(err).Str("filename", previous).Msg("image file removal failed")
		return err
	}

	return nil
}

// checkOwnership verifies the actor may mutate the owner's image. For a
// user image the actor must be that user; for an auction image the actor
// must be the seller. Owner absence surfaces as the owner's not-found
// error before the ownership verdict.
func (s *imageService) checkOwnership(ctx context.Context, owner models.ImageOwner, ownerID, actorID int64) error {
	switch owner {
	case models.ImageOwnerUser:
		if ownerID != actorID {
			// Still distinguish a missing user from a forbidden one.
			if _, err := s.imageRefRepository.GetImageRef(ctx, owner, ownerID); err != nil {
				return err
			}
			return ErrNotOwner
		}
		return nil
	case models.ImageOwnerAuction:
		auction, err := s.auctionRepository.GetAuctionByID(ctx, ownerID)
		if err != nil {
			return err
		}
		if auction.SellerID != actorID {
			return ErrNotOwner
		}
		return nil
	default:
		return ErrInvalidDataProvided
	}
}
