package workers

import (
	"context"
	"time"

	"bidhouse/internal/logger"
)

// refLister is the slice of the image-ref repository the sweeper needs.
type refLister interface {
	ListImageRefs(ctx context.Context) ([]string, error)
}

// blobSweepStore is the slice of the blob store the sweeper needs.
type blobSweepStore interface {
	Keys(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// ImageSweeper periodically removes blob files no user or auction row
// references anymore. Uploads write the file before the database
// reference, so a failure between the two can strand a file; the sweeper
// is what reclaims it.
type ImageSweeper struct {
	refs     refLister
	blobs    blobSweepStore
	interval time.Duration
	logger   *logger.Logger
}

// NewImageSweeper constructs a sweeper that runs once at startup and then
// on every interval tick.
func NewImageSweeper(refs refLister, blobs blobSweepStore, interval time.Duration, logger *logger.Logger) *ImageSweeper {
	return &ImageSweeper{
		refs:     refs,
		blobs:    blobs,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks for the lifetime of the process, sweeping on every tick.
func (s *ImageSweeper) Run() {
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for range ticker.C {
		s.sweep()
	}
}

// sweep deletes every stored blob whose key is not referenced by any row.
// A file uploaded concurrently with the sweep is never a candidate: its
// reference is committed before the upload response, and the reference
// snapshot is taken after the key listing.
func (s *ImageSweeper) sweep() {
	ctx := s.logger.Logger.WithContext(context.Background())
	log := s.logger.With().Str("func", "*ImageSweeper.sweep").Logger()

	keys, err := s.blobs.Keys(ctx)
	if err != nil {
		log.Err(err).Msg("failed to list blob keys")
		return
	}
	if len(keys) == 0 {
		return
	}

	refs, err := s.refs.ListImageRefs(ctx)
	if err != nil {
		log.Err(err).Msg("failed to list image refs")
		return
	}

	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		referenced[ref] = struct{}{}
	}

	var removed int
	for _, key := range keys {
		if _, ok := referenced[key]; ok {
			continue
		}
		if err := s.blobs.Delete(ctx, key); err != nil {
			log.Err(err).Str("key", key).Msg("failed to delete orphaned blob")
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Info().Int("removed", removed).Msg("orphaned blobs swept")
	}
}
