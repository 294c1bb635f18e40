package models

import "fmt"

// ImageOwner names the kind of entity an image is attached to. Each owner
// holds zero or one image.
type ImageOwner string

const (
	ImageOwnerUser    ImageOwner = "user"
	ImageOwnerAuction ImageOwner = "auction"
)

// Filename derives the blob-store key for an owner's image, e.g.
// "auction_42.png". The key doubles as the reference stored on the owning
// row.
func (o ImageOwner) Filename(ownerID int64, extension string) string {
	return fmt.Sprintf("%s_%d%s", o, ownerID, extension)
}

// Attachment is a stored image returned to a reader: the raw bytes plus
// the content type they were uploaded with.
type Attachment struct {
	ContentType string
	Data        []byte
}
