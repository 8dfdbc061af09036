package services

import "mime/multipart"

// FileSaver persists an uploaded binary and returns the relative URL to
// record on the entity. Implemented by uploads.Saver.
type FileSaver interface {
	Save(category string, file *multipart.FileHeader) (string, error)
}
