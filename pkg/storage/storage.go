package storage

import "context"

// Storage puts binary objects into a blob store and reports the public
// location they end up at.
type Storage interface {
	Upload(context.Context, *UploadObject) (*UploadResponse, error)
	BulkUpload(context.Context, []*UploadObject) ([]*UploadResponse, error)
}

// UploadObject describes a single object to store. The object key is
// Prefix/FileName inside Bucket.
type UploadObject struct {
	Bucket   string
	Prefix   string
	FileName string
	Mime     string
	Data     []byte
}

type UploadResponse struct {
	Url      string
	FileName string
}
