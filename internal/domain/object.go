package domain

// UploadedObject describes a blob written by an upload call.
type UploadedObject struct {
	BlobName    string  `json:"blob_name"`
	URL         string  `json:"url"`
	ContentType *string `json:"content_type"`
	Size        int64   `json:"size"`
	UploadedAt  string  `json:"uploaded_at"`
}

// ObjectInfo is one entry of a container listing.
type ObjectInfo struct {
	Name         string  `json:"name"`
	URL          string  `json:"url"`
	ContentType  *string `json:"content_type"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified"`
}
