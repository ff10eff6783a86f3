package domain

import "context"

// Renderer rasterizes a paginated document to image files
type Renderer interface {
	// Export renders the selected pages of the document at path and returns
	// the manifest of written files
	Export(path string, opts RenderOptions) (*Manifest, error)
}

// Uploader pushes a local file to the hosted API and returns its file ID
type Uploader interface {
	UploadFile(ctx context.Context, path string) (string, error)
}
