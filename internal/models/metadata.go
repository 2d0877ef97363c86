package models

// MetadataRequest is the body of POST /generate-metadata.
type MetadataRequest struct {
	Keywords []string `json:"keywords" binding:"required"`
}

type GeneratedMetadata struct {
	GeneratedMetadata string `json:"generated_metadata"`
}
