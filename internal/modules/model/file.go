package model

// File status values. Only queued is written today; the remaining states are
// reserved for the conversion pipeline.
const (
	FileStatusQueued     = "queued"
	FileStatusProcessing = "processing"
	FileStatusDone       = "done"
	FileStatusFailed     = "failed"
)

// File is a FILE record in the metadata table. Bucket and ObjectKey point at
// the backing object; the record owns that object's lifecycle.
type File struct {
	PK          string `dynamodbav:"PK" json:"-"`
	SK          string `dynamodbav:"SK" json:"-"`
	Entity      string `dynamodbav:"entity" json:"-"`
	FileID      string `dynamodbav:"fileId" json:"file_id"`
	ProjectID   string `dynamodbav:"projectId" json:"project_id"`
	OwnerSub    string `dynamodbav:"userSub" json:"-"`
	Filename    string `dynamodbav:"filename" json:"filename"`
	ContentType string `dynamodbav:"contentType" json:"content_type"`
	SizeBytes   *int64 `dynamodbav:"sizeBytes" json:"size_bytes"`
	Bucket      string `dynamodbav:"bucket" json:"bucket"`
	ObjectKey   string `dynamodbav:"key" json:"key"`
	Status      string `dynamodbav:"status" json:"status"`
	CreatedAt   string `dynamodbav:"createdAt" json:"created_at"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updated_at"`
}
