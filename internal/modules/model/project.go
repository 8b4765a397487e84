package model

// Entity discriminator values stored on every record.
const (
	EntityProject = "PROJECT"
	EntityFile    = "FILE"
)

// Project status values. Only active projects accept new uploads.
const (
	ProjectStatusActive = "active"
)

// Project is a PROJECT record in the metadata table.
type Project struct {
	PK        string `dynamodbav:"PK" json:"-"`
	SK        string `dynamodbav:"SK" json:"-"`
	Entity    string `dynamodbav:"entity" json:"-"`
	ProjectID string `dynamodbav:"projectId" json:"project_id"`
	OwnerSub  string `dynamodbav:"userSub" json:"-"`
	Name      string `dynamodbav:"name" json:"name"`
	Status    string `dynamodbav:"status" json:"status"`
	CreatedAt string `dynamodbav:"createdAt" json:"created_at"`
	UpdatedAt string `dynamodbav:"updatedAt" json:"updated_at"`
}

// Active reports whether the project accepts new uploads. Records written
// before the status attribute existed count as active.
func (p *Project) Active() bool {
	return p.Status == "" || p.Status == ProjectStatusActive
}
