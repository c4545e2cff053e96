package domain

// Listing defaults and bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// GenerationQuery selects one page of a generation's species list.
type GenerationQuery struct {
	GenerationID int `json:"generation"`
	Page         int `json:"page" validate:"min=1"`
	PageSize     int `json:"page_size" validate:"min=1,max=100"`
}

// NewGenerationQuery returns a query for the first page with default size.
func NewGenerationQuery(generationID int) GenerationQuery {
	return GenerationQuery{
		GenerationID: generationID,
		Page:         DefaultPage,
		PageSize:     DefaultPageSize,
	}
}
