package emotion

// Emotion is seeded reference data. The ID is the enumerated code the
// client selects from, e.g. "ANXIETY".
type Emotion struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Icon        string `json:"icon" db:"icon"`
	Description string `json:"description" db:"description"`
	Color       string `json:"color" db:"color"`
}
