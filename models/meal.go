package models

// Meal is a single recipe as returned by TheMealDB. Field tags follow the
// upstream payload so the same struct decodes the API and encodes our own
// responses.
type Meal struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	Thumbnail    string `json:"strMealThumb"`
	Instructions string `json:"strInstructions"`
}
