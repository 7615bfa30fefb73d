package models

import "time"

// User represents a registered user. The id doubles as the value callers send
// in the Authorization header.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Image     *string   `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Meal represents one logged meal. Date and time are opaque strings, stored
// and returned exactly as submitted.
type Meal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	OnDiet      bool      `json:"onDiet"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Summary aggregates a user's diet adherence. The percentage is formatted
// with two decimals and returned as text.
type Summary struct {
	TotalMeals            int    `json:"totalMeals"`
	TotalMealsIn          int    `json:"totalMealsIn"`
	TotalMealsOut         int    `json:"totalMealsOut"`
	RoundedMealsInPercent string `json:"roundedMealsInPercent"`
}
