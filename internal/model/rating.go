package model

import (
	"math"
	"time"
)

// Score is a star rating between MinScore and MaxScore inclusive.
type Score int

const (
	MinScore Score = 1
	MaxScore Score = 5
)

// Valid reports whether s lies in [MinScore, MaxScore].
func (s Score) Valid() bool {
	return s >= MinScore && s <= MaxScore
}

// ParseScore accepts only integral values in range; 1.5 and 6 are both rejected.
func ParseScore(v float64) (Score, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	s := Score(v)
	return s, s.Valid()
}

// Rating is one user's score for one store. The (user_id, store_id) pair is unique.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_ratings_user_store,priority:1"`
	StoreID   uint      `json:"store_id" gorm:"not null;uniqueIndex:idx_ratings_user_store,priority:2;index"`
	Score     Score     `json:"rating" gorm:"column:rating;type:tinyint;not null;check:chk_ratings_rating,rating BETWEEN 1 AND 5"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Store Store `json:"-" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

// TableName pins the table name.
func (Rating) TableName() string {
	return "ratings"
}

// RatingOutcome is returned by a successful submit or modify.
type RatingOutcome struct {
	Rating        *Rating
	OverallRating Average
}
