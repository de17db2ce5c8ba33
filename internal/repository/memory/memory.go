// Package memory provides in-process implementations of the repository
// interfaces. All three repositories share one DB so listings can join across
// users, stores and ratings the same way the SQL ones do.
package memory

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"storerating/internal/model"
	"storerating/internal/repository"
)

// DB holds every table behind a single lock.
type DB struct {
	mu      sync.RWMutex
	users   map[uint]model.User
	stores  map[uint]model.Store
	ratings map[uint]model.Rating
	nextID  map[string]uint
	now     func() time.Time
}

// NewDB returns an empty database.
func NewDB() *DB {
	return &DB{
		users:   make(map[uint]model.User),
		stores:  make(map[uint]model.Store),
		ratings: make(map[uint]model.Rating),
		nextID:  make(map[string]uint),
		now:     time.Now,
	}
}

// Users returns a UserRepository over db.
func (db *DB) Users() repository.UserRepository { return &userRepository{db: db} }

// Stores returns a StoreRepository over db.
func (db *DB) Stores() repository.StoreRepository { return &storeRepository{db: db} }

// Ratings returns a RatingRepository over db.
func (db *DB) Ratings() repository.RatingRepository { return &ratingRepository{db: db} }

func (db *DB) id(table string) uint {
	db.nextID[table]++
	return db.nextID[table]
}

// storeScores collects every score for storeID. Callers hold the lock.
func (db *DB) storeScores(storeID uint) []model.Score {
	var scores []model.Score
	for _, r := range db.ratings {
		if r.StoreID == storeID {
			scores = append(scores, r.Score)
		}
	}
	return scores
}

func (db *DB) ownerScores(ownerID uint) []model.Score {
	var scores []model.Score
	for _, r := range db.ratings {
		if s, ok := db.stores[r.StoreID]; ok && s.OwnerID != nil && *s.OwnerID == ownerID {
			scores = append(scores, r.Score)
		}
	}
	return scores
}

func (db *DB) findRating(userID, storeID uint) (model.Rating, bool) {
	for _, r := range db.ratings {
		if r.UserID == userID && r.StoreID == storeID {
			return r, true
		}
	}
	return model.Rating{}, false
}

func contains(field, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(field), strings.ToLower(filter))
}

func window[T any](items []T, p model.Page) []T {
	p = p.Normalized()
	if p.Offset >= len(items) {
		return []T{}
	}
	if p.Limit > len(items)-p.Offset {
		return items[p.Offset:]
	}
	return items[p.Offset : p.Offset+p.Limit]
}

// sortBy orders items by key in the given direction, breaking ties on id ASC.
func sortBy[T any](items []T, order model.SortOrder, key func(a, b T) int, id func(T) uint) {
	slices.SortStableFunc(items, func(a, b T) int {
		c := key(a, b)
		if order == model.SortDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	})
}
