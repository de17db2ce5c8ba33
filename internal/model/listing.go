package model

// StoreListing is a store row as seen by an authenticated caller.
type StoreListing struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	OwnerID       *uint   `json:"owner_id"`
	OwnerName     *string `json:"owner_name"`
	OverallRating Average `json:"overall_rating"`
	UserRating    *Score  `json:"user_rating,omitempty"`
}

// AdminStoreListing is a store row in the admin listing.
type AdminStoreListing struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Address   string  `json:"address"`
	OwnerID   *uint   `json:"owner_id"`
	OwnerName *string `json:"owner_name"`
	AvgRating Average `json:"avg_rating"`
}

// UserListing is a user row in the admin listing. OwnerRating is nil for non-owners.
type UserListing struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Role        Role     `json:"role"`
	OwnerRating *Average `json:"owner_rating"`
}

// OwnedStore is a store summary nested under an owner's details.
type OwnedStore struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Address   string  `json:"address"`
	AvgRating Average `json:"avg_rating"`
}

// UserDetail is the admin view of a single user. Owners also carry their stores.
type UserDetail struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Address     string       `json:"address"`
	Role        Role         `json:"role"`
	Stores      []OwnedStore `json:"stores,omitempty"`
	OwnerRating *Average     `json:"owner_rating,omitempty"`
}

// Rater is one rating row on the owner dashboard.
type Rater struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Rating Score  `json:"rating"`
}

// OwnerStoreReport is one store on the owner dashboard.
type OwnerStoreReport struct {
	StoreID       uint    `json:"store_id"`
	StoreName     string  `json:"store_name"`
	Address       string  `json:"address"`
	AvgRating     Average `json:"avg_rating"`
	UsersWhoRated []Rater `json:"users_who_rated"`
}

// OwnerDashboard is the fixed report for the calling owner.
type OwnerDashboard struct {
	OwnerID uint               `json:"owner_id"`
	Message string             `json:"message,omitempty"`
	Stores  []OwnerStoreReport `json:"stores"`
}

// DashboardCounts are the admin totals.
type DashboardCounts struct {
	TotalUsers   int64 `json:"total_users"`
	TotalStores  int64 `json:"total_stores"`
	TotalRatings int64 `json:"total_ratings"`
}
