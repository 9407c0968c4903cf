package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CategoryKey string

const (
	CategoryUniversities CategoryKey = "universities"
	CategoryCorporates   CategoryKey = "corporates"
	CategoryPlatforms    CategoryKey = "platforms"
)

// CategoryKeys lists the known categories in display order.
var CategoryKeys = []CategoryKey{CategoryUniversities, CategoryCorporates, CategoryPlatforms}

// CategoryInfo is the display metadata of a partner category.
type CategoryInfo struct {
	Title       string
	Description string
}

// DefaultCategoryInfo is used when a category is created by its first partner.
var DefaultCategoryInfo = map[CategoryKey]CategoryInfo{
	CategoryUniversities: {
		Title:       "University Partners",
		Description: "Leading educational institutions providing world-class programs",
	},
	CategoryCorporates: {
		Title:       "Corporate Partners",
		Description: "Industry leaders offering skill development and internship opportunities",
	},
	CategoryPlatforms: {
		Title:       "Learning Platform Partners",
		Description: "Online education platforms providing flexible learning solutions",
	},
}

// Valid reports whether k is a known category.
func (k CategoryKey) Valid() bool {
	_, ok := DefaultCategoryInfo[k]
	return ok
}

// Partner is an entry embedded in a PartnerCategory. NameKey is the
// lower-cased name used for the per-category uniqueness check.
type Partner struct {
	Name        string      `bson:"name"        json:"name"`
	NameKey     string      `bson:"name_key"    json:"-"`
	Logo        string      `bson:"logo"        json:"logo"`
	Description string      `bson:"description" json:"description"`
	Programs    []string    `bson:"programs"    json:"programs"`
	Students    string      `bson:"students"    json:"students"`
	Category    CategoryKey `bson:"category"    json:"category"`
	CreatedAt   time.Time   `bson:"created_at"  json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updated_at"  json:"updatedAt"`
}

// PartnerCategory groups partners under one category key.
type PartnerCategory struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	CategoryKey CategoryKey   `bson:"category_key"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Partners    []Partner     `bson:"partners"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
