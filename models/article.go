package models

import (
	"time"
)

type Category string

const (
	CategoryPolitics      Category = "politica"
	CategorySports        Category = "deportes"
	CategoryTechnology    Category = "tecnologia"
	CategoryEconomy       Category = "economia"
	CategoryHealth        Category = "salud"
	CategoryEntertainment Category = "entretenimiento"

	// CategoryAll is the listing sentinel, it is never stored.
	CategoryAll Category = "todas"
)

// Categories lists the closed set of storable categories.
var Categories = []Category{
	CategoryPolitics,
	CategorySports,
	CategoryTechnology,
	CategoryEconomy,
	CategoryHealth,
	CategoryEntertainment,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsAll reports whether c selects every category.
func (c Category) IsAll() bool {
	return c == "" || c == CategoryAll
}

type Article struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Title     string         `json:"title" gorm:"size:255;not null"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Category  Category       `json:"category" gorm:"size:32;not null;index;check:chk_articles_category,category IN ('politica','deportes','tecnologia','economia','salud','entretenimiento')"`
	Image     *string        `json:"image" gorm:"size:255"`
	Visible   bool           `json:"visible" gorm:"not null;default:true;index"`
	AuthorID  *uint          `json:"author_id" gorm:"index"`
	Author    *User          `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	Images    []ArticleImage `json:"-" gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// ArticleView is an article row as returned by the read queries, carrying
// the optional author join and image existence check.
type ArticleView struct {
	ID        uint      `json:"id" gorm:"column:id"`
	Title     string    `json:"title" gorm:"column:title"`
	Content   string    `json:"content" gorm:"column:content"`
	Category  Category  `json:"category" gorm:"column:category"`
	Image     *string   `json:"image" gorm:"column:image"`
	Visible   bool      `json:"visible" gorm:"column:visible"`
	AuthorID  *uint     `json:"author_id" gorm:"column:author_id"`
	Author    *string   `json:"author" gorm:"column:author"`
	HasImages bool      `json:"has_images" gorm:"column:has_images"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}
