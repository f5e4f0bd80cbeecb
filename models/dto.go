package models

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateUserRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=100"`
	Email    string   `json:"email" validate:"required,email,max=100"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     UserRole `json:"role" validate:"omitempty,oneof=admin usuario"`
}

type CreateArticleRequest struct {
	Title    string   `json:"title" validate:"required,min=1,max=255"`
	Content  string   `json:"content" validate:"required"`
	Category Category `json:"category" validate:"required,oneof=politica deportes tecnologia economia salud entretenimiento"`
	Image    *string  `json:"image" validate:"omitempty,max=255"`
	Visible  *bool    `json:"visible"`
}

type UpdateArticleRequest struct {
	Title    string   `json:"title" validate:"required,min=1,max=255"`
	Content  string   `json:"content" validate:"required"`
	Category Category `json:"category" validate:"required,oneof=politica deportes tecnologia economia salud entretenimiento"`
	Image    *string  `json:"image" validate:"omitempty,max=255"`
}

type VisibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

// ArticleListParams is bound from the listing query string.
type ArticleListParams struct {
	Category Category `form:"categoria"`
}

type ImageUpload struct {
	ArticleID uint
	Data      []byte
	Order     *int
}
