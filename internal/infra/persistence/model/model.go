// Package model defines the GORM persistence models and their mappings to
// domain entities. Database concerns (column tags, soft-delete markers,
// cascade rules) stay here so the domain entities remain storage-agnostic.
package model

import (
	"time"

	"gorm.io/gorm"

	"storefront/internal/domain/entity"
)

// User is the persistence model for user accounts.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:16;not null;default:customer"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }

// ToEntity converts the persistence model to a domain entity.
func (m *User) ToEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entity.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserFromEntity converts a domain entity to its persistence model.
func UserFromEntity(e *entity.User) *User {
	return &User{
		ID:           e.ID,
		Username:     e.Username,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		Role:         e.Role.String(),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// RefreshToken is the persistence model for refresh token sessions.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	TokenHash string `gorm:"size:255;not null"`
	Revoked   bool   `gorm:"not null;default:false"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TableName specifies the table name for the RefreshToken model.
func (RefreshToken) TableName() string { return "refresh_tokens" }

// ToEntity converts the persistence model to a domain entity.
func (m *RefreshToken) ToEntity() *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:        m.ID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		Revoked:   m.Revoked,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

// RefreshTokenFromEntity converts a domain entity to its persistence model.
func RefreshTokenFromEntity(e *entity.RefreshToken) *RefreshToken {
	return &RefreshToken{
		ID:        e.ID,
		UserID:    e.UserID,
		TokenHash: e.TokenHash,
		Revoked:   e.Revoked,
		ExpiresAt: e.ExpiresAt,
		CreatedAt: e.CreatedAt,
	}
}

// Category is the persistence model for product categories.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string { return "categories" }

// ToEntity converts the persistence model to a domain entity.
func (m *Category) ToEntity() *entity.Category {
	e := &entity.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		e.DeletedAt = &deletedAt
	}

	return e
}

// CategoryFromEntity converts a domain entity to its persistence model.
func CategoryFromEntity(e *entity.Category) *Category {
	m := &Category{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	return m
}

// Product is the persistence model for catalog products.
type Product struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:255;not null"`
	Description  string
	Price        float64 `gorm:"not null;default:0"`
	Image        string
	CategoryID   *uint     `gorm:"index"`
	Category     *Category `gorm:"constraint:OnDelete:SET NULL"`
	DisplayOrder int       `gorm:"not null;default:0"`
	Sizes        []ProductSize
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the Product model.
func (Product) TableName() string { return "products" }

// ToEntity converts the persistence model to a domain entity, carrying
// preloaded associations when present.
func (m *Product) ToEntity() *entity.Product {
	e := &entity.Product{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Image:        m.Image,
		CategoryID:   m.CategoryID,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		e.DeletedAt = &deletedAt
	}
	if m.Category != nil {
		e.Category = m.Category.ToEntity()
	}
	for i := range m.Sizes {
		e.Sizes = append(e.Sizes, *m.Sizes[i].ToEntity())
	}

	return e
}

// ProductFromEntity converts a domain entity to its persistence model.
// Associations are persisted separately and are not carried over.
func ProductFromEntity(e *entity.Product) *Product {
	m := &Product{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		Price:        e.Price,
		Image:        e.Image,
		CategoryID:   e.CategoryID,
		DisplayOrder: e.DisplayOrder,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	return m
}

// ProductSize is the persistence model for product size variants.
type ProductSize struct {
	ID        uint    `gorm:"primaryKey"`
	ProductID uint    `gorm:"index;not null;constraint:OnDelete:CASCADE"`
	Size      string  `gorm:"size:64;not null"`
	Price     float64 `gorm:"not null;default:0"`
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the ProductSize model.
func (ProductSize) TableName() string { return "product_sizes" }

// ToEntity converts the persistence model to a domain entity.
func (m *ProductSize) ToEntity() *entity.ProductSize {
	return &entity.ProductSize{
		ID:        m.ID,
		ProductID: m.ProductID,
		Size:      m.Size,
		Price:     m.Price,
		Image:     m.Image,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ProductSizeFromEntity converts a domain entity to its persistence model.
func ProductSizeFromEntity(e *entity.ProductSize) *ProductSize {
	return &ProductSize{
		ID:        e.ID,
		ProductID: e.ProductID,
		Size:      e.Size,
		Price:     e.Price,
		Image:     e.Image,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// Setting is the persistence model for site settings key/value pairs.
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:64;uniqueIndex;not null"`
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Setting model.
func (Setting) TableName() string { return "settings" }

// ToEntity converts the persistence model to a domain entity.
func (m *Setting) ToEntity() *entity.Setting {
	return &entity.Setting{
		ID:        m.ID,
		Key:       m.Key,
		Value:     m.Value,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// SettingFromEntity converts a domain entity to its persistence model.
func SettingFromEntity(e *entity.Setting) *Setting {
	return &Setting{
		ID:        e.ID,
		Key:       e.Key,
		Value:     e.Value,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// All lists every persistence model for schema migration.
func All() []any {
	return []any{
		&User{},
		&RefreshToken{},
		&Category{},
		&Product{},
		&ProductSize{},
		&Setting{},
	}
}
