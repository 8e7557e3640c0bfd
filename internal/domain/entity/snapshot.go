package entity

// Snapshot is the denormalized projection of the whole catalog plus
// settings, written as a single JSON document for the static storefront.
// The relational tables are the source of truth; the snapshot is derived
// state regenerated wholesale after every catalog mutation.
type Snapshot struct {
	// Version is the export time in Unix milliseconds. It increases
	// strictly across exports within one process so the consumer can use
	// it for cache busting.
	Version     int64              `json:"version"`
	LastUpdated string             `json:"lastUpdated"` // RFC 3339 / ISO 8601.
	Settings    map[string]string  `json:"settings"`
	Categories  []SnapshotCategory `json:"categories"`
	Products    []SnapshotProduct  `json:"products"`
}

// SnapshotCategory is the reduced category view exposed to the storefront.
type SnapshotCategory struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SnapshotCategoryRef is the embedded category summary on a product.
type SnapshotCategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// SnapshotProduct is the denormalized product view: image paths reduced to
// basenames, category embedded as a summary, size variants inlined.
type SnapshotProduct struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       float64              `json:"price"`
	Image       *string              `json:"image"`
	Category    *SnapshotCategoryRef `json:"category"`
	CategoryID  *uint                `json:"categoryId"`
	Sizes       []SnapshotSize       `json:"sizes"`
}

// SnapshotSize is a size variant as exposed in the snapshot.
type SnapshotSize struct {
	ID    uint    `json:"id"`
	Size  string  `json:"size"`
	Price float64 `json:"price"`
	Image *string `json:"image"`
}
