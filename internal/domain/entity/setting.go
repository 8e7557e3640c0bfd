package entity

import "time"

// Setting is a single key/value pair of site configuration (store name,
// contact info, feature toggles). Values are stored as strings; consumers
// interpret them.
type Setting struct {
	ID        uint
	Key       string // Unique.
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Settings keys that, when changed, must be reflected in the exported
// snapshot immediately.
const (
	SettingWhatsAppNumber = "whatsapp_number"
	SettingShowPrices     = "show_prices"
)

// SettingShowCarousel lives only inside the snapshot file, never in the
// relational settings table. The exporter carries it forward on every
// rewrite.
const SettingShowCarousel = "show_carousel"
