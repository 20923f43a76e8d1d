package models

import (
	"bytes"
	"encoding/json"
)

// PriceEntry is a read-only price catalog record.
type PriceEntry struct {
	ID              string  `bson:"id" json:"id"`
	ServiceType     string  `bson:"service_type" json:"service_type"`
	ServiceName     string  `bson:"service_name" json:"service_name"`
	PricePerUnit    float64 `bson:"price_per_unit" json:"price_per_unit"`
	UnitType        string  `bson:"unit_type" json:"unit_type"` // "person", "pizza" or "event"
	MinimumQuantity *int    `bson:"minimum_quantity" json:"minimum_quantity"`
	Description     string  `bson:"description" json:"description,omitempty"`
	Active          bool    `bson:"active" json:"active"`
}

// AllergenEntry is a read-only allergen record for one menu item.
type AllergenEntry struct {
	ID                string `bson:"id" json:"id"`
	ServiceType       string `bson:"service_type" json:"service_type"`
	ItemName          string `bson:"item_name" json:"item_name"`
	ContainsGluten    bool   `bson:"contains_gluten" json:"contains_gluten"`
	ContainsDairy     bool   `bson:"contains_dairy" json:"contains_dairy"`
	ContainsEggs      bool   `bson:"contains_eggs" json:"contains_eggs"`
	ContainsNuts      bool   `bson:"contains_nuts" json:"contains_nuts"`
	ContainsPeanuts   bool   `bson:"contains_peanuts" json:"contains_peanuts"`
	ContainsSoy       bool   `bson:"contains_soy" json:"contains_soy"`
	ContainsFish      bool   `bson:"contains_fish" json:"contains_fish"`
	ContainsShellfish bool   `bson:"contains_shellfish" json:"contains_shellfish"`
	ContainsSesame    bool   `bson:"contains_sesame" json:"contains_sesame"`
	Vegetarian        bool   `bson:"vegetarian" json:"vegetarian"`
	Vegan             bool   `bson:"vegan" json:"vegan"`
}

// AllergenGroup is one service type's entries in the allergen matrix.
type AllergenGroup struct {
	ServiceType string          `json:"service_type"`
	Items       []AllergenEntry `json:"items"`
}

// AllergenMatrix groups allergen entries by service type in order of first
// appearance. It marshals as a JSON object whose keys keep that order.
type AllergenMatrix []AllergenGroup

func (m AllergenMatrix) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, group := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(group.ServiceType)
		if err != nil {
			return nil, err
		}
		items := group.Items
		if items == nil {
			items = []AllergenEntry{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CatalogSource says where catalog data came from.
type CatalogSource string

const (
	SourceLive     CatalogSource = "live"
	SourceFallback CatalogSource = "fallback"
)
