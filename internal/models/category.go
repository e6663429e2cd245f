package models

import (
	"fmt"
	"time"
)

// CategoryType distinguishes top-level categories from subcategories.
type CategoryType string

const (
	CategoryTypeMain CategoryType = "main"
	CategoryTypeSub  CategoryType = "sub"
)

// Category represents a catalog category. Subcategories reference their
// parent through ParentID; main categories have no parent.
type Category struct {
	ID            string       `db:"id" json:"id"`
	Name          string       `db:"name" json:"name"`
	NameAr        string       `db:"name_ar" json:"nameAr"`
	Description   string       `db:"description" json:"description,omitempty"`
	DescriptionAr string       `db:"description_ar" json:"descriptionAr,omitempty"`
	Icon          string       `db:"icon" json:"icon,omitempty"`
	Image         string       `db:"image" json:"image,omitempty"`
	Type          CategoryType `db:"type" json:"type"`
	ParentID      *string      `db:"parent_id" json:"parentId,omitempty"`
	IsActive      bool         `db:"is_active" json:"isActive"`
	CreatedAt     time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updatedAt"`

	// Derived fields (populated via subquery, never written directly)
	ProductCount  int        `db:"product_count" json:"productCount"`
	SubCategories []Category `db:"-" json:"subCategories,omitempty"`
}

// ValidateParent checks the parent reference of a category against the
// set of known categories. A main category must not carry a parent; a
// subcategory must reference an existing main category, and the parent
// chain must not form a cycle.
func ValidateParent(cat *Category, byID map[string]*Category) error {
	switch cat.Type {
	case CategoryTypeMain:
		if cat.ParentID != nil && *cat.ParentID != "" {
			return fmt.Errorf("main category %q must not have a parent", cat.ID)
		}
		return nil
	case CategoryTypeSub:
		if cat.ParentID == nil || *cat.ParentID == "" {
			return fmt.Errorf("subcategory %q requires a parent", cat.ID)
		}
	default:
		return fmt.Errorf("unknown category type %q", cat.Type)
	}

	parent, ok := byID[*cat.ParentID]
	if !ok {
		return fmt.Errorf("parent %q of subcategory %q not found", *cat.ParentID, cat.ID)
	}
	if parent.Type != CategoryTypeMain {
		return fmt.Errorf("parent %q of subcategory %q is not a main category", parent.ID, cat.ID)
	}

	// Walk the parent chain; revisiting a node means a cycle.
	seen := map[string]bool{cat.ID: true}
	for cur := parent; cur != nil; {
		if seen[cur.ID] {
			return fmt.Errorf("category %q introduces a parent cycle", cat.ID)
		}
		seen[cur.ID] = true
		if cur.ParentID == nil || *cur.ParentID == "" {
			break
		}
		cur = byID[*cur.ParentID]
	}
	return nil
}

// BuildCategoryTree arranges a flat category list into main categories
// with their subcategories attached in input order. Subcategories with a
// dangling parent reference are dropped rather than surfaced as errors.
func BuildCategoryTree(flat []Category) []Category {
	mains := make([]Category, 0, len(flat))
	index := make(map[string]int)
	for _, c := range flat {
		if c.Type == CategoryTypeMain {
			index[c.ID] = len(mains)
			mains = append(mains, c)
		}
	}
	for _, c := range flat {
		if c.Type != CategoryTypeSub || c.ParentID == nil {
			continue
		}
		if i, ok := index[*c.ParentID]; ok {
			mains[i].SubCategories = append(mains[i].SubCategories, c)
		}
	}
	return mains
}
