package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(s string) *string { return &s }

func indexByID(cats []Category) map[string]*Category {
	byID := make(map[string]*Category, len(cats))
	for i := range cats {
		byID[cats[i].ID] = &cats[i]
	}
	return byID
}

func TestValidateParentMainCategory(t *testing.T) {
	byID := indexByID(nil)

	main := Category{ID: "c1", Type: CategoryTypeMain}
	assert.NoError(t, ValidateParent(&main, byID))

	main.ParentID = ref("c2")
	assert.Error(t, ValidateParent(&main, byID), "main category must not carry a parent")
}

func TestValidateParentSubCategory(t *testing.T) {
	byID := indexByID([]Category{
		{ID: "main", Type: CategoryTypeMain},
		{ID: "other-sub", Type: CategoryTypeSub, ParentID: ref("main")},
	})

	sub := Category{ID: "s1", Type: CategoryTypeSub, ParentID: ref("main")}
	assert.NoError(t, ValidateParent(&sub, byID))

	sub.ParentID = nil
	assert.Error(t, ValidateParent(&sub, byID), "subcategory requires a parent")

	sub.ParentID = ref("ghost")
	assert.Error(t, ValidateParent(&sub, byID), "parent must exist")

	sub.ParentID = ref("other-sub")
	assert.Error(t, ValidateParent(&sub, byID), "parent must be a main category")
}

func TestValidateParentUnknownType(t *testing.T) {
	c := Category{ID: "c1", Type: CategoryType("weird")}
	assert.Error(t, ValidateParent(&c, indexByID(nil)))
}

func TestValidateParentSelfReference(t *testing.T) {
	// A malformed record claiming to be both sub and its own parent.
	self := Category{ID: "s1", Type: CategoryTypeMain, ParentID: nil}
	byID := indexByID([]Category{self})

	sub := Category{ID: "s1", Type: CategoryTypeSub, ParentID: ref("s1")}
	assert.Error(t, ValidateParent(&sub, byID))
}

func TestBuildCategoryTree(t *testing.T) {
	flat := []Category{
		{ID: "cleaners", Type: CategoryTypeMain},
		{ID: "tools", Type: CategoryTypeMain},
		{ID: "floor", Type: CategoryTypeSub, ParentID: ref("cleaners")},
		{ID: "bathroom", Type: CategoryTypeSub, ParentID: ref("cleaners")},
		{ID: "orphan", Type: CategoryTypeSub, ParentID: ref("ghost")},
	}

	tree := BuildCategoryTree(flat)
	require.Len(t, tree, 2)

	assert.Equal(t, "cleaners", tree[0].ID)
	require.Len(t, tree[0].SubCategories, 2)
	assert.Equal(t, "floor", tree[0].SubCategories[0].ID)
	assert.Equal(t, "bathroom", tree[0].SubCategories[1].ID)

	assert.Equal(t, "tools", tree[1].ID)
	assert.Empty(t, tree[1].SubCategories, "orphaned subcategories are dropped")
}
