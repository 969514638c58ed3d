package model

import "errors"

// Domain errors surfaced by the store. Repositories and usecases return
// these (possibly wrapped); the HTTP layer maps them to status codes.
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubCategoryNotFound = errors.New("subcategory not found")
	ErrItemNotFound        = errors.New("item not found")

	ErrCategoryHasChildren = errors.New("category still has subcategories or items attached")
	ErrSubCategoryHasItems = errors.New("subcategory still has items attached")
)

// IsNotFound reports whether err is a lookup miss on any entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrSubCategoryNotFound) ||
		errors.Is(err, ErrItemNotFound)
}

// IsReferentialViolation reports whether err is a delete rejected because
// child rows still reference the entity.
func IsReferentialViolation(err error) bool {
	return errors.Is(err, ErrCategoryHasChildren) ||
		errors.Is(err, ErrSubCategoryHasItems)
}
