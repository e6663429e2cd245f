package service

import (
	"time"

	"github.com/TanzilStore/store_api/internal/models"
	"github.com/TanzilStore/store_api/internal/query"
)

// UserService lists dashboard accounts through the shared query pipeline.
type UserService struct {
	collections *Collections
	sorter      *query.Sorter[models.User]
}

// NewUserService constructs a new UserService.
func NewUserService(collections *Collections) *UserService {
	return &UserService{
		collections: collections,
		sorter: query.NewSorter(map[string]query.Compare[models.User]{
			"name":      query.ByText(func(u models.User) string { return u.Name }),
			"email":     query.ByText(func(u models.User) string { return u.Email }),
			"createdAt": query.ByTime(func(u models.User) time.Time { return u.CreatedAt }),
		}),
	}
}

// ListUsersFilter carries the normalized user list parameters.
type ListUsersFilter struct {
	Search  string
	Role    string
	SortBy  string
	SortDir query.Direction
	Page    int
	Limit   int
}

// UserList is a paged user listing.
type UserList struct {
	Users      []models.User
	Pagination query.Pagination
	Fallback   bool
}

// List returns one page of users matching the filter.
func (s *UserService) List(filter ListUsersFilter) *UserList {
	snap := s.collections.Users()

	spec := query.Spec[models.User]{
		Search: filter.Search,
		TextFields: func(u models.User) []string {
			return []string{u.Name, u.Email}
		},
	}
	if filter.Role != "" {
		spec.Clauses = append(spec.Clauses,
			query.Equals(func(u models.User) models.UserRole { return u.Role }, models.UserRole(filter.Role)))
	}

	matched := query.Filter(snap.Records, spec)
	sorted := s.sorter.Sort(matched, filter.SortBy, filter.SortDir)
	page := query.Paginate(sorted, filter.Page, filter.Limit)

	return &UserList{Users: page.Items, Pagination: page.Pagination, Fallback: snap.Fallback}
}
