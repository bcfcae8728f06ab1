package entities

import "errors"

var (
	ErrNoSearchQuery    = errors.New("empty search query")
	ErrSearchInProgress = errors.New("image search already in progress")
	ErrNoMorePhotos     = errors.New("no more photos")
	ErrPhotoNotFound    = errors.New("photo not found")
)

// Photo is a candidate background image returned by the image search.
type Photo struct {
	ID           string
	ThumbnailURL string
	FullURL      string
	Description  string
}

// PhotoPage is one page of search results.
type PhotoPage struct {
	Photos     []Photo
	Page       int
	TotalPages int
}

// PhotoSearch accumulates search results across pages.
type PhotoSearch struct {
	Query      string
	Results    []Photo
	Page       int // last successfully loaded page
	TotalPages int
	Searching  bool
}

// Apply merges a page into the search: page 1 replaces the accumulated
// results, later pages are appended.
func (s PhotoSearch) Apply(query string, p PhotoPage) PhotoSearch {
	if p.Page <= 1 {
		s.Results = append([]Photo(nil), p.Photos...)
	} else {
		s.Results = append(append([]Photo(nil), s.Results...), p.Photos...)
	}
	s.Query = query
	s.Page = p.Page
	s.TotalPages = p.TotalPages
	return s
}

// HasMore reports whether another page can be loaded.
func (s PhotoSearch) HasMore() bool {
	return s.Page > 0 && s.Page < s.TotalPages
}

// PhotoByID returns the result with the given ID. Photos from an earlier
// search are not found.
func (s PhotoSearch) PhotoByID(id string) (Photo, error) {
	for _, p := range s.Results {
		if p.ID == id && id != "" {
			return p, nil
		}
	}
	return Photo{}, ErrPhotoNotFound
}

// Clone returns a copy that does not share the results slice.
func (s PhotoSearch) Clone() PhotoSearch {
	s.Results = append([]Photo(nil), s.Results...)
	return s
}
