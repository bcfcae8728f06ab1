package entities

import (
	"errors"
	"testing"
)

func TestPhotoSearchApply(t *testing.T) {
	var s PhotoSearch

	s = s.Apply("mosque", PhotoPage{Photos: []Photo{{ID: "a"}, {ID: "b"}}, Page: 1, TotalPages: 3})
	if len(s.Results) != 2 || !s.HasMore() {
		t.Fatalf("after page 1: %+v", s)
	}

	s = s.Apply("mosque", PhotoPage{Photos: []Photo{{ID: "c"}}, Page: 2, TotalPages: 3})
	if len(s.Results) != 3 || s.Results[2].ID != "c" || s.Page != 2 {
		t.Fatalf("after page 2: %+v", s)
	}

	s = s.Apply("desert", PhotoPage{Photos: []Photo{{ID: "z"}}, Page: 1, TotalPages: 1})
	if len(s.Results) != 1 || s.Results[0].ID != "z" || s.Query != "desert" {
		t.Fatalf("new page 1 should replace results: %+v", s)
	}
	if s.HasMore() {
		t.Errorf("HasMore on last page")
	}
}

func TestPhotoSearchPhotoByID(t *testing.T) {
	s := PhotoSearch{}.Apply("q", PhotoPage{Photos: []Photo{{ID: "a"}, {ID: "b"}}, Page: 1, TotalPages: 1})
	if p, err := s.PhotoByID("b"); err != nil || p.ID != "b" {
		t.Errorf("PhotoByID(b) = %+v, %v", p, err)
	}
	for _, id := range []string{"c", ""} {
		if _, err := s.PhotoByID(id); !errors.Is(err, ErrPhotoNotFound) {
			t.Errorf("PhotoByID(%q) err = %v", id, err)
		}
	}

	s = s.Apply("other", PhotoPage{Photos: []Photo{{ID: "z"}}, Page: 1, TotalPages: 1})
	if _, err := s.PhotoByID("a"); !errors.Is(err, ErrPhotoNotFound) {
		t.Errorf("photo from the replaced search found: %v", err)
	}
}

func TestPhotoSearchHasMoreBeforeFirstPage(t *testing.T) {
	if (PhotoSearch{}).HasMore() {
		t.Errorf("empty search reports more pages")
	}
}
