package storage

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

func TestSessionStorageDefaults(t *testing.T) {
	s := NewSessionStorage()
	sess := s.Get(42)
	if sess.ChatID != 42 || sess.Ratio != entities.DefaultAspectRatio || sess.Verse != nil {
		t.Errorf("default session = %+v", sess)
	}
	if ids := s.Subscribed(); len(ids) != 0 {
		t.Errorf("Get must not create sessions, subscribed = %v", ids)
	}
}

func TestSessionStorageUpdate(t *testing.T) {
	s := NewSessionStorage()

	_, err := s.Update(1, func(sess *entities.Session) error {
		sess.Ratio = entities.RatioStory
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	boom := errors.New("boom")
	got, err := s.Update(1, func(sess *entities.Session) error {
		sess.Ratio = entities.RatioPortrait
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if got.Ratio != entities.RatioStory {
		t.Errorf("failed update returned ratio %q", got.Ratio)
	}
	if r := s.Get(1).Ratio; r != entities.RatioStory {
		t.Errorf("failed update leaked: ratio %q", r)
	}
}

func TestSessionStorageSnapshotsAreIsolated(t *testing.T) {
	s := NewSessionStorage()
	_, _ = s.Update(1, func(sess *entities.Session) error {
		sess.Search = sess.Search.Apply("sky", entities.PhotoPage{
			Photos: []entities.Photo{{ID: "a"}}, Page: 1, TotalPages: 2,
		})
		return nil
	})

	snap := s.Get(1)
	snap.Search.Results[0].ID = "mutated"

	if id := s.Get(1).Search.Results[0].ID; id != "a" {
		t.Errorf("stored result changed through a snapshot: %q", id)
	}
}

func TestSessionStorageSubscribed(t *testing.T) {
	s := NewSessionStorage()
	for _, id := range []int64{30, 10, 20} {
		_, _ = s.Update(id, func(sess *entities.Session) error {
			sess.DailySubscribed = id != 20
			return nil
		})
	}

	if got := s.Subscribed(); !reflect.DeepEqual(got, []int64{10, 30}) {
		t.Errorf("Subscribed = %v", got)
	}

	s.Delete(10)
	if got := s.Subscribed(); !reflect.DeepEqual(got, []int64{30}) {
		t.Errorf("Subscribed after delete = %v", got)
	}
}

func TestSessionStorageConcurrentUpdates(t *testing.T) {
	s := NewSessionStorage()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Update(7, func(sess *entities.Session) error {
				sess.Style.PrimaryFontSize++
				return nil
			})
		}()
	}
	wg.Wait()

	want := entities.DefaultStyle().PrimaryFontSize + 50
	if got := s.Get(7).Style.PrimaryFontSize; got != want {
		t.Errorf("PrimaryFontSize = %d, want %d", got, want)
	}
}

func TestPreviewStorage(t *testing.T) {
	s := NewPreviewStorage()

	if _, had := s.UpsertAndGetPrev(1, 100); had {
		t.Error("first preview should have no predecessor")
	}
	prev, had := s.UpsertAndGetPrev(1, 101)
	if !had || prev.MessageID != 100 {
		t.Errorf("prev = %+v, %v", prev, had)
	}
	s.Delete(1)
	if _, had := s.UpsertAndGetPrev(1, 102); had {
		t.Error("preview survived Delete")
	}
}
