package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
	"github.com/aliskhannn/ayah-card-bot/internal/export"
)

// SessionService owns every page session and is the only place their
// state changes.
type SessionService struct {
	sessions SessionStorage
	verses   VerseFetcher
	photos   PhotoSearcher
	images   BackgroundLoader
	renderer Renderer
	logger   *zap.Logger
}

func NewSessionService(
	sessions SessionStorage,
	verses VerseFetcher,
	photos PhotoSearcher,
	images BackgroundLoader,
	renderer Renderer,
	logger *zap.Logger,
) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		sessions: sessions,
		verses:   verses,
		photos:   photos,
		images:   images,
		renderer: renderer,
		logger:   logger,
	}
}

// Session returns a snapshot of the chat's session.
func (s *SessionService) Session(chatID int64) entities.Session {
	return s.sessions.Get(chatID)
}

// SubmitReference parses input and loads the verse it names. Invalid input
// issues no request. A submit while a fetch is outstanding is rejected with
// entities.ErrFetchInProgress.
func (s *SessionService) SubmitReference(ctx context.Context, chatID int64, input string) (*entities.Verse, error) {
	ref, ok := ParseReference(strings.TrimSpace(input))
	if !ok {
		return nil, entities.ErrInvalidReference
	}
	return s.LoadVerse(ctx, chatID, ref)
}

// LoadVerse fetches ref into the session. On failure the previous verse is
// kept.
func (s *SessionService) LoadVerse(ctx context.Context, chatID int64, ref entities.VerseReference) (*entities.Verse, error) {
	if !ref.Valid() {
		return nil, entities.ErrInvalidReference
	}

	_, err := s.sessions.Update(chatID, func(sess *entities.Session) error {
		next, err := sess.Fetch.Begin(ref)
		if err != nil {
			return err
		}
		sess.Fetch = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	verse, err := s.verses.GetVerse(ctx, ref)
	if err == nil && verse == nil {
		err = errors.New("empty verse")
	}
	if err != nil {
		if !errors.Is(err, entities.ErrVerseUnavailable) {
			err = fmt.Errorf("%w: %v", entities.ErrVerseUnavailable, err)
		}
		_, _ = s.sessions.Update(chatID, func(sess *entities.Session) error {
			sess.Fetch = sess.Fetch.Fail(err)
			return nil
		})
		return nil, err
	}

	_, _ = s.sessions.Update(chatID, func(sess *entities.Session) error {
		v := *verse
		sess.Verse = &v
		sess.Fetch = sess.Fetch.Succeed()
		return nil
	})

	s.logger.Info("verse loaded",
		zap.Int64("chat_id", chatID),
		zap.String("reference", ref.String()),
	)

	return verse, nil
}

// SetRatio selects the output size.
func (s *SessionService) SetRatio(chatID int64, ratio string) (entities.Session, error) {
	r, err := entities.ParseAspectRatio(ratio)
	if err != nil {
		return s.sessions.Get(chatID), err
	}
	return s.sessions.Update(chatID, func(sess *entities.Session) error {
		sess.Ratio = r
		return nil
	})
}

func (s *SessionService) SetPrimaryFontSize(chatID int64, size int) (entities.Session, error) {
	return s.updateStyle(chatID, func(st entities.StyleSettings) (entities.StyleSettings, error) {
		return st.WithPrimaryFontSize(size)
	})
}

func (s *SessionService) SetTranslationFontSize(chatID int64, size int) (entities.Session, error) {
	return s.updateStyle(chatID, func(st entities.StyleSettings) (entities.StyleSettings, error) {
		return st.WithTranslationFontSize(size)
	})
}

func (s *SessionService) SetTextColor(chatID int64, hex string) (entities.Session, error) {
	return s.updateStyle(chatID, func(st entities.StyleSettings) (entities.StyleSettings, error) {
		return st.WithTextColor(hex)
	})
}

func (s *SessionService) SetBackgroundColor(chatID int64, hex string) (entities.Session, error) {
	return s.updateStyle(chatID, func(st entities.StyleSettings) (entities.StyleSettings, error) {
		return st.WithBackgroundColor(hex)
	})
}

// ApplyPreset replaces sizes and colors with the named preset.
func (s *SessionService) ApplyPreset(chatID int64, name string) (entities.Session, error) {
	p, err := entities.PresetByName(name)
	if err != nil {
		return s.sessions.Get(chatID), err
	}
	return s.updateStyle(chatID, func(st entities.StyleSettings) (entities.StyleSettings, error) {
		return p.Apply(st), nil
	})
}

func (s *SessionService) SetBackgroundImage(chatID int64, ref entities.ImageReference) (entities.Session, error) {
	return s.updateStyle(chatID, func(st entities.StyleSettings) (entities.StyleSettings, error) {
		return st.WithBackgroundImage(&ref), nil
	})
}

func (s *SessionService) ClearBackgroundImage(chatID int64) (entities.Session, error) {
	return s.updateStyle(chatID, func(st entities.StyleSettings) (entities.StyleSettings, error) {
		return st.WithBackgroundImage(nil), nil
	})
}

func (s *SessionService) updateStyle(chatID int64, fn func(entities.StyleSettings) (entities.StyleSettings, error)) (entities.Session, error) {
	return s.sessions.Update(chatID, func(sess *entities.Session) error {
		next, err := fn(sess.Style)
		if err != nil {
			return err
		}
		sess.Style = next
		return nil
	})
}

// SearchPhotos starts a new photo search. A failed request is logged and
// shown as an empty result; results of the previous search stay stored.
func (s *SessionService) SearchPhotos(ctx context.Context, chatID int64, query string) (entities.PhotoSearch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return entities.PhotoSearch{}, entities.ErrNoSearchQuery
	}

	search, err := s.searchPage(ctx, chatID, query, 1)
	if err != nil {
		if errors.Is(err, entities.ErrSearchInProgress) {
			return entities.PhotoSearch{}, err
		}
		return entities.PhotoSearch{Query: query}, nil
	}
	return search, nil
}

// LoadMorePhotos appends the next page of the current search.
func (s *SessionService) LoadMorePhotos(ctx context.Context, chatID int64) (entities.PhotoSearch, error) {
	cur := s.sessions.Get(chatID).Search
	if cur.Query == "" {
		return cur, entities.ErrNoSearchQuery
	}
	if !cur.HasMore() {
		return cur, entities.ErrNoMorePhotos
	}

	search, err := s.searchPage(ctx, chatID, cur.Query, cur.Page+1)
	if err != nil {
		if errors.Is(err, entities.ErrSearchInProgress) {
			return cur, err
		}
		return s.sessions.Get(chatID).Search, nil
	}
	return search, nil
}

func (s *SessionService) searchPage(ctx context.Context, chatID int64, query string, page int) (entities.PhotoSearch, error) {
	_, err := s.sessions.Update(chatID, func(sess *entities.Session) error {
		if sess.Search.Searching {
			return entities.ErrSearchInProgress
		}
		sess.Search.Searching = true
		return nil
	})
	if err != nil {
		return entities.PhotoSearch{}, err
	}

	result, err := s.photos.SearchPhotos(ctx, query, page)
	if err != nil {
		s.logger.Warn("photo search failed",
			zap.Int64("chat_id", chatID),
			zap.String("query", query),
			zap.Int("page", page),
			zap.Error(err),
		)
		_, _ = s.sessions.Update(chatID, func(sess *entities.Session) error {
			sess.Search.Searching = false
			return nil
		})
		return entities.PhotoSearch{}, err
	}

	sess, err := s.sessions.Update(chatID, func(sess *entities.Session) error {
		sess.Search = sess.Search.Apply(query, result)
		sess.Search.Searching = false
		return nil
	})
	if err != nil {
		return entities.PhotoSearch{}, err
	}
	return sess.Search, nil
}

// SelectPhoto uses the search result with the given ID as the background
// image. IDs not in the current results give ErrPhotoNotFound.
func (s *SessionService) SelectPhoto(chatID int64, photoID string) (entities.Session, error) {
	return s.sessions.Update(chatID, func(sess *entities.Session) error {
		p, err := sess.Search.PhotoByID(photoID)
		if err != nil {
			return err
		}
		sess.Style = sess.Style.WithBackgroundImage(&entities.ImageReference{URL: p.FullURL})
		return nil
	})
}

// Forget drops the chat's session, including its daily subscription.
func (s *SessionService) Forget(chatID int64) {
	s.sessions.Delete(chatID)
}

// ToggleDaily flips the daily verse subscription and returns the new value.
func (s *SessionService) ToggleDaily(chatID int64) (bool, error) {
	sess, err := s.sessions.Update(chatID, func(sess *entities.Session) error {
		sess.DailySubscribed = !sess.DailySubscribed
		return nil
	})
	if err != nil {
		return false, err
	}
	return sess.DailySubscribed, nil
}

// Render draws the session's current state from scratch. A background image
// that cannot be loaded is treated as absent.
func (s *SessionService) Render(ctx context.Context, chatID int64) (*entities.Card, error) {
	sess := s.sessions.Get(chatID)
	if sess.Verse == nil {
		return nil, entities.ErrNoVerse
	}

	var bg image.Image
	if ref := sess.Style.BackgroundImage; ref != nil && s.images != nil {
		img, err := s.images.Load(ctx, *ref)
		if err != nil {
			s.logger.Warn("background image unavailable, using solid color",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		} else {
			bg = img
		}
	}

	img, err := s.renderer.Render(sess.Verse, sess.Style, sess.Ratio, bg)
	if err != nil {
		return nil, fmt.Errorf("render card: %w", err)
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, img, export.FormatPNG); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}

	return &entities.Card{
		FileName:  export.FileName(sess.Verse),
		Reference: sess.Verse.Reference,
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
		PNG:       buf.Bytes(),
	}, nil
}
