// Package alquran is a client of the api.alquran.cloud verse lookup service.
package alquran

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dghubble/sling"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

// DefaultBaseURL is the public endpoint of the service.
const DefaultBaseURL = "https://api.alquran.cloud/v1/"

var ErrMalformedResponse = errors.New("malformed ayah response")

// Editions selects the texts fetched for every verse.
type Editions struct {
	Primary     string // original script, e.g. "quran-uthmani"
	Translation string // translation, e.g. "en.asad"
}

// DefaultEditions are the Uthmani script and Muhammad Asad's translation.
var DefaultEditions = Editions{Primary: "quran-uthmani", Translation: "en.asad"}

// Client fetches a verse and its translation.
type Client struct {
	sling    *sling.Sling
	editions Editions
	logger   *zap.Logger
}

// NewClient creates a client. A nil httpClient means http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, editions Editions, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if editions.Primary == "" {
		editions.Primary = DefaultEditions.Primary
	}
	if editions.Translation == "" {
		editions.Translation = DefaultEditions.Translation
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := sling.New().Base(baseURL)
	if httpClient != nil {
		s = s.Client(httpClient)
	}

	return &Client{
		sling:    s,
		editions: editions,
		logger:   logger,
	}
}

type ayahResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Number        int    `json:"number"`
		Text          string `json:"text"`
		NumberInSurah int    `json:"numberInSurah"`
		Surah         struct {
			Number                 int    `json:"number"`
			Name                   string `json:"name"`
			EnglishName            string `json:"englishName"`
			EnglishNameTranslation string `json:"englishNameTranslation"`
		} `json:"surah"`
	} `json:"data"`
}

type apiError struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// GetVerse fetches the primary text and the translation of ref concurrently
// and combines them. Any failure of either request fails the whole call with
// entities.ErrVerseUnavailable; there are no retries and no partial results.
func (c *Client) GetVerse(ctx context.Context, ref entities.VerseReference) (*entities.Verse, error) {
	var primary, translation ayahResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getAyah(gctx, ref, c.editions.Primary, &primary)
	})
	g.Go(func() error {
		return c.getAyah(gctx, ref, c.editions.Translation, &translation)
	})

	if err := g.Wait(); err != nil {
		c.logger.Warn("failed to fetch verse",
			zap.String("reference", ref.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", entities.ErrVerseUnavailable, err)
	}

	return &entities.Verse{
		PrimaryText:        clean(primary.Data.Text),
		TranslationText:    clean(translation.Data.Text),
		Reference:          ref.String(),
		ChapterNameLocal:   clean(primary.Data.Surah.Name),
		ChapterNameForeign: clean(primary.Data.Surah.EnglishName),
	}, nil
}

func (c *Client) getAyah(ctx context.Context, ref entities.VerseReference, edition string, out *ayahResponse) error {
	path := fmt.Sprintf("ayah/%d:%d/%s", ref.Surah, ref.Ayah, edition)

	req, err := c.sling.New().Get(path).Request()
	if err != nil {
		return fmt.Errorf("build request %s: %w", edition, err)
	}

	var failure apiError
	resp, err := c.sling.Do(req.WithContext(ctx), out, &failure)
	if err != nil {
		return fmt.Errorf("get %s: %w", edition, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("get %s: unexpected status %s", edition, resp.Status)
	}

	if out.Code != 0 && out.Code != http.StatusOK {
		return fmt.Errorf("get %s: %w: code %d", edition, ErrMalformedResponse, out.Code)
	}
	if strings.TrimSpace(out.Data.Text) == "" {
		return fmt.Errorf("get %s: %w: empty text", edition, ErrMalformedResponse)
	}

	return nil
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
