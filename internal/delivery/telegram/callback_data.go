package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionRatio  = "ratio"
	actionPreset = "preset"
	actionPhoto  = "photo"
	actionMore   = "more"
	actionNoBG   = "nobg"
	actionExport = "export"
	actionVerse  = "verse"
	actionDaily  = "daily"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 || parts[0] == "" {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	return n, err == nil
}

// Ratios contain ':' so they travel as "1x1".
func buildRatioCallback(r entities.AspectRatio) string {
	return callbackData{
		Action: actionRatio,
		Params: []string{strings.ReplaceAll(string(r), ":", "x")},
	}.encode()
}

func ratioFromParam(p string) string {
	return strings.ReplaceAll(p, "x", ":")
}

func buildPresetCallback(name string) string {
	return callbackData{Action: actionPreset, Params: []string{name}}.encode()
}

// Photo buttons carry the photo ID, so a button from an older search
// cannot pick a photo of the current one.
func buildPhotoCallback(id string) string {
	return callbackData{Action: actionPhoto, Params: []string{id}}.encode()
}

func buildVerseCallback(ref entities.VerseReference) string {
	return callbackData{
		Action: actionVerse,
		Params: []string{strconv.Itoa(ref.Surah), strconv.Itoa(ref.Ayah)},
	}.encode()
}

func buildMoreCallback() string   { return actionMore }
func buildNoBGCallback() string   { return actionNoBG }
func buildExportCallback() string { return actionExport }
func buildDailyCallback() string  { return actionDaily }
