package telegram

import (
	"reflect"
	"testing"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

func TestCallbackCodec(t *testing.T) {
	tests := []struct {
		data   string
		action string
		params []string
	}{
		{buildRatioCallback(entities.RatioStory), actionRatio, []string{"9x16"}},
		{buildPresetCallback("golden"), actionPreset, []string{"golden"}},
		{buildPhotoCallback("Dwu85P9SOIk"), actionPhoto, []string{"Dwu85P9SOIk"}},
		{buildVerseCallback(entities.VerseReference{Surah: 2, Ayah: 255}), actionVerse, []string{"2", "255"}},
		{buildExportCallback(), actionExport, []string{}},
	}
	for _, tt := range tests {
		cd := decodeCallback(tt.data)
		if cd.Action != tt.action || !reflect.DeepEqual(cd.Params, tt.params) || cd.Raw != tt.data {
			t.Errorf("decodeCallback(%q) = %+v", tt.data, cd)
		}
		if cd.encode() != tt.data {
			t.Errorf("encode = %q, want %q", cd.encode(), tt.data)
		}
	}

	if r := ratioFromParam(decodeCallback(buildRatioCallback(entities.RatioPortrait)).param(0)); r != "4:5" {
		t.Errorf("ratio round trip = %q", r)
	}
	if len(buildExportCallback()) > 64 || len(buildVerseCallback(entities.VerseReference{Surah: 114, Ayah: 999})) > 64 {
		t.Error("callback data exceeds Telegram's 64 byte limit")
	}
}

func TestCallbackParams(t *testing.T) {
	cd := decodeCallback("photo:7")
	if i, ok := cd.intParam(0); !ok || i != 7 {
		t.Errorf("intParam(0) = %d, %v", i, ok)
	}
	if _, ok := cd.intParam(1); ok {
		t.Error("missing param parsed")
	}
	if cd.param(3) != "" {
		t.Error("out of range param should be empty")
	}

	if cd := decodeCallback(""); cd.Action != "" {
		t.Errorf("empty data decoded to %+v", cd)
	}
}
