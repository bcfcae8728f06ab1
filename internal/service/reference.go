package service

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

// The lexer knows only digits and the colon, and elides nothing:
// any other character (including whitespace) fails the parse.
var (
	referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Colon", Pattern: `:`},
	})

	referenceParser = participle.MustBuild[referenceNode](
		participle.Lexer(referenceLexer),
	)
)

// referenceNode is the "<digits>:<digits>" grammar.
type referenceNode struct {
	Surah string `parser:"@Int"`
	Ayah  string `parser:"':' @Int"`
}

// ParseReference decomposes a "surah:ayah" string.
// It reports false for anything that is not exactly two numbers separated
// by a colon, for a surah outside 1..114 and for an ayah below 1.
func ParseReference(input string) (entities.VerseReference, bool) {
	node, err := referenceParser.ParseString("", input)
	if err != nil {
		return entities.VerseReference{}, false
	}

	surah, err := strconv.Atoi(node.Surah)
	if err != nil {
		return entities.VerseReference{}, false
	}
	ayah, err := strconv.Atoi(node.Ayah)
	if err != nil {
		return entities.VerseReference{}, false
	}

	ref := entities.VerseReference{Surah: surah, Ayah: ayah}
	if !ref.Valid() {
		return entities.VerseReference{}, false
	}
	return ref, true
}
