package storage

// Block identifiers arrive from the engine in their wire form
// ("dataset_12_3", "broadcast_7", ...). The grammar is parsed with the
// github.com/viant/parsly tokenizer.

import (
	"fmt"
	"strconv"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes (start at 1 to avoid clash with parsly.EOF).
const (
	tDataset = iota + 1
	tBroadcast
	tStream
	tTemp
	tSeparator
	tNumber
	tName
)

var (
	tokDataset   = parsly.NewToken(tDataset, "Dataset", matcher.NewFragment("dataset_"))
	tokBroadcast = parsly.NewToken(tBroadcast, "Broadcast", matcher.NewFragment("broadcast_"))
	tokStream    = parsly.NewToken(tStream, "Stream", matcher.NewFragment("stream_"))
	tokTemp      = parsly.NewToken(tTemp, "Temp", matcher.NewFragment("temp_"))
	tokSeparator = parsly.NewToken(tSeparator, "_", matcher.NewByte('_'))
	tokNumber    = parsly.NewToken(tNumber, "Number", &numberMatcher{})
	tokName      = parsly.NewToken(tName, "Name", &nameMatcher{})
)

// numberMatcher matches a run of decimal digits.
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	size := cursor.InputSize
	matched := 0
	for i := cursor.Pos; i < size; i++ {
		if input[i] < '0' || input[i] > '9' {
			break
		}
		matched++
	}
	return matched
}

// nameMatcher matches the remainder of the identifier (must be non-empty).
type nameMatcher struct{}

func (m *nameMatcher) Match(cursor *parsly.Cursor) int {
	return cursor.InputSize - cursor.Pos
}

// ParseBlockID parses the engine wire form of a block identifier.
func ParseBlockID(text string) (BlockID, error) {
	cursor := parsly.NewCursor("", []byte(text), 0)
	match := cursor.MatchAny(tokDataset, tokBroadcast, tokStream, tokTemp)
	switch match.Code {
	case tDataset:
		datasetID, err := matchNumber(cursor)
		if err != nil {
			return BlockID{}, err
		}
		if sep := cursor.MatchOne(tokSeparator); sep.Code != tSeparator {
			return BlockID{}, cursor.NewError(tokSeparator)
		}
		partition, err := matchNumber(cursor)
		if err != nil {
			return BlockID{}, err
		}
		if cursor.Pos < cursor.InputSize {
			return BlockID{}, fmt.Errorf("invalid block id %q: unexpected trailing content", text)
		}
		return DatasetBlockID(datasetID, partition), nil
	case tBroadcast, tStream, tTemp:
		name := cursor.MatchOne(tokName)
		if name.Code != tName {
			return BlockID{}, cursor.NewError(tokName)
		}
		kind := map[int]BlockKind{tBroadcast: KindBroadcast, tStream: KindStream, tTemp: KindTemp}[match.Code]
		return NamedBlockID(kind, name.Text(cursor)), nil
	default:
		return BlockID{}, fmt.Errorf("invalid block id %q: unknown namespace", text)
	}
}

func matchNumber(cursor *parsly.Cursor) (int, error) {
	match := cursor.MatchOne(tokNumber)
	if match.Code != tNumber {
		return 0, cursor.NewError(tokNumber)
	}
	return strconv.Atoi(match.Text(cursor))
}
