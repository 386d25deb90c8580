package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/javiermolinar/timetable/internal/lecture"
)

// ErrInvalidKey is returned when a block identity cannot be parsed.
var ErrInvalidKey = errors.New("invalid block key")

// Key identifies a placed block by its table and its position in that
// table's block list. The same lecture may appear as several blocks, so the
// position is the identity. Any structural change to the table invalidates
// outstanding keys; a stale key either points past the end of the table or
// at a different block.
type Key struct {
	TableID string
	Index   int
}

// String encodes the key as "<tableID>:<index>".
func (k Key) String() string {
	return k.TableID + ":" + strconv.Itoa(k.Index)
}

// ParseKey decodes a "<tableID>:<index>" identity. The table id may itself
// contain colons; the index follows the last one.
func ParseKey(s string) (Key, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	index, err := strconv.Atoi(s[i+1:])
	if err != nil || index < 0 {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return Key{TableID: s[:i], Index: index}, nil
}

// Lookup returns the block a key points at, if the key is still in range.
func (s *Store) Lookup(k Key) (lecture.Block, bool) {
	blocks, ok := s.Table(k.TableID)
	if !ok || k.Index < 0 || k.Index >= len(blocks) {
		return lecture.Block{}, false
	}
	return blocks[k.Index], true
}
