package navigation

import (
	"fmt"
	"strconv"
)

// Result is the outcome of a path query
// Numeric values are a wire contract shared with external consumers and must not be reordered
type Result uint8

const (
	NextTile     Result = 0
	Pending      Result = 1
	Completed    Result = 2
	PathNotFound Result = 3
)

var resultNames = [...]string{
	NextTile:     "NextTile",
	Pending:      "Pending",
	Completed:    "Completed",
	PathNotFound: "PathNotFound",
}

func (r Result) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "Result(" + strconv.Itoa(int(r)) + ")"
}

// Valid reports whether r is one of the four defined codes
func (r Result) Valid() bool {
	return r <= PathNotFound
}

// MarshalJSON emits the integer code, never the name
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("navigation: invalid result code %d", uint8(r))
	}
	return strconv.AppendUint(nil, uint64(r), 10), nil
}

func (r *Result) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseUint(string(data), 10, 8)
	if err != nil {
		return fmt.Errorf("navigation: parse result code: %w", err)
	}
	res := Result(v)
	if !res.Valid() {
		return fmt.Errorf("navigation: invalid result code %d", v)
	}
	*r = res
	return nil
}

// TileResult pairs a result with the tile it refers to
// Tile is meaningful only for NextTile and Completed
type TileResult struct {
	Type Result
	Tile TileRef
}
