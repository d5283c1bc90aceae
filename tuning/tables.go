// Package tuning holds the just-intonation interval tables. Each table
// maps the 12 chromatic interval classes to a justly-tuned size (in
// semitones, 12·log2 of the ratio) and a consonance rank. Ranks are a
// permutation of 0-11 per table; the unison is always rank 11.
package tuning

import "fmt"

type Entry struct {
	Class int     // chromatic interval class 0-11
	Just  float64 // just interval size in semitones
	Rank  int     // consonance rank, 11 most consonant
}

// Table is indexed by chromatic class.
type Table [12]Entry

// Limits are the supported prime limits, one table each.
var Limits = []int{5, 7, 11, 13}

type InvalidLimitError struct {
	Limit int
}

func (e InvalidLimitError) Error() string {
	return fmt.Sprintf("invalid tuning limit: %v (want one of 5, 7, 11, 13)", e.Limit)
}

var fiveLimit = Table{
	{0, 0, 11},       // 1/1
	{1, 1.1173, 1},   // 16/15
	{2, 2.0391, 5},   // 9/8
	{3, 3.1564, 6},   // 6/5
	{4, 3.8631, 2},   // 5/4
	{5, 4.9804, 9},   // 4/3
	{6, 5.9022, 0},   // 45/32
	{7, 7.0196, 10},  // 3/2
	{8, 8.1369, 3},   // 8/5
	{9, 8.8436, 7},   // 5/3
	{10, 10.1760, 4}, // 9/5
	{11, 10.8827, 8}, // 15/8
}

var sevenLimit = Table{
	{0, 0, 11},       // 1/1
	{1, 1.1173, 0},   // 16/15
	{2, 2.3117, 4},   // 8/7
	{3, 2.6687, 6},   // 7/6
	{4, 3.8631, 3},   // 5/4
	{5, 4.9804, 8},   // 4/3
	{6, 5.8251, 5},   // 7/5
	{7, 7.0196, 10},  // 3/2
	{8, 8.1369, 2},   // 8/5
	{9, 9.3313, 7},   // 12/7
	{10, 9.6883, 9},  // 7/4
	{11, 10.8827, 1}, // 15/8
}

var elevenLimit = Table{
	{0, 0, 11},       // 1/1
	{1, 1.5064, 2},   // 12/11
	{2, 2.3117, 4},   // 8/7
	{3, 2.6687, 6},   // 7/6
	{4, 3.8631, 3},   // 5/4
	{5, 4.9804, 8},   // 4/3
	{6, 5.5132, 7},   // 11/8
	{7, 7.0196, 10},  // 3/2
	{8, 8.5259, 5},   // 18/11
	{9, 9.3313, 9},   // 12/7
	{10, 9.6883, 1},  // 7/4
	{11, 10.8827, 0}, // 15/8
}

var thirteenLimit = Table{
	{0, 0, 11},       // 1/1
	{1, 1.3857, 3},   // 13/12
	{2, 2.3117, 4},   // 8/7
	{3, 2.8921, 6},   // 13/11
	{4, 3.8631, 5},   // 5/4
	{5, 4.9804, 8},   // 4/3
	{6, 5.5132, 7},   // 11/8
	{7, 7.0196, 10},  // 3/2
	{8, 8.4053, 9},   // 13/8
	{9, 9.3313, 2},   // 12/7
	{10, 9.6883, 1},  // 7/4
	{11, 10.8827, 0}, // 15/8
}

// Select returns the preset for the given prime limit. Tables are
// returned by value so callers can't mutate the presets.
func Select(limit int) (Table, error) {
	switch limit {
	case 5:
		return fiveLimit, nil
	case 7:
		return sevenLimit, nil
	case 11:
		return elevenLimit, nil
	case 13:
		return thirteenLimit, nil
	}
	return Table{}, InvalidLimitError{Limit: limit}
}
