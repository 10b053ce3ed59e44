// SPDX-License-Identifier: MIT
package lexer

type (
	// ItemID int holding an identifier for the Item tokens
	ItemID int

	// Item type holding token, value & item type of scanned rune
	Item struct {
		Err error
		Val []byte // The value of this Item
		ID  ItemID // The type of this Item
		Pos int    // The starting position, (in bytes) of this Item
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_              = iota // Consume 0 to start actual numbering at 1.
	ItemError             // Notify occurrence of an `error`.
	ItemSplitter          // ','.
	ItemEOF               // End of the file
	ItemValue             // Bare word.
	ItemQuoted            // JSON quoted string, quotes included.
	ItemOpenMarker        // '('.
	ItemEndMarker         // ')'.
)

var itemNames = map[ItemID]string{
	ItemError:      "error",
	ItemSplitter:   "splitter",
	ItemEOF:        "EOF",
	ItemValue:      "value",
	ItemQuoted:     "quoted value",
	ItemOpenMarker: "open marker",
	ItemEndMarker:  "end marker",
}

// String is the fmt.Stringer implementation for ItemID.
func (i ItemID) String() string {
	if name, ok := itemNames[i]; ok {
		return name
	}

	return "unknown"
}
