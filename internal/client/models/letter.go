// Package models defines the client-side data model: the alphabet catalog and
// the locally persisted session/progress records.
package models

// Letter is one entry of the alphabet catalog: the letter itself, an example
// word, a picture placeholder, and the pronunciation audio asset path.
type Letter struct {
	ID    int    `json:"id"`
	Char  string `json:"letter"`
	Word  string `json:"word"`
	Image string `json:"image"`
	Audio string `json:"audio"`
}

// Letters is the fixed 26-letter catalog, IDs 1..26 in alphabet order.
var Letters = []Letter{
	{ID: 1, Char: "A", Word: "Apple", Image: "🍎", Audio: "/audio/a.mp3"},
	{ID: 2, Char: "B", Word: "Ball", Image: "⚽", Audio: "/audio/b.mp3"},
	{ID: 3, Char: "C", Word: "Cat", Image: "🐱", Audio: "/audio/c.mp3"},
	{ID: 4, Char: "D", Word: "Dog", Image: "🐶", Audio: "/audio/d.mp3"},
	{ID: 5, Char: "E", Word: "Elephant", Image: "🐘", Audio: "/audio/e.mp3"},
	{ID: 6, Char: "F", Word: "Fish", Image: "🐟", Audio: "/audio/f.mp3"},
	{ID: 7, Char: "G", Word: "Grape", Image: "🍇", Audio: "/audio/g.mp3"},
	{ID: 8, Char: "H", Word: "House", Image: "🏠", Audio: "/audio/h.mp3"},
	{ID: 9, Char: "I", Word: "Ice cream", Image: "🍦", Audio: "/audio/i.mp3"},
	{ID: 10, Char: "J", Word: "Juice", Image: "🧃", Audio: "/audio/j.mp3"},
	{ID: 11, Char: "K", Word: "Kite", Image: "🪁", Audio: "/audio/k.mp3"},
	{ID: 12, Char: "L", Word: "Lion", Image: "🦁", Audio: "/audio/l.mp3"},
	{ID: 13, Char: "M", Word: "Moon", Image: "🌙", Audio: "/audio/m.mp3"},
	{ID: 14, Char: "N", Word: "Nest", Image: "🪺", Audio: "/audio/n.mp3"},
	{ID: 15, Char: "O", Word: "Orange", Image: "🍊", Audio: "/audio/o.mp3"},
	{ID: 16, Char: "P", Word: "Panda", Image: "🐼", Audio: "/audio/p.mp3"},
	{ID: 17, Char: "Q", Word: "Queen", Image: "👸", Audio: "/audio/q.mp3"},
	{ID: 18, Char: "R", Word: "Rainbow", Image: "🌈", Audio: "/audio/r.mp3"},
	{ID: 19, Char: "S", Word: "Sun", Image: "☀️", Audio: "/audio/s.mp3"},
	{ID: 20, Char: "T", Word: "Tiger", Image: "🐯", Audio: "/audio/t.mp3"},
	{ID: 21, Char: "U", Word: "Umbrella", Image: "☂️", Audio: "/audio/u.mp3"},
	{ID: 22, Char: "V", Word: "Violin", Image: "🎻", Audio: "/audio/v.mp3"},
	{ID: 23, Char: "W", Word: "Watermelon", Image: "🍉", Audio: "/audio/w.mp3"},
	{ID: 24, Char: "X", Word: "X-ray", Image: "🩻", Audio: "/audio/x-ray.mp3"},
	{ID: 25, Char: "Y", Word: "Yo-yo", Image: "🪀", Audio: "/audio/y.mp3"},
	{ID: 26, Char: "Z", Word: "Zebra", Image: "🦓", Audio: "/audio/z.mp3"},
}

// LetterByID returns the catalog entry for id (1..26), or nil.
func LetterByID(id int) *Letter {
	if id < 1 || id > len(Letters) {
		return nil
	}
	return &Letters[id-1]
}

// LetterByChar returns the catalog entry matching the given letter (case
// insensitive single character), or nil.
func LetterByChar(ch string) *Letter {
	if len(ch) != 1 {
		return nil
	}
	c := ch[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'Z' {
		return nil
	}
	return &Letters[int(c-'A')]
}
