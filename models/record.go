package models

// Record is one parsed input line.
type Record struct {
	Text  string
	Label Label
}

// WordPair is a single (label, word) emission from the tokenizer.
type WordPair struct {
	Label Label
	Word  string
}

// CountEntry is a word together with the number of times it was seen
// under one label.
type CountEntry struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}
