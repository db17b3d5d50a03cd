package store

// ConditionRow is one log row as read from an input file, before any typing.
type ConditionRow struct {
	Source  string
	Line    int
	Date    string
	Level   string
	Comment string
}
