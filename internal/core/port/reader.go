package port

// LineReader returns every line of a file, failing fast when the file cannot be read.
type LineReader interface {
	ReadAllLines(path string) ([]string, error)
}
