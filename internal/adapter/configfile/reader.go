package configfile

import (
	"bufio"
	"os"

	"github.com/pancudaniel7/ccloud-producer/internal/pkg/apperr"
)

// FileReader reads plain-text configuration files from the local filesystem.
type FileReader struct{}

func NewFileReader() *FileReader { return &FileReader{} }

// ReadAllLines returns the lines of path in order. Missing, unreadable or
// directory paths fail before any line is scanned.
func (FileReader) ReadAllLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.NewConfigFileErr(path, "config file is not readable", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, apperr.NewConfigFileErr(path, "config file is not readable", err)
	}
	if info.IsDir() {
		return nil, apperr.NewConfigFileErr(path, "config path is a directory", nil)
	}

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, apperr.NewConfigFileErr(path, "failed to read config file", err)
	}
	return lines, nil
}
