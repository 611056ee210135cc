package loader

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/kraitsura/groups_viewer/pkg/model"
)

// FileSource reads groups from a local file.
//
// .json and .jsonc files may hold a bare array or a {result, data}
// envelope; comments and trailing commas are allowed. .jsonl files hold
// one group per line.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the file being read
func (s *FileSource) Path() string {
	return s.path
}

// LoadGroups reads and decodes the file
func (s *FileSource) LoadGroups(ctx context.Context) ([]model.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadErr(s.path, err)
	}

	// Check if file exists
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, loadErr(s.path, fmt.Errorf("no groups file found at %s", s.path))
	}

	if strings.EqualFold(filepath.Ext(s.path), ".jsonl") {
		return s.loadJSONL()
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, loadErr(s.path, fmt.Errorf("read groups file: %w", err))
	}
	return decodeDocument(s.path, data)
}

// decodeDocument accepts either a bare array or the response envelope
func decodeDocument(source string, data []byte) ([]model.Group, error) {
	stripped := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(stripped) == 0 {
		return nil, loadErr(source, fmt.Errorf("empty document"))
	}

	if stripped[0] == '[' {
		var groups []model.Group
		if err := json.Unmarshal(stripped, &groups); err != nil {
			return nil, loadErr(source, fmt.Errorf("decode groups: %w", err))
		}
		return groups, nil
	}

	var resp model.GetGroupsResponse
	if err := json.Unmarshal(stripped, &resp); err != nil {
		return nil, loadErr(source, fmt.Errorf("decode response: %w", err))
	}
	return fromResponse(source, resp)
}

func (s *FileSource) loadJSONL() ([]model.Group, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, loadErr(s.path, fmt.Errorf("open groups file: %w", err))
	}
	defer file.Close()

	groups := make([]model.Group, 0)
	scanner := bufio.NewScanner(file)
	const maxCapacity = 1024 * 1024 * 10 // 10MB
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var g model.Group
		if err := json.Unmarshal(line, &g); err != nil {
			return nil, loadErr(s.path, fmt.Errorf("line %d: %w", lineNum, err))
		}
		groups = append(groups, g)
	}

	if err := scanner.Err(); err != nil {
		return nil, loadErr(s.path, fmt.Errorf("error reading groups file: %w", err))
	}

	return groups, nil
}
