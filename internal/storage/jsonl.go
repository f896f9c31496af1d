package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"coinScope/internal/model"
)

// JsonlStorage appends exported records to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutChartBatch appends chart points as JSON lines.
func (s *JsonlStorage) PutChartBatch(points []model.ChartPoint) error {
	records := make([]any, 0, len(points))
	for _, p := range points {
		records = append(records, p)
	}
	return s.appendLines(records)
}

// PutMarketBatch appends market coin snapshots as JSON lines.
func (s *JsonlStorage) PutMarketBatch(coins []model.MarketCoin) error {
	records := make([]any, 0, len(coins))
	for _, c := range coins {
		records = append(records, c)
	}
	return s.appendLines(records)
}

func (s *JsonlStorage) appendLines(records []any) error {
	if len(records) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
