package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/logger"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

// File storage, one JSON encoded hit per line
type FileStorage struct {
	filePath string
}

// New file storage
func NewFileStorage(filePath string) *FileStorage {
	return &FileStorage{filePath: filePath}
}

// Get hits from file
func (fs *FileStorage) Snapshot() ([]models.Hit, error) {
	file, err := os.OpenFile(fs.filePath, os.O_RDONLY|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("could not load data from file: %w", err)
	}
	defer file.Close()

	// Lines are unbounded, labels have no length limit
	reader := bufio.NewReader(file)
	result := make([]models.Hit, 0)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("could not restore data: %w", err)
		}
		if len(bytes.TrimSpace(line)) > 0 {
			var h models.Hit
			if jsonErr := json.Unmarshal(line, &h); jsonErr != nil {
				logger.Log.Warn("skip broken journal line", zap.String("path", fs.filePath), zap.Error(jsonErr))
			} else {
				result = append(result, h)
			}
		}
		if err != nil {
			return result, nil
		}
	}
}

// Save hits to file. The previous snapshot is replaced atomically
func (fs *FileStorage) Dump(hits []models.Hit) error {
	tmp, err := os.CreateTemp(filepath.Dir(fs.filePath), filepath.Base(fs.filePath)+".*")
	if err != nil {
		return fmt.Errorf("could not dump storage: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := bufio.NewWriter(tmp)
	encoder := json.NewEncoder(writer)
	for _, h := range hits {
		if err := encoder.Encode(h); err != nil {
			tmp.Close()
			return fmt.Errorf("could not dump storage: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("could not dump storage: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("could not dump storage: %w", err)
	}

	if err := os.Rename(tmp.Name(), fs.filePath); err != nil {
		return fmt.Errorf("could not dump storage: %w", err)
	}

	return nil
}
