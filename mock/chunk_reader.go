package mock_generator

import (
	"encoding/json"
	"os"

	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
)

type ChunkReader interface {
	Read(fileName string) ([]MockChunk, error)
}

type fileChunkReader struct {
	logger outbound.LoggerPort
}

func NewFileChunkReader(logger outbound.LoggerPort) ChunkReader {
	return &fileChunkReader{
		logger: logger,
	}
}

func (f *fileChunkReader) Read(fileName string) ([]MockChunk, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			f.logger.Error(err, "failed to close file")
		}
	}(file)

	var chunks []MockChunk
	if err := json.NewDecoder(file).Decode(&chunks); err != nil {
		f.logger.Error(err, "failed to decode json")
		return nil, err
	}

	return chunks, nil
}
