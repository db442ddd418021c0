package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/pancudaniel7/ccloud-producer/internal/core/entity"
)

// CountDTO is the JSON payload of every produced record.
type CountDTO struct {
	Count int `json:"count"`
}

func MarshalCountJSON(count int) ([]byte, error) {
	return json.Marshal(CountDTO{Count: count})
}

func UnmarshalCountJSON(data []byte) (CountDTO, error) {
	var d CountDTO
	if err := json.Unmarshal(data, &d); err != nil {
		return CountDTO{}, fmt.Errorf("decode count payload: %w", err)
	}
	return d, nil
}

// newCountRecord builds the idx-th record of a run.
func newCountRecord(topic, key string, idx int) (entity.Record, error) {
	value, err := MarshalCountJSON(idx)
	if err != nil {
		return entity.Record{}, err
	}
	return entity.Record{Topic: topic, Key: []byte(key), Value: value}, nil
}
