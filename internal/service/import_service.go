package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
)

// ErrImportInvalid wraps schema violations in a bulk import payload.
var ErrImportInvalid = errors.New("import payload does not match schema")

const importSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "minItems": 1,
  "maxItems": 500,
  "items": {
    "type": "object",
    "required": ["full_name", "nick_name", "level", "parent_phone"],
    "properties": {
      "full_name": {"type": "string", "minLength": 1},
      "nick_name": {"type": "string", "minLength": 1},
      "level": {"type": "string", "enum": ["TPA", "TK/PAUD", "SD", "SMP", "SMA"]},
      "parent_phone": {"type": "string", "minLength": 1}
    },
    "additionalProperties": false
  }
}`

// ImportService creates applicants in bulk from a JSON payload validated
// against an embedded schema before any row is written.
type ImportService interface {
	Import(ctx context.Context, actor Actor, payload []byte) (dto.ImportResponse, error)
}

type importService struct {
	students StudentService
	schema   *jsonschema.Schema
	logger   zerolog.Logger
}

// NewImportService constructs the bulk import service.
func NewImportService(students StudentService, logger zerolog.Logger) ImportService {
	schema := jsonschema.MustCompileString("import.json", importSchema)
	return &importService{
		students: students,
		schema:   schema,
		logger:   logger.With().Str("component", "import_service").Logger(),
	}
}

func (s *importService) Import(ctx context.Context, actor Actor, payload []byte) (dto.ImportResponse, error) {
	var document interface{}
	if err := json.Unmarshal(payload, &document); err != nil {
		return dto.ImportResponse{}, fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}

	if err := s.schema.Validate(document); err != nil {
		return dto.ImportResponse{}, fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}

	var rows []dto.ImportRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return dto.ImportResponse{}, fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}

	created := 0
	for _, row := range rows {
		_, err := s.students.Create(ctx, actor, dto.StudentCreateRequest{
			FullName:    row.FullName,
			NickName:    row.NickName,
			Level:       row.Level,
			ParentPhone: row.ParentPhone,
		})
		if err != nil {
			return dto.ImportResponse{Created: created}, err
		}
		created++
	}

	s.logger.Info().Int("created", created).Msg("bulk import completed")
	return dto.ImportResponse{Created: created}, nil
}
