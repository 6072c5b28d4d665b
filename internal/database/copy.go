package database

import (
	"context"
	"fmt"

	"gharpey-console/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const copyBatchSize = 500

type tableCopier struct {
	table string
	copy  func(ctx context.Context, src, dst *gorm.DB) (int, error)
}

// Parents before children so foreign keys hold at every insert.
var tableCopiers = []tableCopier{
	{"contacts", copyTable[models.Contact]},
	{"conversations", copyTable[models.Conversation]},
	{"messages", copyTable[models.Message]},
	{"templates", copyTable[models.Template]},
	{"workflows", copyTable[models.Workflow]},
	{"workflow_instances", copyTable[models.WorkflowInstance]},
	{"notifications", copyTable[models.Notification]},
}

// CopyFrom copies every row of src into s inside one transaction, keeping ids.
// Rows whose id already exists in s are skipped, so a copy can be re-run.
// It returns the number of rows read per table.
func (s *Store) CopyFrom(ctx context.Context, src *Store) (map[string]int, error) {
	counts := make(map[string]int, len(tableCopiers))
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		for _, tc := range tableCopiers {
			n, err := tc.copy(ctx, src.db, tx)
			if err != nil {
				return fmt.Errorf("copy %s: %w", tc.table, err)
			}
			counts[tc.table] = n
			log.Info().Str("table", tc.table).Int("rows", n).Msg("Table copied")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func copyTable[T any](ctx context.Context, src, dst *gorm.DB) (int, error) {
	var rows []T
	if err := src.WithContext(ctx).Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	err := dst.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, copyBatchSize).Error
	if err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}
	return len(rows), nil
}
