package sheetstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormTabularStore implements TabularStore on top of PostgreSQL using GORM.
type GormTabularStore struct {
	db *gorm.DB
}

// NewGormTabularStore creates a new GORM-backed tabular store.
func NewGormTabularStore(db *gorm.DB) (*GormTabularStore, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}
	return &GormTabularStore{db: db}, nil
}

// Read returns every row of the sheet in insertion order, header included.
func (s *GormTabularStore) Read(ctx context.Context, sheet string) ([]ports.Row, error) {
	if sheet == "" {
		return nil, errs.NewValueIsRequiredError("sheet")
	}

	var dtos []RowDTO
	if err := s.db.WithContext(ctx).
		Where("sheet = ?", sheet).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	rows := make([]ports.Row, 0, len(dtos))
	for _, dto := range dtos {
		rows = append(rows, ports.Row(dto.Cells))
	}
	return rows, nil
}

// Append adds rows at the end of the sheet.
func (s *GormTabularStore) Append(ctx context.Context, sheet string, rows []ports.Row) error {
	if sheet == "" {
		return errs.NewValueIsRequiredError("sheet")
	}
	if len(rows) == 0 {
		return nil
	}

	dtos := make([]RowDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, RowDTO{Sheet: sheet, Cells: pq.StringArray(row)})
	}
	return s.db.WithContext(ctx).Create(&dtos).Error
}

// WriteCell overwrites one cell, widening the row when col lies past its
// current width.
func (s *GormTabularStore) WriteCell(ctx context.Context, sheet string, row, col int, value string) error {
	if sheet == "" {
		return errs.NewValueIsRequiredError("sheet")
	}
	if row < 0 || col < 0 {
		return errs.NewValueIsInvalidError("row and col must not be negative")
	}

	dto, err := s.rowAt(ctx, sheet, row)
	if err != nil {
		return err
	}

	cells := dto.Cells
	for len(cells) <= col {
		cells = append(cells, "")
	}
	cells[col] = value

	return s.db.WithContext(ctx).
		Model(&RowDTO{}).
		Where("id = ?", dto.ID).
		Update("cells", cells).Error
}

// DeleteRows removes the given data rows. Indices match the most recent Read;
// rows that no longer exist are skipped.
func (s *GormTabularStore) DeleteRows(ctx context.Context, sheet string, rows []int) error {
	if sheet == "" {
		return errs.NewValueIsRequiredError("sheet")
	}
	if len(rows) == 0 {
		return nil
	}

	var ids []uint
	if err := s.db.WithContext(ctx).
		Model(&RowDTO{}).
		Where("sheet = ?", sheet).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return err
	}

	targets := make([]uint, 0, len(rows))
	sorted := append([]int(nil), rows...)
	sort.Ints(sorted)
	for _, index := range sorted {
		if index <= 0 || index >= len(ids) {
			continue
		}
		targets = append(targets, ids[index])
	}
	if len(targets) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Delete(&RowDTO{}, targets).Error
}

func (s *GormTabularStore) rowAt(ctx context.Context, sheet string, row int) (RowDTO, error) {
	var dto RowDTO
	err := s.db.WithContext(ctx).
		Where("sheet = ?", sheet).
		Order("id").
		Offset(row).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return RowDTO{}, errs.NewObjectNotFoundError(fmt.Sprintf("row %d of sheet %s", row, sheet), row)
	}
	if err != nil {
		return RowDTO{}, err
	}
	return dto, nil
}
