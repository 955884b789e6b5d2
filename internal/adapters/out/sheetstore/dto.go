// Package sheetstore persists sheets in PostgreSQL. Each sheet is an ordered
// list of rows addressed by position, row 0 being the header, which mirrors
// the spreadsheet the shop originally ran on.
package sheetstore

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// RowDTO is one stored sheet row. Position within a sheet follows insertion
// order of the surrogate key; deleting a row closes the gap on the next read.
type RowDTO struct {
	ID    uint           `gorm:"primaryKey;autoIncrement"`
	Sheet string         `gorm:"type:varchar(64);not null;index"`
	Cells pq.StringArray `gorm:"type:text[]"`
}

// TableName overrides GORM's default naming to use "sheet_rows".
func (RowDTO) TableName() string {
	return "sheet_rows"
}

// Migrate creates the backing table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RowDTO{})
}
