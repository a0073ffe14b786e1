package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"really-simple-feedback/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type recordRow struct {
	ID        uint      `gorm:"primaryKey"`
	Category  string    `gorm:"index:idx_records_category_created;not null;size:64"`
	CreatedAt time.Time `gorm:"index:idx_records_category_created"`
}

func (recordRow) TableName() string { return "records" }

type attributeRow struct {
	RecordID uint   `gorm:"primaryKey;autoIncrement:false"`
	Key      string `gorm:"column:meta_key;primaryKey;size:255"`
	Value    string `gorm:"column:meta_value;type:text"`
}

func (attributeRow) TableName() string { return "record_attributes" }

// SQLRecordRepo stores records in a relational table with a side table of
// attributes, one row per key.
type SQLRecordRepo struct {
	db *gorm.DB
}

func NewSQLRecordRepo(db *gorm.DB) *SQLRecordRepo {
	return &SQLRecordRepo{db: db}
}

func (r *SQLRecordRepo) Migrate() error {
	return r.db.AutoMigrate(&recordRow{}, &attributeRow{})
}

// Create inserts the record row and its attributes in one transaction.
func (r *SQLRecordRepo) Create(ctx context.Context, category string, attributes map[string]string) (string, error) {
	row := recordRow{Category: category, CreatedAt: time.Now().UTC()}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if len(attributes) == 0 {
			return nil
		}
		attrs := make([]attributeRow, 0, len(attributes))
		for k, v := range attributes {
			attrs = append(attrs, attributeRow{RecordID: row.ID, Key: k, Value: v})
		}
		return tx.Create(&attrs).Error
	})
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}
	return strconv.FormatUint(uint64(row.ID), 10), nil
}

func (r *SQLRecordRepo) Get(ctx context.Context, id string) (*models.Record, error) {
	rowID, ok := parseRowID(id)
	if !ok {
		return nil, nil
	}

	var row recordRow
	if err := r.db.WithContext(ctx).First(&row, rowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find record: %w", err)
	}

	var attrs []attributeRow
	if err := r.db.WithContext(ctx).Where("record_id = ?", row.ID).Find(&attrs).Error; err != nil {
		return nil, fmt.Errorf("find attributes: %w", err)
	}
	return toRecord(row, attrs), nil
}

func (r *SQLRecordRepo) SetAttribute(ctx context.Context, id, key, value string) error {
	rowID, err := r.existing(ctx, id)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_id"}, {Name: "meta_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"meta_value"}),
	}).Create(&attributeRow{RecordID: rowID, Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("set attribute: %w", err)
	}
	return nil
}

func (r *SQLRecordRepo) DeleteAttribute(ctx context.Context, id, key string) error {
	rowID, err := r.existing(ctx, id)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Where("record_id = ? AND meta_key = ?", rowID, key).
		Delete(&attributeRow{}).Error
	if err != nil {
		return fmt.Errorf("delete attribute: %w", err)
	}
	return nil
}

// List returns records of a category, newest first.
func (r *SQLRecordRepo) List(ctx context.Context, category string) ([]*models.Record, error) {
	var rows []recordRow
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	if len(rows) == 0 {
		return []*models.Record{}, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	var attrs []attributeRow
	if err := r.db.WithContext(ctx).Where("record_id IN ?", ids).Find(&attrs).Error; err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	byRecord := make(map[uint][]attributeRow, len(rows))
	for _, a := range attrs {
		byRecord[a.RecordID] = append(byRecord[a.RecordID], a)
	}

	records := make([]*models.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row, byRecord[row.ID]))
	}
	return records, nil
}

func (r *SQLRecordRepo) existing(ctx context.Context, id string) (uint, error) {
	rowID, ok := parseRowID(id)
	if !ok {
		return 0, ErrNotFound
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&recordRow{}).Where("id = ?", rowID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("find record: %w", err)
	}
	if count == 0 {
		return 0, ErrNotFound
	}
	return rowID, nil
}

func parseRowID(id string) (uint, bool) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func toRecord(row recordRow, attrs []attributeRow) *models.Record {
	rec := &models.Record{
		ID:         strconv.FormatUint(uint64(row.ID), 10),
		Category:   row.Category,
		Attributes: make(map[string]string, len(attrs)),
		CreatedAt:  row.CreatedAt,
	}
	for _, a := range attrs {
		rec.Attributes[a.Key] = a.Value
	}
	return rec
}
