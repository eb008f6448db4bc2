package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// documentRow is the single relational table backing every collection.
type documentRow struct {
	ID         string         `gorm:"primaryKey"`
	Collection string         `gorm:"primaryKey;index"`
	Data       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (documentRow) TableName() string { return "documents" }

// Migrate creates the documents table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&documentRow{})
}

// GormCollection persists records of type T as JSON documents in the shared
// documents table.
type GormCollection[T any, PT Doc[T]] struct {
	db   *gorm.DB
	name string
}

func NewGormCollection[T any, PT Doc[T]](db *gorm.DB, name string) *GormCollection[T, PT] {
	return &GormCollection[T, PT]{db: db, name: name}
}

func (c *GormCollection[T, PT]) Get(id string) (PT, error) {
	var row documentRow
	err := c.db.First(&row, "collection = ? AND id = ?", c.name, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c.decode(&row)
}

func (c *GormCollection[T, PT]) Create(doc PT) (PT, error) {
	if doc.GetID() == "" {
		doc.SetID(uuid.NewString())
	}
	now := time.Now().UTC()
	doc.SetCreatedAt(now)
	doc.SetUpdatedAt(now)

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	row := documentRow{
		ID:         doc.GetID(),
		Collection: c.name,
		Data:       datatypes.JSON(data),
	}
	if err := c.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *GormCollection[T, PT]) Update(doc PT) (PT, error) {
	doc.SetUpdatedAt(time.Now().UTC())

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	res := c.db.Model(&documentRow{}).
		Where("collection = ? AND id = ?", c.name, doc.GetID()).
		Update("data", datatypes.JSON(data))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (c *GormCollection[T, PT]) Delete(id string) error {
	res := c.db.Where("collection = ? AND id = ?", c.name, id).Delete(&documentRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *GormCollection[T, PT]) FindByField(field string, value any) ([]PT, error) {
	var rows []documentRow
	err := c.db.
		Where("collection = ?", c.name).
		Where(datatypes.JSONQuery("data").Equals(value, field)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return c.decodeAll(rows)
}

func (c *GormCollection[T, PT]) List() ([]PT, error) {
	var rows []documentRow
	if err := c.db.Where("collection = ?", c.name).Find(&rows).Error; err != nil {
		return nil, err
	}
	return c.decodeAll(rows)
}

func (c *GormCollection[T, PT]) decode(row *documentRow) (PT, error) {
	rec := PT(new(T))
	if err := json.Unmarshal(row.Data, rec); err != nil {
		return nil, err
	}
	rec.SetID(row.ID)
	return rec, nil
}

func (c *GormCollection[T, PT]) decodeAll(rows []documentRow) ([]PT, error) {
	out := make([]PT, 0, len(rows))
	for i := range rows {
		rec, err := c.decode(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
