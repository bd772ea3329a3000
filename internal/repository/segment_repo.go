package repository

import (
	"errors"
	"os"
	"time"

	"timeturner/internal/models"
	"timeturner/pkg/timeutil"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SegmentRepository is the segment store consumed by the reconciliation
// and listing engines.
type SegmentRepository interface {
	Create(segment *models.Segment) error
	Update(id uint, update SegmentUpdate) error
	Delete(id uint) error
	GetByID(id uint) (*models.Segment, error)
	GetLatest(openOnly bool) (*models.Segment, error)
	GetOverlapping(start time.Time, end *time.Time, excludeFullDays bool) ([]models.Segment, error)
	GetFullDayByDate(day time.Time) (*models.Segment, error)
	GetAll() ([]models.Segment, error)
	Transaction(fn func(SegmentRepository) error) error
}

type GormSegmentRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormSegmentRepository(db *gorm.DB) (*GormSegmentRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if os.Getenv("TIMETURNER_DEBUG") == "" {
		logger.SetLevel(logrus.WarnLevel)
	}

	if err := db.AutoMigrate(&models.Tag{}, &models.Segment{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate segment tables")
		return nil, err
	}

	logger.Debug("Segment repository initialized")

	return &GormSegmentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormSegmentRepository) Create(segment *models.Segment) error {
	r.logger.WithFields(logrus.Fields{
		"range": segment.FormatRange(),
		"tags":  segment.TagNames(),
	}).Info("Creating segment")

	if !segment.IsValid() {
		r.logger.WithField("range", segment.FormatRange()).Warn("Invalid segment data")
		return errors.New("invalid segment data")
	}

	tags, err := r.resolveTags(segment.TagNames())
	if err != nil {
		return err
	}
	segment.Tags = tags

	if err := r.db.Create(segment).Error; err != nil {
		r.logger.WithError(err).Error("Failed to create segment")
		return err
	}

	return nil
}

func (r *GormSegmentRepository) Update(id uint, update SegmentUpdate) error {
	r.logger.WithField("id", id).Debug("Updating segment")

	changes := update.columns()
	if len(changes) > 0 {
		result := r.db.Model(&models.Segment{}).Where("id = ?", id).Updates(changes)
		if result.Error != nil {
			r.logger.WithError(result.Error).Error("Failed to update segment")
			return result.Error
		}
		if result.RowsAffected == 0 {
			r.logger.WithField("id", id).Warn("Segment not found for update")
			return errors.New("segment not found")
		}
	}

	if update.Tags.IsSet() {
		tags, err := r.resolveTags(update.Tags.Value())
		if err != nil {
			return err
		}
		segment := models.Segment{ID: id}
		if err := r.db.Model(&segment).Association("Tags").Replace(tags); err != nil {
			r.logger.WithError(err).Error("Failed to replace segment tags")
			return err
		}
		if err := r.pruneOrphanTags(); err != nil {
			return err
		}
	}

	return nil
}

func (r *GormSegmentRepository) Delete(id uint) error {
	r.logger.WithField("id", id).Info("Deleting segment")

	segment := models.Segment{ID: id}
	if err := r.db.Model(&segment).Association("Tags").Clear(); err != nil {
		r.logger.WithError(err).Error("Failed to clear segment tags")
		return err
	}

	result := r.db.Delete(&models.Segment{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete segment")
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Segment not found for deletion")
		return errors.New("segment not found")
	}

	return r.pruneOrphanTags()
}

func (r *GormSegmentRepository) GetByID(id uint) (*models.Segment, error) {
	var segment models.Segment
	result := r.db.Preload("Tags").First(&segment, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Segment not found")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get segment by ID")
		return nil, result.Error
	}

	return &segment, nil
}

func (r *GormSegmentRepository) GetLatest(openOnly bool) (*models.Segment, error) {
	query := r.db.Preload("Tags").Order("start_time DESC")
	if openOnly {
		query = query.Where("end_time IS NULL")
	}

	var segment models.Segment
	result := query.First(&segment)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.Debug("No latest segment found")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get latest segment")
		return nil, result.Error
	}

	return &segment, nil
}

// GetOverlapping returns all segments whose range intersects
// [start, end), ordered by start ascending. Open segments count as
// overlapping everything from their start onward. When end is nil the
// interval collapses to the instant start and the first segment
// starting strictly after it is included as well.
func (r *GormSegmentRepository) GetOverlapping(start time.Time, end *time.Time, excludeFullDays bool) ([]models.Segment, error) {
	rangeEnd := start
	if end != nil {
		rangeEnd = *end
	}

	query := r.db.Preload("Tags").
		Where("start_time <= ?", rangeEnd).
		Where("end_time > ? OR end_time IS NULL", start)
	if excludeFullDays {
		query = query.Where("full_days = ?", false)
	}

	var segments []models.Segment
	if err := query.Order("start_time ASC").Find(&segments).Error; err != nil {
		r.logger.WithError(err).Error("Failed to get overlapping segments")
		return nil, err
	}

	if end == nil {
		var next models.Segment
		result := r.db.Preload("Tags").
			Where("start_time > ?", start).
			Order("start_time ASC").
			First(&next)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.WithError(result.Error).Error("Failed to get next segment")
			return nil, result.Error
		}
		if result.Error == nil {
			segments = append(segments, next)
		}
	}

	r.logger.WithFields(logrus.Fields{
		"start": start.Format("2006-01-02 15:04"),
		"count": len(segments),
	}).Debug("Retrieved overlapping segments")

	return segments, nil
}

// GetFullDayByDate returns the full-day segment covering the given
// date, if any.
func (r *GormSegmentRepository) GetFullDayByDate(day time.Time) (*models.Segment, error) {
	var segment models.Segment
	result := r.db.Preload("Tags").
		Where("full_days = ?", true).
		Where("start_time <= ?", timeutil.StartOfDay(day)).
		Where("end_time IS NULL OR end_time = ?", timeutil.EndOfDay(day)).
		First(&segment)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get full-day segment by date")
		return nil, result.Error
	}

	return &segment, nil
}

func (r *GormSegmentRepository) GetAll() ([]models.Segment, error) {
	var segments []models.Segment
	if err := r.db.Preload("Tags").Order("start_time ASC").Find(&segments).Error; err != nil {
		r.logger.WithError(err).Error("Failed to get all segments")
		return nil, err
	}
	return segments, nil
}

// Transaction runs fn against a repository bound to a single database
// transaction.
func (r *GormSegmentRepository) Transaction(fn func(SegmentRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormSegmentRepository{db: tx, logger: r.logger})
	})
}

// resolveTags maps tag names onto persistent tag rows, creating
// missing ones.
func (r *GormSegmentRepository) resolveTags(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		if err := r.db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			r.logger.WithError(err).WithField("tag", name).Error("Failed to resolve tag")
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// pruneOrphanTags removes tag rows no segment references anymore.
func (r *GormSegmentRepository) pruneOrphanTags() error {
	err := r.db.Exec(
		"DELETE FROM tags WHERE id NOT IN (SELECT tag_id FROM segment_tags)",
	).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to prune orphan tags")
	}
	return err
}
