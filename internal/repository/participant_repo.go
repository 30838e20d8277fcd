package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetingroom/internal/domain"

	"gorm.io/gorm"
)

type ParticipantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

type participantModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;size:100;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (participantModel) TableName() string { return "participants" }

func toDomainParticipant(m participantModel) *domain.Participant {
	return &domain.Participant{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

// Create inserts p and fills in its id and creation time.
// A name that is already taken yields ErrDuplicateName.
func (r *ParticipantRepository) Create(ctx context.Context, p *domain.Participant) error {
	var existing int64
	if err := r.db.WithContext(ctx).
		Model(&participantModel{}).
		Where("name = ?", p.Name).
		Count(&existing).Error; err != nil {
		return fmt.Errorf("check participant name: %w", err)
	}
	if existing > 0 {
		return ErrDuplicateName
	}

	m := participantModel{Name: p.Name}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		// lost a race with a concurrent insert of the same name
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("create participant: %w", err)
	}
	*p = *toDomainParticipant(m)
	return nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	var m participantModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get participant %d: %w", id, err)
	}
	return toDomainParticipant(m), nil
}

// GetByIDs returns the participants that exist among ids, keyed by id.
func (r *ParticipantRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Participant, error) {
	out := make(map[int64]*domain.Participant, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []participantModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get participants: %w", err)
	}
	for _, m := range rows {
		out[m.ID] = toDomainParticipant(m)
	}
	return out, nil
}
