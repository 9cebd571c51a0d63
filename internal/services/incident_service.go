package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carewatch/backend/internal/logger"
	"github.com/carewatch/backend/internal/models"
	"gorm.io/gorm"
)

type IncidentService struct {
	db *gorm.DB
}

func NewIncidentService(db *gorm.DB) *IncidentService {
	return &IncidentService{db: db}
}

type CreateIncidentInput struct {
	Location     string
	OccurredAt   *time.Time
	ResidentName string
	Detail       string
	IsFall       bool
	InjuryLevel  int
}

type UpdateIncidentInput struct {
	Location     *string
	OccurredAt   *time.Time
	ResidentName *string
	Detail       *string
	State        *models.IncidentState
	IsFall       *bool
	InjuryLevel  *int
}

// IncidentFilter narrows List results. A zero filter returns everything.
type IncidentFilter struct {
	Date     string // "2006-01-02"; matches occurrences within that day
	State    string // "" or "All" means no restriction
	Location string // case-insensitive substring
}

// Create stores a new incident in the PENDING state, backfilling the
// documented defaults for missing fields.
func (s *IncidentService) Create(input CreateIncidentInput) (*models.Incident, error) {
	if input.InjuryLevel != 0 &&
		(input.InjuryLevel < models.InjuryMild || input.InjuryLevel > models.InjurySevere) {
		return nil, &ValidationError{Message: fmt.Sprintf("injury level must be 1, 2 or 3, got %d", input.InjuryLevel)}
	}

	incident := models.Incident{
		Location:     strings.TrimSpace(input.Location),
		ResidentName: strings.TrimSpace(input.ResidentName),
		Detail:       input.Detail,
		State:        models.StatePending,
		IsFall:       input.IsFall,
		InjuryLevel:  input.InjuryLevel,
	}
	if incident.Location == "" {
		incident.Location = models.DefaultLocation
	}
	if incident.ResidentName == "" {
		incident.ResidentName = models.DefaultResidentName
	}
	if incident.InjuryLevel == 0 {
		incident.InjuryLevel = models.InjuryMild
	}
	if input.OccurredAt != nil {
		incident.OccurredAt = *input.OccurredAt
	} else {
		incident.OccurredAt = time.Now().UTC()
	}

	if err := s.db.Create(&incident).Error; err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}

	logger.WithIncident(incident.ID).Info("Incident created", map[string]interface{}{
		"location": incident.Location,
		"is_fall":  incident.IsFall,
	})
	return &incident, nil
}

// Get returns a single incident by id.
func (s *IncidentService) Get(id uint) (*models.Incident, error) {
	var incident models.Incident
	if err := s.db.First(&incident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "incident"}
		}
		return nil, fmt.Errorf("failed to load incident: %w", err)
	}
	return &incident, nil
}

// MarkAttended transitions an incident to ATTENDED and stamps the
// intervention. The transition is monotonic: re-applying it refreshes the
// attendedAt timestamp but never reverts the state, and receivedAt keeps its
// first value.
func (s *IncidentService) MarkAttended(id uint, detail, attendedBy, residentName string) (*models.Incident, error) {
	incident, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	detail = strings.TrimSpace(detail)
	residentName = strings.TrimSpace(residentName)
	if incident.Location == "" || incident.OccurredAt.IsZero() || detail == "" || residentName == "" {
		return nil, &ValidationError{Message: "incomplete fields: location, time, detail and resident name are required"}
	}

	now := time.Now().UTC()
	incident.Detail = detail
	incident.ResidentName = residentName
	incident.State = models.StateAttended
	if incident.Intervention.ReceivedAt == nil {
		incident.Intervention.ReceivedAt = &now
	}
	incident.Intervention.AttendedAt = &now
	incident.Intervention.AttendedBy = attendedBy

	if err := s.db.Save(incident).Error; err != nil {
		return nil, fmt.Errorf("failed to update incident: %w", err)
	}

	logger.WithIncident(incident.ID).Info("Incident attended", map[string]interface{}{
		"attended_by": attendedBy,
	})
	return incident, nil
}

// Update merges a partial patch into an incident. A patch may not revert an
// ATTENDED incident to PENDING; setting the state to ATTENDED through a patch
// stamps the intervention timestamps if they are missing so the document
// never claims attendance without a timestamp.
func (s *IncidentService) Update(id uint, patch UpdateIncidentInput) (*models.Incident, error) {
	incident, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.State != nil {
		switch *patch.State {
		case models.StatePending:
			if incident.State == models.StateAttended {
				return nil, &ValidationError{Message: "an attended incident cannot go back to pending"}
			}
		case models.StateAttended:
			if incident.Intervention.AttendedAt == nil {
				now := time.Now().UTC()
				if incident.Intervention.ReceivedAt == nil {
					incident.Intervention.ReceivedAt = &now
				}
				incident.Intervention.AttendedAt = &now
			}
		default:
			return nil, &ValidationError{Message: fmt.Sprintf("unknown state %q", *patch.State)}
		}
		incident.State = *patch.State
	}
	if patch.InjuryLevel != nil {
		if *patch.InjuryLevel < models.InjuryMild || *patch.InjuryLevel > models.InjurySevere {
			return nil, &ValidationError{Message: fmt.Sprintf("injury level must be 1, 2 or 3, got %d", *patch.InjuryLevel)}
		}
		incident.InjuryLevel = *patch.InjuryLevel
	}
	if patch.Location != nil {
		incident.Location = *patch.Location
	}
	if patch.OccurredAt != nil {
		incident.OccurredAt = *patch.OccurredAt
	}
	if patch.ResidentName != nil {
		incident.ResidentName = *patch.ResidentName
	}
	if patch.Detail != nil {
		incident.Detail = *patch.Detail
	}
	if patch.IsFall != nil {
		incident.IsFall = *patch.IsFall
	}

	if err := s.db.Save(incident).Error; err != nil {
		return nil, fmt.Errorf("failed to update incident: %w", err)
	}
	return incident, nil
}

// List returns incidents matching the filter. Filtered results are ordered by
// occurrence time (newest first), unfiltered results by creation time; ties
// fall back to insertion order.
func (s *IncidentService) List(filter IncidentFilter) ([]models.Incident, error) {
	query := s.db.Model(&models.Incident{})
	filtered := false

	if filter.Date != "" {
		day, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return nil, &ValidationError{Message: "date filter must use the YYYY-MM-DD format"}
		}
		// Half-open interval [day 00:00, next day 00:00).
		query = query.Where("occurred_at >= ? AND occurred_at < ?", day, day.AddDate(0, 0, 1))
		filtered = true
	}
	if filter.State != "" && !strings.EqualFold(filter.State, "All") {
		query = query.Where("state = ?", strings.ToUpper(filter.State))
		filtered = true
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
		filtered = true
	}

	order := "created_at DESC, id ASC"
	if filtered {
		order = "occurred_at DESC, id ASC"
	}

	var incidents []models.Incident
	if err := query.Order(order).Find(&incidents).Error; err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	return incidents, nil
}
