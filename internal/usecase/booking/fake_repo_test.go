package booking

import (
	"context"
	"sync"
	"time"

	domain "github.com/agendly-app/agendly-api/internal/domain/booking"
	"github.com/agendly-app/agendly-api/internal/domain/schedule"
	"github.com/agendly-app/agendly-api/internal/httperr"
	"github.com/agendly-app/agendly-api/internal/models"
)

// fakeRepo keeps everything in memory behind one mutex so concurrent create
// calls contend the way transactions do against the database.
type fakeRepo struct {
	mu sync.Mutex

	business *models.Business
	hours    []models.BusinessHours
	pros     map[uint]*models.User
	weekly   map[uint]map[int]*models.WeeklySchedule
	services map[uint]*models.Service
	blocks   []models.TimeBlock
	clients  []*models.Client

	appointments []*models.Appointment
	nextID       uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		pros:     make(map[uint]*models.User),
		weekly:   make(map[uint]map[int]*models.WeeklySchedule),
		services: make(map[uint]*models.Service),
	}
}

func (r *fakeRepo) GetBusinessByID(ctx context.Context, id uint) (*models.Business, error) {
	if r.business == nil || r.business.ID != id {
		return nil, httperr.ErrBusiness("business_not_found")
	}
	return r.business, nil
}

func (r *fakeRepo) GetBusinessHours(ctx context.Context, businessID uint) ([]models.BusinessHours, error) {
	return r.hours, nil
}

func (r *fakeRepo) GetProfessional(ctx context.Context, businessID, professionalID uint) (*models.User, error) {
	pro, ok := r.pros[professionalID]
	if !ok {
		return nil, httperr.ErrBusiness("professional_not_found")
	}
	return pro, nil
}

func (r *fakeRepo) ListActiveProfessionals(ctx context.Context, businessID uint) ([]models.User, error) {
	var out []models.User
	for _, pro := range r.pros {
		if pro.Active {
			out = append(out, *pro)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetWeeklySchedule(ctx context.Context, professionalID uint, weekday int) (*models.WeeklySchedule, error) {
	days, ok := r.weekly[professionalID]
	if !ok {
		return nil, nil
	}
	return days[weekday], nil
}

func (r *fakeRepo) GetService(ctx context.Context, businessID, serviceID uint) (*models.Service, error) {
	svc, ok := r.services[serviceID]
	if !ok {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return svc, nil
}

func (r *fakeRepo) GetOrCreateClient(ctx context.Context, businessID uint, name, phone, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cl := range r.clients {
		if cl.Phone == phone {
			return cl, nil
		}
	}
	cl := &models.Client{
		ID:         uint(len(r.clients) + 1),
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}
	r.clients = append(r.clients, cl)
	return cl, nil
}

func (r *fakeRepo) ListTimeBlocks(ctx context.Context, businessID, professionalID uint, start, end time.Time) ([]models.TimeBlock, error) {
	var out []models.TimeBlock
	for _, b := range r.blocks {
		if b.ProfessionalID != nil && *b.ProfessionalID != professionalID {
			continue
		}
		if schedule.Overlaps(b.StartTime, b.EndTime, start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointmentIfFree(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appointments {
		if existing.ProfessionalID != ap.ProfessionalID {
			continue
		}
		if existing.Status == "cancelled" {
			continue
		}
		if schedule.Overlaps(ap.StartTime, ap.EndTime, existing.StartTime, existing.EndTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	r.nextID++
	ap.ID = r.nextID
	stored := *ap
	r.appointments = append(r.appointments, &stored)
	return nil
}

func (r *fakeRepo) ListAppointmentsForRange(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProfessionalID != professionalID || ap.Status == "cancelled" {
			continue
		}
		if schedule.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetAppointmentForProfessional(ctx context.Context, appointmentID, professionalID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.ID == appointmentID && ap.ProfessionalID == professionalID {
			copied := *ap
			return &copied, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.appointments {
		if existing.ID == ap.ID {
			stored := *ap
			r.appointments[i] = &stored
			return nil
		}
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func (r *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProfessionalID != professionalID {
			continue
		}
		if schedule.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}
