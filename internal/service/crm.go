package service

import (
	"context"

	"github.com/njunio10/Convel-Controle/internal/domain"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var crmTracer = otel.Tracer("service/crm")

// OptString distinguishes "field absent" from "field set to null" in
// partial updates of nullable columns.
type OptString struct {
	Set   bool
	Value *string
}

// OptFloat is OptString for numeric nullable columns.
type OptFloat struct {
	Set   bool
	Value *float64
}

// ClientStore is the persistence surface the client service needs.
type ClientStore interface {
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, id int64) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) error
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int64) error
}

// LeadStore is the persistence surface the lead service needs.
type LeadStore interface {
	List(ctx context.Context) ([]domain.Lead, error)
	Get(ctx context.Context, id int64) (*domain.Lead, error)
	Create(ctx context.Context, l *domain.Lead) error
	Update(ctx context.Context, l *domain.Lead) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// ClientInput is a validated create payload.
type ClientInput struct {
	Name            string
	ResponsibleName string
	Email           string
	Phone           string
	Origin          string
	ReferredBy      *string
	MonthlyFee      *float64
	Notes           *string
}

// ClientPatch carries only the fields present in an update payload.
type ClientPatch struct {
	Name            *string
	ResponsibleName *string
	Email           *string
	Phone           *string
	Origin          *string
	ReferredBy      OptString
	MonthlyFee      OptFloat
	Notes           OptString
}

// ClientService manages paying customers.
type ClientService struct {
	store  ClientStore
	logger *zap.Logger
}

func NewClientService(store ClientStore, logger *zap.Logger) *ClientService {
	return &ClientService{store: store, logger: logger}
}

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	ctx, span := crmTracer.Start(ctx, "ClientService.List")
	defer span.End()

	return s.store.List(ctx)
}

func (s *ClientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	ctx, span := crmTracer.Start(ctx, "ClientService.Get")
	defer span.End()

	return s.store.Get(ctx, id)
}

// Create stores a new client. Only origin "indicacao" keeps the
// referred_by value; every other origin forces it to null.
func (s *ClientService) Create(ctx context.Context, in ClientInput) (*domain.Client, error) {
	ctx, span := crmTracer.Start(ctx, "ClientService.Create")
	defer span.End()

	if in.Origin != domain.OriginReferral {
		in.ReferredBy = nil
	}

	c := &domain.Client{
		Name:            in.Name,
		ResponsibleName: in.ResponsibleName,
		Email:           in.Email,
		Phone:           in.Phone,
		Origin:          in.Origin,
		ReferredBy:      in.ReferredBy,
		MonthlyFee:      in.MonthlyFee,
		Notes:           in.Notes,
	}
	if err := s.store.Create(ctx, c); err != nil {
		s.logger.Error("failed to create client", zap.Error(err))
		return nil, err
	}
	return c, nil
}

// Update loads the client, applies the present fields and saves it
// back. Sending an origin other than "indicacao" clears referred_by
// even when the payload does not mention it.
func (s *ClientService) Update(ctx context.Context, id int64, patch ClientPatch) (*domain.Client, error) {
	ctx, span := crmTracer.Start(ctx, "ClientService.Update")
	defer span.End()

	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.ResponsibleName != nil {
		c.ResponsibleName = *patch.ResponsibleName
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Origin != nil {
		c.Origin = *patch.Origin
	}
	if patch.ReferredBy.Set {
		c.ReferredBy = patch.ReferredBy.Value
	}
	if patch.MonthlyFee.Set {
		c.MonthlyFee = patch.MonthlyFee.Value
	}
	if patch.Notes.Set {
		c.Notes = patch.Notes.Value
	}
	if patch.Origin != nil && *patch.Origin != domain.OriginReferral {
		c.ReferredBy = nil
	}

	if err := s.store.Update(ctx, c); err != nil {
		s.logger.Error("failed to update client", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	ctx, span := crmTracer.Start(ctx, "ClientService.Delete")
	defer span.End()

	return s.store.Delete(ctx, id)
}

// LeadInput is a validated create payload. An empty status defaults to
// "novo".
type LeadInput struct {
	Name            string
	ResponsibleName string
	Email           *string
	Phone           string
	Status          string
	Origin          string
	ReferredBy      *string
	Notes           *string
}

// LeadPatch carries only the fields present in an update payload.
type LeadPatch struct {
	Name            *string
	ResponsibleName *string
	Email           OptString
	Phone           *string
	Status          *string
	Origin          *string
	ReferredBy      OptString
	Notes           OptString
}

// LeadService manages the sales pipeline.
type LeadService struct {
	store  LeadStore
	logger *zap.Logger
}

func NewLeadService(store LeadStore, logger *zap.Logger) *LeadService {
	return &LeadService{store: store, logger: logger}
}

func (s *LeadService) List(ctx context.Context) ([]domain.Lead, error) {
	ctx, span := crmTracer.Start(ctx, "LeadService.List")
	defer span.End()

	return s.store.List(ctx)
}

func (s *LeadService) Get(ctx context.Context, id int64) (*domain.Lead, error) {
	ctx, span := crmTracer.Start(ctx, "LeadService.Get")
	defer span.End()

	return s.store.Get(ctx, id)
}

// Create stores a new lead with the same referral-origin rule as
// clients.
func (s *LeadService) Create(ctx context.Context, in LeadInput) (*domain.Lead, error) {
	ctx, span := crmTracer.Start(ctx, "LeadService.Create")
	defer span.End()

	if in.Status == "" {
		in.Status = "novo"
	}
	if in.Origin != domain.OriginReferral {
		in.ReferredBy = nil
	}

	l := &domain.Lead{
		Name:            in.Name,
		ResponsibleName: in.ResponsibleName,
		Email:           in.Email,
		Phone:           in.Phone,
		Status:          in.Status,
		Origin:          in.Origin,
		ReferredBy:      in.ReferredBy,
		Notes:           in.Notes,
	}
	if err := s.store.Create(ctx, l); err != nil {
		s.logger.Error("failed to create lead", zap.Error(err))
		return nil, err
	}
	return l, nil
}

// Update loads the lead, applies the present fields and saves it back.
func (s *LeadService) Update(ctx context.Context, id int64, patch LeadPatch) (*domain.Lead, error) {
	ctx, span := crmTracer.Start(ctx, "LeadService.Update")
	defer span.End()

	l, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.ResponsibleName != nil {
		l.ResponsibleName = *patch.ResponsibleName
	}
	if patch.Email.Set {
		l.Email = patch.Email.Value
	}
	if patch.Phone != nil {
		l.Phone = *patch.Phone
	}
	if patch.Status != nil {
		l.Status = *patch.Status
	}
	if patch.Origin != nil {
		l.Origin = *patch.Origin
	}
	if patch.ReferredBy.Set {
		l.ReferredBy = patch.ReferredBy.Value
	}
	if patch.Notes.Set {
		l.Notes = patch.Notes.Value
	}
	if patch.Origin != nil && *patch.Origin != domain.OriginReferral {
		l.ReferredBy = nil
	}

	if err := s.store.Update(ctx, l); err != nil {
		s.logger.Error("failed to update lead", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return l, nil
}

// UpdateStatus moves a lead through the pipeline and returns the
// updated record.
func (s *LeadService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Lead, error) {
	ctx, span := crmTracer.Start(ctx, "LeadService.UpdateStatus")
	defer span.End()

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

func (s *LeadService) Delete(ctx context.Context, id int64) error {
	ctx, span := crmTracer.Start(ctx, "LeadService.Delete")
	defer span.End()

	return s.store.Delete(ctx, id)
}
