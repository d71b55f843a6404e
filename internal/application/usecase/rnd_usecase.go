package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RndUseCase programas de I+D y su seguimiento.
type RndUseCase struct {
	repo repository.RndRepository
	orgs repository.RndOrgRepository
	tx   ports.TxRunner
}

// NewRndUseCase construye el caso de uso.
func NewRndUseCase(repo repository.RndRepository, orgs repository.RndOrgRepository, tx ports.TxRunner) *RndUseCase {
	return &RndUseCase{repo: repo, orgs: orgs, tx: tx}
}

// List programas filtrados; sin tipo se listan los de tipo "rnd".
func (uc *RndUseCase) List(ctx context.Context, f repository.RndFilter, page dto.PageQuery) (*dto.ListResponse[dto.RndResponse], error) {
	if f.Type == "" {
		f.Type = "rnd"
	}
	page.Normalize(dto.DefaultLimit)
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.RndResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toRndResponse(r))
	}
	resp := dto.NewListResponse(items, total, page)
	return &resp, nil
}

// GetByID detalle con organismo y sus contactos.
func (uc *RndUseCase) GetByID(ctx context.Context, id string) (*dto.RndResponse, error) {
	rnd, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toRndResponse(rnd)
	if rnd.OrgID != nil {
		contacts, err := uc.orgs.ListContacts(ctx, *rnd.OrgID)
		if err != nil {
			return nil, err
		}
		resp.Contacts = toRndContactResponses(contacts)
	}
	return &resp, nil
}

// Create crea el programa. El organismo se toma de org_id o, en el formato antiguo,
// buscando support_org por nombre. total_cost por defecto es gov + pri.
func (uc *RndUseCase) Create(ctx context.Context, in dto.CreateRndRequest) (*dto.RndResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	start, err := parseOptionalDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	t := now()
	rnd := &entity.Rnd{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Type:            in.Type,
		ProjectNumber:   in.ProjectNumber,
		ProjectType:     in.ProjectType,
		Status:          in.Status,
		ProgramName:     in.ProgramName,
		StartDate:       start,
		EndDate:         end,
		GovContribution: in.GovContribution,
		PriContribution: in.PriContribution,
		TotalCost:       totalCost(in.TotalCost, in.GovContribution, in.PriContribution),
		Notes:           in.Notes,
		CreatedAt:       t,
		UpdatedAt:       t,
	}
	if rnd.Type == "" {
		rnd.Type = "rnd"
	}
	if rnd.Status == "" {
		rnd.Status = entity.RndStatusPlanning
	}
	switch {
	case in.OrgID != nil && *in.OrgID != "":
		if rnd.Org, err = uc.org(ctx, *in.OrgID); err != nil {
			return nil, err
		}
	case in.SupportOrg != "":
		if rnd.Org, err = uc.orgs.GetByName(ctx, in.SupportOrg); err != nil {
			return nil, err
		}
	}
	if rnd.Org != nil {
		rnd.OrgID = &rnd.Org.ID
	}
	if err := uc.repo.Create(ctx, rnd); err != nil {
		return nil, err
	}
	resp := toRndResponse(rnd)
	return &resp, nil
}

// Update actualización parcial. Si cambian los aportes y no se envía total_cost se recalcula.
func (uc *RndUseCase) Update(ctx context.Context, id string, in dto.UpdateRndRequest) (*dto.RndResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	rnd, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	setString(&rnd.Name, in.Name)
	setString(&rnd.Type, in.Type)
	setString(&rnd.ProjectNumber, in.ProjectNumber)
	setString(&rnd.ProjectType, in.ProjectType)
	setString(&rnd.Status, in.Status)
	setString(&rnd.ProgramName, in.ProgramName)
	setString(&rnd.Notes, in.Notes)
	if in.StartDate != nil {
		if rnd.StartDate, err = parseOptionalDate(in.StartDate); err != nil {
			return nil, err
		}
	}
	if in.EndDate != nil {
		if rnd.EndDate, err = parseOptionalDate(in.EndDate); err != nil {
			return nil, err
		}
	}
	if in.OrgID != nil {
		rnd.OrgID, rnd.Org = nil, nil
		if *in.OrgID != "" {
			if rnd.Org, err = uc.org(ctx, *in.OrgID); err != nil {
				return nil, err
			}
			rnd.OrgID = &rnd.Org.ID
		}
	}
	if in.GovContribution != nil {
		rnd.GovContribution = *in.GovContribution
	}
	if in.PriContribution != nil {
		rnd.PriContribution = *in.PriContribution
	}
	switch {
	case in.TotalCost != nil:
		rnd.TotalCost = *in.TotalCost
	case in.GovContribution != nil || in.PriContribution != nil:
		rnd.TotalCost = rnd.GovContribution.Add(rnd.PriContribution)
	}
	rnd.UpdatedAt = now()
	if err := uc.repo.Update(ctx, rnd); err != nil {
		return nil, err
	}
	resp := toRndResponse(rnd)
	return &resp, nil
}

// Delete borra el seguimiento y luego el programa, en una transacción.
func (uc *RndUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Rnds.DeleteConsultationsByRnd(ctx, id); err != nil {
			return err
		}
		return r.Rnds.Delete(ctx, id)
	})
}

// ListConsultations seguimiento paginado del programa.
func (uc *RndUseCase) ListConsultations(ctx context.Context, rndID string, page dto.PageQuery) (*dto.ListResponse[dto.RndConsultationResponse], error) {
	if _, err := uc.get(ctx, rndID); err != nil {
		return nil, err
	}
	page.Normalize(dto.DefaultLimit)
	list, total, err := uc.repo.ListConsultations(ctx, rndID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.RndConsultationResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toRndConsultationResponse(c))
	}
	resp := dto.NewListResponse(items, total, page)
	return &resp, nil
}

// CreateConsultation registra un seguimiento del programa.
func (uc *RndUseCase) CreateConsultation(ctx context.Context, rndID string, in dto.CreateRndConsultationRequest) (*dto.RndConsultationResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.get(ctx, rndID); err != nil {
		return nil, err
	}
	t := now()
	date, err := parseDateOr(in.Date, t)
	if err != nil {
		return nil, err
	}
	followUp, err := parseOptionalDate(in.FollowUpDate)
	if err != nil {
		return nil, err
	}
	c := &entity.RndConsultation{
		ID:           uuid.New().String(),
		RndID:        rndID,
		UserID:       in.UserID,
		Date:         date,
		Content:      in.Content,
		FollowUpDate: followUp,
		CreatedAt:    t,
	}
	if err := uc.repo.CreateConsultation(ctx, c); err != nil {
		return nil, err
	}
	resp := toRndConsultationResponse(c)
	return &resp, nil
}

// UpdateConsultation actualización parcial de un seguimiento.
func (uc *RndUseCase) UpdateConsultation(ctx context.Context, id string, in dto.UpdateRndConsultationRequest) (*dto.RndConsultationResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetConsultation(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	setString(&c.Content, in.Content)
	if in.Date != nil {
		if c.Date, err = parseDateOr(*in.Date, c.Date); err != nil {
			return nil, err
		}
	}
	if in.FollowUpDate != nil {
		if c.FollowUpDate, err = parseOptionalDate(in.FollowUpDate); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.UpdateConsultation(ctx, c); err != nil {
		return nil, err
	}
	resp := toRndConsultationResponse(c)
	return &resp, nil
}

// DeleteConsultation borra un seguimiento.
func (uc *RndUseCase) DeleteConsultation(ctx context.Context, id string) error {
	c, err := uc.repo.GetConsultation(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.DeleteConsultation(ctx, id)
}

func (uc *RndUseCase) get(ctx context.Context, id string) (*entity.Rnd, error) {
	rnd, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rnd == nil {
		return nil, domain.ErrNotFound
	}
	return rnd, nil
}

func (uc *RndUseCase) org(ctx context.Context, id string) (*entity.RndOrg, error) {
	org, err := uc.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, fmt.Errorf("rnd org %s: %w", id, domain.ErrNotFound)
	}
	return org, nil
}

func totalCost(total *decimal.Decimal, gov, pri decimal.Decimal) decimal.Decimal {
	if total != nil {
		return *total
	}
	return gov.Add(pri)
}

func toRndResponse(r *entity.Rnd) dto.RndResponse {
	resp := dto.RndResponse{
		ID:              r.ID,
		Name:            r.Name,
		Type:            r.Type,
		ProjectNumber:   r.ProjectNumber,
		ProjectType:     r.ProjectType,
		Status:          r.Status,
		ProgramName:     r.ProgramName,
		OrgID:           r.OrgID,
		StartDate:       dto.FormatDatePtr(r.StartDate),
		EndDate:         dto.FormatDatePtr(r.EndDate),
		GovContribution: r.GovContribution,
		PriContribution: r.PriContribution,
		TotalCost:       r.TotalCost,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Org != nil {
		resp.Org = &dto.RndOrgSummary{ID: r.Org.ID, Name: r.Org.Name, Phone: r.Org.Phone, Email: r.Org.Email}
	}
	return resp
}

func toRndConsultationResponse(c *entity.RndConsultation) dto.RndConsultationResponse {
	return dto.RndConsultationResponse{
		ID:           c.ID,
		RndID:        c.RndID,
		UserID:       c.UserID,
		UserName:     c.UserName,
		Date:         dto.FormatDate(c.Date),
		Content:      c.Content,
		FollowUpDate: dto.FormatDatePtr(c.FollowUpDate),
		CreatedAt:    c.CreatedAt,
	}
}

// RndOrgUseCase organismos de I+D y sus contactos.
type RndOrgUseCase struct {
	repo repository.RndOrgRepository
	tx   ports.TxRunner
}

// NewRndOrgUseCase construye el caso de uso.
func NewRndOrgUseCase(repo repository.RndOrgRepository, tx ports.TxRunner) *RndOrgUseCase {
	return &RndOrgUseCase{repo: repo, tx: tx}
}

// ListAll todos los organismos ordenados por nombre (selector).
func (uc *RndOrgUseCase) ListAll(ctx context.Context) ([]dto.RndOrgResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RndOrgResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toRndOrgResponse(o))
	}
	return out, nil
}

// ListPage organismos paginados con sus contactos.
func (uc *RndOrgUseCase) ListPage(ctx context.Context, page dto.PageQuery) (*dto.ListResponse[dto.RndOrgResponse], error) {
	page.Normalize(dto.DefaultLimit)
	list, total, err := uc.repo.ListPage(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.RndOrgResponse, 0, len(list))
	for _, o := range list {
		items = append(items, toRndOrgResponse(o))
	}
	resp := dto.NewListResponse(items, total, page)
	return &resp, nil
}

// GetByID organismo con sus contactos.
func (uc *RndOrgUseCase) GetByID(ctx context.Context, id string) (*dto.RndOrgResponse, error) {
	org, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if org.Contacts, err = uc.repo.ListContacts(ctx, id); err != nil {
		return nil, err
	}
	resp := toRndOrgResponse(org)
	return &resp, nil
}

// Create crea el organismo con sus contactos en una transacción.
func (uc *RndOrgUseCase) Create(ctx context.Context, in dto.RndOrgRequest) (*dto.RndOrgResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t := now()
	org := &entity.RndOrg{ID: uuid.New().String(), CreatedAt: t}
	applyRndOrg(org, in, t)
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.RndOrgs.Create(ctx, org); err != nil {
			return err
		}
		for _, c := range in.Contacts {
			contact := newRndContact(org.ID, c, t)
			if err := r.RndOrgs.CreateContact(ctx, contact); err != nil {
				return err
			}
			org.Contacts = append(org.Contacts, contact)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rndOrg.Create: %w", err)
	}
	resp := toRndOrgResponse(org)
	return &resp, nil
}

// Replace reemplaza los datos del organismo y sincroniza sus contactos en una transacción:
// altas sin id, cambios por id y borrado de los que ya no vienen.
func (uc *RndOrgUseCase) Replace(ctx context.Context, id string, in dto.RndOrgRequest) (*dto.RndOrgResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	org, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	t := now()
	applyRndOrg(org, in, t)
	org.Contacts = nil

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.RndOrgs.Update(ctx, org); err != nil {
			return err
		}
		existing, err := r.RndOrgs.ListContacts(ctx, id)
		if err != nil {
			return err
		}
		current := make(map[string]*entity.RndContact, len(existing))
		for _, c := range existing {
			current[c.ID] = c
		}
		for _, c := range in.Contacts {
			prev, ok := current[c.ID]
			if c.ID == "" || !ok {
				contact := newRndContact(id, c, t)
				if err := r.RndOrgs.CreateContact(ctx, contact); err != nil {
					return err
				}
				org.Contacts = append(org.Contacts, contact)
				continue
			}
			delete(current, c.ID)
			contact := newRndContact(id, c, t)
			contact.ID = prev.ID
			contact.CreatedAt = prev.CreatedAt
			if err := r.RndOrgs.UpdateContact(ctx, contact); err != nil {
				return err
			}
			org.Contacts = append(org.Contacts, contact)
		}
		for cid := range current {
			if err := r.RndOrgs.DeleteContact(ctx, cid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rndOrg.Replace: %w", err)
	}
	resp := toRndOrgResponse(org)
	return &resp, nil
}

// Delete borra los contactos y luego el organismo. Los programas quedan sin organismo.
func (uc *RndOrgUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.RndOrgs.DeleteContactsByOrg(ctx, id); err != nil {
			return err
		}
		return r.RndOrgs.Delete(ctx, id)
	})
}

func (uc *RndOrgUseCase) get(ctx context.Context, id string) (*entity.RndOrg, error) {
	org, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return org, nil
}

func applyRndOrg(o *entity.RndOrg, in dto.RndOrgRequest, t time.Time) {
	o.Name = in.Name
	o.Address = in.Address
	o.Phone = in.Phone
	o.Fax = in.Fax
	o.Email = in.Email
	o.Notes = in.Notes
	o.UpdatedAt = t
}

func newRndContact(orgID string, in dto.RndContactInput, t time.Time) *entity.RndContact {
	return &entity.RndContact{
		ID:         uuid.New().String(),
		OrgID:      orgID,
		Name:       in.Name,
		Department: in.Department,
		Level:      in.Level,
		Phone:      in.Phone,
		Email:      in.Email,
		Resign:     in.Resign,
		CreatedAt:  t,
		UpdatedAt:  t,
	}
}

func toRndOrgResponse(o *entity.RndOrg) dto.RndOrgResponse {
	return dto.RndOrgResponse{
		ID:        o.ID,
		Name:      o.Name,
		Address:   o.Address,
		Phone:     o.Phone,
		Fax:       o.Fax,
		Email:     o.Email,
		Notes:     o.Notes,
		Contacts:  toRndContactResponses(o.Contacts),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toRndContactResponses(list []*entity.RndContact) []dto.RndContactResponse {
	out := make([]dto.RndContactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.RndContactResponse{
			ID:         c.ID,
			OrgID:      c.OrgID,
			Name:       c.Name,
			Department: c.Department,
			Level:      c.Level,
			Phone:      c.Phone,
			Email:      c.Email,
			Resign:     c.Resign,
		})
	}
	return out
}
