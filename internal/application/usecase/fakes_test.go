package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// journal registra las escrituras en orden para verificar cascadas.
type journal struct{ calls []string }

func (j *journal) add(format string, args ...interface{}) {
	j.calls = append(j.calls, fmt.Sprintf(format, args...))
}

// fakeTx ejecuta fn sobre repos; si fn falla llama a los restore registrados (rollback).
type fakeTx struct {
	repos     ports.Repos
	snapshots []func() func()
	runs      int
}

func (f *fakeTx) Run(_ context.Context, fn func(r ports.Repos) error) error {
	f.runs++
	var restores []func()
	for _, s := range f.snapshots {
		restores = append(restores, s())
	}
	if err := fn(f.repos); err != nil {
		for _, r := range restores {
			r()
		}
		return err
	}
	return nil
}

// store agrupa todos los fakes y el TxRunner que los expone.
type store struct {
	log           *journal
	companies     *fakeCompanies
	contacts      *fakeContacts
	links         *fakeLinks
	consultations *fakeConsultations
	documents     *fakeDocuments
	todos         *fakeTodos
	notifications *fakeNotifications
	rndOrgs       *fakeRndOrgs
	tx            *fakeTx
}

func newStore() *store {
	j := &journal{}
	s := &store{
		log:           j,
		companies:     &fakeCompanies{log: j, rows: map[string]*entity.Company{}},
		contacts:      &fakeContacts{log: j, rows: map[string]*entity.Contact{}},
		links:         &fakeLinks{log: j},
		consultations: &fakeConsultations{log: j, rows: map[string]*entity.Consultation{}},
		documents:     &fakeDocuments{log: j, rows: map[string]*entity.Document{}},
		todos:         &fakeTodos{rows: map[string]*entity.Todo{}},
		notifications: &fakeNotifications{},
		rndOrgs:       &fakeRndOrgs{log: j, orgs: map[string]*entity.RndOrg{}, contacts: map[string]*entity.RndContact{}},
	}
	s.tx = &fakeTx{
		repos: ports.Repos{
			Companies:     s.companies,
			Contacts:      s.contacts,
			Links:         s.links,
			Consultations: s.consultations,
			Documents:     s.documents,
			Todos:         s.todos,
			Notifications: s.notifications,
			RndOrgs:       s.rndOrgs,
		},
		snapshots: []func() func(){s.todos.snapshot},
	}
	return s
}

// fixClock fija now() del paquete durante el test.
func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

// --- empresas ---

type fakeCompanies struct {
	log  *journal
	rows map[string]*entity.Company
}

func (f *fakeCompanies) Create(_ context.Context, c *entity.Company) error {
	f.log.add("companies.Create %s", c.ID)
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCompanies) List(_ context.Context, fl repository.CompanyFilter, limit, offset int) ([]*entity.Company, int, error) {
	var out []*entity.Company
	for _, c := range f.rows {
		if fl.Name != "" && !strings.Contains(c.Name, fl.Name) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), len(out), nil
}

func (f *fakeCompanies) Update(_ context.Context, c *entity.Company) error {
	f.log.add("companies.Update %s", c.ID)
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeCompanies) Delete(_ context.Context, id string) error {
	f.log.add("companies.Delete %s", id)
	delete(f.rows, id)
	return nil
}

// --- contactos ---

type fakeContacts struct {
	log  *journal
	rows map[string]*entity.Contact
}

func (f *fakeContacts) Create(_ context.Context, c *entity.Contact) error {
	f.log.add("contacts.Create %s", c.ID)
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeContacts) GetByID(_ context.Context, id string) (*entity.Contact, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeContacts) List(_ context.Context, _ repository.ContactFilter, limit, offset int) ([]*entity.Contact, int, error) {
	var out []*entity.Contact
	for _, c := range f.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContactName < out[j].ContactName })
	return page(out, limit, offset), len(out), nil
}

func (f *fakeContacts) ListByCompany(_ context.Context, companyID string) ([]*entity.Contact, error) {
	var out []*entity.Contact
	for _, c := range f.rows {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Resign != out[j].Resign {
			return !out[i].Resign
		}
		return out[i].ContactName < out[j].ContactName
	})
	return out, nil
}

func (f *fakeContacts) Update(_ context.Context, c *entity.Contact) error {
	f.log.add("contacts.Update %s", c.ID)
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeContacts) Delete(_ context.Context, id string) error {
	f.log.add("contacts.Delete %s", id)
	delete(f.rows, id)
	return nil
}

func (f *fakeContacts) DeleteByCompany(_ context.Context, companyID string) error {
	f.log.add("contacts.DeleteByCompany %s", companyID)
	for id, c := range f.rows {
		if c.CompanyID == companyID {
			delete(f.rows, id)
		}
	}
	return nil
}

// --- enlaces contacto <-> consulta/documento ---

type fakeLinks struct {
	log *journal
}

func (f *fakeLinks) LinkConsultation(_ context.Context, contactID, consultationID string) error {
	f.log.add("links.LinkConsultation %s %s", contactID, consultationID)
	return nil
}

func (f *fakeLinks) ReplaceConsultationContact(_ context.Context, consultationID, contactID string) error {
	f.log.add("links.ReplaceConsultationContact %s %s", consultationID, contactID)
	return nil
}

func (f *fakeLinks) LinkDocument(_ context.Context, contactID, documentID, userID string) error {
	f.log.add("links.LinkDocument %s %s", contactID, documentID)
	return nil
}

func (f *fakeLinks) ReplaceDocumentContact(_ context.Context, documentID, contactID, userID string) error {
	f.log.add("links.ReplaceDocumentContact %s %s", documentID, contactID)
	return nil
}

func (f *fakeLinks) DeleteByCompany(_ context.Context, companyID string) error {
	f.log.add("links.DeleteByCompany %s", companyID)
	return nil
}

func (f *fakeLinks) DeleteByContact(_ context.Context, contactID string) error {
	f.log.add("links.DeleteByContact %s", contactID)
	return nil
}

func (f *fakeLinks) DeleteByConsultation(_ context.Context, consultationID string) error {
	f.log.add("links.DeleteByConsultation %s", consultationID)
	return nil
}

func (f *fakeLinks) DeleteByDocument(_ context.Context, documentID string) error {
	f.log.add("links.DeleteByDocument %s", documentID)
	return nil
}

// --- consultas ---

type fakeConsultations struct {
	log  *journal
	rows map[string]*entity.Consultation
}

// filtered consultas vivas de la empresa, más recientes primero.
func (f *fakeConsultations) filtered(fl repository.ConsultationFilter) []*entity.Consultation {
	var out []*entity.Consultation
	for _, c := range f.rows {
		if c.DeletedAt != nil {
			continue
		}
		if fl.CompanyID != "" && c.CompanyID != fl.CompanyID {
			continue
		}
		if fl.UserID != "" && c.UserID != fl.UserID {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if fl.Ascending {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (f *fakeConsultations) Create(_ context.Context, c *entity.Consultation) error {
	f.log.add("consultations.Create %s", c.ID)
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeConsultations) GetByID(_ context.Context, id string) (*entity.Consultation, error) {
	c, ok := f.rows[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeConsultations) List(_ context.Context, fl repository.ConsultationFilter, limit, offset int) ([]*entity.Consultation, int, error) {
	all := f.filtered(fl)
	return page(all, limit, offset), len(all), nil
}

func (f *fakeConsultations) Position(_ context.Context, fl repository.ConsultationFilter, id string) (int, error) {
	for i, c := range f.filtered(fl) {
		if c.ID == id {
			return i, nil
		}
	}
	return -1, nil
}

func (f *fakeConsultations) FollowUps(_ context.Context, userID string, from, to time.Time) ([]*entity.Consultation, error) {
	var out []*entity.Consultation
	for _, c := range f.filtered(repository.ConsultationFilter{UserID: userID, Ascending: true}) {
		if c.FollowUpDate != nil && !c.FollowUpDate.Before(from) && c.FollowUpDate.Before(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConsultations) Update(_ context.Context, c *entity.Consultation) error {
	f.log.add("consultations.Update %s", c.ID)
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeConsultations) SoftDelete(_ context.Context, id string, at time.Time) error {
	f.log.add("consultations.SoftDelete %s", id)
	if c, ok := f.rows[id]; ok {
		c.DeletedAt = &at
	}
	return nil
}

func (f *fakeConsultations) DeleteByCompany(_ context.Context, companyID string) error {
	f.log.add("consultations.DeleteByCompany %s", companyID)
	for id, c := range f.rows {
		if c.CompanyID == companyID {
			delete(f.rows, id)
		}
	}
	return nil
}

// --- documentos ---

type fakeDocuments struct {
	log  *journal
	rows map[string]*entity.Document
	// collide simula altas concurrentes: cada Create devuelve ErrDuplicate mientras sea > 0.
	collide int
}

func (f *fakeDocuments) Create(_ context.Context, d *entity.Document) error {
	if f.collide > 0 {
		f.collide--
		return domain.ErrDuplicate
	}
	for _, existing := range f.rows {
		if existing.DocumentNumber == d.DocumentNumber {
			return domain.ErrDuplicate
		}
	}
	f.log.add("documents.Create %s", d.DocumentNumber)
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}

func (f *fakeDocuments) GetByID(_ context.Context, id string) (*entity.Document, error) {
	d, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocuments) List(_ context.Context, fl repository.DocumentFilter, limit, offset int) ([]*entity.Document, int, error) {
	var out []*entity.Document
	for _, d := range f.rows {
		if fl.Type != "" && d.Type != fl.Type {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocumentNumber > out[j].DocumentNumber })
	return page(out, limit, offset), len(out), nil
}

func (f *fakeDocuments) ListByConsultation(_ context.Context, consultationID string) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range f.rows {
		if d.ConsultationID == consultationID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocuments) Update(_ context.Context, d *entity.Document) error {
	f.log.add("documents.Update %s", d.ID)
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}

func (f *fakeDocuments) UpdateStatus(_ context.Context, id, status string, reason *entity.StatusReason, at time.Time) error {
	f.log.add("documents.UpdateStatus %s %s", id, status)
	if d, ok := f.rows[id]; ok {
		d.Status = status
		d.StatusReason = reason
		d.UpdatedAt = at
	}
	return nil
}

func (f *fakeDocuments) Delete(_ context.Context, id string) error {
	f.log.add("documents.Delete %s", id)
	delete(f.rows, id)
	return nil
}

func (f *fakeDocuments) DeleteByConsultation(_ context.Context, consultationID string) error {
	f.log.add("documents.DeleteByConsultation %s", consultationID)
	for id, d := range f.rows {
		if d.ConsultationID == consultationID {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeDocuments) DeleteByCompany(_ context.Context, companyID string) error {
	f.log.add("documents.DeleteByCompany %s", companyID)
	for id, d := range f.rows {
		if d.CompanyID == companyID {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeDocuments) MaxNumberSequence(_ context.Context, prefix string) (int, error) {
	top := 0
	for _, d := range f.rows {
		if !strings.HasPrefix(d.DocumentNumber, prefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(d.DocumentNumber, prefix)); err == nil && n > top {
			top = n
		}
	}
	return top, nil
}

func (f *fakeDocuments) Summary(_ context.Context, userID string) ([]repository.TypeStatusCount, error) {
	counts := map[[2]string]int{}
	for _, d := range f.rows {
		if userID != "" && d.UserID != userID {
			continue
		}
		counts[[2]string{d.Type, d.Status}]++
	}
	var out []repository.TypeStatusCount
	for k, n := range counts {
		out = append(out, repository.TypeStatusCount{Type: k[0], Status: k[1], Count: n})
	}
	return out, nil
}

// --- tareas ---

type fakeTodos struct {
	rows map[string]*entity.Todo
}

// snapshot guarda sort_order y devuelve la función que lo restaura.
func (f *fakeTodos) snapshot() func() {
	saved := map[string]int{}
	for id, t := range f.rows {
		saved[id] = t.SortOrder
	}
	return func() {
		for id, order := range saved {
			if t, ok := f.rows[id]; ok {
				t.SortOrder = order
			}
		}
	}
}

func (f *fakeTodos) Create(_ context.Context, t *entity.Todo) error {
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeTodos) GetByID(_ context.Context, id string) (*entity.Todo, error) {
	t, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTodos) ListByUser(_ context.Context, userID string) ([]*entity.Todo, error) {
	var out []*entity.Todo
	for _, t := range f.rows {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeTodos) Update(_ context.Context, t *entity.Todo) error {
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeTodos) Delete(_ context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeTodos) MaxSortOrder(_ context.Context, userID string) (int, error) {
	top := -1
	for _, t := range f.rows {
		if t.UserID == userID && t.SortOrder > top {
			top = t.SortOrder
		}
	}
	return top, nil
}

func (f *fakeTodos) SetSortOrder(_ context.Context, userID, id string, order int) (bool, error) {
	t, ok := f.rows[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	t.SortOrder = order
	return true, nil
}

// --- notificaciones ---

type fakeNotifications struct {
	rows []*entity.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n *entity.Notification) error {
	cp := *n
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeNotifications) ListByUser(_ context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int, error) {
	var out []*entity.Notification
	for _, n := range f.rows {
		if n.UserID == userID && (!unreadOnly || !n.Read) {
			out = append(out, n)
		}
	}
	return page(out, limit, offset), len(out), nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, userID, id string) (bool, error) {
	for _, n := range f.rows {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, x := range f.rows {
		if x.UserID == userID && !x.Read {
			x.Read = true
			n++
		}
	}
	return n, nil
}

// --- organismos de I+D ---

type fakeRndOrgs struct {
	log      *journal
	orgs     map[string]*entity.RndOrg
	contacts map[string]*entity.RndContact
}

func (f *fakeRndOrgs) Create(_ context.Context, o *entity.RndOrg) error {
	f.log.add("rndOrgs.Create %s", o.ID)
	cp := *o
	f.orgs[o.ID] = &cp
	return nil
}

func (f *fakeRndOrgs) GetByID(_ context.Context, id string) (*entity.RndOrg, error) {
	o, ok := f.orgs[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeRndOrgs) GetByName(_ context.Context, name string) (*entity.RndOrg, error) {
	for _, o := range f.orgs {
		if o.Name == name {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRndOrgs) ListAll(_ context.Context) ([]*entity.RndOrg, error) {
	var out []*entity.RndOrg
	for _, o := range f.orgs {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRndOrgs) ListPage(ctx context.Context, limit, offset int) ([]*entity.RndOrg, int, error) {
	all, _ := f.ListAll(ctx)
	return page(all, limit, offset), len(all), nil
}

func (f *fakeRndOrgs) Update(_ context.Context, o *entity.RndOrg) error {
	f.log.add("rndOrgs.Update %s", o.ID)
	cp := *o
	f.orgs[o.ID] = &cp
	return nil
}

func (f *fakeRndOrgs) Delete(_ context.Context, id string) error {
	f.log.add("rndOrgs.Delete %s", id)
	delete(f.orgs, id)
	return nil
}

func (f *fakeRndOrgs) ListContacts(_ context.Context, orgID string) ([]*entity.RndContact, error) {
	var out []*entity.RndContact
	for _, c := range f.contacts {
		if c.OrgID == orgID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRndOrgs) CreateContact(_ context.Context, c *entity.RndContact) error {
	f.log.add("rndOrgs.CreateContact %s", c.Name)
	cp := *c
	f.contacts[c.ID] = &cp
	return nil
}

func (f *fakeRndOrgs) UpdateContact(_ context.Context, c *entity.RndContact) error {
	f.log.add("rndOrgs.UpdateContact %s", c.Name)
	cp := *c
	f.contacts[c.ID] = &cp
	return nil
}

func (f *fakeRndOrgs) DeleteContact(_ context.Context, id string) error {
	f.log.add("rndOrgs.DeleteContact %s", id)
	delete(f.contacts, id)
	return nil
}

func (f *fakeRndOrgs) DeleteContactsByOrg(_ context.Context, orgID string) error {
	f.log.add("rndOrgs.DeleteContactsByOrg %s", orgID)
	for id, c := range f.contacts {
		if c.OrgID == orgID {
			delete(f.contacts, id)
		}
	}
	return nil
}
