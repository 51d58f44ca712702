// Package repotest provides in-memory implementations of the repository
// interfaces for service and handler tests.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
)

var (
	_ repository.UserRepository          = (*Users)(nil)
	_ repository.PendingUserRepository   = (*Pending)(nil)
	_ repository.DataSpesifikRepository  = (*Spesifik)(nil)
	_ repository.TingkatanRepository     = (*Tingkatan)(nil)
	_ repository.JenisPenyakitRepository = (*Jenis)(nil)
	_ repository.DataPenyakitRepository  = (*Penyakit)(nil)
	_ repository.DataMateriRepository    = (*Materi)(nil)
	_ repository.DataUmumRepository      = (*Umum)(nil)
)

// ─── users ─────────────────────────────────────────────────────────────

type Users struct {
	mu   sync.Mutex
	byID map[string]*model.User
}

func NewUsers(users ...*model.User) *Users {
	f := &Users{byID: map[string]*model.User{}}
	for _, u := range users {
		f.byID[u.UID] = u
	}
	return f
}

func (f *Users) GetByID(_ context.Context, uid string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[uid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *Users) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *Users) ListPaginated(_ context.Context, filter model.UserListFilter, limit, offset int) ([]model.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.User
	for _, u := range f.byID {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Lembaga != "" && u.Lembaga != filter.Lembaga {
			continue
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UID < all[j].UID })
	total := len(all)
	if offset >= total {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *Users) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.UID]; ok {
		return repository.ErrAlreadyExists
	}
	cp := *u
	f.byID[u.UID] = &cp
	return nil
}

func (f *Users) Update(_ context.Context, uid string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[uid]
	if !ok {
		return repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "nama":
			u.Nama = v.(string)
		case "lembaga":
			u.Lembaga = v.(string)
		case "password_hash":
			u.PasswordHash = v.(string)
		case "role":
			u.Role = model.Role(v.(string))
		}
	}
	return nil
}

func (f *Users) Delete(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[uid]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, uid)
	return nil
}

// ─── pending users ─────────────────────────────────────────────────────

type Pending struct {
	mu    sync.Mutex
	seq   int
	byID  map[string]*model.PendingUser
	users *Users
}

func NewPending(users *Users) *Pending {
	return &Pending{byID: map[string]*model.PendingUser{}, users: users}
}

func (f *Pending) GetByID(_ context.Context, id string) (*model.PendingUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *Pending) GetByEmail(_ context.Context, email string) (*model.PendingUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *Pending) ListAll(_ context.Context) ([]model.PendingUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.PendingUser{}
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (f *Pending) Create(_ context.Context, p *model.PendingUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	p.ID = fmt.Sprintf("p%d", f.seq)
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *Pending) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *Pending) Approve(ctx context.Context, pendingID string, user *model.User) error {
	if _, err := f.GetByID(ctx, pendingID); err != nil {
		return err
	}
	if err := f.users.Create(ctx, user); err != nil {
		return err
	}
	return f.Delete(ctx, pendingID)
}

// ─── data spesifik ─────────────────────────────────────────────────────

type Spesifik struct {
	mu   sync.Mutex
	byID map[string]*model.DataSpesifik
}

func NewSpesifik() *Spesifik {
	return &Spesifik{byID: map[string]*model.DataSpesifik{}}
}

func (f *Spesifik) Get(_ context.Context, uid string) (*model.DataSpesifik, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.byID[uid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *Spesifik) Upsert(_ context.Context, d *model.DataSpesifik) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *d
	f.byID[d.UserID] = &cp
	return nil
}

func (f *Spesifik) Delete(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, uid)
	return nil
}

func (f *Spesifik) ExistsByTingkatan(_ context.Context, tingkatanID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.byID {
		if d.IDTingkatan == tingkatanID {
			return true, nil
		}
	}
	return false, nil
}

// ─── tingkatan ─────────────────────────────────────────────────────────

type Tingkatan struct {
	mu    sync.Mutex
	seq   int
	items map[string]model.Tingkatan
	reads int
}

func NewTingkatan(items ...model.Tingkatan) *Tingkatan {
	f := &Tingkatan{items: map[string]model.Tingkatan{}}
	for _, t := range items {
		f.items[t.ID] = t
	}
	return f
}

func (f *Tingkatan) GetAll(_ context.Context) ([]model.Tingkatan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	out := []model.Tingkatan{}
	for _, t := range f.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NamaTingkatan < out[j].NamaTingkatan })
	return out, nil
}

func (f *Tingkatan) GetByID(_ context.Context, id string) (*model.Tingkatan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (f *Tingkatan) Create(_ context.Context, t *model.Tingkatan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t.ID = fmt.Sprintf("t%d", f.seq)
	f.items[t.ID] = *t
	return nil
}

func (f *Tingkatan) Update(_ context.Context, t *model.Tingkatan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[t.ID]; !ok {
		return repository.ErrNotFound
	}
	f.items[t.ID] = *t
	return nil
}

func (f *Tingkatan) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

// Reads counts GetAll calls, so tests can tell cache hits from store reads.
func (f *Tingkatan) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

// ─── jenis penyakit ────────────────────────────────────────────────────

type Jenis struct {
	mu    sync.Mutex
	seq   int
	items map[string]model.JenisPenyakit
	obat  map[string][]model.Obat
}

func NewJenis(items ...model.JenisPenyakit) *Jenis {
	f := &Jenis{items: map[string]model.JenisPenyakit{}, obat: map[string][]model.Obat{}}
	for _, j := range items {
		f.items[j.ID] = j
	}
	return f
}

func (f *Jenis) GetAll(_ context.Context) ([]model.JenisPenyakit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.JenisPenyakit{}
	for _, j := range f.items {
		out = append(out, j)
	}
	return out, nil
}

func (f *Jenis) GetByID(_ context.Context, id string) (*model.JenisPenyakit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &j, nil
}

func (f *Jenis) Create(_ context.Context, j *model.JenisPenyakit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	j.ID = fmt.Sprintf("j%d", f.seq)
	f.items[j.ID] = *j
	return nil
}

func (f *Jenis) Update(_ context.Context, j *model.JenisPenyakit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[j.ID]; !ok {
		return repository.ErrNotFound
	}
	f.items[j.ID] = *j
	return nil
}

func (f *Jenis) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	delete(f.obat, id)
	return nil
}

func (f *Jenis) ListObat(_ context.Context, jenisID string) ([]model.Obat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Obat{}, f.obat[jenisID]...), nil
}

func (f *Jenis) CreateObat(_ context.Context, jenisID string, o *model.Obat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	o.ID = fmt.Sprintf("o%d", f.seq)
	f.obat[jenisID] = append(f.obat[jenisID], *o)
	return nil
}

func (f *Jenis) UpdateObat(_ context.Context, jenisID string, o *model.Obat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, cur := range f.obat[jenisID] {
		if cur.ID == o.ID {
			f.obat[jenisID][i] = *o
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *Jenis) DeleteObat(_ context.Context, jenisID, obatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.obat[jenisID]
	for i, cur := range list {
		if cur.ID == obatID {
			f.obat[jenisID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// ─── data penyakit ─────────────────────────────────────────────────────

type Penyakit struct {
	mu    sync.Mutex
	seq   int
	items map[string]model.DataPenyakit
}

func NewPenyakit() *Penyakit {
	return &Penyakit{items: map[string]model.DataPenyakit{}}
}

func (f *Penyakit) ListPaginated(_ context.Context, filter model.RecordFilter, limit, offset int) ([]model.DataPenyakit, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.DataPenyakit
	for _, d := range f.items {
		if filter.UserID != "" && d.UserID != filter.UserID {
			continue
		}
		if filter.JenisPenyakitID != "" && d.JenisPenyakitID != filter.JenisPenyakitID {
			continue
		}
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *Penyakit) GetByID(_ context.Context, id string) (*model.DataPenyakit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (f *Penyakit) Create(_ context.Context, d *model.DataPenyakit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	d.ID = fmt.Sprintf("dp%d", f.seq)
	f.items[d.ID] = *d
	return nil
}

func (f *Penyakit) Update(_ context.Context, d *model.DataPenyakit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[d.ID]; !ok {
		return repository.ErrNotFound
	}
	f.items[d.ID] = *d
	return nil
}

func (f *Penyakit) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *Penyakit) ExistsByJenis(_ context.Context, jenisID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.items {
		if d.JenisPenyakitID == jenisID {
			return true, nil
		}
	}
	return false, nil
}

// ─── data materi ───────────────────────────────────────────────────────

type Materi struct {
	mu    sync.Mutex
	seq   int
	items map[string]model.DataMateri
}

func NewMateri() *Materi {
	return &Materi{items: map[string]model.DataMateri{}}
}

func (f *Materi) filtered(pesertaID string) []model.DataMateri {
	var all []model.DataMateri
	for _, d := range f.items {
		if pesertaID == "" || d.PesertaID == pesertaID {
			all = append(all, d)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].TanggalPengujian < all[j].TanggalPengujian })
	return all
}

func (f *Materi) ListPaginated(_ context.Context, pesertaID string, limit, offset int) ([]model.DataMateri, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.filtered(pesertaID)
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *Materi) ListAll(_ context.Context, pesertaID string) ([]model.DataMateri, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filtered(pesertaID), nil
}

func (f *Materi) GetByID(_ context.Context, id string) (*model.DataMateri, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (f *Materi) Create(_ context.Context, d *model.DataMateri) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	d.ID = fmt.Sprintf("dm%d", f.seq)
	f.items[d.ID] = *d
	return nil
}

func (f *Materi) Update(_ context.Context, d *model.DataMateri) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[d.ID]; !ok {
		return repository.ErrNotFound
	}
	f.items[d.ID] = *d
	return nil
}

func (f *Materi) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

// ─── data umum ─────────────────────────────────────────────────────────

type Umum struct {
	mu    sync.Mutex
	seq   int
	items map[string]model.DataUmum
}

func NewUmum() *Umum {
	return &Umum{items: map[string]model.DataUmum{}}
}

func (f *Umum) ListPaginated(_ context.Context, limit, offset int) ([]model.DataUmum, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.DataUmum
	for _, d := range f.items {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *Umum) GetByID(_ context.Context, id string) (*model.DataUmum, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d.Files = append([]model.FileDescriptor{}, d.Files...)
	return &d, nil
}

func (f *Umum) Create(_ context.Context, d *model.DataUmum) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	d.ID = fmt.Sprintf("du%d", f.seq)
	f.items[d.ID] = *d
	return nil
}

func (f *Umum) Update(_ context.Context, d *model.DataUmum) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[d.ID]; !ok {
		return repository.ErrNotFound
	}
	f.items[d.ID] = *d
	return nil
}

func (f *Umum) AppendFile(_ context.Context, id string, file model.FileDescriptor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.Files = append(d.Files, file)
	f.items[id] = d
	return nil
}

func (f *Umum) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}
