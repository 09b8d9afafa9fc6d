package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetstock/apierr"
	"fleetstock/models"
	"fleetstock/repository"
)

// In-memory fakes standing in for the Mongo repositories.

type fakeAccountRepo struct {
	accounts   map[string]*models.Account
	lastLogins map[string]time.Time
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts:   make(map[string]*models.Account),
		lastLogins: make(map[string]time.Time),
	}
}

func (f *fakeAccountRepo) add(a *models.Account) *models.Account {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.accounts[a.ID.Hex()] = a
	return a
}

func (f *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	for _, a := range f.accounts {
		if a.Email == account.Email {
			return apierr.DuplicateAccount()
		}
	}
	account.Active = true
	account.CreatedAt = time.Now().UTC()
	f.add(account)
	return nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			copy := *a
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Account, error) {
	a, ok := f.accounts[id.Hex()]
	if !ok || !a.Active {
		return nil, nil
	}
	copy := *a
	return &copy, nil
}

func (f *fakeAccountRepo) List(_ context.Context, page, limit int64) (*models.Page, error) {
	out := []*models.Account{}
	for _, a := range f.accounts {
		if a.Active {
			out = append(out, a)
		}
	}
	return &models.Page{Data: out, Total: int64(len(out)), Page: page, Limit: limit}, nil
}

func (f *fakeAccountRepo) ListByRole(_ context.Context, role models.Role) ([]*models.Account, error) {
	out := []*models.Account{}
	for _, a := range f.accounts {
		if a.Active && a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) Update(_ context.Context, id primitive.ObjectID, update repository.AccountUpdate) (*models.Account, error) {
	a, ok := f.accounts[id.Hex()]
	if !ok || !a.Active {
		return nil, nil
	}
	if update.Name != nil {
		a.Name = *update.Name
	}
	if update.Role != nil {
		a.Role = *update.Role
	}
	if update.Active != nil {
		a.Active = *update.Active
	}
	copy := *a
	return &copy, nil
}

func (f *fakeAccountRepo) Deactivate(_ context.Context, id primitive.ObjectID) error {
	a, ok := f.accounts[id.Hex()]
	if !ok || !a.Active {
		return apierr.NotFound("Account")
	}
	a.Active = false
	return nil
}

func (f *fakeAccountRepo) UpdateLastLogin(_ context.Context, id primitive.ObjectID, t time.Time) error {
	f.lastLogins[id.Hex()] = t
	return nil
}

func (f *fakeAccountRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, a := range f.accounts {
		if a.Active {
			n++
		}
	}
	return n, nil
}

type fakeCarRepo struct {
	cars map[string]*models.Car
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{cars: make(map[string]*models.Car)}
}

func (f *fakeCarRepo) Create(_ context.Context, car *models.Car) error {
	for _, c := range f.cars {
		if c.Active && c.PlateNumber == car.PlateNumber {
			return apierr.Duplicate()
		}
	}
	car.ID = primitive.NewObjectID()
	car.Active = true
	car.CreatedAt = time.Now().UTC()
	f.cars[car.ID.Hex()] = car
	return nil
}

func (f *fakeCarRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Car, error) {
	c, ok := f.cars[id.Hex()]
	if !ok || !c.Active {
		return nil, nil
	}
	copy := *c
	return &copy, nil
}

func (f *fakeCarRepo) List(_ context.Context, page, limit int64) (*models.Page, error) {
	out := []*models.Car{}
	for _, c := range f.cars {
		if c.Active {
			out = append(out, c)
		}
	}
	return &models.Page{Data: out, Total: int64(len(out)), Page: page, Limit: limit}, nil
}

func (f *fakeCarRepo) Update(_ context.Context, id primitive.ObjectID, update repository.CarUpdate) (*models.Car, error) {
	c, ok := f.cars[id.Hex()]
	if !ok || !c.Active {
		return nil, nil
	}
	if update.PlateNumber != nil {
		c.PlateNumber = *update.PlateNumber
	}
	if update.Model != nil {
		c.Model = *update.Model
	}
	copy := *c
	return &copy, nil
}

func (f *fakeCarRepo) AssignDriver(_ context.Context, id primitive.ObjectID, driverID *primitive.ObjectID) (*models.Car, error) {
	c, ok := f.cars[id.Hex()]
	if !ok || !c.Active {
		return nil, nil
	}
	c.DriverID = driverID
	copy := *c
	return &copy, nil
}

func (f *fakeCarRepo) Deactivate(_ context.Context, id primitive.ObjectID) error {
	c, ok := f.cars[id.Hex()]
	if !ok || !c.Active {
		return apierr.NotFound("Car")
	}
	c.Active = false
	return nil
}

func (f *fakeCarRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, c := range f.cars {
		if c.Active {
			n++
		}
	}
	return n, nil
}

type fakeProductRepo struct {
	products map[string]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*models.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	for _, p := range f.products {
		if p.Active && p.SKU == product.SKU {
			return apierr.Duplicate()
		}
	}
	product.ID = primitive.NewObjectID()
	product.Active = true
	product.CreatedAt = time.Now().UTC()
	f.products[product.ID.Hex()] = product
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.products[id.Hex()]
	if !ok || !p.Active {
		return nil, nil
	}
	copy := *p
	return &copy, nil
}

func (f *fakeProductRepo) List(_ context.Context, category string, page, limit int64) (*models.Page, error) {
	out := []*models.Product{}
	for _, p := range f.products {
		if !p.Active {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return &models.Page{Data: out, Total: int64(len(out)), Page: page, Limit: limit}, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, update repository.ProductUpdate) (*models.Product, error) {
	p, ok := f.products[id.Hex()]
	if !ok || !p.Active {
		return nil, nil
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Category != nil {
		p.Category = *update.Category
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Quantity != nil {
		p.Quantity = *update.Quantity
	}
	copy := *p
	return &copy, nil
}

func (f *fakeProductRepo) AdjustQuantity(_ context.Context, id primitive.ObjectID, delta int64) (*models.Product, error) {
	p, ok := f.products[id.Hex()]
	if !ok || !p.Active {
		return nil, nil
	}
	p.Quantity += delta
	copy := *p
	return &copy, nil
}

func (f *fakeProductRepo) Deactivate(_ context.Context, id primitive.ObjectID) error {
	p, ok := f.products[id.Hex()]
	if !ok || !p.Active {
		return apierr.NotFound("Product")
	}
	p.Active = false
	return nil
}

func (f *fakeProductRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, p := range f.products {
		if p.Active {
			n++
		}
	}
	return n, nil
}

type fakeExpenseRepo struct {
	expenses map[string]*models.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[string]*models.Expense)}
}

func (f *fakeExpenseRepo) Create(_ context.Context, expense *models.Expense) error {
	expense.ID = primitive.NewObjectID()
	expense.Active = true
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}
	f.expenses[expense.ID.Hex()] = expense
	return nil
}

func (f *fakeExpenseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Expense, error) {
	e, ok := f.expenses[id.Hex()]
	if !ok || !e.Active {
		return nil, nil
	}
	copy := *e
	return &copy, nil
}

func (f *fakeExpenseRepo) List(_ context.Context, filter repository.ExpenseFilter, page, limit int64) (*models.Page, error) {
	out := []*models.Expense{}
	for _, e := range f.expenses {
		if !e.Active {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}
	return &models.Page{Data: out, Total: int64(len(out)), Page: page, Limit: limit}, nil
}

func (f *fakeExpenseRepo) Update(_ context.Context, id primitive.ObjectID, update repository.ExpenseUpdate) (*models.Expense, error) {
	e, ok := f.expenses[id.Hex()]
	if !ok || !e.Active {
		return nil, nil
	}
	if update.Title != nil {
		e.Title = *update.Title
	}
	if update.Amount != nil {
		e.Amount = *update.Amount
	}
	copy := *e
	return &copy, nil
}

func (f *fakeExpenseRepo) SetReceiptURL(_ context.Context, id primitive.ObjectID, url string) (*models.Expense, error) {
	e, ok := f.expenses[id.Hex()]
	if !ok || !e.Active {
		return nil, nil
	}
	e.ReceiptURL = &url
	copy := *e
	return &copy, nil
}

func (f *fakeExpenseRepo) Deactivate(_ context.Context, id primitive.ObjectID) error {
	e, ok := f.expenses[id.Hex()]
	if !ok || !e.Active {
		return apierr.NotFound("Expense")
	}
	e.Active = false
	return nil
}

func (f *fakeExpenseRepo) ListRange(_ context.Context, from, to time.Time) ([]*models.Expense, error) {
	out := []*models.Expense{}
	for _, e := range f.expenses {
		if e.Active && !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepo) TotalAmount(_ context.Context) (float64, error) {
	var total float64
	for _, e := range f.expenses {
		if e.Active {
			total += e.Amount
		}
	}
	return total, nil
}

func (f *fakeExpenseRepo) TotalsByCategory(_ context.Context) ([]models.CategoryTotal, error) {
	byCat := map[string]*models.CategoryTotal{}
	for _, e := range f.expenses {
		if !e.Active {
			continue
		}
		row, ok := byCat[e.Category]
		if !ok {
			row = &models.CategoryTotal{Category: e.Category}
			byCat[e.Category] = row
		}
		row.Total += e.Amount
		row.Count++
	}
	out := []models.CategoryTotal{}
	for _, row := range byCat {
		out = append(out, *row)
	}
	return out, nil
}

type fakeStorage struct {
	uploads map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, data []byte, filename, _ string) (string, error) {
	f.uploads[filename] = data
	return "https://cdn.example.com/" + filename, nil
}
