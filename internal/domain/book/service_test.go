package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	books  map[uint]*Book
	nextID uint
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{books: make(map[uint]*Book)}
}

func (r *memoryRepo) Create(_ context.Context, b *Book) error {
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id uint) (*Book, error) {
	if b, ok := r.books[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, ErrBookNotFound
}

func (r *memoryRepo) FindByISBN(_ context.Context, isbn string) (*Book, error) {
	for _, b := range r.books {
		if b.ISBN == isbn {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrBookNotFound
}

func (r *memoryRepo) Update(_ context.Context, b *Book) error {
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id uint) error {
	delete(r.books, id)
	return nil
}

func (r *memoryRepo) List(_ context.Context, _ ListParams) ([]*Book, int64, error) {
	out := make([]*Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"978-7-115-42802-8", "9787115428028", true},
		{"0-306-40615-2", "0306406152", true},
		{"080442957x", "080442957X", true},
		{"12345", "", false},
		{"97871154280ab", "97871154280AB", false},
	}
	for _, tt := range tests {
		got, ok := normalizeISBN(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo())

	b := &Book{ISBN: "978-7-115-42802-8", Title: "Go语言实战", Author: "William Kennedy", PublishedYear: 2017}
	require.NoError(t, svc.Create(ctx, b))
	assert.Equal(t, "9787115428028", b.ISBN)
	assert.Equal(t, GenreOther, b.Genre)

	err := svc.Create(ctx, &Book{ISBN: "9787115428028", Title: "dup"})
	assert.ErrorIs(t, err, ErrISBNDuplicate)

	err = svc.Create(ctx, &Book{ISBN: "123", Title: "bad"})
	assert.ErrorIs(t, err, ErrInvalidISBN)

	err = svc.Create(ctx, &Book{ISBN: "0306406152", Title: "future", PublishedYear: 3000})
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo())

	a := &Book{ISBN: "9787115428028", Title: "A"}
	b := &Book{ISBN: "0306406152", Title: "B"}
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.Create(ctx, b))

	taken := a.ISBN
	_, err := svc.Update(ctx, b.ID, UpdateParams{ISBN: &taken})
	assert.ErrorIs(t, err, ErrISBNDuplicate)

	title := "B2"
	genre := GenrePoetry
	updated, err := svc.Update(ctx, b.ID, UpdateParams{Title: &title, Genre: &genre})
	require.NoError(t, err)
	assert.Equal(t, "B2", updated.Title)
	assert.Equal(t, GenrePoetry, updated.Genre)

	_, err = svc.Update(ctx, 999, UpdateParams{Title: &title})
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestService_ListRejectsInvertedYears(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, _, err := svc.List(context.Background(), ListParams{YearFrom: 2020, YearTo: 2000})
	assert.ErrorIs(t, err, ErrInvalidYearRange)
}

func TestGenre_JSONUsesLowercase(t *testing.T) {
	data, err := GenreNonFiction.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"non_fiction"`, string(data))

	g, err := ParseGenre("Fıctıon")
	require.NoError(t, err)
	assert.Equal(t, GenreFiction, g)
}
