package deck

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/youruser/binderbase/internal/apperr"
	"github.com/youruser/binderbase/internal/cards"
	"github.com/youruser/binderbase/internal/store"
)

// fakeLookup resolves names case-insensitively against a fixed catalog.
type fakeLookup struct {
	catalog map[string]cards.Card
	calls   int
}

func newFakeLookup(names ...string) *fakeLookup {
	f := &fakeLookup{catalog: map[string]cards.Card{}}
	for _, n := range names {
		f.catalog[strings.ToLower(n)] = cards.Card{
			Name:   n,
			Image:  "https://img/" + strings.ReplaceAll(strings.ToLower(n), " ", "-") + ".jpg",
			Colors: []string{},
		}
	}
	return f
}

func (f *fakeLookup) ByExactName(_ context.Context, name string) (cards.Card, error) {
	f.calls++
	c, ok := f.catalog[strings.ToLower(name)]
	if !ok {
		return cards.Card{}, apperr.NotFound("Card not found: %s", name)
	}
	return c, nil
}

func newTestService(t *testing.T, names ...string) (*Service, *store.Store, *fakeLookup) {
	t.Helper()
	s, err := store.Open(store.DriverSQLite, ":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.AutoMigrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	lookup := newFakeLookup(names...)
	return NewService(s, lookup, zap.NewNop()), s, lookup
}

func TestCreateDeck(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	d, err := svc.CreateDeck(ctx, "  Test  ", "", "")
	require.NoError(t, err)
	assert.NotZero(t, d.ID)
	assert.Equal(t, "Test", d.Name)
	assert.Equal(t, "Commander", d.Format)
	assert.Nil(t, d.Commander)

	d2, err := svc.CreateDeck(ctx, "Test", "Brawl", "Edgar Markov")
	require.NoError(t, err)
	assert.Equal(t, "Brawl", d2.Format)
	require.NotNil(t, d2.Commander)
	assert.Equal(t, "Edgar Markov", *d2.Commander)

	_, err = svc.CreateDeck(ctx, "   ", "", "")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestAddCardMergesOnInsert(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, "Sol Ring", "Arcane Signet")

	d, err := svc.CreateDeck(ctx, "Artifacts", "", "")
	require.NoError(t, err)

	first, err := svc.AddCard(ctx, d.ID, "sol ring", 2)
	require.NoError(t, err)
	assert.Equal(t, "Sol Ring", first.CardName)
	assert.Equal(t, 2, first.Quantity)
	require.NotNil(t, first.CardImage)
	assert.Equal(t, "https://img/sol-ring.jpg", *first.CardImage)

	second, err := svc.AddCard(ctx, d.ID, "SOL RING", 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	rows, err := repo.DeckCards(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1, "exactly one row per canonical name")
	assert.Equal(t, 5, rows[0].Quantity)
}

func TestAddCardIsScopedPerDeck(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, "Sol Ring")

	a, _ := svc.CreateDeck(ctx, "A", "", "")
	b, _ := svc.CreateDeck(ctx, "B", "", "")

	_, err := svc.AddCard(ctx, a.ID, "Sol Ring", 1)
	require.NoError(t, err)
	_, err = svc.AddCard(ctx, b.ID, "Sol Ring", 1)
	require.NoError(t, err)

	rowsA, _ := repo.DeckCards(ctx, a.ID)
	rowsB, _ := repo.DeckCards(ctx, b.ID)
	require.Len(t, rowsA, 1)
	require.Len(t, rowsB, 1)
	assert.Equal(t, 1, rowsA[0].Quantity)
	assert.NotEqual(t, rowsA[0].ID, rowsB[0].ID)
}

func TestAddCardErrors(t *testing.T) {
	ctx := context.Background()
	svc, _, lookup := newTestService(t, "Sol Ring")
	d, _ := svc.CreateDeck(ctx, "Errors", "", "")

	_, err := svc.AddCard(ctx, d.ID, "  ", 1)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = svc.AddCard(ctx, d.ID, "Sol Ring", 0)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = svc.AddCard(ctx, d.ID+100, "Sol Ring", 1)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Zero(t, lookup.calls, "no provider call for invalid input or missing deck")

	_, err = svc.AddCard(ctx, d.ID, "Sol Rnig", 1)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, 1, lookup.calls)
}

func TestQuantityIsBounded(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, "Sol Ring")
	d, _ := svc.CreateDeck(ctx, "Huge", "", "")

	_, err := svc.AddCard(ctx, d.ID, "Sol Ring", math.MaxInt)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	row, err := svc.AddCard(ctx, d.ID, "Sol Ring", MaxQuantity)
	require.NoError(t, err)

	_, err = svc.AddCard(ctx, d.ID, "Sol Ring", 1)
	assert.True(t, errors.Is(err, apperr.ErrValidation), "merge past the bound is rejected")

	_, err = svc.SetCardQuantity(ctx, d.ID, row.ID, MaxQuantity+1)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	rows, err := repo.DeckCards(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, MaxQuantity, rows[0].Quantity)

	updated, err := svc.SetCardQuantity(ctx, d.ID, row.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
}

func TestSetCardQuantity(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, "Sol Ring", "Command Tower")
	d, _ := svc.CreateDeck(ctx, "Qty", "", "")
	other, _ := svc.CreateDeck(ctx, "Other", "", "")

	row, err := svc.AddCard(ctx, d.ID, "Sol Ring", 1)
	require.NoError(t, err)

	updated, err := svc.SetCardQuantity(ctx, d.ID, row.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = svc.SetCardQuantity(ctx, other.ID, row.ID, 2)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "cross-deck update must not succeed")

	_, err = svc.SetCardQuantity(ctx, d.ID, row.ID, -1)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	// a zero from the wrong deck leaves the row alone
	gone, err := svc.SetCardQuantity(ctx, other.ID, row.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, gone)
	rows, _ := repo.DeckCards(ctx, d.ID)
	assert.Len(t, rows, 1)

	for i := 0; i < 2; i++ {
		gone, err = svc.SetCardQuantity(ctx, d.ID, row.ID, 0)
		require.NoError(t, err, "zero is idempotent")
		assert.Nil(t, gone)
	}
	rows, _ = repo.DeckCards(ctx, d.ID)
	assert.Empty(t, rows)

	require.NoError(t, svc.RemoveCard(ctx, d.ID, 9999))
}

func TestGetDeckOrdersCards(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, "Sol Ring", "Arcane Signet", "Command Tower", "Zur the Enchanter")
	d, _ := svc.CreateDeck(ctx, "Ordered", "", "Zur the Enchanter")

	for _, n := range []string{"Sol Ring", "Zur the Enchanter", "Arcane Signet", "Command Tower"} {
		_, err := svc.AddCard(ctx, d.ID, n, 1)
		require.NoError(t, err)
	}

	got, err := svc.GetDeck(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, "Ordered", got.Name)
	var names []string
	for _, c := range got.Cards {
		names = append(names, c.CardName)
	}
	assert.Equal(t, []string{"Arcane Signet", "Command Tower", "Sol Ring", "Zur the Enchanter"}, names)

	_, err = svc.GetDeck(ctx, d.ID+1)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSetCommander(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	d, _ := svc.CreateDeck(ctx, "Commanderless", "", "")

	updated, err := svc.SetCommander(ctx, d.ID, "Atraxa, Praetors' Voice")
	require.NoError(t, err)
	require.NotNil(t, updated.Commander)
	assert.Equal(t, "Atraxa, Praetors' Voice", *updated.Commander)

	cleared, err := svc.SetCommander(ctx, d.ID, "")
	require.NoError(t, err)
	assert.Nil(t, cleared.Commander)

	_, err = svc.SetCommander(ctx, d.ID+5, "Edgar Markov")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDeleteDeckCascades(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, "Sol Ring", "Arcane Signet")
	d, _ := svc.CreateDeck(ctx, "Doomed", "", "")
	keep, _ := svc.CreateDeck(ctx, "Keeper", "", "")

	_, _ = svc.AddCard(ctx, d.ID, "Sol Ring", 1)
	_, _ = svc.AddCard(ctx, d.ID, "Arcane Signet", 1)
	_, _ = svc.AddCard(ctx, keep.ID, "Sol Ring", 1)

	require.NoError(t, svc.DeleteDeck(ctx, d.ID))

	rows, err := repo.DeckCards(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
	_, err = repo.GetDeck(ctx, d.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	require.NoError(t, svc.DeleteDeck(ctx, d.ID), "second delete is safe")

	rows, _ = repo.DeckCards(ctx, keep.ID)
	assert.Len(t, rows, 1)
}

// failingCards fails the bulk card delete so DeleteDeck must stop before the header.
type failingCards struct {
	store.Repository
	deckDeletes int
}

func (f *failingCards) WithinTx(_ context.Context, fn func(tx store.Repository) error) error {
	return fn(f)
}

func (f *failingCards) DeleteDeckCards(context.Context, uint) (int64, error) {
	return 0, apperr.Store("failed to delete deck cards", errors.New("disk I/O error"))
}

func (f *failingCards) DeleteDeck(ctx context.Context, id uint) (int64, error) {
	f.deckDeletes++
	return f.Repository.DeleteDeck(ctx, id)
}

func TestDeleteDeckAbortsWhenCardDeleteFails(t *testing.T) {
	ctx := context.Background()
	_, repo, lookup := newTestService(t)
	d := &store.Deck{Name: "Sticky", Format: store.DefaultFormat}
	require.NoError(t, repo.CreateDeck(ctx, d))

	failing := &failingCards{Repository: repo}
	svc := NewService(failing, lookup, nil)

	err := svc.DeleteDeck(ctx, d.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrStore))
	assert.Zero(t, failing.deckDeletes)

	_, err = repo.GetDeck(ctx, d.ID)
	assert.NoError(t, err, "header must survive")
}

func TestFindCards(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, "Sol Ring", "Solemn Simulacrum", "Arcane Signet", "Command Tower")
	d, _ := svc.CreateDeck(ctx, "Find", "", "")
	for _, n := range []string{"Sol Ring", "Solemn Simulacrum", "Arcane Signet", "Command Tower"} {
		_, err := svc.AddCard(ctx, d.ID, n, 1)
		require.NoError(t, err)
	}

	all, err := svc.FindCards(ctx, d.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	got, err := svc.FindCards(ctx, d.ID, "solsim")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Solemn Simulacrum", got[0].CardName)

	got, err = svc.FindCards(ctx, d.ID, "sol")
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = svc.FindCards(ctx, d.ID, "xyz")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.FindCards(ctx, d.ID+1, "sol")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, "Sol Ring", "Forest")
	d, _ := svc.CreateDeck(ctx, "Elfball", "", "Ezuri, Renegade Leader")
	_, _ = svc.AddCard(ctx, d.ID, "Forest", 30)
	_, _ = svc.AddCard(ctx, d.ID, "Sol Ring", 1)

	text, err := svc.Export(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "# Elfball\n1 Ezuri, Renegade Leader\n30 Forest\n1 Sol Ring\n", text)
}
