// Package store is the gorm-backed record store holding deck headers and
// membership rows. It exposes filter, insert, update and delete primitives
// only; the reconciliation rules live in package deck.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/youruser/binderbase/internal/apperr"
	"github.com/youruser/binderbase/internal/util"
)

// Drivers accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Repository is the store surface the deck service depends on.
type Repository interface {
	ListDecks(ctx context.Context) ([]Deck, error)
	CreateDeck(ctx context.Context, d *Deck) error
	GetDeck(ctx context.Context, id uint) (*Deck, error)
	SetCommander(ctx context.Context, id uint, commander *string) (*Deck, error)
	DeleteDeck(ctx context.Context, id uint) (int64, error)

	DeckCards(ctx context.Context, deckID uint) ([]DeckCard, error)
	FindDeckCard(ctx context.Context, deckID uint, cardName string) (*DeckCard, error)
	GetDeckCard(ctx context.Context, deckID, cardID uint) (*DeckCard, error)
	InsertDeckCard(ctx context.Context, c *DeckCard) error
	SetDeckCardQuantity(ctx context.Context, c *DeckCard, quantity int) error
	DeleteDeckCard(ctx context.Context, deckID, cardID uint) (int64, error)
	DeleteDeckCards(ctx context.Context, deckID uint) (int64, error)

	// WithinTx runs fn against a repository bound to a single transaction.
	WithinTx(ctx context.Context, fn func(tx Repository) error) error
}

// Store implements Repository on top of gorm.
type Store struct {
	db *gorm.DB
}

var _ Repository = (*Store)(nil)

// New wraps an already opened gorm handle.
func New(db *gorm.DB) *Store { return &Store{db: db} }

// Open connects to driver/dsn. The sqlite driver is pure Go and creates the
// database file's directory when needed.
func Open(driver, dsn string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverPostgres:
		// Supabase's pooler does not support prepared statements.
		dialector = postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true})
	case DriverMySQL:
		dialector = mysql.Open(normalizeMySQLDSN(dsn))
	case DriverSQLite, "":
		if path := sqlitePath(dsn); path != "" {
			if err := util.EnsureParentDir(path); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			zap.NewStdLog(logger.Named("gorm")),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if dialector.Name() == "sqlite" {
		// every pooled connection to ":memory:" would otherwise get its own database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return New(db), nil
}

// AutoMigrate creates or updates the decks and deck_cards tables.
func (s *Store) AutoMigrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&Deck{}, &DeckCard{})
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperr.Store("database unavailable", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperr.Store("database unavailable", err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Decks

func (s *Store) ListDecks(ctx context.Context) ([]Deck, error) {
	decks := []Deck{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&decks).Error; err != nil {
		return nil, apperr.Store("failed to list decks", err)
	}
	return decks, nil
}

func (s *Store) CreateDeck(ctx context.Context, d *Deck) error {
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return apperr.Store("failed to create deck", err)
	}
	return nil
}

func (s *Store) GetDeck(ctx context.Context, id uint) (*Deck, error) {
	var d Deck
	err := s.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Deck %d not found", id)
	}
	if err != nil {
		return nil, apperr.Store("failed to load deck", err)
	}
	return &d, nil
}

func (s *Store) SetCommander(ctx context.Context, id uint, commander *string) (*Deck, error) {
	d, err := s.GetDeck(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(d).Update("commander", commander).Error; err != nil {
		return nil, apperr.Store("failed to set commander", err)
	}
	d.Commander = commander
	return d, nil
}

func (s *Store) DeleteDeck(ctx context.Context, id uint) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Deck{})
	if res.Error != nil {
		return 0, apperr.Store("failed to delete deck", res.Error)
	}
	return res.RowsAffected, nil
}

// Membership rows

func (s *Store) DeckCards(ctx context.Context, deckID uint) ([]DeckCard, error) {
	rows := []DeckCard{}
	err := s.db.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Order("card_name ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Store("failed to list deck cards", err)
	}
	return rows, nil
}

// FindDeckCard returns the row for (deckID, cardName), or nil if there is none.
func (s *Store) FindDeckCard(ctx context.Context, deckID uint, cardName string) (*DeckCard, error) {
	var rows []DeckCard
	err := s.db.WithContext(ctx).
		Where("deck_id = ? AND card_name = ?", deckID, cardName).
		Order("id ASC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Store("failed to check deck card", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *Store) GetDeckCard(ctx context.Context, deckID, cardID uint) (*DeckCard, error) {
	var c DeckCard
	err := s.db.WithContext(ctx).Where("id = ? AND deck_id = ?", cardID, deckID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Card %d not found in deck %d", cardID, deckID)
	}
	if err != nil {
		return nil, apperr.Store("failed to load deck card", err)
	}
	return &c, nil
}

func (s *Store) InsertDeckCard(ctx context.Context, c *DeckCard) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return apperr.Store("failed to add card", err)
	}
	return nil
}

func (s *Store) SetDeckCardQuantity(ctx context.Context, c *DeckCard, quantity int) error {
	err := s.db.WithContext(ctx).
		Model(c).
		Where("deck_id = ?", c.DeckID).
		Update("quantity", quantity).Error
	if err != nil {
		return apperr.Store("failed to update card quantity", err)
	}
	c.Quantity = quantity
	return nil
}

func (s *Store) DeleteDeckCard(ctx context.Context, deckID, cardID uint) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND deck_id = ?", cardID, deckID).Delete(&DeckCard{})
	if res.Error != nil {
		return 0, apperr.Store("failed to remove card", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) DeleteDeckCards(ctx context.Context, deckID uint) (int64, error) {
	res := s.db.WithContext(ctx).Where("deck_id = ?", deckID).Delete(&DeckCard{})
	if res.Error != nil {
		return 0, apperr.Store("failed to delete deck cards", res.Error)
	}
	return res.RowsAffected, nil
}

// sqlitePath extracts the database file from a sqlite DSN, or "" for in-memory databases.
func sqlitePath(dsn string) string {
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if p == "" || p == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return ""
	}
	return p
}

// normalizeMySQLDSN converts mysql:// URIs to the go-sql-driver form and makes
// sure parseTime is set.
func normalizeMySQLDSN(dsn string) string {
	if !strings.HasPrefix(dsn, "mysql://") {
		if !strings.Contains(strings.ToLower(dsn), "parsetime=") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "parseTime=true"
		}
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	q := u.Query()
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s", user, pass, u.Host, strings.TrimPrefix(u.Path, "/"), q.Encode())
}
